package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"groundedanalyst/metrics"
	"groundedanalyst/models"
)

var (
	ErrProviderUnavailable = errors.New("generation provider is unavailable")
	ErrProviderCall        = errors.New("generation provider call failed")
	ErrEmptyResponse       = errors.New("generation provider returned no response")
)

// 结果类型，用于指标和事件
const (
	KindOK          = "ok"
	KindUnavailable = "unavailable"
	KindTimeout     = "timeout"
	KindProvider    = "provider_error"
	KindEmpty       = "empty_response"
	KindInternal    = "internal"
)

// ErrorKind 把 Analyze 返回的错误归类
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return KindOK
	case errors.Is(err, ErrProviderUnavailable):
		return KindUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, ErrProviderCall):
		return KindProvider
	case errors.Is(err, ErrEmptyResponse):
		return KindEmpty
	default:
		return KindInternal
	}
}

type AnalysisConfig struct {
	Model             string
	SystemInstruction string
	Timeout           time.Duration
}

const eventPublishTimeout = 2 * time.Second

// AnalysisService 调用带 grounding 的生成服务并整理结果
type AnalysisService struct {
	generator ContentGenerator
	cfg       AnalysisConfig
	events    EventPublisher
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewAnalysisService generator 为 nil 时服务处于 unavailable 状态，每次请求都会返回 ErrProviderUnavailable
func NewAnalysisService(generator ContentGenerator, cfg AnalysisConfig, events EventPublisher, m *metrics.Metrics, logger *zap.Logger) *AnalysisService {
	if events == nil {
		events = NopEventPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalysisService{
		generator: generator,
		cfg:       cfg,
		events:    events,
		metrics:   m,
		logger:    logger,
	}
}

func (s *AnalysisService) Available() bool {
	return s.generator != nil
}

func (s *AnalysisService) Model() string {
	return s.cfg.Model
}

// Analyze 生成分析文本并提取去重后的来源
func (s *AnalysisService) Analyze(ctx context.Context, query string) (*models.AnalyzeResponse, error) {
	start := time.Now()
	resp, err := s.analyze(ctx, query)

	sourceCount := 0
	if resp != nil {
		sourceCount = len(resp.Sources)
	}
	s.record(ctx, err, sourceCount, time.Since(start))
	return resp, err
}

func (s *AnalysisService) analyze(ctx context.Context, query string) (*models.AnalyzeResponse, error) {
	if s.generator == nil {
		return nil, ErrProviderUnavailable
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	contents, genCfg := groundedRequest(query, s.cfg.SystemInstruction)

	callStart := time.Now()
	result, err := s.generator.GenerateContent(ctx, s.cfg.Model, contents, genCfg)
	if s.metrics != nil {
		s.metrics.ProviderDuration.Observe(time.Since(callStart).Seconds())
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderCall, err)
	}
	if result == nil {
		return nil, ErrEmptyResponse
	}

	return &models.AnalyzeResponse{
		Analysis: responseText(result),
		Sources:  ExtractSources(result),
	}, nil
}

func (s *AnalysisService) record(ctx context.Context, err error, sourceCount int, elapsed time.Duration) {
	kind := ErrorKind(err)
	if s.metrics != nil {
		s.metrics.Analyses.WithLabelValues(kind).Inc()
		if err == nil {
			s.metrics.SourcesPerAnalysis.Observe(float64(sourceCount))
		}
	}

	ev := AnalysisEvent{
		ID:          uuid.NewString(),
		Status:      "ok",
		Model:       s.cfg.Model,
		SourceCount: sourceCount,
		DurationMs:  elapsed.Milliseconds(),
		OccurredAt:  time.Now().UTC(),
	}
	if err != nil {
		ev.Status = "error"
		ev.ErrorKind = kind
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), eventPublishTimeout)
	defer cancel()
	if perr := s.events.Publish(pubCtx, ev); perr != nil {
		if s.metrics != nil {
			s.metrics.EventPublishFailure.Inc()
		}
		s.logger.Warn("failed to publish analysis event", zap.String("event_id", ev.ID), zap.Error(perr))
	}
}
