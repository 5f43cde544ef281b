package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"groundedanalyst/middleware"
	"groundedanalyst/models"
	"groundedanalyst/services"
)

// Analyzer 由 services.AnalysisService 实现
type Analyzer interface {
	Analyze(ctx context.Context, query string) (*models.AnalyzeResponse, error)
}

type AnalyzeController struct {
	analyzer Analyzer
	logger   *zap.Logger
}

func NewAnalyzeController(analyzer Analyzer, logger *zap.Logger) *AnalyzeController {
	return &AnalyzeController{analyzer: analyzer, logger: logger}
}

// Analyze POST /api/analyze
// 缺少 query（包括请求体不是合法 JSON）返回 400；其余错误统一 500，错误细节只写日志
func (a *AnalyzeController) Analyze(ctx *gin.Context) {
	reqID := middleware.GetRequestID(ctx)

	var req models.AnalyzeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Query == "" {
		ctx.JSON(http.StatusBadRequest, models.ErrorResponse{Error: models.ErrMsgMissingQuery})
		return
	}

	a.logger.Info("received query", zap.String("request_id", reqID), zap.String("query", req.Query))

	resp, err := a.analyzer.Analyze(ctx.Request.Context(), req.Query)
	if err != nil {
		a.logger.Error("analysis failed",
			zap.String("request_id", reqID),
			zap.String("kind", services.ErrorKind(err)),
			zap.Error(err),
		)
		ctx.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: models.ErrMsgInternal})
		return
	}

	if resp.Sources == nil {
		resp.Sources = []models.Source{}
	}
	ctx.JSON(http.StatusOK, resp)
}
