package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"groundedanalyst/config"
	"groundedanalyst/controllers"
	"groundedanalyst/logger"
	"groundedanalyst/metrics"
	"groundedanalyst/router"
	"groundedanalyst/services"
)

func serveCMD() *cobra.Command {
	var cfgPath string
	var port string
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.App.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}
	serve.Flags().StringVarP(&cfgPath, "config", "c", "", "config file (default is ./config/config.yml if present)")
	serve.Flags().StringVarP(&port, "port", "p", "", "listen port, overrides app.port")
	return serve
}

func run(ctx context.Context, cfg *config.Config) error {
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	gin.SetMode(cfg.App.Mode)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	generator, err := services.NewGeminiGenerator(ctx, cfg.Gemini.APIKey)
	if err != nil {
		log.Warn("generation provider not initialized, analysis requests will fail",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY"),
		)
	}

	var events services.EventPublisher = services.NopEventPublisher{}
	conn, ch, err := config.DialRabbit(cfg)
	if err != nil {
		return err
	}
	if ch != nil {
		defer conn.Close()
		defer ch.Close()
		events = services.NewRabbitEventPublisher(ch, cfg.RabbitMQ.Queue)
		log.Info("rabbitmq initialized", zap.String("queue", cfg.RabbitMQ.Queue))
	} else {
		log.Info("rabbitmq url empty, analysis events disabled")
	}

	svc := services.NewAnalysisService(generator, services.AnalysisConfig{
		Model:             cfg.Gemini.Model,
		SystemInstruction: cfg.Gemini.SystemInstruction,
		Timeout:           cfg.Gemini.Timeout,
	}, events, m, log)

	engine := router.SetupRouter(router.Deps{
		AllowOrigins: cfg.CORS.AllowOrigins,
		Analyze:      controllers.NewAnalyzeController(svc, log),
		Health:       controllers.NewHealthController(svc),
		Metrics:      m,
		Gatherer:     reg,
		Logger:       log,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			zap.String("name", cfg.App.Name),
			zap.String("addr", srv.Addr),
			zap.String("model", cfg.Gemini.Model),
			zap.Bool("provider_ready", svc.Available()),
			zap.String("version", Version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
