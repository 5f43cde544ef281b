package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"groundedanalyst/controllers"
	"groundedanalyst/metrics"
	"groundedanalyst/middleware"
)

type Deps struct {
	AllowOrigins []string
	Analyze      *controllers.AnalyzeController
	Health       *controllers.HealthController
	Metrics      *metrics.Metrics
	Gatherer     prometheus.Gatherer
	Logger       *zap.Logger
}

// SetupRouter CORS 只作用于 /api；不在白名单中的 Origin 会被 403 拒绝
func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(d.Logger),
		middleware.Recovery(d.Logger),
		middleware.Metrics(d.Metrics),
	)

	r.GET("/healthz", d.Health.Check)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	api.Use(cors.New(cors.Config{
		AllowOrigins:  d.AllowOrigins,
		AllowMethods:  []string{http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))
	{
		api.POST("/analyze", d.Analyze.Analyze)
		// 预检请求由 cors 中间件直接应答，这里只为让路由匹配上
		api.OPTIONS("/analyze", func(ctx *gin.Context) { ctx.Status(http.StatusNoContent) })
	}

	return r
}
