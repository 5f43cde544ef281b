package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ProviderStatus 由 services.AnalysisService 实现
type ProviderStatus interface {
	Available() bool
	Model() string
}

type HealthController struct {
	provider ProviderStatus
}

func NewHealthController(provider ProviderStatus) *HealthController {
	return &HealthController{provider: provider}
}

// Check GET /healthz：进程存活即 200，provider 字段反映生成服务是否可用
func (h *HealthController) Check(ctx *gin.Context) {
	provider := "ready"
	if !h.provider.Available() {
		provider = "unavailable"
	}
	ctx.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"provider": provider,
		"model":    h.provider.Model(),
	})
}
