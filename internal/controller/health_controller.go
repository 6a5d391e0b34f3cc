package controller

import (
	"ai_tutor_crm_backend/internal/service"
	"ai_tutor_crm_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	ClientService  *service.ClientService
	AIModelService *service.AIModelService
}

func NewHealthController(clientService *service.ClientService, aiModelService *service.AIModelService) *HealthController {
	return &HealthController{ClientService: clientService, AIModelService: aiModelService}
}

// @Summary 健康检查
// @Description 检查服务状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"clients": len(c.ClientService.GetAllClients()),
			"models":  len(c.AIModelService.GetAllModels()),
		},
	})
}
