// @title AI Tutor CRM 后端 API
// @version 1.0
// @description AI辅导业务的客户关系管理后端服务。

// @contact.name API支持

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"log"

	"ai_tutor_crm_backend/internal/app"
	"ai_tutor_crm_backend/internal/config"
	"ai_tutor_crm_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
