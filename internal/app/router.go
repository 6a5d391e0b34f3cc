package app

import (
	"ai_tutor_crm_backend/docs"
	"ai_tutor_crm_backend/internal/middleware"
	"ai_tutor_crm_backend/internal/model"
	"ai_tutor_crm_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/login", c.auth.Login)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware())
	{
		a.registerTutorRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

// registerTutorRoutes 导师和管理员都可访问的日常业务接口
func (a *App) registerTutorRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/logout", c.auth.Logout)
	rg.GET("/me", c.auth.Me)

	// 客户管理
	rg.POST("/clients", c.client.CreateClient)
	rg.GET("/clients", c.client.ListClients)
	rg.GET("/clients/analytics", c.client.ClientAnalytics)
	rg.GET("/clients/:id", c.client.GetClient)
	rg.PUT("/clients/:id", c.client.UpdateClient)
	rg.POST("/clients/:id/interests", c.client.AddInterest)
	rg.DELETE("/clients/:id/interests", c.client.RemoveInterest)
	rg.PUT("/clients/:id/progress", c.client.UpdateProgress)
	rg.GET("/clients/:id/proficiencies", c.client.GetProficiencies)
	rg.PUT("/clients/:id/budget", c.client.UpdateBudget)

	// AI模型目录
	rg.GET("/models", c.aiModel.ListModels)
	rg.GET("/models/popular", c.aiModel.PopularModels)
	rg.GET("/models/analytics", c.aiModel.ModelAnalytics)
	rg.GET("/models/learning-path/:clientId", c.aiModel.LearningPath)
	rg.GET("/models/:id", c.aiModel.GetModel)
	rg.GET("/models/:id/related", c.aiModel.RelatedModels)

	// 导师
	rg.GET("/tutors", c.tutor.ListTutors)
	rg.GET("/tutors/analytics", c.tutor.TutorAnalytics)
	rg.POST("/tutors/match", c.tutor.MatchTutors)
	rg.GET("/tutors/:id", c.tutor.GetTutor)
	rg.POST("/tutors/:id/specializations", c.tutor.AddSpecialization)
	rg.DELETE("/tutors/:id/specializations", c.tutor.RemoveSpecialization)
	rg.PUT("/tutors/:id/experience", c.tutor.UpdateModelExperience)
	rg.PUT("/tutors/:id/rating", c.tutor.RateTutor)
	rg.PUT("/tutors/:id/rate", c.tutor.UpdateRate)

	// 会话
	rg.POST("/sessions", c.session.ScheduleSession)
	rg.GET("/sessions", c.session.ListSessions)
	rg.GET("/sessions/unpaid", c.session.UnpaidSessions)
	rg.GET("/sessions/analytics", c.session.SessionAnalytics)
	rg.GET("/sessions/:id", c.session.GetSession)
	rg.PUT("/sessions/:id", c.session.RescheduleSession)
	rg.POST("/sessions/:id/cancel", c.session.CancelSession)
	rg.POST("/sessions/:id/complete", c.session.CompleteSession)
	rg.POST("/sessions/:id/topics", c.session.AddTopic)
	rg.PUT("/sessions/:id/objectives", c.session.SetObjectives)
	rg.PUT("/sessions/:id/homework", c.session.AssignHomework)
	rg.PUT("/sessions/:id/payment", c.session.UpdatePayment)
	rg.POST("/sessions/:id/paid", c.session.MarkPaid)

	// 学习资料
	rg.POST("/materials", c.material.CreateMaterial)
	rg.POST("/materials/upload", c.material.UploadMaterial)
	rg.GET("/materials", c.material.ListMaterials)
	rg.GET("/materials/tags", c.material.ListTags)
	rg.GET("/materials/analytics", c.material.MaterialAnalytics)
	rg.GET("/materials/learning-path", c.material.LearningPathMaterials)
	rg.GET("/materials/recommended", c.material.RecommendedMaterials)
	rg.GET("/materials/:id", c.material.GetMaterial)
	rg.PUT("/materials/:id", c.material.UpdateMaterial)
	rg.POST("/materials/:id/tags", c.material.AddTag)
	rg.DELETE("/materials/:id/tags", c.material.RemoveTag)
	rg.POST("/materials/:id/models", c.material.LinkModel)
	rg.PUT("/materials/:id/rating", c.material.RateMaterial)
	rg.GET("/materials/:id/related", c.material.RelatedMaterials)

	// 报表
	rg.GET("/reports/revenue", c.report.RevenueReport)
	rg.GET("/reports/clients", c.report.AllClientsReport)
	rg.GET("/reports/clients/:id", c.report.ClientProgressReport)
	rg.GET("/reports/tutors/:id", c.report.TutorPerformanceReport)
	rg.GET("/reports/specializations", c.report.SpecializationReport)
	rg.GET("/reports/models", c.report.ModelDemandReport)
	rg.GET("/reports/monthly", c.report.MonthlySummary)
}

// registerAdminRoutes 仅管理员可用的破坏性操作与账号管理
func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/")
	admin.Use(middleware.RoleMiddleware(model.RoleAdmin))
	{
		// 账号管理
		admin.GET("/users", c.auth.ListUsers)
		admin.GET("/users/tutors", c.auth.ListTutorAccounts)
		admin.GET("/users/admins", c.auth.ListAdmins)
		admin.POST("/users/tutors", c.auth.RegisterTutor)
		admin.POST("/users/admins", c.auth.RegisterAdmin)
		admin.PUT("/users/:id", c.auth.UpdateUser)
		admin.PUT("/users/:id/password", c.auth.UpdatePassword)
		admin.DELETE("/users/:id", c.auth.DeleteUser)

		// 目录维护
		admin.POST("/models", c.aiModel.CreateModel)
		admin.PUT("/models/:id", c.aiModel.UpdateModel)
		admin.DELETE("/models/:id", c.aiModel.DeleteModel)
		admin.POST("/models/:id/capabilities", c.aiModel.AddCapability)
		admin.POST("/models/:id/limitations", c.aiModel.AddLimitation)
		admin.POST("/models/:id/use-cases", c.aiModel.AddUseCase)
		admin.PUT("/models/:id/complexity", c.aiModel.UpdateComplexity)

		// 破坏性操作
		admin.DELETE("/clients/:id", c.client.DeleteClient)
		admin.POST("/tutors", c.tutor.CreateTutor)
		admin.DELETE("/tutors/:id", c.tutor.DeleteTutor)
		admin.DELETE("/materials/:id", c.material.DeleteMaterial)
	}
}
