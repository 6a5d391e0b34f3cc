package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai_tutor_crm_backend/internal/config"
	"ai_tutor_crm_backend/internal/controller"
	"ai_tutor_crm_backend/internal/model"
	"ai_tutor_crm_backend/internal/repository"
	"ai_tutor_crm_backend/internal/service"
	"ai_tutor_crm_backend/pkg/logger"
	"ai_tutor_crm_backend/pkg/monitoring"
	"ai_tutor_crm_backend/pkg/security"
	"ai_tutor_crm_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	services *services
}

type stores struct {
	clients   repository.Store[*model.Client]
	users     repository.Store[model.User]
	tutors    repository.Store[*model.Tutor]
	aiModels  repository.Store[*model.AIModel]
	sessions  repository.Store[*model.TutoringSession]
	materials repository.Store[*model.LearningMaterial]
}

type services struct {
	auth     *service.AuthService
	client   *service.ClientService
	tutor    *service.TutorService
	aiModel  *service.AIModelService
	session  *service.SessionService
	material *service.LearningMaterialService
	storage  *service.StorageService
	report   *service.ReportService
}

type controllers struct {
	auth     *controller.AuthController
	client   *controller.ClientController
	tutor    *controller.TutorController
	aiModel  *controller.AIModelController
	session  *controller.SessionController
	material *controller.MaterialController
	report   *controller.ReportController
	health   *controller.HealthController
}

func (a *App) initStores(cfg *config.Config) *stores {
	return &stores{
		clients:   repository.NewClientFileStore(cfg.Data.ClientsPath()),
		users:     repository.NewUserFileStore(cfg.Data.UsersPath()),
		tutors:    repository.NewJSONFileStore[*model.Tutor](cfg.Data.TutorsPath()),
		aiModels:  repository.NewJSONFileStore[*model.AIModel](cfg.Data.ModelsPath()),
		sessions:  repository.NewJSONFileStore[*model.TutoringSession](cfg.Data.SessionsPath()),
		materials: repository.NewJSONFileStore[*model.LearningMaterial](cfg.Data.MaterialsPath()),
	}
}

func (a *App) initServices(st *stores, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(st.users, logger.Named("auth"))
	s.client = service.NewClientService(st.clients, logger.Named("clients"))
	s.tutor = service.NewTutorService(st.tutors, logger.Named("tutors"))
	s.aiModel = service.NewAIModelService(st.aiModels, logger.Named("models"))
	s.session = service.NewSessionService(st.sessions, logger.Named("sessions"))
	s.material = service.NewLearningMaterialService(st.materials, logger.Named("materials"))
	s.report = service.NewReportService(s.client, s.tutor, s.session, s.aiModel, s.material,
		cfg.Data.ReportsPath(), logger.Named("reports"))

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth, a.Config),
		client:   controller.NewClientController(s.client, logger.Log),
		tutor:    controller.NewTutorController(s.tutor),
		aiModel:  controller.NewAIModelController(s.aiModel),
		session:  controller.NewSessionController(s.session, s.client, s.tutor, logger.Log),
		material: controller.NewMaterialController(s.material, s.client, s.storage, logger.Log),
		report:   controller.NewReportController(s.report, logger.Log),
		health:   controller.NewHealthController(s.client, s.aiModel),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	// 中间件从上下文取配置
	router.Use(func(c *gin.Context) {
		c.Set("config", cfg)
		c.Next()
	})

	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	windowMinutes := cfg.RateLimit.WindowMinutes
	if windowMinutes <= 0 {
		windowMinutes = 1
	}
	router.Use(security.RateLimiter(maxRequests, time.Duration(windowMinutes)*time.Minute,
		"/metrics", "/swagger"))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	app := &App{
		Config: cfg,
	}

	st := app.initStores(cfg)
	services := app.initServices(st, cfg)
	app.services = services
	controllers := app.initControllers(services)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("ai-tutor-crm", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
