package routes

import (
	"fmt"

	"crm-backend/internal/api/handlers"
	"crm-backend/internal/api/middleware"
	"crm-backend/internal/auth"
	"crm-backend/internal/config"
	"crm-backend/internal/repository"
	"crm-backend/internal/revalidate"
	"crm-backend/internal/security"
	"crm-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Dependencies are the process-wide resources the API is built on
type Dependencies struct {
	DB     *gorm.DB
	Config *config.Config
	// Redis is optional. Without it change signals are dropped and /health skips redis.
	Redis *redis.Client
	// Dispatcher is optional. Without it invitations are stored but not delivered.
	Dispatcher service.InvitationDispatcher
}

// SetupRoutes configures all the routes for the application
func SetupRoutes(deps Dependencies) (*gin.Engine, error) {
	cfg := deps.Config

	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg))

	validator := service.NewValidator()
	hasher := security.NewHasher(cfg.BcryptCost)

	var notifier revalidate.Notifier = revalidate.Nop{}
	if deps.Redis != nil {
		notifier = revalidate.NewRedisNotifier(deps.Redis, cfg.RevalidateChannel)
	}

	// Initialize repositories
	organizationRepo := repository.NewOrganizationRepository(deps.DB)
	userRepo := repository.NewUserRepository(deps.DB)
	invitationRepo := repository.NewInvitationRepository(deps.DB)
	companyRepo := repository.NewCompanyRepository(deps.DB)
	contactRepo := repository.NewContactRepository(deps.DB)
	dealRepo := repository.NewDealRepository(deps.DB)
	taskRepo := repository.NewTaskRepository(deps.DB)
	dashboardRepo := repository.NewDashboardRepository(deps.DB)

	// Initialize services
	companyService := service.NewCompanyService(companyRepo, notifier, validator)
	contactService := service.NewContactService(contactRepo, companyRepo, notifier, validator)
	dealService := service.NewDealService(dealRepo, companyRepo, notifier, validator)
	taskService := service.NewTaskService(taskRepo, contactRepo, companyRepo, notifier, validator)
	dashboardService := service.NewDashboardService(dashboardRepo)
	teamService := service.NewTeamService(userRepo, invitationRepo, deps.Dispatcher, hasher, notifier, validator, cfg.InvitationTTL())

	authService, err := auth.NewAuthService(auth.NewAuthConfig(cfg), organizationRepo, userRepo, invitationRepo, teamService, hasher, notifier, validator)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}
	authHandler := auth.NewAuthHandler(authService)
	authMiddleware := auth.NewAuthMiddleware(authService)

	// Initialize handlers
	checks := map[string]handlers.HealthCheck{"database": handlers.DatabaseCheck(deps.DB)}
	if deps.Redis != nil {
		checks["redis"] = handlers.RedisCheck(deps.Redis)
	}
	healthHandler := handlers.NewHealthHandler(checks)
	companyHandler := handlers.NewCompanyHandler(companyService)
	contactHandler := handlers.NewContactHandler(contactService)
	dealHandler := handlers.NewDealHandler(dealService)
	taskHandler := handlers.NewTaskHandler(taskService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	teamHandler := handlers.NewTeamHandler(teamService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authRoutes := router.Group("/api/auth")
	{
		authRoutes.POST("/signup", authHandler.SignUp)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/invitations/accept", authHandler.AcceptInvitation)
		authRoutes.POST("/validate", authHandler.ValidateToken)
	}

	// API v1 routes - All endpoints require authentication
	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.RequireAuth())
	{
		v1.GET("/profile", authHandler.GetProfile)
		v1.PUT("/profile", authHandler.UpdateProfile)

		v1.GET("/dashboard", dashboardHandler.GetDashboard)

		companies := v1.Group("/companies")
		{
			companies.GET("", companyHandler.ListCompanies)
			companies.POST("", companyHandler.CreateCompany)
			companies.PUT("/:id", companyHandler.UpdateCompany)
			companies.DELETE("/:id", companyHandler.DeleteCompany)
		}

		contacts := v1.Group("/contacts")
		{
			contacts.GET("", contactHandler.ListContacts)
			contacts.POST("", contactHandler.CreateContact)
			contacts.PUT("/:id", contactHandler.UpdateContact)
			contacts.DELETE("/:id", contactHandler.DeleteContact)
		}

		deals := v1.Group("/deals")
		{
			deals.GET("", dealHandler.ListDeals)
			deals.POST("", dealHandler.CreateDeal)
			deals.GET("/pipeline", dealHandler.GetPipeline)
			deals.POST("/import", dealHandler.ImportDeals)
			deals.PUT("/:id", dealHandler.UpdateDeal)
			deals.PATCH("/:id/stage", dealHandler.UpdateDealStage)
			deals.DELETE("/:id", dealHandler.DeleteDeal)
		}

		tasks := v1.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.PATCH("/:id/status", taskHandler.UpdateTaskStatus)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		team := v1.Group("/team")
		{
			team.GET("", teamHandler.GetTeam)
			team.POST("/invitations", teamHandler.InviteMember)
			team.DELETE("/invitations/:id", teamHandler.RevokeInvitation)
		}
	}

	return router, nil
}
