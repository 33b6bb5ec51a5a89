package main

import (
	"github.com/gin-gonic/gin"

	"tasktracker/internal/config"
	"tasktracker/internal/database"
	"tasktracker/internal/handlers"
	"tasktracker/internal/logging"
	"tasktracker/internal/middleware"
	"tasktracker/internal/repository"
	"tasktracker/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logging.Init(cfg.LogLevel, cfg.LogFormat)
	log := logging.Logger

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the bootstrap admin account
	if err := database.EnsureAdmin(cfg); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	employeeService := services.NewEmployeeService(userRepo)
	directoryService := services.NewDirectoryService(clientRepo, orgRepo)
	taskService := services.NewTaskService(taskRepo, userRepo)
	reportService := services.NewReportService(taskRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	clientHandler := handlers.NewClientHandler(directoryService)
	orgHandler := handlers.NewOrganizationHandler(directoryService)
	taskHandler := handlers.NewTaskHandler(taskService, reportService)
	dashboardHandler := handlers.NewDashboardHandler(reportService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.RequireAuth(cfg.JWTSecret), authHandler.Me)
		}

		// Employee management (ADMIN only)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth(cfg.JWTSecret), middleware.RequireAdmin())
		{
			users.GET("/employees", employeeHandler.ListEmployees)
			users.POST("/employees", employeeHandler.CreateEmployee)
			users.PATCH("/employees/:id", employeeHandler.UpdateEmployee)
			users.DELETE("/employees/:id", employeeHandler.DeleteEmployee)
		}

		// Client directory
		clients := api.Group("/clients")
		clients.Use(middleware.RequireAuth(cfg.JWTSecret))
		{
			clients.GET("", clientHandler.ListClients)
			clients.POST("", clientHandler.CreateClient)
			clients.PATCH("/:id", clientHandler.UpdateClient)
			clients.DELETE("/:id", clientHandler.DeleteClient)
		}

		// Organization directory and link management
		orgs := api.Group("/organizations")
		orgs.Use(middleware.RequireAuth(cfg.JWTSecret))
		{
			orgs.GET("", orgHandler.ListOrganizations)
			orgs.POST("", orgHandler.CreateOrganization)
			orgs.PATCH("/:id", orgHandler.UpdateOrganization)
			orgs.DELETE("/:id", orgHandler.DeleteOrganization)
			orgs.GET("/:id/clients", orgHandler.GetOrganizationClients)
			orgs.PUT("/:id/clients", orgHandler.SetOrganizationClients)
		}

		// Tasks
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth(cfg.JWTSecret))
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.POST("/:id/assign-self", taskHandler.AssignSelf)
			tasks.PATCH("/:id/status", taskHandler.UpdateStatus)
			tasks.GET("/meta/employees", taskHandler.ListAssignableEmployees)
			tasks.GET("/meta/stats", taskHandler.TaskStats)
		}

		// Dashboard
		dashboard := api.Group("/dashboard")
		dashboard.Use(middleware.RequireAuth(cfg.JWTSecret))
		{
			dashboard.GET("/stats", dashboardHandler.Stats)
		}
	}

	// Start server
	log.WithField("port", cfg.Port).Info("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
