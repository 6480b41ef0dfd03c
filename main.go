package main

import (
	"context"
	"log"
	"os"

	"github.com/rakhatutebayev/wwp-inventory/cmd"
	"github.com/rakhatutebayev/wwp-inventory/internal/catalog"
	"github.com/rakhatutebayev/wwp-inventory/internal/database"
	"github.com/rakhatutebayev/wwp-inventory/internal/devices"
	"github.com/rakhatutebayev/wwp-inventory/internal/employees"
	"github.com/rakhatutebayev/wwp-inventory/internal/inventory"
	"github.com/rakhatutebayev/wwp-inventory/internal/labels"
	"github.com/rakhatutebayev/wwp-inventory/internal/logger"
	"github.com/rakhatutebayev/wwp-inventory/internal/middleware"
	"github.com/rakhatutebayev/wwp-inventory/internal/movements"
	"github.com/rakhatutebayev/wwp-inventory/internal/reports"
	"github.com/rakhatutebayev/wwp-inventory/internal/repository"
	"github.com/rakhatutebayev/wwp-inventory/internal/users"
	"github.com/rakhatutebayev/wwp-inventory/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load .env file, but don't overwrite system environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	cmd.Execute(ctx)
}

func main() {
	zapLogger := logger.NewLogger()
	defer zapLogger.Sync()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		zapLogger.Fatal("DATABASE_URL is not set")
	}

	db, err := database.NewPostgresConnection(dbURL)
	if err != nil {
		zapLogger.Fatal("Unable to connect to the database", zap.Error(err))
	}
	defer db.Close()

	zapLogger.Info("Connected to the database")

	repo := repository.NewRepository(db)

	catalogRepo := catalog.NewRepository(repo)
	employeesRepo := employees.NewRepository(repo)
	devicesRepo := devices.NewRepository(repo)
	movementsRepo := movements.NewRepository(repo)
	inventoryRepo := inventory.NewRepository(repo)
	reportsRepo := reports.NewRepository(repo)
	usersRepo := users.NewRepository(repo)

	employeeService := employees.NewService(employeesRepo, devicesRepo)
	deviceService := devices.NewService(devicesRepo, catalogRepo, employeesRepo)
	movementService := movements.NewService(movementsRepo, devicesRepo, catalogRepo, employeesRepo)
	inventoryService := inventory.NewService(inventoryRepo, devicesRepo, catalogRepo)
	labelService := labels.NewService(devicesRepo, catalogRepo)

	router := gin.New()
	router.Use(gin.Logger(), middleware.RecoveryMiddleware(zapLogger), middleware.CORSMiddleware())

	router.GET("/health", middleware.HealthCheckHandler())
	security.NewLoginHandler(repo).RegisterRoutes(router)

	api := router.Group("/", security.JWTMiddleware(), security.Authorize("user"))
	catalog.RegisterRoutes(api, catalogRepo, zapLogger)
	employees.RegisterRoutes(api, employeeService, zapLogger)
	devices.RegisterRoutes(api, deviceService, zapLogger)
	movements.RegisterRoutes(api, movementService, zapLogger)
	inventory.RegisterRoutes(api, inventoryService, zapLogger)
	reports.RegisterRoutes(api, reportsRepo, zapLogger)
	labels.RegisterRoutes(api, labelService, zapLogger)
	users.RegisterRoutes(api, usersRepo, zapLogger)

	host := os.Getenv("APP_HOST")
	if host == "" {
		host = ":8080"
	}

	zapLogger.Info("Starting server", zap.String("host", host))
	if err := router.Run(host); err != nil {
		zapLogger.Fatal("Server stopped", zap.Error(err))
	}
}
