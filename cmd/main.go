package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cosmosync/internal/clients"
	"cosmosync/internal/config"
	"cosmosync/internal/handlers"
	"cosmosync/internal/middleware"
	"cosmosync/internal/repository"
	"cosmosync/internal/service"
	"cosmosync/internal/worker"
	"cosmosync/pkg/database"
	redisdb "cosmosync/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	log.Println("=== cosmosync starting ===")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// PostgreSQL
	db, err := database.Connect(database.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		DBName:   cfg.DB.DBName,
		SSLMode:  cfg.DB.SSLMode,
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Redis - только рекомендательный счетчик и статистика
	redisClient, err := redisdb.Connect(redisdb.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	// Репозитории
	positionRepo := repository.NewPositionRepository(db)
	datasetRepo := repository.NewDatasetRepository(db)
	spaceCacheRepo := repository.NewSpaceCacheRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient)

	// Клиенты внешних API
	positionClient := clients.NewPositionClient(cfg.Position.URL)
	nasaClient := clients.NewNASAClient(clients.NASAConfig{
		APIKey:     cfg.NASA.APIKey,
		CatalogURL: cfg.NASA.CatalogURL,
		APODURL:    cfg.NASA.APODURL,
		NEOURL:     cfg.NASA.NEOURL,
		DONKIURL:   cfg.NASA.DONKIURL,
	})
	spacexClient := clients.NewSpaceXClient(cfg.SpaceX.URL)

	// Сервисы
	positionService := service.NewPositionService(positionRepo, positionClient, cfg.Position.URL)
	datasetService := service.NewDatasetService(datasetRepo, nasaClient)
	spaceCacheService := service.NewSpaceCacheService(spaceCacheRepo, nasaClient, spacexClient)

	// Фоновые задачи: каждая со своей кадентностью, независимо от остальных
	scheduler := worker.NewScheduler()

	scheduler.AddTask(worker.Task{
		Name:     "position",
		Interval: cfg.Position.Interval,
		Run:      positionService.FetchAndStorePosition,
	})
	scheduler.AddTask(worker.Task{
		Name:     "dataset",
		Interval: cfg.Workers.DatasetInterval,
		Run: func(ctx context.Context) error {
			_, err := datasetService.SyncCatalog(ctx)
			return err
		},
	})
	scheduler.AddTask(worker.Task{
		Name:     "apod",
		Interval: cfg.Workers.APODInterval,
		Run:      spaceCacheService.FetchAndStoreAPOD,
	})
	scheduler.AddTask(worker.Task{
		Name:     "neo",
		Interval: cfg.Workers.NEOInterval,
		Run:      spaceCacheService.FetchAndStoreNEO,
	})
	scheduler.AddTask(worker.Task{
		Name:     "donki",
		Interval: cfg.Workers.DONKIInterval,
		// FLR и CME делят одну кадентность и выполняются последовательно;
		// сбой первого не отменяет второй
		Run: func(ctx context.Context) error {
			flrErr := spaceCacheService.FetchAndStoreFlares(ctx)
			cmeErr := spaceCacheService.FetchAndStoreCME(ctx)
			return errors.Join(flrErr, cmeErr)
		},
	})
	scheduler.AddTask(worker.Task{
		Name:     "spacex",
		Interval: cfg.Workers.SpaceXInterval,
		Run:      spaceCacheService.FetchAndStoreNextLaunch,
	})

	scheduler.Start()
	defer scheduler.Stop()

	// HTTP
	if cfg.App.Debug {
		gin.SetMode(gin.DebugMode)
		log.Println("Running in DEBUG mode")
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", cfg.App.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.RequestCounter(cacheRepo))

	positionHandler := handlers.NewPositionHandler(positionService)
	datasetHandler := handlers.NewDatasetHandler(datasetService)
	spaceHandler := handlers.NewSpaceHandler(spaceCacheService)
	systemHandler := handlers.NewSystemHandler(positionRepo, datasetRepo, redisClient)

	api := r.Group("/api/v1")

	api.GET("/health", systemHandler.Health)
	api.GET("/system/stats", systemHandler.Stats)

	api.GET("/position/last", positionHandler.GetLast)
	api.GET("/position/fetch", positionHandler.TriggerFetch)
	api.GET("/position/trend", positionHandler.GetTrend)
	api.GET("/position/export", positionHandler.Export)

	api.GET("/datasets/sync", datasetHandler.Sync)
	api.GET("/datasets/list", datasetHandler.List)

	api.GET("/space/:source/latest", spaceHandler.GetLatest)
	api.GET("/space/refresh", spaceHandler.Refresh)
	api.GET("/space/summary", spaceHandler.Summary)

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost:%s", cfg.App.Port)
		log.Printf("API available at http://localhost:%s/api/v1", cfg.App.Port)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start:", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited properly")
}
