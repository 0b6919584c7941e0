package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	dbadapter "github.com/sherwinbularon/todolist-server/internal/adapter/db"
	httpadapter "github.com/sherwinbularon/todolist-server/internal/adapter/http"
	"github.com/sherwinbularon/todolist-server/internal/adapter/http/handlers"
	httpmiddleware "github.com/sherwinbularon/todolist-server/internal/adapter/http/middleware"
	"github.com/sherwinbularon/todolist-server/internal/adapter/memory"
	appservice "github.com/sherwinbularon/todolist-server/internal/app/service"
	"github.com/sherwinbularon/todolist-server/internal/config"
	"github.com/sherwinbularon/todolist-server/internal/core/domain"
	"github.com/sherwinbularon/todolist-server/internal/core/ports"
	"github.com/sherwinbularon/todolist-server/pkg/translator"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  "pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	cfg := config.LoadConfig()

	titlePolicy, err := domain.ParseTitlePolicy(cfg.TitlePolicy)
	if err != nil {
		logger.Fatal("invalid title policy", zap.String("value", cfg.TitlePolicy), zap.Error(err))
	}

	var taskRepository ports.TaskRepository
	var healthHandler *handlers.HealthHandler

	switch cfg.StorageDriver {
	case config.DriverMySQL:
		db, err := dbadapter.ConnectDB(cfg)
		if err != nil {
			logger.Fatal("failed to connect to mysql", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Warn("failed to close mysql connection", zap.Error(err))
			}
		}()
		taskRepository = dbadapter.NewTaskRepository(db)
		healthHandler = handlers.NewHealthHandler(db)
	case config.DriverMemory:
		taskRepository = memory.NewTaskRepository()
		healthHandler = handlers.NewHealthHandler(nil)
	default:
		logger.Fatal("unknown storage driver", zap.String("driver", cfg.StorageDriver))
	}

	taskService := appservice.NewTaskService(taskRepository, titlePolicy)
	taskHandler := handlers.NewTaskHandler(taskService)

	r := gin.New()
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger))
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("invalid trusted proxies", zap.Error(err))
	}
	httpadapter.RegisterRoutes(r, healthHandler, taskHandler)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	addr := ":" + port
	logger.Info("starting server", zap.String("addr", addr), zap.String("driver", cfg.StorageDriver))
	if err := r.Run(addr); err != nil {
		logger.Fatal("could not start server", zap.Error(err))
	}
}
