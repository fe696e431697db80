package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zlimaaa/base-api-go/internal/app"
	"github.com/zlimaaa/base-api-go/pkg/config"
	"github.com/zlimaaa/base-api-go/pkg/logging"
	"github.com/zlimaaa/base-api-go/pkg/telemetry"
	"go.uber.org/zap"
)

func main() {
	logger, err := logging.NewLogger()
	if err != nil {
		fmt.Printf("Erro ao inicializar logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		logger.Fatal("Falha ao carregar configuração", zap.Error(err))
	}

	ctx := context.Background()

	// Inicializar o tracer se estiver habilitado
	if cfg.Tracing.Enabled {
		tp, err := telemetry.NewTracerProvider(
			ctx,
			cfg.Tracing.ServiceName,
			cfg.Tracing.Endpoint,
			cfg.Tracing.SamplingRatio,
			logger,
		)
		if err != nil {
			logger.Error("Falha ao inicializar tracer", zap.Error(err))
		} else {
			logger.Info("Tracer inicializado com sucesso",
				zap.String("endpoint", cfg.Tracing.Endpoint))
			defer tp.Shutdown(context.Background())
		}
	}

	application, err := app.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Falha ao inicializar aplicação", zap.Error(err))
	}
	defer application.Shutdown()

	if !cfg.Logging.Production {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	application.RegisterRoutes(router)

	server := &http.Server{
		Addr:           fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		logger.Info("Iniciando servidor HTTP", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Erro no servidor HTTP", zap.Error(err))
		}
	}()

	// Aguardar sinal de término para desligamento gracioso
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Desligando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Erro ao desligar servidor", zap.Error(err))
	}

	logger.Info("Servidor encerrado")
}
