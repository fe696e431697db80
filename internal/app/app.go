package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/zlimaaa/base-api-go/internal/adapter/database"
	adapterhttp "github.com/zlimaaa/base-api-go/internal/adapter/http"
	"github.com/zlimaaa/base-api-go/internal/app/auth"
	"github.com/zlimaaa/base-api-go/internal/app/perfil"
	"github.com/zlimaaa/base-api-go/internal/app/usuario"
	"github.com/zlimaaa/base-api-go/internal/infra/metrics"
	"github.com/zlimaaa/base-api-go/internal/infra/middleware"
	"github.com/zlimaaa/base-api-go/pkg/config"
	"github.com/zlimaaa/base-api-go/pkg/security"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// App concentra as dependências da aplicação
type App struct {
	Logger         *zap.Logger
	Config         *config.Config
	DB             *database.Database
	Middleware     *middleware.Middleware
	UsuarioService *usuario.Service
	PerfilService  *perfil.Service
	AuthService    *auth.AuthService
	APIMetrics     *metrics.APIMetrics

	usuarioHandler *adapterhttp.UsuarioHandler
	authHandler    *adapterhttp.AuthHandler
	healthChecker  *adapterhttp.HealthChecker
}

// NewApp cria uma nova instância da aplicação com todas as dependências injetadas
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	dbConfig := database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        gormLogLevel(cfg.Database.LogLevel),
		SlowThreshold:   cfg.Database.SlowThreshold,
		SkipMigrations:  cfg.Database.SkipMigrations,
	}

	db, err := database.NewDatabase(ctx, dbConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("erro ao inicializar banco de dados: %w", err)
	}

	var apiMetrics *metrics.APIMetrics
	if cfg.Metrics.Enabled {
		apiMetrics = metrics.NewAPIMetrics()
	}

	usuarioRepo := database.NewUsuarioRepository(db.DB(), logger)
	perfilRepo := database.NewPerfilRepository(db.DB(), logger)

	perfilService := perfil.NewService(perfilRepo, logger)
	usuarioService := usuario.NewService(usuarioRepo, perfilService, logger)

	keyManager, err := security.NewKeyManager(cfg.Auth.JWTSecret, logger)
	if err != nil {
		return nil, fmt.Errorf("erro ao inicializar chaves JWT: %w", err)
	}
	authService := auth.NewAuthService(keyManager, usuarioService, cfg.Auth.TokenExpiration, logger)

	middlewares := middleware.NewMiddleware(
		logger,
		authService,
		apiMetrics,
		cfg.Tracing.ServiceName,
		cfg.Server.AllowedOrigins,
	)

	return &App{
		Logger:         logger,
		Config:         cfg,
		DB:             db,
		Middleware:     middlewares,
		UsuarioService: usuarioService,
		PerfilService:  perfilService,
		AuthService:    authService,
		APIMetrics:     apiMetrics,
		usuarioHandler: adapterhttp.NewUsuarioHandler(usuarioService, apiMetrics, logger),
		authHandler:    adapterhttp.NewAuthHandler(authService, logger),
		healthChecker:  adapterhttp.NewHealthChecker(db, logger),
	}, nil
}

// RegisterRoutes registra todas as rotas no router
func (a *App) RegisterRoutes(router *gin.Engine) {
	router.Use(a.Middleware.Recovery())
	router.Use(a.Middleware.RequestID())
	router.Use(a.Middleware.Logger())
	router.Use(a.Middleware.SecurityHeaders())
	router.Use(a.Middleware.CORS())
	router.Use(a.Middleware.IgnoreFavicon())
	if a.Config.Tracing.Enabled {
		router.Use(a.Middleware.Tracing())
	}
	router.Use(a.Middleware.Metrics())

	if a.APIMetrics != nil {
		if mm := a.Middleware.MetricsMiddleware(); mm != nil {
			mm.RegisterEndpoint(router, a.Config.Metrics.PrometheusPath)
		}
	}

	// Rotas públicas
	router.POST("/auth/login", a.authHandler.Login)
	router.GET("/health", a.healthChecker.LivenessCheck)
	router.GET("/health/liveness", a.healthChecker.LivenessCheck)
	router.GET("/health/readiness", a.healthChecker.ReadinessCheck)

	api := router.Group("/api")
	{
		// Cadastro aberto, o perfil padrão é atribuído no serviço
		api.POST("/usuarios", a.usuarioHandler.Criar)

		// Rotas autenticadas
		autenticado := api.Group("")
		autenticado.Use(a.Middleware.Authenticate)
		{
			autenticado.GET("/usuarios/:id", a.usuarioHandler.Consultar)
			autenticado.PUT("/usuarios", a.usuarioHandler.Atualizar)
			autenticado.DELETE("/usuarios/:id", a.usuarioHandler.Excluir)
		}

		// Rotas administrativas
		admin := api.Group("/admin")
		admin.Use(a.Middleware.AuthenticateAdmin)
		{
			admin.GET("/usuarios", a.usuarioHandler.Listar)
			admin.PUT("/usuarios/perfis", a.usuarioHandler.AlterarPerfis)
			admin.DELETE("/usuarios/:id", a.usuarioHandler.Deletar)
			admin.GET("/health", a.healthChecker.DetailedHealth)
		}
	}
}

// Shutdown libera os recursos mantidos pela aplicação
func (a *App) Shutdown() error {
	return a.DB.Close()
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "warn":
		return gormlogger.Warn
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
