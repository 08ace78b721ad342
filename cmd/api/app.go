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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/hugohenrick/rms-api/docs"
	"github.com/hugohenrick/rms-api/internal/adapter/api/controller"
	"github.com/hugohenrick/rms-api/internal/adapter/api/route"
	"github.com/hugohenrick/rms-api/internal/adapter/repository"
	"github.com/hugohenrick/rms-api/internal/adapter/repository/memory"
	"github.com/hugohenrick/rms-api/internal/config"
	"github.com/hugohenrick/rms-api/internal/domain/customer"
	"github.com/hugohenrick/rms-api/internal/domain/product"
	"github.com/hugohenrick/rms-api/internal/domain/report"
	"github.com/hugohenrick/rms-api/internal/domain/sale"
	"github.com/hugohenrick/rms-api/internal/domain/supplier"
	"github.com/hugohenrick/rms-api/internal/infrastructure/database"
	"github.com/hugohenrick/rms-api/internal/usecase/checkout"
	"github.com/hugohenrick/rms-api/internal/usecase/reporting"
	"github.com/hugohenrick/rms-api/pkg/idempotency"
	"github.com/hugohenrick/rms-api/pkg/jwt"
	"github.com/hugohenrick/rms-api/pkg/logger"
	"github.com/hugohenrick/rms-api/pkg/metrics"
	"github.com/hugohenrick/rms-api/pkg/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 10 * time.Second

// storage reúne os repositórios de um backend de armazenamento
type storage struct {
	suppliers supplier.Repository
	products  product.Repository
	customers customer.Repository
	sales     sale.Repository
	reports   report.Repository
	pinger    controller.Pinger
	close     func()
}

// App representa a aplicação e suas dependências
type App struct {
	config  *config.Config
	logger  logger.Logger
	router  *gin.Engine
	storage *storage
}

// NewApp cria uma nova instância do aplicativo
func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	gin.SetMode(cfg.GinMode)

	store, err := openStorage(cfg, log)
	if err != nil {
		return nil, err
	}

	var auth *jwt.Manager
	if cfg.JWTSecret != "" {
		if auth, err = jwt.NewManager(cfg.JWTSecret, jwt.DefaultIssuer); err != nil {
			store.close()
			return nil, err
		}
		log.Info("autenticação JWT habilitada")
	}

	registry := metrics.NewRegistry()

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(corsConfig(cfg)))
	router.Use(registry.NewServerMetrics().Middleware())
	router.Use(middleware.RequestTimeout(cfg.RequestTimeout))

	route.SetupRoutes(router, route.Controllers{
		System:    controller.NewSystemController(store.pinger, log),
		Suppliers: controller.NewSupplierController(store.suppliers, log),
		Products:  controller.NewProductController(store.products, log),
		Customers: controller.NewCustomerController(store.customers, log),
		Sales: controller.NewSaleController(
			checkout.NewService(store.sales, cfg.TaxRate, log, registry.NewSaleMetrics()), log),
		Reports: controller.NewReportController(reporting.NewService(store.reports, cfg.ReportLocation), log),
	}, middleware.AuthMiddleware(auth))

	router.GET("/metrics", gin.WrapH(registry.Handler()))
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return &App{
		config:  cfg,
		logger:  log,
		router:  router,
		storage: store,
	}, nil
}

// openStorage conecta ao backend configurado em DB_DRIVER
func openStorage(cfg *config.Config, log logger.Logger) (*storage, error) {
	if cfg.DBDriver == config.DriverMemory {
		log.Warn("usando armazenamento em memória; os dados não serão persistidos")
		store := memory.NewStore(cfg.LockTimeout)
		return &storage{
			suppliers: store.Suppliers(),
			products:  store.Products(),
			customers: store.Customers(),
			sales:     store.Sales(),
			reports:   store.Reports(),
			pinger:    store,
			close:     func() {},
		}, nil
	}

	if cfg.AutoMigrate {
		log.Info("aplicando migrações")
		if err := database.RunMigrations(cfg.Database.MigrationURL()); err != nil {
			return nil, fmt.Errorf("erro ao aplicar migrações: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.NewPostgresDB(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	return &storage{
		suppliers: repository.NewSupplierRepository(db),
		products:  repository.NewProductRepository(db),
		customers: repository.NewCustomerRepository(db),
		sales:     repository.NewSaleRepository(db, cfg.LockTimeout),
		reports:   repository.NewReportRepository(db),
		pinger:    db,
		close:     db.Close,
	}, nil
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", idempotency.Header)
	if cfg.AllowAllOrigins() {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.AllowedOrigins
	}
	return c
}

// Start inicia o servidor HTTP e aguarda SIGINT/SIGTERM para encerrar
func (a *App) Start() error {
	srv := &http.Server{
		Addr:              ":" + a.config.Port,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("servidor iniciado", "port", a.config.Port, "driver", a.config.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		a.logger.Info("encerrando servidor", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("erro ao encerrar servidor: %w", err)
	}
	return nil
}

// Router retorna o router da aplicação
func (a *App) Router() *gin.Engine {
	return a.router
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.storage != nil {
		a.storage.close()
	}
}
