package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/ems-api/internal/application/attendance"
	"github.com/jhoicas/ems-api/internal/application/auth"
	"github.com/jhoicas/ems-api/internal/application/directory"
	"github.com/jhoicas/ems-api/internal/application/leave"
	"github.com/jhoicas/ems-api/internal/application/usecase"
	"github.com/jhoicas/ems-api/internal/domain/repository"
	"github.com/jhoicas/ems-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/ems-api/internal/infrastructure/pdf"
	"github.com/jhoicas/ems-api/internal/infrastructure/postgres"
	infraxlsx "github.com/jhoicas/ems-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/ems-api/internal/interfaces/http"
	"github.com/jhoicas/ems-api/pkg/config"
	"github.com/jhoicas/ems-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}
	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}

	ctx := context.Background()

	var kv repository.KVStore
	switch cfg.Store.Driver {
	case config.StorePostgres:
		dsn := cfg.DB.ConnectionString()
		if err := postgres.Migrate(dsn, log.Component("migrate")); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		kv = postgres.NewKVStore(pool)
	default:
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		kv = memory.NewKVStore()
	}

	directoryUC := directory.NewDirectoryUseCase(kv, log.Component("directory"),
		directory.WithPasswordCost(cfg.Security.BcryptCost))
	attendanceUC := attendance.NewAttendanceUseCase(kv, log.Component("attendance"), loc)
	leaveUC := leave.NewLeaveUseCase(kv, log.Component("leave"))
	settingsUC := usecase.NewSettingsUseCase(kv, log.Component("settings"))

	// Al arrancar: usuarios semilla y configuración por defecto si faltan.
	if err := directoryUC.EnsureSeedData(ctx); err != nil {
		log.Fatal().Err(err).Msg("datos semilla")
	}
	if err := settingsUC.EnsureDefaults(ctx); err != nil {
		log.Fatal().Err(err).Msg("configuración por defecto")
	}

	reportUC := usecase.NewReportUseCase(
		directoryUC, attendanceUC, leaveUC, settingsUC,
		infrapdf.NewMarotoReportGenerator(loc),
		infraxlsx.NewExcelizeReportExporter(loc),
		cfg.App.Name,
	)
	authUC := auth.NewAuthUseCase(directoryUC, kv, log.Component("auth"), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "EMS API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		DirectoryUC:  directoryUC,
		AttendanceUC: attendanceUC,
		LeaveUC:      leaveUC,
		SettingsUC:   settingsUC,
		ReportUC:     reportUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
