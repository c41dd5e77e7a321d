package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/caja-diaria/internal/application/ledger"
	"github.com/tu-usuario/caja-diaria/internal/application/report"
	"github.com/tu-usuario/caja-diaria/internal/domain"
	"github.com/tu-usuario/caja-diaria/internal/infrastructure/localfile"
	httpRouter "github.com/tu-usuario/caja-diaria/internal/interfaces/http"
	"github.com/tu-usuario/caja-diaria/pkg/config"
	"github.com/tu-usuario/caja-diaria/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("data_path", cfg.Storage.DataPath).
		Msg("iniciando aplicación")

	clock := ledger.SystemClock{}
	persist := localfile.New(cfg.Storage.DataPath)

	snap, err := persist.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("cargar el archivo de datos")
	}

	store := ledger.NewStore(clock, persist, log)
	if err := store.LoadSnapshot(snap); err != nil {
		if errors.Is(err, domain.ErrSaveFailed) {
			log.Warn().Err(err).Msg("estado cargado pero el guardado inicial falló")
		} else {
			log.Fatal().Err(err).Msg("cargar el snapshot inicial")
		}
	}

	reports := report.NewUseCase(clock)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Store:   store,
		Reports: reports,
		Log:     log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Fatal().Err(err).Msg("servidor HTTP")
		}
	}()
	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("escuchando")

	// Apagado ordenado: SIGINT/SIGTERM cierran el servidor; el estado ya
	// está en disco porque cada mutación persiste al terminar.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info().Msg("apagando")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
}
