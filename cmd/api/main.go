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
	"github.com/jhoicas/pipeline-crm/internal/application/auth"
	"github.com/jhoicas/pipeline-crm/internal/application/crm"
	"github.com/jhoicas/pipeline-crm/internal/application/pipeline"
	"github.com/jhoicas/pipeline-crm/internal/application/ports"
	inframail "github.com/jhoicas/pipeline-crm/internal/infrastructure/mail"
	"github.com/jhoicas/pipeline-crm/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/pipeline-crm/internal/infrastructure/pdf"
	"github.com/jhoicas/pipeline-crm/internal/infrastructure/postgres"
	"github.com/jhoicas/pipeline-crm/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/pipeline-crm/internal/interfaces/http"
	"github.com/jhoicas/pipeline-crm/pkg/config"
	"github.com/jhoicas/pipeline-crm/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if _, err := postgres.Migrate(ctx, pool, log); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	customerRepo := postgres.NewCustomerRepository(pool)
	stageRepo := postgres.NewPipelineStageRepository(pool)
	logRepo := postgres.NewStageLogRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	invitationRepo := postgres.NewInvitationRepository(pool)
	leadSourceRepo := postgres.NewLeadSourceRepository(pool)
	tagRepo := postgres.NewTagRepository(pool)
	customFieldRepo := postgres.NewCustomFieldRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	quoteRepo := postgres.NewQuoteRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	flash := notify.NewFlashStore(notify.DefaultCapacity, log)

	// Sin SMTP configurado las invitaciones solo quedan en el log.
	var mailer ports.InvitationMailer = inframail.NewLogMailer(log)
	if cfg.Mail.Enabled() {
		mailer = inframail.NewSMTPMailer(cfg.Mail, log)
	}

	files, err := storage.NewOSFileStorage(cfg.Storage.Root)
	if err != nil {
		log.Fatal().Err(err).Str("root", cfg.Storage.Root).Msg("almacenamiento de documentos")
	}

	registry := pipeline.NewRegistryUseCase(stageRepo, txRunner, flash)
	transitions := pipeline.NewTransitionService(txRunner, flash)
	history := pipeline.NewHistoryReader(customerRepo, logRepo)
	board := pipeline.NewBoardUseCase(stageRepo, customerRepo, transitions)

	customerUC := crm.NewCustomerUseCase(crm.CustomerDeps{
		Customers:    customerRepo,
		Stages:       stageRepo,
		LeadSources:  leadSourceRepo,
		Tags:         tagRepo,
		CustomFields: customFieldRepo,
		Users:        userRepo,
		Tx:           txRunner,
		Transitions:  transitions,
	})
	settingsUC := crm.NewSettingsUseCase(leadSourceRepo, tagRepo, customFieldRepo, customerRepo, flash)
	documentUC := crm.NewDocumentUseCase(documentRepo, customerRepo, files)
	taskUC := crm.NewTaskUseCase(taskRepo, customerRepo, userRepo, flash)
	productUC := crm.NewProductUseCase(productRepo)
	quoteUC := crm.NewQuoteUseCase(quoteRepo, productRepo, customerRepo, txRunner, infrapdf.NewQuotePDFGenerator(cfg.App.Name))

	authUC := auth.NewAuthUseCase(userRepo, invitationRepo, mailer, auth.JWTConfig{
		Secret:               cfg.JWT.Secret,
		ExpMinutes:           cfg.JWT.Expiration,
		InvitationExpMinutes: cfg.JWT.InvitationExpiration,
		Issuer:               cfg.JWT.Issuer,
	}, cfg.App.BaseURL)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    cfg.HTTP.BodyLimit,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Pipeline CRM API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		Registry:      registry,
		Transitions:   transitions,
		History:       history,
		Board:         board,
		CustomerUC:    customerUC,
		SettingsUC:    settingsUC,
		DocumentUC:    documentUC,
		TaskUC:        taskUC,
		ProductUC:     productUC,
		QuoteUC:       quoteUC,
		Notifications: flash,
		JWTSecret:     cfg.JWT.Secret,
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
