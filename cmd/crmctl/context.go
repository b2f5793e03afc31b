package main

import (
	"context"
	"os"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/pipeline-crm/internal/application/auth"
	"github.com/jhoicas/pipeline-crm/internal/application/crm"
	"github.com/jhoicas/pipeline-crm/internal/application/pipeline"
	inframail "github.com/jhoicas/pipeline-crm/internal/infrastructure/mail"
	"github.com/jhoicas/pipeline-crm/internal/infrastructure/notify"
	"github.com/jhoicas/pipeline-crm/internal/infrastructure/postgres"
	"github.com/jhoicas/pipeline-crm/pkg/config"
	"github.com/jhoicas/pipeline-crm/pkg/logger"
)

// commandContext carga configuración y conexión una sola vez por ejecución.
type commandContext struct {
	once sync.Once
	cfg  *config.Config
	log  *logger.Logger
	pool *pgxpool.Pool
	err  error
}

func newCommandContext() *commandContext {
	return &commandContext{}
}

func (c *commandContext) ensure(ctx context.Context) error {
	c.once.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			c.err = err
			return
		}
		c.cfg = cfg
		// Logs a stderr para no mezclarlos con las tablas.
		c.log = logger.New(logger.Config{Env: "development", Level: cfg.Log.Level, Output: os.Stderr})
		c.pool, c.err = postgres.NewPool(ctx, cfg.DB)
	})
	return c.err
}

func (c *commandContext) close() {
	if c.pool != nil {
		c.pool.Close()
	}
}

// services casos de uso armados sobre PostgreSQL; el actor de la CLI es el sistema.
type services struct {
	registry *pipeline.RegistryUseCase
	board    *pipeline.BoardUseCase
	history  *pipeline.HistoryReader
	settings *crm.SettingsUseCase
	products *crm.ProductUseCase
	auth     *auth.AuthUseCase
}

func (c *commandContext) services(ctx context.Context) (*services, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, err
	}
	flash := notify.NewFlashStore(notify.DefaultCapacity, c.log)
	tx := postgres.NewTxRunner(c.pool)
	stages := postgres.NewPipelineStageRepository(c.pool)
	customers := postgres.NewCustomerRepository(c.pool)
	transitions := pipeline.NewTransitionService(tx, flash)
	return &services{
		registry: pipeline.NewRegistryUseCase(stages, tx, flash),
		board:    pipeline.NewBoardUseCase(stages, customers, transitions),
		history:  pipeline.NewHistoryReader(customers, postgres.NewStageLogRepository(c.pool)),
		settings: crm.NewSettingsUseCase(
			postgres.NewLeadSourceRepository(c.pool),
			postgres.NewTagRepository(c.pool),
			postgres.NewCustomFieldRepository(c.pool),
			customers, flash,
		),
		products: crm.NewProductUseCase(postgres.NewProductRepository(c.pool)),
		auth: auth.NewAuthUseCase(
			postgres.NewUserRepository(c.pool),
			postgres.NewInvitationRepository(c.pool),
			inframail.NewLogMailer(c.log),
			auth.JWTConfig{
				Secret:               c.cfg.JWT.Secret,
				ExpMinutes:           c.cfg.JWT.Expiration,
				InvitationExpMinutes: c.cfg.JWT.InvitationExpiration,
				Issuer:               c.cfg.JWT.Issuer,
			},
			c.cfg.App.BaseURL,
		),
	}, nil
}
