package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pipeline-crm/internal/application/auth"
	"github.com/jhoicas/pipeline-crm/internal/application/crm"
	"github.com/jhoicas/pipeline-crm/internal/application/pipeline"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	Registry      *pipeline.RegistryUseCase
	Transitions   *pipeline.TransitionService
	History       *pipeline.HistoryReader
	Board         *pipeline.BoardUseCase
	CustomerUC    *crm.CustomerUseCase
	SettingsUC    *crm.SettingsUseCase
	DocumentUC    *crm.DocumentUseCase
	TaskUC        *crm.TaskUseCase
	ProductUC     *crm.ProductUseCase
	QuoteUC       *crm.QuoteUseCase
	Notifications notificationDrainer
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	adminOnly := RequireRole(entity.RoleAdmin)
	pipelineReady := RequirePipeline(deps.Registry)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/invitations/accept", authHandler.AcceptInvitation)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Equipo
	protected.Get("/employees", authHandler.ListEmployees)
	users := protected.Group("/users", adminOnly)
	users.Get("/", authHandler.ListUsers)
	users.Post("/", authHandler.Register)
	users.Post("/invitations", authHandler.Invite)

	// Etapas del embudo: lectura para todos, cambios solo admin
	stageHandler := NewStageHandler(deps.Registry)
	stages := protected.Group("/pipeline-stages")
	stages.Get("/", stageHandler.List)
	stages.Post("/", adminOnly, stageHandler.Create)
	stages.Put("/order", adminOnly, stageHandler.Reorder)
	stages.Put("/:id", adminOnly, validIDs, stageHandler.Rename)
	stages.Post("/:id/default", adminOnly, validIDs, stageHandler.SetDefault)
	stages.Delete("/:id", adminOnly, validIDs, stageHandler.Delete)

	// Tablero
	boardHandler := NewBoardHandler(deps.Board)
	board := protected.Group("/board", pipelineReady)
	board.Get("/", boardHandler.Board)
	board.Post("/moves", boardHandler.Move)

	// Clientes
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.Transitions, deps.Registry, deps.History)
	documentHandler := NewDocumentHandler(deps.DocumentUC)
	taskHandler := NewTaskHandler(deps.TaskUC)
	quoteHandler := NewQuoteHandler(deps.QuoteUC)
	customers := protected.Group("/customers")
	customers.Post("/", pipelineReady, customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/tabs", customerHandler.Tabs)
	customers.Get("/:id", validIDs, customerHandler.Get)
	customers.Put("/:id", validIDs, customerHandler.Update)
	customers.Delete("/:id", validIDs, customerHandler.Delete)
	customers.Post("/:id/restore", validIDs, customerHandler.Restore)
	customers.Post("/:id/stage", validIDs, customerHandler.ChangeStage)
	customers.Get("/:id/stage/suggestion", validIDs, customerHandler.SuggestStage)
	customers.Put("/:id/employee", adminOnly, validIDs, customerHandler.ChangeEmployee)
	customers.Get("/:id/history", validIDs, customerHandler.History)
	customers.Get("/:id/documents", validIDs, documentHandler.List)
	customers.Post("/:id/documents", validIDs, documentHandler.Upload)
	customers.Get("/:id/tasks", validIDs, taskHandler.ForCustomer)
	customers.Get("/:id/quotes", validIDs, quoteHandler.ForCustomer)

	// Documentos
	documents := protected.Group("/documents")
	documents.Get("/:id", validIDs, documentHandler.Download)
	documents.Delete("/:id", validIDs, documentHandler.Delete)

	// Tareas
	tasks := protected.Group("/tasks")
	tasks.Post("/", taskHandler.Create)
	tasks.Get("/", taskHandler.List)
	tasks.Get("/calendar", taskHandler.Calendar)
	tasks.Get("/:id", validIDs, taskHandler.Get)
	tasks.Put("/:id", validIDs, taskHandler.Update)
	tasks.Post("/:id/complete", validIDs, taskHandler.Complete)
	tasks.Delete("/:id", validIDs, taskHandler.Delete)

	// Productos y cotizaciones
	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Put("/:id", validIDs, productHandler.Update)

	quotes := protected.Group("/quotes")
	quotes.Post("/", quoteHandler.Create)
	quotes.Get("/", quoteHandler.List)
	quotes.Get("/:id", validIDs, quoteHandler.Get)
	quotes.Get("/:id/pdf", validIDs, quoteHandler.PDF)

	// Configuración (solo admin)
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settings := protected.Group("/settings", adminOnly)
	settings.Get("/lead-sources", settingsHandler.ListLeadSources)
	settings.Post("/lead-sources", settingsHandler.CreateLeadSource)
	settings.Put("/lead-sources/:id", validIDs, settingsHandler.UpdateLeadSource)
	settings.Delete("/lead-sources/:id", validIDs, settingsHandler.DeleteLeadSource)
	settings.Get("/tags", settingsHandler.ListTags)
	settings.Post("/tags", settingsHandler.CreateTag)
	settings.Put("/tags/:id", validIDs, settingsHandler.UpdateTag)
	settings.Delete("/tags/:id", validIDs, settingsHandler.DeleteTag)
	settings.Get("/custom-fields", settingsHandler.ListCustomFields)
	settings.Post("/custom-fields", settingsHandler.CreateCustomField)
	settings.Put("/custom-fields/:id", validIDs, settingsHandler.UpdateCustomField)
	settings.Delete("/custom-fields/:id", validIDs, settingsHandler.DeleteCustomField)

	// Avisos
	protected.Get("/notifications", NewNotificationHandler(deps.Notifications).Drain)
}
