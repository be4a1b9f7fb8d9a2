// Package bootstrap wires configuration, storage and services into a running
// application. cmd/api builds the App and serves its Router.
package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"cvbien-backend/internal/account"
	"cvbien-backend/internal/admin"
	googleauth "cvbien-backend/internal/auth"
	"cvbien-backend/internal/credits"
	"cvbien-backend/internal/documents"
	"cvbien-backend/internal/generations"
	"cvbien-backend/internal/llm"
	openai "cvbien-backend/internal/llm/openai"
	"cvbien-backend/internal/payments"
	"cvbien-backend/internal/shared/config"
	"cvbien-backend/internal/shared/server"
	"cvbien-backend/internal/shared/storage/db"
	"cvbien-backend/internal/shared/storage/object"
	localstore "cvbien-backend/internal/shared/storage/object/local"
	"cvbien-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	DocumentsRepo   documents.DocumentsRepo
	GenerationsRepo generations.Repo
	PaymentsRepo    payments.Repo
	UsersRepo       users.Repo
	CreditStore     credits.Store

	DocumentsService   *documents.Service
	GenerationsService *generations.Service
	CreditsService     *credits.Service
	PaymentsService    *payments.Service
	AccountService     *account.Service
	UsersService       *users.Service

	DocumentsHandler   *documents.Handler
	GenerationsHandler *generations.Handler
	CreditsHandler     *credits.Handler
	PaymentsHandler    *payments.Handler
	AdminHandler       *admin.Handler
	AccountHandler     *account.Handler
	UsersHandler       *users.Handler
	GoogleAuth         *googleauth.GoogleService
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  localstore.New(cfg.LocalStoreDir),
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		AccountHandler:    app.AccountHandler,
		AdminHandler:      app.AdminHandler,
		CreditsHandler:    app.CreditsHandler,
		DocumentHandler:   app.DocumentsHandler,
		GenerationHandler: app.GenerationsHandler,
		PaymentsHandler:   app.PaymentsHandler,
		UserHandler:       app.UsersHandler,
		GoogleAuth:        app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database setup failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	var (
		docRepo     documents.DocumentsRepo
		genRepo     generations.Repo
		paymentRepo payments.Repo
		userRepo    users.Repo
		creditStore credits.Store
		adminSource admin.Source
	)

	if app.DB != nil {
		docRepo = &documents.PGRepo{DB: app.DB}
		genRepo = &generations.PGRepo{DB: app.DB}
		paymentRepo = &payments.PGRepo{DB: app.DB}
		userRepo = &users.PGRepo{DB: app.DB}
		creditStore = credits.NewPGStore(app.DB)
		adminSource = &admin.PGSource{DB: app.DB}
	} else {
		docRepo = documents.NewMemoryRepo()
		genRepo = generations.NewMemoryRepo()
		paymentRepo = payments.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
		creditStore = credits.NewMemoryStore()
		adminSource = admin.EmptySource{}
	}

	llmClient := llm.Client(llm.PlaceholderClient{})
	if app.Config.LLMProvider == "openai" && os.Getenv("OPENAI_API_KEY") != "" {
		openaiClient, err := openai.NewClient(os.Getenv("OPENAI_API_KEY"), app.Config.LLMModel)
		if err != nil {
			return err
		}
		llmClient = openaiClient
	}

	var processor payments.Processor = unconfiguredProcessor{}
	if strings.TrimSpace(app.Config.PaymentSecretKey) != "" {
		httpProcessor, err := payments.NewHTTPProcessor(app.Config.PaymentAPIURL, app.Config.PaymentSecretKey)
		if err != nil {
			return err
		}
		processor = httpProcessor
	}

	creditsSvc := credits.NewService(creditStore)
	docSvc := &documents.Service{Store: app.Store, Repo: docRepo}
	genSvc := &generations.Service{
		Repo:    genRepo,
		DocRepo: docRepo,
		Store:   app.Store,
		LLM:     llmClient,
		Credits: creditsSvc,
	}
	paymentsSvc := &payments.Service{
		Repo:      paymentRepo,
		Processor: processor,
		Credits:   creditsSvc,
	}

	userSvc := users.NewService(userRepo)
	googleAuthSvc := googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		userSvc,
	)

	app.DocumentsRepo = docRepo
	app.GenerationsRepo = genRepo
	app.PaymentsRepo = paymentRepo
	app.UsersRepo = userRepo
	app.CreditStore = creditStore
	app.DocumentsService = docSvc
	app.GenerationsService = genSvc
	app.CreditsService = creditsSvc
	app.PaymentsService = paymentsSvc
	app.AccountService = account.NewService(docRepo, genRepo)
	app.UsersService = userSvc
	app.DocumentsHandler = documents.NewHandler(docSvc)
	app.GenerationsHandler = generations.NewHandler(genSvc)
	app.CreditsHandler = credits.NewHandler(creditsSvc)
	app.PaymentsHandler = payments.NewHandler(paymentsSvc)
	app.AdminHandler = admin.NewHandler(adminSource, app.Config)
	app.AccountHandler = account.NewHandler(app.AccountService)
	app.UsersHandler = users.NewHandler(userSvc)
	app.GoogleAuth = googleAuthSvc

	return nil
}

// unconfiguredProcessor rejects checkout attempts when no payment credentials
// are present, so the rest of the API still works in dev.
type unconfiguredProcessor struct{}

func (unconfiguredProcessor) CreateSession(ctx context.Context, userID string, pack payments.Pack, reference string) (payments.CheckoutSession, error) {
	return payments.CheckoutSession{}, errors.New("payment processor not configured")
}

func (unconfiguredProcessor) GetSession(ctx context.Context, sessionID string) (payments.SessionStatus, error) {
	return payments.SessionStatus{}, errors.New("payment processor not configured")
}
