package app

import (
	"context"
	"fmt"

	"github.com/andy/tuitiondesk/internal/api"
	"github.com/andy/tuitiondesk/internal/config"
	"github.com/andy/tuitiondesk/internal/logger"
	"github.com/andy/tuitiondesk/internal/repository"
	"github.com/andy/tuitiondesk/internal/scanner"
	"github.com/andy/tuitiondesk/internal/service"
)

// App is the dependency injection container for all application components
type App struct {
	Config *config.Config
	Log    *logger.Logger

	// Backend clients
	Members  *api.MembersClient
	Invoices *api.InvoicesClient

	// Services
	Directory service.DirectoryService
	Draft     service.DraftService
	List      service.ListService

	// Alternate detail data path; nil when not configured
	DetailRepo repository.InvoiceDetailRepository

	// Injected QR capability
	Decoder scanner.Decoder
}

// New creates a new App instance from the default config path
func New(ctx context.Context) (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(ctx, cfg)
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	log, err := logger.New(cfg.Log.File)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	httpClient := api.NewClient(cfg.Backend.Timeout(), cfg.Backend.RetryMax)
	members := api.NewMembersClient(httpClient, cfg.Backend.BaseURL, log)
	invoices := api.NewInvoicesClient(httpClient, cfg.Backend.BaseURL, log)

	directory := service.NewDirectoryService(members, log)
	draftSvc := service.NewDraftService(invoices, cfg.Billing.TaxRate, cfg.Billing.ConversionFactor, log)
	listSvc := service.NewListService(invoices, cfg.Backend.MemberID, cfg.Billing.ConversionFactor, log)

	// The detail view is optional; it needs a configured supabase project
	var detailRepo repository.InvoiceDetailRepository
	if cfg.Detail.SupabaseURL != "" {
		detailRepo, err = repository.NewSupabaseDetailRepo(cfg.Detail.SupabaseURL, cfg.Detail.SupabaseKey, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create detail repository: %w", err)
		}
	}

	return &App{
		Config:     cfg,
		Log:        log,
		Members:    members,
		Invoices:   invoices,
		Directory:  directory,
		Draft:      draftSvc,
		List:       listSvc,
		DetailRepo: detailRepo,
		Decoder:    scanner.NewStubDecoder(),
	}, nil
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	if a.Log != nil {
		// Sync errors on closed stderr-less files are expected and ignored
		_ = a.Log.Sync()
	}
	return nil
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	return a.Config.Save(config.DefaultConfigPath())
}
