// Package pipeline wires the quoting components together and runs the
// transcript-to-quote flow.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jonathan/renovation-quoter/internal/catalog"
	"github.com/jonathan/renovation-quoter/internal/config"
	"github.com/jonathan/renovation-quoter/internal/db"
	"github.com/jonathan/renovation-quoter/internal/feedback"
	"github.com/jonathan/renovation-quoter/internal/labor"
	"github.com/jonathan/renovation-quoter/internal/logging"
	"github.com/jonathan/renovation-quoter/internal/memory"
	"github.com/jonathan/renovation-quoter/internal/parsing"
	"github.com/jonathan/renovation-quoter/internal/quoting"
	"github.com/jonathan/renovation-quoter/internal/supplier"
	"github.com/jonathan/renovation-quoter/internal/types"
	"github.com/jonathan/renovation-quoter/internal/vat"
)

// QuoteArchive stores and retrieves built quotes
type QuoteArchive interface {
	Save(ctx context.Context, transcript string, quote *types.Quote) error
	Get(ctx context.Context, id uuid.UUID) (*db.QuoteRecord, error)
	List(ctx context.Context, filters db.QuoteFilters) ([]db.QuoteSummary, error)
}

// Services holds the long-lived components shared by the CLI and the API
type Services struct {
	Interpreter *parsing.Interpreter
	Builder     *quoting.Builder
	Catalog     catalog.Catalog
	Feedback    *feedback.Adjuster
	Memory      memory.Store
	Archive     QuoteArchive // nil without a database
	BaseMargin  float64
	TopK        int
	Logger      *slog.Logger

	closers []func()
}

// Assemble builds Services from configuration. An unreachable database
// degrades to the local feedback and memory files.
func Assemble(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Services, error) {
	logger = logging.OrDiscard(logger)
	svc := &Services{
		BaseMargin: cfg.Margin(),
		TopK:       cfg.TopK,
		Logger:     logger,
	}

	interp, err := parsing.NewInterpreter(parsing.DefaultRules())
	if err != nil {
		return nil, fmt.Errorf("failed to create interpreter: %w", err)
	}
	svc.Interpreter = interp

	if cfg.Catalog != "" {
		svc.Catalog, err = catalog.Load(cfg.Catalog)
		if err != nil {
			return nil, err
		}
	} else {
		svc.Catalog = catalog.Default()
	}

	var prices supplier.PriceFetcher = supplier.NewSimulated()
	if cfg.SupplierURL != "" {
		prices = supplier.NewHTTPFetcher(cfg.SupplierURL)
	}
	svc.Builder = quoting.NewBuilder(
		labor.NewEstimator(labor.DefaultTable()),
		vat.NewResolver(vat.DefaultTable()),
		supplier.WithFallback(prices, cfg.PriceTimeout(), logger),
		quoting.WithLogger(logger),
	)

	var database *db.DB
	if cfg.DatabaseURL != "" {
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Warn("database unavailable, continuing with local files", "error", err)
			database = nil
		} else {
			svc.closers = append(svc.closers, database.Close)
			logger.Debug("connected to database")
		}
	}

	var ledger feedback.Ledger
	var backend memory.Backend
	if database != nil {
		ledger = db.NewFeedbackLedger(database)
		backend = db.NewMemoryBackend(database)
		svc.Archive = db.NewQuoteArchive(database)
	} else {
		ledger = feedback.NewCSVLedger(cfg.FeedbackFile)
		if cfg.MemoryFile != "" {
			backend, err = memory.OpenFileBackend(cfg.MemoryFile)
			if err != nil {
				svc.Close()
				return nil, err
			}
		} else {
			backend = memory.NewMemoryBackend()
		}
	}
	svc.Feedback = feedback.NewAdjuster(ledger, logger)

	embedder, err := svc.newEmbedder(ctx, cfg)
	if err != nil {
		svc.Close()
		return nil, err
	}
	svc.Memory = memory.NewVectorStore(embedder, backend, logger)

	return svc, nil
}

func (s *Services) newEmbedder(ctx context.Context, cfg config.Config) (memory.Embedder, error) {
	switch cfg.Embedder {
	case config.EmbedderGemini:
		emb, err := memory.NewGeminiEmbedder(ctx, cfg.APIKey, "")
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini embedder: %w", err)
		}
		s.closers = append(s.closers, func() { _ = emb.Close() })
		return emb, nil
	default:
		return memory.NewHashingEmbedder(), nil
	}
}

// Close releases database and client resources
func (s *Services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}
