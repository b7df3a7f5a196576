package search

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"maichat/internal/config"
	"maichat/internal/domain"
	chatModels "maichat/internal/domain/models/chat"
	"maichat/internal/repository/postgres"
)

// Embedder turns a text query into an embedding vector.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// menuIndex is the retrieval side of the store, satisfied by the postgres
// menu repository and by stubs in tests.
type menuIndex interface {
	SimilaritySearch(ctx context.Context, embedding []float32, k int, maxCalories float64) ([]chatModels.MenuItem, error)
}

// Store is the menu vector index as an explicitly owned resource: the
// connection pool is created lazily on first search, exactly once under
// concurrent first use, reused for every later call, and released by
// Close at shutdown. A ConfigurationError is terminal for the process and
// never retried; a transient connect failure (network blip, canceled
// first-caller context) leaves the store uninitialized so a later search
// can try again.
//
// Store implements the MenuSearcher interface.
type Store struct {
	cfg      *config.Config
	embedder Embedder
	logger   *slog.Logger

	// connect is swappable in tests; defaults to the pgvector-backed index.
	connect func(ctx context.Context) (menuIndex, error)

	mu      sync.Mutex
	index   menuIndex
	pool    *pgxpool.Pool
	initErr error // latched ConfigurationError, if any
}

// NewStore creates the store without connecting. The first Search call
// performs initialization.
func NewStore(cfg *config.Config, embedder Embedder, logger *slog.Logger) *Store {
	s := &Store{
		cfg:      cfg,
		embedder: embedder,
		logger:   logger,
	}
	s.connect = s.connectPostgres
	return s
}

// Search implements the MenuSearcher interface: top-k nearest menu items
// to the query, filtered to calories strictly below maxCalories, in
// descending similarity order.
func (s *Store) Search(ctx context.Context, query string, k int, maxCalories float64) ([]chatModels.MenuItem, error) {
	index, err := s.init(ctx)
	if err != nil {
		return nil, err
	}

	embedding, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	return index.SimilaritySearch(ctx, embedding, k, maxCalories)
}

// init returns the connected index, connecting on first use. Concurrent
// first callers serialize on the mutex so connect runs at most once for a
// successful initialization. Configuration errors are latched; transient
// connect failures are returned to the caller and retried on the next
// search.
func (s *Store) init(ctx context.Context) (menuIndex, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index != nil {
		return s.index, nil
	}
	if s.initErr != nil {
		return nil, s.initErr
	}

	index, err := s.connect(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrConfiguration) {
			s.initErr = err
		} else {
			s.logger.Warn("menu index connect failed, will retry on next search", "error", err)
		}
		return nil, err
	}
	s.index = index
	return index, nil
}

// connectPostgres validates the connection configuration, creates the
// pool and binds the menu repository. Configuration problems surface as
// ConfigurationError before any network call is made.
func (s *Store) connectPostgres(ctx context.Context) (menuIndex, error) {
	databaseURL, err := s.cfg.DatabaseURL()
	if err != nil {
		return nil, err
	}

	pool, err := postgres.CreateConnectionPool(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	s.pool = pool

	table := postgres.MenuTableName(s.cfg.TablePrefix, s.cfg.MenuCollection)
	s.logger.Info("menu index connected", "table", table)

	return postgres.NewMenuRepository(&postgres.RepositoryConfig{
		Pool:   pool,
		Table:  table,
		Logger: s.logger,
	}), nil
}

// Close releases the connection pool if it was ever created.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pool != nil {
		s.pool.Close()
	}
}
