package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"maichat/internal/domain"
	chatModels "maichat/internal/domain/models/chat"
)

// MenuRepository performs nearest-neighbor retrieval over the pgvector
// menu embedding table. Each row holds the item text, a jsonb metadata
// record (including a numeric "calories" field) and its embedding.
type MenuRepository struct {
	pool   *pgxpool.Pool
	table  string
	logger *slog.Logger
}

// NewMenuRepository creates a new menu repository
func NewMenuRepository(cfg *RepositoryConfig) *MenuRepository {
	return &MenuRepository{
		pool:   cfg.Pool,
		table:  cfg.Table,
		logger: cfg.Logger,
	}
}

// SimilaritySearch returns the metadata of the k items nearest to the
// query embedding whose calories metadata is strictly below maxCalories,
// ordered by descending similarity. An empty result is not an error.
func (r *MenuRepository) SimilaritySearch(ctx context.Context, embedding []float32, k int, maxCalories float64) ([]chatModels.MenuItem, error) {
	// Table name is interpolated (env-prefixed, not user input); the
	// embedding, filter and limit ride as parameters.
	query := fmt.Sprintf(`
		SELECT cmetadata, 1 - (embedding <=> $1::vector) AS score
		FROM %s
		WHERE (cmetadata->>'calories')::numeric < $2
		ORDER BY embedding <=> $1::vector
		LIMIT $3`, r.table)

	rows, err := r.pool.Query(ctx, query, vectorLiteral(embedding), maxCalories, k)
	if err != nil {
		return nil, &domain.UpstreamError{Op: "similarity_search", Err: err}
	}
	defer rows.Close()

	var items []chatModels.MenuItem
	for rows.Next() {
		var item chatModels.MenuItem
		if err := rows.Scan(&item.Metadata, &item.Score); err != nil {
			return nil, &domain.UpstreamError{Op: "similarity_search", Err: fmt.Errorf("scan row: %w", err)}
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.UpstreamError{Op: "similarity_search", Err: err}
	}

	r.logger.Debug("similarity search completed",
		"table", r.table,
		"max_calories", maxCalories,
		"matches", len(items),
	)
	return items, nil
}

// vectorLiteral renders an embedding in pgvector's input syntax,
// e.g. "[0.1,0.2,0.3]", for the $n::vector cast.
func vectorLiteral(embedding []float32) string {
	var b strings.Builder
	b.Grow(len(embedding)*10 + 2)
	b.WriteByte('[')
	for i, v := range embedding {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}
