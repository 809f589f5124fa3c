package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"estatechat/internal/model"

	"github.com/pgvector/pgvector-go"
)

// VectorBatchSize caps how many points one upsert statement batch carries.
const VectorBatchSize = 100

// VectorFilter is the conjunctive predicate applied to a nearest-neighbor
// query. Nil fields impose no condition; set fields are ANDed together.
type VectorFilter struct {
	MinPrice *float64
	MaxPrice *float64
	City     *string
}

// ScoredPoint is one nearest-neighbor candidate with its similarity score.
type ScoredPoint struct {
	PropertyID string   `db:"property_id"`
	Title      *string  `db:"title"`
	Location   *string  `db:"location"`
	City       *string  `db:"city"`
	Price      *float64 `db:"price"`
	Score      float64  `db:"score"`
}

// VectorRepository is the vector-store collaborator, backed by the pgvector
// embedding column of the properties table.
type VectorRepository struct {
	repo *PostgresRepository
}

// NewVectorRepository creates a vector repository sharing the structured
// store's connection pool.
func NewVectorRepository(repo *PostgresRepository) *VectorRepository {
	return &VectorRepository{repo: repo}
}

// Upsert writes embedding vectors in batches of at most VectorBatchSize per
// transaction. It returns the number of points written plus per-point errors.
func (r *VectorRepository) Upsert(ctx context.Context, items []model.EmbeddingItem) (int, []string) {
	success := 0
	var errors []string

	for start := 0; start < len(items); start += VectorBatchSize {
		end := start + VectorBatchSize
		if end > len(items) {
			end = len(items)
		}
		n, errs := r.upsertBatch(ctx, items[start:end])
		success += n
		errors = append(errors, errs...)
	}

	return success, errors
}

func (r *VectorRepository) upsertBatch(ctx context.Context, items []model.EmbeddingItem) (int, []string) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	success := 0
	var errors []string

	tx, err := r.repo.db.BeginTxx(ctx, nil)
	if err != nil {
		errors = append(errors, fmt.Sprintf("failed to start transaction: %v", err))
		return success, errors
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `UPDATE properties SET embedding = $1, updated_at = NOW() WHERE property_id = $2`)
	if err != nil {
		errors = append(errors, fmt.Sprintf("failed to prepare statement: %v", err))
		return success, errors
	}
	defer stmt.Close()

	for _, item := range items {
		vec := pgvector.NewVector(item.Embedding)
		if _, err := stmt.ExecContext(ctx, vec, item.PropertyID); err != nil {
			errors = append(errors, fmt.Sprintf("property_id %s: %v", item.PropertyID, err))
			continue
		}
		success++
	}

	if err := tx.Commit(); err != nil {
		errors = append(errors, fmt.Sprintf("failed to commit transaction: %v", err))
		return 0, errors
	}

	return success, errors
}

// Search runs a cosine nearest-neighbor query bounded by limit. Every
// supplied filter condition must hold for a candidate to qualify.
func (r *VectorRepository) Search(ctx context.Context, vec []float32, limit int, filter VectorFilter) ([]ScoredPoint, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	whereClauses := []string{"embedding IS NOT NULL"}
	args := []interface{}{pgvector.NewVector(vec)}
	argIndex := 2

	if filter.MinPrice != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("price >= $%d", argIndex))
		args = append(args, *filter.MinPrice)
		argIndex++
	}
	if filter.MaxPrice != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("price <= $%d", argIndex))
		args = append(args, *filter.MaxPrice)
		argIndex++
	}
	if filter.City != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("city = $%d", argIndex))
		args = append(args, *filter.City)
		argIndex++
	}

	query := fmt.Sprintf(`
		SELECT
			property_id, title, location, city, price,
			1 - (embedding <=> $1) AS score
		FROM properties
		WHERE %s
		ORDER BY embedding <=> $1
		LIMIT $%d
	`, strings.Join(whereClauses, " AND "), argIndex)
	args = append(args, limit)

	var points []ScoredPoint
	if err := r.repo.db.SelectContext(ctx, &points, query, args...); err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	return points, nil
}

// GetByKey fetches the stored vector for a property via an exact-match point
// lookup. It returns nil when the property has no stored vector.
func (r *VectorRepository) GetByKey(ctx context.Context, propertyID string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var vec pgvector.Vector
	query := `SELECT embedding FROM properties WHERE property_id = $1 AND embedding IS NOT NULL LIMIT 1`
	err := r.repo.db.GetContext(ctx, &vec, query, propertyID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vector: %w", err)
	}
	return vec.Slice(), nil
}
