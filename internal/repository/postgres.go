package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"estatechat/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// MaxSearchRows caps how many rows a structured search may return.
const MaxSearchRows = 50

// queryTimeout bounds every store call so a hung database cannot block a
// turn indefinitely.
const queryTimeout = 10 * time.Second

// PostgresRepository is the structured-data collaborator.
type PostgresRepository struct {
	db      *sqlx.DB
	maxRows int
}

// NewPostgresRepository creates a new PostgreSQL repository. maxRows bounds
// how many rows a search may return, hard-capped at MaxSearchRows.
func NewPostgresRepository(dsn string, maxConn, maxIdleConn, maxRows int) (*PostgresRepository, error) {
	// Disable prepared statement caching to avoid "unnamed prepared statement does not exist" errors
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db, maxRows: rowLimit(maxRows)}, nil
}

// rowLimit clamps a configured row limit to (0, MaxSearchRows].
func rowLimit(configured int) int {
	if configured <= 0 || configured > MaxSearchRows {
		return MaxSearchRows
	}
	return configured
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// Search returns listings matching the extracted parameters, capped at
// MaxSearchRows. Absent parameters impose no condition.
func (r *PostgresRepository) Search(ctx context.Context, params model.Params) ([]model.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if params.MinPrice != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("price >= $%d", argIndex))
		args = append(args, *params.MinPrice)
		argIndex++
	}
	if params.MaxPrice != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("price <= $%d", argIndex))
		args = append(args, *params.MaxPrice)
		argIndex++
	}
	if params.Bedrooms != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("bedrooms >= $%d", argIndex))
		args = append(args, *params.Bedrooms)
		argIndex++
	}
	if params.City != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("city ILIKE $%d", argIndex))
		args = append(args, "%"+*params.City+"%")
		argIndex++
	}
	if params.Location != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("location ILIKE $%d", argIndex))
		args = append(args, "%"+*params.Location+"%")
		argIndex++
	}
	if params.PropertyType != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("property_type ILIKE $%d", argIndex))
		args = append(args, "%"+*params.PropertyType+"%")
		argIndex++
	}

	query := fmt.Sprintf(`
		SELECT
			property_id, title, description, location, city, price,
			bedrooms, bathrooms, square_feet, property_type, status, listed_date
		FROM properties
		WHERE %s
		ORDER BY listed_date DESC NULLS LAST
		LIMIT $%d
	`, strings.Join(whereClauses, " AND "), argIndex)
	args = append(args, r.maxRows)

	var listings []model.Listing
	if err := r.db.SelectContext(ctx, &listings, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch listings: %w", err)
	}

	return listings, nil
}

// GetByID retrieves a single listing, or nil when absent.
func (r *PostgresRepository) GetByID(ctx context.Context, propertyID string) (*model.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var listing model.Listing
	query := `
		SELECT
			property_id, title, description, location, city, price,
			bedrooms, bathrooms, square_feet, property_type, status, listed_date
		FROM properties
		WHERE property_id = $1
	`
	err := r.db.GetContext(ctx, &listing, query, propertyID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return &listing, nil
}

// Statistics summarizes the catalog: totals, price aggregates and a sample of
// distinct locations.
func (r *PostgresRepository) Statistics(ctx context.Context) (*model.Statistics, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	stats := &model.Statistics{}

	row := r.db.QueryRowxContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(AVG(price) FILTER (WHERE price > 0), 0),
			COALESCE(MIN(price) FILTER (WHERE price > 0), 0),
			COALESCE(MAX(price) FILTER (WHERE price > 0), 0)
		FROM properties
	`)
	if err := row.Scan(&stats.Total, &stats.AvgPrice, &stats.MinPrice, &stats.MaxPrice); err != nil {
		return nil, fmt.Errorf("failed to get statistics: %w", err)
	}

	if err := r.db.SelectContext(ctx, &stats.SampleLocations,
		`SELECT DISTINCT location FROM properties WHERE location IS NOT NULL AND location != '' LIMIT 10`); err != nil {
		return nil, fmt.Errorf("failed to get sample locations: %w", err)
	}

	return stats, nil
}

// LogSearch records a search query for analytics.
func (r *PostgresRepository) LogSearch(ctx context.Context, searchID, query string, params model.Params, resultCount int, tookMs int64) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	logQuery := `
		INSERT INTO search_logs (search_id, query, params, result_count, response_time_ms)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, logQuery, searchID, query, paramsJSON(params), resultCount, tookMs)
	if err != nil {
		return fmt.Errorf("failed to log search: %w", err)
	}
	return nil
}

// paramsJSON renders params for the jsonb analytics column. A marshal failure
// degrades to an empty object rather than failing the insert.
func paramsJSON(params model.Params) string {
	data, err := json.Marshal(params)
	if err != nil {
		return "{}"
	}
	return string(data)
}
