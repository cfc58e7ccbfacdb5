package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/unp-digital/sciencebot/internal/core/domain"
)

// CatalogRepository reads document metadata maintained by the ingestion
// side. The pipeline never writes to this table.
type CatalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

// ListBySchool returns catalog entries tagged with the school, name-ordered
// for stable ranking input. An empty result is not an error.
func (r *CatalogRepository) ListBySchool(ctx context.Context, school domain.School) ([]domain.DocumentInfo, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, description, school
FROM documents
WHERE school = $1
ORDER BY name
`, school.String())
	if err != nil {
		return nil, fmt.Errorf("list documents by school: %w", err)
	}
	defer rows.Close()

	var documents []domain.DocumentInfo
	for rows.Next() {
		var doc domain.DocumentInfo
		if err := rows.Scan(&doc.ID, &doc.Name, &doc.Description, &doc.School); err != nil {
			return nil, fmt.Errorf("scan document row: %w", err)
		}
		documents = append(documents, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate document rows: %w", err)
	}
	return documents, nil
}
