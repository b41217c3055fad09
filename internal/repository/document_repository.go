package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/locvowork/objectdoc/internal/domain"
)

const defaultListLimit = 50

type DocumentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(ctx context.Context, doc *domain.GeneratedDocument) error {
	query := `INSERT INTO generated_documents (object_api_name, file_path, field_count, generated_at)
		VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, doc.ObjectAPIName, doc.FilePath, doc.FieldCount, doc.GeneratedAt).Scan(&doc.ID)
	if err != nil {
		return fmt.Errorf("insert generated document: %w", err)
	}
	return nil
}

// List returns the newest records first.
func (r *DocumentRepository) List(ctx context.Context, limit int) ([]domain.GeneratedDocument, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	query := `SELECT id, object_api_name, file_path, field_count, generated_at
		FROM generated_documents ORDER BY generated_at DESC, id DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list generated documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.GeneratedDocument
	for rows.Next() {
		var d domain.GeneratedDocument
		if err := rows.Scan(&d.ID, &d.ObjectAPIName, &d.FilePath, &d.FieldCount, &d.GeneratedAt); err != nil {
			return nil, fmt.Errorf("scan generated document: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate generated documents: %w", err)
	}
	return docs, nil
}

// NoopDocumentRepository is used when no database is configured.
type NoopDocumentRepository struct{}

func (NoopDocumentRepository) Create(ctx context.Context, doc *domain.GeneratedDocument) error {
	return nil
}

func (NoopDocumentRepository) List(ctx context.Context, limit int) ([]domain.GeneratedDocument, error) {
	return []domain.GeneratedDocument{}, nil
}

var (
	_ domain.DocumentRepository = (*DocumentRepository)(nil)
	_ domain.DocumentRepository = NoopDocumentRepository{}
)
