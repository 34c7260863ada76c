package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Dan9191/mortgage-service/internal/models"
)

// Repository provides database operations
type Repository struct {
	db     *sql.DB
	driver string
}

// NewRepository initializes a new repository.
// driver is the database/sql driver name: "postgres" or "sqlite".
func NewRepository(db *sql.DB, driver string) *Repository {
	return &Repository{db: db, driver: driver}
}

// Migrate creates the leads table if it does not exist
func (r *Repository) Migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS leads (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL
		)`
	if r.driver == "sqlite" {
		query = `
		CREATE TABLE IF NOT EXISTS leads (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL
		)`
	}
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to migrate leads table: %w", err)
	}
	return nil
}

// CreateLead creates a new lead in the database
func (r *Repository) CreateLead(ctx context.Context, lead *models.Lead) error {
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now().UTC()
	}
	query := r.rebind(`
		INSERT INTO leads (name, email, phone, source, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`)
	err := r.db.QueryRowContext(ctx, query, lead.Name, lead.Email, lead.Phone, lead.Source, lead.Notes, lead.CreatedAt).
		Scan(&lead.ID)
	if err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}
	return nil
}

// ListLeads retrieves the most recent leads, newest first
func (r *Repository) ListLeads(ctx context.Context, limit int) ([]models.Lead, error) {
	query := r.rebind(`
		SELECT id, name, email, phone, source, notes, created_at
		FROM leads
		ORDER BY created_at DESC, id DESC
		LIMIT ?`)
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	leads := []models.Lead{}
	for rows.Next() {
		var lead models.Lead
		if err := rows.Scan(&lead.ID, &lead.Name, &lead.Email, &lead.Phone, &lead.Source, &lead.Notes, &lead.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leads: %w", err)
	}
	return leads, nil
}

// rebind rewrites "?" placeholders to "$n" for postgres
func (r *Repository) rebind(query string) string {
	if r.driver != "postgres" {
		return query
	}
	var builder strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			builder.WriteByte('$')
			builder.WriteString(strconv.Itoa(n))
			continue
		}
		builder.WriteRune(ch)
	}
	return builder.String()
}
