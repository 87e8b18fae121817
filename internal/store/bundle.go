package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/quizpix/quizpix/internal/quiz"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// BundleRepo persists quiz bundles.
type BundleRepo interface {
	// Save stores a bundle, replacing any bundle with the same id.
	Save(ctx context.Context, b quiz.Bundle) error

	// List returns all bundles, newest first, without their questions.
	List(ctx context.Context) ([]quiz.Bundle, error)

	// Get returns a bundle with its questions. Returns ErrNotFound when
	// no bundle has that id.
	Get(ctx context.Context, id string) (*quiz.Bundle, error)

	// Delete removes a bundle. Deleting a missing bundle is not an error.
	Delete(ctx context.Context, id string) error
}

type bundleRepo struct {
	db *sql.DB
}

func (r *bundleRepo) Save(ctx context.Context, b quiz.Bundle) error {
	questions, err := json.Marshal(b.Questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO bundles (id, name, source, questions, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		b.ID, b.Name, string(b.Source), string(questions), b.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("save bundle %s: %w", b.ID, err)
	}
	return nil
}

func (r *bundleRepo) List(ctx context.Context) ([]quiz.Bundle, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, source, created_at FROM bundles ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list bundles: %w", err)
	}
	defer rows.Close()

	var out []quiz.Bundle
	for rows.Next() {
		var b quiz.Bundle
		var source string
		var createdAt time.Time
		if err := rows.Scan(&b.ID, &b.Name, &source, &createdAt); err != nil {
			return nil, fmt.Errorf("scan bundle: %w", err)
		}
		b.Source = quiz.BundleSource(source)
		b.CreatedAt = createdAt
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *bundleRepo) Get(ctx context.Context, id string) (*quiz.Bundle, error) {
	var b quiz.Bundle
	var source, questions string
	var createdAt time.Time

	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, source, questions, created_at FROM bundles WHERE id = ?`, id).
		Scan(&b.ID, &b.Name, &source, &questions, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bundle %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get bundle %s: %w", id, err)
	}

	if err := json.Unmarshal([]byte(questions), &b.Questions); err != nil {
		return nil, fmt.Errorf("decode questions for bundle %s: %w", id, err)
	}
	b.Source = quiz.BundleSource(source)
	b.CreatedAt = createdAt
	return &b, nil
}

func (r *bundleRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM bundles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete bundle %s: %w", id, err)
	}
	return nil
}
