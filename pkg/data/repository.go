package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const favoritesCounter = "favorites"

// Repository persists favorite flags and usage stats.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// OpenRepository initializes the database at path and wraps it.
func OpenRepository(driver, path string) (*Repository, error) {
	db, err := InitDB(driver, path)
	if err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

// GetFavorite returns the stored flag for name. found is false when the key
// has never been written.
func (r *Repository) GetFavorite(ctx context.Context, name string) (favorited bool, found bool, err error) {
	err = r.db.QueryRowContext(ctx,
		`SELECT favorited FROM favorites WHERE name = ?`, name,
	).Scan(&favorited)
	if errors.Is(err, sql.ErrNoRows) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("failed to read favorite %q: %w", name, err)
	}
	return favorited, true, nil
}

// SetFavorite overwrites the flag for name. Unfavoriting stores false, the
// row is kept.
func (r *Repository) SetFavorite(ctx context.Context, name string, favorited bool) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO favorites (name, favorited, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			favorited = excluded.favorited,
			updated_at = excluded.updated_at
	`, name, favorited, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write favorite %q: %w", name, err)
	}
	return nil
}

// ListFavorites returns every entry currently marked as favorite, by name.
func (r *Repository) ListFavorites(ctx context.Context) ([]*Favorite, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, favorited, updated_at
		FROM favorites
		WHERE favorited = TRUE
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	favorites := []*Favorite{}
	for rows.Next() {
		f := &Favorite{}
		if err := rows.Scan(&f.Name, &f.Favorited, &f.UpdatedAt); err != nil {
			return nil, err
		}
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}

func (r *Repository) GetStats(ctx context.Context) (*Stats, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT total FROM stats WHERE name = ?`, favoritesCounter,
	).Scan(&total)
	if errors.Is(err, sql.ErrNoRows) {
		return &Stats{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read stats: %w", err)
	}
	return &Stats{Favorites: int(total)}, nil
}

// IncrementFavoriteCount bumps the number of times something was favorited.
func (r *Repository) IncrementFavoriteCount(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO stats (name, total) VALUES (?, 1)
		ON CONFLICT (name) DO UPDATE SET total = total + 1
	`, favoritesCounter)
	if err != nil {
		return fmt.Errorf("failed to update stats: %w", err)
	}
	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}
