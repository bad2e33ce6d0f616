package group

import (
	"context"
	"errors"

	"github.com/d-trefilov/hw05-final/internal/db"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound  = errors.New("group not found")
	ErrSlugTaken = errors.New("slug already taken")
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) CreateGroup(ctx context.Context, input Group) (Group, error) {
	if input.Title == "" || input.Slug == "" {
		return Group{}, errors.New("title and slug required")
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO groups (title, slug, description)
		VALUES ($1,$2,$3)
		RETURNING id
	`, input.Title, input.Slug, input.Description)
	if err := row.Scan(&input.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Group{}, ErrSlugTaken
		}
		return Group{}, err
	}
	return input, nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (Group, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, title, slug, description
		FROM groups WHERE slug=$1
	`, slug)
	var g Group
	if err := row.Scan(&g.ID, &g.Title, &g.Slug, &g.Description); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Group{}, ErrNotFound
		}
		return Group{}, err
	}
	return g, nil
}

func (s *Service) ListGroups(ctx context.Context) ([]Group, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, slug, description
		FROM groups ORDER BY title
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []Group
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.ID, &g.Title, &g.Slug, &g.Description); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// DeleteGroup removes the group. Posts that referenced it stay and lose the
// association (group_id goes NULL via the schema).
func (s *Service) DeleteGroup(ctx context.Context, slug string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM groups WHERE slug=$1`, slug)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
