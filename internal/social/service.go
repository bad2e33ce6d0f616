package social

import (
	"context"
	"errors"

	"github.com/d-trefilov/hw05-final/internal/db"

	"github.com/jackc/pgx/v5"
)

var (
	// ErrNotFound is reported when an unfollow targets an edge that does not
	// exist, so callers can tell "removed" from "nothing to remove".
	ErrNotFound = errors.New("follow edge not found")
	// ErrUserNotFound is reported when a username does not resolve.
	ErrUserNotFound = errors.New("user not found")
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// Follow creates a follow edge from user to author. Following yourself and
// following someone twice are both silent no-ops: the unique constraint on
// (user_id, author_id) arbitrates concurrent attempts and ON CONFLICT keeps
// the duplicate from surfacing as an error.
func (s *Service) Follow(ctx context.Context, userID, authorID string) error {
	if userID == authorID {
		return nil
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO follows (user_id, author_id)
		VALUES ($1,$2)
		ON CONFLICT (user_id, author_id) DO NOTHING
	`, userID, authorID)
	return err
}

// Unfollow removes the edge and reports ErrNotFound when there was none.
func (s *Service) Unfollow(ctx context.Context, userID, authorID string) error {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM follows WHERE user_id=$1 AND author_id=$2
	`, userID, authorID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) IsFollowing(ctx context.Context, userID, authorID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	row := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM follows WHERE user_id=$1 AND author_id=$2
		)
	`, userID, authorID)
	var following bool
	if err := row.Scan(&following); err != nil {
		return false, err
	}
	return following, nil
}

// FollowedAuthorIDs returns the ids of everyone the user follows. The feed
// composer consumes this as an explicit filter list.
func (s *Service) FollowedAuthorIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.db.Query(ctx, `
		SELECT author_id FROM follows WHERE user_id=$1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *Service) UserIDByUsername(ctx context.Context, username string) (string, error) {
	row := s.db.QueryRow(ctx, `SELECT id FROM users WHERE username=$1`, username)
	var id string
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return id, nil
}
