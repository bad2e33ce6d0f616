package post

import (
	"context"
	"errors"

	"github.com/d-trefilov/hw05-final/internal/db"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound     = errors.New("post not found")
	ErrTextRequired = errors.New("text required")
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// CreatePost inserts the post and reads it back with author username and
// group slug resolved. pub_date is assigned by the database once and never
// touched again.
func (s *Service) CreatePost(ctx context.Context, input CreatePostInput) (Post, error) {
	if input.Text == "" {
		return Post{}, ErrTextRequired
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO posts (text, author_id, group_id, image_url)
		VALUES ($1,$2,$3,$4)
		RETURNING id
	`, input.Text, input.AuthorID, input.GroupID, input.ImageURL)
	var id int64
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return Post{}, ErrNotFound
		}
		return Post{}, err
	}
	return s.GetPost(ctx, id)
}

func (s *Service) GetPost(ctx context.Context, id int64) (Post, error) {
	row := s.db.QueryRow(ctx, `
		SELECT p.id, p.text, p.pub_date, p.author_id, u.username, p.group_id, COALESCE(g.slug,''), p.image_url
		FROM posts p
		JOIN users u ON u.id = p.author_id
		LEFT JOIN groups g ON g.id = p.group_id
		WHERE p.id=$1
	`, id)
	var p Post
	if err := row.Scan(&p.ID, &p.Text, &p.PubDate, &p.AuthorID, &p.Author, &p.GroupID, &p.Group, &p.ImageURL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Post{}, ErrNotFound
		}
		return Post{}, err
	}
	return p, nil
}

// UpdatePost changes text, group or image of an existing post. Author and
// pub_date are immutable. Ownership is checked by the handler, not here.
func (s *Service) UpdatePost(ctx context.Context, id int64, patch UpdatePostInput) (Post, error) {
	p, err := s.GetPost(ctx, id)
	if err != nil {
		return Post{}, err
	}
	if patch.Text != "" {
		p.Text = patch.Text
	}
	if patch.GroupID != nil {
		p.GroupID = patch.GroupID
	}
	if patch.ImageURL != "" {
		p.ImageURL = patch.ImageURL
	}

	_, err = s.db.Exec(ctx, `
		UPDATE posts SET text=$2, group_id=$3, image_url=$4 WHERE id=$1
	`, p.ID, p.Text, p.GroupID, p.ImageURL)
	if err != nil {
		return Post{}, err
	}
	return s.GetPost(ctx, id)
}

func (s *Service) DeletePost(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM posts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Comments returns a post's comments in creation order.
func (s *Service) Comments(ctx context.Context, postID int64) ([]Comment, error) {
	rows, err := s.db.Query(ctx, `
		SELECT c.id, c.post_id, c.author_id, u.username, c.text, c.created
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id=$1
		ORDER BY c.created, c.id
	`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var cm Comment
		if err := rows.Scan(&cm.ID, &cm.PostID, &cm.AuthorID, &cm.Author, &cm.Text, &cm.Created); err != nil {
			return nil, err
		}
		comments = append(comments, cm)
	}
	return comments, nil
}

func (s *Service) CreateComment(ctx context.Context, postID int64, authorID, text string) (Comment, error) {
	if text == "" {
		return Comment{}, ErrTextRequired
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO comments (post_id, author_id, text)
		VALUES ($1,$2,$3)
		RETURNING id, created
	`, postID, authorID, text)
	cm := Comment{PostID: postID, AuthorID: authorID, Text: text}
	if err := row.Scan(&cm.ID, &cm.Created); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return Comment{}, ErrNotFound
		}
		return Comment{}, err
	}
	return cm, nil
}
