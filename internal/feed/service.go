package feed

import (
	"context"
	"errors"

	"github.com/d-trefilov/hw05-final/internal/db"
	"github.com/d-trefilov/hw05-final/internal/post"

	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound = errors.New("feed scope not found")
	// ErrViewerRequired distinguishes "not allowed to ask" from an empty feed.
	ErrViewerRequired = errors.New("authenticated viewer required")
)

// SocialGraph is the slice of the follow store the composer needs.
type SocialGraph interface {
	FollowedAuthorIDs(ctx context.Context, userID string) ([]string, error)
	IsFollowing(ctx context.Context, userID, authorID string) (bool, error)
}

type Service struct {
	db       db.Querier
	follows  SocialGraph
	pageSize int
}

func NewService(db db.Querier, follows SocialGraph, pageSize int) *Service {
	return &Service{db: db, follows: follows, pageSize: pageSize}
}

const postColumns = `
	SELECT p.id, p.text, p.pub_date, p.author_id, u.username, p.group_id, COALESCE(g.slug,''), p.image_url
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN groups g ON g.id = p.group_id`

// Posts are ordered by publication time descending with the id as tiebreak,
// so the order is total and page boundaries never wobble.
const postOrder = ` ORDER BY p.pub_date DESC, p.id DESC`

// Compose resolves the scope, loads the eligible posts newest first and
// slices out the requested page.
func (s *Service) Compose(ctx context.Context, scope Scope, page int) (PageResult[post.Post], error) {
	var (
		posts []post.Post
		err   error
	)
	switch scope.Kind {
	case ScopeGroup:
		groupID, lookupErr := s.groupID(ctx, scope.Slug)
		if lookupErr != nil {
			return PageResult[post.Post]{}, lookupErr
		}
		posts, err = s.queryPosts(ctx, postColumns+` WHERE p.group_id=$1`+postOrder, groupID)
	case ScopeAuthor:
		authorID, lookupErr := s.AuthorID(ctx, scope.Username)
		if lookupErr != nil {
			return PageResult[post.Post]{}, lookupErr
		}
		posts, err = s.queryPosts(ctx, postColumns+` WHERE p.author_id=$1`+postOrder, authorID)
	case ScopeFollowing:
		if scope.ViewerID == "" {
			return PageResult[post.Post]{}, ErrViewerRequired
		}
		authorIDs, lookupErr := s.follows.FollowedAuthorIDs(ctx, scope.ViewerID)
		if lookupErr != nil {
			return PageResult[post.Post]{}, lookupErr
		}
		if len(authorIDs) == 0 {
			return Paginate[post.Post](nil, s.pageSize, page), nil
		}
		posts, err = s.queryPosts(ctx, postColumns+` WHERE p.author_id = ANY($1)`+postOrder, authorIDs)
	default:
		posts, err = s.queryPosts(ctx, postColumns+postOrder)
	}
	if err != nil {
		return PageResult[post.Post]{}, err
	}
	return Paginate(posts, s.pageSize, page), nil
}

// IsFollowingAuthor reports whether the viewer follows the named author. An
// anonymous viewer follows nobody.
func (s *Service) IsFollowingAuthor(ctx context.Context, viewerID, username string) (bool, error) {
	if viewerID == "" {
		return false, nil
	}
	authorID, err := s.AuthorID(ctx, username)
	if err != nil {
		return false, err
	}
	return s.follows.IsFollowing(ctx, viewerID, authorID)
}

func (s *Service) AuthorID(ctx context.Context, username string) (string, error) {
	row := s.db.QueryRow(ctx, `SELECT id FROM users WHERE username=$1`, username)
	var id string
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return id, nil
}

func (s *Service) groupID(ctx context.Context, slug string) (int64, error) {
	row := s.db.QueryRow(ctx, `SELECT id FROM groups WHERE slug=$1`, slug)
	var id int64
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return id, nil
}

func (s *Service) queryPosts(ctx context.Context, sql string, args ...any) ([]post.Post, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []post.Post
	for rows.Next() {
		var p post.Post
		if err := rows.Scan(&p.ID, &p.Text, &p.PubDate, &p.AuthorID, &p.Author, &p.GroupID, &p.Group, &p.ImageURL); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, nil
}
