package post

import "time"

type Post struct {
	ID       int64     `json:"id"`
	Text     string    `json:"text"`
	PubDate  time.Time `json:"pub_date"`
	AuthorID string    `json:"author_id"`
	Author   string    `json:"author"`
	GroupID  *int64    `json:"group_id,omitempty"`
	Group    string    `json:"group,omitempty"`
	ImageURL string    `json:"image,omitempty"`
}

type Comment struct {
	ID       int64     `json:"id"`
	PostID   int64     `json:"post_id"`
	AuthorID string    `json:"author_id"`
	Author   string    `json:"author,omitempty"`
	Text     string    `json:"text"`
	Created  time.Time `json:"created"`
}

type CreatePostInput struct {
	AuthorID string `json:"-"`
	Text     string `json:"text"`
	GroupID  *int64 `json:"group_id"`
	ImageURL string `json:"image"`
}

type UpdatePostInput struct {
	Text     string `json:"text"`
	GroupID  *int64 `json:"group_id"`
	ImageURL string `json:"image"`
}
