package social

import "time"

type Follow struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}
