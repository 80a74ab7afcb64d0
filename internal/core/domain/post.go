package domain

// Post is a piece of content owned by a single user.
type Post struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	UserID  string `json:"user_id"`
}

// Comment is attached to a post and owned by the user who wrote it.
// Both references are plain ids; resolvers look the targets up on demand.
type Comment struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	UserID  string `json:"user_id"`
	PostID  string `json:"post_id"`
}
