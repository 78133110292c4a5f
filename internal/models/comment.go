package models

// CommentStatusApproved is the only status the public list shows.
const CommentStatusApproved = "approved"

type Comment struct {
	CommentID   string `json:"commentId"`
	BlogID      string `json:"blogId"`
	AuthorName  string `json:"author_name"`
	AuthorEmail string `json:"author_email"`
	Content     string `json:"content"`
	CreatedAt   int64  `json:"created_at"`
	Status      string `json:"status,omitempty"`
}

type CommentInput struct {
	AuthorName  string `json:"author_name"`
	AuthorEmail string `json:"author_email"`
	Content     string `json:"content"`
}

// LikeStatus is the like counter of a post as seen by one visitor.
type LikeStatus struct {
	LikesCount int  `json:"likes_count"`
	HasLiked   bool `json:"has_liked"`
}
