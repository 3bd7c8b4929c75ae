package domain

import "time"

// CommentStatus is the moderation state of a comment.
type CommentStatus string

const (
	CommentStatusApproved CommentStatus = "approved"
	CommentStatusPending  CommentStatus = "pending"
	CommentStatusSpam     CommentStatus = "spam"
)

// Comment represents a reader comment on a post. PostTitle and PostSlug are
// copied from the post when the comment is submitted.
type Comment struct {
	ID        string        `json:"id"`
	Author    string        `json:"author"`
	Email     string        `json:"email"`
	Content   string        `json:"content"`
	PostID    string        `json:"postId"`
	PostTitle string        `json:"postTitle"`
	PostSlug  string        `json:"postSlug"`
	Status    CommentStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	Replies   []Comment     `json:"replies,omitempty"`
}

// ValidCommentStatuses contains all valid comment statuses.
var ValidCommentStatuses = []CommentStatus{CommentStatusApproved, CommentStatusPending, CommentStatusSpam}

// IsValidCommentStatus checks if a comment status is valid.
func IsValidCommentStatus(status string) bool {
	for _, s := range ValidCommentStatuses {
		if string(s) == status {
			return true
		}
	}
	return false
}

// PublicComment is the reader-facing view of a Comment without the
// commenter's email address.
type PublicComment struct {
	ID        string          `json:"id"`
	Author    string          `json:"author"`
	Content   string          `json:"content"`
	PostID    string          `json:"postId"`
	PostTitle string          `json:"postTitle"`
	PostSlug  string          `json:"postSlug"`
	Status    CommentStatus   `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Replies   []PublicComment `json:"replies,omitempty"`
}

// Public projects c and its replies for anonymous readers.
func (c Comment) Public() PublicComment {
	return PublicComment{
		ID:        c.ID,
		Author:    c.Author,
		Content:   c.Content,
		PostID:    c.PostID,
		PostTitle: c.PostTitle,
		PostSlug:  c.PostSlug,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Replies:   PublicComments(c.Replies),
	}
}

// PublicComments projects every comment. A nil input stays nil.
func PublicComments(comments []Comment) []PublicComment {
	if comments == nil {
		return nil
	}
	out := make([]PublicComment, len(comments))
	for i, c := range comments {
		out[i] = c.Public()
	}
	return out
}
