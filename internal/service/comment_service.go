package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Yassen717/ModBlog/internal/domain"
	"github.com/Yassen717/ModBlog/internal/logger"
	"github.com/Yassen717/ModBlog/internal/metrics"
	"github.com/Yassen717/ModBlog/internal/repository"
	"github.com/Yassen717/ModBlog/internal/validator"
)

// ErrCommentsDisabled is returned when comments are switched off in settings.
var ErrCommentsDisabled = errors.New("comments are disabled")

// Bulk comment actions.
const (
	BulkApprove = "approve"
	BulkPending = "pending"
	BulkSpam    = "spam"
	BulkDelete  = "delete"
)

// CommentFilter narrows the moderation listing. Search matches content,
// author and post title ignoring case.
type CommentFilter struct {
	PostID string
	Status string
	Search string
}

// CommentInput is the payload for submitting a comment. The post title and
// slug are always copied from the stored post.
type CommentInput struct {
	Author  string `json:"author"`
	Email   string `json:"email"`
	Content string `json:"content"`
	PostID  string `json:"postId"`
}

// CommentUpdate holds the moderator-editable fields. Empty fields are kept.
type CommentUpdate struct {
	Status  string `json:"status"`
	Content string `json:"content"`
	Author  string `json:"author"`
}

// ReplyInput is a moderator reply to an existing comment.
type ReplyInput struct {
	Author  string `json:"author"`
	Email   string `json:"email"`
	Content string `json:"content"`
}

// Replies without an explicit byline are signed as the site administrator.
const (
	defaultReplyAuthor = "Admin"
	defaultReplyEmail  = "admin@modernblog.com"
)

// BulkResult reports the outcome of a bulk action.
type BulkResult struct {
	Action    string   `json:"action"`
	Processed int      `json:"processed"`
	Missing   []string `json:"missing"`
}

// CommentService implements comment submission and moderation.
type CommentService struct {
	comments  repository.CommentRepository
	posts     repository.PostRepository
	settings  repository.SettingsRepository
	validator *validator.Validator
}

// NewCommentService creates a new CommentService.
func NewCommentService(
	comments repository.CommentRepository,
	posts repository.PostRepository,
	settings repository.SettingsRepository,
	v *validator.Validator,
) *CommentService {
	return &CommentService{
		comments:  comments,
		posts:     posts,
		settings:  settings,
		validator: v,
	}
}

// List returns comments matching filter, newest first.
func (s *CommentService) List(ctx context.Context, filter CommentFilter) []domain.Comment {
	var comments []domain.Comment
	if filter.PostID != "" {
		comments = s.comments.ListByPost(ctx, filter.PostID)
	} else {
		comments = s.comments.List(ctx)
	}

	query := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]domain.Comment, 0, len(comments))
	for _, c := range comments {
		if filter.Status != "" && filter.Status != "all" && string(c.Status) != filter.Status {
			continue
		}
		if query != "" && !commentMatches(c, query) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func commentMatches(c domain.Comment, query string) bool {
	return strings.Contains(strings.ToLower(c.Content), query) ||
		strings.Contains(strings.ToLower(c.Author), query) ||
		strings.Contains(strings.ToLower(c.PostTitle), query)
}

// ListApproved returns the approved comments on a post.
func (s *CommentService) ListApproved(ctx context.Context, postID string) []domain.Comment {
	return s.List(ctx, CommentFilter{PostID: postID, Status: string(domain.CommentStatusApproved)})
}

// Get returns a comment by id.
func (s *CommentService) Get(ctx context.Context, id string) (domain.Comment, error) {
	c, ok := s.comments.GetByID(ctx, id)
	if !ok {
		return domain.Comment{}, ErrNotFound
	}
	return c, nil
}

// Create stores a reader comment on a published post. New comments wait for
// moderation unless moderation is switched off in settings.
func (s *CommentService) Create(ctx context.Context, input CommentInput) (domain.Comment, error) {
	if input.Author == "" || input.Email == "" || input.Content == "" || input.PostID == "" {
		return domain.Comment{}, missingFields("author", "email", "content", "postId")
	}

	settings := s.currentSettings(ctx)
	if !settings.Content.EnableComments {
		return domain.Comment{}, ErrCommentsDisabled
	}

	post, ok := s.posts.GetByID(ctx, input.PostID)
	if !ok || post.Status != domain.PostStatusPublished {
		return domain.Comment{}, ErrNotFound
	}

	status := domain.CommentStatusPending
	if !settings.Content.ModerateComments {
		status = domain.CommentStatusApproved
	}

	c := domain.Comment{
		ID:        domain.NewID(),
		Author:    strings.TrimSpace(input.Author),
		Email:     strings.TrimSpace(input.Email),
		Content:   input.Content,
		PostID:    post.ID,
		PostTitle: post.Title,
		PostSlug:  post.Slug,
		Status:    status,
	}
	if err := s.validator.ValidateComment(&c); err != nil {
		return domain.Comment{}, newValidationError(err)
	}

	saved := s.comments.Save(ctx, c)
	metrics.RecordMutation("comment", "create")
	logger.InfoContext(ctx, "Comment submitted",
		slog.String("comment_id", saved.ID),
		slog.String("post_id", saved.PostID),
		slog.String("status", string(saved.Status)),
	)
	return saved, nil
}

// Reply stores an approved reply and nests it under the parent comment.
func (s *CommentService) Reply(ctx context.Context, parentID string, input ReplyInput) (domain.Comment, error) {
	if strings.TrimSpace(input.Content) == "" {
		return domain.Comment{}, missingFields("content")
	}
	parent, ok := s.comments.GetByID(ctx, parentID)
	if !ok {
		return domain.Comment{}, ErrNotFound
	}

	if input.Author == "" {
		input.Author = defaultReplyAuthor
	}
	if input.Email == "" {
		input.Email = defaultReplyEmail
	}

	reply := domain.Comment{
		ID:        domain.NewID(),
		Author:    input.Author,
		Email:     input.Email,
		Content:   input.Content,
		PostID:    parent.PostID,
		PostTitle: parent.PostTitle,
		PostSlug:  parent.PostSlug,
		Status:    domain.CommentStatusApproved,
	}
	if err := s.validator.ValidateComment(&reply); err != nil {
		return domain.Comment{}, newValidationError(err)
	}

	reply = s.comments.Save(ctx, reply)
	if _, ok := s.comments.Update(ctx, parentID, func(c *domain.Comment) {
		c.Replies = append(c.Replies, reply)
	}); !ok {
		return domain.Comment{}, ErrNotFound
	}
	metrics.RecordMutation("comment", "reply")
	logger.InfoContext(ctx, "Comment reply added",
		slog.String("comment_id", reply.ID),
		slog.String("parent_id", parentID),
	)
	return reply, nil
}

// Update changes the status, content or author of a comment.
func (s *CommentService) Update(ctx context.Context, id string, update CommentUpdate) (domain.Comment, error) {
	current, ok := s.comments.GetByID(ctx, id)
	if !ok {
		return domain.Comment{}, ErrNotFound
	}

	apply := func(c *domain.Comment) {
		if update.Status != "" {
			c.Status = domain.CommentStatus(update.Status)
		}
		if update.Content != "" {
			c.Content = update.Content
		}
		if update.Author != "" {
			c.Author = update.Author
		}
	}
	apply(&current)
	if err := s.validator.ValidateComment(&current); err != nil {
		return domain.Comment{}, newValidationError(err)
	}

	updated, ok := s.comments.Update(ctx, id, apply)
	if !ok {
		return domain.Comment{}, ErrNotFound
	}
	metrics.RecordMutation("comment", "update")
	logger.InfoContext(ctx, "Comment updated",
		slog.String("comment_id", id),
		slog.String("status", string(updated.Status)),
	)
	return updated, nil
}

// SetStatus moves a comment to another moderation state.
func (s *CommentService) SetStatus(ctx context.Context, id string, status domain.CommentStatus) (domain.Comment, error) {
	return s.Update(ctx, id, CommentUpdate{Status: string(status)})
}

// Delete removes a comment.
func (s *CommentService) Delete(ctx context.Context, id string) error {
	if !s.comments.Delete(ctx, id) {
		return ErrNotFound
	}
	metrics.RecordMutation("comment", "delete")
	logger.InfoContext(ctx, "Comment deleted", slog.String("comment_id", id))
	return nil
}

// Bulk applies action to every id, one comment at a time. Unknown ids are
// reported in the result rather than failing the whole batch.
func (s *CommentService) Bulk(ctx context.Context, ids []string, action string) (BulkResult, error) {
	var status domain.CommentStatus
	switch action {
	case BulkApprove, string(domain.CommentStatusApproved):
		action, status = BulkApprove, domain.CommentStatusApproved
	case BulkPending:
		status = domain.CommentStatusPending
	case BulkSpam:
		status = domain.CommentStatusSpam
	case BulkDelete:
	default:
		return BulkResult{}, ErrInvalidBulkAction
	}

	result := BulkResult{Action: action, Missing: []string{}}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		var err error
		if action == BulkDelete {
			err = s.Delete(ctx, id)
		} else {
			_, err = s.SetStatus(ctx, id, status)
		}
		switch {
		case errors.Is(err, ErrNotFound):
			result.Missing = append(result.Missing, id)
		case err != nil:
			return result, err
		default:
			result.Processed++
		}
	}

	logger.InfoContext(ctx, "Bulk comment action completed",
		slog.String("action", action),
		slog.Int("processed", result.Processed),
		slog.Int("missing", len(result.Missing)),
	)
	return result, nil
}

func (s *CommentService) currentSettings(ctx context.Context) domain.BlogSettings {
	if settings, ok := s.settings.Get(ctx); ok {
		return settings
	}
	return domain.DefaultSettings()
}
