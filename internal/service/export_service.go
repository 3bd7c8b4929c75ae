package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Yassen717/ModBlog/internal/domain"
	"github.com/Yassen717/ModBlog/internal/logger"
	"github.com/Yassen717/ModBlog/internal/repository"
)

// Export formats.
const (
	FormatCSV    = "csv"
	FormatNDJSON = "ndjson"
)

// Exportable collections.
const (
	ResourcePosts      = "posts"
	ResourceCategories = "categories"
	ResourceComments   = "comments"
	ResourceUsers      = "users"
)

// flushEvery is the number of records written between flushes.
const flushEvery = 100

// ExportService streams whole collections as CSV or NDJSON.
type ExportService struct {
	posts      repository.PostRepository
	categories repository.CategoryRepository
	comments   repository.CommentRepository
	users      repository.UserRepository
}

// NewExportService creates a new ExportService.
func NewExportService(
	posts repository.PostRepository,
	categories repository.CategoryRepository,
	comments repository.CommentRepository,
	users repository.UserRepository,
) *ExportService {
	return &ExportService{
		posts:      posts,
		categories: categories,
		comments:   comments,
		users:      users,
	}
}

// Stream writes every record of resource to writer and returns how many
// records were written.
func (s *ExportService) Stream(ctx context.Context, resource, format string, writer StreamWriter) (int, error) {
	if format != FormatCSV && format != FormatNDJSON {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	var (
		count int
		err   error
	)
	switch resource {
	case ResourcePosts:
		count, err = streamRecords(ctx, format, writer, postHeader, postRow, s.posts.StreamAll)
	case ResourceCategories:
		count, err = streamRecords(ctx, format, writer, categoryHeader, categoryRow, s.categories.StreamAll)
	case ResourceComments:
		count, err = streamRecords(ctx, format, writer, commentHeader, commentRow, s.comments.StreamAll)
	case ResourceUsers:
		count, err = streamRecords(ctx, format, writer, userHeader, userRow, s.users.StreamAll)
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownResource, resource)
	}
	if err != nil {
		return count, fmt.Errorf("stream %s: %w", resource, err)
	}

	logger.InfoContext(ctx, "Export streamed",
		slog.String("resource", resource),
		slog.String("format", format),
		slog.Int("count", count),
	)
	return count, nil
}

// streamRecords encodes each record into a reusable buffer and hands the
// bytes to writer, flushing periodically.
func streamRecords[T any](
	ctx context.Context,
	format string,
	writer StreamWriter,
	header []string,
	row func(T) []string,
	streamAll func(context.Context, func(T) error) error,
) (int, error) {
	var (
		buf   bytes.Buffer
		count int
	)
	csvWriter := csv.NewWriter(&buf)
	encoder := json.NewEncoder(&buf)

	emit := func() error {
		if format == FormatCSV {
			csvWriter.Flush()
			if err := csvWriter.Error(); err != nil {
				return fmt.Errorf("write csv: %w", err)
			}
		}
		if buf.Len() == 0 {
			return nil
		}
		if err := writer.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("write: %w", err)
		}
		buf.Reset()
		return nil
	}

	if format == FormatCSV {
		if err := csvWriter.Write(header); err != nil {
			return 0, fmt.Errorf("write header: %w", err)
		}
	}

	err := streamAll(ctx, func(record T) error {
		if format == FormatCSV {
			if err := csvWriter.Write(row(record)); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
		} else if err := encoder.Encode(record); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
		count++
		if count%flushEvery == 0 {
			if err := emit(); err != nil {
				return err
			}
			writer.Flush()
		}
		return nil
	})
	if err != nil {
		return count, err
	}
	if err := emit(); err != nil {
		return count, err
	}
	writer.Flush()
	return count, nil
}

var postHeader = []string{"id", "title", "slug", "status", "category", "author", "tags", "reading_time", "published_at", "updated_at"}

func postRow(p domain.Post) []string {
	return []string{
		p.ID,
		p.Title,
		p.Slug,
		string(p.Status),
		p.Category.Slug,
		p.Author.Name,
		strings.Join(p.Tags, ";"),
		strconv.Itoa(p.ReadingTime),
		p.PublishedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	}
}

var categoryHeader = []string{"id", "name", "slug", "description", "color"}

func categoryRow(c domain.Category) []string {
	return []string{c.ID, c.Name, c.Slug, c.Description, c.Color}
}

var commentHeader = []string{"id", "post_id", "post_title", "author", "email", "status", "content", "created_at", "updated_at"}

func commentRow(c domain.Comment) []string {
	return []string{
		c.ID,
		c.PostID,
		c.PostTitle,
		c.Author,
		c.Email,
		string(c.Status),
		c.Content,
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	}
}

var userHeader = []string{"id", "email", "name", "role", "status", "last_login", "created_at", "updated_at"}

func userRow(u domain.User) []string {
	lastLogin := ""
	if u.LastLogin != nil {
		lastLogin = u.LastLogin.Format(time.RFC3339)
	}
	return []string{
		u.ID,
		u.Email,
		u.Name,
		string(u.Role),
		string(u.Status),
		lastLogin,
		u.CreatedAt.Format(time.RFC3339),
		u.UpdatedAt.Format(time.RFC3339),
	}
}
