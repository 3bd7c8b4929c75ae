package service

import (
	"context"

	"github.com/Yassen717/ModBlog/internal/domain"
	"github.com/Yassen717/ModBlog/internal/repository"
	"github.com/Yassen717/ModBlog/internal/seed"
)

// recentLimit bounds the recent posts and comments on the dashboard.
const recentLimit = 5

// PostStats counts posts by status.
type PostStats struct {
	Total     int `json:"total"`
	Published int `json:"published"`
	Drafts    int `json:"drafts"`
}

// CommentStats counts comments by moderation state.
type CommentStats struct {
	Total    int `json:"total"`
	Approved int `json:"approved"`
	Pending  int `json:"pending"`
	Spam     int `json:"spam"`
}

// UserStats counts accounts.
type UserStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
	Staff  int `json:"staff"`
}

// DashboardStats is the admin overview.
type DashboardStats struct {
	Posts          PostStats        `json:"posts"`
	Comments       CommentStats     `json:"comments"`
	Users          UserStats        `json:"users"`
	Categories     int              `json:"categories"`
	Authors        int              `json:"authors"`
	RecentPosts    []domain.Post    `json:"recentPosts"`
	RecentComments []domain.Comment `json:"recentComments"`
}

// DashboardService aggregates counts across collections.
type DashboardService struct {
	posts      repository.PostRepository
	comments   repository.CommentRepository
	users      repository.UserRepository
	categories repository.CategoryRepository
	authors    repository.AuthorRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	posts repository.PostRepository,
	comments repository.CommentRepository,
	users repository.UserRepository,
	categories repository.CategoryRepository,
	authors repository.AuthorRepository,
) *DashboardService {
	return &DashboardService{
		posts:      posts,
		comments:   comments,
		users:      users,
		categories: categories,
		authors:    authors,
	}
}

// Stats computes the dashboard overview.
func (s *DashboardService) Stats(ctx context.Context) DashboardStats {
	var stats DashboardStats

	posts := s.posts.List(ctx)
	stats.Posts.Total = len(posts)
	for _, p := range posts {
		if p.IsPublished() {
			stats.Posts.Published++
		} else {
			stats.Posts.Drafts++
		}
	}

	comments := s.comments.List(ctx)
	stats.Comments.Total = len(comments)
	for _, c := range comments {
		switch c.Status {
		case domain.CommentStatusApproved:
			stats.Comments.Approved++
		case domain.CommentStatusPending:
			stats.Comments.Pending++
		case domain.CommentStatusSpam:
			stats.Comments.Spam++
		}
	}

	users := s.users.List(ctx)
	stats.Users.Total = len(users)
	for _, u := range users {
		if u.Status == domain.UserStatusActive {
			stats.Users.Active++
		}
		if u.Role == domain.RoleAdministrator || u.Role == domain.RoleEditor {
			stats.Users.Staff++
		}
	}

	stats.Categories = len(s.categories.List(ctx))
	stats.Authors = len(s.authors.List(ctx))
	stats.RecentPosts = head(posts, recentLimit)
	stats.RecentComments = head(comments, recentLimit)
	return stats
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// DataCounts reports how many records each content namespace holds.
type DataCounts struct {
	Posts      int `json:"posts"`
	Categories int `json:"categories"`
	Authors    int `json:"authors"`
	Users      int `json:"users"`
	Comments   int `json:"comments"`
}

// DataService exposes the administrative clear and reseed operations.
type DataService struct {
	seeder    *seed.Seeder
	dashboard *DashboardService
}

// NewDataService creates a new DataService.
func NewDataService(seeder *seed.Seeder, dashboard *DashboardService) *DataService {
	return &DataService{seeder: seeder, dashboard: dashboard}
}

// Counts returns the record count of each namespace.
func (s *DataService) Counts(ctx context.Context) DataCounts {
	d := s.dashboard
	return DataCounts{
		Posts:      len(d.posts.List(ctx)),
		Categories: len(d.categories.List(ctx)),
		Authors:    len(d.authors.List(ctx)),
		Users:      len(d.users.List(ctx)),
		Comments:   len(d.comments.List(ctx)),
	}
}

// Clear removes all content. The admin login marker is kept.
func (s *DataService) Clear(ctx context.Context) {
	s.seeder.Clear(ctx)
}

// Reinitialize seeds every empty namespace.
func (s *DataService) Reinitialize(ctx context.Context) seed.Result {
	return s.seeder.Initialize(ctx)
}

// FullReset clears all content and reseeds the fixtures.
func (s *DataService) FullReset(ctx context.Context) seed.Result {
	return s.seeder.FullReset(ctx)
}
