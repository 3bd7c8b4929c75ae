package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yassen717/ModBlog/internal/domain"
	"github.com/Yassen717/ModBlog/internal/service"
)

func TestDashboardService_Stats(t *testing.T) {
	ctx := context.Background()
	s := newStack(t, true)

	_, err := s.postSvc.Create(ctx, service.PostInput{Title: "Draft", Excerpt: "e", Content: "c"})
	require.NoError(t, err)
	a := submit(t, s, "ann", "one", "1")
	submit(t, s, "bob", "two", "1")
	_, err = s.commentSvc.SetStatus(ctx, a.ID, domain.CommentStatusSpam)
	require.NoError(t, err)

	stats := s.dashboardSvc.Stats(ctx)

	assert.Equal(t, service.PostStats{Total: 6, Published: 5, Drafts: 1}, stats.Posts)
	assert.Equal(t, service.CommentStats{Total: 2, Pending: 1, Spam: 1}, stats.Comments)
	assert.Equal(t, service.UserStats{Total: 4, Active: 3, Staff: 2}, stats.Users)
	assert.Equal(t, 5, stats.Categories)
	assert.Equal(t, 1, stats.Authors)
	assert.Len(t, stats.RecentPosts, 5)
	assert.Equal(t, "Draft", stats.RecentPosts[0].Title, "most recently updated first")
	assert.Len(t, stats.RecentComments, 2)
}

func TestDataService(t *testing.T) {
	ctx := context.Background()
	s := newStack(t, true)
	submit(t, s, "ann", "one", "1")

	assert.Equal(t, service.DataCounts{Posts: 5, Categories: 5, Authors: 1, Users: 4, Comments: 1}, s.dataSvc.Counts(ctx))

	s.dataSvc.Clear(ctx)
	assert.Equal(t, service.DataCounts{}, s.dataSvc.Counts(ctx))

	result := s.dataSvc.Reinitialize(ctx)
	assert.Len(t, result.Seeded, 4)
	assert.Empty(t, s.dataSvc.Reinitialize(ctx).Seeded)

	_, err := s.postSvc.Create(ctx, service.PostInput{Title: "Extra", Excerpt: "e", Content: "c"})
	require.NoError(t, err)
	s.dataSvc.FullReset(ctx)
	assert.Equal(t, service.DataCounts{Posts: 5, Categories: 5, Authors: 1, Users: 4}, s.dataSvc.Counts(ctx))
}
