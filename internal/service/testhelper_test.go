package service_test

import (
	"context"
	"testing"

	"github.com/Yassen717/ModBlog/internal/repository"
	"github.com/Yassen717/ModBlog/internal/seed"
	"github.com/Yassen717/ModBlog/internal/service"
	"github.com/Yassen717/ModBlog/internal/storage"
	"github.com/Yassen717/ModBlog/internal/validator"
)

type stack struct {
	store      *storage.Adapter
	posts      *repository.StorePostRepository
	categories *repository.StoreCategoryRepository
	authors    *repository.StoreAuthorRepository
	users      *repository.StoreUserRepository
	comments   *repository.StoreCommentRepository
	settings   *repository.StoreSettingsRepository

	postSvc      *service.PostService
	categorySvc  *service.CategoryService
	commentSvc   *service.CommentService
	userSvc      *service.UserService
	authorSvc    *service.AuthorService
	settingsSvc  *service.SettingsService
	dashboardSvc *service.DashboardService
	dataSvc      *service.DataService
	exportSvc    *service.ExportService
}

// newStack wires every service over an in-memory store. The fixtures are
// seeded when seeded is true.
func newStack(t *testing.T, seeded bool) *stack {
	t.Helper()

	store := storage.NewAdapter(storage.NewMemory())
	seeder := seed.New(store)
	if seeded {
		seeder.Initialize(context.Background())
	}

	v := validator.NewValidator()
	s := &stack{
		store:      store,
		posts:      repository.NewPostRepository(store),
		categories: repository.NewCategoryRepository(store),
		authors:    repository.NewAuthorRepository(store),
		users:      repository.NewUserRepository(store),
		comments:   repository.NewCommentRepository(store),
		settings:   repository.NewSettingsRepository(store),
	}
	s.postSvc = service.NewPostService(s.posts, s.categories, s.authors, v)
	s.categorySvc = service.NewCategoryService(s.categories, s.posts, v)
	s.commentSvc = service.NewCommentService(s.comments, s.posts, s.settings, v)
	s.userSvc = service.NewUserService(s.users, v)
	s.authorSvc = service.NewAuthorService(s.authors, v)
	s.settingsSvc = service.NewSettingsService(s.settings, v)
	s.dashboardSvc = service.NewDashboardService(s.posts, s.comments, s.users, s.categories, s.authors)
	s.dataSvc = service.NewDataService(seeder, s.dashboardSvc)
	s.exportSvc = service.NewExportService(s.posts, s.categories, s.comments, s.users)
	return s
}

func strPtr(s string) *string {
	return &s
}
