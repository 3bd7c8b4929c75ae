package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Yassen717/ModBlog/internal/domain"
	"github.com/Yassen717/ModBlog/internal/logger"
	"github.com/Yassen717/ModBlog/internal/metrics"
	"github.com/Yassen717/ModBlog/internal/repository"
	"github.com/Yassen717/ModBlog/internal/validator"
)

const maxRelatedPosts = 3

// PostFilter narrows a post listing. Category is a category slug and Author
// an author id. Drafts are only listed when IncludeDrafts is set.
type PostFilter struct {
	Status        string
	Category      string
	Author        string
	Tag           string
	Limit         int
	Page          int
	IncludeDrafts bool
}

// MaxPageSize caps the limit of a paginated listing.
const MaxPageSize = 100

// Pagination describes one page of a limited listing.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// PostPage is the result of a filtered listing. Pagination is nil when no
// limit was requested.
type PostPage struct {
	Posts      []domain.Post `json:"posts"`
	Pagination *Pagination   `json:"pagination,omitempty"`
}

// PostDetail is a published post with its neighbours in the published list
// and up to three related posts from the same category.
type PostDetail struct {
	Post     domain.Post   `json:"post"`
	Previous *domain.Post  `json:"previous"`
	Next     *domain.Post  `json:"next"`
	Related  []domain.Post `json:"related"`
}

// PostInput is the payload for creating a post. The author and category can
// be given by id or as an embedded record.
type PostInput struct {
	Title         string           `json:"title"`
	Slug          string           `json:"slug"`
	Excerpt       string           `json:"excerpt"`
	Content       string           `json:"content"`
	FeaturedImage string           `json:"featuredImage"`
	AuthorID      string           `json:"authorId"`
	CategoryID    string           `json:"categoryId"`
	Author        *domain.Author   `json:"author"`
	Category      *domain.Category `json:"category"`
	Tags          []string         `json:"tags"`
	Status        string           `json:"status"`
	PublishedAt   *time.Time       `json:"publishedAt"`
}

// PostUpdate holds the fields to merge onto a stored post. Nil fields are
// left unchanged.
type PostUpdate struct {
	Title         *string          `json:"title"`
	Slug          *string          `json:"slug"`
	Excerpt       *string          `json:"excerpt"`
	Content       *string          `json:"content"`
	FeaturedImage *string          `json:"featuredImage"`
	AuthorID      *string          `json:"authorId"`
	CategoryID    *string          `json:"categoryId"`
	Author        *domain.Author   `json:"author"`
	Category      *domain.Category `json:"category"`
	Tags          []string         `json:"tags"`
	Status        *string          `json:"status"`
	PublishedAt   *time.Time       `json:"publishedAt"`
}

// PostService implements post queries and mutations.
type PostService struct {
	posts      repository.PostRepository
	categories repository.CategoryRepository
	authors    repository.AuthorRepository
	validator  *validator.Validator
	now        func() time.Time
}

// NewPostService creates a new PostService.
func NewPostService(
	posts repository.PostRepository,
	categories repository.CategoryRepository,
	authors repository.AuthorRepository,
	v *validator.Validator,
) *PostService {
	return &PostService{
		posts:      posts,
		categories: categories,
		authors:    authors,
		validator:  v,
		now:        time.Now,
	}
}

// List returns posts matching filter. A published status filter, or a
// listing without drafts, is ordered by publishedAt; everything else by
// updatedAt.
func (s *PostService) List(ctx context.Context, filter PostFilter) PostPage {
	var posts []domain.Post
	if filter.Status == string(domain.PostStatusPublished) || !filter.IncludeDrafts {
		posts = s.posts.ListPublished(ctx)
	} else {
		posts = s.posts.List(ctx)
	}
	posts = s.refresh(ctx, posts)

	filtered := posts[:0]
	for _, p := range posts {
		if filter.Status != "" && string(p.Status) != filter.Status {
			continue
		}
		if filter.Category != "" && p.Category.Slug != filter.Category {
			continue
		}
		if filter.Author != "" && p.Author.ID != filter.Author {
			continue
		}
		if filter.Tag != "" && !p.HasTag(filter.Tag) {
			continue
		}
		filtered = append(filtered, p)
	}

	if filter.Limit <= 0 {
		return PostPage{Posts: filtered}
	}
	return paginate(filtered, filter.Limit, filter.Page)
}

func paginate(posts []domain.Post, limit, page int) PostPage {
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if page < 1 {
		page = 1
	}
	total := len(posts)
	totalPages := (total + limit - 1) / limit
	pagination := &Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
	if page > totalPages {
		return PostPage{Posts: []domain.Post{}, Pagination: pagination}
	}

	start := (page - 1) * limit
	end := min(start+limit, total)
	return PostPage{Posts: posts[start:end], Pagination: pagination}
}

// ListPublished returns every published post, newest first.
func (s *PostService) ListPublished(ctx context.Context) []domain.Post {
	return s.refresh(ctx, s.posts.ListPublished(ctx))
}

// Get returns a post by id regardless of status.
func (s *PostService) Get(ctx context.Context, id string) (domain.Post, error) {
	post, ok := s.posts.GetByID(ctx, id)
	if !ok {
		return domain.Post{}, ErrNotFound
	}
	return s.refresh(ctx, []domain.Post{post})[0], nil
}

// GetPublishedBySlug returns a published post with its navigation and
// related posts. Drafts are reported as not found.
func (s *PostService) GetPublishedBySlug(ctx context.Context, slug string) (PostDetail, error) {
	published := s.ListPublished(ctx)

	index := -1
	for i := range published {
		if published[i].Slug == slug {
			index = i
			break
		}
	}
	if index < 0 {
		return PostDetail{}, ErrNotFound
	}

	detail := PostDetail{Post: published[index], Related: []domain.Post{}}
	if index > 0 {
		prev := published[index-1]
		detail.Previous = &prev
	}
	if index < len(published)-1 {
		next := published[index+1]
		detail.Next = &next
	}
	for _, p := range published {
		if len(detail.Related) == maxRelatedPosts {
			break
		}
		if p.ID != detail.Post.ID && p.Category.ID == detail.Post.Category.ID {
			detail.Related = append(detail.Related, p)
		}
	}
	return detail, nil
}

// Search returns published posts whose title, excerpt, content or tags
// contain query, ignoring case.
func (s *PostService) Search(ctx context.Context, query string) []domain.Post {
	return s.refresh(ctx, s.posts.Search(ctx, strings.TrimSpace(query)))
}

// ByCategory returns a category and its published posts.
func (s *PostService) ByCategory(ctx context.Context, slug string) (domain.Category, []domain.Post, error) {
	category, ok := s.categories.GetBySlug(ctx, slug)
	if !ok {
		return domain.Category{}, nil, ErrNotFound
	}
	return category, s.refresh(ctx, s.posts.ListByCategory(ctx, category.ID)), nil
}

// ByTag returns published posts carrying tag.
func (s *PostService) ByTag(ctx context.Context, tag string) []domain.Post {
	return s.refresh(ctx, s.posts.ListByTag(ctx, tag))
}

// Create validates input, applies defaults and stores a new post.
func (s *PostService) Create(ctx context.Context, input PostInput) (domain.Post, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" || strings.TrimSpace(input.Excerpt) == "" {
		return domain.Post{}, missingFields("title", "content", "excerpt")
	}

	now := s.now().UTC()
	post := domain.Post{
		ID:            domain.NewID(),
		Title:         input.Title,
		Slug:          input.Slug,
		Excerpt:       input.Excerpt,
		Content:       input.Content,
		FeaturedImage: input.FeaturedImage,
		Tags:          input.Tags,
		Status:        domain.PostStatus(input.Status),
		UpdatedAt:     now,
	}
	if post.Slug == "" {
		post.Slug = domain.GenerateSlug(post.Title)
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	if post.Status == "" {
		post.Status = domain.PostStatusDraft
	}
	post.ReadingTime = domain.CalculateReadingTime(post.Content)

	switch {
	case post.IsPublished():
		post.PublishedAt = now
	case input.PublishedAt != nil:
		post.PublishedAt = input.PublishedAt.UTC()
	default:
		post.PublishedAt = now
	}

	post.Author = s.resolveAuthor(ctx, input.AuthorID, input.Author)
	post.Category = s.resolveCategory(ctx, input.CategoryID, input.Category)

	if err := s.validator.ValidatePost(&post); err != nil {
		return domain.Post{}, newValidationError(err)
	}

	saved := s.posts.Save(ctx, post)
	metrics.RecordMutation("post", "create")
	logger.InfoContext(ctx, "Post created",
		slog.String("post_id", saved.ID),
		slog.String("status", string(saved.Status)),
	)
	return saved, nil
}

// Update merges update onto the stored post. The id never changes and
// updatedAt is stamped. Publishing a draft stamps publishedAt unless the
// update carries one.
func (s *PostService) Update(ctx context.Context, id string, update PostUpdate) (domain.Post, error) {
	current, ok := s.posts.GetByID(ctx, id)
	if !ok {
		return domain.Post{}, ErrNotFound
	}

	author, category := s.resolveUpdateRefs(ctx, update)
	now := s.now().UTC()

	candidate := current
	update.apply(&candidate, author, category, now)
	if err := s.validator.ValidatePost(&candidate); err != nil {
		return domain.Post{}, newValidationError(err)
	}

	updated, ok := s.posts.Update(ctx, id, func(p *domain.Post) {
		update.apply(p, author, category, now)
	})
	if !ok {
		return domain.Post{}, ErrNotFound
	}
	metrics.RecordMutation("post", "update")
	logger.InfoContext(ctx, "Post updated",
		slog.String("post_id", id),
		slog.String("status", string(updated.Status)),
	)
	return updated, nil
}

// Delete removes a post.
func (s *PostService) Delete(ctx context.Context, id string) error {
	if !s.posts.Delete(ctx, id) {
		return ErrNotFound
	}
	metrics.RecordMutation("post", "delete")
	logger.InfoContext(ctx, "Post deleted", slog.String("post_id", id))
	return nil
}

func (u PostUpdate) apply(p *domain.Post, author *domain.Author, category *domain.Category, now time.Time) {
	wasPublished := p.IsPublished()

	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Slug != nil {
		p.Slug = *u.Slug
	}
	if u.Excerpt != nil {
		p.Excerpt = *u.Excerpt
	}
	if u.Content != nil {
		p.Content = *u.Content
		p.ReadingTime = domain.CalculateReadingTime(p.Content)
	}
	if u.FeaturedImage != nil {
		p.FeaturedImage = *u.FeaturedImage
	}
	if u.Tags != nil {
		p.Tags = u.Tags
	}
	if u.Status != nil {
		p.Status = domain.PostStatus(*u.Status)
	}
	if author != nil {
		p.Author = *author
	}
	if category != nil {
		p.Category = *category
	}

	switch {
	case u.PublishedAt != nil:
		p.PublishedAt = u.PublishedAt.UTC()
	case !wasPublished && p.IsPublished():
		p.PublishedAt = now
	}
	p.UpdatedAt = now
}

func (s *PostService) resolveUpdateRefs(ctx context.Context, u PostUpdate) (*domain.Author, *domain.Category) {
	var author *domain.Author
	if u.AuthorID != nil || u.Author != nil {
		a := s.resolveAuthor(ctx, deref(u.AuthorID), u.Author)
		author = &a
	}
	var category *domain.Category
	if u.CategoryID != nil || u.Category != nil {
		c := s.resolveCategory(ctx, deref(u.CategoryID), u.Category)
		category = &c
	}
	return author, category
}

// resolveAuthor prefers the stored author with the given id, then the
// embedded record, then the first stored author.
func (s *PostService) resolveAuthor(ctx context.Context, id string, embedded *domain.Author) domain.Author {
	if id == "" && embedded != nil {
		id = embedded.ID
	}
	if id != "" {
		if a, ok := s.authors.GetByID(ctx, id); ok {
			return a
		}
	}
	if embedded != nil {
		return *embedded
	}
	if all := s.authors.List(ctx); len(all) > 0 {
		return all[0]
	}
	return domain.Author{}
}

func (s *PostService) resolveCategory(ctx context.Context, id string, embedded *domain.Category) domain.Category {
	if id == "" && embedded != nil {
		id = embedded.ID
	}
	if id != "" {
		if c, ok := s.categories.GetByID(ctx, id); ok {
			return c
		}
	}
	if embedded != nil {
		return *embedded
	}
	return domain.Category{}
}

// refresh replaces the stored author and category snapshots with the live
// records when they still exist.
func (s *PostService) refresh(ctx context.Context, posts []domain.Post) []domain.Post {
	if len(posts) == 0 {
		return posts
	}
	categories := make(map[string]domain.Category)
	for _, c := range s.categories.List(ctx) {
		categories[c.ID] = c
	}
	authors := make(map[string]domain.Author)
	for _, a := range s.authors.List(ctx) {
		authors[a.ID] = a
	}
	for i := range posts {
		if c, ok := categories[posts[i].Category.ID]; ok {
			posts[i].Category = c
		}
		if a, ok := authors[posts[i].Author.ID]; ok {
			posts[i].Author = a
		}
	}
	return posts
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
