package domain

import (
	"strings"
	"time"
)

// PostStatus is the publication state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// Post represents a blog post. Author and Category are snapshots of the
// related records taken when the post was last written.
type Post struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       string     `json:"excerpt"`
	Content       string     `json:"content"`
	FeaturedImage string     `json:"featuredImage,omitempty"`
	Author        Author     `json:"author"`
	Category      Category   `json:"category"`
	Tags          []string   `json:"tags"`
	PublishedAt   time.Time  `json:"publishedAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	Status        PostStatus `json:"status"`
	ReadingTime   int        `json:"readingTime"`
}

// IsPublished reports whether the post is visible on the public site.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// HasTag reports whether the post carries tag, ignoring case.
func (p *Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// ValidPostStatuses contains all valid post statuses.
var ValidPostStatuses = []PostStatus{PostStatusDraft, PostStatusPublished}

// IsValidPostStatus checks if a status is valid.
func IsValidPostStatus(status string) bool {
	for _, s := range ValidPostStatuses {
		if string(s) == status {
			return true
		}
	}
	return false
}
