package domain

// DefaultCategoryColor is assigned to categories created without a color.
const DefaultCategoryColor = "#3B82F6"

// Category groups posts under a shared topic.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// CategoryWithCount is a category annotated with the number of posts in it.
type CategoryWithCount struct {
	Category
	PostCount int `json:"postCount"`
}
