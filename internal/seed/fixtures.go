package seed

import (
	"strconv"
	"time"

	"github.com/Yassen717/ModBlog/internal/domain"
)

// BaseTime is the publication time of the newest fixture post. Every later
// fixture is published one week earlier than the previous one.
var BaseTime = time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

// Fixtures is the complete fixture set written to an empty store.
type Fixtures struct {
	Author     domain.Author
	Categories []domain.Category
	Posts      []domain.Post
	Users      []domain.User
}

// Data builds the fixture set. It returns fresh slices on every call and
// always produces the same content.
func Data() Fixtures {
	author := domain.Author{
		ID:     "1",
		Name:   "John Doe",
		Bio:    "Full-stack developer writing about the web platform, tooling and maintainable frontends.",
		Avatar: "/images/authors/john-doe.webp",
		Social: &domain.SocialLinks{
			Twitter:  "https://twitter.com/johndoe",
			GitHub:   "https://github.com/johndoe",
			LinkedIn: "https://linkedin.com/in/johndoe",
			Website:  "https://johndoe.dev",
		},
	}

	categories := []domain.Category{
		{ID: "1", Name: "Web Development", Slug: "web-development", Description: "Techniques and practices for building for the web", Color: "#3B82F6"},
		{ID: "2", Name: "JavaScript", Slug: "javascript", Description: "The language, its tooling and TypeScript", Color: "#F59E0B"},
		{ID: "3", Name: "React", Slug: "react", Description: "Components, hooks and rendering patterns", Color: "#10B981"},
		{ID: "4", Name: "Next.js", Slug: "nextjs", Description: "Routing, data fetching and deployment with Next.js", Color: "#8B5CF6"},
		{ID: "5", Name: "CSS", Slug: "css", Description: "Layout, animation and design systems", Color: "#EF4444"},
	}

	byID := make(map[string]domain.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	posts := make([]domain.Post, 0, len(postFixtures))
	for i, f := range postFixtures {
		publishedAt := BaseTime.Add(-time.Duration(i) * 7 * 24 * time.Hour)
		slug := domain.GenerateSlug(f.title)
		posts = append(posts, domain.Post{
			ID:            postID(i),
			Title:         f.title,
			Slug:          slug,
			Excerpt:       f.excerpt,
			Content:       f.content,
			FeaturedImage: "/images/posts/" + slug + ".webp",
			Author:        author,
			Category:      byID[f.categoryID],
			Tags:          append([]string(nil), f.tags...),
			PublishedAt:   publishedAt,
			UpdatedAt:     publishedAt,
			Status:        domain.PostStatusPublished,
			ReadingTime:   domain.CalculateReadingTime(f.content),
		})
	}

	return Fixtures{
		Author:     author,
		Categories: categories,
		Posts:      posts,
		Users:      users(),
	}
}

func postID(i int) string {
	return strconv.Itoa(i + 1)
}

func users() []domain.User {
	at := func(s string) *time.Time {
		t, _ := time.Parse("2006-01-02 15:04", s)
		return &t
	}
	created := BaseTime.AddDate(0, -6, 0)
	return []domain.User{
		{ID: "1", Name: "John Doe", Email: "john@example.com", Role: domain.RoleAdministrator, Status: domain.UserStatusActive, Avatar: "/images/users/john.webp", LastLogin: at("2024-01-15 14:30"), CreatedAt: created, UpdatedAt: created},
		{ID: "2", Name: "Jane Smith", Email: "jane@example.com", Role: domain.RoleEditor, Status: domain.UserStatusActive, Avatar: "/images/users/jane.webp", LastLogin: at("2024-01-14 09:15"), CreatedAt: created, UpdatedAt: created},
		{ID: "3", Name: "Bob Wilson", Email: "bob@example.com", Role: domain.RoleAuthor, Status: domain.UserStatusInactive, Avatar: "/images/users/bob.webp", LastLogin: at("2024-01-10 16:45"), CreatedAt: created, UpdatedAt: created},
		{ID: "4", Name: "Alice Johnson", Email: "alice@example.com", Role: domain.RoleSubscriber, Status: domain.UserStatusActive, Avatar: "/images/users/alice.webp", LastLogin: at("2024-01-13 11:20"), CreatedAt: created, UpdatedAt: created},
	}
}

type postFixture struct {
	title      string
	excerpt    string
	content    string
	categoryID string
	tags       []string
}

var postFixtures = []postFixture{
	{
		title:      "Getting Started with Next.js 14 and the App Router",
		excerpt:    "A tour of the App Router in Next.js 14: file-based layouts, server components and the new data fetching model.",
		categoryID: "4",
		tags:       []string{"Next.js", "React", "Web Development", "App Router"},
		content: `# Getting Started with Next.js 14 and the App Router

The App Router replaces the pages directory with a tree of nested folders. Each folder is a route segment and may carry a layout, a loading state and an error boundary of its own.

## Layouts

A layout wraps every page below it and keeps its state while the user navigates between siblings. The root layout owns the html and body tags, so shared navigation and fonts live there once.

## Server components by default

Components under the app directory render on the server unless they opt into the client with a directive at the top of the file. Server components can read from a database or the filesystem directly and send only the resulting markup to the browser.

## Fetching data

Data fetching happens inside async components. Requests made with fetch are cached and deduplicated, and each call can declare how long its response stays fresh. Revalidation can also be triggered on demand after a mutation.

## Where to go next

Start with a single layout and a couple of pages, then move shared pieces into route groups as the application grows. Keep client components small and push them toward the leaves of the tree.`,
	},
	{
		title:      "Mastering TypeScript: Advanced Types and Patterns",
		excerpt:    "Utility types, conditional types and branded identifiers: the parts of the TypeScript type system that pay off in large codebases.",
		categoryID: "2",
		tags:       []string{"TypeScript", "Advanced Types", "Programming", "Type Safety"},
		content: `# Mastering TypeScript: Advanced Types and Patterns

Most TypeScript code gets by with interfaces and unions. The type system goes much further, and a few advanced features remove whole classes of runtime checks.

## Utility types

Partial, Required, Pick and Omit derive new shapes from existing ones. Record builds dictionary types and ReturnType extracts what a function produces, so helpers stay in sync with the code they describe.

## Conditional types

A conditional type chooses between two branches based on assignability. Combined with infer it can unwrap promises, pull element types out of arrays or map function parameters.

## Mapped types

Mapped types iterate over the keys of another type. They make it easy to produce readonly views, optional patches or event handler maps from a single source of truth.

## Branded identifiers

Two string identifiers for different entities are interchangeable to the compiler. Adding a brand makes a user id and an order id distinct types while keeping them plain strings at runtime.

## Closing thoughts

Reach for these tools when they delete code or prevent a real bug. Types that nobody can read cost more than they save.`,
	},
	{
		title:      "Building Responsive Layouts with CSS Grid and Flexbox",
		excerpt:    "When to use Grid, when to use Flexbox, and how to combine them into layouts that adapt without a pile of media queries.",
		categoryID: "5",
		tags:       []string{"CSS", "Grid", "Flexbox", "Responsive Design", "Layout"},
		content: `# Building Responsive Layouts with CSS Grid and Flexbox

Grid and Flexbox solve different problems. Grid places items in two dimensions at once, while Flexbox distributes items along a single axis.

## Grid for page structure

Named template areas describe a page in a few readable lines: header, sidebar, main and footer. Changing the template at a breakpoint rearranges the whole page without touching the markup.

## Auto-fit card grids

A repeat with auto-fit and a minmax track size produces a card grid that adds or removes columns as space allows. No media query is needed for the common case.

## Flexbox for components

Navigation bars, button groups and media objects are one-dimensional. Flexbox with gap and wrapping handles them cleanly, and margin auto pushes an item to the far end of the row.

## Combining the two

Use Grid for the outer frame and Flexbox inside each cell. Container queries let a component respond to the size of its own container instead of the viewport, which keeps components portable.

## Summary

Pick the tool by the number of dimensions you need to control, and let intrinsic sizing do most of the responsive work.`,
	},
	{
		title:      "React Server Components: The Future of React",
		excerpt:    "How server components change the split between server and client, and what that means for bundle size and data access.",
		categoryID: "3",
		tags:       []string{"React", "Server Components", "Performance", "Next.js"},
		content: `# React Server Components: The Future of React

Server components render ahead of time on the server and never ship their code to the browser. Client components still handle interactivity, and the two compose in one tree.

## Smaller bundles

Libraries used only for rendering, such as markdown parsers or date formatters, stay on the server. The browser downloads the output instead of the dependency.

## Direct data access

A server component can query a database or call an internal service without an API layer in between. Secrets stay on the server because the component code never reaches the client.

## Streaming

Suspense boundaries let the server send the shell of a page first and stream slower sections as their data resolves. Users see content sooner even when one query is slow.

## The boundary

Props passed from a server component to a client component must be serializable. Functions and class instances cannot cross, which keeps the boundary explicit.

## Adopting them

Start by keeping everything on the server and move a component to the client only when it needs state, effects or browser APIs.`,
	},
	{
		title:      "Modern JavaScript: ES2024 Features You Should Know",
		excerpt:    "Array grouping, promise helpers and well-formed strings: the ES2024 additions that simplify everyday JavaScript.",
		categoryID: "2",
		tags:       []string{"JavaScript", "ES2024", "Modern JavaScript", "Features"},
		content: `# Modern JavaScript: ES2024 Features You Should Know

ES2024 is a modest release, but several additions replace helpers that most projects used to write by hand.

## Grouping

Object.groupBy and Map.groupBy bucket the items of an iterable by the key a callback returns. Grouping products by category or events by day becomes a single call.

## Promise.withResolvers

This helper returns a promise together with its resolve and reject functions. It removes the awkward pattern of capturing them from inside the executor.

## Well-formed strings

isWellFormed and toWellFormed detect and repair lone surrogates, which matters when passing text to APIs that require valid Unicode.

## Resizable array buffers

ArrayBuffer can now be created with a maximum length and resized in place, which helps code that streams binary data.

## Wrapping up

None of these features change how JavaScript is written overall, but each one deletes a small utility from your codebase.`,
	},
}
