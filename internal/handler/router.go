package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Yassen717/ModBlog/internal/auth"
	"github.com/Yassen717/ModBlog/internal/logger"
	"github.com/Yassen717/ModBlog/internal/middleware"
)

// RouterDeps collects everything NewRouter mounts.
type RouterDeps struct {
	Health     *HealthHandler
	Posts      *PostHandler
	Blog       *BlogHandler
	Categories *CategoryHandler
	Comments   *CommentHandler
	Authors    *AuthorHandler
	Users      *UserHandler
	Settings   *SettingsHandler
	Admin      *AdminHandler
	Export     *ExportHandler
	Auth       *AuthHandler

	Tokens       middleware.TokenParser
	Cookie       auth.CookieOptions
	LoginLimiter *middleware.RateLimiter
	// TrustedProxies may set X-Forwarded-For. Nil trusts no proxy.
	TrustedProxies []string

	// AdminUI serves the guarded /admin pages. When nil the guard answers
	// with the session it admitted.
	AdminUI http.Handler
}

// NewRouter builds the gin engine with every route.
func NewRouter(d RouterDeps) *gin.Engine {
	router := gin.New()
	if err := router.SetTrustedProxies(d.TrustedProxies); err != nil {
		logger.Error("Invalid trusted proxies, trusting none",
			slog.String("error", err.Error()))
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics("/metrics", "/health", "/ready", "/live"))
	router.Use(middleware.AccessLog())

	router.GET("/health", d.Health.Health)
	router.GET("/ready", d.Health.Ready)
	router.GET("/live", d.Health.Live)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/admin/*path", middleware.AdminPages(d.Tokens, d.Cookie), adminPage(d.AdminUI))

	api := router.Group("/api")
	api.Use(middleware.Authenticate(d.Tokens))
	staff := middleware.RequireRoles(auth.RoleAdmin, auth.RoleEditor)

	authRoutes := api.Group("/auth")
	{
		login := []gin.HandlerFunc{d.Auth.Login}
		if d.LoginLimiter != nil {
			login = append([]gin.HandlerFunc{d.LoginLimiter.Middleware()}, login...)
		}
		authRoutes.POST("/login", login...)
		authRoutes.POST("/logout", d.Auth.Logout)
		authRoutes.GET("/me", d.Auth.Me)
	}

	posts := api.Group("/posts")
	{
		posts.GET("", d.Posts.List)
		posts.GET("/search", d.Posts.Search)
		posts.GET("/:id", d.Posts.Get)
		posts.POST("", staff, d.Posts.Create)
		posts.PUT("/:id", staff, d.Posts.Update)
		posts.DELETE("/:id", staff, d.Posts.Delete)
	}

	blog := api.Group("/blog")
	{
		blog.GET("/posts", d.Blog.Posts)
		blog.GET("/posts/:slug", d.Blog.Post)
		blog.GET("/categories", d.Blog.Categories)
		blog.GET("/categories/:slug", d.Blog.Category)
		blog.GET("/tags/:tag", d.Blog.Tag)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", d.Categories.List)
		categories.GET("/:id", d.Categories.Get)
		categories.POST("", staff, d.Categories.Create)
		categories.PUT("/:id", staff, d.Categories.Update)
		categories.DELETE("/:id", staff, d.Categories.Delete)
	}

	comments := api.Group("/comments")
	{
		comments.GET("", d.Comments.List)
		comments.GET("/:id", d.Comments.Get)
		comments.POST("", d.Comments.Create)
		comments.POST("/bulk", staff, d.Comments.Bulk)
		comments.POST("/:id/reply", staff, d.Comments.Reply)
		comments.PUT("/:id", staff, d.Comments.Update)
		comments.DELETE("/:id", staff, d.Comments.Delete)
	}

	api.GET("/authors", d.Authors.List)
	api.GET("/authors/:id", d.Authors.Get)
	api.GET("/settings/public", d.Settings.Public)

	admin := api.Group("/admin", staff)
	{
		admin.GET("/dashboard", d.Admin.Dashboard)
		admin.GET("/posts", d.Posts.AdminList)
		admin.GET("/categories", d.Categories.AdminList)
		admin.GET("/comments", d.Comments.AdminList)

		admin.GET("/users", d.Users.List)
		admin.POST("/users", d.Users.Create)
		admin.GET("/users/:id", d.Users.Get)
		admin.PUT("/users/:id", d.Users.Update)
		admin.PUT("/users/:id/role", d.Users.ChangeRole)
		admin.POST("/users/:id/toggle-status", d.Users.ToggleStatus)
		admin.DELETE("/users/:id", d.Users.Delete)

		admin.POST("/authors", d.Authors.Save)
		admin.PUT("/authors/:id", d.Authors.Save)
		admin.DELETE("/authors/:id", d.Authors.Delete)

		admin.GET("/settings", d.Settings.Get)
		admin.PUT("/settings", d.Settings.Save)
		admin.POST("/settings/reset", d.Settings.Reset)

		admin.GET("/data", d.Admin.DataCounts)
		admin.POST("/data/clear", d.Admin.ClearData)
		admin.POST("/data/seed", d.Admin.SeedData)
		admin.POST("/data/reset", d.Admin.ResetData)

		admin.GET("/backups", d.Admin.ListBackups)
		admin.POST("/backups", d.Admin.RunBackup)
		admin.POST("/backups/restore", d.Admin.RestoreBackup)

		admin.GET("/export", d.Export.StreamExport)
	}

	return router
}

func adminPage(ui http.Handler) gin.HandlerFunc {
	if ui != nil {
		return func(c *gin.Context) {
			http.StripPrefix("/admin", ui).ServeHTTP(c.Writer, c.Request)
		}
	}
	return func(c *gin.Context) {
		claims, _ := middleware.GetClaims(c)
		c.JSON(http.StatusOK, gin.H{
			"page":   "/" + strings.TrimPrefix(c.Param("path"), "/"),
			"userId": claims.UserID,
			"role":   claims.Role,
		})
	}
}
