package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yassen717/ModBlog/internal/auth"
	"github.com/Yassen717/ModBlog/internal/logger"
)

const (
	claimsKey    = "auth_claims"
	authErrorKey = "auth_error"

	// LoginPath and UnauthorizedPath are the redirect targets of AdminPages.
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
)

// TokenParser verifies a session token.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// Authenticate resolves the auth-token cookie into claims when present and
// valid. It never rejects a request; RequireRoles does.
func Authenticate(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := auth.TokenFromRequest(c.Request)
		if !ok {
			c.Next()
			return
		}
		claims, err := tokens.Parse(token)
		if err != nil {
			c.Set(authErrorKey, err)
			c.Next()
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// GetClaims returns the claims resolved by Authenticate.
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok && claims != nil
}

// AuthError returns why Authenticate rejected the cookie, if it did.
func AuthError(c *gin.Context) error {
	if v, ok := c.Get(authErrorKey); ok {
		if err, ok := v.(error); ok {
			return err
		}
	}
	return nil
}

// RequireRoles aborts with 401 when the request carries no valid session
// and with 403 when its role is not one of roles.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			msg := "Not authenticated"
			if errors.Is(AuthError(c), auth.ErrTokenExpired) {
				msg = "Token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			logger.WithRequestID(GetRequestID(c)).Warn("Forbidden request",
				"user_id", claims.UserID,
				"role", claims.Role,
				"path", c.Request.URL.Path,
			)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}

// AdminPages guards the HTML admin paths. Missing sessions redirect to the
// login page; expired or unreadable sessions also drop the cookie; roles
// other than admin and editor go to the unauthorized page.
func AdminPages(tokens TokenParser, cookie auth.CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := auth.TokenFromRequest(c.Request)
		if !ok {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		claims, err := tokens.Parse(token)
		if err != nil {
			auth.ClearCookie(c.Writer, cookie)
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		if !auth.CanManage(claims.Role) {
			c.Redirect(http.StatusFound, UnauthorizedPath)
			c.Abort()
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}
