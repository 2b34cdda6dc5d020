package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/menuvi/menuvi/internal/config"
)

const (
	ContextUserID       = "userID"
	ContextRestaurantID = "restaurantID"
	ContextUserRole     = "userRole"

	// TokenCookie carries the login JWT for browser clients; API clients
	// may send it as a Bearer token instead.
	TokenCookie = "menuvi_token"
)

// AuthMiddleware authenticates the request from the Authorization header
// or the token cookie. Unauthenticated browser navigation is bounced to
// the login page with the original URL in ?next=; script and API clients
// get a plain 401.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			if cookie, err := c.Cookie(TokenCookie); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			rejectUnauthenticated(c, "missing_credentials")
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			rejectUnauthenticated(c, "invalid_token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			rejectUnauthenticated(c, "invalid_token_claims")
			return
		}

		userID, ok := claims["sub"].(float64)
		if !ok {
			rejectUnauthenticated(c, "invalid_token_payload")
			return
		}
		role, _ := claims["role"].(string)

		var restaurantID *uint
		if rid, ok := claims["restaurantId"].(float64); ok && rid > 0 {
			v := uint(rid)
			restaurantID = &v
		}

		c.Set(ContextUserID, uint(userID))
		c.Set(ContextRestaurantID, restaurantID)
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func rejectUnauthenticated(c *gin.Context, code string) {
	if wantsJSON(c) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": code})
		return
	}

	dest := loginPath(c) + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
	c.Redirect(http.StatusFound, dest)
	c.Abort()
}

func wantsJSON(c *gin.Context) bool {
	if c.GetHeader("X-Requested-With") == "XMLHttpRequest" {
		return true
	}
	if c.GetHeader("Authorization") != "" {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}

func loginPath(c *gin.Context) string {
	if slug := c.Param("slug"); slug != "" {
		return "/" + slug + "/admin/login"
	}
	return "/superadmin/login"
}
