package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	// ContextUserID is the gin context key holding the authenticated user id.
	ContextUserID = "user_id"
	// ContextIsSuperuser ...
	ContextIsSuperuser = "is_superuser"
	// ContextIsAuthor ...
	ContextIsAuthor = "is_author"
)

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, map[string]interface{}{
		"code":         http.StatusUnauthorized,
		"code_type":    "unAuthorized",
		"code_message": message,
		"data":         map[string]interface{}{},
	})
}

// JWTAuth validates the bearer token and stores the caller identity
// in the request context.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid authorization header")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "invalid token claims")
			return
		}

		if purpose, _ := claims["purpose"].(string); purpose != "access" {
			abortUnauthorized(c, "token is not an access token")
			return
		}

		rawID, ok := claims["user_id"].(string)
		if !ok {
			abortUnauthorized(c, "invalid token claims")
			return
		}
		userID, err := uuid.Parse(rawID)
		if err != nil {
			abortUnauthorized(c, "invalid token claims")
			return
		}

		isSuperuser, _ := claims["is_superuser"].(bool)
		isAuthor, _ := claims["is_author"].(bool)

		c.Set(ContextUserID, userID)
		c.Set(ContextIsSuperuser, isSuperuser)
		c.Set(ContextIsAuthor, isAuthor)
		c.Next()
	}
}

// RequireSuperuser must run after JWTAuth.
func RequireSuperuser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ContextIsSuperuser) {
			c.AbortWithStatusJSON(http.StatusForbidden, map[string]interface{}{
				"code":         http.StatusForbidden,
				"code_type":    "forbidden",
				"code_message": "superuser access required",
				"data":         map[string]interface{}{},
			})
			return
		}
		c.Next()
	}
}

// ServiceAuth guards the internal surface used by sibling services.
func ServiceAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header != "Bearer "+token {
			abortUnauthorized(c, "invalid service token")
			return
		}
		c.Next()
	}
}

// CallerID returns the authenticated user id from the context.
func CallerID(c *gin.Context) uuid.UUID {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil
	}
	id, _ := v.(uuid.UUID)
	return id
}
