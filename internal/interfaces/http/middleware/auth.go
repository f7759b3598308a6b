package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"shieldnest.backend/internal/domain/entities"
	"shieldnest.backend/pkg/jwt"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// UserIDKey is the context key for user ID
	UserIDKey = "userId"
	// UserEmailKey is the context key for user email
	UserEmailKey = "userEmail"
)

// AuthMiddleware requires a valid bearer token
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, jwtService)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Valid bearer token required",
			})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the session when a valid bearer token is
// present and continues anonymously otherwise. The wallet verify flow uses
// this to distinguish visitor bootstrap from wallet linking.
func OptionalAuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := bearerClaims(c, jwtService); ok {
			c.Set(UserIDKey, claims.UserID)
			c.Set(UserEmailKey, claims.Email)
		}
		c.Next()
	}
}

func bearerClaims(c *gin.Context, jwtService *jwt.JWTService) (*jwt.Claims, bool) {
	authHeader := c.GetHeader(AuthorizationHeader)
	if !strings.HasPrefix(authHeader, BearerPrefix) {
		return nil, false
	}

	claims, err := jwtService.ValidateToken(strings.TrimPrefix(authHeader, BearerPrefix))
	if err != nil {
		return nil, false
	}
	return claims, true
}

// GetUserID gets the user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetSession reads the tri-state session identity from the request context
func GetSession(c *gin.Context) entities.Session {
	if id, ok := GetUserID(c); ok {
		return entities.Session{Authenticated: true, UserID: id}
	}
	return entities.Session{}
}
