package middleware

import (
	"errors"
	"strings"

	"itemhub/internal/apierr"
	"itemhub/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	AuthUserKey     = "authUser"
	AuthUsernameKey = "authUsername"
	AuthRoleKey     = "authRole"
)

func bearerToken(c *gin.Context) (string, *apierr.Error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", apierr.AuthRequired()
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", apierr.InvalidAuthFormat()
	}
	return parts[1], nil
}

func verify(c *gin.Context, jwtUtil *utils.JWTUtil, tokenString string) *apierr.Error {
	claims, err := jwtUtil.ValidateToken(tokenString)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return apierr.TokenExpired()
		}
		return apierr.InvalidToken()
	}

	c.Set(AuthUserKey, claims.UserID)
	c.Set(AuthUsernameKey, claims.Username)
	c.Set(AuthRoleKey, claims.Role)
	return nil
}

// JWTAuthMiddleware requires a valid bearer token and attaches the decoded
// identity to the request context
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, apiErr := bearerToken(c)
		if apiErr != nil {
			c.Error(apiErr)
			c.Abort()
			return
		}

		if apiErr := verify(c, jwtUtil, tokenString); apiErr != nil {
			c.Error(apiErr)
			c.Abort()
			return
		}

		c.Next()
	}
}

// OptionalAuthMiddleware attaches an identity when a bearer token is present
// but lets anonymous requests through. A token that is present and fails
// verification still fails the request.
func OptionalAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		tokenString, apiErr := bearerToken(c)
		if apiErr == nil {
			apiErr = verify(c, jwtUtil, tokenString)
		}
		if apiErr != nil {
			c.Error(apiErr)
			c.Abort()
			return
		}

		c.Next()
	}
}
