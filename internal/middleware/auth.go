package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextCaller   = "caller"

	TokenTTL = 24 * time.Hour
)

// IssueToken signs an access token for the given caller.
func IssueToken(secret string, caller identity.Caller, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  caller.ID,
		"role": string(caller.Role),
		"exp":  now.Add(TokenTTL).Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func parseToken(secret, tokenString string) (identity.Caller, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return identity.Caller{}, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return identity.Caller{}, fmt.Errorf("invalid token claims")
	}

	userID, ok := claims["sub"].(float64)
	if !ok || userID <= 0 {
		return identity.Caller{}, fmt.Errorf("invalid token subject")
	}

	rawRole, _ := claims["role"].(string)
	role, err := identity.ParseRole(rawRole)
	if err != nil {
		return identity.Caller{}, err
	}

	return identity.Caller{ID: uint(userID), Role: role}, nil
}

func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Autenticação necessária.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Cabeçalho de autorização inválido.")
			c.Abort()
			return
		}

		caller, err := parseToken(secret, parts[1])
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "Token inválido.")
			c.Abort()
			return
		}

		c.Set(ContextUserID, caller.ID)
		c.Set(ContextUserRole, caller.Role)
		c.Set(ContextCaller, caller)

		c.Next()
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok || !caller.IsAdmin() {
			httperr.Forbidden(c, "admin_only", "Apenas administradores.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func CallerFrom(c *gin.Context) (identity.Caller, bool) {
	v, exists := c.Get(ContextCaller)
	if !exists {
		return identity.Caller{}, false
	}
	caller, ok := v.(identity.Caller)
	return caller, ok
}
