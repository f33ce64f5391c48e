package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"folkify/config"
	"folkify/internal/app/http/respond"
	"folkify/internal/domain/session"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	sessionKey = "session"
	tokenTTL   = 24 * time.Hour
)

// IssueToken signs the app JWT carried by every authenticated request.
func IssueToken(userID, email, role string) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	})
	return t.SignedString([]byte(config.JWT_SECRET))
}

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		jwtKey := []byte(config.JWT_SECRET)
		if len(jwtKey) == 0 {
			respond.FailWith(c, http.StatusInternalServerError, "JWT secret not configured")
			return
		}
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			respond.FailWith(c, http.StatusUnauthorized, "Authorization header missing")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			respond.FailWith(c, http.StatusUnauthorized, "Bearer token malformed")
			return
		}

		token, err := parseToken(tokenString, jwtKey)
		if err != nil || !token.Valid {
			respond.FailWith(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		s, ok := sessionFromClaims(token)
		if !ok {
			respond.FailWith(c, http.StatusUnauthorized, "Invalid token claims")
			return
		}

		SetSession(c, s)
		c.Next()
	}
}

// SetSession stores the actor on the request context.
func SetSession(c *gin.Context, s session.Session) {
	c.Set(sessionKey, s)
	c.Set("user_id", s.UserID)
	c.Set("email", s.Email)
	c.Set("role", s.Role)
}

// CurrentSession returns the actor set by AuthMiddleware.
func CurrentSession(c *gin.Context) (session.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return session.Session{}, false
	}
	s, ok := v.(session.Session)
	return s, ok && s.Authenticated()
}

func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := CurrentSession(c)
		if !ok {
			respond.FailWith(c, http.StatusUnauthorized, "Role not found in token")
			return
		}

		if s.Role != role {
			respond.FailWith(c, http.StatusForbidden, "Access denied")
			return
		}

		c.Next()
	}
}

// OptionalAuth attaches the session when a valid bearer token is present and
// lets anonymous requests through unchanged.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if tokenString == "" || len(config.JWT_SECRET) == 0 {
			c.Next()
			return
		}
		token, err := parseToken(tokenString, []byte(config.JWT_SECRET))
		if err == nil && token.Valid {
			if s, ok := sessionFromClaims(token); ok {
				SetSession(c, s)
			}
		}
		c.Next()
	}
}

func parseToken(raw string, key []byte) (*jwt.Token, error) {
	return jwt.Parse(strings.TrimSpace(raw), func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return key, nil
	})
}

func sessionFromClaims(token *jwt.Token) (session.Session, bool) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return session.Session{}, false
	}
	s := session.Session{}
	s.UserID, _ = claims["user_id"].(string)
	s.Email, _ = claims["email"].(string)
	s.Role, _ = claims["role"].(string)
	return s, s.Authenticated()
}
