package devserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"storefront-client/auth"
	"storefront-client/models"
	"storefront-client/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// issueToken handles POST /auth/token: demo credentials in, HS256 bearer
// token out. The claims mirror the realm/resource shape the real identity
// provider emits so the client's role resolution sees the same structure.
func (s *Server) issueToken(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, ok := s.store.FindUser(req.Email)
	if !ok || !utils.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Errorf("token request rejected for %s", req.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":                user.Username,
		"preferred_username": user.Username,
		"iss":                s.cfg.AppName,
		"iat":                now.Unix(),
		"exp":                now.Add(s.cfg.TokenExpiresIn).Unix(),
		"realm_access": map[string]interface{}{
			"roles": user.Roles,
		},
		"resource_access": map[string]interface{}{
			"storefront": map[string]interface{}{
				"roles": user.Roles,
			},
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.TokenSecret))
	if err != nil {
		s.logger.Errorf("signing token failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, models.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.cfg.TokenExpiresIn.Seconds()),
	})
}

// authRequired verifies the bearer token and stashes the caller's username
// and effective role in the request context
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed Authorization header"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(strings.TrimSpace(parts[1]), func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(s.cfg.TokenSecret), nil
		})
		if err != nil || !token.Valid {
			s.logger.Errorf("token validation failed: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		mapClaims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}

		username, _ := mapClaims["preferred_username"].(string)
		if username == "" {
			username, _ = mapClaims["sub"].(string)
		}

		// Reuse the client's role resolver against the verified claims so
		// the server-side decision matches the advisory client-side one.
		raw, err := json.Marshal(map[string]interface{}(mapClaims))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}
		role := auth.ResolveRole(models.TokenClaims{Raw: raw, Fields: mapClaims})

		c.Set("username", username)
		c.Set("role", role)
		c.Next()
	}
}

// adminRequired rejects callers whose effective role is not ADMIN
func (s *Server) adminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if role, _ := c.Get("role"); role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}
