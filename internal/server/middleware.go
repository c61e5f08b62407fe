package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/courtly-dev/courtly/internal/auth"
	"github.com/courtly-dev/courtly/internal/models"
)

const (
	bearerPrefix = "Bearer "
)

var (
	ErrMissingAuthHeader = errors.New("missing authorization header")
	ErrInvalidAuthFormat = errors.New("invalid authorization header format")
	ErrEmptyToken        = errors.New("empty token")
	ErrInvalidToken      = errors.New("invalid token")
	ErrUserNotFound      = errors.New("user not found")
)

func setSession(c *gin.Context, claims *auth.JWTClaims) {
	c.Set("session", claims)
}

// GetSessionClaims returns the authenticated claims for the request
func GetSessionClaims(c *gin.Context) (*auth.JWTClaims, bool) {
	session, exists := c.Get("session")
	if !exists {
		return nil, false
	}

	claims, ok := session.(*auth.JWTClaims)
	return claims, ok
}

func extractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrMissingAuthHeader
	}

	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", ErrInvalidAuthFormat
	}

	token := strings.TrimPrefix(authHeader, bearerPrefix)
	if token == "" {
		return "", ErrEmptyToken
	}

	return token, nil
}

func respondWithError(c *gin.Context, log zerolog.Logger, statusCode int, err error, message string) {
	log.Warn().Err(err).Msg(message)
	c.JSON(statusCode, gin.H{"error": message})
	c.Abort()
}

// JWTAuthMiddleware validates bearer tokens on every protected request.
// A missing or stale token yields 401, which the client treats as the end
// of its session.
func JWTAuthMiddleware(db *gorm.DB, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token, err := extractBearerToken(authHeader)
		if err != nil {
			var message string
			switch err {
			case ErrMissingAuthHeader:
				message = "Missing authorization header"
			case ErrInvalidAuthFormat:
				message = "Invalid authorization header format"
			case ErrEmptyToken:
				message = "Empty token"
			}
			respondWithError(c, log, http.StatusUnauthorized, err, message)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			log.Error().Err(err).Msg("Failed to validate JWT token")
			respondWithError(c, log, http.StatusUnauthorized, ErrInvalidToken, "Invalid or expired token")
			return
		}

		// Verify the account still exists; deleted accounts lose access
		// on their next call.
		var usuario models.Usuario
		if err := db.Where("id = ?", claims.UserID).First(&usuario).Error; err != nil {
			log.Error().Err(err).Uint("user_id", claims.UserID).Msg("User not found")
			respondWithError(c, log, http.StatusUnauthorized, ErrUserNotFound, "User not found")
			return
		}

		// Refresh role and linked ids from the database row so a role
		// change takes effect without re-login.
		claims.Rol = string(auth.NormalizeRole(usuario.Rol))
		claims.Nombre = usuario.Nombre
		claims.ClienteID = usuario.ClienteID
		claims.EntrenadorID = usuario.EntrenadorID
		setSession(c, claims)

		c.Next()
	}
}

// RequireRoles allows only sessions whose role is in the given set.
func RequireRoles(log zerolog.Logger, allowed ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, exists := GetSessionClaims(c)
		if !exists {
			respondWithError(c, log, http.StatusUnauthorized, errors.New("no session"), "Unauthorized")
			return
		}

		for _, role := range allowed {
			if auth.RolesEqual(claims.Rol, string(role)) {
				c.Next()
				return
			}
		}

		respondWithError(c, log, http.StatusForbidden, errors.New("wrong role"), "Insufficient role")
	}
}

// requireOwnCliente allows admins through, and clients only when the :id
// route parameter matches their own cliente id.
func requireOwnCliente(c *gin.Context, log zerolog.Logger, id uint) bool {
	claims, exists := GetSessionClaims(c)
	if !exists {
		respondWithError(c, log, http.StatusUnauthorized, errors.New("no session"), "Unauthorized")
		return false
	}

	if auth.RolesEqual(claims.Rol, string(auth.RoleAdmin)) {
		return true
	}

	if auth.RolesEqual(claims.Rol, string(auth.RoleCliente)) && claims.ClienteID != nil && *claims.ClienteID == id {
		return true
	}

	respondWithError(c, log, http.StatusForbidden, errors.New("not the record owner"), "Insufficient role")
	return false
}
