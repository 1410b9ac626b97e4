package api

import (
	"net/http"
	"strings"

	"github.com/Domenick1991/airport/internal/auth"
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/logger"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

type TokenValidator interface {
	ValidateToken(token string) (*auth.UserClaims, error)
}

// IdentityMiddleware resolves the bearer token into a domain.Identity.
// Requests without an Authorization header continue as anonymous; a
// present but invalid token is rejected before any handler runs.
func IdentityMiddleware(tokens TokenValidator, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Set(identityKey, domain.Identity{})
			c.Next()
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			log.LogSecurity("malformed_authorization", 0, c.ClientIP(), logger.Fields{"path": c.Request.URL.Path})
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Detail: "invalid authorization header format"})
			return
		}

		claims, err := tokens.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			log.LogSecurity("invalid_token", 0, c.ClientIP(), logger.Fields{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Detail: "invalid token"})
			return
		}

		c.Set(identityKey, claims.Identity())
		c.Next()
	}
}

func identityFrom(c *gin.Context) domain.Identity {
	if v, ok := c.Get(identityKey); ok {
		if identity, ok := v.(domain.Identity); ok {
			return identity
		}
	}
	return domain.Identity{}
}
