package middleware

import (
	"net/http"
	"strings"

	"github.com/sportxbet/tipstore/internal/domain/entity"
	domainerr "github.com/sportxbet/tipstore/internal/domain/error"
	"github.com/sportxbet/tipstore/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// identityKey is the gin context key the caller identity is stored under
const identityKey = "identity"

// TokenParser turns a session token into a caller identity
type TokenParser interface {
	ParseToken(token string) (entity.Identity, error)
}

// Auth resolves the Authorization header into a caller identity. Requests
// without a token proceed as anonymous; the use cases decide per operation
// whether anonymous is acceptable. A present but invalid token is rejected
// outright so callers learn their session died.
func Auth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Set(identityKey, entity.Identity{})
			c.Next()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == header || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrUnauthorized),
				Message: "Malformed Authorization header",
			})
			return
		}

		identity, err := parser.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrUnauthorized),
				Message: "Invalid or expired session",
			})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// IdentityFrom extracts the caller identity set by Auth. Anonymous when the
// middleware never ran.
func IdentityFrom(c *gin.Context) entity.Identity {
	if v, ok := c.Get(identityKey); ok {
		if identity, ok := v.(entity.Identity); ok {
			return identity
		}
	}
	return entity.Identity{}
}
