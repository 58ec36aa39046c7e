package middleware

import (
	"context"
	"eventhub_backend/internal/util"
	"eventhub_backend/pkg/logger"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RevocationChecker reports whether a token id was revoked by logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

func tokenFromRequest(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return c.Query("token")
}

// authenticate parses and checks the request token. It returns nil claims and
// no error when there is no usable token.
func authenticate(c *gin.Context, secret string, checker RevocationChecker) (*util.Claims, error) {
	tokenString := tokenFromRequest(c)
	if tokenString == "" {
		return nil, nil
	}

	claims, err := util.ParseJWT(tokenString, secret)
	if err != nil {
		logger.Log.Debug("JWT rejected", zap.Error(err))
		return nil, nil
	}

	if checker != nil {
		revoked, err := checker.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, nil
		}
	}

	c.Set(util.ContextUserKey, claims)
	c.Set(util.ContextTokenKey, tokenString)
	return claims, nil
}

// AuthMiddleware rejects requests without a valid, unrevoked token.
func AuthMiddleware(secret string, checker RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := authenticate(c, secret, checker)
		if err != nil {
			logger.Log.Error("Token revocation check failed", zap.Error(err))
			util.HandleError(c, util.ErrUnavailable)
			c.Abort()
			return
		}
		if claims == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// TryAuthMiddleware attaches the caller's claims when a valid token is sent
// and lets anonymous requests through.
func TryAuthMiddleware(secret string, checker RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := authenticate(c, secret, checker); err != nil {
			logger.Log.Warn("Token revocation check failed", zap.Error(err))
		}
		c.Next()
	}
}

// HostOnly admits host accounts. It must run after AuthMiddleware.
func HostOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		if !user.IsHost() {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
