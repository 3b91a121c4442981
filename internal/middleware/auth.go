package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"zapshift/internal/auth"
	"zapshift/internal/domain"
	"zapshift/internal/repository"
)

const principalKey = "principalEmail"

// PrincipalEmail returns the verified caller email attached by RequireAuth,
// or "" if the request is unauthenticated.
func PrincipalEmail(c *gin.Context) string {
	v, ok := c.Get(principalKey)
	if !ok {
		return ""
	}
	email, _ := v.(string)
	return email
}

// RequireAuth extracts the bearer credential, verifies it against the
// identity provider and attaches the verified caller email to the request
// context. Pure gating: no mutation.
func RequireAuth(verifier auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "malformed authorization header"})
			return
		}

		email, err := verifier.Verify(c.Request.Context(), parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		c.Set(principalKey, email)
		c.Next()
	}
}

// RequireCapability looks up the verified caller's user record and rejects
// the request unless the caller's role grants the capability. Must run
// after RequireAuth.
func RequireCapability(users repository.UserRepository, cap domain.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := PrincipalEmail(c)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
			return
		}

		user, err := users.GetByEmail(c.Request.Context(), email)
		if err != nil || !user.Role.Can(cap) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Next()
	}
}
