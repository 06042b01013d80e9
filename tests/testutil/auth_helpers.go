package testutil

import (
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"

	"github.com/dekii2275/oilandenegry-website-sub000/middleware"
)

// MockValidatedClaims creates a mock ValidatedClaims for testing
func MockValidatedClaims(subject, issuer, role string, scopes []string) *validator.ValidatedClaims {
	scopeString := ""
	for i, scope := range scopes {
		if i > 0 {
			scopeString += " "
		}
		scopeString += scope
	}

	return &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{
			Issuer:  issuer,
			Subject: subject,
		},
		CustomClaims: &middleware.CustomClaims{
			Scope: scopeString,
			Role:  role,
		},
	}
}

// SetMockAuthContext sets up a mock authenticated context for testing
func SetMockAuthContext(c *gin.Context, userID, issuer, role string, scopes []string) {
	claims := MockValidatedClaims(userID, issuer, role, scopes)
	c.Set("user_id", userID)
	c.Set("access_token", "mock-token")
	c.Set("validated_claims", claims)
}

// MockAuthMiddleware returns a middleware that installs a mock identity the
// way EnsureValidToken does, so protected routes can be exercised without
// a JWKS round-trip.
func MockAuthMiddleware(auth0ID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		SetMockAuthContext(c, auth0ID, "https://test.auth0.com/", role, nil)
		c.Next()
	}
}

// CreateTestContext creates a test Gin context
func CreateTestContext() (*gin.Context, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	c, engine := gin.CreateTestContext(nil)
	return c, engine
}
