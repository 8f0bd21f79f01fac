package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func claimsWithScope(scope string) *validator.ValidatedClaims {
	return &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{
			Issuer:  "https://test.auth0.local/",
			Subject: "auth0|scope-user",
		},
		CustomClaims: &CustomClaims{Scope: scope},
	}
}

func TestHasScope(t *testing.T) {
	claims := CustomClaims{Scope: "read:inventory write:inventory"}

	assert.True(t, claims.HasScope("read:inventory"))
	assert.True(t, claims.HasScope("write:inventory"))
	assert.False(t, claims.HasScope("delete:inventory"))
	assert.False(t, CustomClaims{}.HasScope("read:inventory"))
}

func TestRequireScope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(claims *validator.ValidatedClaims) *gin.Engine {
		router := gin.New()
		router.Use(func(c *gin.Context) {
			if claims != nil {
				c.Set("validated_claims", claims)
			}
			c.Next()
		})
		router.GET("/guarded", RequireScope("read:inventory"), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true})
		})
		return router
	}

	t.Run("allows matching scope", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/guarded", nil)
		newRouter(claimsWithScope("read:inventory openid")).ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects missing scope", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/guarded", nil)
		newRouter(claimsWithScope("openid")).ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "INSUFFICIENT_SCOPE")
	})

	t.Run("rejects missing claims", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/guarded", nil)
		newRouter(nil).ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "MISSING_CLAIMS")
	})
}

func TestContextExtractors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("user id round trip", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set("user_id", "auth0|abc123")

		userID, err := GetUserID(c)
		assert.NoError(t, err)
		assert.Equal(t, "auth0|abc123", userID)
	})

	t.Run("missing user id", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())

		_, err := GetUserID(c)
		assert.Error(t, err)

		var authErr *AuthError
		assert.ErrorAs(t, err, &authErr)
		assert.Equal(t, "MISSING_USER_ID", authErr.Code)
	})

	t.Run("access token round trip", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set("access_token", "raw-token")

		token, err := GetAccessToken(c)
		assert.NoError(t, err)
		assert.Equal(t, "raw-token", token)
	})

	t.Run("claims round trip", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set("validated_claims", claimsWithScope("openid"))

		claims, err := GetClaims(c)
		assert.NoError(t, err)
		assert.Equal(t, "auth0|scope-user", claims.RegisteredClaims.Subject)
	})
}
