package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osis/backend/internal/infrastructure/auth"
	"github.com/osis/backend/internal/infrastructure/config"
)

func newTestJWTService() *auth.JWTService {
	cfg := config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
		MaxRefreshCount:        10,
	}
	return auth.NewJWTService(cfg)
}

func newTestTokenPair(jwtService *auth.JWTService) (*auth.TokenPair, auth.GenerateTokenInput) {
	input := auth.GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "promoter-1",
		Roles:    []string{auth.RolePromoter},
	}
	pair, _ := jwtService.GenerateTokenPair(input)
	return pair, input
}

func newGuardedRouter(mw gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(mw)
	router.GET("/api/v1/trajectories", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func serveGuarded(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/api/v1/trajectories", nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthMiddleware(t *testing.T) {
	jwtService := newTestJWTService()

	t.Run("valid token exposes the claims", func(t *testing.T) {
		pair, input := newTestTokenPair(jwtService)

		router := gin.New()
		router.Use(JWTAuthMiddleware(jwtService))
		router.GET("/api/v1/trajectories", func(c *gin.Context) {
			claims := GetJWTClaims(c)
			require.NotNil(t, claims)
			assert.Equal(t, input.UserID.String(), claims.UserID)
			assert.Equal(t, input.UserID.String(), GetJWTUserID(c))
			assert.Equal(t, "promoter-1", GetJWTUsername(c))
			assert.Equal(t, []string{auth.RolePromoter}, GetJWTRoles(c))
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		rec := serveGuarded(router, "Bearer "+pair.AccessToken)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("malformed credentials are rejected", func(t *testing.T) {
		router := newGuardedRouter(JWTAuthMiddleware(jwtService))

		for name, header := range map[string]string{
			"missing header": "",
			"wrong scheme":   "Basic dXNlcjpwYXNz",
			"empty token":    "Bearer ",
			"garbage token":  "Bearer not-a-jwt",
		} {
			rec := serveGuarded(router, header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
		}
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		expiredService := auth.NewJWTService(config.JWTConfig{
			Secret:                 "test-secret-key-at-least-32-chars",
			AccessTokenExpiration:  -time.Hour,
			RefreshTokenExpiration: 7 * 24 * time.Hour,
			Issuer:                 "test-issuer",
		})
		pair, _ := newTestTokenPair(expiredService)

		router := newGuardedRouter(JWTAuthMiddleware(expiredService))
		rec := serveGuarded(router, "Bearer "+pair.AccessToken)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "TOKEN_EXPIRED")
	})

	t.Run("refresh token cannot stand in for an access token", func(t *testing.T) {
		pair, _ := newTestTokenPair(jwtService)

		router := newGuardedRouter(JWTAuthMiddleware(jwtService))
		rec := serveGuarded(router, "Bearer "+pair.RefreshToken)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("skip paths and prefixes bypass authentication", func(t *testing.T) {
		cfg := DefaultJWTConfig(jwtService)
		cfg.SkipPaths = append(cfg.SkipPaths, "/public")

		router := gin.New()
		router.Use(JWTAuthMiddlewareWithConfig(cfg))
		for _, path := range []string{"/health", "/healthz", "/ready", "/api/v1/health",
			"/api/v1/system/ping", "/public"} {
			router.GET(path, func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"status": "ok"})
			})
		}

		for _, path := range []string{"/health", "/healthz", "/ready", "/api/v1/health",
			"/api/v1/system/ping", "/public"} {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
			assert.Equal(t, http.StatusOK, rec.Code, "path %s should skip auth", path)
		}
	})

	t.Run("custom error handler takes over", func(t *testing.T) {
		called := false
		cfg := DefaultJWTConfig(jwtService)
		cfg.OnError = func(c *gin.Context, err error) {
			called = true
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"custom": "error"})
		}

		router := newGuardedRouter(JWTAuthMiddlewareWithConfig(cfg))
		rec := serveGuarded(router, "")

		assert.True(t, called)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestJWTAuthMiddlewareBlacklist(t *testing.T) {
	jwtService := newTestJWTService()

	newRouter := func(blacklist auth.TokenBlacklist) *gin.Engine {
		cfg := DefaultJWTConfig(jwtService)
		cfg.TokenBlacklist = blacklist
		return newGuardedRouter(JWTAuthMiddlewareWithConfig(cfg))
	}

	t.Run("revoked token is rejected", func(t *testing.T) {
		blacklist := auth.NewInMemoryTokenBlacklist()
		pair, _ := newTestTokenPair(jwtService)

		claims, err := jwtService.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		require.NoError(t, blacklist.AddToBlacklist(t.Context(), claims.ID, time.Hour))

		rec := serveGuarded(newRouter(blacklist), "Bearer "+pair.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "TOKEN_REVOKED")
	})

	t.Run("force logout invalidates earlier tokens", func(t *testing.T) {
		blacklist := auth.NewInMemoryTokenBlacklist()
		pair, input := newTestTokenPair(jwtService)

		time.Sleep(1100 * time.Millisecond) // JWT iat has second precision
		require.NoError(t, blacklist.AddUserTokensToBlacklist(t.Context(), input.UserID.String(), time.Hour))

		rec := serveGuarded(newRouter(blacklist), "Bearer "+pair.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("untainted token passes", func(t *testing.T) {
		blacklist := auth.NewInMemoryTokenBlacklist()
		pair, _ := newTestTokenPair(jwtService)

		rec := serveGuarded(newRouter(blacklist), "Bearer "+pair.AccessToken)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestClaimsAccessorsWithoutClaims(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Nil(t, GetJWTClaims(c))
	assert.Empty(t, GetJWTUserID(c))
	assert.Empty(t, GetJWTUsername(c))
	assert.Nil(t, GetJWTRoles(c))
	assert.Panics(t, func() { MustGetJWTClaims(c) })
}

func TestOptionalJWTAuthMiddleware(t *testing.T) {
	jwtService := newTestJWTService()

	var captured *auth.Claims
	router := gin.New()
	router.Use(OptionalJWTAuthMiddleware(jwtService))
	router.GET("/api/v1/trajectories", func(c *gin.Context) {
		captured = GetJWTClaims(c)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	t.Run("no token still passes, without claims", func(t *testing.T) {
		captured = nil
		rec := serveGuarded(router, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, captured)
	})

	t.Run("valid token attaches claims", func(t *testing.T) {
		captured = nil
		pair, input := newTestTokenPair(jwtService)
		rec := serveGuarded(router, "Bearer "+pair.AccessToken)
		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, captured)
		assert.Equal(t, input.UserID.String(), captured.UserID)
	})

	t.Run("invalid token is ignored", func(t *testing.T) {
		captured = nil
		rec := serveGuarded(router, "Bearer not-a-jwt")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, captured)
	})
}

func TestRequireRoles(t *testing.T) {
	jwtService := newTestJWTService()
	pair, _ := newTestTokenPair(jwtService) // carries the promoter role

	router := gin.New()
	router.Use(JWTAuthMiddleware(jwtService))
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) }
	router.GET("/promoter", RequireRoles(auth.RolePromoter), ok)
	router.GET("/manager", RequireRoles(auth.RoleManager), ok)
	router.GET("/either", RequireRoles(auth.RoleManager, auth.RolePromoter), ok)

	serve := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", path, nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("role present", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve("/promoter").Code)
	})

	t.Run("role missing", func(t *testing.T) {
		rec := serve("/manager")
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "FORBIDDEN")
	})

	t.Run("any of several roles", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve("/either").Code)
	})

	t.Run("no claims at all", func(t *testing.T) {
		bare := gin.New()
		bare.GET("/guarded", RequireRoles(auth.RoleManager), ok)
		rec := httptest.NewRecorder()
		bare.ServeHTTP(rec, httptest.NewRequest("GET", "/guarded", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
