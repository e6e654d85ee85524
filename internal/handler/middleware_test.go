package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/car-registry/backend/internal/config"
	"github.com/car-registry/backend/internal/model"
	"github.com/car-registry/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCredentialLoader struct {
	users map[string]*model.User
}

func (f *fakeCredentialLoader) GetUserByEmail(ctx context.Context, email string) (*model.User, bool, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, false, nil
	}
	return user, true, nil
}

func newIdentityRouter(t *testing.T) (*gin.Engine, *service.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := service.NewTokenService(config.AuthConfig{
		JWTSecret:  "test-secret",
		TokenTTLMS: "60000",
	})
	require.NoError(t, err)

	loader := &fakeCredentialLoader{users: map[string]*model.User{
		"vendor@example.com": {ID: 1, Email: "vendor@example.com", Role: model.RoleVendor},
		"client@example.com": {ID: 2, Email: "client@example.com", Role: model.RoleClient},
	}}

	router := gin.New()
	router.Use(Identity(tokens, loader))
	router.GET("/open", func(c *gin.Context) {
		user := GetAuthUser(c)
		if user == nil {
			c.JSON(http.StatusOK, gin.H{"who": "anonymous"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"who": user.Email})
	})
	router.GET("/vendor-only", RequireRole(model.RoleVendor), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router, tokens
}

func doGet(router *gin.Engine, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdentityEstablishesUser(t *testing.T) {
	router, tokens := newIdentityRouter(t)

	token, err := tokens.Issue("vendor@example.com")
	require.NoError(t, err)

	w := doGet(router, "/open", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "vendor@example.com")
}

func TestIdentityPassesThroughWithoutToken(t *testing.T) {
	router, _ := newIdentityRouter(t)

	w := doGet(router, "/open", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "anonymous")
}

func TestIdentityNeverAbortsOnGarbage(t *testing.T) {
	router, _ := newIdentityRouter(t)

	for _, bearer := range []string{"garbage", "a.b.c", "   "} {
		w := doGet(router, "/open", bearer)
		assert.Equal(t, http.StatusOK, w.Code, "bearer %q must degrade to anonymous", bearer)
		assert.Contains(t, w.Body.String(), "anonymous")
	}
}

func TestIdentityUnknownSubjectStaysAnonymous(t *testing.T) {
	router, tokens := newIdentityRouter(t)

	token, err := tokens.Issue("ghost@example.com")
	require.NoError(t, err)

	w := doGet(router, "/open", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "anonymous")
}

func TestIdentityTamperedTokenStaysAnonymous(t *testing.T) {
	router, tokens := newIdentityRouter(t)

	token, err := tokens.Issue("vendor@example.com")
	require.NoError(t, err)
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]

	w := doGet(router, "/open", tampered)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "anonymous")
}

func TestRequireRole(t *testing.T) {
	router, tokens := newIdentityRouter(t)

	// No identity: 401.
	w := doGet(router, "/vendor-only", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Wrong role: 403.
	clientToken, err := tokens.Issue("client@example.com")
	require.NoError(t, err)
	w = doGet(router, "/vendor-only", clientToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Matching role: 200.
	vendorToken, err := tokens.Issue("vendor@example.com")
	require.NoError(t, err)
	w = doGet(router, "/vendor-only", vendorToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	// An inbound id is propagated, not replaced.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "fixed-id", w.Header().Get("X-Request-ID"))
}
