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
)

const testSecret = "test-secret"

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.GET("/protected", AuthMiddleware(testSecret), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	r.GET("/optional", OptionalAuthMiddleware(testSecret), func(c *gin.Context) {
		_, authed := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"authed": authed})
	})
	return r
}

func doRequest(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestAuthMiddleware_MissingToken 无 Token 一律 401，处理函数不会执行
func TestAuthMiddleware_MissingToken(t *testing.T) {
	r := newTestRouter()

	w := doRequest(r, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestAuthMiddleware_MalformedHeader 非 Bearer 格式拒绝
func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	r := newTestRouter()

	for _, header := range []string{"Basic abc", "Bearer", "just-a-token"} {
		w := doRequest(r, "/protected", header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

// TestAuthMiddleware_InvalidToken 签名不对或过期都拒绝
func TestAuthMiddleware_InvalidToken(t *testing.T) {
	r := newTestRouter()

	// 用别的密钥签的 Token
	token, err := GenerateToken("other-secret", uuid.New(), time.Hour)
	require.NoError(t, err)
	w := doRequest(r, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 已过期的 Token
	expired, err := GenerateToken(testSecret, uuid.New(), -time.Minute)
	require.NoError(t, err)
	w = doRequest(r, "/protected", "Bearer "+expired)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestAuthMiddleware_ValidToken 合法 Token 放行并注入 userID
func TestAuthMiddleware_ValidToken(t *testing.T) {
	r := newTestRouter()

	userID := uuid.New()
	token, err := GenerateToken(testSecret, userID, time.Hour)
	require.NoError(t, err)

	w := doRequest(r, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
}

// TestOptionalAuthMiddleware 匿名放行，带合法 Token 时注入身份
func TestOptionalAuthMiddleware(t *testing.T) {
	r := newTestRouter()

	w := doRequest(r, "/optional", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authed":false`)

	token, err := GenerateToken(testSecret, uuid.New(), time.Hour)
	require.NoError(t, err)
	w = doRequest(r, "/optional", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authed":true`)

	// 无效 Token 不报错，按匿名处理
	w = doRequest(r, "/optional", "Bearer garbage")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authed":false`)
}

// TestValidateToken_RoundTrip 签发后能解回同一个 userID
func TestValidateToken_RoundTrip(t *testing.T) {
	userID := uuid.New()
	token, err := GenerateToken(testSecret, userID, time.Hour)
	require.NoError(t, err)

	parsed, err := ValidateToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}
