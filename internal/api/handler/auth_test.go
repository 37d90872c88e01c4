package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ljz/netops_go_server/config"
	"github.com/ljz/netops_go_server/internal/api/middleware"
	"github.com/ljz/netops_go_server/internal/pkg/response"
	"github.com/ljz/netops_go_server/internal/repository"
	"github.com/ljz/netops_go_server/internal/service"
	"github.com/ljz/netops_go_server/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testConfig = &config.Config{
	JWT: config.JWTConfig{
		Secret:      "test-secret-key",
		ExpireHours: 24,
	},
}

// setupEngine 用真实 service + 内存 sqlite 搭一个最小路由
func setupEngine(t *testing.T) (*gin.Engine, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	userRepo := repository.NewUserRepository(db)

	authHandler := NewAuthHandler(service.NewAuthService(userRepo, testConfig))
	userHandler := NewUserHandler(service.NewUserService(userRepo, testConfig))

	engine := gin.New()
	engine.POST("/api/v1/auth/register", authHandler.Register)
	engine.POST("/api/v1/auth/login", authHandler.Login)
	engine.GET("/api/v1/users/:id", userHandler.GetUser)

	authed := engine.Group("/api/v1/user")
	authed.Use(middleware.Auth(testConfig.JWT.Secret))
	{
		authed.GET("/profile", userHandler.GetProfile)
		authed.POST("/tokens/adjust", userHandler.AdjustTokens)
	}

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return engine, db, cleanup
}

func performRequest(r http.Handler, method, path string, body interface{}, headers ...map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	for _, h := range headers {
		for k, v := range h {
			req.Header.Set(k, v)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()

	var resp response.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp
}

func registerBody() map[string]string {
	return map[string]string{
		"username":        "ljz",
		"email":           "ljz@example.com",
		"phone":           "13800138000",
		"password":        "ljz2025..",
		"confirmPassword": "ljz2025..",
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	engine, _, cleanup := setupEngine(t)
	defer cleanup()

	w := performRequest(engine, http.MethodPost, "/api/v1/auth/register", registerBody())

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := parseResponse(t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, "注册成功！已赠送1000个免费Token", resp.Message)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "ljz", data["username"])
	assert.Equal(t, float64(1000), data["token_balance"])
	// 密码哈希绝不出现在响应里
	assert.NotContains(t, w.Body.String(), "password")
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	engine, _, cleanup := setupEngine(t)
	defer cleanup()

	body := registerBody()
	delete(body, "email")

	w := performRequest(engine, http.MethodPost, "/api/v1/auth/register", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := parseResponse(t, w)
	assert.False(t, resp.Success)
}

func TestAuthHandler_Register_PasswordMismatch(t *testing.T) {
	engine, _, cleanup := setupEngine(t)
	defer cleanup()

	body := registerBody()
	body["confirmPassword"] = "different"

	w := performRequest(engine, http.MethodPost, "/api/v1/auth/register", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, "两次输入的密码不一致", resp.Message)
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	engine, _, cleanup := setupEngine(t)
	defer cleanup()

	w := performRequest(engine, http.MethodPost, "/api/v1/auth/register", registerBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(engine, http.MethodPost, "/api/v1/auth/register", registerBody())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := parseResponse(t, w)
	assert.False(t, resp.Success)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	engine, _, cleanup := setupEngine(t)
	defer cleanup()

	w := performRequest(engine, http.MethodPost, "/api/v1/auth/register", registerBody())
	require.Equal(t, http.StatusCreated, w.Code)

	// 三种标识符形式都能登录
	for _, identifier := range []string{"ljz", "ljz@example.com", "13800138000"} {
		w = performRequest(engine, http.MethodPost, "/api/v1/auth/login", map[string]string{
			"username": identifier,
			"password": "ljz2025..",
		})

		assert.Equal(t, http.StatusOK, w.Code, "identifier %q", identifier)
		resp := parseResponse(t, w)
		assert.True(t, resp.Success)

		data := resp.Data.(map[string]interface{})
		assert.NotEmpty(t, data["token"])
		user := data["user"].(map[string]interface{})
		assert.Equal(t, "ljz", user["username"])
	}
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	engine, _, cleanup := setupEngine(t)
	defer cleanup()

	w := performRequest(engine, http.MethodPost, "/api/v1/auth/register", registerBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(engine, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": "ljz",
		"password": "wrongpassword",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, "用户名或密码错误", resp.Message)
}

func TestAuthHandler_Login_UnknownUser(t *testing.T) {
	engine, _, cleanup := setupEngine(t)
	defer cleanup()

	w := performRequest(engine, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": "nobody",
		"password": "password123",
	})

	// 和密码错误同一个响应，不区分用户是否存在
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, "用户名或密码错误", resp.Message)
}
