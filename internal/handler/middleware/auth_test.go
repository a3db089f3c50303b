//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"slotgate/internal/handler/middleware"
	"slotgate/internal/pkg/jwt"
)

type AuthMiddlewareTestSuite struct {
	suite.Suite
	jwtService *jwt.Service
	router     *gin.Engine
}

func (s *AuthMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.jwtService = jwt.NewService("test-secret-key")

	auth := middleware.NewAuthMiddleware(s.jwtService)
	s.router = gin.New()
	s.router.GET("/admin/ping", auth.RequireAdmin(), func(c *gin.Context) {
		userID, ok := middleware.GetUserID(c)
		s.True(ok)
		c.JSON(http.StatusOK, gin.H{"user_id": userID.String()})
	})
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

func (s *AuthMiddlewareTestSuite) request(authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *AuthMiddlewareTestSuite) TestRequireAdmin() {
	s.Run("管理者トークンで通過しユーザーIDが設定される", func() {
		userID := uuid.New()
		token, err := s.jwtService.GenerateToken(userID, jwt.RoleAdmin, time.Hour)
		s.Require().NoError(err)

		w := s.request("Bearer " + token)
		s.Equal(http.StatusOK, w.Code)
		s.Contains(w.Body.String(), userID.String())
	})

	s.Run("ヘッダなしは401", func() {
		w := s.request("")
		s.Equal(http.StatusUnauthorized, w.Code)
		s.Contains(w.Body.String(), "Access token required")
	})

	s.Run("Bearer以外のスキームは401", func() {
		w := s.request("Basic dXNlcjpwYXNz")
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("改ざんされたトークンは401", func() {
		token, err := s.jwtService.GenerateToken(uuid.New(), jwt.RoleAdmin, time.Hour)
		s.Require().NoError(err)

		w := s.request("Bearer " + token + "x")
		s.Equal(http.StatusUnauthorized, w.Code)
		s.Contains(w.Body.String(), "Invalid or expired token")
	})

	s.Run("期限切れトークンは401", func() {
		token, err := s.jwtService.GenerateToken(uuid.New(), jwt.RoleAdmin, -time.Minute)
		s.Require().NoError(err)

		w := s.request("Bearer " + token)
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("別の鍵で署名されたトークンは401", func() {
		other := jwt.NewService("another-secret")
		token, err := other.GenerateToken(uuid.New(), jwt.RoleAdmin, time.Hour)
		s.Require().NoError(err)

		w := s.request("Bearer " + token)
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("一般ユーザーのトークンは403", func() {
		token, err := s.jwtService.GenerateToken(uuid.New(), "viewer", time.Hour)
		s.Require().NoError(err)

		w := s.request("Bearer " + token)
		s.Equal(http.StatusForbidden, w.Code)
		s.Contains(w.Body.String(), "Insufficient permissions")
	})
}
