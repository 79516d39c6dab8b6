package v1_test

import (
	"context"
	"net/http"
	"os"
	"path/filepath"

	"github.com/KirkDiggler/age-toolbox/internal/errors"
	v1 "github.com/KirkDiggler/age-toolbox/internal/handlers/api/v1"
)

func (s *HandlerTestSuite) TestStaticFallback() {
	dir := s.T().TempDir()
	s.Require().NoError(os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o600))
	s.Require().NoError(os.MkdirAll(filepath.Join(dir, "assets"), 0o750))
	s.Require().NoError(os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log(1)"), 0o600))
	s.router = s.newRouter(dir)

	s.Run("serves existing files", func() {
		rec := s.do(http.MethodGet, "/assets/app.js", nil)
		s.Equal(http.StatusOK, rec.Code)
		s.Equal("console.log(1)", rec.Body.String())
	})

	s.Run("client routes fall back to index", func() {
		rec := s.do(http.MethodGet, "/stunts/library", nil)
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "app")
	})

	s.Run("path traversal stays inside the static dir", func() {
		rec := s.do(http.MethodGet, "/../../etc/passwd", nil)
		s.NotContains(rec.Body.String(), "root:")
	})

	s.Run("api paths never fall back", func() {
		rec := s.do(http.MethodGet, "/api/missing", nil)
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("non-GET requests are not found", func() {
		rec := s.do(http.MethodPost, "/stunts/library", nil)
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *HandlerTestSuite) TestHealthCheckFailure() {
	diceHandler, err := v1.NewDiceHandler(&v1.DiceHandlerConfig{DiceService: s.mockDice})
	s.Require().NoError(err)
	stuntHandler, err := v1.NewStuntHandler(&v1.StuntHandlerConfig{StuntService: s.mockStunt})
	s.Require().NoError(err)

	s.router, err = v1.NewRouter(&v1.RouterConfig{
		DiceHandler:  diceHandler,
		StuntHandler: stuntHandler,
		HealthCheck: func(context.Context) error {
			return errors.Unavailable("redis unreachable")
		},
	})
	s.Require().NoError(err)

	rec := s.do(http.MethodGet, "/api/health", nil)
	s.Equal(http.StatusServiceUnavailable, rec.Code)
	s.JSONEq(`{"status":"unavailable"}`, rec.Body.String())
	s.NotContains(rec.Body.String(), "redis unreachable")
}
