package webserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/talkincode/gocrm/config"
	"go.uber.org/zap"
)

// WebServer hosts the GraphQL endpoint over HTTP.
type WebServer struct {
	root      *echo.Echo
	appConfig *config.AppConfig
}

func NewWebServer(cfg *config.AppConfig, schema graphql.Schema) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	gql := handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: cfg.System.Debug,
	})
	e.Any("/graphql", echo.WrapHandler(gql))
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return &WebServer{root: e, appConfig: cfg}
}

func (s *WebServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.appConfig.Web.Host, s.appConfig.Web.Port)
	zap.S().Infof("Starting GraphQL server on http://%s/graphql", addr)
	err := s.root.Start(addr)
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *WebServer) Shutdown(ctx context.Context) error {
	return s.root.Shutdown(ctx)
}

// ServeHTTP exposes the router directly for embedding and tests.
func (s *WebServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.root.ServeHTTP(w, r)
}
