package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "docanalytics-backend/internal/auth"
	"docanalytics-backend/internal/documents"
	"docanalytics-backend/internal/shared/config"
	"docanalytics-backend/internal/shared/metrics"
	"docanalytics-backend/internal/shared/server/middleware"
	"docanalytics-backend/internal/shared/server/respond"
)

// RouterDeps carries everything the router needs; all wiring happens in
// bootstrap so there are no package-level singletons.
type RouterDeps struct {
	Config     config.Config
	Documents  *documents.Handler
	GoogleAuth *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	deps.GoogleAuth.RegisterRoutes(api)
	deps.Documents.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
