// README: API surface; exposes tracking views to the presentation layer and
// accepts input updates.
package httpapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"trackmap/internal/geo"
	"trackmap/internal/tracker"
)

// TrackerService is what the API needs from the refresh orchestrator.
type TrackerService interface {
	Latest() (tracker.View, bool)
	Update(tracker.Inputs)
	SetVehicle(geo.Point)
}

type Server struct {
	tracker TrackerService
}

func NewServer(t TrackerService) *Server {
	return &Server{tracker: t}
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(Logging())
	// Browser map frontends live on other origins.
	r.Use(cors.Default())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api/tracking")
	api.GET("/view", s.handleView)
	api.GET("/snapshot", s.handleSnapshot)
	api.PUT("/inputs", s.handleUpdateInputs)
	api.PUT("/vehicle", s.handleUpdateVehicle)

	return r
}
