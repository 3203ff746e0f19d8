// README: Tracking handlers.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trackmap/internal/geo"
	"trackmap/internal/tracker"
)

type inputsRequest struct {
	Start     geo.Point `json:"start" binding:"required"`
	End       geo.Point `json:"end" binding:"required"`
	Vehicle   geo.Point `json:"vehicle" binding:"required"`
	IsRouting bool      `json:"is_routing"`
}

type vehicleRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (s *Server) handleView(c *gin.Context) {
	v, ok := s.tracker.Latest()
	if !ok {
		writeError(c, http.StatusNotFound, "no tracking view published yet")
		return
	}
	writeJSON(c, http.StatusOK, v)
}

func (s *Server) handleSnapshot(c *gin.Context) {
	v, ok := s.tracker.Latest()
	if !ok {
		writeError(c, http.StatusNotFound, "no tracking view published yet")
		return
	}
	writeJSON(c, http.StatusOK, v.Snapshot)
}

// handleUpdateInputs replaces the whole input set; the tracker restarts its
// refresh loop immediately with the new values.
func (s *Server) handleUpdateInputs(c *gin.Context) {
	var req inputsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	s.tracker.Update(tracker.Inputs{
		Start:     req.Start,
		End:       req.End,
		Vehicle:   req.Vehicle,
		IsRouting: req.IsRouting,
	})
	writeJSON(c, http.StatusOK, map[string]any{"status": "ok"})
}

// handleUpdateVehicle is the high-frequency path: only the vehicle position
// changes, the rest of the inputs carry over.
func (s *Server) handleUpdateVehicle(c *gin.Context) {
	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	s.tracker.SetVehicle(geo.Point{Lat: req.Lat, Lng: req.Lng})
	writeJSON(c, http.StatusOK, map[string]any{"status": "ok"})
}
