package server

import (
	"net/http"

	catalogdomain "github.com/Sabyy027/hostel-core/internal/catalog/domain"
	"github.com/gin-gonic/gin"
)

// ListBookableRooms serves the student-facing catalog. Filters come from
// the query string; the flow's saved preferences are applied when no
// explicit filter is given.
func (s *Server) ListBookableRooms(c *gin.Context) {
	studentID, ok := studentFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var prefs catalogdomain.Preferences
	if err := c.ShouldBindQuery(&prefs); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if prefs.ACType == "" && prefs.Sharing == 0 {
		flow, err := s.flows.Get(c.Request.Context(), studentID)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		prefs = flow.Preferences
	}

	views, err := s.catalogSvc.ListBookableRooms(c.Request.Context(), prefs)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rooms": views})
}
