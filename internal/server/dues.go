package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListPendingDues returns the student's unpaid invoices, each payable
// through the invoice_due checkout subject.
func (s *Server) ListPendingDues(c *gin.Context) {
	studentID, ok := studentFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	dues, err := s.invoiceSvc.PendingDues(c.Request.Context(), studentID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dues": dues})
}

func (s *Server) ListAmenities(c *gin.Context) {
	amenities, err := s.amenitySvc.ListActive(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"amenities": amenities})
}

func (s *Server) ListMyActivations(c *gin.Context) {
	studentID, ok := studentFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	activations, err := s.amenitySvc.ActivationsForStudent(c.Request.Context(), studentID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activations": activations})
}
