package server

import (
	"net/http"
	"strings"

	"github.com/Sabyy027/hostel-core/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

// ListReconciliationFlags pages unresolved payments needing operator
// follow-up: captured but unconfirmed, duplicates, and expired claims.
func (s *Server) ListReconciliationFlags(c *gin.Context) {
	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var before *pagination.Cursor
	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
		before = cursor
	}

	flags, info, err := s.checkoutSvc.OpenFlags(c.Request.Context(), before, page.PageSize)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"flags": flags, "page_info": info})
}

type createAmenityRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Currency    string `json:"currency"`
}

func (s *Server) CreateAmenity(c *gin.Context) {
	var req createAmenityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if strings.TrimSpace(req.Name) == "" || req.Price <= 0 {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.Currency == "" {
		req.Currency = "INR"
	}

	amenity, err := s.amenitySvc.Create(c.Request.Context(), req.Name, req.Description, req.Price, req.Currency)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, amenity)
}

type attachDiscountRequest struct {
	DiscountID *string `json:"discount_id"`
}

// AttachRoomDiscount replaces the room's discount. A null discount_id
// detaches.
func (s *Server) AttachRoomDiscount(c *gin.Context) {
	roomID, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var req attachDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var discountID *snowflake.ID
	if req.DiscountID != nil {
		id, err := snowflake.ParseString(*req.DiscountID)
		if err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
		discountID = &id
	}

	if err := s.catalogSvc.AttachDiscount(c.Request.Context(), roomID, discountID); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
