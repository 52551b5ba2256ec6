package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) ExpiryStatuses(c *gin.Context) {
	statuses, err := s.expiry.Statuses(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": statuses})
}

type setExpiryRequest struct {
	Date string `json:"expiry_date" form:"expiry_date"`
}

func (s *Server) SetExpiry(c *gin.Context) {
	var req setExpiryRequest
	if err := c.ShouldBind(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	record, err := s.expiry.Set(c.Request.Context(), c.Param("item"), req.Date)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// SetExpiryBulk takes a flat {"item name": "2026-01-31", ...} body, matching
// the expiry form which posts every row at once.
func (s *Server) SetExpiryBulk(c *gin.Context) {
	var dates map[string]string
	if err := c.ShouldBindJSON(&dates); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	records, err := s.expiry.SetAll(c.Request.Context(), dates)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": records})
}
