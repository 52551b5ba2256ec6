package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	inventorydomain "github.com/dukastack/dukani/internal/inventory/domain"
)

type sellRequest struct {
	Quantity string `json:"quantity" form:"quantity"`
}

func (s *Server) SellItem(c *gin.Context) {
	var req sellRequest
	if err := c.ShouldBind(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.inventory.Sell(c.Request.Context(), inventorydomain.SellRequest{
		ItemID:   c.Param("id"),
		Quantity: req.Quantity,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) SalesToday(c *gin.Context) {
	lines, total, err := s.report.SalesOn(c.Request.Context(), c.Query("date"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"sales": lines,
		"total": total,
	})
}
