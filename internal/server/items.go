package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	inventorydomain "github.com/dukastack/dukani/internal/inventory/domain"
)

type itemRequest struct {
	Name        string `json:"item" form:"item"`
	Description string `json:"description" form:"description"`
	UnitPrice   string `json:"price_per_pc_or_kg" form:"price_per_pc_or_kg"`
	Quantity    string `json:"total_quantity_available" form:"total_quantity_available"`
}

func (s *Server) ListItems(c *gin.Context) {
	items, err := s.inventory.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) SearchItems(c *gin.Context) {
	items, err := s.inventory.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) SuggestItems(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	suggestions, err := s.inventory.Suggest(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": suggestions})
}

func (s *Server) ItemsAddedOn(c *gin.Context) {
	items, err := s.inventory.AddedOn(c.Request.Context(), c.Query("date"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) AddItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBind(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.inventory.Add(c.Request.Context(), inventorydomain.AddRequest{
		Name:        req.Name,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
		Quantity:    req.Quantity,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (s *Server) UpdateItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBind(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.inventory.Update(c.Request.Context(), inventorydomain.UpdateRequest{
		ID:          c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
		Quantity:    req.Quantity,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) DeleteItem(c *gin.Context) {
	if err := s.inventory.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

type changePriceRequest struct {
	UnitPrice string `json:"price_per_pc_or_kg" form:"price_per_pc_or_kg"`
}

func (s *Server) ChangePrice(c *gin.Context) {
	var req changePriceRequest
	if err := c.ShouldBind(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.inventory.ChangePrice(c.Request.Context(), c.Param("id"), req.UnitPrice); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}
