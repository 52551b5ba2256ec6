package server

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	dbpkg "github.com/dukastack/dukani/pkg/db"
)

func (s *Server) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := s.report.Dashboard(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	recent, err := s.activity.Recent(ctx, 10)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	series, err := s.report.SalesByDay(ctx, 7)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":            stats,
		"recent_activity":  recent,
		"sales_last_7days": series,
	})
}

func (s *Server) Statistics(c *gin.Context) {
	ctx := c.Request.Context()

	activities, err := s.activity.Recent(ctx, 200)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	counts, err := s.activity.CountsByAction(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	series, err := s.report.SalesByDay(ctx, 14)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	topSellers, err := s.report.TopSellers(ctx, 10)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activities":    activities,
		"action_counts": counts,
		"sales_by_day":  series,
		"top_sellers":   topSellers,
	})
}

func (s *Server) Substitutes(c *gin.Context) {
	groups, err := s.report.Substitutes(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"substitutes": groups})
}

func (s *Server) PriceVariations(c *gin.Context) {
	history, err := s.inventory.PriceHistory(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": history})
}

func (s *Server) DeletePriceVariation(c *gin.Context) {
	if err := s.inventory.DeleteVariation(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (s *Server) ExportPriceVariationsCSV(c *gin.Context) {
	rows, err := s.inventory.PriceHistoryRows(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="price_variation_report.csv"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"ITEM", "DESCRIPTION", "OLD PRICE", "NEW PRICE", "CHANGE DATE"})
	for _, row := range rows {
		_ = w.Write([]string{
			row.Item,
			row.Description,
			fmt.Sprintf("%.2f", row.OldPrice),
			fmt.Sprintf("%.2f", row.NewPrice),
			row.ChangeDate,
		})
	}
	w.Flush()
}

func (s *Server) ExportPriceVariationsPDF(c *gin.Context) {
	ctx := c.Request.Context()

	rows, err := s.inventory.PriceHistoryRows(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	generatedAt := s.clock.Now().Format(dbpkg.TimeFormat)
	doc, err := s.pdf.PriceVariationReport(ctx, rows, generatedAt)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `attachment; filename="price_variation_report.pdf"`)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, doc)
}
