package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ImportStock accepts a multipart upload under the "file" field and applies
// it as one all-or-nothing stock sheet.
func (s *Server) ImportStock(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		AbortWithError(c, newValidationError("file", "missing_file", "multipart field \"file\" is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		AbortWithError(c, err)
		return
	}
	defer file.Close()

	summary, err := s.importer.ImportFile(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
