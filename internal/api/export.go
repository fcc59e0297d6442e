package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ngondzanamichael/LIFE-JDE-ANALYSIS/internal/excel"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Export streams the seven-sheet workbook of a run as an .xlsx download.
// GET /api/runs/:id/export
func (h *Handler) Export(c *gin.Context) {
	results, ok := h.runs.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found or expired"})
		return
	}

	f, err := excel.Write(results)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("export failed: %v", err)})
		return
	}

	filename := fmt.Sprintf("life_jde_exceptions_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if _, err := f.WriteTo(c.Writer); err != nil {
		// headers are already out; nothing useful left to send
		_ = c.Error(err)
	}
}
