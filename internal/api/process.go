package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ngondzanamichael/LIFE-JDE-ANALYSIS/internal/excel"
	"github.com/ngondzanamichael/LIFE-JDE-ANALYSIS/internal/rules"
	"github.com/ngondzanamichael/LIFE-JDE-ANALYSIS/internal/schema"
	"github.com/ngondzanamichael/LIFE-JDE-ANALYSIS/internal/table"
)

// Upload slot names, one per source export.
const (
	slotTicketLog    = "lor518"
	slotReceivingLog = "lor850"
	slotStatusFile   = "jde"
)

// tableJSON is the wire form of a table.
type tableJSON struct {
	Columns  []string   `json:"columns"`
	Rows     [][]string `json:"rows"`
	RowCount int        `json:"rowCount"`
}

func toTableJSON(t *table.Table) tableJSON {
	return tableJSON{
		Columns:  t.Columns(),
		Rows:     t.Rows(),
		RowCount: t.RowCount(),
	}
}

// ProcessResponse reports one completed run.
type ProcessResponse struct {
	RunID    string               `json:"runId"`
	Counts   map[string]int       `json:"counts"`
	Previews map[string]tableJSON `json:"previews,omitempty"`
}

// Process runs the full pipeline over one upload triple.
// POST /api/process (multipart: lor518, lor850, jde; form field: preview)
func (h *Handler) Process(c *gin.Context) {
	// ready-to-process gate: all three slots must be present
	for _, slot := range []string{slotTicketLog, slotReceivingLog, slotStatusFile} {
		if _, err := c.FormFile(slot); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("missing upload slot %q", slot),
			})
			return
		}
	}

	raw := make(map[string]*table.Table, 3)
	for _, slot := range []string{slotTicketLog, slotReceivingLog, slotStatusFile} {
		t, err := h.readSlot(c, slot)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("slot %q: %v", slot, err),
			})
			return
		}
		raw[slot] = t
	}

	var previews map[string]tableJSON
	if c.DefaultPostForm("preview", "false") == "true" {
		previews = map[string]tableJSON{
			slotTicketLog:    toTableJSON(schema.Normalize(raw[slotTicketLog], schema.TicketLog).Head(h.cfg.Data.PreviewRows)),
			slotReceivingLog: toTableJSON(schema.Normalize(raw[slotReceivingLog], schema.ReceivingLog).Head(h.cfg.Data.PreviewRows)),
			slotStatusFile:   toTableJSON(schema.Normalize(raw[slotStatusFile], schema.StatusFile).Head(h.cfg.Data.PreviewRows)),
		}
	}

	life, err := schema.Prepare(raw[slotTicketLog], schema.TicketLog)
	if err != nil {
		respondPipelineError(c, err)
		return
	}
	lor850, err := schema.Prepare(raw[slotReceivingLog], schema.ReceivingLog)
	if err != nil {
		respondPipelineError(c, err)
		return
	}
	jde, err := schema.Prepare(raw[slotStatusFile], schema.StatusFile)
	if err != nil {
		respondPipelineError(c, err)
		return
	}

	results, err := rules.Run(rules.Inputs{
		TicketLog:    life,
		ReceivingLog: lor850,
		StatusFile:   jde,
	})
	if err != nil {
		respondPipelineError(c, err)
		return
	}

	c.JSON(http.StatusOK, ProcessResponse{
		RunID:    h.runs.put(results),
		Counts:   results.Counts(),
		Previews: previews,
	})
}

func (h *Handler) readSlot(c *gin.Context, slot string) (*table.Table, error) {
	fh, err := c.FormFile(slot)
	if err != nil {
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return excel.ReadTable(f)
}

// respondPipelineError maps the error taxonomy to a user-visible payload
// naming the source table and column where it applies.
func respondPipelineError(c *gin.Context, err error) {
	var schemaErr *schema.SchemaError
	if errors.As(err, &schemaErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  schemaErr.Error(),
			"table":  schemaErr.Source,
			"column": schemaErr.Column,
		})
		return
	}

	var coercionErr *rules.CoercionError
	if errors.As(err, &coercionErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  coercionErr.Error(),
			"table":  coercionErr.Source,
			"column": coercionErr.Column,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
