package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/ngondzanamichael/LIFE-JDE-ANALYSIS/internal/config"
	"github.com/ngondzanamichael/LIFE-JDE-ANALYSIS/internal/rules"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(config.DefaultConfig())
	h.RegisterRoutes(r.Group("/api"))
	return r
}

func buildWorkbook(t *testing.T, header []string, rows [][]interface{}) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	for j, col := range header {
		cell, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetCellValue("Sheet1", cell, col); err != nil {
			t.Fatalf("set header: %v", err)
		}
	}
	for i, row := range rows {
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue("Sheet1", cell, val); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	return f
}

func lor518Fixture(t *testing.T) *excelize.File {
	return buildWorkbook(t, []string{
		"Ticket Date", "Plant", "Ticket#", "Customer", "Unnamed: 6",
		"Ship To", "Unnamed: 8", "Prod Desc", "Delv", "Truck",
		"Hired", "Shipment", "Load",
	}, [][]interface{}{
		{"2024-01-02", "P1", 101, "C1", "ACME", "ST1", "Name1", "Cement", "N", "T1", "ABC", "S2", "L1"},
		{"2024-01-01", "P1", 100, "C2", "PRECHARGEMENT", "ST2", "Name2", "Cement", "Y", "T2", "TMP", "S1", "L2"},
	})
}

func lor850Fixture(t *testing.T) *excelize.File {
	return buildWorkbook(t, []string{
		"Plant", "Receipt Date", "Unnamed: 5", "Qty", "Unnamed: 8",
		"External Ticket/BOL", "Carrier ID", "Carrier Name",
		"Driver Name", "Reference No", "User",
	}, [][]interface{}{
		{"P1", "2024-01-05", "CU1", 10, "PETCOKE", "LOR-312345", "C1", "Transpoteur Fictif", "D1", "R1", "u1"},
		{"P1", "2024-01-06", "CU2", 5, "GYPSE", "XX", "C2", "Transports Roy", "D2", "R2", "u2"},
	})
}

func jdeFixture(t *testing.T) *excelize.File {
	return buildWorkbook(t, []string{
		"N° Expéd.", "Magasin/Usine", "T C", "Dernier Statut",
		"Statut Suivant", "Date Comm.", "Nº Comm.", "Description 1",
	}, [][]interface{}{
		{"S1", "M1", "SO", 100, 565, "2024-01-01", 9, "en attente"},
	})
}

func multipartBody(t *testing.T, files map[string]*excelize.File, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	for slot, f := range files {
		fw, err := w.CreateFormFile(slot, slot+".xlsx")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		if _, err := f.WriteTo(fw); err != nil {
			t.Fatalf("write workbook: %v", err)
		}
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	return &body, w.FormDataContentType()
}

func postProcess(t *testing.T, router *gin.Engine, files map[string]*excelize.File, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := multipartBody(t, files, fields)
	req := httptest.NewRequest(http.MethodPost, "/api/process", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func fullUpload(t *testing.T) map[string]*excelize.File {
	return map[string]*excelize.File{
		slotTicketLog:    lor518Fixture(t),
		slotReceivingLog: lor850Fixture(t),
		slotStatusFile:   jdeFixture(t),
	}
}

func TestProcess_FullPipeline(t *testing.T) {
	t.Parallel()

	router := newTestRouter()
	rec := postProcess(t, router, fullUpload(t), nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp ProcessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if resp.RunID == "" {
		t.Fatalf("missing run id")
	}

	want := map[string]int{
		rules.NamePrechargement: 1,
		rules.NameSautBL:        1,
		rules.NameTransTMP:      1,
		rules.NameTransFic:      1,
		rules.NameStatusJoin:    2,
		rules.NameStatut565:     1,
		rules.NameFauxBL:        1,
		rules.NameFaultyPickup:  1,
	}
	for name, count := range want {
		if resp.Counts[name] != count {
			t.Fatalf("count %q = %d, want %d (all: %v)", name, resp.Counts[name], count, resp.Counts)
		}
	}
	if resp.Previews != nil {
		t.Fatalf("previews returned without being requested")
	}
}

func TestProcess_PreviewOption(t *testing.T) {
	t.Parallel()

	router := newTestRouter()
	rec := postProcess(t, router, fullUpload(t), map[string]string{"preview": "true"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp ProcessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if len(resp.Previews) != 3 {
		t.Fatalf("previews = %d slots, want 3", len(resp.Previews))
	}

	// previews show the normalized but unselected ticket log
	life := resp.Previews[slotTicketLog]
	found := false
	for _, col := range life.Columns {
		if col == "vendor" {
			found = true
		}
	}
	if !found {
		t.Fatalf("preview columns not normalized: %v", life.Columns)
	}
}

func TestProcess_MissingSlotIsRejected(t *testing.T) {
	t.Parallel()

	router := newTestRouter()
	files := map[string]*excelize.File{
		slotTicketLog:    lor518Fixture(t),
		slotReceivingLog: lor850Fixture(t),
	}

	rec := postProcess(t, router, files, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestProcess_SchemaErrorNamesTableAndColumn(t *testing.T) {
	t.Parallel()

	router := newTestRouter()
	files := fullUpload(t)
	files[slotTicketLog] = buildWorkbook(t, []string{"Plant", "Ticket#"}, nil)

	rec := postProcess(t, router, files, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422, body = %s", rec.Code, rec.Body.String())
	}

	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if payload["table"] != "LOR518" || payload["column"] == "" {
		t.Fatalf("error payload missing detail: %v", payload)
	}
}

func TestRunEndpoints_RedisplayAndExport(t *testing.T) {
	t.Parallel()

	router := newTestRouter()
	rec := postProcess(t, router, fullUpload(t), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("process failed: %s", rec.Body.String())
	}

	var resp ProcessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}

	// re-display counts
	req := httptest.NewRequest(http.MethodGet, "/api/runs/"+resp.RunID, nil)
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req)
	if rec2.Code != http.StatusOK {
		t.Fatalf("run lookup status = %d", rec2.Code)
	}

	// one result table, with the derived valid bl column
	req = httptest.NewRequest(http.MethodGet, "/api/runs/"+resp.RunID+"/results/faux_bl", nil)
	rec3 := httptest.NewRecorder()
	router.ServeHTTP(rec3, req)
	if rec3.Code != http.StatusOK {
		t.Fatalf("result lookup status = %d", rec3.Code)
	}
	var tbl tableJSON
	if err := json.Unmarshal(rec3.Body.Bytes(), &tbl); err != nil {
		t.Fatalf("bad table payload: %v", err)
	}
	if tbl.RowCount != 1 || tbl.Columns[len(tbl.Columns)-1] != "valid bl" {
		t.Fatalf("unexpected faux_bl table: %v", tbl.Columns)
	}

	// export round-trip: seven sheets, counts preserved
	req = httptest.NewRequest(http.MethodGet, "/api/runs/"+resp.RunID+"/export", nil)
	rec4 := httptest.NewRecorder()
	router.ServeHTTP(rec4, req)
	if rec4.Code != http.StatusOK {
		t.Fatalf("export status = %d", rec4.Code)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(rec4.Body.Bytes()))
	if err != nil {
		t.Fatalf("export is not a workbook: %v", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) != 7 {
		t.Fatalf("sheet count = %d, want 7: %v", len(sheets), sheets)
	}
	rows, err := wb.GetRows(rules.NameStatusJoin)
	if err != nil {
		t.Fatalf("status sheet: %v", err)
	}
	if len(rows)-1 != resp.Counts[rules.NameStatusJoin] {
		t.Fatalf("status sheet rows = %d, want %d", len(rows)-1, resp.Counts[rules.NameStatusJoin])
	}

	// unknown run
	req = httptest.NewRequest(http.MethodGet, "/api/runs/nope", nil)
	rec5 := httptest.NewRecorder()
	router.ServeHTTP(rec5, req)
	if rec5.Code != http.StatusNotFound {
		t.Fatalf("unknown run status = %d", rec5.Code)
	}
}
