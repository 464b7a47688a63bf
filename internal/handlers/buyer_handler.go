package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/likhith1072/Buyer-Lead-Intake/internal/models"
	"github.com/likhith1072/Buyer-Lead-Intake/internal/pdf"
	"github.com/likhith1072/Buyer-Lead-Intake/internal/services"
)

const listPerPage = 10

type BuyerHandler struct {
	Service       *services.BuyerService
	ImportService *services.ImportService
	PDF           pdf.Generator
}

func NewBuyerHandler(service *services.BuyerService, importService *services.ImportService, pdfGen pdf.Generator) *BuyerHandler {
	return &BuyerHandler{Service: service, ImportService: importService, PDF: pdfGen}
}

// @Summary      Create a buyer lead
// @Tags         Buyers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        buyer  body      models.BuyerInput  true  "Lead data"
// @Success      201    {object}  models.Buyer
// @Failure      400    {object}  map[string]interface{}
// @Router       /buyers [post]
func (h *BuyerHandler) Create(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input models.BuyerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	buyer, err := h.Service.Create(&input, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, buyer)
}

type updateBuyerRequest struct {
	models.BuyerInput
	// echo of the last-read timestamp; mismatch means someone else wrote first
	UpdatedAt time.Time `json:"updatedAt" binding:"required"`
}

// @Summary      Update a buyer lead
// @Description  Full-record update guarded by ownership and the updatedAt echo
// @Tags         Buyers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id     path      string              true  "Lead id"
// @Param        buyer  body      updateBuyerRequest  true  "Lead data plus updatedAt echo"
// @Success      200    {object}  models.Buyer
// @Failure      403    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Failure      409    {object}  map[string]interface{}
// @Router       /buyers/{id} [put]
func (h *BuyerHandler) Update(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req updateBuyerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	buyer, err := h.Service.Update(c.Param("id"), &req.BuyerInput, userID, req.UpdatedAt)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, buyer)
}

// @Summary      Get a buyer lead with recent history
// @Tags         Buyers
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Lead id"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /buyers/{id} [get]
func (h *BuyerHandler) GetByID(c *gin.Context) {
	buyer, history, err := h.Service.Get(c.Param("id"), 5)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"buyer": buyer, "history": history})
}

// @Summary      Delete a buyer lead
// @Tags         Buyers
// @Security     BearerAuth
// @Param        id  path  string  true  "Lead id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /buyers/{id} [delete]
func (h *BuyerHandler) Delete(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	if err := h.Service.Delete(c.Param("id"), userID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary      Full change history of a buyer lead
// @Tags         Buyers
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Lead id"
// @Success      200  {array}  models.HistoryEntry
// @Router       /buyers/{id}/history [get]
func (h *BuyerHandler) History(c *gin.Context) {
	entries, err := h.Service.History(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func listQueryFromParams(c *gin.Context) models.BuyerListQuery {
	return models.BuyerListQuery{
		Search:       c.Query("q"),
		City:         c.Query("city"),
		PropertyType: c.Query("propertyType"),
		Status:       c.Query("status"),
		Timeline:     c.Query("timeline"),
		SortBy:       c.DefaultQuery("sort", "updatedAt"),
		Order:        c.DefaultQuery("order", "desc"),
	}
}

// @Summary      List buyer leads
// @Tags         Buyers
// @Security     BearerAuth
// @Produce      json
// @Param        q             query  string  false  "Search over name/phone/email"
// @Param        city          query  string  false  "Filter by city"
// @Param        propertyType  query  string  false  "Filter by property type"
// @Param        status        query  string  false  "Filter by status"
// @Param        timeline      query  string  false  "Filter by timeline"
// @Param        sort          query  string  false  "Sort key"
// @Param        order         query  string  false  "asc or desc"
// @Param        page          query  int     false  "1-indexed page"
// @Success      200  {object}  map[string]interface{}
// @Router       /buyers [get]
func (h *BuyerHandler) List(c *gin.Context) {
	q := listQueryFromParams(c)
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	q.Page = page
	q.PerPage = listPerPage

	buyers, total, err := h.Service.List(q)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items":      buyers,
		"total":      total,
		"page":       q.Page,
		"perPage":    q.PerPage,
		"totalPages": int(math.Ceil(float64(total) / float64(q.PerPage))),
	})
}

// importRows extracts the row maps either from a multipart CSV upload or
// from a JSON array body (rows already parsed client-side).
func importRows(c *gin.Context) ([]map[string]string, error) {
	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/form-data") {
		file, _, err := c.Request.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("missing file field: %w", err)
		}
		defer file.Close()
		return parseCSVRows(file)
	}

	var raw []map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		return nil, err
	}
	rows := make([]map[string]string, 0, len(raw))
	for _, r := range raw {
		row := make(map[string]string, len(r))
		for k, v := range r {
			switch t := v.(type) {
			case nil:
				row[k] = ""
			case string:
				row[k] = t
			case float64:
				row[k] = strconv.FormatFloat(t, 'f', -1, 64)
			case bool:
				row[k] = strconv.FormatBool(t)
			default:
				row[k] = fmt.Sprint(t)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseCSVRows reads header-keyed rows from an uploaded CSV file.
func parseCSVRows(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("invalid CSV: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid CSV: %w", err)
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// @Summary      Bulk import buyer leads
// @Description  Accepts a JSON array of rows or a multipart CSV file. Valid rows commit together; failing rows are reported per-issue.
// @Tags         Buyers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Success      200  {object}  services.ImportResult
// @Failure      400  {object}  map[string]interface{}
// @Router       /buyers/import [post]
func (h *BuyerHandler) Import(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	rows, err := importRows(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid CSV data"})
		return
	}

	result, err := h.ImportService.Import(rows, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if result.InsertedCount == 0 && len(result.Errors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": result.Errors})
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary      Export buyer leads as CSV
// @Tags         Buyers
// @Security     BearerAuth
// @Produce      text/csv
// @Router       /buyers/export [get]
func (h *BuyerHandler) ExportCSV(c *gin.Context) {
	buyers, err := h.Service.ListAll(listQueryFromParams(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="buyers-export-%d.csv"`, time.Now().UnixMilli()))
	if err := services.WriteBuyersCSV(c.Writer, buyers); err != nil {
		// headers are already gone; nothing to do but log
		_ = c.Error(err)
	}
}

// @Summary      Export buyer leads as a PDF report
// @Tags         Buyers
// @Security     BearerAuth
// @Produce      application/pdf
// @Router       /buyers/export/pdf [get]
func (h *BuyerHandler) ExportPDF(c *gin.Context) {
	buyers, err := h.Service.ListAll(listQueryFromParams(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="buyers-report-%d.pdf"`, time.Now().UnixMilli()))
	if err := h.PDF.WriteLeadReport(c.Writer, buyers, time.Now()); err != nil {
		_ = c.Error(err)
	}
}
