package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"quotedesk/importer"
	"quotedesk/models"
	"quotedesk/repository"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// writeXLSX streams a single-sheet workbook with the given header row and
// data rows.
func writeXLSX(c *gin.Context, filename string, headers []string, rows [][]string) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for r, row := range rows {
		for i, value := range row {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", "attachment;filename="+filename)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error writing spreadsheet", "details": err.Error()})
	}
}

// DownloadTemplate serves the empty import template: canonical headers minus
// the system-assigned fields.
// @Summary Download import template
// @Tags Export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "xlsx file"
// @Router /api/import/template [get]
func DownloadTemplate() gin.HandlerFunc {
	return func(c *gin.Context) {
		writeXLSX(c, "quotation_template.xlsx", importer.TemplateLabels(), nil)
	}
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func quotationRow(q models.Quotation) []string {
	return []string{
		strconv.FormatInt(q.ID, 10),
		q.SerialNo, q.ItemName, q.SpecModel, q.Description, q.Brand, q.Unit,
		formatFloat(q.Quantity), q.QuotedBrand, q.Model,
		formatFloat(q.UnitPrice), formatFloat(q.EquipmentSubtotal),
		formatFloat(q.LaborUnitPrice), formatFloat(q.LaborSubtotal), formatFloat(q.CombinedTotal),
		q.Currency, q.Warranty, q.LeadTime, q.Remarks,
		q.Inquirer, q.Project, q.Supplier, q.InquiryDate, q.EnteredBy, q.Region,
	}
}

// ExportQuotations downloads the current search result as a spreadsheet with
// the same column order the query returns.
// @Summary Export search result
// @Tags Export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "xlsx file"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/quotations/export [get]
func ExportQuotations(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		result, err := repository.SearchQuotations(db, quotationFilterFromQuery(c, user))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed", "details": err.Error()})
			return
		}

		headers := append([]string{"id"}, importer.Labels()...)
		rows := make([][]string, len(result))
		for i, q := range result {
			rows[i] = quotationRow(q)
		}
		writeXLSX(c, "quotation_search_result.xlsx", headers, rows)
	}
}
