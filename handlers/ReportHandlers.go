package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"quotedesk/repository"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// truncateLabel shortens a cell label to max runes, never splitting a
// multi-byte character.
func truncateLabel(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// QuotationStatsPDF renders the price statistics (count, average and minimum
// unit price per item and currency) as a PDF report under the same filters
// as the stats endpoint.
// @Summary Price statistics PDF report
// @Tags Reports
// @Param project query string false "Project filter"
// @Param supplier query string false "Supplier filter"
// @Param currency query string false "Currency filter"
// @Param region query string false "Region filter (admin only)"
// @Success 200 "PDF file"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/quotations/report.pdf [get]
func QuotationStatsPDF(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		filter := quotationFilterFromQuery(c, user)
		stats, err := repository.PriceStats(db, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statistics", "details": err.Error()})
			return
		}

		titleCaser := cases.Title(language.Und)

		pdf := gofpdf.New("P", "mm", "A4", "")
		pdf.SetTitle("Quotation Price Statistics", false)
		pdf.AddPage()

		pdf.SetFont("Arial", "B", 16)
		pdf.CellFormat(0, 10, "Quotation Price Statistics", "", 1, "C", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		scope := filter.Region
		if scope == "" {
			scope = "all regions"
		}
		pdf.CellFormat(0, 6, fmt.Sprintf("Scope: %s    Generated: %s    By: %s",
			scope, time.Now().Format("2006-01-02 15:04"), user.Username), "", 1, "C", false, 0, "")
		pdf.Ln(4)

		// Table header
		headers := []string{"item", "currency", "records", "avg unit price", "min unit price"}
		widths := []float64{80, 22, 22, 33, 33}
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for i, h := range headers {
			pdf.CellFormat(widths[i], 7, titleCaser.String(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 9)
		for _, s := range stats {
			item := truncateLabel(s.ItemName, 48)
			pdf.CellFormat(widths[0], 6, item, "1", 0, "L", false, 0, "")
			pdf.CellFormat(widths[1], 6, s.Currency, "1", 0, "C", false, 0, "")
			pdf.CellFormat(widths[2], 6, fmt.Sprintf("%d", s.Count), "1", 0, "R", false, 0, "")
			pdf.CellFormat(widths[3], 6, fmt.Sprintf("%.2f", s.AvgPrice), "1", 0, "R", false, 0, "")
			pdf.CellFormat(widths[4], 6, fmt.Sprintf("%.2f", s.MinPrice), "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
		if len(stats) == 0 {
			pdf.CellFormat(190, 6, "No records match the selected filters", "1", 1, "C", false, 0, "")
		}

		c.Header("Content-Type", "application/pdf")
		c.Header("Content-Disposition", "attachment;filename=quotation_stats.pdf")
		if err := pdf.Output(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error writing PDF", "details": err.Error()})
		}
	}
}
