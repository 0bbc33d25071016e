package handlers

import (
	"database/sql"
	"net/http"

	"quotedesk/models"
	"quotedesk/repository"

	"github.com/gin-gonic/gin"
)

// quotationFilterFromQuery collects the search selections. Non-admin users
// are hard-scoped to their own region; admins may filter freely or see all.
func quotationFilterFromQuery(c *gin.Context, user *models.User) models.QuotationFilter {
	f := models.QuotationFilter{
		Keyword:  c.Query("keyword"),
		Fields:   c.QueryArray("fields"),
		Project:  c.Query("project"),
		Supplier: c.Query("supplier"),
		Brand:    c.Query("brand"),
		Currency: c.Query("currency"),
	}
	if user.IsAdmin() {
		f.Region = c.Query("region")
	} else {
		f.Region = user.Region
	}
	return f
}

// CreateQuotation stores one manually entered record.
// @Summary Manual quotation entry
// @Tags Quotations
// @Accept json
// @Produce json
// @Param request body models.ManualQuotationRequest true "Quotation"
// @Success 201 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/quotations [post]
func CreateQuotation(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		var req models.ManualQuotationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Required fields missing", "details": err.Error()})
			return
		}
		if !models.ValidCurrency(req.Currency) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid currency"})
			return
		}

		if err := repository.InsertManualQuotation(db, req, user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to insert record", "details": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Record added"})
	}
}

// SearchQuotations runs the filtered keyword search.
// @Summary Search quotations
// @Tags Quotations
// @Produce json
// @Param keyword query string false "Space-separated keyword tokens"
// @Param fields query []string false "Fields to search"
// @Param project query string false "Project filter"
// @Param supplier query string false "Supplier filter"
// @Param brand query string false "Brand filter"
// @Param currency query string false "Currency filter"
// @Param region query string false "Region filter (admin only)"
// @Success 200 {array} models.Quotation
// @Failure 500 {object} models.ErrorResponse
// @Router /api/quotations/search [get]
func SearchQuotations(db *sql.DB) gin.HandlerFunc {
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
		c.JSON(http.StatusOK, gin.H{"quotations": result, "count": len(result)})
	}
}

// QuotationStats returns mean and minimum unit price grouped by item.
// @Summary Price statistics
// @Tags Quotations
// @Produce json
// @Success 200 {array} models.PriceStat
// @Failure 500 {object} models.ErrorResponse
// @Router /api/quotations/stats [get]
func QuotationStats(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		stats, err := repository.PriceStats(db, quotationFilterFromQuery(c, user))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statistics", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"stats": stats, "count": len(stats)})
	}
}

// DeleteQuotations archives the selected rows into deleted_quotations and
// removes them, in one transaction. Admin only; requires an explicit
// confirmation flag.
// @Summary Delete quotations (archive first)
// @Tags Quotations
// @Accept json
// @Produce json
// @Param request body models.DeleteQuotationsRequest true "IDs to delete"
// @Success 200 {object} object
// @Failure 400 {object} models.ErrorResponse
// @Router /api/quotations/delete [post]
func DeleteQuotations(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		var req models.DeleteQuotationsRequest
		if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ids is required"})
			return
		}
		if !req.Confirm {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Deletion must be confirmed"})
			return
		}

		archived, deleted, err := repository.ArchiveAndDeleteQuotations(db, req.IDs, user.Username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Delete failed", "details": err.Error()})
			return
		}
		if deleted == 0 {
			c.JSON(http.StatusOK, gin.H{"message": "No matching records found", "deleted": 0, "archived": 0})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Records archived and deleted", "archived": archived, "deleted": deleted})
	}
}
