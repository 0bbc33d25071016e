package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"quotedesk/models"
	"quotedesk/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateMiscCost records one miscellaneous cost, stamped with the session
// identity. Rows are immutable once written.
// @Summary Add misc cost
// @Tags MiscCosts
// @Accept json
// @Produce json
// @Param request body models.MiscCostRequest true "Misc cost"
// @Success 201 {object} models.MiscCost
// @Failure 400 {object} models.ErrorResponse
// @Router /api/misc-costs [post]
func CreateMiscCost() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		var req models.MiscCostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Required fields missing", "details": err.Error()})
			return
		}
		if !models.ValidCurrency(req.Currency) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid currency"})
			return
		}

		cost := models.MiscCost{
			Project:    req.Project,
			Category:   req.Category,
			Amount:     req.Amount,
			Currency:   req.Currency,
			EnteredBy:  user.Username,
			Region:     user.Region,
			OccurredOn: req.OccurredOn,
		}
		if err := storage.GetGormDB().Create(&cost).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to insert misc cost", "details": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, cost)
	}
}

func miscCostQuery(c *gin.Context, user *models.User) *gorm.DB {
	query := storage.GetGormDB().Model(&models.MiscCost{})
	if project := c.Query("project"); project != "" {
		query = query.Where("LOWER(project) LIKE ?", "%"+strings.ToLower(project)+"%")
	}
	if user.IsAdmin() {
		if region := c.Query("region"); region != "" {
			query = query.Where("region = ?", region)
		}
	} else {
		query = query.Where("region = ?", user.Region)
	}
	return query.Order("id")
}

// SearchMiscCosts lists misc costs filtered by project, region-gated.
// @Summary Search misc costs
// @Tags MiscCosts
// @Produce json
// @Param project query string false "Project filter"
// @Param region query string false "Region filter (admin only)"
// @Success 200 {array} models.MiscCost
// @Failure 500 {object} models.ErrorResponse
// @Router /api/misc-costs/search [get]
func SearchMiscCosts() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		var costs []models.MiscCost
		if err := miscCostQuery(c, user).Find(&costs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"misc_costs": costs, "count": len(costs)})
	}
}

// ExportMiscCosts downloads the misc-cost search result as a spreadsheet.
// @Summary Export misc costs
// @Tags MiscCosts
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "xlsx file"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/misc-costs/export [get]
func ExportMiscCosts() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		var costs []models.MiscCost
		if err := miscCostQuery(c, user).Find(&costs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed", "details": err.Error()})
			return
		}

		headers := []string{"id", "project", "category", "amount", "currency", "entered_by", "region", "occurred_on"}
		rows := make([][]string, len(costs))
		for i, m := range costs {
			rows[i] = []string{
				strconv.FormatUint(uint64(m.ID), 10),
				m.Project, m.Category,
				strconv.FormatFloat(m.Amount, 'f', -1, 64),
				m.Currency, m.EnteredBy, m.Region, m.OccurredOn,
			}
		}
		writeXLSX(c, "misc_costs.xlsx", headers, rows)
	}
}
