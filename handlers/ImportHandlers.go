package handlers

import (
	"database/sql"
	"fmt"
	"net/http"

	"quotedesk/importer"
	"quotedesk/models"
	"quotedesk/repository"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ImportSessions holds the in-flight import wizards. Stale entries are
// purged by the maintenance cron.
var ImportSessions = importer.NewRegistry()

const (
	previewRowLimit = 50
	maxHeaderRows   = 2
	maxSearchRows   = 8
)

// UploadSpreadsheet starts an import: reads the workbook, detects the header
// and proposes a column mapping.
// @Summary Upload spreadsheet for import
// @Tags Import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "xlsx file"
// @Success 200 {object} object
// @Failure 400 {object} models.ErrorResponse
// @Router /api/import/upload [post]
func UploadSpreadsheet(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file not found"})
			return
		}
		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unable to open file"})
			return
		}
		defer src.Close()

		workbook, err := excelize.OpenReader(src)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read spreadsheet", "details": err.Error()})
			return
		}
		defer workbook.Close()

		rows, err := workbook.GetRows(workbook.GetSheetName(0))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read sheet", "details": err.Error()})
			return
		}
		if len(rows) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "spreadsheet is empty"})
			return
		}

		preview := rows
		if len(preview) > previewRowLimit {
			preview = preview[:previewRowLimit]
		}

		session := ImportSessions.Create(importer.Identity{Username: user.Username, Region: user.Region})
		session.Lock()
		defer session.Unlock()
		session.Preview = preview

		labels, headerRow, detected := importer.DetectHeader(preview, maxHeaderRows, maxSearchRows)
		if !detected {
			// Degrade to treating the first row as the header verbatim.
			headerRow = 0
			labels = append([]string(nil), rows[0]...)
		}
		session.Detected = detected
		session.HeaderRow = headerRow
		session.DataRows = rows[headerRow+1:]

		// Pad missing labels so every data column can be mapped.
		width := 0
		for _, row := range session.DataRows {
			if len(row) > width {
				width = len(row)
			}
		}
		for len(labels) < width {
			labels = append(labels, fmt.Sprintf("Unnamed_%d", len(labels)))
		}
		session.HeaderLabels = labels
		if err := session.Advance(importer.StateHeaderDetected); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		session.Proposal = importer.ProposeMapping(labels)
		if err := session.Advance(importer.StateMappingProposed); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		previewHead := session.Preview
		if len(previewHead) > 10 {
			previewHead = previewHead[:10]
		}
		c.JSON(http.StatusOK, gin.H{
			"import_id":       session.ID,
			"header_detected": detected,
			"header_row":      headerRow,
			"header_labels":   labels,
			"proposal":        session.Proposal,
			"targets":         importer.Columns(),
			"preview":         previewHead,
			"data_rows":       len(session.DataRows),
		})
	}
}

type confirmMappingRequest struct {
	Mapping []string `json:"mapping" binding:"required"`
}

// ConfirmMapping applies the human-confirmed column mapping and materializes
// the canonical table.
// @Summary Confirm column mapping
// @Tags Import
// @Accept json
// @Produce json
// @Param id path string true "Import session ID"
// @Success 200 {object} object
// @Failure 400 {object} models.ErrorResponse
// @Router /api/import/{id}/mapping [post]
func ConfirmMapping(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		session, err := ImportSessions.Get(c.Param("id"), user.Username)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}

		session.Lock()
		defer session.Unlock()
		// Guard the step before touching any session state, so a replayed
		// or out-of-order request leaves the wizard exactly as it was.
		if session.State != importer.StateMappingProposed {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf(
				"mapping cannot be confirmed in the %s state", session.State)})
			return
		}

		var req confirmMappingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "mapping is required"})
			return
		}
		if len(req.Mapping) != len(session.HeaderLabels) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf(
				"mapping must have %d entries, one per source column", len(session.HeaderLabels))})
			return
		}

		mapping := make([]string, len(req.Mapping))
		for i, target := range req.Mapping {
			if target == "" || target == "ignore" || target == "Ignore" {
				continue
			}
			field, known := importer.FieldByColumn(target)
			if !known {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown target column %q", target)})
				return
			}
			for _, sys := range importer.SystemFields {
				if field.Column == sys {
					c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf(
						"%s is assigned from the session and cannot be mapped", field.Column)})
					return
				}
			}
			mapping[i] = field.Column
		}

		session.Mapping = mapping
		session.EmptyTargets = importer.EmptyTargets(session.DataRows, mapping)
		session.Table = importer.Materialize(session.DataRows, mapping, session.User)
		if err := session.Advance(importer.StateMappingConfirmed); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		head := session.Table.Rows
		if len(head) > 10 {
			head = head[:10]
		}
		c.JSON(http.StatusOK, gin.H{
			"message":       "Mapping applied",
			"columns":       session.Table.Columns,
			"preview":       head,
			"empty_targets": session.EmptyTargets,
		})
	}
}

// ApplyImportGlobals fills empty cells with the bulk-fill values and runs
// validation, partitioning the rows into importable and rejected sets.
// @Summary Apply global fill values and validate
// @Tags Import
// @Accept json
// @Produce json
// @Param id path string true "Import session ID"
// @Param request body importer.Globals true "Global fill values"
// @Success 200 {object} object
// @Failure 400 {object} models.ErrorResponse
// @Router /api/import/{id}/globals [post]
func ApplyImportGlobals(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		session, err := ImportSessions.Get(c.Param("id"), user.Username)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}

		session.Lock()
		defer session.Unlock()
		if session.State != importer.StateMappingConfirmed {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf(
				"globals cannot be applied in the %s state", session.State)})
			return
		}

		var globals importer.Globals
		if err := c.ShouldBindJSON(&globals); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		if globals.Project == "" || globals.Supplier == "" || globals.Inquirer == "" || globals.Date == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "project, supplier, inquirer and date are required"})
			return
		}
		if globals.Currency != "" && !models.ValidCurrency(globals.Currency) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid currency"})
			return
		}

		importer.ApplyGlobals(&session.Table, globals)
		if err := session.Advance(importer.StateGlobalsApplied); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		session.Valid, session.Invalid = importer.ValidateAndPartition(session.Table)
		if err := session.Advance(importer.StateValidated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		rejectedHead := session.Invalid.Rows
		if len(rejectedHead) > 50 {
			rejectedHead = rejectedHead[:50]
		}
		c.JSON(http.StatusOK, gin.H{
			"message":          "Validation complete",
			"valid_count":      len(session.Valid.Rows),
			"rejected_count":   len(session.Invalid.Rows),
			"rejected_preview": rejectedHead,
		})
	}
}

// CommitImport bulk-inserts the validated rows in a single transaction.
// @Summary Commit import
// @Tags Import
// @Produce json
// @Param id path string true "Import session ID"
// @Success 200 {object} object
// @Failure 400 {object} models.ErrorResponse
// @Router /api/import/{id}/commit [post]
func CommitImport(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		session, err := ImportSessions.Get(c.Param("id"), user.Username)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		session.Lock()
		defer session.Unlock()
		if session.State != importer.StateValidated {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Import is not in the validated state"})
			return
		}

		imported, err := repository.BulkInsertCanonical(db, session.Valid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Import failed, nothing was written", "details": err.Error()})
			return
		}
		if err := session.Advance(importer.StateCommitted); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		rejected := len(session.Invalid.Rows)
		if rejected == 0 {
			// Nothing left to download; the wizard is done.
			ImportSessions.Delete(session.ID)
		}
		c.JSON(http.StatusOK, gin.H{
			"message":        fmt.Sprintf("Imported %d records", imported),
			"imported":       imported,
			"rejected_count": rejected,
		})
	}
}

// DownloadRejected returns the rejected rows as a spreadsheet so the user
// can correct and re-upload them.
// @Summary Download rejected rows
// @Tags Import
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Import session ID"
// @Success 200 {file} file "xlsx file"
// @Failure 404 {object} models.ErrorResponse
// @Router /api/import/{id}/rejected [get]
func DownloadRejected(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		session, err := ImportSessions.Get(c.Param("id"), user.Username)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		session.Lock()
		defer session.Unlock()
		if session.State != importer.StateValidated && session.State != importer.StateCommitted {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No validation result available yet"})
			return
		}
		if len(session.Invalid.Rows) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "No rejected rows"})
			return
		}

		writeXLSX(c, "rejected_rows.xlsx", importer.Labels(), session.Invalid.Rows)
	}
}
