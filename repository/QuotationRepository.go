package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"quotedesk/importer"
	"quotedesk/models"
	"quotedesk/utils"

	"github.com/lib/pq"
)

// searchableFields whitelists the query-selectable columns so user field
// selections can never reach the SQL text unchecked.
var searchableFields = map[string]bool{
	"item_name":   true,
	"description": true,
	"brand":       true,
	"spec_model":  true,
	"project":     true,
	"supplier":    true,
	"region":      true,
}

// defaultSearchFields are used when the caller picks none.
var defaultSearchFields = []string{"item_name", "description", "brand", "spec_model", "project", "supplier"}

const quotationSelectColumns = `id, serial_no, item_name, spec_model, description, brand, unit, quantity,
	quoted_brand, model, unit_price, equipment_subtotal, labor_unit_price, labor_subtotal,
	combined_total, currency, warranty, lead_time, remarks, inquirer, project, supplier,
	inquiry_date, entered_by, region`

// filterConditions renders the WHERE fragments shared by search, export and
// statistics. Keyword tokens are AND-ed together; each token is OR-ed across
// the chosen fields with a case-insensitive LIKE, mirroring the search form
// semantics.
func filterConditions(f models.QuotationFilter) ([]string, []interface{}) {
	var conds []string
	var params []interface{}

	add := func(cond string, value interface{}) {
		params = append(params, value)
		conds = append(conds, fmt.Sprintf(cond, len(params)))
	}

	if f.Project != "" {
		add("LOWER(project) LIKE $%d", "%"+strings.ToLower(f.Project)+"%")
	}
	if f.Supplier != "" {
		add("LOWER(supplier) LIKE $%d", "%"+strings.ToLower(f.Supplier)+"%")
	}
	if f.Brand != "" {
		add("LOWER(brand) LIKE $%d", "%"+strings.ToLower(f.Brand)+"%")
	}
	if f.Currency != "" {
		add("currency = $%d", f.Currency)
	}
	if f.Region != "" {
		add("region = $%d", f.Region)
	}

	if f.Keyword != "" {
		fields := make([]string, 0, len(f.Fields))
		for _, name := range f.Fields {
			if searchableFields[name] {
				fields = append(fields, name)
			}
		}
		if len(fields) == 0 {
			fields = defaultSearchFields
		}
		for _, token := range strings.Fields(f.Keyword) {
			var ors []string
			for _, field := range fields {
				params = append(params, "%"+strings.ToLower(token)+"%")
				ors = append(ors, fmt.Sprintf("LOWER(%s) LIKE $%d", field, len(params)))
			}
			conds = append(conds, "("+strings.Join(ors, " OR ")+")")
		}
	}
	return conds, params
}

// BuildSearchQuery assembles the filtered SELECT for quotation search.
func BuildSearchQuery(f models.QuotationFilter) (string, []interface{}) {
	conds, params := filterConditions(f)
	query := "SELECT " + quotationSelectColumns + " FROM quotations"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"
	return query, params
}

func scanQuotation(rows *sql.Rows) (models.Quotation, error) {
	var q models.Quotation
	var serialNo, specModel, description, brand, unit, quotedBrand, model sql.NullString
	var currency, warranty, leadTime, remarks, inquirer, project, supplier sql.NullString
	var inquiryDate, enteredBy, region sql.NullString
	var quantity, unitPrice, equipSub, laborPrice, laborSub, combined sql.NullFloat64

	err := rows.Scan(&q.ID, &serialNo, &q.ItemName, &specModel, &description, &brand, &unit,
		&quantity, &quotedBrand, &model, &unitPrice, &equipSub, &laborPrice, &laborSub,
		&combined, &currency, &warranty, &leadTime, &remarks, &inquirer, &project,
		&supplier, &inquiryDate, &enteredBy, &region)
	if err != nil {
		return q, err
	}

	q.SerialNo = serialNo.String
	q.SpecModel = specModel.String
	q.Description = description.String
	q.Brand = brand.String
	q.Unit = unit.String
	q.QuotedBrand = quotedBrand.String
	q.Model = model.String
	q.Currency = currency.String
	q.Warranty = warranty.String
	q.LeadTime = leadTime.String
	q.Remarks = remarks.String
	q.Inquirer = inquirer.String
	q.Project = project.String
	q.Supplier = supplier.String
	q.InquiryDate = inquiryDate.String
	q.EnteredBy = enteredBy.String
	q.Region = region.String

	nullable := []struct {
		src sql.NullFloat64
		dst **float64
	}{
		{quantity, &q.Quantity}, {unitPrice, &q.UnitPrice}, {equipSub, &q.EquipmentSubtotal},
		{laborPrice, &q.LaborUnitPrice}, {laborSub, &q.LaborSubtotal}, {combined, &q.CombinedTotal},
	}
	for _, n := range nullable {
		if n.src.Valid {
			v := n.src.Float64
			*n.dst = &v
		}
	}
	return q, nil
}

// SearchQuotations runs the filtered search.
func SearchQuotations(db *sql.DB, f models.QuotationFilter) ([]models.Quotation, error) {
	ctx, cancel := utils.GetDefaultQueryContext(nil)
	defer cancel()

	query, params := BuildSearchQuery(f)
	rows, err := db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("search quotations: %w", err)
	}
	defer rows.Close()

	var result []models.Quotation
	for rows.Next() {
		q, err := scanQuotation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, q)
	}
	return result, rows.Err()
}

// InsertManualQuotation stores one hand-entered record stamped with the
// session identity.
func InsertManualQuotation(db *sql.DB, req models.ManualQuotationRequest, user *models.User) error {
	ctx, cancel := utils.GetDefaultQueryContext(nil)
	defer cancel()

	_, err := db.ExecContext(ctx, `
		INSERT INTO quotations
			(project, supplier, inquirer, item_name, brand, quantity, unit_price,
			 currency, description, inquiry_date, entered_by, region)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		req.Project, req.Supplier, req.Inquirer, req.ItemName, req.Brand,
		req.Quantity, req.UnitPrice, req.Currency, req.Description, req.InquiryDate,
		user.Username, user.Region)
	if err != nil {
		return fmt.Errorf("insert quotation: %w", err)
	}
	return nil
}

// numericColumns are cast on insert; empty strings become NULL so blank
// spreadsheet cells never fail the numeric cast.
var numericColumns = map[string]bool{
	"quantity":           true,
	"unit_price":         true,
	"equipment_subtotal": true,
	"labor_unit_price":   true,
	"labor_subtotal":     true,
	"combined_total":     true,
}

// BulkInsertCanonical writes a validated canonical table in one transaction.
// Either every row commits or none does.
func BulkInsertCanonical(db *sql.DB, t importer.Table) (int, error) {
	if len(t.Rows) == 0 {
		return 0, nil
	}

	ctx, cancel := utils.GetSlowQueryContext(nil)
	defer cancel()

	placeholders := make([]string, len(t.Columns))
	for i, column := range t.Columns {
		if numericColumns[column] {
			placeholders[i] = fmt.Sprintf("NULLIF($%d, '')::double precision", i+1)
		} else {
			placeholders[i] = fmt.Sprintf("NULLIF($%d, '')", i+1)
		}
	}
	query := fmt.Sprintf("INSERT INTO quotations (%s) VALUES (%s)",
		strings.Join(t.Columns, ", "), strings.Join(placeholders, ", "))

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("prepare import insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range t.Rows {
		args := make([]interface{}, len(t.Columns))
		for i := range t.Columns {
			if i < len(row) {
				args[i] = importer.NormalizeCell(row[i])
			} else {
				args[i] = ""
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("insert imported row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return len(t.Rows), nil
}

// BuildStatsQuery assembles the aggregation SELECT for price statistics,
// under the same filters as search.
func BuildStatsQuery(f models.QuotationFilter) (string, []interface{}) {
	conds, params := filterConditions(f)
	conds = append([]string{"unit_price IS NOT NULL"}, conds...)

	query := `
		SELECT item_name, COALESCE(currency, ''), COUNT(*), AVG(unit_price), MIN(unit_price)
		FROM quotations
		WHERE ` + strings.Join(conds, " AND ") + `
		GROUP BY item_name, currency
		ORDER BY item_name, currency`
	return query, params
}

// PriceStats aggregates mean and minimum unit price per item and currency.
func PriceStats(db *sql.DB, f models.QuotationFilter) ([]models.PriceStat, error) {
	ctx, cancel := utils.GetDefaultQueryContext(nil)
	defer cancel()

	query, params := BuildStatsQuery(f)
	rows, err := db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("price stats: %w", err)
	}
	defer rows.Close()

	var stats []models.PriceStat
	for rows.Next() {
		var s models.PriceStat
		if err := rows.Scan(&s.ItemName, &s.Currency, &s.Count, &s.AvgPrice, &s.MinPrice); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// ArchiveAndDeleteQuotations copies the selected rows into
// deleted_quotations and removes them from quotations in one transaction.
// Returns how many rows were archived and deleted.
func ArchiveAndDeleteQuotations(db *sql.DB, ids []int64, deletedBy string) (int64, int64, error) {
	if len(ids) == 0 {
		return 0, 0, nil
	}

	ctx, cancel := utils.GetDefaultQueryContext(nil)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	// Verify the selection actually matches rows before touching anything.
	var matched int64
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM quotations WHERE id = ANY($1)`, pq.Array(ids)).Scan(&matched); err != nil {
		return 0, 0, fmt.Errorf("verify selection: %w", err)
	}
	if matched == 0 {
		return 0, 0, nil
	}

	businessColumns := `serial_no, item_name, spec_model, description, brand, unit, quantity,
		quoted_brand, model, unit_price, equipment_subtotal, labor_unit_price, labor_subtotal,
		combined_total, currency, warranty, lead_time, remarks, inquirer, project, supplier,
		inquiry_date, entered_by, region`

	archiveResult, err := tx.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO deleted_quotations (original_id, %s, deleted_by)
		SELECT id, %s, $2 FROM quotations WHERE id = ANY($1)`,
		businessColumns, businessColumns), pq.Array(ids), deletedBy)
	if err != nil {
		return 0, 0, fmt.Errorf("archive quotations: %w", err)
	}
	archived, _ := archiveResult.RowsAffected()

	deleteResult, err := tx.ExecContext(ctx,
		`DELETE FROM quotations WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return 0, 0, fmt.Errorf("delete quotations: %w", err)
	}
	deleted, _ := deleteResult.RowsAffected()

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("commit delete: %w", err)
	}
	return archived, deleted, nil
}
