package importer

// Field is one column of the canonical quotation schema. Column is the
// database column name, Label is the header text used in spreadsheet
// templates and exports.
type Field struct {
	Column string
	Label  string
}

// Schema is the fixed, ordered canonical field set. Every imported row is
// coerced to exactly these columns: unrecognized source columns are dropped,
// missing canonical fields become empty.
var Schema = []Field{
	{"serial_no", "序号"},
	{"item_name", "设备材料名称"},
	{"spec_model", "规格或型号"},
	{"description", "描述"},
	{"brand", "品牌"},
	{"unit", "单位"},
	{"quantity", "数量确认"},
	{"quoted_brand", "报价品牌"},
	{"model", "型号"},
	{"unit_price", "设备单价"},
	{"equipment_subtotal", "设备小计"},
	{"labor_unit_price", "人工包干单价"},
	{"labor_subtotal", "人工包干小计"},
	{"combined_total", "综合单价汇总"},
	{"currency", "币种"},
	{"warranty", "原厂品牌维保期限"},
	{"lead_time", "货期"},
	{"remarks", "备注"},
	{"inquirer", "询价人"},
	{"project", "项目名称"},
	{"supplier", "供应商名称"},
	{"inquiry_date", "询价日期"},
	{"entered_by", "录入人"},
	{"region", "地区"},
}

// SystemFields are stamped from the session identity and are never valid
// mapping targets for uploaded columns.
var SystemFields = []string{"entered_by", "region"}

// RequiredFields must be non-empty for an imported row to be accepted.
var RequiredFields = []string{"project", "supplier", "inquirer", "item_name", "currency", "inquiry_date"}

// PriceFieldPair: a row is rejected when both members are empty.
var PriceFieldPair = [2]string{"unit_price", "labor_unit_price"}

// Synonym associates one header alias with a canonical column. The table is
// an ordered slice, not a map: the substring fallback in MapSynonym returns
// the first hit in definition order, so iteration order must be stable.
type Synonym struct {
	Alias  string
	Column string
}

// Synonyms lists known header spellings, Chinese and English. Exact and
// normalized matching scan the whole table before the substring fallback
// runs, so the short generic aliases ("no", "index") sit at the end where
// they cannot shadow longer aliases during substring matching.
var Synonyms = []Synonym{
	{"序号", "serial_no"},
	{"设备材料名称", "item_name"},
	{"设备名称", "item_name"},
	{"material", "item_name"},
	{"name", "item_name"},
	{"规格或型号", "spec_model"},
	{"规格", "spec_model"},
	{"model", "spec_model"},
	{"spec", "spec_model"},
	{"描述", "description"},
	{"description", "description"},
	{"品牌", "brand"},
	{"brand", "brand"},
	{"单位", "unit"},
	{"unit", "unit"},
	{"数量确认", "quantity"},
	{"数量", "quantity"},
	{"qty", "quantity"},
	{"quantity", "quantity"},
	{"报价品牌", "quoted_brand"},
	{"报价", "quoted_brand"},
	{"型号", "model"},
	{"设备单价", "unit_price"},
	{"单价", "unit_price"},
	{"price", "unit_price"},
	{"设备小计", "equipment_subtotal"},
	{"subtotal", "equipment_subtotal"},
	{"人工包干单价", "labor_unit_price"},
	{"人工包干小计", "labor_subtotal"},
	{"综合单价汇总", "combined_total"},
	{"币种", "currency"},
	{"currency", "currency"},
	{"原厂品牌维保期限", "warranty"},
	{"货期", "lead_time"},
	{"备注", "remarks"},
	{"询价人", "inquirer"},
	{"项目名称", "project"},
	{"供应商名称", "supplier"},
	{"询价日期", "inquiry_date"},
	{"录入人", "entered_by"},
	{"地区", "region"},
	{"no", "serial_no"},
	{"index", "serial_no"},
}

// FieldByColumn returns the schema entry for a database column.
func FieldByColumn(column string) (Field, bool) {
	for _, f := range Schema {
		if f.Column == column {
			return f, true
		}
	}
	return Field{}, false
}

// Columns returns the canonical column names in schema order.
func Columns() []string {
	cols := make([]string, len(Schema))
	for i, f := range Schema {
		cols[i] = f.Column
	}
	return cols
}

// Labels returns the canonical header labels in schema order.
func Labels() []string {
	labels := make([]string, len(Schema))
	for i, f := range Schema {
		labels[i] = f.Label
	}
	return labels
}

// TemplateLabels returns the header labels offered in the download template:
// the canonical set minus the system-assigned fields.
func TemplateLabels() []string {
	var labels []string
	for _, f := range Schema {
		if isSystemField(f.Column) {
			continue
		}
		labels = append(labels, f.Label)
	}
	return labels
}

func isSystemField(column string) bool {
	for _, s := range SystemFields {
		if s == column {
			return true
		}
	}
	return false
}
