package models

// Column names a text column whose distinct values feed filter options.
type Column string

const (
	ColumnColor     Column = "color"
	ColumnType      Column = "type"
	ColumnState     Column = "state"
	ColumnValuation Column = "valuation"
)
