package models

// SheetTab records a worksheet created in the local (SQLite) spreadsheet
// backend, together with its header row.
type SheetTab struct {
	Sheet  string `gorm:"primaryKey"`
	Header string `gorm:"not null"` // JSON-encoded []string
}

// SheetRow is one data row of a local worksheet. Row order is the insert
// order (ascending ID); deleting a row shifts everything after it up by
// one, matching the remote spreadsheet semantics.
type SheetRow struct {
	ID    uint   `gorm:"primaryKey"`
	Sheet string `gorm:"index;not null"`
	Cells string `gorm:"not null"` // JSON-encoded []string
}
