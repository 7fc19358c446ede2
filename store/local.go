package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ekaraca/bulut-istakip/models"
)

// LocalSpreadsheet implements Spreadsheet on a SQLite file via GORM.
// It exists for development and tests: no Google credential needed, but
// the same shift-on-delete row semantics as the remote sheet.
type LocalSpreadsheet struct {
	db *gorm.DB
}

// OpenLocal opens (or creates) the SQLite file at path.
func OpenLocal(path string) (*LocalSpreadsheet, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open local spreadsheet: %w", err)
	}
	return NewLocalSpreadsheet(db)
}

// NewLocalSpreadsheet wraps an existing GORM handle (tests pass an
// in-memory SQLite connection here).
func NewLocalSpreadsheet(db *gorm.DB) (*LocalSpreadsheet, error) {
	if err := db.AutoMigrate(&models.SheetTab{}, &models.SheetRow{}); err != nil {
		return nil, fmt.Errorf("migrate local spreadsheet: %w", err)
	}
	return &LocalSpreadsheet{db: db}, nil
}

func (l *LocalSpreadsheet) Worksheet(ctx context.Context, title string) (Worksheet, error) {
	var tab models.SheetTab
	if err := l.db.WithContext(ctx).First(&tab, "sheet = ?", title).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &localWorksheet{db: l.db, sheet: title}, nil
}

func (l *LocalSpreadsheet) AddWorksheet(ctx context.Context, title string, header []string) (Worksheet, error) {
	encoded, err := json.Marshal(header)
	if err != nil {
		return nil, err
	}
	tab := models.SheetTab{Sheet: title, Header: string(encoded)}
	// FirstOrCreate keeps repeated EnsureSchema calls from racing into a
	// duplicate tab.
	if err := l.db.WithContext(ctx).FirstOrCreate(&tab, models.SheetTab{Sheet: title}).Error; err != nil {
		return nil, err
	}
	return &localWorksheet{db: l.db, sheet: title}, nil
}

type localWorksheet struct {
	db    *gorm.DB
	sheet string
}

func (w *localWorksheet) Rows(ctx context.Context) ([][]string, error) {
	var stored []models.SheetRow
	if err := w.db.WithContext(ctx).Where("sheet = ?", w.sheet).Order("id").Find(&stored).Error; err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(stored))
	for _, r := range stored {
		var cells []string
		if err := json.Unmarshal([]byte(r.Cells), &cells); err != nil {
			return nil, fmt.Errorf("corrupt row %d in sheet %s: %w", r.ID, w.sheet, err)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func (w *localWorksheet) Append(ctx context.Context, row []string) error {
	encoded, err := json.Marshal(row)
	if err != nil {
		return err
	}
	return w.db.WithContext(ctx).Create(&models.SheetRow{Sheet: w.sheet, Cells: string(encoded)}).Error
}

func (w *localWorksheet) UpdateRow(ctx context.Context, index int, row []string) error {
	id, err := w.rowID(ctx, index)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(row)
	if err != nil {
		return err
	}
	return w.db.WithContext(ctx).Model(&models.SheetRow{}).Where("id = ?", id).
		Update("cells", string(encoded)).Error
}

func (w *localWorksheet) DeleteRow(ctx context.Context, index int) error {
	id, err := w.rowID(ctx, index)
	if err != nil {
		return err
	}
	return w.db.WithContext(ctx).Delete(&models.SheetRow{}, id).Error
}

// rowID resolves a zero-based position to the stored primary key.
func (w *localWorksheet) rowID(ctx context.Context, index int) (uint, error) {
	var stored models.SheetRow
	err := w.db.WithContext(ctx).Where("sheet = ?", w.sheet).Order("id").
		Offset(index).Limit(1).First(&stored).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, models.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return stored.ID, nil
}
