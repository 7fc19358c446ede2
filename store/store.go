// Package store keeps the two worksheets (applications and history)
// behind typed operations. The remote spreadsheet client is hidden behind
// the narrow Spreadsheet/Worksheet interfaces so controllers and services
// never touch raw cells.
package store

import (
	"context"
	"fmt"

	"github.com/ekaraca/bulut-istakip/models"
)

const (
	SheetApplications = "Basvurular"
	SheetHistory      = "Gecmis"
)

// Canonical header rows. The Link column was added after the first sheet
// revision; rows written before it decode with an empty link.
var (
	ApplicationsHeader = []string{"ID", "Sirket", "Pozisyon", "Durum", "Tarih", "Notlar", "Link"}
	HistoryHeader      = []string{"GecmisID", "Basvuru_ID", "Islem", "Detay", "Tarih"}
)

// Worksheet is one tab of the backing spreadsheet. Row indexes are
// zero-based over data rows (the header is excluded) and become stale as
// soon as a row is deleted.
type Worksheet interface {
	Rows(ctx context.Context) ([][]string, error)
	Append(ctx context.Context, row []string) error
	UpdateRow(ctx context.Context, index int, row []string) error
	DeleteRow(ctx context.Context, index int) error
}

// Spreadsheet locates worksheets by title. Worksheet returns
// models.ErrNotFound when the tab does not exist.
type Spreadsheet interface {
	Worksheet(ctx context.Context, title string) (Worksheet, error)
	AddWorksheet(ctx context.Context, title string, header []string) (Worksheet, error)
}

// Store exposes typed row operations over the two worksheets.
// There are no transactions: one logical update is one row write, which
// narrows but does not close the partial-failure window.
type Store struct {
	sheet   Spreadsheet
	apps    Worksheet
	history Worksheet
}

func New(sheet Spreadsheet) *Store {
	return &Store{sheet: sheet}
}

// EnsureSchema resolves both worksheets, creating them with their header
// row when absent. Idempotent; the backing store's own "tab already
// exists" check is the only synchronization point.
func (s *Store) EnsureSchema(ctx context.Context) error {
	var err error
	if s.apps, err = s.ensureSheet(ctx, SheetApplications, ApplicationsHeader); err != nil {
		return err
	}
	if s.history, err = s.ensureSheet(ctx, SheetHistory, HistoryHeader); err != nil {
		return err
	}
	return nil
}

func (s *Store) ensureSheet(ctx context.Context, title string, header []string) (Worksheet, error) {
	ws, err := s.sheet.Worksheet(ctx, title)
	if err == nil {
		return ws, nil
	}
	ws, err = s.sheet.AddWorksheet(ctx, title, header)
	if err != nil {
		return nil, fmt.Errorf("ensure sheet %s: %w", title, err)
	}
	return ws, nil
}

// ListApplications re-reads the whole applications sheet. Every render
// goes through here; there is no in-process cache.
func (s *Store) ListApplications(ctx context.Context) ([]models.Application, error) {
	rows, err := s.apps.Rows(ctx)
	if err != nil {
		return nil, err
	}
	apps := make([]models.Application, 0, len(rows))
	for i, row := range rows {
		app, err := decodeApplicationRow(row)
		if err != nil {
			return nil, &models.MalformedRowError{Sheet: SheetApplications, Row: i, Err: err}
		}
		apps = append(apps, app)
	}
	return apps, nil
}

// GetApplication scans the ID column linearly. Fine at the target scale
// of tens to low hundreds of rows.
func (s *Store) GetApplication(ctx context.Context, id string) (models.Application, error) {
	_, app, err := s.findApplication(ctx, id)
	return app, err
}

func (s *Store) findApplication(ctx context.Context, id string) (int, models.Application, error) {
	rows, err := s.apps.Rows(ctx)
	if err != nil {
		return 0, models.Application{}, err
	}
	for i, row := range rows {
		if len(row) > 0 && row[0] == id {
			app, err := decodeApplicationRow(row)
			if err != nil {
				return 0, models.Application{}, &models.MalformedRowError{Sheet: SheetApplications, Row: i, Err: err}
			}
			return i, app, nil
		}
	}
	return 0, models.Application{}, models.ErrNotFound
}

func (s *Store) InsertApplication(ctx context.Context, app models.Application) error {
	return s.apps.Append(ctx, encodeApplicationRow(app))
}

// UpdateApplication overwrites the whole row in a single write so a
// failed call cannot leave a half-updated row behind.
func (s *Store) UpdateApplication(ctx context.Context, app models.Application) error {
	index, _, err := s.findApplication(ctx, app.ID)
	if err != nil {
		return err
	}
	return s.apps.UpdateRow(ctx, index, encodeApplicationRow(app))
}

// DeleteApplication removes the application row only; history rows for
// the id stay behind as an archive.
func (s *Store) DeleteApplication(ctx context.Context, id string) error {
	index, _, err := s.findApplication(ctx, id)
	if err != nil {
		return err
	}
	return s.apps.DeleteRow(ctx, index)
}

func (s *Store) AppendHistory(ctx context.Context, entry models.HistoryEntry) error {
	return s.history.Append(ctx, encodeHistoryRow(entry))
}

// ListHistory returns every history row in stored order (oldest first).
func (s *Store) ListHistory(ctx context.Context) ([]models.HistoryEntry, error) {
	rows, err := s.history.Rows(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]models.HistoryEntry, 0, len(rows))
	for i, row := range rows {
		entry, err := decodeHistoryRow(row)
		if err != nil {
			return nil, &models.MalformedRowError{Sheet: SheetHistory, Row: i, Err: err}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// DeleteHistory removes exactly one history row by its own id.
func (s *Store) DeleteHistory(ctx context.Context, historyID string) error {
	rows, err := s.history.Rows(ctx)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if len(row) > 0 && row[0] == historyID {
			return s.history.DeleteRow(ctx, i)
		}
	}
	return models.ErrNotFound
}
