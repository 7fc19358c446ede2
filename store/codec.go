package store

import (
	"fmt"
	"time"

	"github.com/ekaraca/bulut-istakip/models"
)

func encodeApplicationRow(app models.Application) []string {
	return []string{
		app.ID,
		app.Company,
		app.Position,
		app.Status.SheetLabel(),
		app.LastActionAt.Format(models.SheetTimeFormat),
		app.Notes,
		app.Link,
	}
}

// decodeApplicationRow turns one sheet row into a typed record. The
// remote values API drops trailing empty cells, so a row with blank
// notes and link comes back with five cells; everything after the
// timestamp is optional and decodes as empty.
func decodeApplicationRow(row []string) (models.Application, error) {
	if len(row) < 5 {
		return models.Application{}, fmt.Errorf("expected at least 5 cells, got %d", len(row))
	}
	status, err := models.ParseStatus(row[3])
	if err != nil {
		return models.Application{}, err
	}
	at, err := time.ParseInLocation(models.SheetTimeFormat, row[4], time.Local)
	if err != nil {
		return models.Application{}, fmt.Errorf("bad timestamp %q: %w", row[4], err)
	}
	app := models.Application{
		ID:           row[0],
		Company:      row[1],
		Position:     row[2],
		Status:       status,
		LastActionAt: at,
	}
	if len(row) > 5 {
		app.Notes = row[5]
	}
	if len(row) > 6 {
		app.Link = row[6]
	}
	return app, nil
}

func encodeHistoryRow(entry models.HistoryEntry) []string {
	return []string{
		entry.HistoryID,
		entry.ApplicationID,
		entry.Action.SheetLabel(),
		entry.Detail,
		entry.Timestamp.Format(models.SheetTimeFormat),
	}
}

func decodeHistoryRow(row []string) (models.HistoryEntry, error) {
	if len(row) < 5 {
		return models.HistoryEntry{}, fmt.Errorf("expected 5 cells, got %d", len(row))
	}
	action, err := models.ParseAction(row[2])
	if err != nil {
		return models.HistoryEntry{}, err
	}
	at, err := time.ParseInLocation(models.SheetTimeFormat, row[4], time.Local)
	if err != nil {
		return models.HistoryEntry{}, fmt.Errorf("bad timestamp %q: %w", row[4], err)
	}
	return models.HistoryEntry{
		HistoryID:     row[0],
		ApplicationID: row[1],
		Action:        action,
		Detail:        row[3],
		Timestamp:     at,
	}, nil
}
