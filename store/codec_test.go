package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ekaraca/bulut-istakip/models"
)

func TestDecodeApplicationRowWithoutLinkColumn(t *testing.T) {
	// Rows written before the Link column existed have six cells.
	row := []string{"a1b2c3d4", "Acme", "Engineer", "Başvuruldu", "15-08-2026 09:30", "some notes"}

	app, err := decodeApplicationRow(row)
	assert.NoError(t, err)
	assert.Equal(t, "a1b2c3d4", app.ID)
	assert.Equal(t, models.StatusApplied, app.Status)
	assert.Equal(t, "some notes", app.Notes)
	assert.Empty(t, app.Link)
	assert.Equal(t, 2026, app.LastActionAt.Year())
}

func TestDecodeApplicationRowWithTrimmedTrailingCells(t *testing.T) {
	// The remote values API drops trailing empty cells, so a row with
	// blank notes and link arrives with only five.
	row := encodeApplicationRow(models.Application{
		ID:           "a1b2c3d4",
		Company:      "Acme",
		Position:     "Engineer",
		Status:       models.StatusApplied,
		LastActionAt: mustTime(t, "01-09-2026 06:38"),
	})
	for len(row) > 0 && row[len(row)-1] == "" {
		row = row[:len(row)-1]
	}
	assert.Len(t, row, 5)

	app, err := decodeApplicationRow(row)
	assert.NoError(t, err)
	assert.Equal(t, "a1b2c3d4", app.ID)
	assert.Equal(t, models.StatusApplied, app.Status)
	assert.Empty(t, app.Notes)
	assert.Empty(t, app.Link)
}

func TestDecodeApplicationRowWithLink(t *testing.T) {
	row := []string{"a1b2c3d4", "Acme", "Engineer", "Teklif Alındı", "15-08-2026 09:30", "", "https://acme.example/jobs/1"}

	app, err := decodeApplicationRow(row)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusOfferReceived, app.Status)
	assert.Equal(t, "https://acme.example/jobs/1", app.Link)
}

func TestDecodeApplicationRowRejectsBadData(t *testing.T) {
	_, err := decodeApplicationRow([]string{"id", "Acme", "Engineer", "NoSuchStatus", "15-08-2026 09:30", ""})
	assert.Error(t, err)

	_, err = decodeApplicationRow([]string{"id", "Acme", "Engineer", "Başvuruldu", "not a date", ""})
	assert.Error(t, err)

	_, err = decodeApplicationRow([]string{"id", "Acme"})
	assert.Error(t, err)
}

func TestApplicationRowRoundTrip(t *testing.T) {
	app := models.Application{
		ID:       "deadbeef",
		Company:  "Şirket Ö.",
		Position: "Mühendis",
		Status:   models.StatusInterviewPending,
		Notes:    "çok iyi geçti",
		Link:     "https://example.com",
	}
	app.LastActionAt = mustTime(t, "01-09-2026 12:45")

	decoded, err := decodeApplicationRow(encodeApplicationRow(app))
	assert.NoError(t, err)
	assert.Equal(t, app, decoded)
}

func TestHistoryRowRoundTrip(t *testing.T) {
	entry := models.HistoryEntry{
		HistoryID:     "11223344",
		ApplicationID: "deadbeef",
		Action:        models.ActionStatusUpdate,
		Detail:        "Başvuruldu -> Görüşüldü",
	}
	entry.Timestamp = mustTime(t, "01-09-2026 12:46")

	decoded, err := decodeHistoryRow(encodeHistoryRow(entry))
	assert.NoError(t, err)
	assert.Equal(t, entry, decoded)
}

func TestDecodeHistoryRowRejectsUnknownAction(t *testing.T) {
	_, err := decodeHistoryRow([]string{"h1", "a1", "SOMETHING", "detail", "01-09-2026 12:46"})
	assert.Error(t, err)
}
