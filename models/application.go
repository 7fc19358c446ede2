package models

import (
	"fmt"
	"time"
)

// SheetTimeFormat is the timestamp layout used inside worksheet cells.
// The sheet is user-visible, so the layout stays human friendly.
const SheetTimeFormat = "02-01-2006 15:04"

// StaleAfter is how long an application may sit in "Applied" with no
// action before the dashboard flags it.
const StaleAfter = 14 * 24 * time.Hour

type Status string

const (
	StatusApplied          Status = "APPLIED"
	StatusInterviewed      Status = "INTERVIEWED"
	StatusInterviewPending Status = "INTERVIEW_PENDING"
	StatusOfferReceived    Status = "OFFER_RECEIVED"
	StatusRejected         Status = "REJECTED"
)

// statusLabels maps each status to the Turkish label written into the
// worksheet. Existing sheets were filled by the previous tool, so the
// labels must match byte for byte.
var statusLabels = map[Status]string{
	StatusApplied:          "Başvuruldu",
	StatusInterviewed:      "Görüşüldü",
	StatusInterviewPending: "Mülakat Bekleniyor",
	StatusOfferReceived:    "Teklif Alındı",
	StatusRejected:         "Reddedildi",
}

// AllStatuses lists every status in display order.
var AllStatuses = []Status{
	StatusApplied,
	StatusInterviewed,
	StatusInterviewPending,
	StatusOfferReceived,
	StatusRejected,
}

// SheetLabel returns the cell representation of the status.
func (s Status) SheetLabel() string {
	return statusLabels[s]
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// ParseStatus accepts either the canonical API name or the sheet label.
func ParseStatus(raw string) (Status, error) {
	if Status(raw).Valid() {
		return Status(raw), nil
	}
	for st, label := range statusLabels {
		if raw == label {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", raw)
}

// Application is one tracked job application, decoded from a worksheet row.
type Application struct {
	ID           string    `json:"id"`
	Company      string    `json:"company"`
	Position     string    `json:"position"`
	Status       Status    `json:"status"`
	LastActionAt time.Time `json:"last_action_at"`
	Notes        string    `json:"notes,omitempty"`
	Link         string    `json:"link,omitempty"`
}

// StaleAt reports whether the application should carry the stale warning
// when rendered at the given time. Derived, never persisted.
func (a Application) StaleAt(now time.Time) bool {
	return a.Status == StatusApplied && now.Sub(a.LastActionAt) > StaleAfter
}
