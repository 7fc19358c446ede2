package models

import (
	"fmt"
	"time"
)

type Action string

const (
	ActionNewRecord    Action = "NEW_RECORD"
	ActionStatusUpdate Action = "STATUS_UPDATE"
	ActionNoteUpdate   Action = "NOTE_UPDATE"
)

// actionLabels keeps the cell representation compatible with rows written
// by the previous tool.
var actionLabels = map[Action]string{
	ActionNewRecord:    "YENİ KAYIT",
	ActionStatusUpdate: "GÜNCELLEME",
	ActionNoteUpdate:   "NOT GÜNCELLEME",
}

// SheetLabel returns the cell representation of the action.
func (a Action) SheetLabel() string {
	return actionLabels[a]
}

// ParseAction accepts either the canonical API name or the sheet label.
func ParseAction(raw string) (Action, error) {
	if _, ok := actionLabels[Action(raw)]; ok {
		return Action(raw), nil
	}
	for act, label := range actionLabels {
		if raw == label {
			return act, nil
		}
	}
	return "", fmt.Errorf("unknown action %q", raw)
}

// HistoryEntry is one immutable audit-log row. Entries are only ever
// appended or deleted, never updated. Deleting an application keeps its
// history as an archive.
type HistoryEntry struct {
	HistoryID     string    `json:"history_id"`
	ApplicationID string    `json:"application_id"`
	Action        Action    `json:"action"`
	Detail        string    `json:"detail"`
	Timestamp     time.Time `json:"timestamp"`
}
