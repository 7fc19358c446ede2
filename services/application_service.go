package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ekaraca/bulut-istakip/models"
	"github.com/ekaraca/bulut-istakip/store"
)

// ApplicationService owns the business rules: required-field validation,
// id generation, and the one-history-entry-per-update invariant.
type ApplicationService struct {
	Store *store.Store
}

func NewApplicationService(st *store.Store) *ApplicationService {
	return &ApplicationService{Store: st}
}

// ApplicationInput carries the mutable fields of an application.
type ApplicationInput struct {
	Company  string
	Position string
	Status   models.Status
	Notes    string
	Link     string
}

// newID returns a short opaque identifier, the first 8 hex chars of a
// UUID. Short enough to stay readable inside the sheet.
func newID() string {
	return uuid.NewString()[:8]
}

func validate(in ApplicationInput) error {
	if strings.TrimSpace(in.Company) == "" {
		return &models.ValidationError{Msg: "company is required"}
	}
	if strings.TrimSpace(in.Position) == "" {
		return &models.ValidationError{Msg: "position is required"}
	}
	if !in.Status.Valid() {
		return &models.ValidationError{Msg: fmt.Sprintf("unknown status %q", in.Status)}
	}
	return nil
}

func (s *ApplicationService) List(ctx context.Context) ([]models.Application, error) {
	return s.Store.ListApplications(ctx)
}

func (s *ApplicationService) Get(ctx context.Context, id string) (models.Application, error) {
	return s.Store.GetApplication(ctx, id)
}

// Add validates, inserts the application row, then appends exactly one
// NEW_RECORD history entry.
func (s *ApplicationService) Add(ctx context.Context, in ApplicationInput) (models.Application, error) {
	if err := validate(in); err != nil {
		return models.Application{}, err
	}

	now := time.Now()
	app := models.Application{
		ID:           newID(),
		Company:      in.Company,
		Position:     in.Position,
		Status:       in.Status,
		LastActionAt: now,
		Notes:        in.Notes,
		Link:         in.Link,
	}
	if err := s.Store.InsertApplication(ctx, app); err != nil {
		return models.Application{}, err
	}

	entry := models.HistoryEntry{
		HistoryID:     newID(),
		ApplicationID: app.ID,
		Action:        models.ActionNewRecord,
		Detail:        fmt.Sprintf("Durum: %s", in.Status.SheetLabel()),
		Timestamp:     now,
	}
	if err := s.Store.AppendHistory(ctx, entry); err != nil {
		return models.Application{}, err
	}
	return app, nil
}

// Update overwrites all mutable fields plus the timestamp in one row
// write, then appends at most one history entry. A status change masks a
// simultaneous note change: only the STATUS_UPDATE entry is logged.
// Link-only changes never produce an entry.
func (s *ApplicationService) Update(ctx context.Context, id string, in ApplicationInput) (models.Application, error) {
	if err := validate(in); err != nil {
		return models.Application{}, err
	}

	old, err := s.Store.GetApplication(ctx, id)
	if err != nil {
		return models.Application{}, err
	}

	now := time.Now()
	app := models.Application{
		ID:           id,
		Company:      in.Company,
		Position:     in.Position,
		Status:       in.Status,
		LastActionAt: now,
		Notes:        in.Notes,
		Link:         in.Link,
	}
	if err := s.Store.UpdateApplication(ctx, app); err != nil {
		return models.Application{}, err
	}

	var entry *models.HistoryEntry
	switch {
	case old.Status != in.Status:
		entry = &models.HistoryEntry{
			Action: models.ActionStatusUpdate,
			Detail: fmt.Sprintf("%s -> %s", old.Status.SheetLabel(), in.Status.SheetLabel()),
		}
	case strings.TrimSpace(in.Notes) != "":
		entry = &models.HistoryEntry{
			Action: models.ActionNoteUpdate,
			Detail: fmt.Sprintf("Not: %s", in.Notes),
		}
	}
	if entry != nil {
		entry.HistoryID = newID()
		entry.ApplicationID = id
		entry.Timestamp = now
		if err := s.Store.AppendHistory(ctx, *entry); err != nil {
			return models.Application{}, err
		}
	}
	return app, nil
}

// Delete removes the application row only. Already-deleted ids are not an
// error; deletion is idempotent for the caller.
func (s *ApplicationService) Delete(ctx context.Context, id string) error {
	err := s.Store.DeleteApplication(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil
	}
	return err
}

// DeleteHistoryEntry removes exactly one history row by its own id.
func (s *ApplicationService) DeleteHistoryEntry(ctx context.Context, historyID string) error {
	return s.Store.DeleteHistory(ctx, historyID)
}

// HistoryFor filters the full history table by application id, most
// recent first. Cell timestamps have minute resolution, so entries from
// the same minute keep their row order, later rows first.
func (s *ApplicationService) HistoryFor(ctx context.Context, applicationID string) ([]models.HistoryEntry, error) {
	all, err := s.Store.ListHistory(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]models.HistoryEntry, 0)
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].ApplicationID == applicationID {
			entries = append(entries, all[i])
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	return entries, nil
}
