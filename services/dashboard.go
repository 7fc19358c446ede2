package services

import (
	"strings"
	"time"

	"github.com/ekaraca/bulut-istakip/models"
)

// DashboardStats mirrors the three headline metrics of the dashboard plus
// the distributions the charts are built from.
type DashboardStats struct {
	Total            int            `json:"total"`
	InterviewPending int            `json:"interview_pending"`
	Offers           int            `json:"offers"`
	Stale            int            `json:"stale"`
	ByStatus         map[string]int `json:"by_status"`
	ByCompany        map[string]int `json:"by_company"`
}

// BuildStats recomputes all aggregates from the full list. Nothing here
// is persisted; every render recounts.
func BuildStats(apps []models.Application, now time.Time) DashboardStats {
	stats := DashboardStats{
		ByStatus:  make(map[string]int),
		ByCompany: make(map[string]int),
	}
	for _, app := range apps {
		stats.Total++
		stats.ByStatus[string(app.Status)]++
		stats.ByCompany[app.Company]++
		switch app.Status {
		case models.StatusInterviewPending:
			stats.InterviewPending++
		case models.StatusOfferReceived:
			stats.Offers++
		}
		if app.StaleAt(now) {
			stats.Stale++
		}
	}
	return stats
}

// FilterApplications applies the list view filters: a status membership
// set and a case-insensitive company substring, composed with AND.
// Empty filters restrict nothing.
func FilterApplications(apps []models.Application, statuses []models.Status, company string) []models.Application {
	company = strings.ToLower(strings.TrimSpace(company))
	out := make([]models.Application, 0, len(apps))
	for _, app := range apps {
		if len(statuses) > 0 && !containsStatus(statuses, app.Status) {
			continue
		}
		if company != "" && !strings.Contains(strings.ToLower(app.Company), company) {
			continue
		}
		out = append(out, app)
	}
	return out
}

func containsStatus(set []models.Status, s models.Status) bool {
	for _, candidate := range set {
		if candidate == s {
			return true
		}
	}
	return false
}
