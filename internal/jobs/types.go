package jobs

import (
	"time"

	"github.com/kalustehaku/server/internal/pipeline"
)

// RunRequest describes one scrape job. An empty Companies list means
// every registered company; an explicit URLs list is only valid with a
// single company.
type RunRequest struct {
	Companies      []string
	URLs           []string
	ProductsPerURL int
	IsTestData     bool
}

// CompanyReport is the outcome of one company within a run
type CompanyReport struct {
	Company    string               `json:"company"`
	Result     *pipeline.SyncResult `json:"result,omitempty"`
	Error      string               `json:"error,omitempty"`
	StartedAt  time.Time            `json:"startedAt"`
	FinishedAt time.Time            `json:"finishedAt"`
}

// Status is a point-in-time view of the service
type Status struct {
	Running    bool            `json:"running"`
	StartedAt  *time.Time      `json:"startedAt,omitempty"`
	FinishedAt *time.Time      `json:"finishedAt,omitempty"`
	Companies  []string        `json:"companies,omitempty"`
	LastRun    []CompanyReport `json:"lastRun,omitempty"`
}

// event types pushed to status stream subscribers
const (
	EventRunStarted      = "run_started"
	EventCompanyStarted  = "company_started"
	EventCompanyFinished = "company_finished"
	EventRunFinished     = "run_finished"
)

// Event is one progress notification on the status stream
type Event struct {
	Type      string         `json:"type"`
	Company   string         `json:"company,omitempty"`
	Report    *CompanyReport `json:"report,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}
