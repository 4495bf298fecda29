package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kalustehaku/server/internal/llm"
	"github.com/kalustehaku/server/internal/logger"
	"github.com/kalustehaku/server/internal/pipeline"
	"github.com/kalustehaku/server/internal/scraper"
)

// ErrRunInProgress is returned when a run is requested while another is
// still active. Runs never overlap: concurrent scrapes of the same site
// would race on the reconciliation pass.
var ErrRunInProgress = errors.New("a scrape run is already in progress")

// Service owns scrape job execution: one run at a time, per-company
// sequencing inside a run, and a status stream for observers
type Service struct {
	store pipeline.Store
	model llm.LLM
	env   *scraper.Env

	mu         sync.Mutex
	running    bool
	startedAt  time.Time
	finishedAt *time.Time
	companies  []string
	lastRun    []CompanyReport

	subscribers map[chan Event]struct{}
}

func NewService(store pipeline.Store, model llm.LLM, env *scraper.Env) *Service {
	return &Service{
		store:       store,
		model:       model,
		env:         env,
		subscribers: make(map[chan Event]struct{}),
	}
}

// Run validates the request, acquires the run slot and executes the job,
// blocking until every company finishes. The per-company reports are
// returned even when individual companies failed. A second caller gets
// ErrRunInProgress while a run is active.
func (s *Service) Run(ctx context.Context, req RunRequest) ([]CompanyReport, error) {
	companies := req.Companies
	if len(companies) == 0 {
		companies = scraper.Companies()
	}

	if len(req.URLs) > 0 && len(companies) != 1 {
		return nil, fmt.Errorf("explicit URLs require exactly one company")
	}

	for _, company := range companies {
		if _, err := scraper.LookupSite(company); err != nil {
			return nil, err
		}
	}

	if !s.tryAcquire(companies) {
		return nil, ErrRunInProgress
	}

	return s.execute(ctx, req, companies), nil
}

// RunAll executes a full scrape of every company. Used by the scheduler.
func (s *Service) RunAll(ctx context.Context) error {
	_, err := s.Run(ctx, RunRequest{})
	return err
}

// Status reports whether a run is active and the last run's outcome
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := Status{
		Running:    s.running,
		FinishedAt: s.finishedAt,
		Companies:  append([]string(nil), s.companies...),
		LastRun:    append([]CompanyReport(nil), s.lastRun...),
	}

	if s.running || s.finishedAt != nil {
		startedAt := s.startedAt
		status.StartedAt = &startedAt
	}

	return status
}

// Subscribe registers a status stream observer. The returned cancel
// function must be called when the observer goes away.
func (s *Service) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		delete(s.subscribers, ch)
		s.mu.Unlock()
	}

	return ch, cancel
}

func (s *Service) tryAcquire(companies []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return false
	}

	s.running = true
	s.startedAt = time.Now()
	s.finishedAt = nil
	s.companies = append([]string(nil), companies...)

	return true
}

func (s *Service) release(reports []CompanyReport) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.running = false
	s.finishedAt = &now
	s.lastRun = reports
}

// broadcast never blocks: a slow observer misses events rather than
// stalling the run
func (s *Service) broadcast(event Event) {
	event.Timestamp = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for ch := range s.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

func (s *Service) execute(ctx context.Context, req RunRequest, companies []string) []CompanyReport {
	logger.Info("scrape run started", "companies", companies)
	s.broadcast(Event{Type: EventRunStarted})

	reports := make([]CompanyReport, 0, len(companies))

	// the slot is released on every exit path, a panicking company run
	// must not leave the service stuck in running state
	defer func() {
		s.release(reports)
		s.broadcast(Event{Type: EventRunFinished})
	}()

	for _, company := range companies {
		s.broadcast(Event{Type: EventCompanyStarted, Company: company})

		report := s.runCompany(ctx, req, company)
		reports = append(reports, report)

		s.broadcast(Event{Type: EventCompanyFinished, Company: company, Report: &report})
	}

	logger.Info("scrape run finished", "companies", len(companies))

	return reports
}

func (s *Service) runCompany(ctx context.Context, req RunRequest, company string) CompanyReport {
	report := CompanyReport{
		Company:   company,
		StartedAt: time.Now(),
	}

	defer func() { report.FinishedAt = time.Now() }()

	site, err := scraper.LookupSite(company)
	if err != nil {
		report.Error = err.Error()
		return report
	}

	urls := req.URLs
	if len(urls) == 0 {
		urls = scraper.DefaultListingURLs(company)
	}

	if len(urls) == 0 {
		logger.Info("no listing URLs configured, skipping", "company", company)
		return report
	}

	p := pipeline.New(s.store, s.model, scraper.Bind(site, s.env))

	result, err := p.RunWithSync(ctx, pipeline.Options{
		URLs:           urls,
		ProductsPerURL: req.ProductsPerURL,
		Company:        company,
		IsTestData:     req.IsTestData,
	})

	if err != nil {
		logger.ErrorErr(err, "company scrape failed", "company", company)
		report.Error = err.Error()
		return report
	}

	report.Result = result

	return report
}
