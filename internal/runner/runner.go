// Run the collectors in order and persist what they gather.

package runner

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go-glassdoor-scraper/internal/config"
	"go-glassdoor-scraper/internal/scraper"
	"go-glassdoor-scraper/internal/scraper/glassdoor"
	"go-glassdoor-scraper/internal/storage"
)

// Notifier receives the end-of-run status message and fatal run errors.
type Notifier interface {
	SendStatus(message string) error
	SendError(err error) error
}

// Mirror receives each stage's newly collected records after the JSON file
// has been written.
type Mirror interface {
	SaveJobs(ctx context.Context, jobs []scraper.JobRecord) error
	SaveSalaries(ctx context.Context, salaries []scraper.SalaryRecord) error
}

type Runner struct {
	cfg      *config.Config
	store    *storage.Store
	scraper  *glassdoor.Scraper
	notifier Notifier
	mirror   Mirror
}

type Option func(*Runner)

func WithNotifier(n Notifier) Option {
	return func(r *Runner) { r.notifier = n }
}

func WithMirror(m Mirror) Option {
	return func(r *Runner) { r.mirror = m }
}

func New(cfg *config.Config, store *storage.Store, opts ...Option) *Runner {
	r := &Runner{
		cfg:     cfg,
		store:   store,
		scraper: glassdoor.NewScraper(cfg),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Prepare creates the group output directory and locks it for this run. It
// runs before any browser work so the directory exists whatever happens next.
func (r *Runner) Prepare() (unlock func() error, err error) {
	if err := r.store.EnsureGroup(r.cfg.Group); err != nil {
		return nil, err
	}
	return r.store.Lock(r.cfg.Group)
}

// Run executes the job stage then the salary stage with f as the shared page.
// Stage-level configuration errors are recorded in the summary and do not
// stop the other stage; persistence errors and cancellation end the run.
func (r *Runner) Run(ctx context.Context, f scraper.Fetcher) (*Summary, error) {
	group := r.cfg.Group
	summary := &Summary{Group: group}

	existingJobs := storage.Load[scraper.JobRecord](r.store, group, storage.JobsFile)
	jobs, jobsErr := r.scraper.CollectJobs(ctx, f)
	var mirrorJobs func(context.Context, []scraper.JobRecord) error
	if r.mirror != nil {
		mirrorJobs = r.mirror.SaveJobs
	}
	stage, err := persist(ctx, r, storage.JobsFile, existingJobs, jobs, jobsErr, mirrorJobs)
	summary.Jobs = stage
	if err != nil {
		return summary, err
	}
	if ctx.Err() != nil {
		return summary, ctx.Err()
	}

	existingSalaries := storage.Load[scraper.SalaryRecord](r.store, group, storage.SalariesFile)
	salaries, salariesErr := r.scraper.CollectSalaries(ctx, existingSalaries, f)
	var mirrorSalaries func(context.Context, []scraper.SalaryRecord) error
	if r.mirror != nil {
		mirrorSalaries = r.mirror.SaveSalaries
	}
	stage, err = persist(ctx, r, storage.SalariesFile, existingSalaries, salaries, salariesErr, mirrorSalaries)
	summary.Salaries = stage
	if err != nil {
		return summary, err
	}
	return summary, ctx.Err()
}

// persist merges one stage's output into its file and mirrors the new
// records. With partial persistence disabled, a stage that failed anywhere
// contributes nothing.
func persist[T any](ctx context.Context, r *Runner, name string, existing []T, res scraper.Result[T], stageErr error, mirror func(context.Context, []T) error) (StageSummary, error) {
	group := r.cfg.Group
	stage := StageSummary{
		Existing:  len(existing),
		Collected: len(res.Records),
		Failures:  res.Failures,
		Err:       stageErr,
	}
	if stageErr != nil {
		log.Printf("❌ %s %s: %v", group, name, stageErr)
	}

	fresh := res.Records
	if !r.cfg.ShouldPersistPartial() && (stageErr != nil || res.Failed()) {
		log.Printf("🚫 %s %s: %d failures, discarding %d collected records", group, name, len(res.Failures), len(res.Records))
		fresh = nil
	}
	stage.Persisted = len(fresh)

	if err := storage.Append(r.store, group, name, existing, fresh); err != nil {
		return stage, fmt.Errorf("persist %s: %w", name, err)
	}
	log.Printf("💾 %s/%s: %d existing + %d new", group, name, len(existing), len(fresh))

	if mirror != nil && len(fresh) > 0 {
		if err := mirror(ctx, fresh); err != nil {
			log.Printf("⚠️ Failed to mirror %s: %v", name, err)
		}
	}
	return stage, nil
}

// Notify logs the summary and forwards it to the notifier, if any.
func (r *Runner) Notify(summary *Summary) {
	msg := summary.String()
	log.Println(msg)

	if r.notifier == nil {
		return
	}
	if err := r.notifier.SendStatus(msg); err != nil {
		log.Printf("⚠️ Failed to send status to Telegram: %v", err)
	}
}

// ReportFailure forwards an error that ended the run to the notifier.
// Cancellation is an operator decision and is not reported.
func (r *Runner) ReportFailure(runErr error) {
	if runErr == nil || errors.Is(runErr, context.Canceled) || r.notifier == nil {
		return
	}
	if err := r.notifier.SendError(fmt.Errorf("%s: %w", r.cfg.Group, runErr)); err != nil {
		log.Printf("⚠️ Failed to send error to Telegram: %v", err)
	}
}
