package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go-glassdoor-scraper/internal/config"
	"go-glassdoor-scraper/internal/scraper"
	"go-glassdoor-scraper/internal/scraper/glassdoor"
	"go-glassdoor-scraper/internal/scraper/scrapertest"
	"go-glassdoor-scraper/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	site         = "https://www.glassdoor.fr"
	jobsLink     = site + "/Emploi/acme-emplois.htm"
	salariesLink = site + "/Salaires/acme-Salaires-E12345.htm"
)

type fakeNotifier struct {
	messages []string
	errors   []error
	err      error
}

func (n *fakeNotifier) SendStatus(message string) error {
	n.messages = append(n.messages, message)
	return n.err
}

func (n *fakeNotifier) SendError(err error) error {
	n.errors = append(n.errors, err)
	return n.err
}

type fakeMirror struct {
	jobs     []scraper.JobRecord
	salaries []scraper.SalaryRecord
}

func (m *fakeMirror) SaveJobs(_ context.Context, jobs []scraper.JobRecord) error {
	m.jobs = append(m.jobs, jobs...)
	return nil
}

func (m *fakeMirror) SaveSalaries(_ context.Context, salaries []scraper.SalaryRecord) error {
	m.salaries = append(m.salaries, salaries...)
	return errors.New("mirror down")
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	partial := true
	return &config.Config{
		Group:          "Acme",
		JobsLink:       jobsLink,
		SalariesLink:   salariesLink,
		OutputDir:      t.TempDir(),
		BaseURL:        site,
		PersistPartial: &partial,
	}
}

func fixtureSite() *scrapertest.Fetcher {
	return scrapertest.NewFetcher().
		Handle(jobsLink, scrapertest.JobListingHTML("/job/1", "/job/2", "/job/1")).
		Handle(site+"/job/1", scrapertest.JobDetailHTML("Développeur Go", "Paris", "Acme", "4,1")).
		Handle(site+"/job/2", scrapertest.JobDetailHTML("Data Engineer", "Lyon", "Acme", "4,1")).
		Handle(salariesLink, scrapertest.SalaryListingHTML("/Salaire/dev.htm")).
		Handle(site+"/Salaire/dev.htm", scrapertest.SalaryDetailHTML("Salaires d'un Développeur chez Acme", "48 000 €")).
		Handle(glassdoor.PageURL(salariesLink, 1), scrapertest.SalaryListingHTML())
}

func prepare(t *testing.T, r *Runner) {
	t.Helper()
	unlock, err := r.Prepare()
	require.NoError(t, err)
	t.Cleanup(func() { unlock() })
}

func TestRun_EndToEnd_NoCrossRunDedup(t *testing.T) {
	cfg := testConfig(t)
	store := storage.New(cfg.OutputDir)

	r := New(cfg, store)
	prepare(t, r)

	summary, err := r.Run(context.Background(), fixtureSite())
	require.NoError(t, err)

	jobs := storage.Load[scraper.JobRecord](store, "Acme", storage.JobsFile)
	require.Len(t, jobs, 2)
	for _, j := range jobs {
		assert.Equal(t, "Acme", j.Group)
	}
	assert.Equal(t, site+"/job/1", jobs[0].Link)
	assert.Equal(t, 2, summary.Jobs.Collected)
	assert.Equal(t, 0, summary.Jobs.Existing)

	salaries := storage.Load[scraper.SalaryRecord](store, "Acme", storage.SalariesFile)
	require.Len(t, salaries, 1)
	assert.Equal(t, "Développeur", salaries[0].Title)

	summary, err = r.Run(context.Background(), fixtureSite())
	require.NoError(t, err)

	jobs = storage.Load[scraper.JobRecord](store, "Acme", storage.JobsFile)
	assert.Len(t, jobs, 4)
	assert.Equal(t, jobs[0], jobs[2])
	assert.Equal(t, 2, summary.Jobs.Existing)
	assert.Len(t, storage.Load[scraper.SalaryRecord](store, "Acme", storage.SalariesFile), 2)
}

func TestRun_MissingJobsLinkStillRunsSalaries(t *testing.T) {
	cfg := testConfig(t)
	cfg.JobsLink = ""
	store := storage.New(cfg.OutputDir)
	r := New(cfg, store)
	prepare(t, r)

	summary, err := r.Run(context.Background(), fixtureSite())
	require.NoError(t, err)

	assert.ErrorIs(t, summary.Jobs.Err, glassdoor.ErrMissingJobsLink)
	assert.Equal(t, 1, summary.Salaries.Persisted)

	data, err := os.ReadFile(filepath.Join(store.GroupDir("Acme"), storage.JobsFile))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestRun_PartialPersistence(t *testing.T) {
	failingSite := func() *scrapertest.Fetcher {
		return fixtureSite().Fail(site+"/job/2", errors.New("timeout"))
	}

	t.Run("enabled keeps collected records", func(t *testing.T) {
		cfg := testConfig(t)
		store := storage.New(cfg.OutputDir)
		r := New(cfg, store)
		prepare(t, r)

		summary, err := r.Run(context.Background(), failingSite())
		require.NoError(t, err)

		assert.Equal(t, 1, summary.Jobs.Persisted)
		assert.Len(t, summary.Jobs.Failures, 1)
		assert.Len(t, storage.Load[scraper.JobRecord](store, "Acme", storage.JobsFile), 1)
	})

	t.Run("disabled discards the failed stage only", func(t *testing.T) {
		cfg := testConfig(t)
		off := false
		cfg.PersistPartial = &off
		store := storage.New(cfg.OutputDir)
		r := New(cfg, store)
		prepare(t, r)

		summary, err := r.Run(context.Background(), failingSite())
		require.NoError(t, err)

		assert.Equal(t, 1, summary.Jobs.Collected)
		assert.Equal(t, 0, summary.Jobs.Persisted)
		assert.Empty(t, storage.Load[scraper.JobRecord](store, "Acme", storage.JobsFile))
		assert.Len(t, storage.Load[scraper.SalaryRecord](store, "Acme", storage.SalariesFile), 1)
	})
}

func TestRun_Cancelled(t *testing.T) {
	cfg := testConfig(t)
	store := storage.New(cfg.OutputDir)
	r := New(cfg, store)
	prepare(t, r)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := fixtureSite()
	_, err := r.Run(ctx, f)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.Requests)
	_, statErr := os.Stat(filepath.Join(store.GroupDir("Acme"), storage.SalariesFile))
	assert.True(t, os.IsNotExist(statErr), "salary stage never started")
}

func TestRun_MirrorAndNotify(t *testing.T) {
	cfg := testConfig(t)
	store := storage.New(cfg.OutputDir)
	mirror := &fakeMirror{}
	notifier := &fakeNotifier{err: errors.New("telegram down")}
	r := New(cfg, store, WithMirror(mirror), WithNotifier(notifier))
	prepare(t, r)

	summary, err := r.Run(context.Background(), fixtureSite())
	require.NoError(t, err, "mirror failures are not fatal")

	assert.Len(t, mirror.jobs, 2)
	assert.Len(t, mirror.salaries, 1)

	r.Notify(summary)
	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "Acme run finished")
	assert.Contains(t, notifier.messages[0], "Jobs: 2 collected, 2 saved (0 already stored), 0 failures")
	assert.Empty(t, notifier.errors)
}

func TestReportFailure(t *testing.T) {
	cfg := testConfig(t)
	notifier := &fakeNotifier{}
	r := New(cfg, storage.New(cfg.OutputDir), WithNotifier(notifier))

	r.ReportFailure(nil)
	r.ReportFailure(context.Canceled)
	r.ReportFailure(storage.ErrLocked)

	require.Len(t, notifier.errors, 1)
	assert.ErrorIs(t, notifier.errors[0], storage.ErrLocked)
	assert.Contains(t, notifier.errors[0].Error(), "Acme")
	assert.Empty(t, notifier.messages)

	New(cfg, storage.New(cfg.OutputDir)).ReportFailure(storage.ErrLocked)
}

func TestPrepare_CreatesDirAndLocks(t *testing.T) {
	cfg := testConfig(t)
	store := storage.New(cfg.OutputDir)

	unlock, err := New(cfg, store).Prepare()
	require.NoError(t, err)
	defer unlock()

	info, err := os.Stat(store.GroupDir("Acme"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = New(cfg, store).Prepare()
	assert.ErrorIs(t, err, storage.ErrLocked)
}

func TestSummary_String(t *testing.T) {
	failures := make([]scraper.Failure, 7)
	for i := range failures {
		failures[i] = scraper.Failure{Kind: scraper.FailureDetail, URL: "https://x", Err: errors.New("boom")}
	}
	s := &Summary{
		Group:    "Acme",
		Jobs:     StageSummary{Collected: 3, Persisted: 3, Existing: 1},
		Salaries: StageSummary{Failures: failures, Err: glassdoor.ErrMissingSalariesLink},
	}

	out := s.String()
	assert.Contains(t, out, "Jobs: 3 collected, 3 saved (1 already stored), 0 failures")
	assert.Contains(t, out, "Salaries: 0 collected, 0 saved (0 already stored), 7 failures")
	assert.Contains(t, out, "SALARIES_LINK")
	assert.Contains(t, out, "… 2 more")
}
