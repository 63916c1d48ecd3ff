package database

import (
	"context"
	"os"
	"testing"
	"time"

	"go-glassdoor-scraper/internal/scraper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) *Repository {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	repo, err := ConnectDB(ctx, url)
	require.NoError(t, err)
	t.Cleanup(repo.Close)
	require.NoError(t, repo.EnsureSchema(ctx))
	return repo
}

func TestSaveJobs_Upserts(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	group := "test-" + time.Now().Format("20060102150405.000000")
	t.Cleanup(func() {
		repo.db.Exec(context.Background(), "DELETE FROM scraped_jobs WHERE group_name = $1", group)
	})

	jobs := []scraper.JobRecord{
		{Group: group, Link: "https://www.glassdoor.fr/job/1", Title: "Dev"},
		{Group: group, Link: "https://www.glassdoor.fr/job/2", Title: "Ops"},
	}
	require.NoError(t, repo.SaveJobs(ctx, jobs))
	require.NoError(t, repo.SaveJobs(ctx, jobs[:1]))

	n, err := repo.CountJobs(ctx, group)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSaveSalaries_Empty(t *testing.T) {
	repo := setupRepo(t)
	assert.NoError(t, repo.SaveSalaries(context.Background(), nil))
}
