package database

import (
	"context"
	"fmt"
	"time"

	"go-glassdoor-scraper/internal/scraper"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository mirrors scraped records into Postgres. The JSON files stay the
// source of truth; rows are keyed by (group_name, link) so repeated runs
// update in place instead of piling up duplicates.
type Repository struct {
	db *pgxpool.Pool
}

func ConnectDB(ctx context.Context, connString string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 4
	config.MinConns = 1
	config.MaxConnLifetime = time.Hour

	// Transaction-mode poolers reject prepared statements.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &Repository{db: pool}, nil
}

func (r *Repository) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS scraped_jobs (
	group_name TEXT NOT NULL,
	link       TEXT NOT NULL,
	title      TEXT NOT NULL DEFAULT '',
	company    TEXT NOT NULL DEFAULT '',
	location   TEXT NOT NULL DEFAULT '',
	score      TEXT NOT NULL DEFAULT '',
	scraped_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (group_name, link)
);
CREATE TABLE IF NOT EXISTS scraped_salaries (
	group_name TEXT NOT NULL,
	link       TEXT NOT NULL,
	title      TEXT NOT NULL DEFAULT '',
	salary     TEXT NOT NULL DEFAULT '',
	scraped_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (group_name, link)
);`

// EnsureSchema creates the mirror tables when they are missing.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const upsertJob = `
	INSERT INTO scraped_jobs (group_name, link, title, company, location, score, scraped_at)
	VALUES ($1, $2, $3, $4, $5, $6, now())
	ON CONFLICT (group_name, link) DO UPDATE SET
		title = EXCLUDED.title,
		company = EXCLUDED.company,
		location = EXCLUDED.location,
		score = EXCLUDED.score,
		scraped_at = EXCLUDED.scraped_at`

const upsertSalary = `
	INSERT INTO scraped_salaries (group_name, link, title, salary, scraped_at)
	VALUES ($1, $2, $3, $4, now())
	ON CONFLICT (group_name, link) DO UPDATE SET
		title = EXCLUDED.title,
		salary = EXCLUDED.salary,
		scraped_at = EXCLUDED.scraped_at`

func (r *Repository) SaveJobs(ctx context.Context, jobs []scraper.JobRecord) error {
	batch := &pgx.Batch{}
	for _, j := range jobs {
		batch.Queue(upsertJob, j.Group, j.Link, j.Title, j.Company, j.Location, j.Score)
	}
	return r.sendBatch(ctx, batch, "jobs")
}

func (r *Repository) SaveSalaries(ctx context.Context, salaries []scraper.SalaryRecord) error {
	batch := &pgx.Batch{}
	for _, s := range salaries {
		batch.Queue(upsertSalary, s.Group, s.Link, s.Title, s.Salary)
	}
	return r.sendBatch(ctx, batch, "salaries")
}

func (r *Repository) sendBatch(ctx context.Context, batch *pgx.Batch, what string) error {
	if batch.Len() == 0 {
		return nil
	}
	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to save %s: %w", what, err)
	}
	return nil
}

// CountJobs returns how many job rows are stored for group.
func (r *Repository) CountJobs(ctx context.Context, group string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, "SELECT count(*) FROM scraped_jobs WHERE group_name = $1", group).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return n, nil
}
