package glassdoor

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go-glassdoor-scraper/internal/config"
	"go-glassdoor-scraper/internal/scraper"
)

// MaxSalaryPages bounds salary pagination.
const MaxSalaryPages = 300

var (
	ErrMissingJobsLink     = errors.New("you need to specify JOBS_LINK environment variable")
	ErrMissingSalariesLink = errors.New("you need to specify SALARIES_LINK environment variable")
	ErrFieldNotFound       = errors.New("selector matched nothing")
)

type Scraper struct {
	group        string
	baseURL      string
	jobsLink     string
	salariesLink string
}

func NewScraper(cfg *config.Config) *Scraper {
	return &Scraper{
		group:        cfg.Group,
		baseURL:      cfg.BaseURL,
		jobsLink:     cfg.JobsLink,
		salariesLink: cfg.SalariesLink,
	}
}

// listingLinks loads a listing page and returns the absolute
// link of every anchor matching selector.
func (s *Scraper) listingLinks(ctx context.Context, f scraper.Fetcher, url, selector string) ([]string, error) {
	page, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	doc, err := page.Document()
	if err != nil {
		return nil, err
	}
	return anchorLinks(doc, selector, s.baseURL), nil
}

// field binds one detail-page selector to the record field it fills.
type field struct {
	name     string
	selector string
	dst      *string
	clean    func(string) string
}

// readFields fills every field from page. A field whose selector matches
// nothing, or whose text cannot be read, is left empty and reported as a
// failure.
func readFields(page scraper.Page, link string, fields []field) []scraper.Failure {
	var failures []scraper.Failure
	for _, f := range fields {
		raw, found, err := page.Text(f.selector)
		if err == nil && !found {
			err = fmt.Errorf("%s: %w", f.selector, ErrFieldNotFound)
		}
		if err != nil {
			failures = append(failures, scraper.Failure{
				Kind:  scraper.FailureField,
				URL:   link,
				Field: f.name,
				Err:   err,
			})
			continue
		}
		text := cleanText(raw)
		if f.clean != nil {
			text = f.clean(text)
		}
		*f.dst = text
	}
	for _, fl := range failures {
		log.Printf("      ⚠️ %v", fl)
	}
	return failures
}
