// Records produced by the collectors and the page handle they share.

package scraper

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// JobRecord is one job posting. Link is the uniqueness key.
type JobRecord struct {
	Group    string `json:"group"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Link     string `json:"link"`
	Title    string `json:"title"`
	Score    string `json:"score"`
}

// SalaryRecord is one salary entry. Link is the uniqueness key.
type SalaryRecord struct {
	Group  string `json:"group"`
	Link   string `json:"link"`
	Title  string `json:"title"`
	Salary string `json:"salary"`
}

func (j JobRecord) Key() string    { return j.Link }
func (s SalaryRecord) Key() string { return s.Link }

// Page is one loaded page. It stays valid until the next Fetch on the same
// Fetcher.
type Page interface {
	// Document returns a snapshot of the rendered DOM for attribute scans.
	Document() (*goquery.Document, error)
	// Text returns the rendered innerText of the first element matching
	// selector. found is false when nothing matches.
	Text(selector string) (text string, found bool, err error)
}

// Fetcher navigates the shared browser page to url. Calls are strictly
// sequential.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Page, error)
}

type FailureKind string

const (
	FailureListing FailureKind = "listing"
	FailureDetail  FailureKind = "detail"
	FailureField   FailureKind = "field"
)

// Failure describes one unit of work that did not complete.
type Failure struct {
	Kind  FailureKind
	URL   string
	Field string
	Err   error
}

func (f Failure) Error() string {
	if f.Field != "" {
		return fmt.Sprintf("%s %s (%s): %v", f.Kind, f.URL, f.Field, f.Err)
	}
	return fmt.Sprintf("%s %s: %v", f.Kind, f.URL, f.Err)
}

func (f Failure) Unwrap() error { return f.Err }

// Result carries the records a collector produced together with every item
// that failed along the way.
type Result[T any] struct {
	Records  []T
	Failures []Failure
}

func (r *Result[T]) Merge(other Result[T]) {
	r.Records = append(r.Records, other.Records...)
	r.Failures = append(r.Failures, other.Failures...)
}

// Failed reports whether any unit of work failed, field misses included.
func (r Result[T]) Failed() bool {
	return len(r.Failures) > 0
}
