// Package scrapertest provides an in-memory scraper.Fetcher for tests.
package scrapertest

import (
	"context"
	"fmt"
	"strings"

	"go-glassdoor-scraper/internal/scraper"

	"github.com/PuerkitoBio/goquery"
)

// Fetcher serves fixture HTML by URL and records every request in order.
// Unknown URLs fail like a 404 navigation.
type Fetcher struct {
	Pages    map[string]string
	Errors   map[string]error
	Requests []string
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		Pages:  make(map[string]string),
		Errors: make(map[string]error),
	}
}

// Handle registers the HTML served for url.
func (f *Fetcher) Handle(url, html string) *Fetcher {
	f.Pages[url] = html
	return f
}

// Fail makes every fetch of url return err.
func (f *Fetcher) Fail(url string, err error) *Fetcher {
	f.Errors[url] = err
	return f
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (scraper.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.Requests = append(f.Requests, url)

	if err, ok := f.Errors[url]; ok {
		return nil, err
	}
	body, ok := f.Pages[url]
	if !ok {
		return nil, fmt.Errorf("navigation to %s returned status 404", url)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	return &Page{doc: doc}, nil
}

// Page serves fixture HTML without a layout engine. Text returns the trimmed
// text content of the first match, so fixtures write out the line breaks a
// browser's innerText would produce.
type Page struct {
	doc *goquery.Document
}

func (p *Page) Document() (*goquery.Document, error) {
	return p.doc, nil
}

func (p *Page) Text(selector string) (string, bool, error) {
	sel := p.doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", false, nil
	}
	return strings.TrimSpace(sel.Text()), true, nil
}

// Count returns how many times url was requested.
func (f *Fetcher) Count(url string) int {
	n := 0
	for _, r := range f.Requests {
		if r == url {
			n++
		}
	}
	return n
}
