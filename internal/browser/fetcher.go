package browser

import (
	"context"
	"fmt"
	"strings"

	"go-glassdoor-scraper/internal/scraper"

	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"
	"golang.org/x/time/rate"
)

type FetcherOptions struct {
	NavTimeoutMs int
	// navigations per second, 0 means unlimited
	RateLimit  float64
	DelayMinMs int
	DelayMaxMs int
	// nil disables failure screenshots
	Screenshots *ScreenshotDebugger
}

// PageFetcher drives one playwright page for every navigation of a run. It is
// not safe for concurrent use.
type PageFetcher struct {
	page    playwright.Page
	limiter *rate.Limiter
	opts    FetcherOptions
}

func NewPageFetcher(page playwright.Page, opts FetcherOptions) *PageFetcher {
	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}
	if opts.NavTimeoutMs <= 0 {
		opts.NavTimeoutMs = 30000
	}
	return &PageFetcher{
		page:    page,
		limiter: rate.NewLimiter(limit, 1),
		opts:    opts,
	}
}

// Fetch navigates to url and returns a handle on the loaded page. Text reads
// go to the live DOM; Document snapshots the page on first use.
func (f *PageFetcher) Fetch(ctx context.Context, url string) (scraper.Page, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := f.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(float64(f.opts.NavTimeoutMs)),
	})
	if err != nil {
		f.capture(url, "Navigation failed")
		return nil, fmt.Errorf("navigate %s: %w", url, err)
	}
	if resp != nil && resp.Status() >= 400 {
		f.capture(url, fmt.Sprintf("Navigation returned status %d", resp.Status()))
		return nil, fmt.Errorf("navigation to %s returned status %d", url, resp.Status())
	}

	if err := RandomDelay(ctx, f.opts.DelayMinMs, f.opts.DelayMaxMs); err != nil {
		return nil, err
	}
	return &livePage{page: f.page, url: url, timeout: float64(f.opts.NavTimeoutMs)}, nil
}

type livePage struct {
	page    playwright.Page
	url     string
	timeout float64
	doc     *goquery.Document
}

func (p *livePage) Document() (*goquery.Document, error) {
	if p.doc != nil {
		return p.doc, nil
	}
	content, err := p.page.Content()
	if err != nil {
		return nil, fmt.Errorf("read content of %s: %w", p.url, err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", p.url, err)
	}
	p.doc = doc
	return doc, nil
}

func (p *livePage) Text(selector string) (string, bool, error) {
	loc := p.page.Locator(selector)
	n, err := loc.Count()
	if err != nil {
		return "", false, fmt.Errorf("count %s: %w", selector, err)
	}
	if n == 0 {
		return "", false, nil
	}
	text, err := loc.First().InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(p.timeout),
	})
	if err != nil {
		return "", true, fmt.Errorf("read %s: %w", selector, err)
	}
	return text, true, nil
}

func (f *PageFetcher) capture(url, message string) {
	if f.opts.Screenshots == nil {
		return
	}
	f.opts.Screenshots.CaptureAndLog(f.page, url, fmt.Sprintf("%s: %s", message, url))
}
