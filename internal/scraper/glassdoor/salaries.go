package glassdoor

import (
	"context"
	"log"

	"go-glassdoor-scraper/internal/dedup"
	"go-glassdoor-scraper/internal/scraper"
)

// CollectSalaryPage extracts the salary entries linked from one listing page.
// links is the number of salary links the listing carried, before any detail
// page is read; it is 0 when the listing itself failed.
func (s *Scraper) CollectSalaryPage(ctx context.Context, f scraper.Fetcher, pageURL string) (res scraper.Result[scraper.SalaryRecord], links int, err error) {
	hrefs, err := s.listingLinks(ctx, f, pageURL, SalaryLinkSelector)
	if err != nil {
		if ctx.Err() != nil {
			return res, 0, ctx.Err()
		}
		log.Printf("⚠️ %s %v", pageURL, err)
		res.Failures = append(res.Failures, scraper.Failure{Kind: scraper.FailureListing, URL: pageURL, Err: err})
		return res, 0, nil
	}

	var stubs []scraper.SalaryRecord
	for _, link := range hrefs {
		stubs = append(stubs, scraper.SalaryRecord{Group: s.group, Link: link})
	}
	stubs = dedup.UniqueBy(stubs, scraper.SalaryRecord.Key)
	links = len(stubs)

	cleanTitle := func(raw string) string { return cleanSalaryTitle(raw, s.group) }

	for _, salary := range stubs {
		if err := ctx.Err(); err != nil {
			return res, links, err
		}

		detail, err := f.Fetch(ctx, salary.Link)
		if err != nil {
			if ctx.Err() != nil {
				return res, links, ctx.Err()
			}
			log.Printf("    ⚠️ %s %v", salary.Link, err)
			res.Failures = append(res.Failures, scraper.Failure{Kind: scraper.FailureDetail, URL: salary.Link, Err: err})
			continue
		}

		res.Failures = append(res.Failures, readFields(detail, salary.Link, []field{
			{name: "title", selector: SalaryTitleSelector, dst: &salary.Title, clean: cleanTitle},
			{name: "salary", selector: SalaryAmountSelector, dst: &salary.Salary},
		})...)
		res.Records = append(res.Records, salary)
	}
	return res, links, nil
}

// CollectSalaries walks the salary listing pages from the configured base URL
// until a page lists no salary links or MaxSalaryPages pages have been read.
// Page URLs already present among the persisted links are skipped.
func (s *Scraper) CollectSalaries(ctx context.Context, existing []scraper.SalaryRecord, f scraper.Fetcher) (scraper.Result[scraper.SalaryRecord], error) {
	var all scraper.Result[scraper.SalaryRecord]
	if s.salariesLink == "" {
		return all, ErrMissingSalariesLink
	}

	fetched := dedup.LinksOf(existing)
	log.Printf("💰 [%s] Scanning salaries from %s", s.group, s.salariesLink)

	for index := 0; index < MaxSalaryPages; index++ {
		pageURL := PageURL(s.salariesLink, index)
		if fetched.Has(pageURL) {
			log.Printf("    ⏭️ Page %d already fetched, skipping", index+1)
			continue
		}

		page, links, err := s.CollectSalaryPage(ctx, f, pageURL)
		all.Merge(page)
		if err != nil {
			return all, err
		}
		if links == 0 {
			log.Printf("    🏁 Page %d listed no salaries, stopping", index+1)
			break
		}
		log.Printf("    📄 Page %d: %d salaries (running total: %d)", index+1, len(page.Records), len(all.Records))
	}
	return all, nil
}
