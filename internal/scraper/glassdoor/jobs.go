package glassdoor

import (
	"context"
	"log"

	"go-glassdoor-scraper/internal/dedup"
	"go-glassdoor-scraper/internal/scraper"
)

// CollectJobs scans the configured job listing page and visits every unique
// job link to read its detail fields. A job whose detail page cannot be
// loaded is dropped and reported; the others are still returned.
func (s *Scraper) CollectJobs(ctx context.Context, f scraper.Fetcher) (scraper.Result[scraper.JobRecord], error) {
	var res scraper.Result[scraper.JobRecord]
	if s.jobsLink == "" {
		return res, ErrMissingJobsLink
	}

	log.Printf("📋 [%s] Scanning job listing: %s", s.group, s.jobsLink)
	links, err := s.listingLinks(ctx, f, s.jobsLink, JobLinkSelector)
	if err != nil {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		log.Printf("⚠️ %s job listing error: %v", s.group, err)
		res.Failures = append(res.Failures, scraper.Failure{Kind: scraper.FailureListing, URL: s.jobsLink, Err: err})
		return res, nil
	}

	var stubs []scraper.JobRecord
	for _, link := range links {
		stubs = append(stubs, scraper.JobRecord{Group: s.group, Link: link})
	}
	stubs = dedup.UniqueBy(stubs, scraper.JobRecord.Key)
	log.Printf("    📦 Found %d unique job links", len(stubs))

	for i, job := range stubs {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		detail, err := f.Fetch(ctx, job.Link)
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			log.Printf("    ⚠️ [%d/%d] %s: %v", i+1, len(stubs), job.Link, err)
			res.Failures = append(res.Failures, scraper.Failure{Kind: scraper.FailureDetail, URL: job.Link, Err: err})
			continue
		}

		res.Failures = append(res.Failures, readFields(detail, job.Link, []field{
			{name: "title", selector: JobTitleSelector, dst: &job.Title},
			{name: "location", selector: JobLocationSelector, dst: &job.Location},
			{name: "company", selector: JobEmployerSelector, dst: &job.Company, clean: firstLine},
			{name: "score", selector: JobRatingSelector, dst: &job.Score},
		})...)

		res.Records = append(res.Records, job)
		log.Printf("      ✅ [%d/%d] %s - %s", i+1, len(stubs), job.Title, job.Company)
	}
	return res, nil
}
