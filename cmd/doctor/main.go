// Doctor checks a group's setup without writing output: it loads the config and
// cookies, opens both listing pages and reports how many links the selectors
// match, and pings the database mirror when one is configured.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go-glassdoor-scraper/internal/browser"
	"go-glassdoor-scraper/internal/config"
	"go-glassdoor-scraper/internal/database"
	"go-glassdoor-scraper/internal/scraper/glassdoor"

	"github.com/playwright-community/playwright-go"
)

func main() {
	fmt.Println("🔍 Checking Glassdoor setup...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	fmt.Printf("✅ Group: %s\n", cfg.Group)
	fmt.Printf("   Jobs link: %s\n", cfg.JobsLink)
	fmt.Printf("   Salaries link: %s\n", cfg.SalariesLink)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if cfg.DatabaseURL != "" {
		checkDatabase(ctx, cfg)
	}

	var cookies []playwright.OptionalCookie
	if cfg.CookiesPath != "" {
		cookies, err = browser.LoadCookies(cfg.CookiesPath)
		if err != nil {
			log.Fatalf("Failed to load cookies: %v", err)
		}
		fmt.Printf("🍪 Loaded %d cookies\n", len(cookies))
	}

	pm, err := browser.NewPlaywright(cfg.IsHeadless())
	if err != nil {
		log.Fatalf("Failed to create Playwright: %v", err)
	}
	defer pm.Close()

	browserCtx, err := pm.NewContext(cookies)
	if err != nil {
		log.Fatalf("Failed to create context: %v", err)
	}
	page, err := browserCtx.NewPage()
	if err != nil {
		log.Fatalf("Failed to create page: %v", err)
	}

	opts := browser.FetcherOptions{NavTimeoutMs: cfg.NavTimeoutMs}
	if cfg.ScreenshotDir != "" {
		if opts.Screenshots, err = browser.NewScreenshotDebugger(cfg.ScreenshotDir); err != nil {
			log.Printf("Screenshots disabled: %v", err)
		}
	}
	fetcher := browser.NewPageFetcher(page, opts)

	for _, p := range []struct {
		name, url, selector string
	}{
		{"jobs", cfg.JobsLink, glassdoor.JobLinkSelector},
		{"salaries", cfg.SalariesLink, glassdoor.SalaryLinkSelector},
	} {
		if p.url == "" {
			fmt.Printf("⏭️  No %s link configured\n", p.name)
			continue
		}
		loaded, err := fetcher.Fetch(ctx, p.url)
		if err != nil {
			fmt.Printf("❌ %s: %v\n", p.name, err)
			continue
		}
		doc, err := loaded.Document()
		if err != nil {
			fmt.Printf("❌ %s: %v\n", p.name, err)
			continue
		}
		fmt.Printf("✅ %s: %d links match %q\n", p.name, doc.Find(p.selector).Length(), p.selector)
		if opts.Screenshots != nil {
			opts.Screenshots.CaptureAndLog(page, "doctor-"+p.name, "Setup check snapshot")
		}
	}
	fmt.Println("✨ Check complete!")
}

func checkDatabase(ctx context.Context, cfg *config.Config) {
	repo, err := database.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		fmt.Printf("❌ Database: %v\n", err)
		return
	}
	defer repo.Close()

	if err := repo.EnsureSchema(ctx); err != nil {
		fmt.Printf("❌ Database schema: %v\n", err)
		return
	}
	n, err := repo.CountJobs(ctx, cfg.Group)
	if err != nil {
		fmt.Printf("❌ Database: %v\n", err)
		return
	}
	fmt.Printf("🗄️ Database reachable, %d jobs mirrored for %s\n", n, cfg.Group)
}
