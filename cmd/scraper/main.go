package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-glassdoor-scraper/internal/browser"
	"go-glassdoor-scraper/internal/config"
	"go-glassdoor-scraper/internal/database"
	"go-glassdoor-scraper/internal/logging"
	"go-glassdoor-scraper/internal/runner"
	"go-glassdoor-scraper/internal/storage"
	"go-glassdoor-scraper/internal/telegram"

	"github.com/playwright-community/playwright-go"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ %v", err)
		os.Exit(1)
	}
}

// run owns every resource so deferred cleanup happens before the process
// exits, including on failure.
func run() (err error) {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logCloser, err := logging.Setup(cfg.LogFile)
	if err != nil {
		return err
	}
	defer logCloser.Close()
	log.Printf("🔧 Config loaded. Group: %s", cfg.Group)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.RunTimeout)
		defer cancel()
	}

	var opts []runner.Option
	if cfg.TelegramEnabled() {
		bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("⚠️ Failed to init Telegram Bot: %v. Continuing without it.", err)
		} else {
			log.Println("🤖 Telegram Bot initialized.")
			opts = append(opts, runner.WithNotifier(bot))
		}
	}
	if cfg.DatabaseURL != "" {
		repo, err := connectMirror(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Printf("⚠️ Database mirror disabled: %v", err)
		} else {
			defer repo.Close()
			opts = append(opts, runner.WithMirror(repo))
		}
	}

	r := runner.New(cfg, storage.New(cfg.OutputDir), opts...)
	defer func() { r.ReportFailure(err) }()

	unlock, err := r.Prepare()
	if err != nil {
		return err
	}
	defer unlock()

	log.Println("🚀 Starting Glassdoor scraper...")

	pwManager, err := browser.NewPlaywright(cfg.IsHeadless())
	if err != nil {
		return err
	}
	defer func() {
		if err := pwManager.Close(); err != nil {
			log.Printf("⚠️ Failed to close browser: %v", err)
		}
	}()

	var cookies []playwright.OptionalCookie
	if cfg.CookiesPath != "" {
		cookies, err = browser.LoadCookies(cfg.CookiesPath)
		if err != nil {
			log.Printf("⚠️ Could not load cookies: %v. Continuing.", err)
		} else {
			log.Printf("🍪 Loaded %d cookies", len(cookies))
		}
	}

	browserCtx, err := pwManager.NewContext(cookies)
	if err != nil {
		return err
	}
	page, err := browserCtx.NewPage()
	if err != nil {
		return err
	}
	log.Println("✅ Browser initialized successfully!")

	fetchOpts := browser.FetcherOptions{
		NavTimeoutMs: cfg.NavTimeoutMs,
		RateLimit:    cfg.RateLimit,
		DelayMinMs:   cfg.NavDelayMinMs,
		DelayMaxMs:   cfg.NavDelayMaxMs,
	}
	if cfg.ScreenshotDir != "" {
		shots, err := browser.NewScreenshotDebugger(cfg.ScreenshotDir)
		if err != nil {
			log.Printf("⚠️ Screenshots disabled: %v", err)
		} else {
			fetchOpts.Screenshots = shots
		}
	}

	summary, err := r.Run(ctx, browser.NewPageFetcher(page, fetchOpts))
	r.Notify(summary)
	if err != nil {
		return err
	}

	log.Println("🏁 Execution finished.")
	return nil
}

func connectMirror(ctx context.Context, url string) (*database.Repository, error) {
	repo, err := database.ConnectDB(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := repo.EnsureSchema(ctx); err != nil {
		repo.Close()
		return nil, err
	}
	log.Println("🗄️ Database mirror connected.")
	return repo, nil
}
