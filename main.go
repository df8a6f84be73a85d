package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"blog-backlinks/pkg/config"
	"blog-backlinks/pkg/httpclient"
	"blog-backlinks/pkg/locator"
	"blog-backlinks/pkg/render"
)

func main() {
	cfg, err := config.Load(os.Args[1:], os.LookupEnv)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := run(context.Background(), cfg, time.Now()); err != nil {
		log.Fatalf("Failed to update backlink index: %v", err)
	}
}

// run locates the articles, renders the index and writes it to cfg.Output.
// Only a failed write is reported as an error.
func run(ctx context.Context, cfg *config.Config, now time.Time) error {
	clientType, err := httpclient.ParseClientType(cfg.ClientType)
	if err != nil {
		return err
	}
	client := httpclient.NewClientWithOptions(clientType, httpclient.Options{
		Timeout:   cfg.Timeout,
		UserAgent: cfg.UserAgent,
	})

	loc := locator.NewDefault(client, locator.Settings{
		ArticlePaths: cfg.ArticlePaths,
		SitemapPaths: cfg.SitemapPaths,
		FeedPaths:    cfg.FeedPaths,
		FetchTitles:  cfg.FetchTitles,
		TitleWorkers: cfg.TitleWorkers,
	})

	log.Printf("Discovery starting: %s", cfg)
	list := loc.Locate(ctx, cfg.BaseURL, cfg.MaxCount)
	if list.Empty() {
		log.Printf("No URLs found. The site may have no sitemap or feed.")
	} else {
		log.Printf("Found %d URLs via %s", list.Len(), list.Source)
	}

	doc := render.Render(list.Links, now, render.Options{
		SiteName:  cfg.SiteName,
		BaseURL:   cfg.BaseURL,
		Generator: cfg.Generator,
	})

	if n := render.CountLinks([]byte(doc)); n != list.Len() {
		log.Printf("WARNING: rendered document lists %d links, expected %d", n, list.Len())
	}

	if err := render.WriteFile(cfg.Output, doc); err != nil {
		return fmt.Errorf("failed to write %s: %w", cfg.Output, err)
	}

	log.Printf("Updated %s", cfg.Output)
	return nil
}
