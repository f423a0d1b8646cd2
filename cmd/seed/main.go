// Command seed loads portfolio content from a JSON file into the
// document store and optionally pulls the blog feed. Run it once against
// a fresh table, or re-run after editing the content file; documents are
// upserted by ID.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/rishiv/portfolio-api/internal/config"
	"github.com/rishiv/portfolio-api/internal/site"
	"github.com/rishiv/portfolio-api/internal/storage"
)

type seedFile struct {
	SiteConfig *site.Config   `json:"siteConfig"`
	Socials    []site.Social  `json:"socials"`
	Projects   []site.Project `json:"projects"`
	Services   []site.Service `json:"services"`
	Resume     *site.Resume   `json:"resume"`
	Posts      []site.Post    `json:"posts"`
}

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	dataPath := flag.String("data", "data/portfolio.json", "path to content JSON")
	syncBlog := flag.Bool("sync-blog", false, "also pull the configured blog feed")
	flag.Parse()

	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	raw, err := os.ReadFile(*dataPath)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *dataPath, err)
	}
	var data seedFile
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Fatalf("Failed to parse %s: %v", *dataPath, err)
	}

	if data.SiteConfig != nil {
		if err := store.PutSiteConfig(ctx, data.SiteConfig); err != nil {
			log.Fatalf("Failed to write site config: %v", err)
		}
		log.Println("[seed] wrote site config")
	}
	for i := range data.Socials {
		if err := store.PutSocial(ctx, &data.Socials[i]); err != nil {
			log.Fatalf("Failed to write social %s: %v", data.Socials[i].ID, err)
		}
	}
	for i := range data.Projects {
		if err := store.PutProject(ctx, &data.Projects[i]); err != nil {
			log.Fatalf("Failed to write project %s: %v", data.Projects[i].ID, err)
		}
	}
	for i := range data.Services {
		if err := store.PutService(ctx, &data.Services[i]); err != nil {
			log.Fatalf("Failed to write service %s: %v", data.Services[i].ID, err)
		}
	}
	if data.Resume != nil {
		if err := store.PutResume(ctx, data.Resume); err != nil {
			log.Fatalf("Failed to write resume: %v", err)
		}
		log.Println("[seed] wrote resume")
	}
	for i := range data.Posts {
		if data.Posts[i].ID == "" {
			data.Posts[i].ID = site.Slugify(data.Posts[i].Title)
		}
		if err := store.PutPost(ctx, &data.Posts[i]); err != nil {
			log.Fatalf("Failed to write post %s: %v", data.Posts[i].ID, err)
		}
	}
	log.Printf("[seed] wrote %d socials, %d projects, %d services, %d posts",
		len(data.Socials), len(data.Projects), len(data.Services), len(data.Posts))

	if *syncBlog {
		if cfg.Blog.FeedURL == "" {
			log.Fatal("sync-blog requested but no blog feed URL configured")
		}
		syncer := site.NewFeedSyncer(cfg.Blog.FeedURL, cfg.Blog.Timeout())
		count, err := syncer.Sync(ctx, store)
		if err != nil {
			log.Fatalf("Blog sync failed: %v", err)
		}
		log.Printf("[seed] synced %d posts from %s", count, cfg.Blog.FeedURL)
	}
}
