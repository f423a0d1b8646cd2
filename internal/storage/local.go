package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rishiv/portfolio-api/internal/contact"
	"github.com/rishiv/portfolio-api/internal/site"
)

// LocalStore keeps each collection in a JSON file under a directory. It is
// meant for development and tests, not for concurrent multi-process use.
type LocalStore struct {
	mu  sync.Mutex
	dir string
}

// NewLocalStore creates the directory if needed and returns the store.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// load reads a collection file into target. A missing file is not an
// error; target keeps its zero value.
func (s *LocalStore) load(collection string, target any) error {
	data, err := os.ReadFile(s.path(collection))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", collection, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("parsing %s: %w", collection, err)
	}
	return nil
}

func (s *LocalStore) save(collection string, data any) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", collection, err)
	}
	tmp := s.path(collection) + ".tmp"
	if err := os.WriteFile(tmp, jsonData, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", collection, err)
	}
	return os.Rename(tmp, s.path(collection))
}

func (s *LocalStore) CreateSubmission(_ context.Context, sub *contact.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var subs []contact.Submission
	if err := s.load("contacts", &subs); err != nil {
		return err
	}

	sub.ID = uuid.NewString()
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}
	sub.UpdatedAt = sub.CreatedAt

	subs = append(subs, *sub)
	return s.save("contacts", subs)
}

func (s *LocalStore) ListSubmissions(_ context.Context, limit int) ([]contact.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var subs []contact.Submission
	if err := s.load("contacts", &subs); err != nil {
		return nil, err
	}

	sort.Slice(subs, func(i, j int) bool {
		return subs[i].CreatedAt.After(subs[j].CreatedAt)
	})
	if limit > 0 && len(subs) > limit {
		subs = subs[:limit]
	}
	return subs, nil
}

func (s *LocalStore) UpdateSubmissionStatus(_ context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var subs []contact.Submission
	if err := s.load("contacts", &subs); err != nil {
		return err
	}

	for i := range subs {
		if subs[i].ID == id {
			subs[i].Status = status
			subs[i].UpdatedAt = time.Now().UTC()
			return s.save("contacts", subs)
		}
	}
	return ErrNotFound
}

func (s *LocalStore) SiteConfig(_ context.Context) (*site.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cfg *site.Config
	if err := s.load("site_config", &cfg); err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, ErrNotFound
	}
	return cfg, nil
}

func (s *LocalStore) PutSiteConfig(_ context.Context, cfg *site.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg.UpdatedAt = time.Now().UTC()
	return s.save("site_config", cfg)
}

// upsertByID replaces the element whose id matches, or appends.
func upsertByID[T any](items []T, item T, id func(T) string) []T {
	for i := range items {
		if id(items[i]) == id(item) {
			items[i] = item
			return items
		}
	}
	return append(items, item)
}

func (s *LocalStore) ListProjects(_ context.Context) ([]site.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var projects []site.Project
	err := s.load("projects", &projects)
	return projects, err
}

func (s *LocalStore) PutProject(_ context.Context, p *site.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	var projects []site.Project
	if err := s.load("projects", &projects); err != nil {
		return err
	}
	projects = upsertByID(projects, *p, func(x site.Project) string { return x.ID })
	return s.save("projects", projects)
}

func (s *LocalStore) ListSocials(_ context.Context) ([]site.Social, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var socials []site.Social
	err := s.load("socials", &socials)
	return socials, err
}

func (s *LocalStore) PutSocial(_ context.Context, soc *site.Social) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if soc.ID == "" {
		soc.ID = uuid.NewString()
	}
	var socials []site.Social
	if err := s.load("socials", &socials); err != nil {
		return err
	}
	socials = upsertByID(socials, *soc, func(x site.Social) string { return x.ID })
	return s.save("socials", socials)
}

func (s *LocalStore) ListServices(_ context.Context) ([]site.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var services []site.Service
	err := s.load("services", &services)
	return services, err
}

func (s *LocalStore) PutService(_ context.Context, svc *site.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if svc.ID == "" {
		svc.ID = uuid.NewString()
	}
	var services []site.Service
	if err := s.load("services", &services); err != nil {
		return err
	}
	services = upsertByID(services, *svc, func(x site.Service) string { return x.ID })
	return s.save("services", services)
}

func (s *LocalStore) Resume(_ context.Context) (*site.Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var r *site.Resume
	if err := s.load("resume", &r); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrNotFound
	}
	return r, nil
}

func (s *LocalStore) PutResume(_ context.Context, r *site.Resume) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save("resume", r)
}

func (s *LocalStore) ListPosts(_ context.Context) ([]site.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var posts []site.Post
	if err := s.load("posts", &posts); err != nil {
		return nil, err
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].PublishedAt.After(posts[j].PublishedAt)
	})
	return posts, nil
}

func (s *LocalStore) GetPost(_ context.Context, id string) (*site.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var posts []site.Post
	if err := s.load("posts", &posts); err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].ID == id {
			return &posts[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *LocalStore) PutPost(_ context.Context, p *site.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		return fmt.Errorf("post ID is required")
	}
	var posts []site.Post
	if err := s.load("posts", &posts); err != nil {
		return err
	}
	posts = upsertByID(posts, *p, func(x site.Post) string { return x.ID })
	return s.save("posts", posts)
}
