package site

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// PostWriter is the slice of the store the feed syncer needs.
type PostWriter interface {
	PutPost(ctx context.Context, post *Post) error
}

// FeedSyncer pulls blog posts from an external RSS/Atom feed into the
// document store. It runs on demand (admin endpoint or seed tool); there is
// no background poller.
type FeedSyncer struct {
	parser  *gofeed.Parser
	feedURL string
	timeout time.Duration
}

// NewFeedSyncer creates a syncer for the given feed URL.
func NewFeedSyncer(feedURL string, timeout time.Duration) *FeedSyncer {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &FeedSyncer{
		parser:  gofeed.NewParser(),
		feedURL: feedURL,
		timeout: timeout,
	}
}

// Sync fetches the feed and upserts every item as a Post. Returns the
// number of posts written. Items are keyed by a slug of the GUID (falling
// back to the link), so re-syncing updates in place rather than
// duplicating.
func (s *FeedSyncer) Sync(ctx context.Context, store PostWriter) (int, error) {
	if s.feedURL == "" {
		return 0, fmt.Errorf("no feed URL configured")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	feed, err := s.parser.ParseURLWithContext(s.feedURL, ctx)
	if err != nil {
		return 0, fmt.Errorf("fetching feed %s: %w", s.feedURL, err)
	}

	written := 0
	for _, item := range feed.Items {
		post := postFromFeedItem(item)
		if post.ID == "" {
			continue
		}
		if err := store.PutPost(ctx, post); err != nil {
			return written, fmt.Errorf("storing post %s: %w", post.ID, err)
		}
		written++
	}

	return written, nil
}

func postFromFeedItem(item *gofeed.Item) *Post {
	guid := item.GUID
	if guid == "" {
		guid = item.Link
	}

	post := &Post{
		ID:        Slugify(guid),
		Title:     item.Title,
		Excerpt:   stripHTML(item.Description),
		Content:   item.Content,
		SourceURL: item.Link,
		Tags:      item.Categories,
	}
	if post.Content == "" {
		post.Content = item.Description
	}

	switch {
	case item.PublishedParsed != nil:
		post.PublishedAt = *item.PublishedParsed
	case item.UpdatedParsed != nil:
		post.PublishedAt = *item.UpdatedParsed
	default:
		post.PublishedAt = time.Now().UTC()
	}

	if item.Image != nil {
		post.Image = item.Image.URL
	} else {
		for _, enc := range item.Enclosures {
			if strings.HasPrefix(enc.Type, "image/") {
				post.Image = enc.URL
				break
			}
		}
	}

	if len(item.Authors) > 0 {
		post.Author = item.Authors[0].Name
	}
	if len(item.Categories) > 0 {
		post.Category = item.Categories[0]
	}

	return post
}

var (
	tagPattern     = regexp.MustCompile(`<[^>]*>`)
	nonSlugPattern = regexp.MustCompile(`[^a-z0-9]+`)
)

func stripHTML(s string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(s, ""))
}

// Slugify turns an arbitrary identifier (GUID, URL, title) into a stable
// lowercase id usable as a document key and URL path segment.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = nonSlugPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
