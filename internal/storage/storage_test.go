package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishiv/portfolio-api/internal/contact"
	"github.com/rishiv/portfolio-api/internal/site"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestCreateSubmissionAssignsID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sub := &contact.Submission{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Subject:  "Hello there",
		Message:  "I would like to discuss a project with you.",
		Status:   contact.StatusNew,
	}
	require.NoError(t, store.CreateSubmission(ctx, sub))

	assert.NotEmpty(t, sub.ID)
	assert.False(t, sub.CreatedAt.IsZero())
	assert.Equal(t, sub.CreatedAt, sub.UpdatedAt)
}

func TestListSubmissionsNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		sub := &contact.Submission{
			FullName:  "Visitor",
			Email:     "v@example.com",
			Subject:   "Subject line",
			Message:   "A message long enough to pass.",
			Status:    contact.StatusNew,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, store.CreateSubmission(ctx, sub))
	}

	subs, err := store.ListSubmissions(ctx, 3)
	require.NoError(t, err)
	require.Len(t, subs, 3)
	assert.True(t, subs[0].CreatedAt.After(subs[1].CreatedAt))
	assert.True(t, subs[1].CreatedAt.After(subs[2].CreatedAt))
}

func TestUpdateSubmissionStatus(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sub := &contact.Submission{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Subject:  "Hello there",
		Message:  "A message long enough to pass.",
		Status:   contact.StatusNew,
	}
	require.NoError(t, store.CreateSubmission(ctx, sub))

	require.NoError(t, store.UpdateSubmissionStatus(ctx, sub.ID, contact.StatusReplied))

	subs, err := store.ListSubmissions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, contact.StatusReplied, subs[0].Status)
	assert.True(t, subs[0].UpdatedAt.After(subs[0].CreatedAt))
}

func TestUpdateSubmissionStatusNotFound(t *testing.T) {
	store := newTestStore(t)
	err := store.UpdateSubmissionStatus(context.Background(), "no-such-id", contact.StatusRead)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSiteConfigRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.SiteConfig(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	cfg := &site.Config{
		Name:  "Rishi",
		About: "I build things for the web.",
		Header: site.Header{
			TaglineOne: "Hello",
			TaglineTwo: "I am Rishi",
		},
		ShowResume: true,
	}
	require.NoError(t, store.PutSiteConfig(ctx, cfg))

	got, err := store.SiteConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Rishi", got.Name)
	assert.Equal(t, "Hello", got.Header.TaglineOne)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestPostUpsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	post := &site.Post{
		ID:          "first-post",
		Title:       "First Post",
		PublishedAt: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.PutPost(ctx, post))

	post.Title = "First Post (edited)"
	require.NoError(t, store.PutPost(ctx, post))

	posts, err := store.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1, "same ID should update, not duplicate")
	assert.Equal(t, "First Post (edited)", posts[0].Title)

	got, err := store.GetPost(ctx, "first-post")
	require.NoError(t, err)
	assert.Equal(t, "First Post (edited)", got.Title)

	_, err = store.GetPost(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectsAndSocials(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p := &site.Project{Title: "Portfolio", Description: "This site.", URL: "https://rishiv.dev"}
	require.NoError(t, store.PutProject(ctx, p))
	assert.NotEmpty(t, p.ID, "missing project ID is assigned")

	soc := &site.Social{ID: "github", Title: "GitHub", Link: "https://github.com/rishiv"}
	require.NoError(t, store.PutSocial(ctx, soc))

	projects, err := store.ListProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 1)

	socials, err := store.ListSocials(ctx)
	require.NoError(t, err)
	require.Len(t, socials, 1)
	assert.Equal(t, "github", socials[0].ID)
}
