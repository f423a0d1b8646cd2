package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishiv/portfolio-api/internal/contact"
	"github.com/rishiv/portfolio-api/internal/ratelimit"
	"github.com/rishiv/portfolio-api/internal/site"
	"github.com/rishiv/portfolio-api/internal/storage"
)

const testAdminSecret = "test-secret"

// recordingNotifier captures dispatched submissions.
type recordingNotifier struct {
	sent []*contact.Submission
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, sub *contact.Submission) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sub)
	return nil
}

// failingStore wraps a working store but refuses submission writes.
type failingStore struct {
	storage.Store
}

func (failingStore) CreateSubmission(context.Context, *contact.Submission) error {
	return errors.New("table unavailable")
}

func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func newTestRouter(store storage.Store, notifier *recordingNotifier) http.Handler {
	h := NewHandlers(store, ratelimit.NewMemoryLimiter(0, 0), testAdminSecret).
		WithNotifier(notifier).
		WithStorageType("local")
	return SetupRoutes(h, []string{"*"})
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func validForm() contact.Fields {
	return contact.Fields{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Subject:  "Hello there",
		Message:  "I would like to discuss a project with you.",
	}
}

func TestSubmitContactEndToEnd(t *testing.T) {
	store := newTestStore(t)
	notifier := &recordingNotifier{}
	router := newTestRouter(store, notifier)

	rec := doJSON(t, router, http.MethodPost, "/api/contact", validForm(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["ok"])
	assert.NotEmpty(t, body["message"])

	subs, err := store.ListSubmissions(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "Jane Doe", subs[0].FullName)
	assert.Equal(t, contact.StatusNew, subs[0].Status)
	assert.NotEmpty(t, subs[0].ID)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "jane@example.com", notifier.sent[0].Email)
}

func TestSubmitContactValidation(t *testing.T) {
	router := newTestRouter(newTestStore(t), &recordingNotifier{})

	form := validForm()
	form.FullName = ""
	rec := doJSON(t, router, http.MethodPost, "/api/contact", form, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "fullName is required", decodeBody(t, rec)["error"])

	form = validForm()
	form.Email = "not-an-email"
	rec = doJSON(t, router, http.MethodPost, "/api/contact", form, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "please enter a valid email address", decodeBody(t, rec)["error"])
}

func TestSubmitContactMethodNotAllowed(t *testing.T) {
	router := newTestRouter(newTestStore(t), &recordingNotifier{})

	rec := doJSON(t, router, http.MethodGet, "/api/contact", nil, nil)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.NotEmpty(t, decodeBody(t, rec)["error"])
}

func TestSubmitContactSpamRejected(t *testing.T) {
	store := newTestStore(t)
	notifier := &recordingNotifier{}
	router := newTestRouter(store, notifier)

	form := validForm()
	form.Message = "You have won the casino jackpot, claim it now."
	rec := doJSON(t, router, http.MethodPost, "/api/contact", form, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	subs, err := store.ListSubmissions(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, subs)
	assert.Empty(t, notifier.sent)
}

func TestSubmitContactRateLimited(t *testing.T) {
	router := newTestRouter(newTestStore(t), &recordingNotifier{})
	header := map[string]string{"X-Forwarded-For": "198.51.100.7"}

	for i := 0; i < 3; i++ {
		rec := doJSON(t, router, http.MethodPost, "/api/contact", validForm(), header)
		require.Equal(t, http.StatusOK, rec.Code, "request %d should be admitted", i+1)
	}

	rec := doJSON(t, router, http.MethodPost, "/api/contact", validForm(), header)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, decodeBody(t, rec)["error"])

	// A different client is unaffected.
	other := map[string]string{"X-Forwarded-For": "203.0.113.50"}
	rec = doJSON(t, router, http.MethodPost, "/api/contact", validForm(), other)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSubmitContactSoftFailures(t *testing.T) {
	store := newTestStore(t)

	t.Run("store failure still returns 200", func(t *testing.T) {
		notifier := &recordingNotifier{}
		router := newTestRouter(failingStore{store}, notifier)

		rec := doJSON(t, router, http.MethodPost, "/api/contact", validForm(), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, decodeBody(t, rec)["ok"])
		// Notification still goes out even when persistence failed.
		assert.Len(t, notifier.sent, 1)
	})

	t.Run("notifier failure still returns 200", func(t *testing.T) {
		notifier := &recordingNotifier{err: errors.New("relay down")}
		router := newTestRouter(store, notifier)

		rec := doJSON(t, router, http.MethodPost, "/api/contact", validForm(),
			map[string]string{"X-Forwarded-For": "192.0.2.99"})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, decodeBody(t, rec)["ok"])
	})
}

func adminHeader() map[string]string {
	return map[string]string{"Authorization": "Bearer " + testAdminSecret}
}

func TestAdminAuth(t *testing.T) {
	store := newTestStore(t)
	router := newTestRouter(store, &recordingNotifier{})

	rec := doJSON(t, router, http.MethodGet, "/api/admin/contacts", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/admin/contacts", nil,
		map[string]string{"Authorization": "Bearer wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/api/admin/contacts",
		map[string]string{"id": "x", "status": "read"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// A rejected update must not touch stored state.
	subs, err := store.ListSubmissions(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestAdminListAndUpdate(t *testing.T) {
	store := newTestStore(t)
	router := newTestRouter(store, &recordingNotifier{})

	rec := doJSON(t, router, http.MethodPost, "/api/contact", validForm(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/admin/contacts", nil, adminHeader())
	require.Equal(t, http.StatusOK, rec.Code)
	contacts, ok := decodeBody(t, rec)["contacts"].([]any)
	require.True(t, ok)
	require.Len(t, contacts, 1)
	first, ok := contacts[0].(map[string]any)
	require.True(t, ok)
	id, _ := first["id"].(string)
	require.NotEmpty(t, id)

	rec = doJSON(t, router, http.MethodPut, "/api/admin/contacts",
		map[string]string{"id": id, "status": contact.StatusReplied}, adminHeader())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["success"])

	subs, err := store.ListSubmissions(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, contact.StatusReplied, subs[0].Status)
}

func TestAdminListCapsAtFifty(t *testing.T) {
	store := newTestStore(t)
	router := newTestRouter(store, &recordingNotifier{})
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		sub := &contact.Submission{
			FullName:  "Visitor",
			Email:     "v@example.com",
			Subject:   "Subject line",
			Message:   "A message long enough to pass.",
			Status:    contact.StatusNew,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, store.CreateSubmission(ctx, sub))
	}

	rec := doJSON(t, router, http.MethodGet, "/api/admin/contacts", nil, adminHeader())
	require.Equal(t, http.StatusOK, rec.Code)
	contacts, ok := decodeBody(t, rec)["contacts"].([]any)
	require.True(t, ok)
	require.Len(t, contacts, 50, "listing returns the 50 most recent")

	// Newest first: the cut drops the oldest ten, not the newest.
	first, ok := contacts[0].(map[string]any)
	require.True(t, ok)
	createdAt, err := time.Parse(time.RFC3339Nano, first["createdAt"].(string))
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(base.Add(59*time.Minute)))
}

func TestAdminUpdateRejectsBadInput(t *testing.T) {
	router := newTestRouter(newTestStore(t), &recordingNotifier{})

	cases := []struct {
		name string
		body map[string]string
	}{
		{"missing id", map[string]string{"status": "read"}},
		{"missing status", map[string]string{"id": "abc"}},
		{"unknown status", map[string]string{"id": "abc", "status": "starred"}},
		{"unknown id", map[string]string{"id": "no-such-id", "status": "read"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPut, "/api/admin/contacts", tc.body, adminHeader())
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSiteEndpoints(t *testing.T) {
	store := newTestStore(t)
	router := newTestRouter(store, &recordingNotifier{})
	ctx := context.Background()

	require.NoError(t, store.PutSiteConfig(ctx, &site.Config{Name: "Rishi Verma"}))
	require.NoError(t, store.PutProject(ctx, &site.Project{ID: "p1", Title: "Portfolio API"}))
	require.NoError(t, store.PutPost(ctx, &site.Post{ID: "first-post", Title: "First Post"}))

	rec := doJSON(t, router, http.MethodGet, "/api/site/config", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Rishi Verma", decodeBody(t, rec)["name"])

	rec = doJSON(t, router, http.MethodGet, "/api/site/projects", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	projects, ok := decodeBody(t, rec)["projects"].([]any)
	require.True(t, ok)
	assert.Len(t, projects, 1)

	rec = doJSON(t, router, http.MethodGet, "/api/blog/", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/blog/first-post", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "First Post", decodeBody(t, rec)["title"])

	rec = doJSON(t, router, http.MethodGet, "/api/blog/missing", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSiteEndpointsEmptyStore(t *testing.T) {
	router := newTestRouter(newTestStore(t), &recordingNotifier{})

	// List endpoints return empty arrays, singleton documents 404.
	rec := doJSON(t, router, http.MethodGet, "/api/site/socials", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	socials, ok := decodeBody(t, rec)["socials"].([]any)
	require.True(t, ok)
	assert.Empty(t, socials)

	rec = doJSON(t, router, http.MethodGet, "/api/site/resume", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAssistantUnconfigured(t *testing.T) {
	router := newTestRouter(newTestStore(t), &recordingNotifier{})

	rec := doJSON(t, router, http.MethodPost, "/api/assistant/ask",
		map[string]string{"question": "What do you build?"}, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/assistant/status", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["running"])
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(newTestStore(t), &recordingNotifier{})

	rec := doJSON(t, router, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "local", body["storage"])
	assert.Equal(t, float64(0), body["rate_limited_clients"])

	// The in-memory limiter's client count shows up once someone submits.
	rec = doJSON(t, router, http.MethodPost, "/api/contact", validForm(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decodeBody(t, rec)["rate_limited_clients"])
}
