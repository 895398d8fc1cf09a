package wunderlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mholzen/wunderlist-backup/pkg/cache"
	"github.com/mholzen/wunderlist-backup/pkg/client"
)

const DefaultBaseURL = "https://a.wunderlist.com/api/v1/"

// WunderlistClient wraps the generic Client with a response cache and
// Wunderlist-specific accessors. It is not safe for concurrent use.
type WunderlistClient struct {
	*client.Client
	cache    *cache.ResponseCache
	userID   any
	failures int
}

// NewWunderlistClient creates a client for the API at baseURL
func NewWunderlistClient(baseURL string, creds Credentials, opts ...client.Option) *WunderlistClient {
	opts = append([]client.Option{WithCredentials(creds)}, opts...)
	return &WunderlistClient{
		Client: client.New(baseURL, opts...),
		cache:  cache.NewResponseCache(),
	}
}

// Get returns the parsed response for path, fetching it at most once.
// Non-2xx responses are logged and returned as a Failure result, not an
// error; they are not cached. Transport and decoding errors are returned.
func (wc *WunderlistClient) Get(ctx context.Context, path string) (Result, error) {
	if data, ok := wc.cache.Lookup(path); ok {
		return Succeeded(path, data), nil
	}

	var data any
	err := wc.Client.Get(ctx, path, &data)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			wc.failures++
			slog.Error("request failed", "status", apiErr.Status, "message", apiErr.Message, "path", path, "body", apiErr.Body)
			return Failed(path, apiErr.Status, apiErr.Message), nil
		}
		return Result{}, fmt.Errorf("cannot get %s: %w", path, err)
	}

	wc.cache.Store(path, data)
	return Succeeded(path, data), nil
}

// UserID returns the id of the authenticated user, resolved once
func (wc *WunderlistClient) UserID(ctx context.Context) (any, error) {
	if wc.userID != nil {
		return wc.userID, nil
	}

	result, err := wc.Get(ctx, "user")
	if err != nil {
		return nil, err
	}
	if !result.OK() {
		return nil, fmt.Errorf("cannot resolve user id (outcome='%s', status=%d)", result.Outcome, result.Status)
	}
	user, ok := result.Data.(map[string]any)
	if !ok || user["id"] == nil {
		return nil, fmt.Errorf("cannot resolve user id: response has no id field")
	}

	wc.userID = user["id"]
	slog.Debug("resolved user id", "user_id", wc.userID)
	return wc.userID, nil
}

// Fetch returns the collection of kind. listID is ignored for
// account-scoped kinds.
func (wc *WunderlistClient) Fetch(ctx context.Context, kind Kind, listID string) (Result, error) {
	return wc.Get(ctx, kind.Path(listID))
}

func (wc *WunderlistClient) CompletedTasks(ctx context.Context, listID string) (Result, error) {
	return wc.Get(ctx, CompletedTasksPath(listID))
}

func (wc *WunderlistClient) Lists(ctx context.Context) (Result, error) {
	return wc.Fetch(ctx, Lists, "")
}

func (wc *WunderlistClient) Folders(ctx context.Context) (Result, error) {
	return wc.Fetch(ctx, Folders, "")
}

func (wc *WunderlistClient) Memberships(ctx context.Context) (Result, error) {
	return wc.Fetch(ctx, Memberships, "")
}

func (wc *WunderlistClient) Tasks(ctx context.Context, listID string) (Result, error) {
	return wc.Fetch(ctx, Tasks, listID)
}

// Failures returns the number of requests that received a non-2xx response
func (wc *WunderlistClient) Failures() int {
	return wc.failures
}

func (wc *WunderlistClient) CacheStats() (hits, misses int) {
	return wc.cache.Stats()
}
