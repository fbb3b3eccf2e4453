package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"eductl/internal/modules/query/domain"
	queryout "eductl/internal/modules/query/port/out"
	"eductl/internal/modules/query/service"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

type seqID struct {
	mu sync.Mutex
	n  int
}

func (f *seqID) New() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	return fmt.Sprintf("sub-%d", f.n)
}

type fakeTransport struct {
	mu      sync.Mutex
	calls   []queryout.Request
	handler func(req queryout.Request) (queryout.Response, error)
}

func (f *fakeTransport) Do(_ context.Context, req queryout.Request) (queryout.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()
	return f.handler(req)
}

func (f *fakeTransport) count(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, call := range f.calls {
		if call.Method == method && call.Path == path {
			n++
		}
	}
	return n
}

type fakeSnapshots struct {
	mu    sync.Mutex
	saved []domain.Snapshot
	loads []domain.Snapshot
	reset bool
}

func (f *fakeSnapshots) Save(_ context.Context, snapshot domain.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, snapshot)
	return nil
}

func (f *fakeSnapshots) LoadAll(context.Context) ([]domain.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loads, nil
}

func (f *fakeSnapshots) Delete(context.Context, domain.Key) error { return nil }

func (f *fakeSnapshots) Reset(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset = true
	return nil
}

func okJSON(body string) (queryout.Response, error) {
	return queryout.Response{StatusCode: http.StatusOK, Body: []byte(body)}, nil
}

func TestQueryCachesUntilInvalidated(t *testing.T) {
	t.Parallel()
	transport := &fakeTransport{handler: func(queryout.Request) (queryout.Response, error) {
		return okJSON(`{"data":[{"_id":"l1","title":"Algebra"}]}`)
	}}
	svc := service.NewCacheService(newFakeClock(), &seqID{}, transport, nil, 0)

	first, err := svc.Query(context.Background(), "/lesson", nil, "lessons")
	if err != nil {
		t.Fatalf("first query: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected one normalized item, got %d", len(first))
	}
	if _, err := svc.Query(context.Background(), "/lesson", nil, "lessons"); err != nil {
		t.Fatalf("second query: %v", err)
	}
	if got := transport.count(http.MethodGet, "/lesson"); got != 1 {
		t.Fatalf("fresh entry must not refetch, transport saw %d calls", got)
	}

	svc.Invalidate([]domain.Tag{domain.TypeTag("lessons")})
	if _, err := svc.Query(context.Background(), "/lesson", nil, "lessons"); err != nil {
		t.Fatalf("query after invalidate: %v", err)
	}
	if got := transport.count(http.MethodGet, "/lesson"); got != 2 {
		t.Fatalf("stale entry must refetch, transport saw %d calls", got)
	}
}

func TestConcurrentReadersShareOneFetch(t *testing.T) {
	t.Parallel()
	entered := make(chan struct{})
	release := make(chan struct{})
	transport := &fakeTransport{handler: func(queryout.Request) (queryout.Response, error) {
		close(entered)
		<-release
		return okJSON(`[{"_id":"l1"},{"_id":"l2"}]`)
	}}
	svc := service.NewCacheService(newFakeClock(), &seqID{}, transport, nil, 0)

	subscriberID, state := svc.Subscribe(context.Background(), "/lesson", nil, "lessons")
	defer svc.Unsubscribe(subscriberID)
	if state.Status != domain.StatusLoading {
		t.Fatalf("fresh subscription must report loading, got %s", state.Status)
	}
	<-entered

	type queryResult struct {
		items []json.RawMessage
		err   error
	}
	done := make(chan queryResult, 1)
	go func() {
		items, err := svc.Query(context.Background(), "/lesson", nil, "lessons")
		done <- queryResult{items: items, err: err}
	}()
	close(release)

	result := <-done
	if result.err != nil {
		t.Fatalf("query joining in-flight fetch: %v", result.err)
	}
	if len(result.items) != 2 {
		t.Fatalf("expected two items, got %d", len(result.items))
	}
	if got := transport.count(http.MethodGet, "/lesson"); got != 1 {
		t.Fatalf("both readers must share one request, transport saw %d", got)
	}
}

func TestMutationRefetchesSubscribedReads(t *testing.T) {
	t.Parallel()
	var fetches int
	var mu sync.Mutex
	transport := &fakeTransport{handler: func(req queryout.Request) (queryout.Response, error) {
		if req.Method == http.MethodPost {
			return okJSON(`{"success":true,"message":"lesson added"}`)
		}
		mu.Lock()
		fetches++
		n := fetches
		mu.Unlock()
		if n == 1 {
			return okJSON(`[{"_id":"l1"}]`)
		}
		return okJSON(`[{"_id":"l1"},{"_id":"l2"}]`)
	}}
	svc := service.NewCacheService(newFakeClock(), &seqID{}, transport, nil, 0)
	updates := make(chan domain.Key, 8)
	settles := make(chan string, 8)
	svc.SetHooks(
		func(key domain.Key) { updates <- key },
		func(label string, err error) {
			if err == nil {
				settles <- label
			}
		},
	)

	subscriberID, _ := svc.Subscribe(context.Background(), "/lesson", nil, "lessons")
	defer svc.Unsubscribe(subscriberID)
	waitKey(t, updates)

	if _, err := svc.Mutate(context.Background(), http.MethodPost, "/lesson", map[string]string{"title": "Geometry"},
		[]domain.Tag{domain.TypeTag("lessons")}, "lesson added"); err != nil {
		t.Fatalf("mutate: %v", err)
	}
	if label := <-settles; label != "lesson added" {
		t.Fatalf("expected settle for the mutation label, got %q", label)
	}

	waitKey(t, updates)
	state, ok := svc.Read("/lesson", nil)
	if !ok {
		t.Fatalf("entry must still exist after refetch")
	}
	if state.Stale || state.Status != domain.StatusSuccess {
		t.Fatalf("refetched entry must be fresh, got status=%s stale=%t", state.Status, state.Stale)
	}
	if len(state.Items) != 2 {
		t.Fatalf("expected refetched items, got %d", len(state.Items))
	}
}

func TestMutationFailureLeavesCacheUntouched(t *testing.T) {
	t.Parallel()
	transport := &fakeTransport{handler: func(req queryout.Request) (queryout.Response, error) {
		if req.Method == http.MethodPost {
			return queryout.Response{StatusCode: http.StatusConflict, Body: []byte(`{"message":"duplicate title"}`)}, nil
		}
		return okJSON(`[{"_id":"l1"}]`)
	}}
	svc := service.NewCacheService(newFakeClock(), &seqID{}, transport, nil, 0)

	if _, err := svc.Query(context.Background(), "/lesson", nil, "lessons"); err != nil {
		t.Fatalf("prime cache: %v", err)
	}

	_, err := svc.Mutate(context.Background(), http.MethodPost, "/lesson", map[string]string{"title": "Algebra"},
		[]domain.Tag{domain.TypeTag("lessons")}, "lesson added")
	var reqErr *domain.RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if reqErr.StatusCode != http.StatusConflict || !strings.Contains(reqErr.Message, "duplicate title") {
		t.Fatalf("unexpected error: %+v", reqErr)
	}

	state, ok := svc.Read("/lesson", nil)
	if !ok || state.Stale || state.Status != domain.StatusSuccess {
		t.Fatalf("failed mutation must not touch the cache, got ok=%t status=%s stale=%t", ok, state.Status, state.Stale)
	}
	if got := transport.count(http.MethodGet, "/lesson"); got != 1 {
		t.Fatalf("failed mutation must not trigger refetch, transport saw %d reads", got)
	}
}

func TestFailedFetchRetriesOnNextQuery(t *testing.T) {
	t.Parallel()
	var calls int
	var mu sync.Mutex
	transport := &fakeTransport{handler: func(queryout.Request) (queryout.Response, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			return queryout.Response{}, fmt.Errorf("connection refused")
		}
		return okJSON(`[{"_id":"l1"}]`)
	}}
	svc := service.NewCacheService(newFakeClock(), &seqID{}, transport, nil, 0)

	if _, err := svc.Query(context.Background(), "/lesson", nil, "lessons"); err == nil {
		t.Fatalf("expected first query to fail")
	}
	items, err := svc.Query(context.Background(), "/lesson", nil, "lessons")
	if err != nil {
		t.Fatalf("retry after error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one item on retry, got %d", len(items))
	}
}

func TestIdleEntriesSweptAfterGracePeriod(t *testing.T) {
	t.Parallel()
	transport := &fakeTransport{handler: func(queryout.Request) (queryout.Response, error) {
		return okJSON(`[]`)
	}}
	clk := newFakeClock()
	svc := service.NewCacheService(clk, &seqID{}, transport, nil, 5*time.Minute)

	if _, err := svc.Query(context.Background(), "/lesson", nil, "lessons"); err != nil {
		t.Fatalf("query: %v", err)
	}
	clk.advance(6 * time.Minute)

	// Any cache access sweeps; touching another key drops the idle entry.
	if _, err := svc.Query(context.Background(), "/exam", nil, "exams"); err != nil {
		t.Fatalf("query other key: %v", err)
	}
	if _, ok := svc.Read("/lesson", nil); ok {
		t.Fatalf("idle entry must be swept after the grace period")
	}

	if _, err := svc.Query(context.Background(), "/lesson", nil, "lessons"); err != nil {
		t.Fatalf("query after sweep: %v", err)
	}
	if got := transport.count(http.MethodGet, "/lesson"); got != 2 {
		t.Fatalf("swept entry must refetch, transport saw %d calls", got)
	}
}

func TestSubscribedEntriesSurviveSweep(t *testing.T) {
	t.Parallel()
	transport := &fakeTransport{handler: func(queryout.Request) (queryout.Response, error) {
		return okJSON(`[{"_id":"l1"}]`)
	}}
	clk := newFakeClock()
	svc := service.NewCacheService(clk, &seqID{}, transport, nil, 5*time.Minute)
	updates := make(chan domain.Key, 8)
	svc.SetHooks(func(key domain.Key) { updates <- key }, nil)

	subscriberID, _ := svc.Subscribe(context.Background(), "/lesson", nil, "lessons")
	waitKey(t, updates)
	clk.advance(time.Hour)

	if _, err := svc.Query(context.Background(), "/exam", nil, "exams"); err != nil {
		t.Fatalf("query other key: %v", err)
	}
	if _, ok := svc.Read("/lesson", nil); !ok {
		t.Fatalf("subscribed entry must never be swept")
	}

	// Releasing the subscription starts the grace clock.
	svc.Unsubscribe(subscriberID)
	clk.advance(6 * time.Minute)
	if _, err := svc.Query(context.Background(), "/exam", nil, "exams"); err != nil {
		t.Fatalf("query other key: %v", err)
	}
	if _, ok := svc.Read("/lesson", nil); ok {
		t.Fatalf("released entry must be swept after the grace period")
	}
}

func TestHydrateServesStaleSnapshotThenRefetches(t *testing.T) {
	t.Parallel()
	transport := &fakeTransport{handler: func(queryout.Request) (queryout.Response, error) {
		return okJSON(`[{"_id":"l1"},{"_id":"l2"}]`)
	}}
	snapshots := &fakeSnapshots{loads: []domain.Snapshot{{
		Key:        domain.MakeKey("/lesson", nil),
		Path:       "/lesson",
		EntityType: "lessons",
		Payload:    []byte(`[{"_id":"l1","title":"Algebra"}]`),
	}}}
	svc := service.NewCacheService(newFakeClock(), &seqID{}, transport, snapshots, 0)
	updates := make(chan domain.Key, 8)
	svc.SetHooks(func(key domain.Key) { updates <- key }, nil)

	if err := svc.Hydrate(context.Background()); err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	state, ok := svc.Read("/lesson", nil)
	if !ok {
		t.Fatalf("hydrated entry must exist")
	}
	if state.Status != domain.StatusSuccess || !state.Stale || len(state.Items) != 1 {
		t.Fatalf("hydrated entry must be renderable but stale, got status=%s stale=%t items=%d",
			state.Status, state.Stale, len(state.Items))
	}
	if transport.count(http.MethodGet, "/lesson") != 0 {
		t.Fatalf("hydration must not touch the network")
	}

	subscriberID, state := svc.Subscribe(context.Background(), "/lesson", nil, "lessons")
	defer svc.Unsubscribe(subscriberID)
	if len(state.Items) != 1 || !state.Stale {
		t.Fatalf("subscriber must see the stale snapshot immediately")
	}
	waitKey(t, updates)
	state, _ = svc.Read("/lesson", nil)
	if state.Stale || len(state.Items) != 2 {
		t.Fatalf("subscription must refresh the stale entry, got stale=%t items=%d", state.Stale, len(state.Items))
	}
}

func TestSuccessfulFetchPersistsSnapshot(t *testing.T) {
	t.Parallel()
	transport := &fakeTransport{handler: func(queryout.Request) (queryout.Response, error) {
		return okJSON(`{"data":[{"_id":"e1"}]}`)
	}}
	snapshots := &fakeSnapshots{}
	svc := service.NewCacheService(newFakeClock(), &seqID{}, transport, snapshots, 0)

	if _, err := svc.Query(context.Background(), "/exam", nil, "exams"); err != nil {
		t.Fatalf("query: %v", err)
	}
	snapshots.mu.Lock()
	defer snapshots.mu.Unlock()
	if len(snapshots.saved) != 1 {
		t.Fatalf("expected one snapshot save, got %d", len(snapshots.saved))
	}
	saved := snapshots.saved[0]
	if saved.Path != "/exam" || saved.EntityType != "exams" {
		t.Fatalf("unexpected snapshot: %+v", saved)
	}
	if len(domain.Normalize(saved.Payload)) != 1 {
		t.Fatalf("snapshot payload must round-trip through normalize")
	}
}

func TestClearDropsEntriesAndSnapshots(t *testing.T) {
	t.Parallel()
	transport := &fakeTransport{handler: func(queryout.Request) (queryout.Response, error) {
		return okJSON(`[{"_id":"l1"}]`)
	}}
	snapshots := &fakeSnapshots{}
	svc := service.NewCacheService(newFakeClock(), &seqID{}, transport, snapshots, 0)

	if _, err := svc.Query(context.Background(), "/lesson", nil, "lessons"); err != nil {
		t.Fatalf("query: %v", err)
	}
	if err := svc.Clear(context.Background()); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := svc.Read("/lesson", nil); ok {
		t.Fatalf("clear must drop every entry")
	}
	snapshots.mu.Lock()
	defer snapshots.mu.Unlock()
	if !snapshots.reset {
		t.Fatalf("clear must reset the snapshot store")
	}
}

func waitKey(t *testing.T, updates <-chan domain.Key) domain.Key {
	t.Helper()
	select {
	case key := <-updates:
		return key
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for cache update")
		return ""
	}
}
