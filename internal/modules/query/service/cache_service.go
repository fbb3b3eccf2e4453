package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"eductl/internal/modules/query/domain"
	queryout "eductl/internal/modules/query/port/out"
	"eductl/internal/platform/clock"
	"eductl/internal/platform/id"
)

// DefaultGracePeriod is how long an entry with no subscribers survives
// before it is garbage-collected. Sweeping happens on cache access, there
// is no background goroutine.
const DefaultGracePeriod = 5 * time.Minute

// CacheService is the single gateway for all remote reads and writes. It
// owns the key→entry map, the tag→key reverse index, in-flight request
// de-duplication, and mutation-driven invalidation.
type CacheService struct {
	clock     clock.Clock
	idGen     id.Generator
	transport queryout.Transport
	snapshots queryout.SnapshotStore
	grace     time.Duration

	mu      sync.Mutex
	entries map[domain.Key]*entry
	byTag   map[domain.Tag]map[domain.Key]struct{}
	subKeys map[string]domain.Key

	onUpdate func(domain.Key)
	onSettle func(label string, err error)
}

type entry struct {
	key        domain.Key
	path       string
	args       map[string]string
	entityType string

	status domain.Status
	items  []json.RawMessage
	err    error
	stale  bool
	tags   []domain.Tag

	inflight   *call
	subs       map[string]struct{}
	lastActive time.Time
}

// call is one shared network request. Every caller waiting on the same key
// receives the same items or the same error once done is closed.
type call struct {
	done  chan struct{}
	items []json.RawMessage
	err   error
}

func NewCacheService(clk clock.Clock, idGen id.Generator, transport queryout.Transport, snapshots queryout.SnapshotStore, grace time.Duration) *CacheService {
	if grace <= 0 {
		grace = DefaultGracePeriod
	}
	return &CacheService{
		clock:     clk,
		idGen:     idGen,
		transport: transport,
		snapshots: snapshots,
		grace:     grace,
		entries:   make(map[domain.Key]*entry),
		byTag:     make(map[domain.Tag]map[domain.Key]struct{}),
		subKeys:   make(map[string]domain.Key),
	}
}

// SetHooks installs the update and settle callbacks. Both are cosmetic:
// they run outside the cache lock and cannot affect cache state.
func (s *CacheService) SetHooks(onUpdate func(domain.Key), onSettle func(label string, err error)) {
	s.onUpdate = onUpdate
	s.onSettle = onSettle
}

// Hydrate rebuilds stale entries from the snapshot store so screens render
// last-known data immediately; the first subscriber triggers a refetch.
func (s *CacheService) Hydrate(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}
	snapshots, err := s.snapshots.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load snapshots: %w", err)
	}
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, snapshot := range snapshots {
		e := s.ensureLocked(snapshot.Path, snapshot.Args, snapshot.EntityType)
		if e.status != domain.StatusUninitialized {
			continue
		}
		e.status = domain.StatusSuccess
		e.stale = true
		e.items = domain.Normalize(snapshot.Payload)
		e.lastActive = now
		s.retagLocked(e, domain.DeriveTags(e.entityType, e.items))
	}
	return nil
}

// Query returns fresh cached items, or fetches. A second caller arriving
// while a request for the same key is in flight shares that request.
func (s *CacheService) Query(ctx context.Context, path string, args map[string]string, entityType string) ([]json.RawMessage, error) {
	s.mu.Lock()
	s.sweepLocked()
	e := s.ensureLocked(path, args, entityType)
	e.lastActive = s.clock.Now()

	if e.status == domain.StatusSuccess && !e.stale {
		items := cloneItems(e.items)
		s.mu.Unlock()
		return items, nil
	}
	if e.inflight != nil {
		c := e.inflight
		s.mu.Unlock()
		return awaitCall(ctx, c)
	}
	c := s.beginFetchLocked(e)
	s.mu.Unlock()

	// The fetch is detached from the caller's cancellation: a caller that
	// gives up stops waiting, but the shared request runs to completion so
	// other waiters and the cache still see its result.
	s.runFetch(context.WithoutCancel(ctx), e.key, c)
	return awaitCall(ctx, c)
}

// Subscribe registers interest in a key and returns the current state. A
// missing, stale, or failed entry is refetched in the background.
func (s *CacheService) Subscribe(ctx context.Context, path string, args map[string]string, entityType string) (string, domain.ReadState) {
	s.mu.Lock()
	s.sweepLocked()
	e := s.ensureLocked(path, args, entityType)
	e.lastActive = s.clock.Now()

	subscriberID := s.idGen.New()
	e.subs[subscriberID] = struct{}{}
	s.subKeys[subscriberID] = e.key

	var c *call
	if e.inflight == nil && (e.status != domain.StatusSuccess || e.stale) {
		c = s.beginFetchLocked(e)
	}
	state := e.state()
	s.mu.Unlock()

	if c != nil {
		go s.runFetch(context.WithoutCancel(ctx), e.key, c)
	}
	return subscriberID, state
}

func (s *CacheService) Unsubscribe(subscriberID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key, ok := s.subKeys[subscriberID]
	if !ok {
		return
	}
	delete(s.subKeys, subscriberID)
	if e, ok := s.entries[key]; ok {
		delete(e.subs, subscriberID)
		e.lastActive = s.clock.Now()
	}
}

// Read returns the current state of a key without touching the network.
func (s *CacheService) Read(path string, args map[string]string) (domain.ReadState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[domain.MakeKey(path, args)]
	if !ok {
		return domain.ReadState{Status: domain.StatusUninitialized}, false
	}
	return e.state(), true
}

// Mutate performs a write. On success the declared tags are invalidated and
// subscribed dependents refetch in the background, independently of this
// call's return. On failure the cache is left exactly as it was.
func (s *CacheService) Mutate(ctx context.Context, method, path string, body any, invalidates []domain.Tag, label string) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
	}

	resp, err := s.transport.Do(ctx, queryout.Request{Method: method, Path: path, Body: payload})
	if err == nil && resp.StatusCode >= http.StatusBadRequest {
		err = domain.ErrorFromResponse(resp.StatusCode, resp.Body)
	}
	if s.onSettle != nil {
		s.onSettle(label, err)
	}
	if err != nil {
		return nil, err
	}

	s.Invalidate(invalidates)
	return resp.Body, nil
}

// Invalidate marks every read providing a matching tag as stale and kicks a
// background refetch for those with active subscribers.
func (s *CacheService) Invalidate(tags []domain.Tag) {
	s.mu.Lock()
	affected := make(map[domain.Key]struct{})
	for _, tag := range tags {
		for provided, keys := range s.byTag {
			if !tag.Matches(provided) {
				continue
			}
			for key := range keys {
				affected[key] = struct{}{}
			}
		}
	}

	var refetch []*call
	var keys []domain.Key
	for key := range affected {
		e, ok := s.entries[key]
		if !ok {
			continue
		}
		e.stale = true
		if len(e.subs) > 0 && e.inflight == nil {
			refetch = append(refetch, s.beginFetchLocked(e))
			keys = append(keys, e.key)
		}
	}
	s.mu.Unlock()

	for i, c := range refetch {
		go s.runFetch(context.Background(), keys[i], c)
	}
}

// Clear drops all cache entries and the durable snapshots.
func (s *CacheService) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.entries = make(map[domain.Key]*entry)
	s.byTag = make(map[domain.Tag]map[domain.Key]struct{})
	s.subKeys = make(map[string]domain.Key)
	s.mu.Unlock()
	if s.snapshots == nil {
		return nil
	}
	if err := s.snapshots.Reset(ctx); err != nil {
		return fmt.Errorf("reset snapshots: %w", err)
	}
	return nil
}

// internals

func (s *CacheService) ensureLocked(path string, args map[string]string, entityType string) *entry {
	key := domain.MakeKey(path, args)
	if e, ok := s.entries[key]; ok {
		return e
	}
	e := &entry{
		key:        key,
		path:       path,
		args:       args,
		entityType: entityType,
		status:     domain.StatusUninitialized,
		subs:       make(map[string]struct{}),
		lastActive: s.clock.Now(),
	}
	s.entries[key] = e
	return e
}

func (s *CacheService) beginFetchLocked(e *entry) *call {
	c := &call{done: make(chan struct{})}
	e.inflight = c
	if e.status == domain.StatusUninitialized {
		e.status = domain.StatusLoading
	}
	return c
}

func (s *CacheService) runFetch(ctx context.Context, key domain.Key, c *call) {
	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		s.mu.Unlock()
		c.err = fmt.Errorf("cache entry for %s no longer exists", key)
		close(c.done)
		return
	}
	path, args, entityType := e.path, e.args, e.entityType
	s.mu.Unlock()

	resp, err := s.transport.Do(ctx, queryout.Request{Method: http.MethodGet, Path: path, Args: args})
	if err == nil && resp.StatusCode >= http.StatusBadRequest {
		err = domain.ErrorFromResponse(resp.StatusCode, resp.Body)
	}
	var items []json.RawMessage
	if err == nil {
		items = domain.Normalize(resp.Body)
	}

	s.mu.Lock()
	if e, ok := s.entries[key]; ok && e.inflight == c {
		e.inflight = nil
		if err != nil {
			// The entry holds its error but is not poisoned: the next read
			// retries, and previously cached items stay renderable.
			e.status = domain.StatusError
			e.err = err
		} else {
			e.status = domain.StatusSuccess
			e.err = nil
			e.stale = false
			e.items = items
			s.retagLocked(e, domain.DeriveTags(entityType, items))
		}
	}
	s.mu.Unlock()

	if err == nil && s.snapshots != nil {
		payload, marshalErr := json.Marshal(items)
		if marshalErr == nil {
			// Snapshot writes are best-effort; a failure never surfaces.
			_ = s.snapshots.Save(ctx, domain.Snapshot{
				Key:        key,
				Path:       path,
				Args:       args,
				EntityType: entityType,
				Payload:    payload,
				FetchedAt:  s.clock.Now(),
			})
		}
	}

	c.items = items
	c.err = err
	close(c.done)

	if s.onUpdate != nil {
		s.onUpdate(key)
	}
}

func (s *CacheService) retagLocked(e *entry, tags []domain.Tag) {
	for _, tag := range e.tags {
		if keys, ok := s.byTag[tag]; ok {
			delete(keys, e.key)
			if len(keys) == 0 {
				delete(s.byTag, tag)
			}
		}
	}
	e.tags = tags
	for _, tag := range tags {
		keys, ok := s.byTag[tag]
		if !ok {
			keys = make(map[domain.Key]struct{})
			s.byTag[tag] = keys
		}
		keys[e.key] = struct{}{}
	}
}

func (s *CacheService) sweepLocked() {
	now := s.clock.Now()
	for key, e := range s.entries {
		if len(e.subs) > 0 || e.inflight != nil {
			continue
		}
		if now.Sub(e.lastActive) < s.grace {
			continue
		}
		s.retagLocked(e, nil)
		delete(s.entries, key)
	}
}

func (e *entry) state() domain.ReadState {
	return domain.ReadState{
		Items:  cloneItems(e.items),
		Status: e.status,
		Stale:  e.stale,
		Err:    e.err,
	}
}

func awaitCall(ctx context.Context, c *call) ([]json.RawMessage, error) {
	select {
	case <-c.done:
		if c.err != nil {
			return nil, c.err
		}
		return cloneItems(c.items), nil
	case <-ctx.Done():
		// The caller abandoned the wait; the shared request continues for
		// everyone else and its result still lands in the cache.
		return nil, ctx.Err()
	}
}

func cloneItems(items []json.RawMessage) []json.RawMessage {
	if items == nil {
		return nil
	}
	out := make([]json.RawMessage, len(items))
	copy(out, items)
	return out
}
