package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/localserve/backend/internal/domain/providers"
	"github.com/localserve/backend/internal/infrastructure/observability"
)

const (
	submissionRateLimit   = 10
	submissionRateWindow  = time.Hour
	submissionDedupWindow = 24 * time.Hour
)

// guardBackend holds expiring counters and markers.
type guardBackend interface {
	// count returns the live counter for key and how long until it resets.
	count(ctx context.Context, key string) (int, time.Duration)
	// incr bumps the counter, starting a new window when none is live.
	incr(ctx context.Context, key string, window time.Duration)
	marked(ctx context.Context, key string) bool
	mark(ctx context.Context, key string, window time.Duration)
}

// submissionGuard rate limits and de-duplicates write requests per client.
// Checks happen before a submission; nothing is recorded until the
// submission has been stored, so a failed attempt can be retried as is.
type submissionGuard struct {
	backend guardBackend
}

func newSubmissionGuard(store providers.KeyValueStore) *submissionGuard {
	if store == nil {
		return &submissionGuard{backend: newMemoryGuard()}
	}
	return &submissionGuard{backend: &kvGuard{store: store}}
}

// allow reports whether another submission fits the client's window.
func (g *submissionGuard) allow(ctx context.Context, rateKey string) (bool, time.Duration) {
	n, resetIn := g.backend.count(ctx, rateKey)
	if n >= submissionRateLimit {
		return false, resetIn
	}
	return true, 0
}

func (g *submissionGuard) isDuplicate(ctx context.Context, dupKey string) bool {
	return g.backend.marked(ctx, dupKey)
}

// recordAccepted charges the rate window and remembers the payload.
func (g *submissionGuard) recordAccepted(ctx context.Context, rateKey, dupKey string) {
	g.backend.incr(ctx, rateKey, submissionRateWindow)
	g.backend.mark(ctx, dupKey, submissionDedupWindow)
}

// kvGuard keeps guard state in the shared store so every API replica sees
// it. Store errors fail open.
type kvGuard struct {
	store providers.KeyValueStore
}

type rateLimitState struct {
	Count int `json:"count"`
}

func (g *kvGuard) count(ctx context.Context, key string) (int, time.Duration) {
	data, err := g.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, providers.ErrKeyNotFound) {
			observability.LoggerFromContext(ctx).Warn().Err(err).Str("key", key).Msg("Rate limit state unavailable")
		}
		return 0, 0
	}
	var state rateLimitState
	if err := json.Unmarshal(data, &state); err != nil {
		return 0, 0
	}
	return state.Count, submissionRateWindow
}

func (g *kvGuard) incr(ctx context.Context, key string, window time.Duration) {
	n, _ := g.count(ctx, key)
	data, _ := json.Marshal(rateLimitState{Count: n + 1})
	if err := g.store.Set(ctx, key, data, int(window.Seconds())); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("key", key).Msg("Failed to record rate limit state")
	}
}

func (g *kvGuard) marked(ctx context.Context, key string) bool {
	exists, err := g.store.Exists(ctx, key)
	return err == nil && exists
}

func (g *kvGuard) mark(ctx context.Context, key string, window time.Duration) {
	if err := g.store.Set(ctx, key, []byte("1"), int(window.Seconds())); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("key", key).Msg("Failed to record submission fingerprint")
	}
}

// memoryGuard is the single-process fallback.
type memoryGuard struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]memoryEntry
}

type memoryEntry struct {
	count     int
	expiresAt time.Time
}

func newMemoryGuard() *memoryGuard {
	return &memoryGuard{now: time.Now, entries: make(map[string]memoryEntry)}
}

// live returns the unexpired entry for key. Callers hold mu.
func (m *memoryGuard) live(key string) (memoryEntry, bool) {
	e, ok := m.entries[key]
	if !ok {
		return memoryEntry{}, false
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.entries, key)
		return memoryEntry{}, false
	}
	return e, true
}

func (m *memoryGuard) count(_ context.Context, key string) (int, time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.live(key)
	if !ok {
		return 0, 0
	}
	return e.count, e.expiresAt.Sub(m.now())
}

func (m *memoryGuard) incr(_ context.Context, key string, window time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.live(key)
	if !ok {
		e = memoryEntry{expiresAt: m.now().Add(window)}
	}
	e.count++
	m.entries[key] = e
}

func (m *memoryGuard) marked(_ context.Context, key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.live(key)
	return ok
}

func (m *memoryGuard) mark(_ context.Context, key string, window time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{count: 1, expiresAt: m.now().Add(window)}
}

// clientIP prefers proxy headers over the socket address.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// fingerprint hashes case- and whitespace-folded submission fields so
// resubmits of the same text by the same client collapse to one key.
func fingerprint(parts ...string) string {
	h := sha256.New()
	for i, p := range parts {
		if i > 0 {
			h.Write([]byte{'|'})
		}
		h.Write([]byte(strings.Join(strings.Fields(strings.ToLower(p)), " ")))
	}
	return hex.EncodeToString(h.Sum(nil))
}
