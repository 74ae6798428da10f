package enquiries

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/meridianfx/enquiries-api/pkg/logging"
)

const dedupeKeyPrefix = "enquiries:fp:"

// DedupeGuard suppresses duplicate submissions across clients: the
// first write of a fingerprint within the TTL wins, later identical
// ones are rejected. The client-side in-flight guard cannot see two
// browser tabs; this one can.
//
// Redis being unavailable degrades to allowing the submission. Losing a
// lead to a strict guard costs more than an occasional duplicate
// document in the triage queue.
type DedupeGuard struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *logging.Logger

	// onDegrade is called when Redis fails and the guard waves the
	// submission through; the metrics layer hooks in here.
	onDegrade func()
}

// NewDedupeGuard creates a guard with the given fingerprint TTL.
func NewDedupeGuard(rdb *redis.Client, ttl time.Duration, logger *logging.Logger) *DedupeGuard {
	if rdb == nil {
		panic("enquiries: redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &DedupeGuard{rdb: rdb, ttl: ttl, logger: logger}
}

// OnDegrade registers a callback fired whenever Redis failure forces
// the guard open.
func (g *DedupeGuard) OnDegrade(fn func()) {
	g.onDegrade = fn
}

// Reserve claims the fingerprint for req. It returns false when an
// identical enquiry already holds the fingerprint within the TTL.
func (g *DedupeGuard) Reserve(ctx context.Context, req *SubmitRequest) bool {
	key := dedupeKeyPrefix + Fingerprint(req)

	ok, err := g.rdb.SetNX(ctx, key, "1", g.ttl).Result()
	if err != nil {
		g.logger.Warn("dedupe guard degraded, allowing submission", "error", err)
		if g.onDegrade != nil {
			g.onDegrade()
		}
		return true
	}
	return ok
}

// Release frees req's fingerprint early. Called when the write the
// reservation covered never landed, so the manual retry the prospect is
// invited to make is not rejected as a duplicate. Best effort: on Redis
// failure the fingerprint simply ages out with the TTL.
func (g *DedupeGuard) Release(ctx context.Context, req *SubmitRequest) {
	key := dedupeKeyPrefix + Fingerprint(req)
	if err := g.rdb.Del(ctx, key).Err(); err != nil {
		g.logger.Warn("failed to release dedupe fingerprint", "error", err)
	}
}

// Fingerprint hashes the fields a resubmitting prospect would repeat
// verbatim. Name is excluded: the same person retyping their name
// slightly differently should still be caught by email+phone+message.
func Fingerprint(req *SubmitRequest) string {
	h := sha256.New()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(req.Email))))
	h.Write([]byte{'|'})
	h.Write([]byte(req.Phone.String()))
	h.Write([]byte{'|'})
	h.Write([]byte(strings.TrimSpace(req.Message)))
	return hex.EncodeToString(h.Sum(nil))
}
