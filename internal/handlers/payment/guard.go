package payment

import (
	"context"
	"sync"
	"time"

	"glowmart_back_end/internal/database"
)

// TranGuard de-duplicates gateway callbacks per transaction id. Marked
// only after a callback has been fully processed, so a retry of a failed
// attempt still gets revalidated.
type TranGuard interface {
	Processed(ctx context.Context, tranID string) bool
	MarkProcessed(ctx context.Context, tranID string)
}

const tranGuardTTL = 24 * time.Hour

// RedisTranGuard is the production guard.
type RedisTranGuard struct{}

func (RedisTranGuard) Processed(ctx context.Context, tranID string) bool {
	n, err := database.Redis.Exists(ctx, "tran:"+tranID).Result()
	return err == nil && n > 0
}

func (RedisTranGuard) MarkProcessed(ctx context.Context, tranID string) {
	database.Redis.Set(ctx, "tran:"+tranID, "1", tranGuardTTL)
}

// MemoryTranGuard backs tests.
type MemoryTranGuard struct {
	mu   sync.Mutex
	seen map[string]bool
}

func NewMemoryTranGuard() *MemoryTranGuard {
	return &MemoryTranGuard{seen: make(map[string]bool)}
}

func (g *MemoryTranGuard) Processed(ctx context.Context, tranID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seen[tranID]
}

func (g *MemoryTranGuard) MarkProcessed(ctx context.Context, tranID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seen[tranID] = true
}
