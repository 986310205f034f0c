package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/nottherealepic/giveaway-bot/internal/common/logger"
)

const processingKeyPrefix = "giveaway:processing:"

// Lease TTL bounds how long a crashed instance can hold a giveaway hostage.
const defaultLeaseTTL = 2 * time.Minute

// ProcessingSet marks giveaways as in-flight so concurrent scanner instances
// do not pick up the same record. The database close is still the
// authoritative at-most-once guard; this only avoids wasted work.
type ProcessingSet struct {
	rdb   *goredis.Client
	token string
	ttl   time.Duration
}

func NewProcessingSet(rdb *goredis.Client) *ProcessingSet {
	return &ProcessingSet{
		rdb:   rdb,
		token: uuid.New().String(),
		ttl:   defaultLeaseTTL,
	}
}

// Acquire attempts to claim the giveaway for this instance. A false return
// means another holder has it or Redis was unreachable; the caller skips the
// record and retries on a later sweep.
func (p *ProcessingSet) Acquire(ctx context.Context, giveawayID int64) bool {
	ok, err := p.rdb.SetNX(ctx, p.key(giveawayID), p.token, p.ttl).Result()
	if err != nil {
		logger.Warn().Err(err).Int64("giveaway_id", giveawayID).Msg("processing lease acquire failed")
		return false
	}
	return ok
}

// Release frees the lease after the draw attempt, successful or not.
func (p *ProcessingSet) Release(ctx context.Context, giveawayID int64) {
	if err := p.rdb.Del(ctx, p.key(giveawayID)).Err(); err != nil {
		logger.Warn().Err(err).Int64("giveaway_id", giveawayID).Msg("processing lease release failed")
	}
}

func (p *ProcessingSet) key(giveawayID int64) string {
	return fmt.Sprintf("%s%d", processingKeyPrefix, giveawayID)
}
