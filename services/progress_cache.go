package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"main/model"

	"github.com/redis/go-redis/v9"
)

// progressCacheTTL keeps snapshots short-lived; the version field guards
// against serving a snapshot older than the store's copy.
const progressCacheTTL = 30 * time.Second

// ProgressCache is a read-through cache of UserProgress snapshots. Writes
// invalidate before the store write and re-populate after, so a stale entry
// can never outlive a successful compare-and-swap.
type ProgressCache struct {
	client *redis.Client
}

// progressCacheEntry carries the CAS version and the daily-reset watermark
// explicitly; the aggregate's own JSON form omits both.
type progressCacheEntry struct {
	Version        int64               `json:"version"`
	LastDailyReset time.Time           `json:"last_daily_reset"`
	Progress       *model.UserProgress `json:"progress"`
	CachedAt       time.Time           `json:"cached_at"`
}

func encodeProgressEntry(progress *model.UserProgress) ([]byte, error) {
	return json.Marshal(progressCacheEntry{
		Version:        progress.Version,
		LastDailyReset: progress.LastDailyReset,
		Progress:       progress,
		CachedAt:       time.Now(),
	})
}

// decodeProgressEntry restores the fields the aggregate's JSON form drops.
// A malformed entry decodes to nil and is treated as a miss.
func decodeProgressEntry(data []byte) *model.UserProgress {
	var entry progressCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil || entry.Progress == nil {
		return nil
	}
	entry.Progress.Version = entry.Version
	entry.Progress.LastDailyReset = entry.LastDailyReset
	return entry.Progress
}

func NewProgressCache(redisURL string) (*ProgressCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &ProgressCache{client: client}, nil
}

func progressKey(userID string) string {
	return fmt.Sprintf("progress:%s", userID)
}

// Get returns the cached snapshot, or nil on a miss.
func (pc *ProgressCache) Get(ctx context.Context, userID string) (*model.UserProgress, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID cannot be empty")
	}

	data, err := pc.client.Get(ctx, progressKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress from cache: %v", err)
	}

	return decodeProgressEntry(data), nil
}

// Set caches a snapshot. Callers pass the post-save aggregate so the cached
// version matches the store.
func (pc *ProgressCache) Set(ctx context.Context, progress *model.UserProgress) error {
	if progress == nil {
		return fmt.Errorf("cannot cache nil progress")
	}

	data, err := encodeProgressEntry(progress)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %v", err)
	}

	if err := pc.client.Set(ctx, progressKey(progress.UserID), data, progressCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache progress: %v", err)
	}
	return nil
}

// Invalidate drops the cached snapshot for a user.
func (pc *ProgressCache) Invalidate(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("userID cannot be empty")
	}
	if err := pc.client.Del(ctx, progressKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate progress cache: %v", err)
	}
	return nil
}

func (pc *ProgressCache) IsConnected() bool {
	if pc == nil || pc.client == nil {
		return false
	}
	return pc.client.Ping(context.Background()).Err() == nil
}

func (pc *ProgressCache) Close() error {
	return pc.client.Close()
}
