package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"docqa/internal/model"
)

// HistoryCache keeps per-session conversation history in Redis so clients
// can resume a conversation by session id instead of resending every turn.
type HistoryCache struct {
	client     *redisv9.Client
	historyTTL time.Duration
}

func NewHistoryCache(client *redisv9.Client, historyTTL time.Duration) *HistoryCache {
	if historyTTL <= 0 {
		historyTTL = 30 * time.Minute
	}
	return &HistoryCache{client: client, historyTTL: historyTTL}
}

func (c *HistoryCache) GetHistory(ctx context.Context, sessionID string) ([]model.ConversationTurn, bool, error) {
	raw, err := c.client.Get(ctx, c.historyKey(sessionID)).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get history failed: %w", err)
	}

	var turns []model.ConversationTurn
	if err := json.Unmarshal([]byte(raw), &turns); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached history failed: %w", err)
	}
	return turns, true, nil
}

func (c *HistoryCache) SetHistory(ctx context.Context, sessionID string, turns []model.ConversationTurn) error {
	payload, err := json.Marshal(turns)
	if err != nil {
		return fmt.Errorf("marshal history cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.historyKey(sessionID), payload, c.historyTTL).Err(); err != nil {
		return fmt.Errorf("redis set history failed: %w", err)
	}
	return nil
}

func (c *HistoryCache) DeleteHistory(ctx context.Context, sessionID string) error {
	if err := c.client.Del(ctx, c.historyKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete history failed: %w", err)
	}
	return nil
}

func (c *HistoryCache) historyKey(sessionID string) string {
	return fmt.Sprintf("qa:history:%s", sessionID)
}
