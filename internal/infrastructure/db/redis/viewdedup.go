package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/helpdesk/faq-portal/internal/api/metrics"
)

const viewWindow = time.Hour

// ViewDedup suppresses repeat FAQ views from the same viewer, backed by Redis.
// Key format: view:<faq_id>:<viewer_key>
type ViewDedup struct {
	client *redis.Client
}

// NewViewDedup creates a ViewDedup wrapping the given Redis client.
func NewViewDedup(client *redis.Client) *ViewDedup {
	return &ViewDedup{client: client}
}

// FirstView records the viewer/FAQ pair and reports whether this is the first
// view within the dedup window. The key expires after viewWindow, so the same
// viewer counts again later.
func (d *ViewDedup) FirstView(ctx context.Context, viewerKey, faqID string) (bool, error) {
	first, err := d.client.SetNX(ctx, d.key(viewerKey, faqID), "1", viewWindow).Result()
	if err != nil {
		return false, fmt.Errorf("view dedup: %w", err)
	}

	if first {
		metrics.ViewsDedupTotal.WithLabelValues("miss").Inc()
	} else {
		metrics.ViewsDedupTotal.WithLabelValues("hit").Inc()
	}
	return first, nil
}

func (d *ViewDedup) key(viewerKey, faqID string) string {
	return fmt.Sprintf("view:%s:%s", faqID, viewerKey)
}
