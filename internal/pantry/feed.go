package pantry

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jpmardones/despensa/internal/catalog"
	"github.com/jpmardones/despensa/internal/metrics"
	"github.com/jpmardones/despensa/internal/store"
	domain "github.com/jpmardones/despensa/pkg/types"
)

// Sink receives enriched pantry snapshots for delivery to a user.
type Sink interface {
	PushPantry(userID string, items []domain.EnrichedEntry)
}

// Feed maintains live pantry subscriptions. Each subscribed user gets
// an enriched snapshot immediately and again after every pantry write.
type Feed struct {
	store   store.Store
	catalog catalog.Catalog
	sink    Sink
	logger  *slog.Logger
	nowFunc func() time.Time

	mu     sync.Mutex
	active map[string]uint64 // userID -> subscription generation
	gen    uint64
}

// FeedOption configures a Feed.
type FeedOption func(*Feed)

// WithFeedLogger sets the logger.
func WithFeedLogger(l *slog.Logger) FeedOption {
	return func(f *Feed) {
		f.logger = l
	}
}

// WithFeedNowFunc overrides the time function for testing.
func WithFeedNowFunc(fn func() time.Time) FeedOption {
	return func(f *Feed) {
		f.nowFunc = fn
	}
}

// NewFeed creates a Feed that reads pantries from s, enriches them via
// cat, and delivers snapshots through sink.
func NewFeed(s store.Store, cat catalog.Catalog, sink Sink, opts ...FeedOption) *Feed {
	f := &Feed{
		store:   s,
		catalog: cat,
		sink:    sink,
		logger:  slog.Default(),
		nowFunc: time.Now,
		active:  make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Subscribe registers a user for live snapshots and pushes the current
// pantry. A second subscribe for an already-subscribed user is
// ignored. If the user unsubscribes while the initial snapshot is
// being fetched, the push is abandoned.
func (f *Feed) Subscribe(ctx context.Context, userID string) error {
	f.mu.Lock()
	if _, ok := f.active[userID]; ok {
		f.mu.Unlock()
		return nil
	}
	f.gen++
	gen := f.gen
	f.active[userID] = gen
	f.mu.Unlock()

	metrics.FeedSubscribers.Inc()

	if err := f.push(ctx, userID, gen); err != nil {
		return fmt.Errorf("initial pantry snapshot: %w", err)
	}
	return nil
}

// Unsubscribe removes a user's subscription. Unsubscribing a user who
// is not subscribed is a no-op.
func (f *Feed) Unsubscribe(userID string) {
	f.mu.Lock()
	_, ok := f.active[userID]
	delete(f.active, userID)
	f.mu.Unlock()

	if ok {
		metrics.FeedSubscribers.Dec()
	}
}

// Subscribed reports whether the user currently has a live
// subscription.
func (f *Feed) Subscribed(userID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.active[userID]
	return ok
}

// Refresh pushes a fresh snapshot to a subscribed user. For users
// without a subscription it does nothing.
func (f *Feed) Refresh(ctx context.Context, userID string) {
	f.mu.Lock()
	gen, ok := f.active[userID]
	f.mu.Unlock()
	if !ok {
		return
	}

	if err := f.push(ctx, userID, gen); err != nil {
		f.logger.Warn("pantry snapshot push failed",
			"user_id", userID,
			"error", err,
		)
	}
}

func (f *Feed) push(ctx context.Context, userID string, gen uint64) error {
	entries, err := f.store.ListPantry(ctx, userID)
	if err != nil {
		return fmt.Errorf("listing pantry: %w", err)
	}

	ings, err := f.catalog.Ingredients(ctx)
	if err != nil {
		return fmt.Errorf("loading ingredient catalog: %w", err)
	}
	pfs, err := f.catalog.PreparedFoods(ctx)
	if err != nil {
		return fmt.Errorf("loading prepared-food catalog: %w", err)
	}

	enriched := Enrich(entries, IngredientIndex(ings), PreparedFoodIndex(pfs), f.nowFunc())

	// The user may have unsubscribed (or resubscribed) while we were
	// fetching; deliver only if this generation is still current.
	f.mu.Lock()
	current, ok := f.active[userID]
	f.mu.Unlock()
	if !ok || current != gen {
		return nil
	}

	f.sink.PushPantry(userID, enriched)
	metrics.FeedPushesTotal.Inc()
	return nil
}
