// Package reconcile turns grocery-ledger transactions into per-user
// pantry state: it imports and extracts cooking items, auto-resolves
// the ones the shared dictionary already knows, and drives the
// interactive queue for the rest.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jpmardones/despensa/internal/catalog"
	"github.com/jpmardones/despensa/internal/ledger"
	"github.com/jpmardones/despensa/internal/metrics"
	"github.com/jpmardones/despensa/internal/pantry"
	"github.com/jpmardones/despensa/internal/store"
	"github.com/jpmardones/despensa/pkg/extract"
	"github.com/jpmardones/despensa/pkg/normalize"
	domain "github.com/jpmardones/despensa/pkg/types"
)

// session holds one user's transient queue state. Nothing here is
// persisted; a fresh import rebuilds it.
type session struct {
	pending  []domain.ExtractedItem
	skipped  []domain.ExtractedItem
	selected *domain.ExtractedItem
	counters domain.QueueCounters
}

// Service orchestrates imports and queue resolutions. The loading and
// saving latches are process-wide single-flight guards: a second
// import or resolution arriving while one is running is rejected, not
// queued.
type Service struct {
	store   store.Store
	ledger  ledger.Client
	catalog catalog.Catalog
	feed    *pantry.Feed
	logger  *slog.Logger
	nowFunc func() time.Time

	loading atomic.Bool
	saving  atomic.Bool

	mu       sync.Mutex
	sessions map[string]*session
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(fn func() time.Time) Option {
	return func(s *Service) {
		s.nowFunc = fn
	}
}

// NewService creates a reconciliation service.
func NewService(
	st store.Store,
	lc ledger.Client,
	cat catalog.Catalog,
	feed *pantry.Feed,
	opts ...Option,
) *Service {
	s := &Service{
		store:    st,
		ledger:   lc,
		catalog:  cat,
		feed:     feed,
		logger:   slog.Default(),
		nowFunc:  time.Now,
		sessions: make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) session(userID string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &session{}
		s.sessions[userID] = sess
	}
	return sess
}

// LoadItems imports the user's recent transactions: extracts cooking
// items, silently resolves the ones with known mappings into the
// pantry, and installs the rest as the pending queue. A second call
// while one import is running returns ErrLoadInFlight.
func (s *Service) LoadItems(ctx context.Context, userID string) (domain.ImportSummary, error) {
	if !s.loading.CompareAndSwap(false, true) {
		return domain.ImportSummary{}, ErrLoadInFlight
	}
	defer s.loading.Store(false)

	start := s.nowFunc()
	summary, err := s.load(ctx, userID)
	metrics.ImportDuration.Observe(s.nowFunc().Sub(start).Seconds())
	if err != nil {
		metrics.ImportErrorsTotal.Inc()
		return domain.ImportSummary{}, err
	}
	return summary, nil
}

func (s *Service) load(ctx context.Context, userID string) (domain.ImportSummary, error) {
	var (
		txs      []domain.Transaction
		mappings map[string]domain.Mapping
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txs, err = s.ledger.RecentTransactions(gctx, userID)
		if err != nil {
			return fmt.Errorf("fetching transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		mappings, err = s.store.GetAllMappings(gctx)
		if err != nil {
			return fmt.Errorf("fetching mappings: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.ImportSummary{}, err
	}

	items := extract.CookingItems(txs)
	unmapped := extract.Unmapped(items, mappings)
	mapped := extract.Mapped(items, mappings)
	metrics.ItemsExtractedTotal.Add(float64(len(items)))

	resolved := s.autoResolve(ctx, userID, mapped, mappings)

	s.mu.Lock()
	s.sessions[userID] = &session{
		pending:  unmapped,
		counters: domain.QueueCounters{AutoResolved: resolved},
	}
	s.mu.Unlock()

	if resolved > 0 {
		s.feed.Refresh(ctx, userID)
	}

	s.logger.Info("import complete",
		"user_id", userID,
		"extracted", len(items),
		"pending", len(unmapped),
		"auto_resolved", resolved,
	)

	return domain.ImportSummary{
		Extracted:    len(items),
		Pending:      len(unmapped),
		AutoResolved: resolved,
	}, nil
}

// autoResolve writes each already-mapped item into the pantry. Items
// resolve independently and in parallel; one item's failure never
// aborts the batch.
func (s *Service) autoResolve(
	ctx context.Context,
	userID string,
	mapped []domain.ExtractedItem,
	mappings map[string]domain.Mapping,
) int {
	var resolved atomic.Int64

	g := new(errgroup.Group)
	for _, item := range mapped {
		m, ok := mappings[item.NormalizedName]
		if !ok {
			continue
		}
		g.Go(func() error {
			if s.autoResolveItem(ctx, userID, item, m) {
				resolved.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	metrics.ItemsAutoResolvedTotal.Add(float64(resolved.Load()))
	return int(resolved.Load())
}

func (s *Service) autoResolveItem(
	ctx context.Context,
	userID string,
	item domain.ExtractedItem,
	m domain.Mapping,
) bool {
	var entry *domain.PantryEntry

	switch m.Kind {
	case domain.KindPrepared:
		entry = pantry.FreeformPreparedEntry(
			m.Source, m.NormalizedSource, item.TransactionID, s.nowFunc())

	case domain.KindIngredient, domain.KindUnknownIngredient, domain.KindUnknownPrepared:
		ing, err := s.catalog.Ingredient(ctx, m.CanonicalID)
		if errors.Is(err, catalog.ErrNotFound) {
			// A previously-working mapping points at a canonical id
			// the catalog no longer has. Skip the item but leave a
			// trace; silent decay of mappings is hard to debug.
			metrics.StaleMappingSkips.Inc()
			s.logger.Warn("stale mapping skipped",
				"normalized_source", m.NormalizedSource,
				"canonical_id", m.CanonicalID,
			)
			return false
		}
		if err != nil {
			s.logger.Warn("auto-resolve catalog lookup failed",
				"normalized_source", m.NormalizedSource,
				"error", err,
			)
			return false
		}
		entry = pantry.IngredientEntry(ing, item.TransactionID, s.nowFunc())

	default:
		s.logger.Warn("mapping with unrecognized kind skipped",
			"normalized_source", m.NormalizedSource,
			"kind", string(m.Kind),
		)
		return false
	}

	if err := s.store.UpsertPantryEntry(ctx, userID, entry); err != nil {
		s.logger.Warn("auto-resolve pantry write failed",
			"user_id", userID,
			"canonical_id", entry.CanonicalID,
			"error", err,
		)
		return false
	}
	return true
}

// ResolveIngredient resolves a pending item to a catalogued
// ingredient: records the mapping, stocks the pantry, and removes the
// item from the queue.
func (s *Service) ResolveIngredient(ctx context.Context, userID, normalizedName, canonicalID string) error {
	return s.resolve(ctx, userID, normalizedName, func(item domain.ExtractedItem) (resolution, error) {
		ing, err := s.catalog.Ingredient(ctx, canonicalID)
		if err != nil {
			return resolution{}, err
		}
		return resolution{
			mapping: &domain.Mapping{
				CanonicalID:      canonicalID,
				Source:           item.OriginalName,
				NormalizedSource: item.NormalizedName,
				Kind:             domain.KindIngredient,
				CreatedBy:        userID,
			},
			entry: pantry.IngredientEntry(ing, item.TransactionID, s.nowFunc()),
		}, nil
	}, func(c *domain.QueueCounters) { c.Mapped++ })
}

// ResolvePrepared resolves a pending item to a catalogued prepared
// dish, carrying the catalog's cuisine and shelf life.
func (s *Service) ResolvePrepared(ctx context.Context, userID, normalizedName, preparedFoodID string) error {
	return s.resolve(ctx, userID, normalizedName, func(item domain.ExtractedItem) (resolution, error) {
		pf, err := s.catalog.PreparedFood(ctx, preparedFoodID)
		if err != nil {
			return resolution{}, err
		}
		return resolution{
			mapping: &domain.Mapping{
				CanonicalID:      pf.ID,
				Source:           item.OriginalName,
				NormalizedSource: item.NormalizedName,
				Kind:             domain.KindPrepared,
				CreatedBy:        userID,
			},
			entry: pantry.CanonicalPreparedEntry(pf, item.TransactionID, s.nowFunc()),
		}, nil
	}, func(c *domain.QueueCounters) { c.Prepared++ })
}

// MarkPrepared resolves a pending item as a prepared dish the catalog
// does not know, keeping the shopper-facing name.
func (s *Service) MarkPrepared(ctx context.Context, userID, normalizedName string) error {
	return s.resolve(ctx, userID, normalizedName, func(item domain.ExtractedItem) (resolution, error) {
		return resolution{
			mapping: &domain.Mapping{
				CanonicalID:      normalize.PreparedFoodID(item.NormalizedName),
				Source:           item.OriginalName,
				NormalizedSource: item.NormalizedName,
				Kind:             domain.KindPrepared,
				CreatedBy:        userID,
			},
			entry: pantry.FreeformPreparedEntry(
				item.OriginalName, item.NormalizedName, item.TransactionID, s.nowFunc()),
		}, nil
	}, func(c *domain.QueueCounters) { c.Prepared++ })
}

// MarkUnknownIngredient resolves a pending item as an ingredient the
// catalog is missing, and reports it to the backlog.
func (s *Service) MarkUnknownIngredient(ctx context.Context, userID, normalizedName string) error {
	return s.resolve(ctx, userID, normalizedName, func(item domain.ExtractedItem) (resolution, error) {
		return resolution{
			mapping: &domain.Mapping{
				CanonicalID:      normalize.UnknownIngredientID(item.NormalizedName),
				Source:           item.OriginalName,
				NormalizedSource: item.NormalizedName,
				Kind:             domain.KindUnknownIngredient,
				CreatedBy:        userID,
			},
			entry: pantry.UnknownIngredientEntry(
				item.OriginalName, item.NormalizedName, item.TransactionID, s.nowFunc()),
			backlog: &backlogReport{
				kind:       store.UnknownIngredient,
				name:       item.OriginalName,
				normalized: item.NormalizedName,
			},
		}, nil
	}, func(c *domain.QueueCounters) { c.Mapped++ })
}

// MarkUnknownPrepared resolves a pending item as a prepared dish the
// catalog is missing, and reports it to the backlog.
func (s *Service) MarkUnknownPrepared(ctx context.Context, userID, normalizedName string) error {
	return s.resolve(ctx, userID, normalizedName, func(item domain.ExtractedItem) (resolution, error) {
		return resolution{
			mapping: &domain.Mapping{
				CanonicalID:      normalize.UnknownPreparedID(item.NormalizedName),
				Source:           item.OriginalName,
				NormalizedSource: item.NormalizedName,
				Kind:             domain.KindUnknownPrepared,
				CreatedBy:        userID,
			},
			entry: pantry.UnknownPreparedEntry(
				item.OriginalName, item.NormalizedName, item.TransactionID, s.nowFunc()),
			backlog: &backlogReport{
				kind:       store.UnknownPreparedFood,
				name:       item.OriginalName,
				normalized: item.NormalizedName,
			},
		}, nil
	}, func(c *domain.QueueCounters) { c.Prepared++ })
}

// resolve is the common queue-resolution path: single-flight guard,
// pending lookup, saga, then queue/counter bookkeeping. On saga
// failure the item stays pending so the user can retry.
func (s *Service) resolve(
	ctx context.Context,
	userID, normalizedName string,
	build func(domain.ExtractedItem) (resolution, error),
	bump func(*domain.QueueCounters),
) error {
	if !s.saving.CompareAndSwap(false, true) {
		return ErrSaveInFlight
	}
	defer s.saving.Store(false)

	sess := s.session(userID)

	s.mu.Lock()
	item, ok := findItem(sess.pending, normalizedName)
	s.mu.Unlock()
	if !ok {
		return ErrNotPending
	}

	res, err := build(item)
	if err != nil {
		return err
	}

	if err := s.runSaga(ctx, userID, res); err != nil {
		return err
	}

	s.mu.Lock()
	sess.pending = removeItem(sess.pending, normalizedName)
	if sess.selected != nil && sess.selected.NormalizedName == normalizedName {
		sess.selected = nil
	}
	bump(&sess.counters)
	s.mu.Unlock()

	s.feed.Refresh(ctx, userID)
	return nil
}

// Skip moves a pending item to the skipped pile. Pure in-memory move;
// nothing is persisted.
func (s *Service) Skip(userID, normalizedName string) error {
	sess := s.session(userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := findItem(sess.pending, normalizedName)
	if !ok {
		return ErrNotPending
	}
	sess.pending = removeItem(sess.pending, normalizedName)
	sess.skipped = append(sess.skipped, item)
	if sess.selected != nil && sess.selected.NormalizedName == normalizedName {
		sess.selected = nil
	}
	return nil
}

// Restore moves a skipped item back to pending, unchanged.
func (s *Service) Restore(userID, normalizedName string) error {
	sess := s.session(userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := findItem(sess.skipped, normalizedName)
	if !ok {
		return ErrNotPending
	}
	sess.skipped = removeItem(sess.skipped, normalizedName)
	sess.pending = append(sess.pending, item)
	return nil
}

// Select marks a pending item as the one under interactive resolution.
func (s *Service) Select(userID, normalizedName string) error {
	sess := s.session(userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := findItem(sess.pending, normalizedName)
	if !ok {
		return ErrNotPending
	}
	sess.selected = &item
	return nil
}

// ClearSelection drops the current selection.
func (s *Service) ClearSelection(userID string) {
	sess := s.session(userID)
	s.mu.Lock()
	sess.selected = nil
	s.mu.Unlock()
}

// Selected returns a copy of the currently-selected item, if any.
func (s *Service) Selected(userID string) *domain.ExtractedItem {
	sess := s.session(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess.selected == nil {
		return nil
	}
	item := *sess.selected
	return &item
}

// Pending returns a copy of the user's pending queue.
func (s *Service) Pending(userID string) []domain.ExtractedItem {
	sess := s.session(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ExtractedItem, len(sess.pending))
	copy(out, sess.pending)
	return out
}

// Skipped returns a copy of the user's skipped pile.
func (s *Service) Skipped(userID string) []domain.ExtractedItem {
	sess := s.session(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ExtractedItem, len(sess.skipped))
	copy(out, sess.skipped)
	return out
}

// Counters returns the user's session counters.
func (s *Service) Counters(userID string) domain.QueueCounters {
	sess := s.session(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return sess.counters
}

// Pantry returns the user's pantry enriched with catalog data, sorted
// most-urgent-first.
func (s *Service) Pantry(ctx context.Context, userID string) ([]domain.EnrichedEntry, error) {
	entries, err := s.store.ListPantry(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing pantry: %w", err)
	}

	ings, err := s.catalog.Ingredients(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading ingredient catalog: %w", err)
	}
	pfs, err := s.catalog.PreparedFoods(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading prepared-food catalog: %w", err)
	}

	return pantry.Enrich(entries,
		pantry.IngredientIndex(ings), pantry.PreparedFoodIndex(pfs), s.nowFunc()), nil
}

// RemoveEntry deletes one pantry entry and publishes a fresh snapshot.
func (s *Service) RemoveEntry(ctx context.Context, userID, canonicalID string) error {
	if err := s.store.RemovePantryEntry(ctx, userID, canonicalID); err != nil {
		return err
	}
	s.feed.Refresh(ctx, userID)
	return nil
}

// SetCuisine re-classifies a prepared pantry entry's cuisine and
// publishes a fresh snapshot.
func (s *Service) SetCuisine(ctx context.Context, userID, canonicalID string, cuisine domain.Cuisine) error {
	if err := s.store.SetPantryCuisine(ctx, userID, canonicalID, cuisine); err != nil {
		return err
	}
	s.feed.Refresh(ctx, userID)
	return nil
}

// UnknownReports returns the most-reported unknown items for a kind.
func (s *Service) UnknownReports(
	ctx context.Context,
	kind store.UnknownKind,
	limit int,
) ([]domain.UnknownItemReport, error) {
	return s.store.ListUnknownReports(ctx, kind, limit)
}

// ImportSweep re-runs extraction and auto-resolution for every user
// with a pantry, without touching queue sessions. Recurring purchases
// keep flowing in even when nobody has the queue open.
func (s *Service) ImportSweep(ctx context.Context) error {
	userIDs, err := s.store.ListPantryUserIDs(ctx)
	if err != nil {
		return fmt.Errorf("listing pantry users: %w", err)
	}

	mappings, err := s.store.GetAllMappings(ctx)
	if err != nil {
		return fmt.Errorf("fetching mappings: %w", err)
	}

	for _, userID := range userIDs {
		txs, err := s.ledger.RecentTransactions(ctx, userID)
		if err != nil {
			s.logger.Warn("sweep transaction fetch failed",
				"user_id", userID,
				"error", err,
			)
			continue
		}

		items := extract.CookingItems(txs)
		mapped := extract.Mapped(items, mappings)
		resolved := s.autoResolve(ctx, userID, mapped, mappings)
		if resolved > 0 {
			s.feed.Refresh(ctx, userID)
		}
	}
	return nil
}

func findItem(items []domain.ExtractedItem, normalizedName string) (domain.ExtractedItem, bool) {
	for _, it := range items {
		if it.NormalizedName == normalizedName {
			return it, true
		}
	}
	return domain.ExtractedItem{}, false
}

func removeItem(items []domain.ExtractedItem, normalizedName string) []domain.ExtractedItem {
	out := items[:0]
	for _, it := range items {
		if it.NormalizedName != normalizedName {
			out = append(out, it)
		}
	}
	return out
}
