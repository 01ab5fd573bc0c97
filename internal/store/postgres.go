package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/jpmardones/despensa/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
//
// TODO(test): PostgresStore methods require live Postgres, tested via integration tests.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// GetAllMappings returns the full shared dictionary keyed by normalized name.
func (s *PostgresStore) GetAllMappings(ctx context.Context) (map[string]domain.Mapping, error) {
	rows, err := s.pool.Query(ctx, queryGetAllMappings)
	if err != nil {
		return nil, fmt.Errorf("querying mappings: %w", err)
	}
	defer rows.Close()

	mappings := make(map[string]domain.Mapping)
	for rows.Next() {
		var m domain.Mapping
		if err := scanMapping(rows, &m); err != nil {
			return nil, fmt.Errorf("scanning mapping: %w", err)
		}
		mappings[m.NormalizedSource] = m
	}

	return mappings, rows.Err()
}

// GetMapping retrieves a single mapping by its normalized name.
func (s *PostgresStore) GetMapping(
	ctx context.Context,
	normalized string,
) (*domain.Mapping, error) {
	m := &domain.Mapping{}
	err := scanMapping(s.pool.QueryRow(ctx, queryGetMapping, normalized), m)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// CreateMapping inserts a mapping unless one already exists for its
// normalized key. ON CONFLICT DO NOTHING makes concurrent duplicate
// creates a no-op; the record that won is returned instead.
func (s *PostgresStore) CreateMapping(
	ctx context.Context,
	m *domain.Mapping,
) (bool, *domain.Mapping, error) {
	args := pgx.NamedArgs{
		"normalized_source": m.NormalizedSource,
		"canonical_id":      m.CanonicalID,
		"source":            m.Source,
		"kind":              string(m.Kind),
		"created_by":        m.CreatedBy,
	}

	err := s.pool.QueryRow(ctx, queryCreateMapping, args).Scan(&m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		existing, getErr := s.GetMapping(ctx, m.NormalizedSource)
		if getErr != nil {
			return false, nil, fmt.Errorf("fetching conflicting mapping: %w", getErr)
		}
		return false, existing, nil
	}
	if err != nil {
		return false, nil, fmt.Errorf("creating mapping: %w", err)
	}

	return true, nil, nil
}

// UpsertPantryEntry inserts or merges a pantry entry keyed by
// (user, canonical id). Repeat purchases refresh quantity, timestamps
// and expiry; a stored cuisine or source-transaction reference survives
// writes that omit them.
func (s *PostgresStore) UpsertPantryEntry(
	ctx context.Context,
	userID string,
	e *domain.PantryEntry,
) error {
	args := pgx.NamedArgs{
		"user_id":               userID,
		"canonical_id":          e.CanonicalID,
		"name":                  e.Name,
		"quantity":              e.Quantity,
		"unit":                  e.Unit,
		"purchased_at":          e.PurchasedAt,
		"estimated_expiry":      e.EstimatedExpiry,
		"status":                string(e.Status),
		"entry_type":            string(e.Type),
		"cuisine":               nullable(string(e.Cuisine)),
		"source_transaction_id": nullable(e.SourceTransactionID),
	}

	if _, err := s.pool.Exec(ctx, queryUpsertPantryEntry, args); err != nil {
		return fmt.Errorf("upserting pantry entry: %w", err)
	}
	return nil
}

// ListPantry returns all pantry entries for a user.
func (s *PostgresStore) ListPantry(
	ctx context.Context,
	userID string,
) ([]domain.PantryEntry, error) {
	rows, err := s.pool.Query(ctx, queryListPantry, userID)
	if err != nil {
		return nil, fmt.Errorf("querying pantry: %w", err)
	}
	defer rows.Close()

	var entries []domain.PantryEntry
	for rows.Next() {
		var e domain.PantryEntry
		if err := rows.Scan(
			&e.CanonicalID, &e.Name, &e.Quantity, &e.Unit,
			&e.PurchasedAt, &e.EstimatedExpiry, &e.Status, &e.Type,
			&e.Cuisine, &e.SourceTransactionID,
		); err != nil {
			return nil, fmt.Errorf("scanning pantry entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// RemovePantryEntry deletes one entry from a user's pantry.
func (s *PostgresStore) RemovePantryEntry(ctx context.Context, userID, canonicalID string) error {
	if _, err := s.pool.Exec(ctx, queryRemovePantryEntry, userID, canonicalID); err != nil {
		return fmt.Errorf("removing pantry entry: %w", err)
	}
	return nil
}

// SetPantryCuisine re-classifies the cuisine of a prepared pantry entry.
func (s *PostgresStore) SetPantryCuisine(
	ctx context.Context,
	userID, canonicalID string,
	cuisine domain.Cuisine,
) error {
	tag, err := s.pool.Exec(ctx, querySetPantryCuisine, userID, canonicalID, string(cuisine))
	if err != nil {
		return fmt.Errorf("setting pantry cuisine: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPantryUserIDs returns every user that has at least one pantry entry.
func (s *PostgresStore) ListPantryUserIDs(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, queryListPantryUserIDs)
	if err != nil {
		return nil, fmt.Errorf("querying pantry users: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning user id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// ReportUnknownItem creates or increments the backlog counter for a
// normalized name. The first report fixes reported_by; later reports
// from any user bump count and refresh last_reported_at in a single
// statement.
func (s *PostgresStore) ReportUnknownItem(
	ctx context.Context,
	kind UnknownKind,
	name, normalized, userID string,
) error {
	_, err := s.pool.Exec(ctx, queryReportUnknownItem, string(kind), normalized, name, userID)
	if err != nil {
		return fmt.Errorf("reporting unknown item: %w", err)
	}
	return nil
}

// ListUnknownReports returns backlog entries for a kind, most reported first.
func (s *PostgresStore) ListUnknownReports(
	ctx context.Context,
	kind UnknownKind,
	limit int,
) ([]domain.UnknownItemReport, error) {
	rows, err := s.pool.Query(ctx, queryListUnknownReports, string(kind), limit)
	if err != nil {
		return nil, fmt.Errorf("querying unknown reports: %w", err)
	}
	defer rows.Close()

	var reports []domain.UnknownItemReport
	for rows.Next() {
		var r domain.UnknownItemReport
		if err := rows.Scan(
			&r.Name, &r.NormalizedName, &r.Count,
			&r.ReportedBy, &r.CreatedAt, &r.LastReportedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning unknown report: %w", err)
		}
		reports = append(reports, r)
	}

	return reports, rows.Err()
}

// GetIngredient retrieves a canonical ingredient by id.
func (s *PostgresStore) GetIngredient(
	ctx context.Context,
	id string,
) (*domain.CanonicalIngredient, error) {
	ing := &domain.CanonicalIngredient{}
	err := scanIngredient(s.pool.QueryRow(ctx, queryGetIngredient, id), ing)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ing, nil
}

// ListIngredients returns the full canonical-ingredient catalog.
func (s *PostgresStore) ListIngredients(ctx context.Context) ([]domain.CanonicalIngredient, error) {
	rows, err := s.pool.Query(ctx, queryListIngredients)
	if err != nil {
		return nil, fmt.Errorf("querying ingredients: %w", err)
	}
	defer rows.Close()

	var ings []domain.CanonicalIngredient
	for rows.Next() {
		var ing domain.CanonicalIngredient
		if err := scanIngredient(rows, &ing); err != nil {
			return nil, fmt.Errorf("scanning ingredient: %w", err)
		}
		ings = append(ings, ing)
	}

	return ings, rows.Err()
}

// GetPreparedFood retrieves a canonical prepared food by id.
func (s *PostgresStore) GetPreparedFood(
	ctx context.Context,
	id string,
) (*domain.CanonicalPreparedFood, error) {
	pf := &domain.CanonicalPreparedFood{}
	err := scanPreparedFood(s.pool.QueryRow(ctx, queryGetPreparedFood, id), pf)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return pf, nil
}

// ListPreparedFoods returns the full canonical-prepared-food catalog.
func (s *PostgresStore) ListPreparedFoods(ctx context.Context) ([]domain.CanonicalPreparedFood, error) {
	rows, err := s.pool.Query(ctx, queryListPreparedFoods)
	if err != nil {
		return nil, fmt.Errorf("querying prepared foods: %w", err)
	}
	defer rows.Close()

	var pfs []domain.CanonicalPreparedFood
	for rows.Next() {
		var pf domain.CanonicalPreparedFood
		if err := scanPreparedFood(rows, &pf); err != nil {
			return nil, fmt.Errorf("scanning prepared food: %w", err)
		}
		pfs = append(pfs, pf)
	}

	return pfs, rows.Err()
}

// SeedCatalog upserts the reference catalogs. Only the seed command
// calls this; the reconciliation flow treats the catalogs as read-only.
func (s *PostgresStore) SeedCatalog(
	ctx context.Context,
	ings []domain.CanonicalIngredient,
	pfs []domain.CanonicalPreparedFood,
) error {
	for i := range ings {
		ing := &ings[i]
		args := pgx.NamedArgs{
			"id":              ing.ID,
			"name_es":         ing.Names.ES,
			"name_en":         ing.Names.EN,
			"category":        ing.Category,
			"icon":            ing.Icon,
			"default_unit":    ing.DefaultUnit,
			"shelf_life_days": ing.ShelfLifeDays,
			"substitutions":   ing.Substitutions,
		}
		if _, err := s.pool.Exec(ctx, querySeedIngredient, args); err != nil {
			return fmt.Errorf("seeding ingredient %s: %w", ing.ID, err)
		}
	}

	for i := range pfs {
		pf := &pfs[i]
		args := pgx.NamedArgs{
			"id":              pf.ID,
			"name_es":         pf.Names.ES,
			"name_en":         pf.Names.EN,
			"cuisine":         string(pf.Cuisine),
			"icon":            pf.Icon,
			"shelf_life_days": pf.ShelfLifeDays,
		}
		if _, err := s.pool.Exec(ctx, querySeedPreparedFood, args); err != nil {
			return fmt.Errorf("seeding prepared food %s: %w", pf.ID, err)
		}
	}

	return nil
}

// scannable abstracts pgx.Row and pgx.Rows for reuse.
type scannable interface {
	Scan(dest ...any) error
}

func scanMapping(row scannable, m *domain.Mapping) error {
	return row.Scan(
		&m.NormalizedSource, &m.CanonicalID, &m.Source,
		&m.Kind, &m.CreatedBy, &m.CreatedAt,
	)
}

func scanIngredient(row scannable, ing *domain.CanonicalIngredient) error {
	return row.Scan(
		&ing.ID, &ing.Names.ES, &ing.Names.EN, &ing.Category,
		&ing.Icon, &ing.DefaultUnit, &ing.ShelfLifeDays, &ing.Substitutions,
	)
}

func scanPreparedFood(row scannable, pf *domain.CanonicalPreparedFood) error {
	return row.Scan(
		&pf.ID, &pf.Names.ES, &pf.Names.EN,
		&pf.Cuisine, &pf.Icon, &pf.ShelfLifeDays,
	)
}

// nullable maps an empty string to SQL NULL so optional fields are
// omitted from the stored row rather than persisted as empty strings.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
