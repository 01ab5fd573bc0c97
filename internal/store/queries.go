package store

// SQL query constants organized by entity.
// All SQL lives here — PostgresStore methods reference these constants.

// Mapping queries.
const (
	queryGetAllMappings = `
		SELECT normalized_source, canonical_id, source, kind, created_by, created_at
		FROM item_mappings`

	queryGetMapping = `
		SELECT normalized_source, canonical_id, source, kind, created_by, created_at
		FROM item_mappings
		WHERE normalized_source = $1`

	queryCreateMapping = `
		INSERT INTO item_mappings (
			normalized_source, canonical_id, source, kind, created_by, created_at
		) VALUES (
			@normalized_source, @canonical_id, @source, @kind, @created_by, now()
		)
		ON CONFLICT (normalized_source) DO NOTHING
		RETURNING created_at`
)

// Pantry queries.
const (
	queryUpsertPantryEntry = `
		INSERT INTO pantry_entries (
			user_id, canonical_id, name, quantity, unit,
			purchased_at, estimated_expiry, status, entry_type,
			cuisine, source_transaction_id
		) VALUES (
			@user_id, @canonical_id, @name, @quantity, @unit,
			@purchased_at, @estimated_expiry, @status, @entry_type,
			@cuisine, @source_transaction_id
		)
		ON CONFLICT (user_id, canonical_id) DO UPDATE SET
			name = EXCLUDED.name,
			quantity = EXCLUDED.quantity,
			unit = EXCLUDED.unit,
			purchased_at = EXCLUDED.purchased_at,
			estimated_expiry = EXCLUDED.estimated_expiry,
			status = EXCLUDED.status,
			entry_type = EXCLUDED.entry_type,
			cuisine = COALESCE(EXCLUDED.cuisine, pantry_entries.cuisine),
			source_transaction_id = COALESCE(EXCLUDED.source_transaction_id, pantry_entries.source_transaction_id)`

	queryListPantry = `
		SELECT canonical_id, name, quantity, unit,
			purchased_at, estimated_expiry, status, entry_type,
			COALESCE(cuisine, ''), COALESCE(source_transaction_id, '')
		FROM pantry_entries
		WHERE user_id = $1
		ORDER BY canonical_id`

	queryRemovePantryEntry = `
		DELETE FROM pantry_entries
		WHERE user_id = $1 AND canonical_id = $2`

	querySetPantryCuisine = `
		UPDATE pantry_entries SET cuisine = $3
		WHERE user_id = $1 AND canonical_id = $2`

	queryListPantryUserIDs = `
		SELECT DISTINCT user_id FROM pantry_entries ORDER BY user_id`
)

// Unknown-item backlog queries. The counter increment is a single
// statement so concurrent reporters never lose an update.
const (
	queryReportUnknownItem = `
		INSERT INTO unknown_reports (
			kind, normalized_name, name, count, reported_by, created_at, last_reported_at
		) VALUES (
			$1, $2, $3, 1, $4, now(), now()
		)
		ON CONFLICT (kind, normalized_name) DO UPDATE SET
			count = unknown_reports.count + 1,
			last_reported_at = now()`

	queryListUnknownReports = `
		SELECT name, normalized_name, count, reported_by, created_at, last_reported_at
		FROM unknown_reports
		WHERE kind = $1
		ORDER BY count DESC, last_reported_at DESC
		LIMIT $2`
)

// Catalog queries.
const (
	queryGetIngredient = `
		SELECT id, name_es, name_en, category, icon, default_unit, shelf_life_days, substitutions
		FROM canonical_ingredients
		WHERE id = $1`

	queryListIngredients = `
		SELECT id, name_es, name_en, category, icon, default_unit, shelf_life_days, substitutions
		FROM canonical_ingredients
		ORDER BY id`

	queryGetPreparedFood = `
		SELECT id, name_es, name_en, cuisine, icon, shelf_life_days
		FROM canonical_prepared_foods
		WHERE id = $1`

	queryListPreparedFoods = `
		SELECT id, name_es, name_en, cuisine, icon, shelf_life_days
		FROM canonical_prepared_foods
		ORDER BY id`

	querySeedIngredient = `
		INSERT INTO canonical_ingredients (
			id, name_es, name_en, category, icon, default_unit, shelf_life_days, substitutions
		) VALUES (
			@id, @name_es, @name_en, @category, @icon, @default_unit, @shelf_life_days, @substitutions
		)
		ON CONFLICT (id) DO UPDATE SET
			name_es = EXCLUDED.name_es,
			name_en = EXCLUDED.name_en,
			category = EXCLUDED.category,
			icon = EXCLUDED.icon,
			default_unit = EXCLUDED.default_unit,
			shelf_life_days = EXCLUDED.shelf_life_days,
			substitutions = EXCLUDED.substitutions`

	querySeedPreparedFood = `
		INSERT INTO canonical_prepared_foods (
			id, name_es, name_en, cuisine, icon, shelf_life_days
		) VALUES (
			@id, @name_es, @name_en, @cuisine, @icon, @shelf_life_days
		)
		ON CONFLICT (id) DO UPDATE SET
			name_es = EXCLUDED.name_es,
			name_en = EXCLUDED.name_en,
			cuisine = EXCLUDED.cuisine,
			icon = EXCLUDED.icon,
			shelf_life_days = EXCLUDED.shelf_life_days`
)
