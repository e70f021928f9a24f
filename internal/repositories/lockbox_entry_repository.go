package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/keyhaven/lockbox-service/internal/models"
	"github.com/keyhaven/lockbox-service/internal/utils"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

// EntryUpdate lists the fields an update may touch. Nil pointers leave the
// column untouched; Notes set to an empty string clears the notes.
type EntryUpdate struct {
	PropertyName    *string
	UnitNumber      *string
	LockboxLocation *string
	LockboxCode     *string
	Notes           *string
}

// LockboxEntryRepository is the typed client over the lockbox_entries
// collection. Every operation is scoped by userID; there is no cross-user
// visibility.
type LockboxEntryRepository interface {
	Create(ctx context.Context, e *models.LockboxEntry) error

	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.LockboxEntry, error)
	FindByPropertyAndUnit(ctx context.Context, userID uuid.UUID, propertyName, unitNumber string) (*models.LockboxEntry, error)

	// ListPage returns up to pageSize entries ordered by
	// (property_name, unit_number) ascending, strictly after the cursor if
	// given, plus whether more entries follow the page.
	ListPage(ctx context.Context, userID uuid.UUID, pageSize int, after *models.EntryCursor) ([]*models.LockboxEntry, bool, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)

	DistinctPropertyNames(ctx context.Context, userID uuid.UUID) ([]string, error)
	DistinctUnitNumbers(ctx context.Context, userID uuid.UUID, propertyName string) ([]string, error)

	Update(ctx context.Context, userID, id uuid.UUID, upd EntryUpdate) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type lockboxEntryRepo struct {
	db DB
}

func NewLockboxEntryRepository(db DB) LockboxEntryRepository {
	return &lockboxEntryRepo{db: db}
}

/* ---------- create ---------- */

func (r *lockboxEntryRepo) Create(ctx context.Context, e *models.LockboxEntry) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO lockbox_entries (
			id, user_id, property_name, unit_number, lockbox_location,
			lockbox_code, notes, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7, NOW(), NOW())
		RETURNING created_at, updated_at
	`,
		e.ID,
		e.UserID,
		e.PropertyName,
		e.UnitNumber,
		e.LockboxLocation,
		e.LockboxCode,
		e.Notes,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
}

/* ---------- reads ---------- */

func (r *lockboxEntryRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.LockboxEntry, error) {
	row := r.db.QueryRow(ctx, baseSelectEntry()+" WHERE id=$1 AND user_id=$2", id, userID)
	return scanEntry(row)
}

func (r *lockboxEntryRepo) FindByPropertyAndUnit(ctx context.Context, userID uuid.UUID, propertyName, unitNumber string) (*models.LockboxEntry, error) {
	row := r.db.QueryRow(ctx,
		baseSelectEntry()+" WHERE user_id=$1 AND property_name=$2 AND unit_number=$3 LIMIT 1",
		userID, propertyName, unitNumber,
	)
	return scanEntry(row)
}

func (r *lockboxEntryRepo) ListPage(ctx context.Context, userID uuid.UUID, pageSize int, after *models.EntryCursor) ([]*models.LockboxEntry, bool, error) {
	// Fetch one extra row to learn whether a next page exists.
	var (
		rows pgx.Rows
		err  error
	)
	if after != nil {
		rows, err = r.db.Query(ctx,
			baseSelectEntry()+`
				WHERE user_id=$1 AND (property_name, unit_number) > ($2,$3)
				ORDER BY property_name, unit_number
				LIMIT $4`,
			userID, after.PropertyName, after.UnitNumber, pageSize+1,
		)
	} else {
		rows, err = r.db.Query(ctx,
			baseSelectEntry()+`
				WHERE user_id=$1
				ORDER BY property_name, unit_number
				LIMIT $2`,
			userID, pageSize+1,
		)
	}
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, false, err
	}

	hasMore := len(entries) > pageSize
	if hasMore {
		entries = entries[:pageSize]
	}
	return entries, hasMore, nil
}

func (r *lockboxEntryRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM lockbox_entries WHERE user_id=$1`, userID,
	).Scan(&n)
	return n, err
}

func (r *lockboxEntryRepo) DistinctPropertyNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT property_name FROM lockbox_entries
		WHERE user_id=$1 ORDER BY property_name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStrings(rows)
}

func (r *lockboxEntryRepo) DistinctUnitNumbers(ctx context.Context, userID uuid.UUID, propertyName string) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT unit_number FROM lockbox_entries
		WHERE user_id=$1 AND property_name=$2 ORDER BY unit_number`,
		userID, propertyName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStrings(rows)
}

/* ---------- update / delete ---------- */

func (r *lockboxEntryRepo) Update(ctx context.Context, userID, id uuid.UUID, upd EntryUpdate) error {
	sql := `UPDATE lockbox_entries SET updated_at=NOW()`
	var args []interface{}

	appendSet := func(col string, v *string) {
		if v != nil {
			args = append(args, *v)
			sql += fmt.Sprintf(", %s=$%d", col, len(args))
		}
	}
	appendSet("property_name", upd.PropertyName)
	appendSet("unit_number", upd.UnitNumber)
	appendSet("lockbox_location", upd.LockboxLocation)
	appendSet("lockbox_code", upd.LockboxCode)
	appendSet("notes", upd.Notes)

	args = append(args, id, userID)
	sql += fmt.Sprintf(" WHERE id=$%d AND user_id=$%d", len(args)-1, len(args))

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *lockboxEntryRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM lockbox_entries WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrNotFound
	}
	return nil
}

/* ---------- internals ---------- */

func baseSelectEntry() string {
	return `
		SELECT id, user_id, property_name, unit_number, lockbox_location,
		       lockbox_code, notes, created_at, updated_at
		FROM lockbox_entries`
}

func scanEntry(row pgx.Row) (*models.LockboxEntry, error) {
	var e models.LockboxEntry
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.PropertyName,
		&e.UnitNumber,
		&e.LockboxLocation,
		&e.LockboxCode,
		&e.Notes,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func scanEntries(rows pgx.Rows) ([]*models.LockboxEntry, error) {
	var out []*models.LockboxEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanStrings(rows pgx.Rows) ([]string, error) {
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
