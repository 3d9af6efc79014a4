package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/travel-tracker/internal/models"
)

// ========================
// REPOSITORY STRUCT
// ========================

type DestinationRepo struct {
	DB *sql.DB
}

func NewDestinationRepo(db *sql.DB) *DestinationRepo {
	return &DestinationRepo{DB: db}
}

const destinationColumns = `id, name, travel_date, notes, owner_id, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDestination(row rowScanner) (*models.Destination, error) {
	var (
		d     models.Destination
		date  sql.NullTime
		notes sql.NullString
	)
	if err := row.Scan(&d.ID, &d.Name, &date, &notes, &d.OwnerID, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	if date.Valid {
		td := models.NewDate(date.Time)
		d.TravelDate = &td
	}
	if notes.Valid {
		d.Notes = &notes.String
	}
	return &d, nil
}

// dateArg passes a date through its driver.Valuer, or NULL when absent.
func dateArg(d *models.Date) any {
	if d == nil {
		return nil
	}
	return *d
}

func stringArg(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// ========================
// CREATE DESTINATION
// ========================

func (r *DestinationRepo) Create(ctx context.Context, ownerID int, nd models.NewDestination) (*models.Destination, error) {
	row := r.DB.QueryRowContext(ctx,
		`INSERT INTO destinations (name, travel_date, notes, owner_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+destinationColumns,
		nd.Name, dateArg(nd.TravelDate), stringArg(nd.Notes), ownerID,
	)
	return scanDestination(row)
}

// ========================
// GET DESTINATION BY ID
// ========================

// GetByID looks up by primary key only; ownership is checked by the caller.
func (r *DestinationRepo) GetByID(ctx context.Context, id int) (*models.Destination, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+destinationColumns+`
		 FROM destinations
		 WHERE id = $1`,
		id,
	)
	return scanDestination(row)
}

// ========================
// LIST DESTINATIONS BY OWNER
// ========================

func (r *DestinationRepo) ListByOwner(ctx context.Context, ownerID int) ([]models.Destination, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+destinationColumns+`
		 FROM destinations
		 WHERE owner_id = $1
		 ORDER BY id`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	destinations := []models.Destination{}
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, err
		}
		destinations = append(destinations, *d)
	}
	return destinations, rows.Err()
}

// ========================
// UPDATE DESTINATION
// ========================

// Update applies the non-nil fields of patch. It returns sql.ErrNoRows when no
// row with id is owned by ownerID.
func (r *DestinationRepo) Update(ctx context.Context, id, ownerID int, patch models.DestinationPatch) (*models.Destination, error) {
	row := r.DB.QueryRowContext(ctx,
		`UPDATE destinations
		 SET name = COALESCE($1, name),
		     travel_date = COALESCE($2, travel_date),
		     notes = COALESCE($3, notes),
		     updated_at = NOW()
		 WHERE id = $4 AND owner_id = $5
		 RETURNING `+destinationColumns,
		stringArg(patch.Name), dateArg(patch.TravelDate), stringArg(patch.Notes), id, ownerID,
	)
	return scanDestination(row)
}

// ========================
// DELETE DESTINATION
// ========================

// Delete removes the row with id owned by ownerID, or returns sql.ErrNoRows.
func (r *DestinationRepo) Delete(ctx context.Context, id, ownerID int) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM destinations WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}
