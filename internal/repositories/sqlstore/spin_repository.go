package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ArowuTest/spin-wheel-backend/internal/models"
	"github.com/ArowuTest/spin-wheel-backend/internal/repositories"
)

var _ repositories.SpinRepository = (*SpinRepository)(nil)

// SpinRepository stores per-DNI records in the spins table, keyed by dni
type SpinRepository struct {
	db *DB
}

// NewSpinRepository creates a new SpinRepository
func NewSpinRepository(db *DB) *SpinRepository {
	return &SpinRepository{db: db}
}

// FindByDNI finds the spin record of a DNI
func (r *SpinRepository) FindByDNI(ctx context.Context, dni string) (*models.SpinRecord, error) {
	var (
		rec                                   models.SpinRecord
		lastSpin, nextAvail, created, updated int64
	)
	err := r.db.queryRow(ctx, `
		SELECT dni, last_spin_at, next_available_at, last_prize_id, last_prize_name, last_prize_image, created_at, updated_at
		FROM spins WHERE dni = ?`, dni,
	).Scan(&rec.DNI, &lastSpin, &nextAvail, &rec.LastPrizeID, &rec.LastPrizeName, &rec.LastPrizeImage, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	rec.LastSpinAt = fromMillis(lastSpin)
	rec.NextAvailableAt = fromMillis(nextAvail)
	rec.CreatedAt = fromMillis(created)
	rec.UpdatedAt = fromMillis(updated)
	return &rec, nil
}

// Save upserts the record for rec.DNI
func (r *SpinRepository) Save(ctx context.Context, rec *models.SpinRecord) error {
	now := toMillis(time.Now())
	_, err := r.db.exec(ctx, `
		INSERT INTO spins (dni, last_spin_at, next_available_at, last_prize_id, last_prize_name, last_prize_image, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (dni) DO UPDATE SET
			last_spin_at = excluded.last_spin_at,
			next_available_at = excluded.next_available_at,
			last_prize_id = excluded.last_prize_id,
			last_prize_name = excluded.last_prize_name,
			last_prize_image = excluded.last_prize_image,
			updated_at = excluded.updated_at`,
		rec.DNI, toMillis(rec.LastSpinAt), toMillis(rec.NextAvailableAt),
		rec.LastPrizeID, rec.LastPrizeName, rec.LastPrizeImage, now, now)
	return err
}

// SaveIfUnchanged performs a compare-and-swap on next_available_at
func (r *SpinRepository) SaveIfUnchanged(ctx context.Context, rec *models.SpinRecord, prevNextAvailableAt *time.Time) error {
	now := toMillis(time.Now())

	var (
		res sql.Result
		err error
	)
	if prevNextAvailableAt == nil {
		res, err = r.db.exec(ctx, `
			INSERT INTO spins (dni, last_spin_at, next_available_at, last_prize_id, last_prize_name, last_prize_image, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (dni) DO NOTHING`,
			rec.DNI, toMillis(rec.LastSpinAt), toMillis(rec.NextAvailableAt),
			rec.LastPrizeID, rec.LastPrizeName, rec.LastPrizeImage, now, now)
	} else {
		res, err = r.db.exec(ctx, `
			UPDATE spins SET
				last_spin_at = ?,
				next_available_at = ?,
				last_prize_id = ?,
				last_prize_name = ?,
				last_prize_image = ?,
				updated_at = ?
			WHERE dni = ? AND next_available_at = ?`,
			toMillis(rec.LastSpinAt), toMillis(rec.NextAvailableAt),
			rec.LastPrizeID, rec.LastPrizeName, rec.LastPrizeImage, now,
			rec.DNI, toMillis(*prevNextAvailableAt))
	}
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repositories.ErrConflict
	}
	return nil
}
