package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/ArowuTest/spin-wheel-backend/internal/models"
	"github.com/ArowuTest/spin-wheel-backend/internal/repositories"
	"github.com/google/uuid"
)

var _ repositories.PrizeRepository = (*PrizeRepository)(nil)

// PrizeRepository stores the catalog in the prizes table
type PrizeRepository struct {
	db *DB
}

// NewPrizeRepository creates a new PrizeRepository
func NewPrizeRepository(db *DB) *PrizeRepository {
	return &PrizeRepository{db: db}
}

const prizeColumns = `id, name, image, weight, created_at, updated_at`

// Create inserts a new prize
func (r *PrizeRepository) Create(ctx context.Context, prize *models.Prize) error {
	return r.insert(ctx, prize, time.Now())
}

// CreateMany inserts prizes in the given order inside one transaction
func (r *PrizeRepository) CreateMany(ctx context.Context, prizes []*models.Prize) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	base := time.Now()
	for i, p := range prizes {
		// distinct nanosecond stamps keep the insertion order stable
		created := base.Add(time.Duration(i))
		p.ID = uuid.NewString()
		p.CreatedAt = created
		p.UpdatedAt = created
		_, err := tx.ExecContext(ctx, r.db.rebind(`INSERT INTO prizes (`+prizeColumns+`) VALUES (?, ?, ?, ?, ?, ?)`),
			p.ID, p.Name, p.Image, p.Weight, created.UnixNano(), created.UnixNano())
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *PrizeRepository) insert(ctx context.Context, p *models.Prize, created time.Time) error {
	p.ID = uuid.NewString()
	p.CreatedAt = created
	p.UpdatedAt = created
	_, err := r.db.exec(ctx, `INSERT INTO prizes (`+prizeColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Image, p.Weight, created.UnixNano(), created.UnixNano())
	return err
}

// FindByID finds a prize by ID
func (r *PrizeRepository) FindByID(ctx context.Context, id string) (*models.Prize, error) {
	p, err := scanPrize(r.db.queryRow(ctx, `SELECT `+prizeColumns+` FROM prizes WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repositories.ErrNotFound
	}
	return p, err
}

// FindAll returns the whole catalog in creation order
func (r *PrizeRepository) FindAll(ctx context.Context) ([]*models.Prize, error) {
	rows, err := r.db.query(ctx, `SELECT `+prizeColumns+` FROM prizes ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prizes := []*models.Prize{}
	for rows.Next() {
		p, err := scanPrize(rows)
		if err != nil {
			return nil, err
		}
		prizes = append(prizes, p)
	}
	return prizes, rows.Err()
}

// Update applies a partial update and returns the updated prize
func (r *PrizeRepository) Update(ctx context.Context, id string, upd models.PrizeUpdate) (*models.Prize, error) {
	sets := []string{"updated_at = ?"}
	args := []interface{}{time.Now().UnixNano()}
	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Image != nil {
		sets = append(sets, "image = ?")
		args = append(args, *upd.Image)
	}
	if upd.Weight != nil {
		sets = append(sets, "weight = ?")
		args = append(args, *upd.Weight)
	}
	args = append(args, id)

	res, err := r.db.exec(ctx, `UPDATE prizes SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, repositories.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete deletes a prize by ID
func (r *PrizeRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.exec(ctx, `DELETE FROM prizes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// DeleteAll empties the catalog
func (r *PrizeRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.exec(ctx, `DELETE FROM prizes`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Count counts all prizes
func (r *PrizeRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.queryRow(ctx, `SELECT COUNT(*) FROM prizes`).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPrize(row rowScanner) (*models.Prize, error) {
	var (
		p                    models.Prize
		createdAt, updatedAt int64
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Image, &p.Weight, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	p.CreatedAt = time.Unix(0, createdAt).UTC()
	p.UpdatedAt = time.Unix(0, updatedAt).UTC()
	return &p, nil
}
