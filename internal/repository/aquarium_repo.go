package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"aquascape/internal/models"
)

type AquariumRepository struct {
	db *sql.DB
	d  Dialect
}

func NewAquariumRepository(db *sql.DB, d Dialect) *AquariumRepository {
	return &AquariumRepository{db: db, d: d}
}

var _ AquariumRepo = (*AquariumRepository)(nil)

const aquariumColumns = `id, user_id, name, size_litres, device_uid, feeding_volume_grams, feeding_period_hours, active_since, created_at`

const (
	insertAquariumSQL = `INSERT INTO aquariums (user_id, name, size_litres, device_uid, feeding_volume_grams, feeding_period_hours, active_since, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`
	selectAquariumSQL        = `SELECT ` + aquariumColumns + ` FROM aquariums WHERE id = ?`
	selectAquariumsByUserSQL = `SELECT ` + aquariumColumns + ` FROM aquariums WHERE user_id = ? ORDER BY id`
	updateAquariumSQL        = `UPDATE aquariums SET name = ?, size_litres = ?, device_uid = ?, feeding_volume_grams = ?, feeding_period_hours = ? WHERE id = ?`
	deleteAquariumSQL        = `DELETE FROM aquariums WHERE id = ?`
)

func (r *AquariumRepository) Create(ctx context.Context, a models.Aquarium) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, r.d.Rebind(insertAquariumSQL),
		a.UserID, a.Name, a.SizeLitres, nullString(a.DeviceUID), a.FeedingVolumeGrams,
		a.FeedingPeriodHours, a.ActiveSince.UTC(), a.CreatedAt.UTC(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert aquarium %q: %w", a.Name, err)
	}
	return id, nil
}

// Get returns (nil, nil) if the aquarium does not exist.
func (r *AquariumRepository) Get(ctx context.Context, id int64) (*models.Aquarium, error) {
	a, err := scanAquarium(r.db.QueryRowContext(ctx, r.d.Rebind(selectAquariumSQL), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select aquarium %d: %w", id, err)
	}
	return &a, nil
}

func (r *AquariumRepository) ListByUser(ctx context.Context, userID int64) ([]models.Aquarium, error) {
	rows, err := r.db.QueryContext(ctx, r.d.Rebind(selectAquariumsByUserSQL), userID)
	if err != nil {
		return nil, fmt.Errorf("query aquariums of user %d: %w", userID, err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]models.Aquarium, 0, 4)
	for rows.Next() {
		a, err := scanAquarium(rows)
		if err != nil {
			return nil, fmt.Errorf("scan aquarium: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate aquariums: %w", err)
	}
	return out, nil
}

func (r *AquariumRepository) Update(ctx context.Context, a models.Aquarium) error {
	_, err := r.db.ExecContext(ctx, r.d.Rebind(updateAquariumSQL),
		a.Name, a.SizeLitres, nullString(a.DeviceUID), a.FeedingVolumeGrams, a.FeedingPeriodHours, a.ID,
	)
	if err != nil {
		return fmt.Errorf("update aquarium %d: %w", a.ID, err)
	}
	return nil
}

func (r *AquariumRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, r.d.Rebind(deleteAquariumSQL), id); err != nil {
		return fmt.Errorf("delete aquarium %d: %w", id, err)
	}
	return nil
}

func scanAquarium(s rowScanner) (models.Aquarium, error) {
	var (
		a         models.Aquarium
		deviceUID sql.NullString
	)
	err := s.Scan(&a.ID, &a.UserID, &a.Name, &a.SizeLitres, &deviceUID, &a.FeedingVolumeGrams,
		&a.FeedingPeriodHours, &a.ActiveSince, &a.CreatedAt)
	if err != nil {
		return models.Aquarium{}, err
	}
	a.DeviceUID = deviceUID.String
	return a, nil
}
