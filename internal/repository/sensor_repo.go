package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"aquascape/internal/models"
)

type SensorRepository struct {
	db *sql.DB
	d  Dialect
}

func NewSensorRepository(db *sql.DB, d Dialect) *SensorRepository {
	return &SensorRepository{db: db, d: d}
}

var _ SensorRepo = (*SensorRepository)(nil)

const (
	insertSensorReadingSQL = `INSERT INTO sensor_data (aquarium_id, ts, temperature_c, ph) VALUES (?, ?, ?, ?) RETURNING id`
	selectSensorReadingSQL = `SELECT id, aquarium_id, ts, temperature_c, ph FROM sensor_data WHERE aquarium_id = ? AND ts >= ? ORDER BY ts DESC, id DESC LIMIT ?`
)

func (r *SensorRepository) Create(ctx context.Context, s models.SensorReading) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, r.d.Rebind(insertSensorReadingSQL),
		s.AquariumID, s.TS.UTC(), s.TemperatureC, s.PH,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert sensor reading for aquarium %d: %w", s.AquariumID, err)
	}
	return id, nil
}

// List returns the newest readings first.
func (r *SensorRepository) List(ctx context.Context, aquariumID int64, since time.Time, limit int) ([]models.SensorReading, error) {
	rows, err := r.db.QueryContext(ctx, r.d.Rebind(selectSensorReadingSQL), aquariumID, since.UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("query sensor data of aquarium %d: %w", aquariumID, err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]models.SensorReading, 0, limit)
	for rows.Next() {
		var s models.SensorReading
		if err := rows.Scan(&s.ID, &s.AquariumID, &s.TS, &s.TemperatureC, &s.PH); err != nil {
			return nil, fmt.Errorf("scan sensor reading: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sensor data: %w", err)
	}
	return out, nil
}
