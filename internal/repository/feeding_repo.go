package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"aquascape/internal/models"
)

type FeedingLogRepository struct {
	db *sql.DB
	d  Dialect
}

func NewFeedingLogRepository(db *sql.DB, d Dialect) *FeedingLogRepository {
	return &FeedingLogRepository{db: db, d: d}
}

var _ FeedingLogRepo = (*FeedingLogRepository)(nil)

const feedingLogColumns = `id, aquarium_id, ts, mode, volume_grams, actor`

const (
	insertFeedingLogSQL  = `INSERT INTO feeding_logs (aquarium_id, ts, mode, volume_grams, actor) VALUES (?, ?, ?, ?, ?) RETURNING id`
	selectFeedingLogsSQL = `SELECT ` + feedingLogColumns + ` FROM feeding_logs WHERE aquarium_id = ? AND ts >= ? ORDER BY ts DESC, id DESC`
	selectLatestFeedSQL  = `SELECT ` + feedingLogColumns + ` FROM feeding_logs WHERE aquarium_id = ? ORDER BY ts DESC, id DESC LIMIT 1`
)

// Append inserts a feeding log. The actor defaults to "system".
func (r *FeedingLogRepository) Append(ctx context.Context, l models.FeedingLog) (int64, error) {
	if l.Actor == "" {
		l.Actor = models.ActorSystem
	}
	var id int64
	err := r.db.QueryRowContext(ctx, r.d.Rebind(insertFeedingLogSQL),
		l.AquariumID, l.TS.UTC(), l.Mode, l.VolumeGrams, l.Actor,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert feeding log for aquarium %d: %w", l.AquariumID, err)
	}
	return id, nil
}

// List returns logs with ts >= since, newest first. A zero since lists everything.
func (r *FeedingLogRepository) List(ctx context.Context, aquariumID int64, since time.Time) ([]models.FeedingLog, error) {
	rows, err := r.db.QueryContext(ctx, r.d.Rebind(selectFeedingLogsSQL), aquariumID, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("query feeding logs of aquarium %d: %w", aquariumID, err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.FeedingLog
	for rows.Next() {
		l, err := scanFeedingLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan feeding log: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feeding logs: %w", err)
	}
	return out, nil
}

// Latest returns (nil, nil) if the aquarium was never fed.
func (r *FeedingLogRepository) Latest(ctx context.Context, aquariumID int64) (*models.FeedingLog, error) {
	l, err := scanFeedingLog(r.db.QueryRowContext(ctx, r.d.Rebind(selectLatestFeedSQL), aquariumID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select latest feeding log of aquarium %d: %w", aquariumID, err)
	}
	return &l, nil
}

func scanFeedingLog(s rowScanner) (models.FeedingLog, error) {
	var l models.FeedingLog
	if err := s.Scan(&l.ID, &l.AquariumID, &l.TS, &l.Mode, &l.VolumeGrams, &l.Actor); err != nil {
		return models.FeedingLog{}, err
	}
	return l, nil
}
