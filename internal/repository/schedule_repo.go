package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"aquascape/internal/models"
)

type ScheduleRepository struct {
	db *sql.DB
	d  Dialect
}

func NewScheduleRepository(db *sql.DB, d Dialect) *ScheduleRepository {
	return &ScheduleRepository{db: db, d: d}
}

var _ ScheduleRepo = (*ScheduleRepository)(nil)

const scheduleColumns = `id, aquarium_id, name, type, interval_hours, daily_times, feed_volume_grams, enabled, start_date, end_date`

const (
	insertScheduleSQL = `INSERT INTO schedules (aquarium_id, name, type, interval_hours, daily_times, feed_volume_grams, enabled, start_date, end_date)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`
	selectScheduleSQL            = `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = ?`
	selectSchedulesByAquariumSQL = `SELECT ` + scheduleColumns + ` FROM schedules WHERE aquarium_id = ? ORDER BY id`
	updateScheduleSQL            = `UPDATE schedules SET name = ?, type = ?, interval_hours = ?, daily_times = ?, feed_volume_grams = ?, enabled = ?, start_date = ?, end_date = ? WHERE id = ?`
	deleteScheduleSQL            = `DELETE FROM schedules WHERE id = ?`

	selectEnabledSchedulesSQL = `SELECT s.id, s.aquarium_id, s.name, s.type, s.interval_hours, s.daily_times, s.feed_volume_grams, s.enabled, s.start_date, s.end_date,
a.id, a.user_id, a.name, a.size_litres, a.device_uid, a.feeding_volume_grams, a.feeding_period_hours, a.active_since, a.created_at
FROM schedules s JOIN aquariums a ON a.id = s.aquarium_id
WHERE s.enabled = ?
ORDER BY s.id`
)

func (r *ScheduleRepository) Create(ctx context.Context, s models.Schedule) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, r.d.Rebind(insertScheduleSQL),
		s.AquariumID, nullString(s.Name), s.Type, s.IntervalHours, nullString(s.DailyTimes),
		s.FeedVolumeGrams, s.Enabled, utcPtr(s.StartDate), utcPtr(s.EndDate),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert schedule for aquarium %d: %w", s.AquariumID, err)
	}
	return id, nil
}

// Get returns (nil, nil) if the schedule does not exist.
func (r *ScheduleRepository) Get(ctx context.Context, id int64) (*models.Schedule, error) {
	var s models.Schedule
	err := r.db.QueryRowContext(ctx, r.d.Rebind(selectScheduleSQL), id).Scan(scheduleDest(&s)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select schedule %d: %w", id, err)
	}
	return &s, nil
}

func (r *ScheduleRepository) ListByAquarium(ctx context.Context, aquariumID int64) ([]models.Schedule, error) {
	rows, err := r.db.QueryContext(ctx, r.d.Rebind(selectSchedulesByAquariumSQL), aquariumID)
	if err != nil {
		return nil, fmt.Errorf("query schedules of aquarium %d: %w", aquariumID, err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Schedule
	for rows.Next() {
		var s models.Schedule
		if err := rows.Scan(scheduleDest(&s)...); err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schedules: %w", err)
	}
	return out, nil
}

func (r *ScheduleRepository) Update(ctx context.Context, s models.Schedule) error {
	_, err := r.db.ExecContext(ctx, r.d.Rebind(updateScheduleSQL),
		nullString(s.Name), s.Type, s.IntervalHours, nullString(s.DailyTimes), s.FeedVolumeGrams,
		s.Enabled, utcPtr(s.StartDate), utcPtr(s.EndDate), s.ID,
	)
	if err != nil {
		return fmt.Errorf("update schedule %d: %w", s.ID, err)
	}
	return nil
}

func (r *ScheduleRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, r.d.Rebind(deleteScheduleSQL), id); err != nil {
		return fmt.Errorf("delete schedule %d: %w", id, err)
	}
	return nil
}

func (r *ScheduleRepository) ListEnabledWithAquarium(ctx context.Context) ([]models.ScheduleWithAquarium, error) {
	rows, err := r.db.QueryContext(ctx, r.d.Rebind(selectEnabledSchedulesSQL), true)
	if err != nil {
		return nil, fmt.Errorf("query enabled schedules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.ScheduleWithAquarium
	for rows.Next() {
		var (
			sa        models.ScheduleWithAquarium
			deviceUID sql.NullString
		)
		dest := append(scheduleDest(&sa.Schedule),
			&sa.Aquarium.ID, &sa.Aquarium.UserID, &sa.Aquarium.Name, &sa.Aquarium.SizeLitres, &deviceUID,
			&sa.Aquarium.FeedingVolumeGrams, &sa.Aquarium.FeedingPeriodHours, &sa.Aquarium.ActiveSince,
			&sa.Aquarium.CreatedAt,
		)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan enabled schedule: %w", err)
		}
		sa.Aquarium.DeviceUID = deviceUID.String
		out = append(out, sa)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate enabled schedules: %w", err)
	}
	return out, nil
}

// scheduleDest returns scan targets matching scheduleColumns. Nullable text
// columns are scanned through nullText so NULL maps to "".
func scheduleDest(s *models.Schedule) []any {
	return []any{
		&s.ID, &s.AquariumID, (*nullText)(&s.Name), &s.Type, &s.IntervalHours, (*nullText)(&s.DailyTimes),
		&s.FeedVolumeGrams, &s.Enabled, &s.StartDate, &s.EndDate,
	}
}

// nullText scans a nullable text column into a plain string.
type nullText string

func (n *nullText) Scan(src any) error {
	var ns sql.NullString
	if err := ns.Scan(src); err != nil {
		return err
	}
	*n = nullText(ns.String)
	return nil
}
