package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"aquascape/internal/models"
)

type AlertRepository struct {
	db *sql.DB
	d  Dialect
}

func NewAlertRepository(db *sql.DB, d Dialect) *AlertRepository {
	return &AlertRepository{db: db, d: d}
}

var _ AlertRepo = (*AlertRepository)(nil)

const alertColumns = `id, aquarium_id, ts, type, message, resolved, resolved_at`

const (
	insertAlertSQL       = `INSERT INTO alerts (aquarium_id, ts, type, message, resolved) VALUES (?, ?, ?, ?, ?) RETURNING id`
	selectAlertSQL       = `SELECT ` + alertColumns + ` FROM alerts WHERE id = ?`
	selectLatestAlertSQL = `SELECT ` + alertColumns + ` FROM alerts WHERE aquarium_id = ? AND type = ? ORDER BY ts DESC, id DESC LIMIT 1`
	deleteAlertSQL       = `DELETE FROM alerts WHERE id = ?`
	resolveAlertSQL      = `UPDATE alerts SET resolved = ?, resolved_at = ? WHERE id = ?`

	selectAlertsBaseSQL = `SELECT ` + alertColumns + ` FROM alerts`
)

func (r *AlertRepository) Create(ctx context.Context, a models.Alert) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, r.d.Rebind(insertAlertSQL),
		a.AquariumID, a.TS.UTC(), a.Type, a.Message, a.Resolved,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert %s alert for aquarium %d: %w", a.Type, a.AquariumID, err)
	}
	return id, nil
}

// Get returns (nil, nil) if the alert does not exist.
func (r *AlertRepository) Get(ctx context.Context, id int64) (*models.Alert, error) {
	a, err := scanAlert(r.db.QueryRowContext(ctx, r.d.Rebind(selectAlertSQL), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select alert %d: %w", id, err)
	}
	return &a, nil
}

// List returns alerts in creation order (oldest first) so that a device
// executes commands in the order they were issued.
func (r *AlertRepository) List(ctx context.Context, f AlertFilter) ([]models.Alert, error) {
	q, args := buildAlertListQuery(f)
	rows, err := r.db.QueryContext(ctx, r.d.Rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("query alerts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate alerts: %w", err)
	}
	return out, nil
}

// LatestOfType returns the newest alert of the given type, or (nil, nil).
func (r *AlertRepository) LatestOfType(ctx context.Context, aquariumID int64, typ string) (*models.Alert, error) {
	a, err := scanAlert(r.db.QueryRowContext(ctx, r.d.Rebind(selectLatestAlertSQL), aquariumID, typ))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select latest %s alert of aquarium %d: %w", typ, aquariumID, err)
	}
	return &a, nil
}

func (r *AlertRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, r.d.Rebind(deleteAlertSQL), id); err != nil {
		return fmt.Errorf("delete alert %d: %w", id, err)
	}
	return nil
}

func (r *AlertRepository) Resolve(ctx context.Context, id int64, at time.Time) error {
	if _, err := r.db.ExecContext(ctx, r.d.Rebind(resolveAlertSQL), true, at.UTC(), id); err != nil {
		return fmt.Errorf("resolve alert %d: %w", id, err)
	}
	return nil
}

func buildAlertListQuery(f AlertFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	if f.AquariumID > 0 {
		where = append(where, "aquarium_id = ?")
		args = append(args, f.AquariumID)
	}
	if f.Type != "" {
		where = append(where, "type = ?")
		args = append(args, f.Type)
	}
	if f.Resolved != nil {
		where = append(where, "resolved = ?")
		args = append(args, *f.Resolved)
	}

	var b strings.Builder
	b.WriteString(selectAlertsBaseSQL)
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY ts ASC, id ASC")
	if f.Limit > 0 {
		b.WriteString(" LIMIT ?")
		args = append(args, f.Limit)
	}
	return b.String(), args
}

func scanAlert(s rowScanner) (models.Alert, error) {
	var a models.Alert
	if err := s.Scan(&a.ID, &a.AquariumID, &a.TS, &a.Type, &a.Message, &a.Resolved, &a.ResolvedAt); err != nil {
		return models.Alert{}, err
	}
	return a, nil
}
