// Package reportrepo serves the read side of the audit jobs. Each query joins an order
// with its tailor and the tailor's manager, so callers get fully resolved rows.
package reportrepo

import (
	"context"
	"time"

	"tailoring/internal/core/ports"

	"gorm.io/gorm"
)

type GormOrderReportReader struct {
	db *gorm.DB
}

func NewGormOrderReportReader(db *gorm.DB) *GormOrderReportReader {
	return &GormOrderReportReader{db: db}
}

type orderDetailsRow struct {
	OrderID      string
	Fabric       string
	Stage        string
	StageInTime  time.Time
	CompletedAt  *time.Time
	TailorName   string
	ManagerEmail string
}

const orderDetailsSelect = `
	SELECT
		o.id::text AS order_id,
		o.fabric,
		o.stage,
		o.stage_in_time,
		o.completed_at,
		t.name AS tailor_name,
		COALESCE(m.email, '') AS manager_email
	FROM orders o
	JOIN tailors t ON t.id = o.tailor_id
	LEFT JOIN persons m ON m.id = t.manager_id
`

func (r *GormOrderReportReader) ListCompletedBetween(
	ctx context.Context,
	from, to time.Time,
) ([]ports.OrderDetails, error) {
	var rows []orderDetailsRow
	err := r.db.WithContext(ctx).Raw(orderDetailsSelect+`
		WHERE o.completed = TRUE
			AND o.completed_at >= ?
			AND o.completed_at <= ?
		ORDER BY o.completed_at, o.id
	`, from.UTC(), to.UTC()).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDetails(rows), nil
}

func (r *GormOrderReportReader) ListStuckSince(ctx context.Context, before time.Time) ([]ports.OrderDetails, error) {
	var rows []orderDetailsRow
	err := r.db.WithContext(ctx).Raw(orderDetailsSelect+`
		WHERE o.completed = FALSE
			AND o.stage_in_time < ?
		ORDER BY o.stage_in_time, o.id
	`, before.UTC()).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDetails(rows), nil
}

func toDetails(rows []orderDetailsRow) []ports.OrderDetails {
	details := make([]ports.OrderDetails, 0, len(rows))
	for _, row := range rows {
		var completedAt *time.Time
		if row.CompletedAt != nil {
			utc := row.CompletedAt.UTC()
			completedAt = &utc
		}
		details = append(details, ports.OrderDetails{
			OrderID:      row.OrderID,
			Fabric:       row.Fabric,
			Stage:        row.Stage,
			StageInTime:  row.StageInTime.UTC(),
			CompletedAt:  completedAt,
			TailorName:   row.TailorName,
			ManagerEmail: row.ManagerEmail,
		})
	}
	return details
}
