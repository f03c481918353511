package commands

import (
	"errors"
	"time"

	"tailoring/internal/pkg/errs"
	"tailoring/internal/pkg/guard"
)

var ErrSendDailyReportCommandIsNotConstructed = errors.New(
	"SendDailyReportCommand must be created via NewSendDailyReportCommand constructor",
)

// SendDailyReportCommand asks for the completion report of the calendar day before now,
// in the given location.
//
// Example:
//
//	loc, _ := time.LoadLocation("Asia/Kolkata")
//	cmd, _ := NewSendDailyReportCommand(time.Now(), loc)
//	sent, err := handler.Handle(ctx, cmd)
type SendDailyReportCommand struct {
	day  time.Time
	from time.Time
	to   time.Time

	guard guard.ConstructorGuard
}

func NewSendDailyReportCommand(now time.Time, loc *time.Location) (SendDailyReportCommand, error) {
	if loc == nil {
		return SendDailyReportCommand{}, errs.NewValueIsRequiredError("location")
	}
	if now.IsZero() {
		return SendDailyReportCommand{}, errs.NewValueIsRequiredError("now")
	}

	local := now.In(loc)
	from := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -1)
	to := from.AddDate(0, 0, 1).Add(-time.Nanosecond)

	return SendDailyReportCommand{
		day:   from,
		from:  from,
		to:    to,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Day is midnight of the reported day.
func (c SendDailyReportCommand) Day() time.Time {
	return c.day
}

// From is the inclusive start of the report window.
func (c SendDailyReportCommand) From() time.Time {
	return c.from
}

// To is the inclusive end of the report window.
func (c SendDailyReportCommand) To() time.Time {
	return c.to
}

func (c SendDailyReportCommand) Validate() error {
	return c.guard.Validate(ErrSendDailyReportCommandIsNotConstructed)
}
