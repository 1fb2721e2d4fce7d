package revenue

import "github.com/rpnorth/LichtBlick-Case-Study/internal/domain/entity"

// overlap is the clipped window where a contract and a price are both in force
// inside the reporting period.
type overlap struct {
	dateFrom entity.Date
	dateTo   entity.Date
	days     int
}

// discard reports whether the pair cannot overlap the period at all.
// An absent end date or validity bound is open and never triggers a discard.
func discard(c entity.Contract, p entity.Price, period Period) bool {
	if !c.EndDate.IsZero() && c.EndDate.Before(period.Start) {
		return true
	}
	if c.StartDate.After(period.DownloadDate) {
		return true
	}
	if !c.EndDate.IsZero() && !p.ValidFrom.IsZero() && c.EndDate.Before(p.ValidFrom) {
		return true
	}
	if !p.ValidUntil.IsZero() && c.StartDate.After(p.ValidUntil) {
		return true
	}
	return false
}

// resolveOverlap clips the contract to the period, then intersects it with the
// price validity window. ok is false when the pair is discarded. The returned
// day count may be negative; the caller applies the negative overlap policy.
func resolveOverlap(c entity.Contract, p entity.Price, period Period) (overlap, bool) {
	if discard(c, p, period) {
		return overlap{}, false
	}

	end := c.EndDate
	if end.IsZero() || end.After(period.DownloadDate) {
		end = period.DownloadDate
	}
	start := c.StartDate
	if start.IsZero() || start.Before(period.Start) {
		start = period.Start
	}

	o := overlap{
		dateFrom: entity.MaxDate(start, p.ValidFrom),
		dateTo:   entity.MinDate(end, p.ValidUntil),
	}
	o.days = o.dateFrom.DaysUntil(o.dateTo)
	return o, true
}
