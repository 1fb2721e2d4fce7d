package revenue

import (
	"fmt"
	"strings"

	"github.com/rpnorth/LichtBlick-Case-Study/internal/domain/entity"
)

// Period is the reporting window [Start, DownloadDate].
type Period struct {
	Start        entity.Date
	DownloadDate entity.Date
}

// NewPeriod valida e cria um período de relatório.
func NewPeriod(start, downloadDate entity.Date) (Period, error) {
	if start.IsZero() || downloadDate.IsZero() {
		return Period{}, fmt.Errorf("%w: both period start and download date are required", ErrInvalidPeriod)
	}
	if start.After(downloadDate) {
		return Period{}, fmt.Errorf("%w: period start %s is after download date %s", ErrInvalidPeriod, start, downloadDate)
	}
	return Period{Start: start, DownloadDate: downloadDate}, nil
}

// Days returns the length of the period in whole days.
func (p Period) Days() int {
	return p.Start.DaysUntil(p.DownloadDate)
}

// String formata o período como "start to end".
func (p Period) String() string {
	return fmt.Sprintf("%s to %s", p.Start, p.DownloadDate)
}

// NegativeOverlapPolicy decides what happens to segments whose clipped window is inverted.
type NegativeOverlapPolicy string

const (
	// DropNegativeOverlaps discards inverted segments; they contribute nothing.
	DropNegativeOverlaps NegativeOverlapPolicy = "drop"
	// KeepNegativeOverlaps lets negative day counts flow into the sums, matching the legacy report.
	KeepNegativeOverlaps NegativeOverlapPolicy = "keep"
)

// ParseNegativeOverlapPolicy converts a flag or config value into a policy. Empty means drop.
func ParseNegativeOverlapPolicy(value string) (NegativeOverlapPolicy, error) {
	switch NegativeOverlapPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", DropNegativeOverlaps:
		return DropNegativeOverlaps, nil
	case KeepNegativeOverlaps:
		return KeepNegativeOverlaps, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, value)
	}
}
