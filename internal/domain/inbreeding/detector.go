// Package inbreeding detects repeated ancestor identities within a lineage
// and classifies how severe the repetition is.
package inbreeding

import (
	"sort"

	"github.com/okian/sireline/internal/domain/model"
)

// Default severity band constants.
const (
	defaultModerateAt = 2
	defaultSevereAt   = 4
)

// Severity classifies how concentrated the duplicated ancestry is.
type Severity string

// Severity levels.
const (
	SeverityNone     Severity = "none"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// Report is the inbreeding signal consumed by trait assignment.
type Report struct {
	Detected          bool
	Severity          Severity
	MaxDuplicateCount int
	DuplicateIDs      []string
}

// Detector groups ancestors by identity and classifies duplication.
// It holds configuration only and is safe for concurrent use.
type Detector struct {
	moderateAt int
	severeAt   int
}

// Option applies a configuration option to the Detector.
type Option func(*Detector)

// WithModerateAt sets the smallest duplicate-group size classified as
// moderate inbreeding.
func WithModerateAt(count int) Option {
	return func(d *Detector) {
		if count > 1 {
			d.moderateAt = count
		}
	}
}

// WithSevereAt sets the smallest duplicate-group size classified as severe
// inbreeding.
func WithSevereAt(count int) Option {
	return func(d *Detector) {
		if count > 1 {
			d.severeAt = count
		}
	}
}

// NewDetector creates a Detector with configuration options.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		moderateAt: defaultModerateAt,
		severeAt:   defaultSevereAt,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Detect reports repeated ancestor IDs within the lineage. A nil or empty
// lineage reports no inbreeding. Duplicate IDs are returned sorted so the
// report is stable regardless of lineage order.
func (d *Detector) Detect(lineage model.Lineage) Report {
	occurrences := make(map[string]int, len(lineage))
	for _, ancestor := range lineage {
		if ancestor.ID == "" {
			continue
		}
		occurrences[ancestor.ID]++
	}

	report := Report{Severity: SeverityNone}
	for id, count := range occurrences {
		if count < d.moderateAt {
			continue
		}
		report.DuplicateIDs = append(report.DuplicateIDs, id)
		if count > report.MaxDuplicateCount {
			report.MaxDuplicateCount = count
		}
	}

	if len(report.DuplicateIDs) == 0 {
		return report
	}

	sort.Strings(report.DuplicateIDs)
	report.Detected = true
	if report.MaxDuplicateCount >= d.severeAt {
		report.Severity = SeveritySevere
	} else {
		report.Severity = SeverityModerate
	}
	return report
}
