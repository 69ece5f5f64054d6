package lineage

import (
	"math"

	"github.com/okian/sireline/internal/domain/model"
)

// Default analyzer configuration constants.
const (
	defaultAffinityThreshold = 3
	percentScale             = 100
)

// Affinity is the cheap boolean affinity report.
type Affinity struct {
	Affinity   bool
	Discipline string
	Count      int
}

// Detail extends Affinity with a diagnostic breakdown of the lineage.
type Detail struct {
	Affinity             bool
	Discipline           string
	TotalAnalyzed        int
	TotalWithDisciplines int
	Breakdown            map[string]int
	DominantCount        int
	// AffinityStrength is the dominant share of discipline-resolving
	// ancestors, as a rounded percentage. Zero when nothing resolved.
	AffinityStrength int
}

// SpecificAffinity reports how close a lineage is to a target discipline
// concentration.
type SpecificAffinity struct {
	HasAffinity bool
	Count       int
	Required    int
	Percentage  int
}

// Analyzer resolves ancestor disciplines and aggregates them across a
// lineage. It holds configuration only; every method is a pure function of
// its input and safe for concurrent use.
type Analyzer struct {
	resolvers         []resolverFunc
	affinityThreshold int
}

// Option applies a configuration option to the Analyzer.
type Option func(*Analyzer)

// WithAffinityThreshold sets how many ancestors must share a discipline
// before the lineage counts as having an affinity.
func WithAffinityThreshold(threshold int) Option {
	return func(a *Analyzer) {
		if threshold > 0 {
			a.affinityThreshold = threshold
		}
	}
}

// NewAnalyzer creates an Analyzer with configuration options.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		resolvers:         defaultResolvers(),
		affinityThreshold: defaultAffinityThreshold,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// ResolveDiscipline resolves a single ancestor's discipline through the
// strategy pipeline. Returns the empty string when no source is usable.
func (a *Analyzer) ResolveDiscipline(ancestor model.Ancestor) string {
	for _, resolve := range a.resolvers {
		if d := resolve(ancestor); d != "" {
			return d
		}
	}
	return ""
}

// CheckAffinity tallies resolved disciplines across the lineage and reports
// whether the dominant one reaches the affinity threshold. A nil or empty
// lineage reports no affinity.
func (a *Analyzer) CheckAffinity(lineage model.Lineage) Affinity {
	_, dominant, dominantCount := a.tally(lineage)
	return Affinity{
		Affinity:   dominantCount >= a.affinityThreshold,
		Discipline: dominant,
		Count:      dominantCount,
	}
}

// CheckAffinityDetailed runs the same tally as CheckAffinity and adds the
// per-discipline breakdown and population counts.
func (a *Analyzer) CheckAffinityDetailed(lineage model.Lineage) Detail {
	breakdown, dominant, dominantCount := a.tally(lineage)

	totalWith := 0
	for _, count := range breakdown {
		totalWith += count
	}

	strength := 0
	if totalWith > 0 {
		strength = int(math.Round(float64(dominantCount) / float64(totalWith) * percentScale))
	}

	return Detail{
		Affinity:             dominantCount >= a.affinityThreshold,
		Discipline:           dominant,
		TotalAnalyzed:        len(lineage),
		TotalWithDisciplines: totalWith,
		Breakdown:            breakdown,
		DominantCount:        dominantCount,
		AffinityStrength:     strength,
	}
}

// CheckSpecificAffinity counts ancestors resolving to exactly the given
// discipline. A required count of zero or less falls back to the analyzer's
// affinity threshold.
func (a *Analyzer) CheckSpecificAffinity(lineage model.Lineage, discipline string, required int) SpecificAffinity {
	if required <= 0 {
		required = a.affinityThreshold
	}

	count := 0
	for _, ancestor := range lineage {
		if a.ResolveDiscipline(ancestor) == discipline {
			count++
		}
	}

	return SpecificAffinity{
		HasAffinity: count >= required,
		Count:       count,
		Required:    required,
		Percentage:  int(math.Round(float64(count) / float64(required) * percentScale)),
	}
}

// tally resolves every ancestor and returns the per-discipline counts plus
// the dominant discipline. The dominant tie-break is the first discipline
// to reach the maximum, in lineage order.
func (a *Analyzer) tally(lineage model.Lineage) (breakdown map[string]int, dominant string, dominantCount int) {
	breakdown = make(map[string]int)
	for _, ancestor := range lineage {
		d := a.ResolveDiscipline(ancestor)
		if d == "" {
			continue
		}
		breakdown[d]++
		if breakdown[d] > dominantCount {
			dominant = d
			dominantCount = breakdown[d]
		}
	}
	return breakdown, dominant, dominantCount
}
