// Package epigenetics combines lineage, inbreeding, and maternal-care
// signals into the trait set a foal is born with.
package epigenetics

import (
	"github.com/okian/sireline/internal/domain/inbreeding"
	"github.com/okian/sireline/internal/domain/lineage"
	"github.com/okian/sireline/internal/domain/model"
	"github.com/okian/sireline/internal/domain/traits"
)

// Default rule threshold constants.
const (
	defaultStressCalmMax    = 20.0
	defaultFeedRichMin      = 80.0
	defaultStressHighMin    = 80.0
	defaultFeedPoorMax      = 30.0
	defaultLegacyTalentMin  = 4
	defaultLegacyTalentOdds = 0.25
	extremeDuplicateCount   = 6
	inputMin                = 0.0
	inputMax                = 100.0
	moderateNegativeGrants  = 1
	severeNegativeGrants    = 2
)

// inbreedingNegatives is the ordered pool of negative traits granted for
// inbreeding. Grants take a prefix of this pool scaled by severity.
var inbreedingNegatives = []traits.Name{
	traits.Fragile,
	traits.Reactive,
	traits.LowImmunity,
}

// Assigner evaluates the birth rule table. It holds configuration only;
// Assign is a pure function of its input modulo the injected randomness,
// so any number of births may run concurrently.
type Assigner struct {
	analyzer *lineage.Analyzer
	detector *inbreeding.Detector

	stressCalmMax    float64
	feedRichMin      float64
	stressHighMin    float64
	feedPoorMax      float64
	legacyTalentMin  int
	legacyTalentOdds float64

	// randFloat supplies the legacy-talent roll in [0,1). It is owned by
	// the assigner, never a process-wide generator, so concurrent births
	// do not correlate and tests can pin the outcome.
	randFloat func() float64
}

// NewAssigner creates an Assigner with configuration options.
func NewAssigner(opts ...Option) *Assigner {
	a := &Assigner{
		analyzer:         lineage.NewAnalyzer(),
		detector:         inbreeding.NewDetector(),
		stressCalmMax:    defaultStressCalmMax,
		feedRichMin:      defaultFeedRichMin,
		stressHighMin:    defaultStressHighMin,
		feedPoorMax:      defaultFeedPoorMax,
		legacyTalentMin:  defaultLegacyTalentMin,
		legacyTalentOdds: defaultLegacyTalentOdds,
		randFloat:        cryptoRandFloat,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Assessment carries the ancestry signals a birth was evaluated against,
// for callers that want to report or inspect them alongside the outcome.
type Assessment struct {
	Inbreeding inbreeding.Report
	Affinity   lineage.Affinity
}

// Assign evaluates every birth rule against the context and returns the
// normalized trait outcome. It never fails: a nil lineage is an empty one,
// out-of-range care inputs are clamped, and the mare record is carried for
// traceability only.
func (a *Assigner) Assign(ctx model.BirthContext) traits.Outcome {
	outcome, _ := a.AssignDetailed(ctx)
	return outcome
}

// AssignDetailed is Assign plus the ancestry signals the rules consumed.
func (a *Assigner) AssignDetailed(ctx model.BirthContext) (traits.Outcome, Assessment) {
	stress := clamp(ctx.StressLevel)
	feed := clamp(ctx.FeedQuality)

	var outcome traits.Outcome

	// Maternal-care rules. Each is evaluated independently; a birth may
	// satisfy several at once.
	if stress <= a.stressCalmMax && feed >= a.feedRichMin {
		outcome.AddTrait(traits.CategoryPositive, traits.Resilient)
		outcome.AddTrait(traits.CategoryPositive, traits.PeopleTrusting)
	}
	if stress >= a.stressHighMin {
		outcome.AddTrait(traits.CategoryNegative, traits.Nervous)
	}
	if feed <= a.feedPoorMax {
		outcome.AddTrait(traits.CategoryNegative, traits.LowImmunity)
	}

	// Ancestry rules.
	report := a.detector.Detect(ctx.Lineage)
	for _, n := range a.inbreedingGrants(report) {
		outcome.AddTrait(traits.CategoryNegative, n)
	}

	affinity := a.analyzer.CheckAffinity(ctx.Lineage)
	if affinity.Affinity {
		outcome.AddTrait(traits.CategoryPositive, traits.AffinityTrait(affinity.Discipline))
	}
	if affinity.Count >= a.legacyTalentMin && a.randFloat() < a.legacyTalentOdds {
		outcome.AddTrait(traits.CategoryHidden, traits.LegacyTalent)
	}

	outcome.Normalize()
	return outcome, Assessment{Inbreeding: report, Affinity: affinity}
}

// inbreedingGrants returns the severity-scaled prefix of the negative
// trait pool: one trait for moderate, two for severe, the whole pool when
// a single ancestor saturates the lineage.
func (a *Assigner) inbreedingGrants(report inbreeding.Report) []traits.Name {
	if !report.Detected {
		return nil
	}
	grants := moderateNegativeGrants
	if report.Severity == inbreeding.SeveritySevere {
		grants = severeNegativeGrants
		if report.MaxDuplicateCount >= extremeDuplicateCount {
			grants = len(inbreedingNegatives)
		}
	}
	return inbreedingNegatives[:grants]
}

// Analyzer exposes the lineage analyzer the assigner was built with, for
// callers that want lineage insight without running full assignment.
func (a *Assigner) Analyzer() *lineage.Analyzer {
	return a.analyzer
}

// Detector exposes the inbreeding detector the assigner was built with.
func (a *Assigner) Detector() *inbreeding.Detector {
	return a.detector
}

// clamp forces a care input into the [0,100] range.
func clamp(v float64) float64 {
	switch {
	case v < inputMin:
		return inputMin
	case v > inputMax:
		return inputMax
	default:
		return v
	}
}
