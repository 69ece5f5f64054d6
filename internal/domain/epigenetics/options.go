package epigenetics

import (
	"github.com/okian/sireline/internal/domain/inbreeding"
	"github.com/okian/sireline/internal/domain/lineage"
)

// Option applies a configuration option to the Assigner.
type Option func(*Assigner)

// WithAnalyzer sets a custom lineage analyzer.
func WithAnalyzer(analyzer *lineage.Analyzer) Option {
	return func(a *Assigner) {
		if analyzer != nil {
			a.analyzer = analyzer
		}
	}
}

// WithDetector sets a custom inbreeding detector.
func WithDetector(detector *inbreeding.Detector) Option {
	return func(a *Assigner) {
		if detector != nil {
			a.detector = detector
		}
	}
}

// WithStressCalmMax sets the highest stress level that still counts as a
// calm pregnancy for the optimal-care rule.
func WithStressCalmMax(level float64) Option {
	return func(a *Assigner) {
		if level >= 0 {
			a.stressCalmMax = level
		}
	}
}

// WithFeedRichMin sets the lowest feed quality that still counts as rich
// nutrition for the optimal-care rule.
func WithFeedRichMin(quality float64) Option {
	return func(a *Assigner) {
		if quality >= 0 {
			a.feedRichMin = quality
		}
	}
}

// WithStressHighMin sets the stress level at which the nervous trait is
// granted.
func WithStressHighMin(level float64) Option {
	return func(a *Assigner) {
		if level >= 0 {
			a.stressHighMin = level
		}
	}
}

// WithFeedPoorMax sets the feed quality at or below which low immunity is
// granted.
func WithFeedPoorMax(quality float64) Option {
	return func(a *Assigner) {
		if quality >= 0 {
			a.feedPoorMax = quality
		}
	}
}

// WithLegacyTalentMin sets how many ancestors must share a discipline
// before the legacy-talent roll happens.
func WithLegacyTalentMin(count int) Option {
	return func(a *Assigner) {
		if count > 0 {
			a.legacyTalentMin = count
		}
	}
}

// WithLegacyTalentOdds sets the probability in [0,1] that a qualifying
// birth receives the hidden legacy-talent trait.
func WithLegacyTalentOdds(odds float64) Option {
	return func(a *Assigner) {
		if odds >= 0 && odds <= 1 {
			a.legacyTalentOdds = odds
		}
	}
}

// WithRandFloat injects the randomness source for the legacy-talent roll.
// The function must return values in [0,1) and be safe for concurrent use.
func WithRandFloat(randFloat func() float64) Option {
	return func(a *Assigner) {
		if randFloat != nil {
			a.randFloat = randFloat
		}
	}
}
