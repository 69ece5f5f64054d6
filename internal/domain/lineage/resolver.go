// Package lineage analyzes ancestor lineages for discipline specialization.
package lineage

import "github.com/okian/sireline/internal/domain/model"

// resolverFunc is one discipline-resolution strategy. It returns the empty
// string when the ancestor carries no usable signal for that strategy.
type resolverFunc func(a model.Ancestor) string

// defaultResolvers is the resolution pipeline in priority order:
// direct tag, then best proficiency score, then competition frequency.
// The first non-empty result wins.
func defaultResolvers() []resolverFunc {
	return []resolverFunc{
		resolveDirectTag,
		resolveBestScore,
		resolveCompetitionHistory,
	}
}

// resolveDirectTag returns the discipline the ancestor is tagged with.
func resolveDirectTag(a model.Ancestor) string {
	return a.Discipline
}

// resolveBestScore returns the discipline with the highest proficiency
// score. Ties go to the score listed first.
func resolveBestScore(a model.Ancestor) string {
	if len(a.DisciplineScores) == 0 {
		return ""
	}
	best := a.DisciplineScores[0]
	for _, ds := range a.DisciplineScores[1:] {
		if ds.Score > best.Score {
			best = ds
		}
	}
	return best.Discipline
}

// resolveCompetitionHistory returns the most frequent discipline across the
// ancestor's competition entries. Ties go to the discipline seen first.
func resolveCompetitionHistory(a model.Ancestor) string {
	if len(a.CompetitionHistory) == 0 {
		return ""
	}
	counts := make(map[string]int, len(a.CompetitionHistory))
	var (
		best      string
		bestCount int
	)
	for _, rec := range a.CompetitionHistory {
		if rec.Discipline == "" {
			continue
		}
		counts[rec.Discipline]++
		if counts[rec.Discipline] > bestCount {
			best = rec.Discipline
			bestCount = counts[rec.Discipline]
		}
	}
	return best
}
