// Package model contains domain models passed between layers.
package model

// CompetitionRecord is a single competition entry in an ancestor's history.
type CompetitionRecord struct {
	Discipline string // discipline the ancestor competed in
	Placement  int    // finishing position, 1 = first
}

// DisciplineScore pairs a discipline with a proficiency score. Scores are
// kept as an ordered slice rather than a map because tie-breaking depends
// on the order the source record listed them in.
type DisciplineScore struct {
	Discipline string
	Score      float64
}

// Ancestor is one ancestor in a lineage. Any of the three discipline
// sources may be absent; an ancestor with none of them still counts toward
// population totals but contributes nothing to discipline tallies.
type Ancestor struct {
	ID                 string // not unique within a lineage; repeats signal inbreeding
	Name               string
	Discipline         string // direct tag, highest resolution priority
	DisciplineScores   []DisciplineScore
	CompetitionHistory []CompetitionRecord
}

// Lineage is the ordered list of ancestors supplied for a birth event.
// Order only matters for tie-breaking; duplicate IDs are meaningful.
type Lineage = []Ancestor

// Dam identifies the mare and her recorded health context. It is carried
// through for traceability; trait rules read only the explicit stress and
// feed inputs on BirthContext.
type Dam struct {
	ID           string
	StressLevel  float64
	HealthStatus string
}

// BirthContext is the single input to trait assignment.
// FeedQuality and StressLevel are normalized to [0,100]; out-of-range
// values are clamped before rule evaluation, never rejected.
type BirthContext struct {
	Mare        Dam
	Lineage     Lineage
	FeedQuality float64
	StressLevel float64
}

// BirthEvent wraps a BirthContext for asynchronous batch processing.
type BirthEvent struct {
	EventID string // unique id for idempotency
	FoalID  string // identity the resulting outcome is recorded under
	Context BirthContext
}
