// Package traits defines the trait-name universe and the categorized trait
// sets assigned to a foal at birth.
package traits

import "strings"

// Name is a trait identifier. Trait names are plain strings on the wire so
// downstream systems (training, competition) can match on them directly.
type Name string

// Category is one of exactly three trait categories.
type Category string

// Trait categories.
const (
	CategoryPositive Category = "positive"
	CategoryNegative Category = "negative"
	CategoryHidden   Category = "hidden"
)

// Core trait names granted by the birth rules.
const (
	Resilient      Name = "resilient"
	PeopleTrusting Name = "people_trusting"
	Nervous        Name = "nervous"
	LowImmunity    Name = "low_immunity"
	Fragile        Name = "fragile"
	Reactive       Name = "reactive"
	LegacyTalent   Name = "legacy_talent"
)

// affinityTraitPrefix prefixes discipline affinity trait names.
const affinityTraitPrefix = "discipline_affinity_"

// AffinityTrait builds the positive trait name for a discipline affinity:
// the discipline lower-cased with spaces replaced by underscores.
func AffinityTrait(discipline string) Name {
	normalized := strings.ReplaceAll(strings.ToLower(discipline), " ", "_")
	return Name(affinityTraitPrefix + normalized)
}

// IsAffinityTrait reports whether n is a discipline affinity trait.
func IsAffinityTrait(n Name) bool {
	return strings.HasPrefix(string(n), affinityTraitPrefix)
}
