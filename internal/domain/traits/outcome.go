package traits

// Outcome is the full trait assignment produced for one birth.
// Invariant after Normalize: a name appears at most once across all three
// categories, and never twice within one.
type Outcome struct {
	Positive []Name
	Negative []Name
	Hidden   []Name
}

// AddTrait appends a trait to the given category. Duplicates are tolerated
// here and collapsed by Normalize.
func (o *Outcome) AddTrait(category Category, n Name) {
	switch category {
	case CategoryPositive:
		o.Positive = append(o.Positive, n)
	case CategoryNegative:
		o.Negative = append(o.Negative, n)
	case CategoryHidden:
		o.Hidden = append(o.Hidden, n)
	}
}

// HasTrait reports whether the trait is present in any category.
func (o *Outcome) HasTrait(n Name) bool {
	return contains(o.Positive, n) || contains(o.Negative, n) || contains(o.Hidden, n)
}

// PositiveTraits returns the positive trait names as plain strings.
func (o *Outcome) PositiveTraits() []string { return toStrings(o.Positive) }

// NegativeTraits returns the negative trait names as plain strings.
func (o *Outcome) NegativeTraits() []string { return toStrings(o.Negative) }

// HiddenTraits returns the hidden trait names as plain strings.
func (o *Outcome) HiddenTraits() []string { return toStrings(o.Hidden) }

// Normalize removes duplicates within each category and across categories.
// When two categories claim the same name, the earlier category wins in the
// order positive, negative, hidden.
// Normalize is idempotent.
func (o *Outcome) Normalize() {
	claimed := make(map[Name]struct{})
	o.Positive = dedupe(o.Positive, claimed)
	o.Negative = dedupe(o.Negative, claimed)
	o.Hidden = dedupe(o.Hidden, claimed)
}

// dedupe filters names already claimed, preserving first-seen order and
// recording survivors in claimed.
func dedupe(names []Name, claimed map[Name]struct{}) []Name {
	if len(names) == 0 {
		return names
	}
	out := names[:0]
	for _, n := range names {
		if _, ok := claimed[n]; ok {
			continue
		}
		claimed[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func contains(names []Name, n Name) bool {
	for _, candidate := range names {
		if candidate == n {
			return true
		}
	}
	return false
}

func toStrings(names []Name) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return out
}
