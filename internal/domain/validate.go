package domain

import (
	"fmt"
	"math"
	"unicode/utf8"
)

// minTextLen is the shortest title, description or icon accepted from the model.
const minTextLen = 2

// Rejection explains why a finding was dropped during validation.
type Rejection struct {
	Category Category `json:"category"`
	Index    int      `json:"index"`
	Reason   string   `json:"reason"`
}

func (r Rejection) String() string {
	return fmt.Sprintf("%s[%d]: %s", r.Category, r.Index, r.Reason)
}

// ValidateObservation enforces the vision output schema. Invalid findings are
// dropped and reported as rejections; invalid coverage or cleanliness, or a
// response whose every finding was invalid, is an error.
func ValidateObservation(obs VisualObservation) (VisualObservation, []Rejection, error) {
	if !obs.Cleanliness.Valid() {
		return VisualObservation{}, nil, fmt.Errorf("%w: unknown cleanliness %q", ErrMalformedObservation, obs.Cleanliness)
	}

	coverage, err := validateCoverage(obs.Coverage)
	if err != nil {
		return VisualObservation{}, nil, err
	}

	clean := VisualObservation{
		Cleanliness:    obs.Cleanliness,
		OverallComment: obs.OverallComment,
		Coverage:       coverage,
	}

	var rejections []Rejection
	var emitted, kept int
	for _, c := range categoryOrder {
		src := *c.get(&obs.Observations)
		dst := make([]Finding, 0, len(src))
		for i, f := range src {
			emitted++
			if reason := checkFinding(f); reason != "" {
				rejections = append(rejections, Rejection{Category: c.name, Index: i, Reason: reason})
				continue
			}
			dst = append(dst, f)
			kept++
		}
		*c.get(&clean.Observations) = dst
	}

	if emitted > 0 && kept == 0 {
		return VisualObservation{}, rejections, fmt.Errorf("%w: all %d findings rejected", ErrNoUsableFindings, emitted)
	}

	return clean, rejections, nil
}

// checkFinding returns a non-empty reason when f violates the schema.
func checkFinding(f Finding) string {
	switch {
	case !f.IssueKey.Valid():
		return fmt.Sprintf("unknown issueKey %q", f.IssueKey)
	case f.Severity < MinSeverity || f.Severity > MaxSeverity:
		return fmt.Sprintf("severity %d outside [%d,%d]", f.Severity, MinSeverity, MaxSeverity)
	case math.IsNaN(f.Confidence) || f.Confidence < 0 || f.Confidence > 1:
		return fmt.Sprintf("confidence %v outside [0,1]", f.Confidence)
	case utf8.RuneCountInString(f.Title) < minTextLen:
		return "title too short"
	case utf8.RuneCountInString(f.Description) < minTextLen:
		return "description too short"
	case utf8.RuneCountInString(f.Icon) < minTextLen:
		return "icon too short"
	default:
		return ""
	}
}

// validateCoverage drops unknown and repeated angles, keeping first-seen order.
func validateCoverage(c Coverage) (Coverage, error) {
	if c.PhotoCount < 0 {
		return Coverage{}, fmt.Errorf("%w: photoCount %d is negative", ErrMalformedObservation, c.PhotoCount)
	}
	q := c.PhotoQualityScore
	if math.IsNaN(q) || q < 0 || q > 1 {
		return Coverage{}, fmt.Errorf("%w: photoQualityScore %v outside [0,1]", ErrMalformedObservation, q)
	}

	seen := make(map[Angle]bool, len(c.Angles))
	angles := make([]Angle, 0, len(c.Angles))
	for _, a := range c.Angles {
		if !a.Valid() || seen[a] {
			continue
		}
		seen[a] = true
		angles = append(angles, a)
	}

	return Coverage{Angles: angles, PhotoCount: c.PhotoCount, PhotoQualityScore: q}, nil
}
