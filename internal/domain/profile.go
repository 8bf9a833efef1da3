package domain

// AssessmentProfile carries every constant the engine stages need.
// Built once from defaults merged with overrides, then shared read-only.
type AssessmentProfile struct {
	// Condition scoring: points removed per severity level.
	DeductionWeights map[IssueKey]int

	// Valuation: USD reconditioning cost per severity level. Partial; keys
	// absent from the table cost nothing.
	ReconWeights map[IssueKey]float64
	DealerMargin float64 // fraction below mid-market, 0.10 = 10%

	// Market estimation
	MinComparables  int
	FenceMultiplier float64 // IQR multiplier for the outlier fence

	// Confidence blending
	DefaultFindingConfidence float64 // used when there are no findings
	QualityWeight            float64 // share of photo quality in the coverage factor
	AngleWeight              float64 // share of angle completeness in the coverage factor
	MaxAngles                int     // distinct angles that earn full angle credit
	FindingBlendWeight       float64 // share of finding confidence in the final blend
	HighConfidence           int
	MediumConfidence         int
}

var defaultDeductionWeights = map[IssueKey]int{
	IssueDents:             10,
	IssueExteriorScratches: 4,
	IssuePaintFade:         5,
	IssueRust:              8,
	IssueGlassChips:        6,
	IssueWheelCurbRash:     3,
	IssueTireWear:          5,
	IssueInteriorWear:      6,
	IssueOdor:              10,
	IssueDashboardWarning:  12,
	IssueMods:              4,
	IssueLightsDamage:      5,
	IssueUndercarriageLeak: 12,
	IssueMissingParts:      7,
}

// Rule-of-thumb USD per severity level.
var defaultReconWeights = map[IssueKey]float64{
	IssueDents:             300,
	IssueExteriorScratches: 120,
	IssuePaintFade:         180,
	IssueRust:              350,
	IssueGlassChips:        220,
	IssueWheelCurbRash:     80,
	IssueTireWear:          150,
	IssueInteriorWear:      180,
	IssueOdor:              250,
	IssueDashboardWarning:  400,
	IssueMods:              120,
	IssueLightsDamage:      160,
	IssueUndercarriageLeak: 450,
	IssueMissingParts:      200,
}

// DefaultProfile returns the standard weight tables and blend constants.
func DefaultProfile() AssessmentProfile {
	return AssessmentProfile{
		DeductionWeights:         copyWeights(defaultDeductionWeights),
		ReconWeights:             copyWeights(defaultReconWeights),
		DealerMargin:             0.10,
		MinComparables:           3,
		FenceMultiplier:          1.5,
		DefaultFindingConfidence: 0.4,
		QualityWeight:            0.6,
		AngleWeight:              0.4,
		MaxAngles:                6,
		FindingBlendWeight:       0.5,
		HighConfidence:           85,
		MediumConfidence:         65,
	}
}

// Deduction returns the per-level deduction for k, 0 when unmapped.
func (p AssessmentProfile) Deduction(k IssueKey) int { return p.DeductionWeights[k] }

// Recon returns the per-level reconditioning cost for k, 0 when unmapped.
func (p AssessmentProfile) Recon(k IssueKey) float64 { return p.ReconWeights[k] }

func copyWeights[V int | float64](src map[IssueKey]V) map[IssueKey]V {
	dst := make(map[IssueKey]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// Clone returns a deep copy so overrides never touch a shared profile.
func (p AssessmentProfile) Clone() AssessmentProfile {
	c := p
	c.DeductionWeights = copyWeights(p.DeductionWeights)
	c.ReconWeights = copyWeights(p.ReconWeights)
	return c
}
