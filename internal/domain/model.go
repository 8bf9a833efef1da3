package domain

import "strings"

// IssueKey identifies a category of condition issue the vision stage may report.
type IssueKey string

const (
	IssueExteriorScratches IssueKey = "exterior_scratches"
	IssueDents             IssueKey = "dents"
	IssuePaintFade         IssueKey = "paint_fade"
	IssueRust              IssueKey = "rust"
	IssueGlassChips        IssueKey = "glass_chips"
	IssueWheelCurbRash     IssueKey = "wheel_curb_rash"
	IssueTireWear          IssueKey = "tire_wear"
	IssueInteriorWear      IssueKey = "interior_wear"
	IssueOdor              IssueKey = "odor"
	IssueDashboardWarning  IssueKey = "dashboard_warning"
	IssueMods              IssueKey = "mods"
	IssueLightsDamage      IssueKey = "lights_damage"
	IssueUndercarriageLeak IssueKey = "undercarriage_leak"
	IssueMissingParts      IssueKey = "missing_parts"
)

// AllIssueKeys enumerates the closed set of issue keys.
var AllIssueKeys = []IssueKey{
	IssueExteriorScratches, IssueDents, IssuePaintFade, IssueRust,
	IssueGlassChips, IssueWheelCurbRash, IssueTireWear, IssueInteriorWear,
	IssueOdor, IssueDashboardWarning, IssueMods, IssueLightsDamage,
	IssueUndercarriageLeak, IssueMissingParts,
}

// Valid reports whether k belongs to the closed issue key set.
func (k IssueKey) Valid() bool {
	for _, v := range AllIssueKeys {
		if k == v {
			return true
		}
	}
	return false
}

// Finding is one condition issue detected by the vision stage.
type Finding struct {
	IssueKey    IssueKey `json:"issueKey"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Severity    int      `json:"severity"`   // 1=minor, 5=severe
	Confidence  float64  `json:"confidence"` // 0.0-1.0
}

const (
	MinSeverity = 1
	MaxSeverity = 5
)

// Angle is a vehicle viewpoint documented by the photo set.
type Angle string

const (
	AngleFront     Angle = "front"
	AngleRear      Angle = "rear"
	AngleLeft      Angle = "left"
	AngleRight     Angle = "right"
	AngleInterior  Angle = "interior"
	AngleDash      Angle = "dash"
	AngleOdometer  Angle = "odometer"
	AngleEngineBay Angle = "engine_bay"
)

var AllAngles = []Angle{
	AngleFront, AngleRear, AngleLeft, AngleRight,
	AngleInterior, AngleDash, AngleOdometer, AngleEngineBay,
}

func (a Angle) Valid() bool {
	for _, v := range AllAngles {
		if a == v {
			return true
		}
	}
	return false
}

// Cleanliness is the vision stage's overall impression of how kept the vehicle is.
type Cleanliness string

const (
	CleanlinessRough     Cleanliness = "rough"
	CleanlinessAverage   Cleanliness = "average"
	CleanlinessClean     Cleanliness = "clean"
	CleanlinessExcellent Cleanliness = "excellent"
)

func (c Cleanliness) Valid() bool {
	switch c {
	case CleanlinessRough, CleanlinessAverage, CleanlinessClean, CleanlinessExcellent:
		return true
	default:
		return false
	}
}

// Coverage describes how completely the photo set documents the vehicle.
type Coverage struct {
	Angles            []Angle `json:"angles"`
	PhotoCount        int     `json:"photoCount"`
	PhotoQualityScore float64 `json:"photoQualityScore"`
}

// Observations groups findings into the fixed vision categories.
type Observations struct {
	Exterior    []Finding `json:"exterior"`
	Interior    []Finding `json:"interior"`
	TiresWheels []Finding `json:"tires_wheels"`
	GlassLights []Finding `json:"glass_lights"`
	Mechanical  []Finding `json:"mechanical"`
	Other       []Finding `json:"other"`
}

// Category names a findings group inside Observations.
type Category string

const (
	CategoryExterior    Category = "exterior"
	CategoryInterior    Category = "interior"
	CategoryTiresWheels Category = "tires_wheels"
	CategoryGlassLights Category = "glass_lights"
	CategoryMechanical  Category = "mechanical"
	CategoryOther       Category = "other"
)

type categoryAccessor struct {
	name Category
	get  func(*Observations) *[]Finding
}

// categoryOrder fixes the flattening order of findings.
var categoryOrder = []categoryAccessor{
	{CategoryExterior, func(o *Observations) *[]Finding { return &o.Exterior }},
	{CategoryInterior, func(o *Observations) *[]Finding { return &o.Interior }},
	{CategoryTiresWheels, func(o *Observations) *[]Finding { return &o.TiresWheels }},
	{CategoryGlassLights, func(o *Observations) *[]Finding { return &o.GlassLights }},
	{CategoryMechanical, func(o *Observations) *[]Finding { return &o.Mechanical }},
	{CategoryOther, func(o *Observations) *[]Finding { return &o.Other }},
}

// Categories returns the category names in flattening order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	for i, c := range categoryOrder {
		out[i] = c.name
	}
	return out
}

// VisualObservation is the validated output of one vision-model call.
type VisualObservation struct {
	Observations   Observations `json:"observations"`
	Cleanliness    Cleanliness  `json:"cleanliness"`
	OverallComment string       `json:"overallComment"`
	Coverage       Coverage     `json:"coverage"`
}

// Findings flattens every category into one sequence. Category order is
// exterior, interior, tires_wheels, glass_lights, mechanical, other; emission
// order is preserved within a category.
func (v VisualObservation) Findings() []Finding {
	var all []Finding
	for _, c := range categoryOrder {
		all = append(all, *c.get(&v.Observations)...)
	}
	return all
}

// Listing is one comparable vehicle offer. Price and Miles are nil when the
// source omitted them; such rows are never used for estimation.
type Listing struct {
	Price *float64 `json:"price,omitempty"`
	Miles *float64 `json:"miles,omitempty"`
}

// VehicleIdentity is a decoded-VIN record.
type VehicleIdentity struct {
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  int    `json:"year"`
	VIN   string `json:"vin"`
}

// Photo is either a URL reference or inline image bytes with a media type.
type Photo struct {
	URL  string `json:"url,omitempty"`
	Data []byte `json:"data,omitempty"`
	Mime string `json:"mediaType,omitempty"`
}

const DefaultMediaType = "image/jpeg"

// URLPhoto references an image the vision collaborator fetches itself.
func URLPhoto(url string) Photo { return Photo{URL: url} }

// InlinePhoto carries the image bytes directly.
func InlinePhoto(data []byte, mediaType string) Photo {
	return Photo{Data: data, Mime: mediaType}
}

// IsURL reports whether the photo is a URL reference.
func (p Photo) IsURL() bool { return p.URL != "" }

// MediaType returns the image media type, defaulting to image/jpeg.
func (p Photo) MediaType() string {
	if p.IsURL() || strings.TrimSpace(p.Mime) == "" {
		return DefaultMediaType
	}
	return p.Mime
}

// AssessmentInput is everything the engine needs for one assessment request.
type AssessmentInput struct {
	Mileage           int              `json:"mileage"`
	Description       string           `json:"description"`
	Photos            []Photo          `json:"photos"`
	VIN               string           `json:"vin,omitempty"`
	MarketComparables []Listing        `json:"marketComparables,omitempty"`
	VehicleIdentity   *VehicleIdentity `json:"vehicleIdentity,omitempty"`
}

// Submission is a stored request awaiting assessment. PhotoRefs are resolved
// through a PhotoSource.
type Submission struct {
	ID          string    `json:"id"`
	VIN         string    `json:"vin"`
	Mileage     int       `json:"mileage"`
	Description string    `json:"description"`
	PhotoRefs   []string  `json:"photoRefs"`
	Listings    []Listing `json:"listings,omitempty"`
}
