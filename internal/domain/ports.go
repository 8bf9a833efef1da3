package domain

import "context"

// VisionInterpreter turns photos and notes into a VisualObservation. It is the
// only blocking call inside an assessment.
type VisionInterpreter interface {
	Interpret(ctx context.Context, req VisionRequest) (*VisualObservation, error)
}

// VisionRequest is the payload sent to the vision model.
type VisionRequest struct {
	Mileage     int
	Description string
	Photos      []Photo
}

// VINDecoder resolves a VIN to make/model/year.
type VINDecoder interface {
	Decode(ctx context.Context, vin string) (*VehicleIdentity, error)
}

// MarketQuery selects comparable listings.
type MarketQuery struct {
	Year    int
	Make    string
	Model   string
	Mileage int
}

// MarketLookup returns comparable listings for a vehicle.
type MarketLookup interface {
	Comparables(ctx context.Context, q MarketQuery) ([]Listing, error)
}

// PhotoSource resolves a stored photo reference to an image payload.
type PhotoSource interface {
	Load(ctx context.Context, ref string) (Photo, error)
}

// ReportStore persists finished assessments keyed by submission id.
type ReportStore interface {
	Save(ctx context.Context, submissionID string, report *AssessmentReport) error
	Load(ctx context.Context, submissionID string) (*AssessmentReport, error)
}

// ReportHistory lists past assessments.
type ReportHistory interface {
	Record(entry ReportEntry) error
	Entries() ([]ReportEntry, error)
}

// ProfileLoader reads assessment profile overrides from a directory.
type ProfileLoader interface {
	Load(dir string) (ProfileConfig, error)
}

// RevisionInfo identifies the revision of the directory holding the profile.
type RevisionInfo interface {
	CommitHash(dir string) (string, error)
}
