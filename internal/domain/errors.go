package domain

import "errors"

var (
	// ErrMalformedObservation marks vision output that fails schema validation
	// beyond what dropping individual findings can repair.
	ErrMalformedObservation = errors.New("malformed visual observation")
	// ErrNoUsableFindings means the model reported findings and every one was invalid.
	ErrNoUsableFindings = errors.New("no usable findings in visual observation")
	ErrNoPhotos         = errors.New("no photos could be loaded")
	ErrReportNotFound   = errors.New("report not found")
)
