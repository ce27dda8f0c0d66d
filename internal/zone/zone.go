// Package zone describes monitored field zones: their crop-health status and
// boundary polygon.
package zone

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Status is the crop-health classification of a zone.
type Status string

const (
	StatusHealthy Status = "healthy"
	StatusMedium  Status = "medium"
	StatusHigh    Status = "high"
)

// ErrInvalid wraps every zone invariant violation.
var ErrInvalid = errors.New("invalid zone")

// Statuses lists the statuses in display order, healthiest first.
func Statuses() []Status {
	return []Status{StatusHealthy, StatusMedium, StatusHigh}
}

// ParseStatus accepts the lower-case wire names.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalid, s)
	}
	return st, nil
}

func (s Status) Valid() bool {
	switch s {
	case StatusHealthy, StatusMedium, StatusHigh:
		return true
	}
	return false
}

// Color returns the hex display colour for the status.
func (s Status) Color() string {
	switch s {
	case StatusMedium:
		return "#F2C94C"
	case StatusHigh:
		return "#EB5757"
	default:
		return "#16C47F"
	}
}

// Label is the dashboard wording for the status.
func (s Status) Label() string {
	switch s {
	case StatusMedium:
		return "Medium Stress"
	case StatusHigh:
		return "High Stress"
	default:
		return "Healthy"
	}
}

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Lat float64
	Lng float64
}

// Zone is one monitored field.
type Zone struct {
	ID         string
	Name       string
	CropType   string
	Status     Status
	Confidence float64 // percent, 0-100
	LastScan   string
	// PredictedIssue is empty when nothing is predicted.
	PredictedIssue string
	Boundary       []Coordinate
}

// Issue returns the predicted issue or "None".
func (z Zone) Issue() string {
	if strings.TrimSpace(z.PredictedIssue) == "" {
		return "None"
	}
	return z.PredictedIssue
}

// Vertices returns the number of distinct boundary points, ignoring an
// explicit closing point.
func (z Zone) Vertices() int {
	n := len(z.Boundary)
	if n > 1 && z.Boundary[0] == z.Boundary[n-1] {
		n--
	}
	return n
}

// Validate reports every violated invariant joined into one error.
func (z Zone) Validate() error {
	var errs []error
	if strings.TrimSpace(z.ID) == "" {
		errs = append(errs, fmt.Errorf("%w: empty id", ErrInvalid))
	}
	if !z.Status.Valid() {
		errs = append(errs, fmt.Errorf("%w: zone %s: unknown status %q", ErrInvalid, z.ID, z.Status))
	}
	if math.IsNaN(z.Confidence) || z.Confidence < 0 || z.Confidence > 100 {
		errs = append(errs, fmt.Errorf("%w: zone %s: confidence %v outside [0,100]", ErrInvalid, z.ID, z.Confidence))
	}
	if z.Vertices() < 3 {
		errs = append(errs, fmt.Errorf("%w: zone %s: boundary needs at least 3 points, got %d", ErrInvalid, z.ID, z.Vertices()))
	}
	return errors.Join(errs...)
}
