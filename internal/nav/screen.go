// Package nav holds the screen router: the single source of truth for what
// is on screen and the only way to change it.
package nav

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agrisense/agrisense/internal/zone"
)

// Screen identifies one mutually exclusive view.
type Screen string

const (
	Welcome         Screen = "welcome"
	Dashboard       Screen = "dashboard"
	Map             Screen = "map"
	ZoneDetails     Screen = "zoneDetails"
	ImageUpload     Screen = "imageUpload"
	AIProcessing    Screen = "aiProcessing"
	AIResult        Screen = "aiResult"
	Recommendations Screen = "recommendations"
	Notifications   Screen = "notifications"
	Profile         Screen = "profile"
)

var (
	ErrUnknownScreen = errors.New("unknown screen")
	ErrUnknownResult = errors.New("unknown result variant")
)

var screens = []Screen{
	Welcome, Dashboard, Map, ZoneDetails, ImageUpload,
	AIProcessing, AIResult, Recommendations, Notifications, Profile,
}

// Screens lists every screen in flow order.
func Screens() []Screen {
	out := make([]Screen, len(screens))
	copy(out, screens)
	return out
}

// Valid reports whether s is one of the known screens.
func (s Screen) Valid() bool {
	for _, known := range screens {
		if s == known {
			return true
		}
	}
	return false
}

// RequiresZone reports whether the screen cannot render without a selected zone.
func (s Screen) RequiresZone() bool {
	return s == ZoneDetails
}

// Title is the heading shown for the screen.
func (s Screen) Title() string {
	switch s {
	case Welcome:
		return "Welcome"
	case Dashboard:
		return "Dashboard"
	case Map:
		return "Field Map"
	case ZoneDetails:
		return "Zone Details"
	case ImageUpload:
		return "Ground Validation"
	case AIProcessing:
		return "Analyzing"
	case AIResult:
		return "Validation Result"
	case Recommendations:
		return "Recommendations"
	case Notifications:
		return "Notifications"
	case Profile:
		return "Profile"
	}
	return string(s)
}

// ParseScreen matches a screen name case-insensitively.
func ParseScreen(name string) (Screen, error) {
	name = strings.TrimSpace(name)
	for _, s := range screens {
		if strings.EqualFold(string(s), name) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScreen, name)
}

// Result is the simulated ground-validation outcome shown on aiResult.
type Result string

const (
	ResultConfirmed     Result = "confirmed"
	ResultFalsePositive Result = "false"
)

// Valid reports whether r is confirmed or false.
func (r Result) Valid() bool {
	return r == ResultConfirmed || r == ResultFalsePositive
}

// Toggle flips between the two variants.
func (r Result) Toggle() Result {
	if r == ResultFalsePositive {
		return ResultConfirmed
	}
	return ResultFalsePositive
}

// ParseResult accepts "confirmed" and "false" (also "false-positive").
func ParseResult(s string) (Result, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "confirmed":
		return ResultConfirmed, nil
	case "false", "false-positive", "false_positive":
		return ResultFalsePositive, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownResult, s)
}

// State is the navigation context handed to render collaborators.
type State struct {
	Screen Screen
	// Zone is nil until a zone has been selected.
	Zone   *zone.Zone
	Result Result
}

// HasZone reports whether a zone has been selected.
func (s State) HasZone() bool {
	return s.Zone != nil
}

// ZoneID returns the selected zone id or "".
func (s State) ZoneID() string {
	if s.Zone == nil {
		return ""
	}
	return s.Zone.ID
}
