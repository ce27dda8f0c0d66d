package service

import (
	"fmt"

	"github.com/agrisense/agrisense/internal/nav"
	"github.com/agrisense/agrisense/internal/zone"
)

// ValidationConfidence is the fixed confidence reported for a confirmed ground check.
const ValidationConfidence = 94

// Outcome is the rendered verdict of a simulated ground validation.
type Outcome struct {
	Confirmed bool
	Headline  string
	Summary   string
	Satellite zone.Status
	Ground    zone.Status
	// Confidence is empty unless the issue was confirmed.
	Confidence string
	Footer     string
}

// AnalysisSteps are the progress lines shown while the image is analysed.
var AnalysisSteps = []string{
	"Processing image",
	"Analyzing vegetation health",
	"Cross-referencing satellite data",
}

// Analyze returns the outcome for the chosen result variant. The ground
// reading is simulated; only the variant decides it.
func Analyze(r nav.Result) Outcome {
	if r == nav.ResultFalsePositive {
		return Outcome{
			Headline:  "No Issue Detected",
			Summary:   "No stress detected in ground image. Satellite detection may be a false positive.",
			Satellite: zone.StatusMedium,
			Ground:    zone.StatusHealthy,
			Footer:    "Feedback logged for model improvement",
		}
	}
	return Outcome{
		Confirmed:  true,
		Headline:   "Issue Confirmed",
		Summary:    "Ground image matches satellite detection. Water stress confirmed in this zone.",
		Satellite:  zone.StatusHigh,
		Ground:     zone.StatusHigh,
		Confidence: fmt.Sprintf("Validation complete • Confidence: %d%%", ValidationConfidence),
		Footer:     "Data saved to zone history",
	}
}

// StressLabel is the short comparison wording used on the result screen.
func StressLabel(s zone.Status) string {
	switch s {
	case zone.StatusHigh:
		return "High stress"
	case zone.StatusMedium:
		return "Medium stress"
	default:
		return "Healthy"
	}
}
