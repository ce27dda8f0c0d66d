package nav

// Carry names the context a transition hands to its target.
type Carry uint8

const (
	CarryNothing Carry = iota
	CarryZone
	CarryResult
)

// Edge is one user- or timer-driven transition offered by a screen.
type Edge struct {
	From    Screen
	To      Screen
	Carries Carry
	// Timed edges are taken by the router itself after the processing delay.
	Timed bool
}

// Transitions is the reachable screen graph.
var Transitions = []Edge{
	{From: Welcome, To: Dashboard},
	{From: Dashboard, To: Map},
	{From: Dashboard, To: Notifications},
	{From: Map, To: ZoneDetails, Carries: CarryZone},
	{From: Map, To: Profile},
	{From: Map, To: Dashboard},
	{From: ZoneDetails, To: ImageUpload},
	{From: ZoneDetails, To: Map},
	{From: ImageUpload, To: AIProcessing, Carries: CarryResult},
	{From: ImageUpload, To: ZoneDetails},
	{From: AIProcessing, To: AIResult, Timed: true},
	{From: AIResult, To: Recommendations},
	{From: AIResult, To: Map},
	{From: Recommendations, To: Map},
	{From: Recommendations, To: AIResult},
	{From: Notifications, To: Dashboard},
	{From: Profile, To: Map},
	{From: Profile, To: Welcome},
}

// Edges returns the transitions leaving from, in table order.
func Edges(from Screen) []Edge {
	var out []Edge
	for _, e := range Transitions {
		if e.From == from {
			out = append(out, e)
		}
	}
	return out
}

// Allowed reports whether from -> to is in the table.
func Allowed(from, to Screen) bool {
	for _, e := range Transitions {
		if e.From == from && e.To == to {
			return true
		}
	}
	return false
}
