package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"

	"github.com/agrisense/agrisense/internal/nav"
	"github.com/agrisense/agrisense/internal/service"
	"github.com/agrisense/agrisense/internal/zone"
)

const (
	mapCols = 44
	mapRows = 14
	// mapPad is the margin around the zones, in degrees.
	mapPad = 0.003
)

// mapLayer selects how zone polygons are drawn.
type mapLayer int

const (
	// layerHealth fills each zone with its status colour.
	layerHealth mapLayer = iota
	// layerSatellite draws zone outlines only.
	layerSatellite
)

func (l mapLayer) String() string {
	if l == layerSatellite {
		return "Satellite"
	}
	return "Health"
}

// mapView draws the zones and owns the map cursor, search box, bottom
// sheet and layer.
type mapView struct {
	zones    []zone.Zone
	filtered []zone.Zone
	cursor   int
	sheet    bool
	layer    mapLayer
	search   textinput.Model
}

func newMapView() *mapView {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "zone, name or crop"
	ti.CharLimit = 32
	return &mapView{search: ti}
}

func (v *mapView) setZones(zones []zone.Zone) {
	v.zones = zones
	v.refilter()
}

func (v *mapView) refilter() {
	v.filtered = service.Search(v.zones, v.search.Value())
	if v.cursor >= len(v.filtered) {
		v.cursor = max(0, len(v.filtered)-1)
	}
	if len(v.filtered) == 0 {
		v.sheet = false
	}
}

func (v *mapView) searching() bool {
	return v.search.Focused()
}

// Enter closes the sheet and puts the cursor on the selected zone.
func (v *mapView) Enter(st nav.State) tea.Cmd {
	v.sheet = false
	if st.Zone == nil {
		return nil
	}
	for i, z := range v.filtered {
		if z.ID == st.Zone.ID {
			v.cursor = i
			break
		}
	}
	return nil
}

func (v *mapView) current() (zone.Zone, bool) {
	if v.cursor < 0 || v.cursor >= len(v.filtered) {
		return zone.Zone{}, false
	}
	return v.filtered[v.cursor], true
}

func (v *mapView) Update(msg tea.KeyMsg, _ nav.State, navigate navigateFunc) tea.Cmd {
	if v.searching() {
		switch {
		case key.Matches(msg, keySearchDone):
			v.search.Blur()
			return nil
		case key.Matches(msg, keySearchClear):
			v.search.Blur()
			v.search.Reset()
			v.refilter()
			return nil
		}
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		v.cursor = 0
		v.refilter()
		return cmd
	}

	switch {
	case key.Matches(msg, keyUp):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(msg, keyDown):
		if v.cursor < len(v.filtered)-1 {
			v.cursor++
		}
	case key.Matches(msg, keySearch):
		v.sheet = false
		return v.search.Focus()
	case key.Matches(msg, keyToggleSheet):
		if _, ok := v.current(); ok {
			v.sheet = !v.sheet
		}
	case key.Matches(msg, keyLayer):
		if v.layer == layerHealth {
			v.layer = layerSatellite
		} else {
			v.layer = layerHealth
		}
	case key.Matches(msg, keyViewDetails):
		if z, ok := v.current(); ok && v.sheet {
			return navigate(nav.ZoneDetails, nav.WithZone(z))
		}
	case key.Matches(msg, keyProfile):
		return navigate(nav.Profile)
	case key.Matches(msg, keyBack):
		return navigate(nav.Dashboard)
	}
	return nil
}

func (v *mapView) View(_ nav.State, width int) string {
	if len(v.zones) == 0 {
		return mutedStyle.Render("Loading zones...")
	}
	selected := ""
	if z, ok := v.current(); ok {
		selected = z.ID
	}
	grid := renderRaster(v.zones, selected, v.layer == layerSatellite, mapCols, mapRows)

	var list strings.Builder
	for i, z := range v.filtered {
		marker := "  "
		if i == v.cursor {
			marker = selectedStyle.Render("> ")
		}
		list.WriteString(fmt.Sprintf("%s%s %s\n", marker, zoneStatusStyle(z.Status).Render("●"), z.ID))
	}
	if len(v.filtered) == 0 {
		list.WriteString(mutedStyle.Render("no match") + "\n")
	}

	legend := make([]string, 0, 3)
	for _, s := range zone.Statuses() {
		legend = append(legend, zoneStatusStyle(s).Render("■")+" "+mutedStyle.Render(s.Label()))
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cardStyle.Render(grid), " ", list.String()))
	legend = append(legend, mutedStyle.Render("layer: "+v.layer.String()))
	b.WriteString("\n" + strings.Join(legend, "  ") + "\n")
	if v.searching() || v.search.Value() != "" {
		b.WriteString(v.search.View() + "\n")
	}
	if z, ok := v.current(); ok && v.sheet {
		b.WriteString(v.renderSheet(z, width))
	}
	return b.String()
}

func (v *mapView) renderSheet(z zone.Zone, width int) string {
	body := strings.Join([]string{
		headingStyle.Render(z.Name) + "  " + zoneStatusStyle(z.Status).Render(z.Status.Label()),
		field("Crop", z.CropType),
		field("Status", z.Issue()),
		field("Last Scan", z.LastScan),
		selectedStyle.Render("[v] View Details"),
	}, "\n")
	style := cardStyle
	if width > 4 {
		style = style.Width(min(width-2, 60))
	}
	return style.Render(body)
}

func (v *mapView) Bindings(nav.State) []key.Binding {
	if v.searching() {
		return []key.Binding{keySearchDone, keySearchClear}
	}
	out := []key.Binding{keyUp, keyDown, keySearch, keyToggleSheet, keyLayer}
	if v.sheet {
		out = append(out, keyViewDetails)
	}
	return append(out, keyProfile, keyBack)
}

// rasterize maps each cell of a cols x rows grid over the zones' padded
// bounds to the index of the zone containing the cell centre, or -1.
// Row 0 is the northern edge.
func rasterize(zones []zone.Zone, cols, rows int) [][]int {
	grid := make([][]int, rows)
	if len(zones) == 0 || cols <= 0 || rows <= 0 {
		for r := range grid {
			grid[r] = make([]int, max(cols, 0))
			for c := range grid[r] {
				grid[r][c] = -1
			}
		}
		return grid
	}
	bound := zoneBounds(zones)
	dLng := (bound.Max.Lon() - bound.Min.Lon()) / float64(cols)
	dLat := (bound.Max.Lat() - bound.Min.Lat()) / float64(rows)
	for r := 0; r < rows; r++ {
		grid[r] = make([]int, cols)
		lat := bound.Max.Lat() - (float64(r)+0.5)*dLat
		for c := 0; c < cols; c++ {
			lng := bound.Min.Lon() + (float64(c)+0.5)*dLng
			grid[r][c] = -1
			for i, z := range zones {
				if z.Contains(zone.Coordinate{Lat: lat, Lng: lng}) {
					grid[r][c] = i
					break
				}
			}
		}
	}
	return grid
}

func zoneBounds(zones []zone.Zone) orb.Bound {
	return zone.Bounds(zones).Pad(mapPad)
}

// cellOf returns the grid cell holding p within the padded bounds.
func cellOf(bound orb.Bound, p zone.Coordinate, cols, rows int) (row, col int) {
	fx := (p.Lng - bound.Min.Lon()) / (bound.Max.Lon() - bound.Min.Lon())
	fy := (bound.Max.Lat() - p.Lat) / (bound.Max.Lat() - bound.Min.Lat())
	col = min(max(int(fx*float64(cols)), 0), cols-1)
	row = min(max(int(fy*float64(rows)), 0), rows-1)
	return row, col
}

// outline reports whether the cell at r, c lies on the edge of its zone.
func outline(grid [][]int, r, c int) bool {
	idx := grid[r][c]
	for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		nr, nc := r+d[0], c+d[1]
		if nr < 0 || nr >= len(grid) || nc < 0 || nc >= len(grid[nr]) || grid[nr][nc] != idx {
			return true
		}
	}
	return false
}

// renderRaster draws the grid. With outlineOnly set, zone interiors are left
// empty.
func renderRaster(zones []zone.Zone, selected string, outlineOnly bool, cols, rows int) string {
	grid := rasterize(zones, cols, rows)
	labels := make(map[[2]int]rune)
	if len(zones) > 0 {
		bound := zoneBounds(zones)
		for _, z := range zones {
			r, c := cellOf(bound, z.Centroid(), cols, rows)
			start := c - len(z.ID)/2
			for i, ch := range z.ID {
				if cc := start + i; cc >= 0 && cc < cols {
					labels[[2]int{r, cc}] = ch
				}
			}
		}
	}

	empty := mutedStyle.Render("·")
	var b strings.Builder
	for r, row := range grid {
		for c, idx := range row {
			if idx < 0 {
				b.WriteString(empty)
				continue
			}
			z := zones[idx]
			style := zoneStatusStyle(z.Status)
			l, labelled := labels[[2]int{r, c}]
			if outlineOnly && !labelled && !outline(grid, r, c) {
				b.WriteString(empty)
				continue
			}
			ch := '▒'
			if z.ID == selected {
				ch = '█'
			}
			if labelled {
				ch = l
				style = style.Bold(true).Reverse(true)
			}
			b.WriteString(style.Render(string(ch)))
		}
		if r < len(grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
