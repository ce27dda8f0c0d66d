package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agrisense/agrisense/internal/config"
	"github.com/agrisense/agrisense/internal/database/repository"
	"github.com/agrisense/agrisense/internal/nav"
	"github.com/agrisense/agrisense/internal/service"
	"github.com/agrisense/agrisense/internal/zone"
)

// navigateFunc moves the router and returns the follow-up commands of the
// screen that was entered.
type navigateFunc func(target nav.Screen, opts ...nav.NavOption) tea.Cmd

// screenView renders one screen. It sees the router state and asks for
// transitions through navigate; anything else it keeps is local UI state.
type screenView interface {
	Update(msg tea.KeyMsg, st nav.State, navigate navigateFunc) tea.Cmd
	View(st nav.State, width int) string
	Bindings(st nav.State) []key.Binding
}

// enterer is implemented by screens that reset or load when entered.
type enterer interface {
	Enter(st nav.State) tea.Cmd
}

type welcomeView struct{}

func (welcomeView) Update(msg tea.KeyMsg, _ nav.State, navigate navigateFunc) tea.Cmd {
	if key.Matches(msg, keyGetStarted) {
		return navigate(nav.Dashboard)
	}
	return nil
}

func (welcomeView) View(_ nav.State, width int) string {
	block := lipgloss.JoinVertical(lipgloss.Center,
		"",
		titleStyle.Render("AgriSense Udawalawe"),
		mutedStyle.Render("Smart Field Health Monitoring"),
		"",
		selectedStyle.Render("[ Get Started ]"),
		"",
		mutedStyle.Render("Powered by satellite imagery & AI validation"),
	)
	return lipgloss.PlaceHorizontal(max(width, lipgloss.Width(block)), lipgloss.Center, block)
}

func (welcomeView) Bindings(nav.State) []key.Binding {
	return []key.Binding{keyGetStarted}
}

type dashboardView struct {
	overview *service.Overview
	load     func() tea.Cmd
}

func (v *dashboardView) Enter(nav.State) tea.Cmd {
	if v.load == nil {
		return nil
	}
	return v.load()
}

func (v *dashboardView) Update(msg tea.KeyMsg, _ nav.State, navigate navigateFunc) tea.Cmd {
	switch {
	case key.Matches(msg, keyOpenMap):
		return navigate(nav.Map)
	case key.Matches(msg, keyNotifications):
		return navigate(nav.Notifications)
	}
	return nil
}

func (v *dashboardView) View(_ nav.State, width int) string {
	if v.overview == nil {
		return mutedStyle.Render("Loading field overview...")
	}
	ov := v.overview
	var b strings.Builder
	b.WriteString(headingStyle.Render(ov.Region))
	if ov.Unread > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("   %d unread notifications", ov.Unread)))
	}
	b.WriteString("\n\n")

	cards := make([]string, 0, len(zone.Statuses()))
	for _, s := range zone.Statuses() {
		cards = append(cards, cardStyle.Render(
			zoneStatusStyle(s).Bold(true).Render(fmt.Sprintf("%d", ov.Counts[s]))+"\n"+mutedStyle.Render(s.Label()),
		))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d zones monitored", ov.Total)))
	b.WriteString("\n\n")

	b.WriteString(headingStyle.Render("Field Map View"))
	b.WriteString("  " + mutedStyle.Render("[m] Open Map") + "\n\n")

	b.WriteString(headingStyle.Render("Recent Alerts") + "\n")
	if len(ov.Alerts) == 0 {
		b.WriteString(mutedStyle.Render("No alerts") + "\n")
	}
	for _, al := range ov.Alerts {
		text := truncate(al.ZoneLabel+"  "+al.Message, width-len(al.Age)-4)
		b.WriteString(severityStyle(al.Severity).Render("●") + " " + text + "  " + mutedStyle.Render(al.Age) + "\n")
	}
	return b.String()
}

func (v *dashboardView) Bindings(nav.State) []key.Binding {
	return []key.Binding{keyOpenMap, keyNotifications}
}

type zoneDetailsView struct {
	bar progress.Model
}

func newZoneDetailsView() *zoneDetailsView {
	return &zoneDetailsView{
		bar: progress.New(
			progress.WithSolidFill(string(colorBrand)),
			progress.WithWidth(30),
			progress.WithoutPercentage(),
		),
	}
}

func (v *zoneDetailsView) Update(msg tea.KeyMsg, _ nav.State, navigate navigateFunc) tea.Cmd {
	switch {
	case key.Matches(msg, keyUpload):
		return navigate(nav.ImageUpload)
	case key.Matches(msg, keyBack):
		return navigate(nav.Map)
	}
	return nil
}

func (v *zoneDetailsView) View(st nav.State, _ int) string {
	if st.Zone == nil {
		return mutedStyle.Render("No zone selected")
	}
	z := st.Zone
	c := z.Centroid()
	rows := []string{
		headingStyle.Render(z.Name) + "  " + zoneStatusStyle(z.Status).Render("● "+z.Status.Label()),
		"",
		field("Crop Type", z.CropType),
		field("Issue", z.Issue()),
		field("Confidence", v.bar.ViewAs(z.Confidence/100)+fmt.Sprintf(" %.0f%%", z.Confidence)),
		field("Last Scan", z.LastScan+" "+mutedStyle.Render("via Sentinel-2")),
		field("Area", fmt.Sprintf("%.1f ha", z.AreaHectares())),
		field("Centroid", fmt.Sprintf("%.4f, %.4f", c.Lat, c.Lng)),
	}
	return strings.Join(rows, "\n")
}

func (v *zoneDetailsView) Bindings(nav.State) []key.Binding {
	return []key.Binding{keyUpload, keyBack}
}

type imageUploadView struct {
	outcome nav.Result
}

func (v *imageUploadView) Enter(st nav.State) tea.Cmd {
	v.outcome = st.Result
	return nil
}

func (v *imageUploadView) Update(msg tea.KeyMsg, _ nav.State, navigate navigateFunc) tea.Cmd {
	switch {
	case key.Matches(msg, keyToggleOutcome):
		v.outcome = v.outcome.Toggle()
	case key.Matches(msg, keyCapture), key.Matches(msg, keyGallery):
		return navigate(nav.AIProcessing, nav.WithResult(v.outcome))
	case key.Matches(msg, keyBack):
		return navigate(nav.ZoneDetails)
	}
	return nil
}

func (v *imageUploadView) View(st nav.State, _ int) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Upload Field Image"))
	if st.Zone != nil {
		b.WriteString(mutedStyle.Render("  " + st.Zone.Name))
	}
	b.WriteString("\n\n")
	b.WriteString(cardStyle.Render(mutedStyle.Render("Camera preview will appear here")))
	b.WriteString("\n\n")
	b.WriteString("Tips for best results:\n")
	for _, tip := range []string{
		"Ensure good lighting conditions",
		"Capture close-up of affected area",
		"Keep camera steady",
		"Include surrounding vegetation",
	} {
		b.WriteString(mutedStyle.Render("  • "+tip) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(field("Expected outcome", service.Analyze(v.outcome).Headline))
	return b.String()
}

func (v *imageUploadView) Bindings(nav.State) []key.Binding {
	return []key.Binding{keyCapture, keyGallery, keyToggleOutcome, keyBack}
}

type processingView struct {
	spinner spinner.Model
}

func newProcessingView() *processingView {
	return &processingView{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(colorBrand)),
		),
	}
}

func (v *processingView) Enter(nav.State) tea.Cmd {
	return v.spinner.Tick
}

func (v *processingView) tick(msg spinner.TickMsg) tea.Cmd {
	var cmd tea.Cmd
	v.spinner, cmd = v.spinner.Update(msg)
	return cmd
}

// Update ignores keys; the screen leaves on its own.
func (v *processingView) Update(tea.KeyMsg, nav.State, navigateFunc) tea.Cmd {
	return nil
}

func (v *processingView) View(st nav.State, _ int) string {
	var b strings.Builder
	b.WriteString(v.spinner.View() + " " + headingStyle.Render("Analysing your image..."))
	if st.Zone != nil {
		b.WriteString(mutedStyle.Render("  " + st.Zone.Name))
	}
	b.WriteString("\n\n")
	for _, step := range service.AnalysisSteps {
		b.WriteString(mutedStyle.Render("  · "+step) + "\n")
	}
	return b.String()
}

func (v *processingView) Bindings(nav.State) []key.Binding {
	return nil
}

type resultView struct{}

func (resultView) Update(msg tea.KeyMsg, st nav.State, navigate navigateFunc) tea.Cmd {
	switch {
	case key.Matches(msg, keyRecommendations) && st.Result == nav.ResultConfirmed:
		return navigate(nav.Recommendations)
	case key.Matches(msg, keyOpenMap):
		return navigate(nav.Map)
	}
	return nil
}

func (resultView) View(st nav.State, width int) string {
	out := service.Analyze(st.Result)
	headline := headingStyle.Render(out.Headline)
	if out.Confirmed {
		headline = lipgloss.NewStyle().Bold(true).Foreground(colorHealthy).Render(out.Headline)
	}
	compare := lipgloss.JoinHorizontal(lipgloss.Top,
		cardStyle.Render("Satellite\n"+zoneStatusStyle(out.Satellite).Render("● "+service.StressLabel(out.Satellite))),
		cardStyle.Render("Ground\n"+zoneStatusStyle(out.Ground).Render("● "+service.StressLabel(out.Ground))),
	)
	rows := []string{headline}
	if st.Zone != nil {
		rows = append(rows, mutedStyle.Render(st.Zone.Name))
	}
	rows = append(rows, "", wrap(out.Summary, width), "", compare)
	if out.Confidence != "" {
		rows = append(rows, lipgloss.NewStyle().Foreground(colorHealthy).Render("✓ "+out.Confidence))
	}
	rows = append(rows, "", mutedStyle.Render(out.Footer))
	return strings.Join(rows, "\n")
}

func (resultView) Bindings(st nav.State) []key.Binding {
	if st.Result == nav.ResultConfirmed {
		return []key.Binding{keyRecommendations, keyOpenMap}
	}
	return []key.Binding{keyOpenMap}
}

type recommendationsView struct {
	recs []repository.Recommendation
}

func (v *recommendationsView) Update(msg tea.KeyMsg, _ nav.State, navigate navigateFunc) tea.Cmd {
	switch {
	case key.Matches(msg, keyOpenMap):
		return navigate(nav.Map)
	case key.Matches(msg, keyBack):
		return navigate(nav.AIResult)
	}
	return nil
}

func (v *recommendationsView) View(st nav.State, width int) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Suggested Actions"))
	if st.Zone != nil {
		b.WriteString(mutedStyle.Render("  " + st.Zone.Name))
	}
	b.WriteString("\n\n")
	if len(v.recs) == 0 {
		b.WriteString(mutedStyle.Render("No recommendations"))
		return b.String()
	}
	for i, rec := range v.recs {
		b.WriteString(fmt.Sprintf("%d. %s  %s\n", i+1, headingStyle.Render(rec.Title), priorityStyle(rec.Priority).Render(rec.Priority.Badge())))
		b.WriteString(mutedStyle.Render(wrap(rec.Description, width-3)) + "\n\n")
	}
	return b.String()
}

func (v *recommendationsView) Bindings(nav.State) []key.Binding {
	return []key.Binding{keyOpenMap, keyBack}
}

type notificationsView struct {
	ctx    context.Context
	svc    *service.NotificationService
	items  []repository.Notification
	cursor int
}

func (v *notificationsView) setItems(items []repository.Notification) {
	v.items = items
	if v.cursor >= len(v.items) {
		v.cursor = max(0, len(v.items)-1)
	}
}

func (v *notificationsView) Update(msg tea.KeyMsg, _ nav.State, navigate navigateFunc) tea.Cmd {
	switch {
	case key.Matches(msg, keyUp):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(msg, keyDown):
		if v.cursor < len(v.items)-1 {
			v.cursor++
		}
	case key.Matches(msg, keyMarkRead):
		if len(v.items) == 0 || !v.items[v.cursor].Unread {
			return nil
		}
		return v.markRead(v.items[v.cursor].ID)
	case key.Matches(msg, keyMarkAllRead):
		return v.markAllRead()
	case key.Matches(msg, keyBack):
		return navigate(nav.Dashboard)
	}
	return nil
}

func (v *notificationsView) markRead(id string) tea.Cmd {
	return func() tea.Msg {
		list, err := v.svc.MarkRead(v.ctx, id)
		if err != nil {
			return errMsg{err}
		}
		return notificationsMsg(list)
	}
}

func (v *notificationsView) markAllRead() tea.Cmd {
	return func() tea.Msg {
		list, err := v.svc.MarkAllRead(v.ctx)
		if err != nil {
			return errMsg{err}
		}
		return notificationsMsg(list)
	}
}

func (v *notificationsView) unread() int {
	n := 0
	for _, it := range v.items {
		if it.Unread {
			n++
		}
	}
	return n
}

func (v *notificationsView) View(_ nav.State, width int) string {
	var b strings.Builder
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d unread", v.unread())) + "\n\n")
	for i, it := range v.items {
		marker := "  "
		if i == v.cursor {
			marker = selectedStyle.Render("> ")
		}
		dot := " "
		if it.Unread {
			dot = lipgloss.NewStyle().Foreground(colorBrand).Render("•")
		}
		title := it.Title
		if it.Unread {
			title = headingStyle.Render(title)
		}
		b.WriteString(fmt.Sprintf("%s%s %s %s  %s\n", marker, severityStyle(it.Severity).Render("●"), title, dot, mutedStyle.Render(it.Age)))
		b.WriteString("     " + mutedStyle.Render(truncate(it.Message, width-5)) + "\n")
		b.WriteString("     " + mutedStyle.Render(it.ZoneLabel) + "\n")
	}
	return b.String()
}

func (v *notificationsView) Bindings(nav.State) []key.Binding {
	return []key.Binding{keyUp, keyDown, keyMarkRead, keyMarkAllRead, keyBack}
}

type profileView struct {
	profile config.ProfileConfig
	signOut func() tea.Cmd
}

func (v *profileView) Update(msg tea.KeyMsg, _ nav.State, navigate navigateFunc) tea.Cmd {
	switch {
	case key.Matches(msg, keyBack):
		return navigate(nav.Map)
	case key.Matches(msg, keySignOut):
		cmd := navigate(nav.Welcome)
		if v.signOut != nil {
			return tea.Batch(cmd, v.signOut())
		}
		return cmd
	}
	return nil
}

func (v *profileView) View(nav.State, int) string {
	var b strings.Builder
	b.WriteString(mutedStyle.Render("Account Settings") + "\n\n")
	b.WriteString(cardStyle.Render(
		headingStyle.Render(v.profile.Name) + "\n" +
			v.profile.Role + "\n" +
			mutedStyle.Render(v.profile.District),
	))
	b.WriteString("\n\n")
	groups := []struct {
		title string
		items []string
	}{
		{"Account", []string{"Edit Profile", "Notifications"}},
		{"Preferences", []string{"Language: " + v.profile.Language, "Privacy"}},
		{"Support", []string{"Help Center"}},
	}
	for _, g := range groups {
		b.WriteString(mutedStyle.Render(g.title) + "\n")
		for _, it := range g.items {
			b.WriteString("  " + it + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.NewStyle().Foreground(colorHigh).Render("Logout"))
	return b.String()
}

func (v *profileView) Bindings(nav.State) []key.Binding {
	return []key.Binding{keyBack, keySignOut}
}

func field(label, value string) string {
	return mutedStyle.Render(fmt.Sprintf("%-12s", label)) + " " + value
}

func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}
