package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/agrisense/agrisense/internal/config"
	"github.com/agrisense/agrisense/internal/database/repository"
	"github.com/agrisense/agrisense/internal/nav"
	"github.com/agrisense/agrisense/internal/service"
	"github.com/agrisense/agrisense/internal/zone"
)

// App ties the router to the screen views.
type App struct {
	ctx      context.Context
	router   *nav.Router
	services Services
	cfg      config.Config
	log      *zap.Logger

	views         map[nav.Screen]screenView
	dashboard     *dashboardView
	mapView       *mapView
	processing    *processingView
	notifications *notificationsView
	recs          *recommendationsView

	help      help.Model
	width     int
	height    int
	status    string
	statusErr bool
}

// Services are the catalog-backed services the screens read from.
type Services struct {
	Overview        *service.OverviewService
	Zones           *service.ZoneService
	Recommendations *service.RecommendationService
	Notifications   *service.NotificationService
	Maintenance     *service.MaintenanceService
}

// New builds the app around router. ctx bounds catalog calls and the
// auto-advance waiter.
func New(ctx context.Context, cfg config.Config, router *nav.Router, services Services, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		ctx:      ctx,
		router:   router,
		services: services,
		cfg:      cfg,
		log:      log,
		help:     help.New(),
	}
	a.dashboard = &dashboardView{load: a.loadOverview}
	a.mapView = newMapView()
	a.processing = newProcessingView()
	a.notifications = &notificationsView{ctx: ctx, svc: services.Notifications}
	a.recs = &recommendationsView{}
	a.views = map[nav.Screen]screenView{
		nav.Welcome:         welcomeView{},
		nav.Dashboard:       a.dashboard,
		nav.Map:             a.mapView,
		nav.ZoneDetails:     newZoneDetailsView(),
		nav.ImageUpload:     &imageUploadView{outcome: router.State().Result},
		nav.AIProcessing:    a.processing,
		nav.AIResult:        resultView{},
		nav.Recommendations: a.recs,
		nav.Notifications:   a.notifications,
		nav.Profile:         &profileView{profile: cfg.Profile, signOut: a.resetSession},
	}
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadOverview(), a.loadZones(), a.loadNotifications(), a.loadRecommendations())
}

func (a *App) loadOverview() tea.Cmd {
	return func() tea.Msg {
		ov, err := a.services.Overview.Overview(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return overviewMsg(ov)
	}
}

func (a *App) loadZones() tea.Cmd {
	return func() tea.Msg {
		zones, err := a.services.Zones.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return zonesMsg(zones)
	}
}

func (a *App) loadNotifications() tea.Cmd {
	return func() tea.Msg {
		list, err := a.services.Notifications.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return notificationsMsg(list)
	}
}

func (a *App) loadRecommendations() tea.Cmd {
	return func() tea.Msg {
		recs, err := a.services.Recommendations.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return recommendationsMsg(recs)
	}
}

// resetSession restores the catalog after signing out and reloads the views.
func (a *App) resetSession() tea.Cmd {
	if a.services.Maintenance == nil {
		return nil
	}
	return func() tea.Msg {
		if err := a.services.Maintenance.Reset(a.ctx); err != nil {
			return errMsg{err}
		}
		return sessionResetMsg{}
	}
}

// State is the router's current snapshot.
func (a *App) State() nav.State {
	return a.router.State()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.height = m.Height
		a.help.Width = m.Width
	case tea.KeyMsg:
		if m.Type == tea.KeyCtrlC || (!a.capturingInput() && key.Matches(m, keyQuit)) {
			return a, a.quit()
		}
		st := a.router.State()
		return a, a.views[st.Screen].Update(m, st, a.navigate)
	case advanceMsg:
		if a.router.Apply(nav.Advance(m)) {
			return a, a.entered()
		}
	case spinner.TickMsg:
		// let the tick chain die once processing is left
		if a.router.State().Screen == nav.AIProcessing {
			return a, a.processing.tick(m)
		}
	case overviewMsg:
		ov := service.Overview(m)
		a.dashboard.overview = &ov
	case zonesMsg:
		a.mapView.setZones([]zone.Zone(m))
	case notificationsMsg:
		a.notifications.setItems([]repository.Notification(m))
	case recommendationsMsg:
		a.recs.recs = []repository.Recommendation(m)
	case sessionResetMsg:
		a.setStatus("signed out", false)
		return a, tea.Batch(a.loadOverview(), a.loadNotifications())
	case errMsg:
		a.log.Error("tui", zap.Error(m.error))
		a.setStatus("error: "+m.Error(), true)
	}
	return a, nil
}

// navigate is the callback handed to every screen view. It runs on the
// event loop, so the router has a single writer.
func (a *App) navigate(target nav.Screen, opts ...nav.NavOption) tea.Cmd {
	st := a.router.Navigate(target, opts...)
	a.setStatus("", false)
	if st.Screen != target {
		a.setStatus("Select a zone on the map first", true)
	}
	return a.entered()
}

// entered runs the enter hook of the current screen and, on aiProcessing,
// starts waiting for the auto-advance.
func (a *App) entered() tea.Cmd {
	st := a.router.State()
	var cmds []tea.Cmd
	if e, ok := a.views[st.Screen].(enterer); ok {
		cmds = append(cmds, e.Enter(st))
	}
	if p := a.router.Pending(); p != nil && st.Screen == nav.AIProcessing {
		cmds = append(cmds, a.awaitAdvance(p))
	}
	return tea.Batch(cmds...)
}

func (a *App) awaitAdvance(p *nav.Pending) tea.Cmd {
	return func() tea.Msg {
		adv, ok := p.Await(a.ctx)
		if !ok {
			return nil
		}
		return advanceMsg(adv)
	}
}

func (a *App) quit() tea.Cmd {
	a.router.Close()
	return tea.Quit
}

func (a *App) capturingInput() bool {
	return a.router.State().Screen == nav.Map && a.mapView.searching()
}

func (a *App) setStatus(text string, isErr bool) {
	a.status = text
	a.statusErr = isErr
}

func (a *App) View() string {
	st := a.router.State()
	view := a.views[st.Screen]

	header := titleStyle.Render("AgriSense") + mutedStyle.Render(" · ") + headingStyle.Render(st.Screen.Title())
	if st.Zone != nil && st.Screen != nav.Welcome && st.Screen != nav.Dashboard {
		header += mutedStyle.Render("  " + st.Zone.ID)
	}

	var footer []string
	if strings.TrimSpace(a.status) != "" {
		footer = append(footer, renderStatusBar(a.status, a.statusErr, a.width))
	}
	bindings := append(view.Bindings(st), keyQuit)
	footer = append(footer, a.help.ShortHelpView(bindings))

	// header, blank line and blank line before the footer
	body := clipHeight(view.View(st, a.width), a.height-len(footer)-3)
	parts := append([]string{header, "", body, ""}, footer...)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// messages
type overviewMsg service.Overview

type zonesMsg []zone.Zone

type notificationsMsg []repository.Notification

type recommendationsMsg []repository.Recommendation

type advanceMsg nav.Advance

type sessionResetMsg struct{}

type errMsg struct{ error }
