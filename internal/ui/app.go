package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/pullview/internal/config"
	"github.com/five82/pullview/internal/haptic"
	"github.com/five82/pullview/internal/position"
	"github.com/five82/pullview/internal/prefs"
	"github.com/five82/pullview/internal/refresh"
	"github.com/five82/pullview/internal/source"
	"github.com/five82/pullview/internal/state"
)

const (
	headerRows = 1
	footerRows = 1
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Source    source.Source
	Config    config.Config
	Prefs     prefs.Prefs
	PrefsPath string
	Haptics   haptic.Pulser
	Logger    *logrus.Entry
	Now       func() time.Time // nil uses time.Now
}

// mount owns the refresh controller for the current configuration. Toggling
// haptics remounts, since a controller's configuration is fixed.
type mount struct {
	ctrl *refresh.Controller
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	src       source.Source
	cfg       config.Config
	prefs     prefs.Prefs
	prefsPath string
	pulser    haptic.Pulser
	log       *logrus.Entry
	now       func() time.Time

	// Refresh engine
	mnt        *mount
	surf       *surface
	dispatcher *teaDispatcher

	// UI state
	theme     Theme
	styles    Styles
	keys      keyMap
	help      help.Model
	spinner   spinner.Model
	vp        viewport.Model
	width     int
	height    int
	ready     bool
	showHelp  bool
	lastState refresh.State

	storeVersion uint64
}

// New creates the model and mounts a refresh controller for it.
func New(opts Options) (Model, error) {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}
	if opts.Source == nil {
		return Model{}, fmt.Errorf("ui requires a source")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	pulser := opts.Haptics
	if pulser == nil {
		pulser = haptic.Nop{}
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	theme := GetTheme(opts.Prefs.Theme)
	m := Model{
		ctx:        ctx,
		store:      store,
		src:        opts.Source,
		cfg:        opts.Config,
		prefs:      opts.Prefs,
		prefsPath:  prefsPath,
		pulser:     pulser,
		log:        log,
		now:        now,
		mnt:        &mount{},
		surf:       newSurface(opts.Config.PullStep, opts.Config.Threshold, headerRows),
		dispatcher: &teaDispatcher{},
		theme:      theme,
		styles:     theme.Styles(opts.Config.BackgroundColor),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		vp:         viewport.New(0, 0),
	}
	m.store.SetSource(m.src.Name())
	m.applyTheme()

	mnt := m.mnt
	m.surf.stream.Subscribe(func(batch position.Batch) {
		if mnt.ctrl != nil {
			mnt.ctrl.OnPositionBatch(batch)
		}
	})
	if err := m.remount(m.prefs.HapticsOr(m.cfg.HapticsEnabled)); err != nil {
		return Model{}, err
	}
	return m, nil
}

// remount replaces the controller with one configured for hapticsOn.
func (m *Model) remount(hapticsOn bool) error {
	surf := m.surf
	store := m.store
	src := m.src

	cfg := refresh.Config{
		Threshold:                            m.cfg.Threshold,
		ShowsIndicators:                      m.cfg.ShowsIndicators,
		ShowsContentUnderProgressWhenLoading: m.cfg.ShowsContentUnderProgressWhenLoading,
		HapticsEnabled:                       hapticsOn,
		BackgroundColor:                      m.cfg.BackgroundColor,
		Renderer:                             newProgressRenderer(m.cfg.Indicator, m.theme, m.styles),
		OnRefreshAsync: func(ctx context.Context) error {
			lines, err := src.Fetch(ctx)
			store.Update(lines, err)
			return err
		},
		Haptics:    m.pulser,
		Animator:   refresh.AnimatorFunc(surf.release),
		Dispatcher: m.dispatcher,
		Logger:     m.log.WithField("surface", src.Name()),
		Context:    m.ctx,
	}
	ctrl, err := refresh.New(cfg)
	if err != nil {
		return fmt.Errorf("mount refresh controller: %w", err)
	}
	m.mnt.ctrl = ctrl
	m.surf.reset()
	return nil
}

func (m *Model) applyTheme() {
	m.styles = m.theme.Styles(m.cfg.BackgroundColor)
	m.spinner.Style = m.styles.AccentText
	m.help.Styles.ShortKey = m.styles.AccentText
	m.help.Styles.ShortDesc = m.styles.MutedText
	m.help.Styles.ShortSeparator = m.styles.FaintText
	m.help.Styles.FullKey = m.styles.AccentText
	m.help.Styles.FullDesc = m.styles.MutedText
	m.help.Styles.FullSeparator = m.styles.FaintText
}

// Controller exposes the mounted refresh controller.
func (m Model) Controller() *refresh.Controller {
	return m.mnt.ctrl
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return clockCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))

	case frameMsg:
		m.surf.ticking = false
		m.surf.step(time.Time(msg), m.restTarget())

	case dispatchMsg:
		msg.fn()

	case spinner.TickMsg:
		if m.mnt.ctrl.Snapshot().State == refresh.Loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case clockMsg:
		cmds = append(cmds, clockCmd())
	}

	cmds = append(cmds, m.settle()...)
	return m, tea.Batch(cmds...)
}

// settle runs after every message: it reports positions, keeps the frame and
// spinner loops alive while needed and refreshes content from the store.
func (m *Model) settle() []tea.Cmd {
	var cmds []tea.Cmd

	m.layout()
	m.surf.report(m.vp.YOffset)

	now := m.now()
	if !m.surf.ticking && !m.surf.settled(now, m.restTarget()) {
		m.surf.ticking = true
		cmds = append(cmds, frameCmd())
	}

	current := m.mnt.ctrl.Snapshot().State
	if current == refresh.Loading && m.lastState != refresh.Loading {
		cmds = append(cmds, m.spinner.Tick)
		if !m.surf.ticking {
			m.surf.ticking = true
			cmds = append(cmds, frameCmd())
		}
	}
	m.lastState = current

	if v := m.store.Version(); v != m.storeVersion {
		m.storeVersion = v
		m.syncContent()
	}
	return cmds
}

// restTarget is where the spring settles: one indicator row while loading,
// otherwise flush with the frame.
func (m Model) restTarget() float64 {
	if m.mnt.ctrl.Snapshot().State == refresh.Loading {
		return m.surf.rowUnits
	}
	return 0
}

func (m *Model) layout() {
	if !m.ready {
		return
	}
	width := m.width
	if m.cfg.ShowsIndicators {
		width--
	}
	height := m.height - headerRows - footerRows - m.surf.rows()
	m.vp.Width = max(1, width)
	m.vp.Height = max(1, height)
}

func (m *Model) syncContent() {
	snap := m.store.Snapshot()
	atTop := m.vp.AtTop()
	m.vp.SetContent(renderLines(snap.Lines, m.styles))
	if atTop {
		m.vp.GotoTop()
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.showHelp {
		m.showHelp = false
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.Refresh):
		m.mnt.ctrl.Trigger()

	case key.Matches(msg, m.keys.ToggleHaptics):
		m.toggleHaptics()

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyTheme()
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		m.syncContent()

	case key.Matches(msg, m.keys.Up):
		m.scrollOrPull(1)

	case key.Matches(msg, m.keys.Down):
		m.scrollOrPull(-1)

	case key.Matches(msg, m.keys.PageUp):
		m.vp.ViewUp()

	case key.Matches(msg, m.keys.PageDown):
		m.vp.ViewDown()

	case key.Matches(msg, m.keys.Top):
		m.vp.GotoTop()

	case key.Matches(msg, m.keys.Bottom):
		m.vp.GotoBottom()
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollOrPull(1)
	case tea.MouseButtonWheelDown:
		m.scrollOrPull(-1)
	}
	return nil
}

// scrollOrPull moves content by steps rows; positive is toward the top.
// Beyond the top the movement becomes overscroll, and an existing pull is
// taken back before the content scrolls down again.
func (m *Model) scrollOrPull(steps int) {
	now := m.now()
	switch {
	case steps > 0 && m.vp.AtTop():
		m.surf.drag(float64(steps)*m.surf.rowUnits, now)
	case steps > 0:
		m.vp.LineUp(steps)
	case m.surf.pull > 0:
		m.surf.drag(float64(steps)*m.surf.rowUnits, now)
	default:
		m.vp.LineDown(-steps)
	}
}

// toggleHaptics persists the preference and remounts. It is refused while a
// pull cycle is in flight, since the controller's configuration is fixed for
// its lifetime.
func (m *Model) toggleHaptics() {
	if m.mnt.ctrl.Snapshot().State != refresh.Waiting {
		m.log.Debug("haptics toggle deferred: refresh in progress")
		return
	}
	enabled := !m.mnt.ctrl.Options().HapticsEnabled
	if err := m.remount(enabled); err != nil {
		m.log.WithError(err).Error("remount failed")
		return
	}
	m.prefs = m.prefs.WithHaptics(enabled)
	m.savePrefs()
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.log.WithError(err).Warn("save prefs failed")
	}
}

// Messages

type frameMsg time.Time

type clockMsg time.Time

// Commands

func frameCmd() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// clockCmd keeps the "updated … ago" label current.
func clockCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

// Run starts the Bubble Tea program. It returns once the program exited and
// any refresh still in flight has been cancelled and returned.
func Run(opts Options) error {
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	opts.Context = ctx

	m, err := New(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(parent))
	m.dispatcher.bind(p.Send)
	_, err = p.Run()
	if err != nil && parent.Err() != nil {
		err = nil
	}

	cancel()
	m.Controller().Wait()
	return err
}
