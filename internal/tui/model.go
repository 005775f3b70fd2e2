// Package tui renders the admin console: dashboard, user management,
// commission logs, and registration, gated per screen by the route guard.
package tui

import (
	"context"
	stderrors "errors"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/reftrack/refadmin/internal/api"
	"github.com/reftrack/refadmin/internal/guard"
	"github.com/reftrack/refadmin/internal/log"
	"github.com/reftrack/refadmin/internal/referral"
	"github.com/reftrack/refadmin/internal/session"
)

// View represents the current screen being displayed
type View int

// View constants
const (
	// ViewDashboard shows the aggregate stat cards
	ViewDashboard View = iota
	// ViewUsers is the user management table
	ViewUsers
	// ViewCommissions is the commission ledger table
	ViewCommissions
	// ViewLogin is the login form
	ViewLogin
	// ViewRegister is the registration form
	ViewRegister
	// ViewDenied is the access-denied screen
	ViewDenied
)

// requirementFor maps each protected screen to what it demands of the
// session. Login and register are public.
func requirementFor(v View) (guard.Requirement, bool) {
	switch v {
	case ViewDashboard:
		return guard.Authenticated, true
	case ViewUsers, ViewCommissions:
		return guard.AdminOnly, true
	default:
		return guard.Requirement{}, false
	}
}

// App carries the wired dependencies the console runs on.
type App struct {
	Session *session.Store
	Client  *api.Client
	Logger  *log.Logger

	// AuthExpired delivers the gateway's global 401 reaction into the
	// event loop.
	AuthExpired <-chan struct{}
}

// Messages

type sessionReadyMsg struct{ snapshot session.Snapshot }

type statsMsg struct {
	stats *api.DashboardStats
	err   error
}

type usersMsg struct {
	users []session.Profile
	err   error
}

type commissionsMsg struct {
	logs []api.CommissionLog
	err  error
}

type userDeletedMsg struct{ err error }

type authMsg struct {
	resp *api.AuthResponse
	err  error
}

type referralMsg struct{ state referral.State }

type authExpiredMsg struct{}

type loggedOutMsg struct{}

// Indices into the register form inputs.
const (
	regName = iota
	regEmail
	regPassword
	regConfirm
	regReferral
	regFieldCount
)

// Model is the console state
type Model struct {
	app    App
	styles Styles

	view     View
	width    int
	height   int
	ready    bool
	quitting bool

	snapshot session.Snapshot

	spinner spinner.Model

	// dashboard
	stats        *api.DashboardStats
	statsLoading bool
	statsErr     string

	// users
	users         []session.Profile
	usersLoading  bool
	usersErr      string
	userCursor    int
	confirmDelete bool

	// commissions
	logs        []api.CommissionLog
	logsLoading bool
	logsErr     string

	// login form
	loginInputs [2]textinput.Model
	loginFocus  int
	loginErr    string
	loginBusy   bool

	// register form
	regInputs [regFieldCount]textinput.Model
	regFocus  int
	regErr    string
	regBusy   bool
	validator *referral.Validator
	refState  referral.State
	refCh     chan referral.State
}

// NewModel creates the console model.
func NewModel(app App) Model {
	m := Model{
		app:     app,
		styles:  DefaultStyles(),
		view:    ViewDashboard,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		refCh:   make(chan referral.State, 1),
	}

	email := textinput.New()
	email.Placeholder = "email"
	email.Focus()
	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	m.loginInputs = [2]textinput.Model{email, password}

	placeholders := [regFieldCount]string{
		"full name", "email", "password", "confirm password", "referral ID (optional)",
	}
	for i := range m.regInputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		if i == regPassword || i == regConfirm {
			ti.EchoMode = textinput.EchoPassword
		}
		m.regInputs[i] = ti
	}
	m.regInputs[regName].Focus()

	refCh := m.refCh
	m.validator = referral.NewValidator(
		app.Client.CheckReferral,
		func(s referral.State) {
			// Coalesce: only the latest state matters to the screen.
			select {
			case refCh <- s:
			default:
				select {
				case <-refCh:
				default:
				}
				refCh <- s
			}
		},
		app.Logger,
	)

	return m
}

// Init initializes the console (required by Bubble Tea)
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.initSession(), m.spinner.Tick, m.listenReferral()}
	if m.app.AuthExpired != nil {
		cmds = append(cmds, m.listenAuthExpired())
	}
	return tea.Batch(cmds...)
}

// Commands

func (m Model) initSession() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		_ = app.Session.Initialize(context.Background())
		return sessionReadyMsg{snapshot: app.Session.Snapshot()}
	}
}

func (m Model) fetchStats() tea.Cmd {
	client := m.app.Client
	return func() tea.Msg {
		stats, err := client.GetDashboardStats(context.Background())
		return statsMsg{stats: stats, err: err}
	}
}

func (m Model) fetchUsers() tea.Cmd {
	client := m.app.Client
	return func() tea.Msg {
		users, err := client.ListUsers(context.Background())
		return usersMsg{users: users, err: err}
	}
}

func (m Model) fetchCommissions() tea.Cmd {
	client := m.app.Client
	return func() tea.Msg {
		logs, err := client.ListCommissionLogs(context.Background())
		return commissionsMsg{logs: logs, err: err}
	}
}

func (m Model) deleteUser(id int64) tea.Cmd {
	client := m.app.Client
	return func() tea.Msg {
		return userDeletedMsg{err: client.DeleteUser(context.Background(), id)}
	}
}

func (m Model) login(email, password string) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		ctx := context.Background()
		resp, err := app.Client.Login(ctx, email, password)
		if err != nil {
			return authMsg{err: err}
		}
		if err := app.Session.Login(ctx, resp.Token, resp.User); err != nil {
			return authMsg{err: err}
		}
		return authMsg{resp: resp}
	}
}

func (m Model) register(req api.RegisterRequest) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		ctx := context.Background()
		resp, err := app.Client.Register(ctx, req)
		if err != nil {
			return authMsg{err: err}
		}
		if err := app.Session.Login(ctx, resp.Token, resp.User); err != nil {
			return authMsg{err: err}
		}
		return authMsg{resp: resp}
	}
}

func (m Model) listenReferral() tea.Cmd {
	ch := m.refCh
	return func() tea.Msg {
		return referralMsg{state: <-ch}
	}
}

func (m Model) listenAuthExpired() tea.Cmd {
	ch := m.app.AuthExpired
	return func() tea.Msg {
		<-ch
		return authExpiredMsg{}
	}
}

// navigate applies the route guard before switching screens.
func (m Model) navigate(target View) (Model, tea.Cmd) {
	req, protected := requirementFor(target)
	if protected {
		switch guard.Decide(m.app.Session.Snapshot(), req) {
		case guard.Wait:
			// Initialization has not finished; stay put.
			return m, nil
		case guard.RedirectLogin:
			m.view = ViewLogin
			return m, nil
		case guard.Deny:
			m.view = ViewDenied
			return m, nil
		}
	}

	m.view = target
	switch target {
	case ViewDashboard:
		m.statsLoading = true
		m.statsErr = ""
		return m, m.fetchStats()
	case ViewUsers:
		m.usersLoading = true
		m.usersErr = ""
		m.userCursor = 0
		m.confirmDelete = false
		return m, m.fetchUsers()
	case ViewCommissions:
		m.logsLoading = true
		m.logsErr = ""
		return m, m.fetchCommissions()
	}
	return m, nil
}

// Update handles messages (required by Bubble Tea)
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case sessionReadyMsg:
		m.ready = true
		m.snapshot = msg.snapshot
		return m.navigate(ViewDashboard)

	case statsMsg:
		m.statsLoading = false
		if msg.err != nil {
			m.statsErr = "Failed to fetch dashboard stats. Please try again later."
			return m, nil
		}
		m.stats = msg.stats
		return m, nil

	case usersMsg:
		m.usersLoading = false
		if msg.err != nil {
			m.usersErr = "Failed to fetch users. Please try again later."
			return m, nil
		}
		m.users = msg.users
		if m.userCursor >= len(m.users) {
			m.userCursor = 0
		}
		return m, nil

	case commissionsMsg:
		m.logsLoading = false
		if msg.err != nil {
			m.logsErr = "Failed to fetch commission logs. Please try again later."
			return m, nil
		}
		m.logs = msg.logs
		return m, nil

	case userDeletedMsg:
		if msg.err != nil {
			m.usersErr = "Failed to delete user."
			return m, nil
		}
		m.usersLoading = true
		return m, m.fetchUsers()

	case authMsg:
		m.loginBusy = false
		m.regBusy = false
		if msg.err != nil {
			if m.view == ViewRegister {
				m.regErr = authErrorMessage(msg.err)
			} else {
				m.loginErr = authErrorMessage(msg.err)
			}
			return m, nil
		}
		m.snapshot = m.app.Session.Snapshot()
		m.loginErr = ""
		m.regErr = ""
		return m.navigate(ViewDashboard)

	case referralMsg:
		m.refState = msg.state
		return m, m.listenReferral()

	case loggedOutMsg:
		m.snapshot = m.app.Session.Snapshot()
		m.view = ViewLogin
		m.loginErr = ""
		return m, nil

	case authExpiredMsg:
		m.snapshot = m.app.Session.Snapshot()
		m.view = ViewLogin
		m.loginErr = "Session expired. Please log in again."
		if m.app.AuthExpired != nil {
			return m, m.listenAuthExpired()
		}
		return m, nil
	}

	return m, nil
}

// authErrorMessage maps a login/registration failure to a user message.
func authErrorMessage(err error) string {
	var apiErr *api.APIError
	if stderrors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Request failed. Please try again later."
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		m.validator.Close()
		return m, tea.Quit
	}

	switch m.view {
	case ViewLogin:
		return m.handleLoginKey(msg)
	case ViewRegister:
		return m.handleRegisterKey(msg)
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		m.validator.Close()
		return m, tea.Quit

	case "d":
		return m.navigate(ViewDashboard)

	case "u":
		return m.navigate(ViewUsers)

	case "c":
		return m.navigate(ViewCommissions)

	case "L":
		return m, m.logout()

	case "r":
		// Manual retry / refresh for the current screen.
		return m.navigate(m.view)
	}

	if m.view == ViewUsers {
		return m.handleUsersKey(msg)
	}

	return m, nil
}

func (m Model) logout() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		_ = app.Session.Logout(context.Background())
		return loggedOutMsg{}
	}
}

func (m Model) handleUsersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmDelete {
		switch msg.String() {
		case "y", "enter":
			m.confirmDelete = false
			if m.userCursor < len(m.users) {
				return m, m.deleteUser(m.users[m.userCursor].ID)
			}
		case "n", "esc":
			m.confirmDelete = false
		}
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if m.userCursor > 0 {
			m.userCursor--
		}
	case "down", "j":
		if m.userCursor < len(m.users)-1 {
			m.userCursor++
		}
	case "x", "delete":
		if len(m.users) > 0 {
			m.confirmDelete = true
		}
	}
	return m, nil
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		m.loginFocus = (m.loginFocus + 1) % len(m.loginInputs)
		for i := range m.loginInputs {
			if i == m.loginFocus {
				m.loginInputs[i].Focus()
			} else {
				m.loginInputs[i].Blur()
			}
		}
		return m, nil

	case "enter":
		if m.loginBusy {
			return m, nil
		}
		email := m.loginInputs[0].Value()
		password := m.loginInputs[1].Value()
		if email == "" || password == "" {
			m.loginErr = "Email and password are required."
			return m, nil
		}
		m.loginBusy = true
		m.loginErr = ""
		return m, m.login(email, password)

	case "ctrl+r":
		m.view = ViewRegister
		return m, nil
	}

	var cmd tea.Cmd
	m.loginInputs[m.loginFocus], cmd = m.loginInputs[m.loginFocus].Update(msg)
	return m, cmd
}

func (m Model) handleRegisterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return m.focusRegister(m.regFocus + 1), nil

	case "shift+tab", "up":
		return m.focusRegister(m.regFocus - 1), nil

	case "esc":
		m.view = ViewLogin
		return m, nil

	case "enter":
		return m.submitRegister()
	}

	var cmd tea.Cmd
	m.regInputs[m.regFocus], cmd = m.regInputs[m.regFocus].Update(msg)

	// The referral field drives the debounced validator on every edit.
	if m.regFocus == regReferral {
		m.validator.Input(m.regInputs[regReferral].Value())
	}
	return m, cmd
}

func (m Model) focusRegister(next int) Model {
	if next < 0 {
		next = regFieldCount - 1
	}
	m.regFocus = next % regFieldCount
	for i := range m.regInputs {
		if i == m.regFocus {
			m.regInputs[i].Focus()
		} else {
			m.regInputs[i].Blur()
		}
	}
	return m
}

func (m Model) submitRegister() (tea.Model, tea.Cmd) {
	if m.regBusy {
		return m, nil
	}

	name := m.regInputs[regName].Value()
	email := m.regInputs[regEmail].Value()
	password := m.regInputs[regPassword].Value()
	confirm := m.regInputs[regConfirm].Value()
	code := m.regInputs[regReferral].Value()

	if name == "" || email == "" || password == "" {
		m.regErr = "Name, email and password are required."
		return m, nil
	}
	if password != confirm {
		m.regErr = "Passwords do not match"
		return m, nil
	}

	req := api.RegisterRequest{Name: name, Email: email, Password: password}
	if code != "" {
		// A failed validation never blocks submission; the referral is
		// optional and the backend has the final word.
		req.ReferralID = &code
	}

	m.regBusy = true
	m.regErr = ""
	return m, m.register(req)
}
