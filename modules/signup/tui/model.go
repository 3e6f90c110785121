package tui

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrymomot/signupkit/modules/signup"
	"github.com/dmitrymomot/signupkit/pkg/form"
	"github.com/dmitrymomot/signupkit/pkg/logger"
	"github.com/dmitrymomot/signupkit/svc/registration"
)

// SubmittedMsg reports the end of a submission. Response is nil on failure.
type SubmittedMsg struct {
	Response      *registration.Response
	Notifications []registration.Notification
}

// Option configures a Model.
type Option func(*Model)

// WithLoginURL sets where a successful signup navigates to.
func WithLoginURL(u string) Option {
	return func(m *Model) {
		if u != "" {
			m.loginURL = u
		}
	}
}

// WithAPIPath overrides the signup endpoint path.
func WithAPIPath(p string) Option {
	return func(m *Model) {
		if p != "" {
			m.apiPath = p
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithContext sets the context submissions run under.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

func WithKeyMap(k KeyMap) Option {
	return func(m *Model) { m.keys = k }
}

// notificationBuffer collects store notifications until the submission
// result is delivered to the model.
type notificationBuffer struct {
	mu    sync.Mutex
	items []registration.Notification
}

func (b *notificationBuffer) Notify(_ context.Context, n registration.Notification) {
	b.mu.Lock()
	b.items = append(b.items, n)
	b.mu.Unlock()
}

func (b *notificationBuffer) drain() []registration.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.items
	b.items = nil
	return out
}

// Model is the terminal signup form.
type Model struct {
	ctx      context.Context
	logger   *slog.Logger
	loginURL string
	apiPath  string
	keys     KeyMap

	state  *form.State
	store  *registration.Store
	notes  *notificationBuffer
	fields []form.Field
	inputs []textinput.Model
	focus  int

	showPassword bool
	submitting   bool
	toast        *registration.Notification
	navigatedTo  string

	spinner spinner.Model
	help    help.Model
	width   int
}

// New builds the model around transport, usually the client from signup.NewClient.
func New(transport registration.Transport, opts ...Option) Model {
	m := Model{
		ctx:      context.Background(),
		logger:   logger.Discard(),
		loginURL: "/login",
		apiPath:  registration.DefaultPath,
		keys:     DefaultKeyMap(),
		state:    signup.NewForm(),
		notes:    &notificationBuffer{},
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:     help.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.logger = m.logger.With(logger.Component("signup_tui"))
	m.store = registration.NewStore(transport, m.notes,
		registration.WithLogger(m.logger),
		registration.WithPath(m.apiPath),
	)

	m.fields = m.state.Fields()
	m.inputs = make([]textinput.Model, len(m.fields))
	for i, f := range m.fields {
		in := textinput.New()
		in.Prompt = "› "
		in.Placeholder = f.Placeholder
		if f.IsSecret() {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		m.inputs[i] = in
	}
	m.inputs[0].Focus()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses, spinner ticks and submission results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case SubmittedMsg:
		return m.handleSubmitted(msg)

	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.submitting {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Next):
			return m, m.moveFocus(1)
		case key.Matches(msg, m.keys.Prev):
			return m, m.moveFocus(-1)
		case key.Matches(msg, m.keys.TogglePassword):
			m.togglePassword()
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		case key.Matches(msg, m.keys.Enter):
			if m.focus == len(m.inputs)-1 {
				return m.submit()
			}
			return m, m.moveFocus(1)
		}
	}

	return m, m.updateFocused(msg)
}

// updateFocused feeds msg to the focused input and stores the sanitized value.
func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	if _, ok := msg.(tea.KeyMsg); !ok {
		return cmd
	}

	raw := m.inputs[m.focus].Value()
	clean, err := m.state.Set(m.fields[m.focus].Name, raw)
	if err != nil {
		m.logger.Error("failed to store field value", logger.Field(m.fields[m.focus].Name), logger.Error(err))
		return cmd
	}
	if clean != raw {
		m.inputs[m.focus].SetValue(clean)
		m.inputs[m.focus].CursorEnd()
	}
	return cmd
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	n := len(m.inputs)
	m.inputs[m.focus].Blur()
	m.focus = ((m.focus+delta)%n + n) % n
	return m.inputs[m.focus].Focus()
}

func (m *Model) togglePassword() {
	m.showPassword = !m.showPassword
	for i, f := range m.fields {
		if !f.IsSecret() {
			continue
		}
		if m.showPassword {
			m.inputs[i].EchoMode = textinput.EchoNormal
		} else {
			m.inputs[i].EchoMode = textinput.EchoPassword
		}
	}
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if !m.state.CanSubmit() {
		return m, nil
	}
	m.submitting = true
	m.toast = nil

	store, notes, ctx := m.store, m.notes, m.ctx
	payload := registration.PayloadFromValues(m.state.Values())
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		resp := store.RegisterUser(ctx, payload)
		return SubmittedMsg{Response: resp, Notifications: notes.drain()}
	})
}

func (m Model) handleSubmitted(msg SubmittedMsg) (tea.Model, tea.Cmd) {
	m.submitting = m.store.IsSubmitting()
	if n := len(msg.Notifications); n > 0 {
		last := msg.Notifications[n-1]
		m.toast = &last
	}

	if msg.Response.Created() {
		m.navigatedTo = m.loginURL
		return m, tea.Quit
	}
	if msg.Response != nil {
		m.logger.Info("signup accepted without creating a user",
			logger.StatusCode(msg.Response.StatusCode),
			slog.String("message", msg.Response.Message),
		)
	}
	return m, nil
}

// NavigatedTo returns the login URL once the signup succeeded, or "".
func (m Model) NavigatedTo() string { return m.navigatedTo }

// Submitting reports whether a submission is in flight.
func (m Model) Submitting() bool { return m.submitting }

// Form exposes the form state.
func (m Model) Form() *form.State { return m.state }

// Focused returns the name of the focused field.
func (m Model) Focused() string { return m.fields[m.focus].Name }

// Toast returns the message currently shown, or "".
func (m Model) Toast() string {
	if m.toast == nil {
		return ""
	}
	return m.toast.Message
}

func (m Model) View() string {
	if m.navigatedTo != "" {
		return "Account created. Continue at " + m.navigatedTo + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Sign up"))
	b.WriteString("\n")

	for i, f := range m.fields {
		label := labelStyle.Render(f.Label)
		if i == m.focus {
			label = focusedLabelStyle.Render(f.Label)
		}
		rows := []string{label, m.inputs[i].View()}
		if msg := m.state.Error(f.Name); msg != "" {
			rows = append(rows, errorStyle.Render(msg))
		}
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
		b.WriteString("\n\n")
	}

	switch {
	case m.submitting:
		b.WriteString(m.spinner.View() + " Signing up…")
	case m.state.CanSubmit():
		b.WriteString(buttonStyle.Render("Sign up"))
	default:
		b.WriteString(disabledButtonStyle.Render("Sign up"))
	}
	b.WriteString("\n")

	if m.toast != nil {
		style, ok := toastStyles[string(m.toast.Level)]
		if !ok {
			style = toastStyles[string(registration.LevelError)]
		}
		b.WriteString("\n" + style.Render(m.toast.Message) + "\n")
	}

	b.WriteString(hintStyle.Render("Already have an account? Log in at " + m.loginURL))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

var _ tea.Model = Model{}
