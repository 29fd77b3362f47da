// Package tui provides an interactive chat interface over the ask
// service. It implements a driving adapter following hexagonal
// architecture principles.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/noterag-cli/internal/core/ports/driving"
)

// exchange is one question/answer pair in the conversation.
type exchange struct {
	question string
	answer   string
	sources  []string
	failed   bool
}

// App is the chat TUI following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ask answers questions through the driving port.
	ask driving.AskService

	// userID scopes the conversation to one user's index.
	userID string

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *Styles

	// input is the question input field.
	input textinput.Model

	// viewport scrolls the conversation history.
	viewport viewport.Model

	// history holds completed and pending exchanges.
	history []exchange

	// waiting indicates an ask call is in flight.
	waiting bool

	// err holds a fatal error, shown before quitting.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates the first WindowSizeMsg has arrived.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a chat application for the given user.
func NewApp(ask driving.AskService, userID string) (*App, error) {
	if ask == nil {
		return nil, ErrMissingAskService
	}
	if userID == "" {
		return nil, ErrMissingUserID
	}

	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "Ask about your notes and press Enter"
	input.CharLimit = 0
	input.Focus()

	return &App{
		ask:      ask,
		userID:   userID,
		ctx:      context.Background(),
		styles:   DefaultStyles(),
		input:    input,
		viewport: viewport.New(0, 0),
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.EnterAltScreen,
		tea.SetWindowTitle("noterag chat"),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.resize()
		a.viewport.SetContent(a.renderHistory())
		return a, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return a, tea.Quit
		case tea.KeyEnter:
			return a, a.submit()
		case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			a.viewport, cmd = a.viewport.Update(msg)
			return a, cmd
		}

	case AnswerReceived:
		a.receive(msg)
		a.viewport.SetContent(a.renderHistory())
		a.viewport.GotoBottom()
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	title := a.styles.Title.Render(fmt.Sprintf("noterag chat - %s", a.userID))
	history := a.styles.HistoryBox.Render(a.viewport.View())
	input := a.styles.InputBox.Render(a.input.View())

	status := a.styles.Muted.Render("Enter to ask, Esc to quit")
	if a.waiting {
		status = a.styles.Muted.Render("Thinking...")
	}
	if a.err != nil {
		status = a.styles.Error.Render("Error: " + a.err.Error())
	}

	return title + "\n" + history + "\n" + input + "\n" + status
}

// submit sends the current input as a question.
func (a *App) submit() tea.Cmd {
	if a.waiting {
		return nil
	}
	question := strings.TrimSpace(a.input.Value())
	if question == "" {
		return nil
	}

	a.history = append(a.history, exchange{question: question})
	a.waiting = true
	a.input.Reset()
	a.viewport.SetContent(a.renderHistory())
	a.viewport.GotoBottom()

	return a.askCmd(question)
}

// askCmd runs the ask call off the update loop.
func (a *App) askCmd(question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := a.ask.Ask(a.ctx, a.userID, question)
		return AnswerReceived{Question: question, Answer: answer, Err: err}
	}
}

// receive fills in the pending exchange from the ask result.
func (a *App) receive(msg AnswerReceived) {
	a.waiting = false
	if len(a.history) == 0 {
		return
	}

	last := &a.history[len(a.history)-1]
	if msg.Err != nil {
		// A missing API key is the only error Ask returns; nothing
		// else in the session can work without it.
		last.answer = msg.Err.Error()
		last.failed = true
		a.err = msg.Err
		return
	}

	last.answer = msg.Answer.Text
	for i, m := range msg.Answer.Matches {
		last.sources = append(last.sources,
			fmt.Sprintf("[%d] %s (%.2f)", i+1, m.PageName, m.Score))
	}
}

// renderHistory renders the full conversation for the viewport.
func (a *App) renderHistory() string {
	if len(a.history) == 0 {
		return a.styles.Muted.Render("No questions yet.")
	}

	var b strings.Builder
	for i, ex := range a.history {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(a.styles.Question.Render("You: " + ex.question))
		b.WriteString("\n")
		switch {
		case ex.answer == "":
			b.WriteString(a.styles.Muted.Render("..."))
		case ex.failed:
			b.WriteString(a.styles.Error.Render(ex.answer))
		default:
			b.WriteString(a.styles.Answer.Render(ex.answer))
		}
		if len(ex.sources) > 0 {
			b.WriteString("\n")
			b.WriteString(a.styles.Muted.Render("Sources: " + strings.Join(ex.sources, "  ")))
		}
	}
	return b.String()
}

// resize recomputes the viewport dimensions from the terminal size.
func (a *App) resize() {
	_, historyFrame := a.styles.HistoryBox.GetFrameSize()
	_, inputFrame := a.styles.InputBox.GetFrameSize()

	// title + input line + status line
	reserved := 2 + inputFrame + 1 + historyFrame
	height := a.height - reserved
	if height < 3 {
		height = 3
	}

	width := a.width - 4
	if width < 20 {
		width = 20
	}

	a.viewport.Width = width
	a.viewport.Height = height
	a.input.Width = width
}
