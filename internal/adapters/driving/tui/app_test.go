package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/noterag-cli/internal/core/domain"
)

// mockAskService implements driving.AskService for testing.
type mockAskService struct {
	answer *domain.Answer
	err    error
}

func (m *mockAskService) Ask(_ context.Context, _, _ string) (*domain.Answer, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.answer, nil
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := NewApp(&mockAskService{answer: &domain.Answer{Text: "the answer"}}, "alice")
	require.NoError(t, err)
	return app
}

func TestNewApp_Success(t *testing.T) {
	app := newTestApp(t)

	assert.NotNil(t, app)
	assert.Equal(t, "alice", app.userID)
}

func TestNewApp_MissingAskService(t *testing.T) {
	app, err := NewApp(nil, "alice")

	assert.Nil(t, app)
	assert.ErrorIs(t, err, ErrMissingAskService)
}

func TestNewApp_MissingUserID(t *testing.T) {
	app, err := NewApp(&mockAskService{}, "")

	assert.Nil(t, app)
	assert.ErrorIs(t, err, ErrMissingUserID)
}

func TestApp_Init(t *testing.T) {
	app := newTestApp(t)

	cmd := app.Init()

	assert.NotNil(t, cmd)
}

func TestApp_ViewBeforeReady(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, "Loading...", app.View())
}

func TestApp_WindowSizeMakesReady(t *testing.T) {
	app := newTestApp(t)

	model, _ := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	updated := model.(*App)
	assert.True(t, updated.ready)
	assert.Contains(t, updated.View(), "noterag chat - alice")
}

func TestApp_QuitKeys(t *testing.T) {
	app := newTestApp(t)

	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		_, cmd := app.Update(tea.KeyMsg{Type: key})
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	}
}

func TestApp_SubmitEmptyInputIsNoop(t *testing.T) {
	app := newTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, app.history)
}

func TestApp_SubmitQuestion(t *testing.T) {
	app := newTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	app.input.SetValue("what did I plant?")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.True(t, app.waiting)
	require.Len(t, app.history, 1)
	assert.Equal(t, "what did I plant?", app.history[0].question)
	assert.Empty(t, app.input.Value())

	// Running the command performs the ask and yields the answer.
	msg := cmd()
	received, ok := msg.(AnswerReceived)
	require.True(t, ok)
	assert.Equal(t, "the answer", received.Answer.Text)
}

func TestApp_SubmitWhileWaitingIsNoop(t *testing.T) {
	app := newTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	app.waiting = true
	app.input.SetValue("second question")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, app.history)
}

func TestApp_AnswerReceived(t *testing.T) {
	app := newTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	app.history = append(app.history, exchange{question: "what did I plant?"})
	app.waiting = true

	app.Update(AnswerReceived{
		Question: "what did I plant?",
		Answer: &domain.Answer{
			Text: "Tomatoes, in April.",
			Matches: []domain.Match{
				{PageName: "garden log", ChunkIndex: 0, Score: 0.91},
			},
			ContextUsed: 1,
		},
	})

	assert.False(t, app.waiting)
	require.Len(t, app.history, 1)
	assert.Equal(t, "Tomatoes, in April.", app.history[0].answer)
	require.Len(t, app.history[0].sources, 1)
	assert.Contains(t, app.history[0].sources[0], "garden log")

	view := app.View()
	assert.Contains(t, view, "Tomatoes")
}

func TestApp_AnswerReceivedError(t *testing.T) {
	app := newTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	app.history = append(app.history, exchange{question: "anything"})
	app.waiting = true

	app.Update(AnswerReceived{Question: "anything", Err: errors.New("no AI API key configured")})

	assert.False(t, app.waiting)
	assert.True(t, app.history[0].failed)
	assert.Error(t, app.err)
	assert.Contains(t, app.View(), "no AI API key configured")
}

func TestApp_RenderHistoryEmpty(t *testing.T) {
	app := newTestApp(t)

	assert.Contains(t, app.renderHistory(), "No questions yet.")
}

func TestApp_RenderHistoryPendingShowsEllipsis(t *testing.T) {
	app := newTestApp(t)
	app.history = append(app.history, exchange{question: "pending one"})

	out := app.renderHistory()

	assert.Contains(t, out, "pending one")
	assert.Contains(t, out, "...")
}

func TestApp_RenderHistoryMultipleExchanges(t *testing.T) {
	app := newTestApp(t)
	app.history = []exchange{
		{question: "first", answer: "one"},
		{question: "second", answer: "two"},
	}

	out := app.renderHistory()

	assert.Less(t, strings.Index(out, "first"), strings.Index(out, "second"))
}

func TestApp_ResizeClampsSmallTerminals(t *testing.T) {
	app := newTestApp(t)

	app.Update(tea.WindowSizeMsg{Width: 10, Height: 5})

	assert.GreaterOrEqual(t, app.viewport.Height, 3)
	assert.GreaterOrEqual(t, app.viewport.Width, 20)
}
