package session

import (
	"context"
	"strconv"

	tea "charm.land/bubbletea/v2"

	"github.com/jackyw/quizcard/internal/history"
	"github.com/jackyw/quizcard/internal/quiz"
	"github.com/jackyw/quizcard/internal/quizgen"
	"github.com/jackyw/quizcard/internal/router"
	"github.com/jackyw/quizcard/internal/screen"
	"github.com/jackyw/quizcard/internal/screens/summary"
	"github.com/jackyw/quizcard/internal/ui/components"
	"github.com/jackyw/quizcard/internal/ui/layout"
)

// SessionScreen drives one quiz run: generation, answering, navigation
// and the hand-off to the summary.
type SessionScreen struct {
	generator quizgen.Generator
	evaluator quizgen.Evaluator
	histRepo  history.Store

	topic string
	mode  quiz.Mode

	sess *quiz.Session

	mc    components.MultiChoice
	input components.TextInput

	evaluating      bool
	transientErr    string
	showQuitConfirm bool
	errMsg          string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)

// NewGenerated creates a session screen that asks the generator for a
// fresh question set on Init.
func NewGenerated(gen quizgen.Generator, eval quizgen.Evaluator, hist history.Store, topic string, mode quiz.Mode) *SessionScreen {
	return &SessionScreen{
		generator: gen,
		evaluator: eval,
		histRepo:  hist,
		topic:     topic,
		mode:      mode,
	}
}

// NewImported creates a session screen over an already-parsed question
// list, bypassing generation.
func NewImported(eval quizgen.Evaluator, hist history.Store, topic string, mode quiz.Mode, questions []quiz.Question) *SessionScreen {
	s := &SessionScreen{
		evaluator: eval,
		histRepo:  hist,
		topic:     topic,
		mode:      mode,
	}
	sess, err := quiz.NewSession(topic, mode, questions)
	if err != nil {
		s.errMsg = err.Error()
		return s
	}
	s.sess = sess
	return s
}

// NewReplay creates a session screen replaying the questions of a
// stored history item.
func NewReplay(eval quizgen.Evaluator, hist history.Store, item history.Item) *SessionScreen {
	sess := quiz.FromHistory(item)
	return &SessionScreen{
		evaluator: eval,
		histRepo:  hist,
		topic:     sess.Topic,
		mode:      sess.Mode,
		sess:      sess,
	}
}

// forSession wraps an existing session, used for retakes.
func forSession(eval quizgen.Evaluator, hist history.Store, sess *quiz.Session) *SessionScreen {
	return &SessionScreen{
		evaluator: eval,
		histRepo:  hist,
		topic:     sess.Topic,
		mode:      sess.Mode,
		sess:      sess,
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	if s.errMsg != "" {
		return nil
	}
	if s.sess == nil {
		return s.generateCmd()
	}
	return s.syncComponents()
}

func (s *SessionScreen) Title() string {
	return "Quiz"
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{
			{Key: "any key", Description: "Back"},
		}
	}
	if s.showQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave quiz"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.sess == nil {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Cancel"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "←→", Description: "Prev/Next"},
		{Key: "Esc", Description: "Quit"},
	}
	if s.sess.Answered() {
		hints[0] = layout.KeyHint{Key: "Enter", Description: "Next"}
	}
	return hints
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsReadyMsg:
		return s.handleQuestionsReady(msg)

	case evaluationDoneMsg:
		return s.handleEvaluationDone(msg)

	case sessionSavedMsg:
		return s.handleSaved(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Forward non-key messages (cursor blink etc.) to the text input.
	if s.activeOpenEnded() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s *SessionScreen) handleQuestionsReady(msg questionsReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	sess, err := quiz.NewSession(s.topic, s.mode, msg.Questions)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.sess = sess
	return s, s.syncComponents()
}

func (s *SessionScreen) handleEvaluationDone(msg evaluationDoneMsg) (screen.Screen, tea.Cmd) {
	s.evaluating = false
	if msg.Err != nil {
		// The answer was not recorded; the learner can edit and resubmit.
		s.transientErr = "Evaluation failed: " + msg.Err.Error()
		return s, nil
	}
	if _, err := s.sess.RecordEvaluation(msg.QuestionID, msg.Text, *msg.Result); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.transientErr = ""
	if current := s.sess.Current(); current.ID == msg.QuestionID {
		s.input.Submit()
	}
	return s, nil
}

func (s *SessionScreen) handleSaved(msg sessionSavedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	sess := s.sess
	eval := s.evaluator
	hist := s.histRepo
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: summary.New(sess, func() screen.Screen {
				sess.Retake()
				return forSession(eval, hist, sess)
			}),
		}
	}
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.showQuitConfirm {
		switch key {
		case "y", "Y":
			// Leaving mid-session discards it; nothing is persisted.
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.showQuitConfirm = false
		}
		return s, nil
	}

	if s.sess == nil {
		if key == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.showQuitConfirm = true
		return s, nil
	case "left":
		s.sess.Prev()
		return s, s.syncComponents()
	case "right":
		return s.advance()
	}

	q := s.sess.Current()
	if q.Kind == quiz.KindMultipleChoice {
		return s.handleChoiceKey(key, msg)
	}
	return s.handleOpenEndedKey(key, msg)
}

func (s *SessionScreen) handleChoiceKey(key string, msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	q := s.sess.Current()

	if s.sess.Answered() {
		if key == "enter" {
			return s.advance()
		}
		return s, nil
	}

	// Number keys select and submit in one stroke.
	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(q.Options) {
		s.mc.Selected = n - 1
		s.mc.Submitted = true
		s.mc.ChosenIndex = n - 1
	} else {
		s.mc, _ = s.mc.Update(msg)
	}

	if s.mc.Submitted {
		if _, err := s.sess.RecordChoice(q.ID, s.mc.ChosenIndex); err != nil {
			s.errMsg = err.Error()
		}
	}
	return s, nil
}

func (s *SessionScreen) handleOpenEndedKey(key string, msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.evaluating {
		// One evaluation in flight at a time; input stays blocked.
		return s, nil
	}

	if s.sess.Answered() {
		if key == "enter" {
			return s.advance()
		}
		return s, nil
	}

	if key == "enter" {
		text := s.input.Value()
		if text == "" {
			return s, nil
		}
		if s.evaluator == nil {
			s.transientErr = "No LLM provider configured; this answer cannot be graded."
			return s, nil
		}
		s.evaluating = true
		s.transientErr = ""
		return s, s.evaluateCmd(s.sess.Current(), text)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// advance moves forward one question, or finishes the session when at
// the last one.
func (s *SessionScreen) advance() (screen.Screen, tea.Cmd) {
	if finished := s.sess.Next(); finished {
		return s, s.saveCmd()
	}
	return s, s.syncComponents()
}

// syncComponents rebuilds the per-question input component from session
// state, restoring the recorded answer when the question was already
// answered.
func (s *SessionScreen) syncComponents() tea.Cmd {
	s.transientErr = ""
	q := s.sess.Current()
	prev, answered := s.sess.AnswerFor(q.ID)

	if q.Kind == quiz.KindMultipleChoice {
		s.mc = components.NewMultiChoice(q.Prompt, q.Options, q.CorrectOptionIndex)
		s.mc.Explanation = q.Explanation
		if answered {
			s.mc.Restore(prev.OptionIndex)
		}
		return nil
	}

	s.input = components.NewTextInput("Type your answer...", 500)
	if answered {
		s.input.SetValue(prev.Text)
		s.input.Submit()
		return nil
	}
	return s.input.Init()
}

func (s *SessionScreen) activeOpenEnded() bool {
	return s.sess != nil &&
		s.errMsg == "" &&
		!s.showQuitConfirm &&
		!s.evaluating &&
		!s.sess.Answered() &&
		s.sess.Current().Kind == quiz.KindOpenEnded
}

func (s *SessionScreen) generateCmd() tea.Cmd {
	return func() tea.Msg {
		questions, err := s.generator.Generate(context.Background(), quizgen.GenerateInput{
			Topic: s.topic,
			Mode:  s.mode,
		})
		return questionsReadyMsg{Questions: questions, Err: err}
	}
}

func (s *SessionScreen) evaluateCmd(q *quiz.Question, text string) tea.Cmd {
	topic := s.topic
	questionID := q.ID
	prompt := q.Prompt
	return func() tea.Msg {
		result, err := s.evaluator.Evaluate(context.Background(), quizgen.EvaluateInput{
			Topic:    topic,
			Question: prompt,
			Answer:   text,
		})
		return evaluationDoneMsg{
			QuestionID: questionID,
			Text:       text,
			Result:     result,
			Err:        err,
		}
	}
}

func (s *SessionScreen) saveCmd() tea.Cmd {
	item := s.sess.Snapshot()
	return func() tea.Msg {
		err := s.histRepo.InsertFront(context.Background(), item)
		return sessionSavedMsg{Err: err}
	}
}
