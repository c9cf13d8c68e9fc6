package branching

import (
	"fmt"

	"github.com/google/uuid"

	types "github.com/guidedtopic/guidedtopic-backend/internal/domain"
	"github.com/guidedtopic/guidedtopic-backend/internal/pkg/apperr"
)

// State is the playback session state.
type State int

const (
	StatePlaying State = iota
	StateQuestionDue
	StateAnswerChosen
	StateNavigating
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateQuestionDue:
		return "question_due"
	case StateAnswerChosen:
		return "answer_chosen"
	case StateNavigating:
		return "navigating"
	}
	return "unknown"
}

// Session is the client-driven playback cursor: current video, elapsed
// seconds and the set of question ids already presented. The server holds
// no live session object; callers rebuild a Session from request input,
// step it, and return the resulting cursor to the client.
type Session struct {
	VideoID   uuid.UUID
	Elapsed   int
	Presented map[uuid.UUID]bool

	state State
	due   *types.Question
	nav   Navigation
}

// NewSession starts a session cursor at the beginning of a video.
func NewSession(videoID uuid.UUID) *Session {
	return &Session{
		VideoID:   videoID,
		Presented: make(map[uuid.UUID]bool),
		state:     StatePlaying,
	}
}

// ResumeSession rebuilds a session cursor from client-supplied state.
func ResumeSession(videoID uuid.UUID, elapsed int, presented map[uuid.UUID]bool) *Session {
	if presented == nil {
		presented = make(map[uuid.UUID]bool)
	}
	return &Session{
		VideoID:   videoID,
		Elapsed:   elapsed,
		Presented: presented,
		state:     StatePlaying,
	}
}

// State returns the current machine state.
func (s *Session) State() State { return s.state }

// DueQuestion returns the question awaiting an answer, if any.
func (s *Session) DueQuestion() *types.Question { return s.due }

// Observe advances the cursor to elapsed and transitions Playing ->
// QuestionDue when an un-presented question's pose time has been reached.
// It returns the due question, or nil when playback simply continues. With
// several questions due at once the lowest (pose_time, id) one fires first;
// the rest stay queued for subsequent Observe calls.
func (s *Session) Observe(elapsed int, questions []*types.Question) (*types.Question, error) {
	if s.state != StatePlaying {
		return nil, fmt.Errorf("%w: observe in state %s", apperr.ErrInvalidArgument, s.state)
	}
	if elapsed > s.Elapsed {
		s.Elapsed = elapsed
	}
	due := DueQuestions(questions, s.Elapsed, s.Presented)
	if len(due) == 0 {
		return nil, nil
	}
	s.due = due[0]
	s.state = StateQuestionDue
	return s.due, nil
}

// Choose transitions QuestionDue -> AnswerChosen -> Navigating for the
// selected slot. On ErrInvalidSelection the session stays in QuestionDue
// with the same due question.
func (s *Session) Choose(label types.SlotLabel, videoExists func(uuid.UUID) bool, policy Policy) (Navigation, error) {
	if s.state != StateQuestionDue || s.due == nil {
		return Navigation{}, fmt.Errorf("%w: choose in state %s", apperr.ErrInvalidArgument, s.state)
	}
	nav, err := ResolveAnswer(s.due, label, videoExists, policy)
	if err != nil {
		return Navigation{}, err
	}
	s.state = StateAnswerChosen
	s.nav = nav
	s.state = StateNavigating
	return nav, nil
}

// Navigate completes Navigating -> Playing. The answered question is marked
// presented so it never fires again in this session; the elapsed cursor
// resets only when the session moves to a different video. It returns true
// when the video changed (a fresh playback start for view counting).
func (s *Session) Navigate() (bool, error) {
	if s.state != StateNavigating {
		return false, fmt.Errorf("%w: navigate in state %s", apperr.ErrInvalidArgument, s.state)
	}
	s.Presented[s.due.ID] = true
	moved := s.nav.NextVideoID != s.VideoID
	s.Elapsed = NextElapsed(s.VideoID, s.Elapsed, s.nav)
	s.VideoID = s.nav.NextVideoID
	s.due = nil
	s.nav = Navigation{}
	s.state = StatePlaying
	return moved, nil
}
