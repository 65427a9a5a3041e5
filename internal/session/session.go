package session

// #region imports
import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/danielpatrickdp/negotiation-trainer/go-backend/internal/dialogue"
	"github.com/danielpatrickdp/negotiation-trainer/go-backend/internal/flags"
	"github.com/danielpatrickdp/negotiation-trainer/go-backend/internal/negotiation"
	"github.com/danielpatrickdp/negotiation-trainer/go-backend/internal/persona"
	"github.com/danielpatrickdp/negotiation-trainer/go-backend/internal/turnlog"
)

// #endregion

// #region errors
var (
	// ErrTurnInFlight is returned when a second turn arrives while the
	// generator call for the previous one is still pending.
	ErrTurnInFlight = errors.New("a turn is already in flight for this session")

	// ErrGenerator wraps transport/provider failures. The pending user turn
	// has been rolled back; resubmitting the same message is safe.
	ErrGenerator = errors.New("dialogue generator error")

	// ErrEmptyPrompt is returned for a blank player message.
	ErrEmptyPrompt = errors.New("prompt is required")
)

// #endregion errors

// #region closings
// Fixed closing lines for turns arriving after a terminal status. No
// generator call is made for these.
const (
	closingTooRude = "We’re done. This crossed the line—this conversation is over."
	closingDefault = "This conversation is closed. We’re not revisiting compensation right now."
)

// #endregion closings

// #region session
// Session owns one negotiation: the immutable configuration, the
// authoritative state, and the conversation transcript. Turns are strictly
// serialized; the mutex is held across the generator call so no two turns
// can interleave a read-modify-write on the same state.
type Session struct {
	ID string

	cfg    negotiation.Config
	system string
	gen    dialogue.Generator
	logger *turnlog.Store // nil disables turn diagnostics

	mu      sync.Mutex
	state   negotiation.State
	history []dialogue.Message
}

// New creates an initialized session. logger may be nil.
func New(cfg negotiation.Config, gen dialogue.Generator, logger *turnlog.Store) *Session {
	return &Session{
		ID:     uuid.New().String(),
		cfg:    cfg,
		system: persona.Instruction(cfg),
		gen:    gen,
		logger: logger,
		state:  negotiation.Initial(cfg),
	}
}

// Reset discards the transcript and restores the initial state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = negotiation.Initial(s.cfg)
	s.history = nil
	log.Printf("[SESSION] %s reset (offer=%d)", s.ID, s.state.CurrentOffer)
}

// State returns a snapshot of the current negotiation state.
func (s *Session) State() negotiation.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Config returns the immutable session configuration.
func (s *Session) Config() negotiation.Config {
	return s.cfg
}

// #endregion session

// #region result
// Result is what a processed turn returns to the caller.
type Result struct {
	Text  string            `json:"text"`
	State negotiation.State `json:"state"`
}

// #endregion result

// #region message
// Message processes one player turn end to end: terminal short-circuit,
// outbound serialization, generator call, flag extraction, state update.
// On generator failure the pending user entry is rolled back so the
// transcript never holds an unanswered message.
func (s *Session) Message(ctx context.Context, prompt string) (Result, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return Result{}, ErrEmptyPrompt
	}

	if !s.mu.TryLock() {
		return Result{}, ErrTurnInFlight
	}
	defer s.mu.Unlock()

	if s.state.Status.Terminal() {
		return Result{Text: closingFor(s.state.Status), State: s.state}, nil
	}

	turnID := ulid.Make().String()
	outbound := s.state.PromptBlock() +
		"\n\n=====================\nUSER MESSAGE\n=====================\n" + prompt

	s.history = append(s.history, dialogue.Message{
		ID:      turnID,
		Role:    dialogue.RoleUser,
		Content: outbound,
	})

	raw, err := s.gen.Generate(ctx, s.system, s.history)
	if err != nil {
		// Roll back the orphaned user turn; a retry must see pre-call state.
		s.history = s.history[:len(s.history)-1]
		return Result{}, fmt.Errorf("%w: %v", ErrGenerator, err)
	}

	s.history = append(s.history, dialogue.Message{
		ID:      ulid.Make().String(),
		Role:    dialogue.RoleModel,
		Content: raw,
	})

	visible, fl, parseErr := flags.Extract(raw)
	if parseErr != nil {
		log.Printf("[SESSION] %s turn %s: %v; using neutral turn", s.ID, turnID, parseErr)
	}

	before := s.state.CurrentOffer
	res := negotiation.Apply(s.state, fl, s.cfg)
	s.state = res.State

	s.logTurn(turnID, fl, before, res, parseErr != nil)

	return Result{Text: visible, State: s.state}, nil
}

// #endregion message

// #region helpers
func closingFor(status negotiation.Status) string {
	if status == negotiation.StatusTooRude {
		return closingTooRude
	}
	return closingDefault
}

// logTurn records diagnostics best-effort; a logging failure never fails the turn.
func (s *Session) logTurn(turnID string, fl flags.TurnFlags, before int, res negotiation.Result, degraded bool) {
	if s.logger == nil {
		return
	}
	flagsJSON, _ := json.Marshal(fl)
	err := s.logger.LogTurn(turnlog.Entry{
		SessionID:   s.ID,
		TurnID:      turnID,
		FlagsJSON:   string(flagsJSON),
		OfferBefore: before,
		OfferAfter:  res.State.CurrentOffer,
		Status:      string(res.State.Status),
		Reason:      res.Reason,
		Degraded:    degraded,
	})
	if err != nil {
		log.Printf("[SESSION] %s turn log failed: %v", s.ID, err)
	}
}

// #endregion helpers
