package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/danielpatrickdp/negotiation-trainer/go-backend/internal/dialogue"
	"github.com/danielpatrickdp/negotiation-trainer/go-backend/internal/negotiation"
)

// reply builds a well-formed generator reply with the given flag values.
func reply(text, newStrong, repeated, conduct, asked, accepted string) string {
	return fmt.Sprintf(`%s
<!--
{"turn_flags":{
  "new_strong_argument":"%s",
  "repeated_argument":"%s",
  "conduct":"%s",
  "asked_amount_present":"%s",
  "accepted_distraction":"%s"
}}
-->`, text, newStrong, repeated, conduct, asked, accepted)
}

// fakeGenerator returns scripted replies and records what it saw.
type fakeGenerator struct {
	replies     []string
	err         error
	calls       int
	lastSystem  string
	lastHistory []dialogue.Message
}

func (f *fakeGenerator) Generate(ctx context.Context, system string, history []dialogue.Message) (string, error) {
	f.calls++
	f.lastSystem = system
	f.lastHistory = append([]dialogue.Message(nil), history...)
	if f.err != nil {
		return "", f.err
	}
	r := f.replies[(f.calls-1)%len(f.replies)]
	return r, nil
}

func TestMessageHappyPath(t *testing.T) {
	gen := &fakeGenerator{replies: []string{
		reply("Fine. Show me the data.", "Y", "N", "professional", "N", "N"),
	}}
	s := New(negotiation.DefaultConfig(), gen, nil)

	res, err := s.Message(context.Background(), "Levels.fyi puts my level at 95k in this metro.")
	if err != nil {
		t.Fatalf("Message: %v", err)
	}
	if res.Text != "Fine. Show me the data." {
		t.Fatalf("metadata not stripped: %q", res.Text)
	}
	if res.State.CurrentOffer != 80000 {
		t.Fatalf("expected 80000, got %d", res.State.CurrentOffer)
	}
	if len(s.history) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(s.history))
	}
	if !strings.Contains(gen.lastSystem, "Shlok") {
		t.Fatal("persona instruction not passed to generator")
	}
	outbound := gen.lastHistory[len(gen.lastHistory)-1].Content
	if !strings.Contains(outbound, "CURRENT STATE (AUTHORITATIVE - DO NOT REPRINT)") {
		t.Fatal("outbound turn missing authoritative state block")
	}
	if !strings.Contains(outbound, "Levels.fyi") {
		t.Fatal("outbound turn missing user message")
	}
}

func TestRollbackOnGeneratorFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("connection reset")}
	s := New(negotiation.DefaultConfig(), gen, nil)

	_, err := s.Message(context.Background(), "I want a raise.")
	if !errors.Is(err, ErrGenerator) {
		t.Fatalf("expected ErrGenerator, got %v", err)
	}
	if len(s.history) != 0 {
		t.Fatalf("pending user turn not rolled back: %d entries", len(s.history))
	}
	if s.state.TurnCount != 0 {
		t.Fatal("failed turn must not advance state")
	}

	// A retry of the same message succeeds against pre-call state.
	gen.err = nil
	gen.replies = []string{reply("Noted.", "N", "N", "professional", "N", "N")}
	res, err := s.Message(context.Background(), "I want a raise.")
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if res.State.TurnCount != 1 {
		t.Fatalf("expected turn count 1 after retry, got %d", res.State.TurnCount)
	}
}

func TestMalformedMetadataDegradesToNeutralTurn(t *testing.T) {
	gen := &fakeGenerator{replies: []string{"Budgets are tight this quarter."}}
	s := New(negotiation.DefaultConfig(), gen, nil)

	res, err := s.Message(context.Background(), "Please reconsider.")
	if err != nil {
		t.Fatalf("Message: %v", err)
	}
	if res.Text != "Budgets are tight this quarter." {
		t.Fatalf("unexpected text: %q", res.Text)
	}
	if res.State.CurrentOffer != 75000 {
		t.Fatalf("neutral turn must not move the offer, got %d", res.State.CurrentOffer)
	}
	if res.State.NoDataTurns != 1 {
		t.Fatalf("expected noDataTurns 1, got %d", res.State.NoDataTurns)
	}
}

func TestTerminalShortCircuit(t *testing.T) {
	gen := &fakeGenerator{replies: []string{
		reply("Security will walk you out.", "N", "N", "inappropriate", "N", "N"),
	}}
	s := New(negotiation.DefaultConfig(), gen, nil)

	res, err := s.Message(context.Background(), "offensive message")
	if err != nil {
		t.Fatalf("Message: %v", err)
	}
	if res.State.Status != negotiation.StatusTooRude {
		t.Fatalf("expected too_rude, got %s", res.State.Status)
	}

	callsBefore := gen.calls
	res2, err := s.Message(context.Background(), "wait, sorry")
	if err != nil {
		t.Fatalf("Message: %v", err)
	}
	if gen.calls != callsBefore {
		t.Fatal("terminal turn must not call the generator")
	}
	if res2.Text != closingTooRude {
		t.Fatalf("expected too_rude closing, got %q", res2.Text)
	}
	if res2.State != res.State {
		t.Fatal("terminal state changed")
	}
}

func TestDefaultClosingForOtherTerminals(t *testing.T) {
	gen := &fakeGenerator{replies: []string{
		reply("Deal.", "N", "N", "professional", "N", "Y"),
	}}
	s := New(negotiation.DefaultConfig(), gen, nil)

	if _, err := s.Message(context.Background(), "I'll take the PTO."); err != nil {
		t.Fatalf("Message: %v", err)
	}
	res, err := s.Message(context.Background(), "actually, about that raise...")
	if err != nil {
		t.Fatalf("Message: %v", err)
	}
	if res.Text != closingDefault {
		t.Fatalf("expected default closing, got %q", res.Text)
	}
}

func TestEmptyPromptRejected(t *testing.T) {
	s := New(negotiation.DefaultConfig(), &fakeGenerator{}, nil)
	if _, err := s.Message(context.Background(), "   "); !errors.Is(err, ErrEmptyPrompt) {
		t.Fatalf("expected ErrEmptyPrompt, got %v", err)
	}
}

func TestReset(t *testing.T) {
	gen := &fakeGenerator{replies: []string{
		reply("Hm.", "Y", "N", "professional", "N", "N"),
	}}
	s := New(negotiation.DefaultConfig(), gen, nil)

	if _, err := s.Message(context.Background(), "KPI: 40% latency cut."); err != nil {
		t.Fatalf("Message: %v", err)
	}
	s.Reset()
	st := s.State()
	if st.CurrentOffer != 75000 || st.TurnCount != 0 {
		t.Fatalf("reset did not restore initial state: %+v", st)
	}
	if len(s.history) != 0 {
		t.Fatal("reset did not clear the transcript")
	}
}

// blockingGenerator parks Generate until released, to exercise single-flight.
type blockingGenerator struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingGenerator) Generate(ctx context.Context, system string, history []dialogue.Message) (string, error) {
	b.started <- struct{}{}
	<-b.release
	return reply("One moment.", "N", "N", "professional", "N", "N"), nil
}

func TestSecondTurnRejectedWhileFirstInFlight(t *testing.T) {
	gen := &blockingGenerator{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := New(negotiation.DefaultConfig(), gen, nil)

	done := make(chan error, 1)
	go func() {
		_, err := s.Message(context.Background(), "first")
		done <- err
	}()

	<-gen.started
	if _, err := s.Message(context.Background(), "second"); !errors.Is(err, ErrTurnInFlight) {
		t.Fatalf("expected ErrTurnInFlight, got %v", err)
	}

	close(gen.release)
	if err := <-done; err != nil {
		t.Fatalf("first turn failed: %v", err)
	}
}
