package negotiation

import (
	"strings"
	"testing"

	"github.com/danielpatrickdp/negotiation-trainer/go-backend/internal/flags"
)

func strongTurn() flags.TurnFlags {
	return flags.TurnFlags{Conduct: flags.ConductProfessional, NewStrongArgument: true}
}

func neutralTurn() flags.TurnFlags {
	return flags.TurnFlags{Conduct: flags.ConductProfessional}
}

func rudeTurn() flags.TurnFlags {
	return flags.TurnFlags{Conduct: flags.ConductRude}
}

// applyAll threads a sequence of turns through Apply.
func applyAll(t *testing.T, cfg Config, turns []flags.TurnFlags) State {
	t.Helper()
	s := Initial(cfg)
	for _, fl := range turns {
		s = Apply(s, fl, cfg).State
	}
	return s
}

func TestInitialState(t *testing.T) {
	cfg := DefaultConfig()
	s := Initial(cfg)
	if s.CurrentOffer != 75000 {
		t.Fatalf("expected opening offer 75000, got %d", s.CurrentOffer)
	}
	if s.Status != StatusNegotiating {
		t.Fatalf("expected negotiating, got %s", s.Status)
	}
}

func TestInitialFallsBackToMarketAverage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartingSalary = 0
	s := Initial(cfg)
	if s.CurrentOffer != cfg.MarketAverage {
		t.Fatalf("expected market average %d, got %d", cfg.MarketAverage, s.CurrentOffer)
	}
}

// Scenario A: a strong professional argument earns the top-of-band increase.
func TestStrongArgumentTurn(t *testing.T) {
	cfg := DefaultConfig()
	res := Apply(Initial(cfg), strongTurn(), cfg)
	s := res.State
	if s.CurrentOffer != 80000 {
		t.Fatalf("expected 80000, got %d", s.CurrentOffer)
	}
	if s.StrongArgumentCount != 1 || s.NoDataTurns != 0 {
		t.Fatalf("unexpected counters: %+v", s)
	}
	if s.Status != StatusNegotiating {
		t.Fatalf("expected negotiating, got %s", s.Status)
	}
}

// Scenario B: two turns without data stall the negotiation and set a hint.
func TestStallAfterTwoNoDataTurns(t *testing.T) {
	cfg := DefaultConfig()
	s := applyAll(t, cfg, []flags.TurnFlags{neutralTurn(), neutralTurn()})
	if s.NoDataTurns != 2 {
		t.Fatalf("expected noDataTurns 2, got %d", s.NoDataTurns)
	}
	if s.Status != StatusStalled {
		t.Fatalf("expected stalled, got %s", s.Status)
	}
	if s.Hint == "" {
		t.Fatal("expected a non-empty hint while stalled")
	}
}

func TestHintEscalatesOnSecondStall(t *testing.T) {
	cfg := DefaultConfig()
	s := applyAll(t, cfg, []flags.TurnFlags{neutralTurn(), neutralTurn(), neutralTurn()})
	if s.StalledStreak != 2 {
		t.Fatalf("expected stalledStreak 2, got %d", s.StalledStreak)
	}
	if !strings.HasPrefix(s.Hint, "FINAL CHANCE") {
		t.Fatalf("expected escalated hint, got %q", s.Hint)
	}
}

// Scenario C: three stalled turns end the conversation; later turns are no-ops.
func TestEndConvoAfterThreeStalls(t *testing.T) {
	cfg := DefaultConfig()
	s := applyAll(t, cfg, []flags.TurnFlags{neutralTurn(), neutralTurn(), neutralTurn(), neutralTurn()})
	if s.Status != StatusEndConvo {
		t.Fatalf("expected end_convo, got %s", s.Status)
	}
	if s.Hint != "" {
		t.Fatalf("terminal state must clear hint, got %q", s.Hint)
	}

	after := Apply(s, strongTurn(), cfg).State
	if after.Status != StatusEndConvo || after.CurrentOffer != s.CurrentOffer {
		t.Fatalf("terminal state mutated: %+v", after)
	}
	if after.TurnCount != s.TurnCount {
		t.Fatalf("terminal turn must not advance turn count")
	}
}

// Scenario D: first rudeness warns, continued rudeness terminates.
func TestRudeWarningThenTermination(t *testing.T) {
	cfg := DefaultConfig()
	res := Apply(Initial(cfg), rudeTurn(), cfg)
	s := res.State
	if !s.RudeWarningIssued {
		t.Fatal("expected warning latch set")
	}
	if s.Status != StatusNegotiating {
		t.Fatalf("first rude turn should keep negotiating, got %s", s.Status)
	}
	drop := 75000 - s.CurrentOffer
	if drop < 1000 || drop > 3000 {
		t.Fatalf("expected penalty in [1000,3000], got %d", drop)
	}

	s2 := Apply(s, rudeTurn(), cfg).State
	if s2.Status != StatusTooRude {
		t.Fatalf("expected too_rude, got %s", s2.Status)
	}
	if s2.CurrentOffer != s.CurrentOffer {
		t.Fatalf("terminal rude turn must not touch the offer")
	}
}

func TestRudeStreakResetsOnProfessionalTurn(t *testing.T) {
	cfg := DefaultConfig()
	s := applyAll(t, cfg, []flags.TurnFlags{rudeTurn(), strongTurn()})
	if s.RudeStreak != 0 {
		t.Fatalf("expected rudeStreak reset, got %d", s.RudeStreak)
	}
	if s.Status != StatusNegotiating {
		t.Fatalf("expected negotiating, got %s", s.Status)
	}
}

func TestInappropriateIsImmediatelyTerminal(t *testing.T) {
	cfg := DefaultConfig()
	fl := flags.TurnFlags{Conduct: flags.ConductInappropriate}
	s := Apply(Initial(cfg), fl, cfg).State
	if s.Status != StatusTooRude {
		t.Fatalf("expected too_rude, got %s", s.Status)
	}
	if s.CurrentOffer != 75000 {
		t.Fatalf("terminal turn must not mutate the offer, got %d", s.CurrentOffer)
	}
}

func TestEmotionalNeverTerminates(t *testing.T) {
	cfg := DefaultConfig()
	fl := flags.TurnFlags{Conduct: flags.ConductEmotional}
	s := Initial(cfg)
	for i := 0; i < 5; i++ {
		s = Apply(s, fl, cfg).State
		if s.Status == StatusTooRude {
			t.Fatalf("emotional conduct escalated to too_rude at turn %d", i+1)
		}
	}
}

// Scenario E: the pivot fires exactly once, and acceptance is terminal.
func TestMandatoryPivotOneShot(t *testing.T) {
	cfg := DefaultConfig()
	s := applyAll(t, cfg, []flags.TurnFlags{strongTurn(), strongTurn()})
	if s.Status != StatusDistractionOffered {
		t.Fatalf("expected distraction_offered, got %s", s.Status)
	}
	if !s.DistractionUsed {
		t.Fatal("expected distraction latch set")
	}

	s2 := Apply(s, strongTurn(), cfg).State
	if s2.Status == StatusDistractionOffered {
		t.Fatal("pivot must not fire twice")
	}

	accept := flags.TurnFlags{Conduct: flags.ConductProfessional, AcceptedDistraction: true}
	s3 := Apply(s2, accept, cfg).State
	if s3.Status != StatusAcceptedDistraction {
		t.Fatalf("expected accepted_distraction, got %s", s3.Status)
	}
	if s3.CurrentOffer != s2.CurrentOffer {
		t.Fatal("accepting the distraction must not change the offer")
	}
}

func TestTargetReached(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartingSalary = 96000
	s := Apply(Initial(cfg), strongTurn(), cfg).State
	if s.CurrentOffer != cfg.TargetGoal {
		t.Fatalf("expected offer capped at %d, got %d", cfg.TargetGoal, s.CurrentOffer)
	}
	if s.Status != StatusTargetReached {
		t.Fatalf("expected target_reached, got %s", s.Status)
	}
}

func TestPivotDoesNotOverrideTargetReached(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartingSalary = 91000
	// Two strong turns: second one reaches the target before the pivot check.
	s := applyAll(t, cfg, []flags.TurnFlags{strongTurn(), strongTurn()})
	if s.Status != StatusTargetReached {
		t.Fatalf("expected target_reached, got %s", s.Status)
	}
	if s.DistractionUsed {
		t.Fatal("pivot must not latch on a terminal turn")
	}
}

func TestStrongArgumentRecoversFromStall(t *testing.T) {
	cfg := DefaultConfig()
	s := applyAll(t, cfg, []flags.TurnFlags{neutralTurn(), neutralTurn(), strongTurn()})
	if s.Status != StatusNegotiating {
		t.Fatalf("expected negotiating after recovery, got %s", s.Status)
	}
	if s.NoDataTurns != 0 || s.StalledStreak != 0 {
		t.Fatalf("expected counters reset, got %+v", s)
	}
	if s.Hint != "" {
		t.Fatalf("hint must clear outside stalled, got %q", s.Hint)
	}
}

func TestOfferInvariantAcrossSequences(t *testing.T) {
	cfg := DefaultConfig()
	turns := []flags.TurnFlags{
		strongTurn(), rudeTurn(), neutralTurn(),
		{Conduct: flags.ConductEmotional, RepeatedArgument: true},
		{Conduct: flags.ConductProfessional, RepeatedArgument: true},
		strongTurn(),
		{Conduct: flags.ConductProfessional, AskedAmountPresent: true},
		rudeTurn(), rudeTurn(), strongTurn(),
	}
	s := Initial(cfg)
	for i, fl := range turns {
		s = Apply(s, fl, cfg).State
		if s.CurrentOffer < 0 || s.CurrentOffer > cfg.TargetGoal {
			t.Fatalf("turn %d: offer %d out of [0, %d]", i+1, s.CurrentOffer, cfg.TargetGoal)
		}
	}
}

func TestPromptBlockContainsAuthoritativeFields(t *testing.T) {
	cfg := DefaultConfig()
	s := Apply(Initial(cfg), strongTurn(), cfg).State
	block := s.PromptBlock()
	for _, want := range []string{
		"CURRENT STATE (AUTHORITATIVE - DO NOT REPRINT)",
		"current_offer: 80000",
		"strong_argument_count: 1",
		"status: negotiating",
	} {
		if !strings.Contains(block, want) {
			t.Fatalf("prompt block missing %q:\n%s", want, block)
		}
	}
}
