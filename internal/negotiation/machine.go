package negotiation

// #region imports
import (
	"fmt"

	"github.com/danielpatrickdp/negotiation-trainer/go-backend/internal/flags"
	"github.com/danielpatrickdp/negotiation-trainer/go-backend/internal/offer"
)

// #endregion

// #region hints
const (
	hintAddSpecific = "Add ONE new specific: named market source + level/location, quantified KPI, scope increase, competing offer with numbers, or internal equity mismatch."
	hintFinalChance = "FINAL CHANCE: " + hintAddSpecific
)

// #endregion hints

// #region apply
// Apply is the per-turn state transition. It consumes the turn's
// classification flags, recomputes the offer, and derives the new status.
// Conduct-terminal checks run before any offer computation, so a terminal
// turn never mutates the offer. Calling Apply on an already-terminal state
// is a no-op.
func Apply(prev State, fl flags.TurnFlags, cfg Config) Result {
	if prev.Status.Terminal() {
		return Result{State: prev, Reason: "session already terminal"}
	}

	s := prev
	s.TurnCount++

	// Player accepted the non-monetary pivot
	if fl.AcceptedDistraction {
		return terminal(s, StatusAcceptedDistraction, "accepted non-monetary offer")
	}

	// Conduct escalation. Classification is the sole authority: emotional
	// conduct never auto-escalates to inappropriate here.
	if fl.Conduct == flags.ConductInappropriate {
		return terminal(s, StatusTooRude, "inappropriate conduct")
	}

	if fl.Conduct == flags.ConductRude {
		s.RudeStreak++
		if !s.RudeWarningIssued {
			s.RudeWarningIssued = true
		} else if s.RudeStreak >= 2 {
			return terminal(s, StatusTooRude, "continued rudeness after warning")
		}
	} else {
		s.RudeStreak = 0
	}

	// Streak updates feed the engine with post-turn values
	if fl.RepeatedArgument {
		s.RepeatStreak++
	} else {
		s.RepeatStreak = 0
	}

	if fl.NewStrongArgument {
		s.StrongArgumentCount++
		s.NoDataTurns = 0
	} else {
		s.NoDataTurns++
	}

	s.CurrentOffer = offer.Compute(s.CurrentOffer, offer.Inputs{
		Conduct:            fl.Conduct,
		NewStrong:          fl.NewStrongArgument,
		Repeated:           fl.RepeatedArgument,
		RepeatStreak:       s.RepeatStreak,
		RudeStreak:         s.RudeStreak,
		AskedAmountPresent: fl.AskedAmountPresent,
	}, cfg.OfferConfig())

	if s.CurrentOffer >= cfg.TargetGoal {
		return terminal(s, StatusTargetReached, "offer reached target")
	}

	// Stall detection
	if s.NoDataTurns >= 2 {
		s.Status = StatusStalled
		s.StalledStreak++
	} else {
		s.Status = StatusNegotiating
		s.StalledStreak = 0
	}

	if s.StalledStreak >= 3 {
		return terminal(s, StatusEndConvo, "stalled three turns in a row")
	}

	// Hint only while stalled, escalating wording on the second stall
	if s.Status == StatusStalled {
		if s.StalledStreak == 2 {
			s.Hint = hintFinalChance
		} else {
			s.Hint = hintAddSpecific
		}
	} else {
		s.Hint = ""
	}

	// Mandatory one-time pivot away from money. Can override a negotiating
	// or stalled status, never a terminal one.
	if s.StrongArgumentCount >= 2 && !s.DistractionUsed && !s.Status.Terminal() {
		s.Status = StatusDistractionOffered
		s.DistractionUsed = true
		s.Hint = ""
		return Result{State: s, Reason: "pivoting to non-monetary offer"}
	}

	return Result{State: s, Reason: fmt.Sprintf("status %s, offer %d", s.Status, s.CurrentOffer)}
}

// #endregion apply

// #region helpers
func terminal(s State, status Status, reason string) Result {
	s.Status = status
	s.Hint = ""
	return Result{State: s, Reason: reason}
}

// #endregion helpers
