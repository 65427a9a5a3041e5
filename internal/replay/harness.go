package replay

// #region imports
import (
	"github.com/danielpatrickdp/negotiation-trainer/go-backend/internal/flags"
	"github.com/danielpatrickdp/negotiation-trainer/go-backend/internal/negotiation"
)

// #endregion

// #region types
// Interaction is a single scripted turn: the classification the generator
// would have emitted, without any generator in the loop.
type Interaction struct {
	TurnID string
	Flags  flags.TurnFlags
}

// TurnResult captures the state machine outcome of one replayed turn.
type TurnResult struct {
	TurnID string
	State  negotiation.State
	Reason string
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	TotalTurns int
	Stalls     int
	TerminalAt int // index of the turn that reached a terminal status, -1 if none
	FinalState negotiation.State
}

// #endregion types

// #region replay
// Replay drives scripted turns through the state machine entirely in-memory,
// starting from the initial state for cfg. Turns after a terminal status are
// still fed through Apply to exercise its terminal idempotence.
func Replay(cfg negotiation.Config, interactions []Interaction) []TurnResult {
	current := negotiation.Initial(cfg)
	results := make([]TurnResult, 0, len(interactions))

	for _, inter := range interactions {
		res := negotiation.Apply(current, inter.Flags, cfg)
		current = res.State
		results = append(results, TurnResult{
			TurnID: inter.TurnID,
			State:  current,
			Reason: res.Reason,
		})
	}
	return results
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []TurnResult) Summary {
	s := Summary{
		TotalTurns: len(results),
		TerminalAt: -1,
	}
	for i, r := range results {
		if r.State.Status == negotiation.StatusStalled {
			s.Stalls++
		}
		if s.TerminalAt == -1 && r.State.Status.Terminal() {
			s.TerminalAt = i
		}
	}
	if len(results) > 0 {
		s.FinalState = results[len(results)-1].State
	}
	return s
}

// #endregion replay
