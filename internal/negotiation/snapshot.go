package negotiation

import (
	"fmt"
	"strings"
)

// #region prompt-block
// PromptBlock renders the authoritative state for injection into the outbound
// turn. The generator is instructed to treat these values as true and never
// recompute them.
func (s State) PromptBlock() string {
	var b strings.Builder
	b.WriteString("=====================\n")
	b.WriteString("CURRENT STATE (AUTHORITATIVE - DO NOT REPRINT)\n")
	b.WriteString("=====================\n")
	fmt.Fprintf(&b, "current_offer: %d\n", s.CurrentOffer)
	fmt.Fprintf(&b, "turn_count: %d\n", s.TurnCount)
	fmt.Fprintf(&b, "strong_argument_count: %d\n", s.StrongArgumentCount)
	fmt.Fprintf(&b, "distraction_used: %t\n", s.DistractionUsed)
	fmt.Fprintf(&b, "no_data_turns: %d\n", s.NoDataTurns)
	fmt.Fprintf(&b, "repeat_streak: %d\n", s.RepeatStreak)
	fmt.Fprintf(&b, "stalled_streak: %d\n", s.StalledStreak)
	fmt.Fprintf(&b, "rude_warning_issued: %t\n", s.RudeWarningIssued)
	fmt.Fprintf(&b, "rude_streak: %d\n", s.RudeStreak)
	fmt.Fprintf(&b, "status: %s", s.Status)
	return b.String()
}

// #endregion prompt-block
