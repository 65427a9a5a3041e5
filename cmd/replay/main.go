package main

// #region imports
import (
	"fmt"
	"log"
	"os"

	"github.com/danielpatrickdp/negotiation-trainer/go-backend/internal/replay"
)

// #endregion

// #region main
// Replays a scripted fixture through the state machine and prints the
// per-turn transcript. Lets rule-tuning changes be checked against recorded
// scenarios without touching the LLM.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: replay <fixture.json>")
		os.Exit(1)
	}

	fixture, err := replay.LoadFixture(os.Args[1])
	if err != nil {
		log.Fatalf("failed to load fixture: %v", err)
	}

	cfg := fixture.Config.ToConfig()
	fmt.Printf("Replaying: %s\n", fixture.Description)
	fmt.Printf("  start=%d target=%d\n\n", cfg.BaseSalary(), cfg.TargetGoal)

	results := replay.Replay(cfg, fixture.ToInteractions())

	expected := make(map[string]replay.FixtureExpected, len(fixture.Expected))
	for _, e := range fixture.Expected {
		expected[e.TurnID] = e
	}

	mismatches := 0
	for _, r := range results {
		line := fmt.Sprintf("[%s] offer=%d status=%s", r.TurnID, r.State.CurrentOffer, r.State.Status)
		if e, ok := expected[r.TurnID]; ok {
			if string(r.State.Status) != e.Status || r.State.CurrentOffer != e.Offer {
				line += fmt.Sprintf("  MISMATCH (expected offer=%d status=%s)", e.Offer, e.Status)
				mismatches++
			}
		}
		fmt.Println(line)
		if r.State.Hint != "" {
			fmt.Printf("    hint: %s\n", r.State.Hint)
		}
	}

	sum := replay.Summarize(results)
	fmt.Printf("\nturns=%d stalls=%d final=%s offer=%d\n",
		sum.TotalTurns, sum.Stalls, sum.FinalState.Status, sum.FinalState.CurrentOffer)
	if sum.TerminalAt >= 0 {
		fmt.Printf("terminal at turn index %d\n", sum.TerminalAt)
	}

	if mismatches > 0 {
		log.Fatalf("%d turn(s) diverged from expected results", mismatches)
	}
}

// #endregion main
