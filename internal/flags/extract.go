package flags

// #region imports
import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// #endregion

// #region wire-format
// The generator appends its classification as an HTML comment after the
// dialogue text:
//
//	<!--
//	{"turn_flags":{
//	  "new_strong_argument":"N",
//	  "repeated_argument":"N",
//	  "conduct":"professional",
//	  "asked_amount_present":"N",
//	  "accepted_distraction":"N"
//	}}
//	-->
//
// wireEnvelope and wireFlags mirror that block. Boolean fields travel as
// "Y"/"N" strings; anything else fails the decode.
type wireEnvelope struct {
	TurnFlags *wireFlags `json:"turn_flags"`
}

type wireFlags struct {
	NewStrongArgument   string `json:"new_strong_argument"`
	RepeatedArgument    string `json:"repeated_argument"`
	Conduct             string `json:"conduct"`
	AskedAmountPresent  string `json:"asked_amount_present"`
	AcceptedDistraction string `json:"accepted_distraction"`
}

// #endregion wire-format

// #region extract
var metadataBlock = regexp.MustCompile(`(?s)<!--\s*(.*?)\s*-->`)

// Extract splits a raw generator reply into the user-visible dialogue and the
// decoded TurnFlags. The metadata block is always stripped from the visible
// text. If the block is missing or fails strict validation, the returned
// flags are Neutral() and the error describes why; callers treat that as a
// degraded turn, not a failure.
func Extract(raw string) (visible string, fl TurnFlags, err error) {
	visible = strings.TrimSpace(metadataBlock.ReplaceAllString(raw, ""))

	m := metadataBlock.FindStringSubmatch(raw)
	if m == nil {
		return visible, Neutral(), fmt.Errorf("no metadata block in reply")
	}

	candidate := strings.TrimSpace(m[1])
	if !strings.HasPrefix(candidate, "{") || !strings.HasSuffix(candidate, "}") {
		return visible, Neutral(), fmt.Errorf("metadata block is not a JSON object")
	}

	fl, err = decodeStrict(candidate)
	if err != nil {
		return visible, Neutral(), fmt.Errorf("decode turn flags: %w", err)
	}
	return visible, fl, nil
}

// #endregion extract

// #region strict-decode
// decodeStrict enforces the contract shape: exactly the five known fields,
// Y/N booleans, and a valid conduct value.
func decodeStrict(candidate string) (TurnFlags, error) {
	dec := json.NewDecoder(strings.NewReader(candidate))
	dec.DisallowUnknownFields()

	var env wireEnvelope
	if err := dec.Decode(&env); err != nil {
		return TurnFlags{}, err
	}
	if env.TurnFlags == nil {
		return TurnFlags{}, fmt.Errorf("missing turn_flags object")
	}

	w := env.TurnFlags
	newStrong, err := parseYN("new_strong_argument", w.NewStrongArgument)
	if err != nil {
		return TurnFlags{}, err
	}
	repeated, err := parseYN("repeated_argument", w.RepeatedArgument)
	if err != nil {
		return TurnFlags{}, err
	}
	asked, err := parseYN("asked_amount_present", w.AskedAmountPresent)
	if err != nil {
		return TurnFlags{}, err
	}
	accepted, err := parseYN("accepted_distraction", w.AcceptedDistraction)
	if err != nil {
		return TurnFlags{}, err
	}

	conduct := Conduct(strings.ToLower(strings.TrimSpace(w.Conduct)))
	if !conduct.Valid() {
		return TurnFlags{}, fmt.Errorf("invalid conduct %q", w.Conduct)
	}

	return TurnFlags{
		NewStrongArgument:   newStrong,
		RepeatedArgument:    repeated,
		Conduct:             conduct,
		AskedAmountPresent:  asked,
		AcceptedDistraction: accepted,
	}, nil
}

func parseYN(field, v string) (bool, error) {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "Y":
		return true, nil
	case "N":
		return false, nil
	}
	return false, fmt.Errorf("field %s: expected Y or N, got %q", field, v)
}

// #endregion strict-decode
