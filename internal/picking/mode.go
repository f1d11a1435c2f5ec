// Package picking resolves pointer input against the active layer and drives
// drawing, selection and transform gestures.
package picking

// Tool is the interaction mode chosen by the user. Exactly one is active.
type Tool int

const (
	ToolDraw Tool = iota
	ToolTranslate
	ToolRotateScale
)

func (t Tool) String() string {
	switch t {
	case ToolDraw:
		return "draw"
	case ToolTranslate:
		return "translate"
	case ToolRotateScale:
		return "rotate-scale"
	}
	return "unknown"
}

// ParseTool maps a tool name back to its value.
func ParseTool(s string) (Tool, bool) {
	for _, t := range []Tool{ToolDraw, ToolTranslate, ToolRotateScale} {
		if t.String() == s {
			return t, true
		}
	}
	return ToolDraw, false
}

// State is the interaction state machine.
type State int

const (
	StateNeutral State = iota
	StateDrawing
	StateTranslating
	StateRotatingScaling
)

func (s State) String() string {
	switch s {
	case StateNeutral:
		return "neutral"
	case StateDrawing:
		return "drawing"
	case StateTranslating:
		return "translating"
	case StateRotatingScaling:
		return "rotating-scaling"
	}
	return "unknown"
}

// Outcome describes what a primary click did.
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeSelected
	OutcomeAppended
	OutcomeCommitted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSelected:
		return "selected"
	case OutcomeAppended:
		return "appended"
	case OutcomeCommitted:
		return "committed"
	}
	return "ignored"
}
