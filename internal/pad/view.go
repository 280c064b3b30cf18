package pad

import (
	"math"
	"strconv"
	"time"

	"DigitPad/internal/effects"
	"DigitPad/internal/state"
)

// ResultPhase is what the results panel is showing.
type ResultPhase int

const (
	ResultEmpty ResultPhase = iota
	ResultLoading
	ResultSuccess
	ResultFailed
)

func (p ResultPhase) String() string {
	switch p {
	case ResultLoading:
		return "loading"
	case ResultSuccess:
		return "success"
	case ResultFailed:
		return "failed"
	default:
		return "empty"
	}
}

// Results is the outcome of the latest prediction cycle.
type Results struct {
	Phase      ResultPhase
	Digit      string
	Confidence float64
}

// Snapshot is the state Render works from.
type Snapshot struct {
	Pad     state.PadState
	Results Results
	Toasts  []effects.Toast
	Now     time.Time
}

// View is everything visible on screen apart from the raster itself.
type View struct {
	OverlayVisible bool
	BrushSize      int
	BrushLabel     string
	Results        ResultsView
	Toasts         []ToastView
}

type ResultsView struct {
	Phase          ResultPhase
	Title          string
	Message        string
	Digit          string
	ConfidenceText string
	BarPercent     float64 // width the confidence bar animates to, 0..100
}

type ToastView struct {
	ID      string
	Message string
	Level   effects.Level
	Phase   effects.Phase
}

const (
	titleEmpty    = "No Prediction Yet"
	messageEmpty  = `Draw a digit on the canvas and click "Predict Digit" to see the AI's prediction`
	messageBusy   = "Analyzing your digit..."
	titleSuccess  = "Predicted Digit"
	titleFailed   = "Prediction Failed"
	messageFailed = "There was an error processing your digit. Please try again."

	OverlayText = "Draw a digit here"
)

// Render maps a snapshot to what the UI should show. It has no side effects.
func Render(s Snapshot) View {
	v := View{
		OverlayVisible: !s.Pad.HasDrawn,
		BrushSize:      s.Pad.BrushSize,
		BrushLabel:     BrushLabel(s.Pad.BrushSize),
		Results:        renderResults(s.Results),
	}
	for _, t := range s.Toasts {
		phase := t.Phase(s.Now)
		if phase == effects.PhaseGone {
			continue
		}
		v.Toasts = append(v.Toasts, ToastView{
			ID:      t.ID,
			Message: t.Message,
			Level:   t.Level,
			Phase:   phase,
		})
	}
	return v
}

func renderResults(r Results) ResultsView {
	switch r.Phase {
	case ResultLoading:
		return ResultsView{Phase: ResultLoading, Message: messageBusy}
	case ResultSuccess:
		return ResultsView{
			Phase:          ResultSuccess,
			Title:          titleSuccess,
			Digit:          r.Digit,
			ConfidenceText: FormatConfidence(r.Confidence),
			BarPercent:     math.Max(0, math.Min(100, r.Confidence)),
		}
	case ResultFailed:
		return ResultsView{Phase: ResultFailed, Title: titleFailed, Message: messageFailed}
	default:
		return ResultsView{Phase: ResultEmpty, Title: titleEmpty, Message: messageEmpty}
	}
}

func BrushLabel(size int) string { return strconv.Itoa(size) + "px" }

// FormatConfidence renders a percentage with one decimal place. The
// stored binary value decides the rounding, so 0.15 (stored just below
// the tie) gives "0.1%". Exact ties round away from zero: 93.25 -> "93.3%".
func FormatConfidence(pct float64) string {
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		pct = 0
	}
	// A double lies exactly halfway between two tenths only when it is an
	// odd number of quarters; scaling by 4 is exact.
	if q := pct * 4; q == math.Trunc(q) && math.Mod(q, 2) != 0 {
		pct = math.Copysign(math.Ceil(math.Abs(pct)*10)/10, pct)
	}
	return strconv.FormatFloat(pct, 'f', 1, 64) + "%"
}
