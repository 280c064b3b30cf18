package pad

import (
	"testing"
	"time"

	"DigitPad/internal/effects"
	"DigitPad/internal/state"

	"github.com/stretchr/testify/assert"
)

func TestRenderBlankPad(t *testing.T) {
	got := Render(Snapshot{Pad: state.PadState{BrushSize: 15}})
	assert.Equal(t, View{
		OverlayVisible: true,
		BrushSize:      15,
		BrushLabel:     "15px",
		Results: ResultsView{
			Phase:   ResultEmpty,
			Title:   "No Prediction Yet",
			Message: `Draw a digit on the canvas and click "Predict Digit" to see the AI's prediction`,
		},
	}, got)
}

func TestRenderLoading(t *testing.T) {
	got := Render(Snapshot{
		Pad:     state.PadState{HasDrawn: true, BrushSize: 15},
		Results: Results{Phase: ResultLoading},
	})
	assert.False(t, got.OverlayVisible)
	assert.Equal(t, ResultsView{Phase: ResultLoading, Message: "Analyzing your digit..."}, got.Results)
}

func TestRenderSuccess(t *testing.T) {
	got := Render(Snapshot{
		Pad:     state.PadState{HasDrawn: true, BrushSize: 20},
		Results: Results{Phase: ResultSuccess, Digit: "7", Confidence: 93.25},
	})
	assert.Equal(t, ResultsView{
		Phase:          ResultSuccess,
		Title:          "Predicted Digit",
		Digit:          "7",
		ConfidenceText: "93.3%",
		BarPercent:     93.25,
	}, got.Results)
	assert.Equal(t, "20px", got.BrushLabel)
}

func TestRenderClampsBar(t *testing.T) {
	over := Render(Snapshot{Results: Results{Phase: ResultSuccess, Digit: "1", Confidence: 140}})
	assert.Equal(t, 100.0, over.Results.BarPercent)
	assert.Equal(t, "140.0%", over.Results.ConfidenceText)

	under := Render(Snapshot{Results: Results{Phase: ResultSuccess, Digit: "1", Confidence: -5}})
	assert.Equal(t, 0.0, under.Results.BarPercent)
}

func TestRenderFailure(t *testing.T) {
	got := Render(Snapshot{Results: Results{Phase: ResultFailed}})
	assert.Equal(t, ResultsView{
		Phase:   ResultFailed,
		Title:   "Prediction Failed",
		Message: "There was an error processing your digit. Please try again.",
	}, got.Results)
}

func TestRenderToasts(t *testing.T) {
	now := time.Unix(100, 0)
	got := Render(Snapshot{
		Now: now,
		Toasts: []effects.Toast{
			{ID: "old", Message: "gone", Created: now.Add(-time.Minute)},
			{ID: "leaving", Message: "bye", Level: effects.LevelError, Created: now.Add(-3100 * time.Millisecond)},
			{ID: "new", Message: "hi", Level: effects.LevelWarning, Created: now},
		},
	})
	assert.Equal(t, []ToastView{
		{ID: "leaving", Message: "bye", Level: effects.LevelError, Phase: effects.PhaseExit},
		{ID: "new", Message: "hi", Level: effects.LevelWarning, Phase: effects.PhaseEnter},
	}, got.Toasts)
}

func TestFormatConfidence(t *testing.T) {
	tests := map[float64]string{
		93.25: "93.3%",
		50:    "50.0%",
		0:     "0.0%",
		99.99: "100.0%",
		12.34: "12.3%",
		0.05:  "0.1%",
		0.15:  "0.1%",
		0.35:  "0.3%",
		0.85:  "0.8%",
		1.45:  "1.4%",
		0.25:  "0.3%",
		2.75:  "2.8%",
		-0.25: "-0.3%",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatConfidence(in), "input %v", in)
	}
}

func TestResultPhaseString(t *testing.T) {
	assert.Equal(t, "empty", ResultEmpty.String())
	assert.Equal(t, "loading", ResultLoading.String())
	assert.Equal(t, "success", ResultSuccess.String())
	assert.Equal(t, "failed", ResultFailed.String())
}
