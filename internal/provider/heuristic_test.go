package provider

import (
	"context"
	"reflect"
	"testing"

	"github.com/ppiankov/truthlens/internal/model"
	"github.com/ppiankov/truthlens/internal/normalize"
)

func defaultHeuristic() *Heuristic {
	return NewHeuristic(model.HeuristicConfig{})
}

func TestHeuristic_Analyze(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantLabel string
	}{
		{
			name:      "suspicious wins",
			text:      "SHOCKING secret doctors hate, click here for the miracle cure",
			wantLabel: "Fake",
		},
		{
			name:      "hedging wins",
			text:      "The minister allegedly resigned, sources say the decision is disputed",
			wantLabel: "Biased",
		},
		{
			name:      "credible wins",
			text:      "According to a study shows published in a peer-reviewed journal",
			wantLabel: "Trusted",
		},
		{
			name:      "no signals defaults to biased",
			text:      "The quarterly report was released on Tuesday morning",
			wantLabel: "Biased",
		},
		{
			name:      "suspicious ties beat hedging",
			text:      "shocking news allegedly happened",
			wantLabel: "Fake",
		},
		{
			name:      "hedging ties beat credible",
			text:      "reportedly according to officials",
			wantLabel: "Biased",
		},
	}

	h := defaultHeuristic()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := h.Analyze(context.Background(), Input{Text: tt.text})
			if err != nil {
				t.Fatalf("Analyze failed: %v", err)
			}
			if c.Label != tt.wantLabel {
				t.Errorf("label = %q, want %q", c.Label, tt.wantLabel)
			}

			conf, ok := c.Confidence.(float64)
			if !ok {
				t.Fatalf("confidence has type %T", c.Confidence)
			}
			if conf < 0.6 || conf > 0.95 {
				t.Errorf("confidence %v outside [0.6, 0.95]", conf)
			}
		})
	}
}

func TestHeuristic_Deterministic(t *testing.T) {
	h := defaultHeuristic()
	in := Input{Title: "Shocking discovery", Text: "They don't want you to know this secret, allegedly confirmed by officials"}

	first, err := h.Analyze(context.Background(), in)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := h.Analyze(context.Background(), in)
		if err != nil {
			t.Fatalf("Analyze failed: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %+v vs %+v", i, first, again)
		}
	}
}

func TestHeuristic_KeywordsAndRedFlags(t *testing.T) {
	h := defaultHeuristic()
	c, err := h.Analyze(context.Background(), Input{Text: "shocking banned secret, allegedly according to nobody"})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	wantRedFlags := []string{"shocking", "secret", "banned"}
	if !reflect.DeepEqual(c.RedFlags, wantRedFlags) {
		t.Errorf("red flags = %v, want %v", c.RedFlags, wantRedFlags)
	}

	// All matched terms across the three lists surface as keywords.
	if len(c.Keywords) != 5 {
		t.Errorf("keywords = %v, want 5 entries", c.Keywords)
	}
}

func TestHeuristic_ConfidenceScaling(t *testing.T) {
	h := defaultHeuristic()

	// Pure suspicious signal: full bonus, capped below max.
	c, err := h.Analyze(context.Background(), Input{Text: "shocking unbelievable exposed"})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	conf := c.Confidence.(float64)
	if conf != 0.95 {
		t.Errorf("pure-signal confidence = %v, want 0.95 (0.7 + 0.35 capped)", conf)
	}

	// Zero signal: Biased base confidence only.
	c, err = h.Analyze(context.Background(), Input{Text: "an unremarkable municipal announcement"})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if conf := c.Confidence.(float64); conf != 0.6 {
		t.Errorf("zero-signal confidence = %v, want 0.6", conf)
	}
}

func TestHeuristic_PerLabelBases(t *testing.T) {
	h := defaultHeuristic()

	// One suspicious and one hedging match: Fake wins the tie and the
	// half share of the bonus sits on the higher Fake base.
	c, err := h.Analyze(context.Background(), Input{Text: "a shocking claim, allegedly"})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if conf := c.Confidence.(float64); conf != 0.7+0.5*0.35 {
		t.Errorf("fake confidence = %v, want %v", conf, 0.7+0.5*0.35)
	}

	// One hedging and one credible match: Biased wins the tie from the
	// lower Biased base.
	c, err = h.Analyze(context.Background(), Input{Text: "reportedly backed by a peer-reviewed journal"})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if c.Label != "Biased" {
		t.Fatalf("label = %q, want Biased", c.Label)
	}
	if conf := c.Confidence.(float64); conf != 0.6+0.5*0.35 {
		t.Errorf("biased confidence = %v, want %v", conf, 0.6+0.5*0.35)
	}

	// Overrides replace the defaults per label.
	custom := NewHeuristic(model.HeuristicConfig{BiasedBase: 0.4})
	c, err = custom.Analyze(context.Background(), Input{Text: "an unremarkable municipal announcement"})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if conf := c.Confidence.(float64); conf != 0.4 {
		t.Errorf("custom biased base = %v, want 0.4", conf)
	}
}

func TestHeuristic_NormalizesCleanly(t *testing.T) {
	h := defaultHeuristic()
	c, err := h.Analyze(context.Background(), Input{Text: "scientists discover a breakthrough, reportedly confirmed by a study shows"})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	res := normalize.Normalize(c)
	if res.Label != model.LabelFake && res.Label != model.LabelBiased && res.Label != model.LabelTrusted {
		t.Errorf("unexpected label %q", res.Label)
	}
	sum := res.Probabilities.Fake + res.Probabilities.Biased + res.Probabilities.Trusted
	if sum < 0.99 || sum > 1.01 {
		t.Errorf("probabilities sum to %v", sum)
	}
}
