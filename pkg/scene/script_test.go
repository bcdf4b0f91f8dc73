package scene

import (
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/flexline/pkg/flex"
)

const measureScript = `
function measure(width, height) {
	var w = 120;
	if (width.mode !== "unspecified") {
		w = Math.min(w, width.size);
	}
	return { width: w, height: 2400 / w, baseline: 12 };
}
`

func TestScriptMeasure(t *testing.T) {
	s, err := NewScript(measureScript, ScriptOptions{})
	if err != nil {
		t.Fatalf("NewScript() error = %v", err)
	}
	tests := []struct {
		width flex.Spec
		want  flex.Measured
	}{
		{flex.UnspecifiedSpec(), flex.Measured{Width: 120, Height: 20, Baseline: 12}},
		{flex.AtMostSpec(60), flex.Measured{Width: 60, Height: 40, Baseline: 12}},
		{flex.ExactSpec(200), flex.Measured{Width: 120, Height: 20, Baseline: 12}},
	}
	for _, tt := range tests {
		if got := s.Measure(tt.width, flex.UnspecifiedSpec()); got != tt.want {
			t.Errorf("Measure(%v) = %+v, want %+v", tt.width, got, tt.want)
		}
	}
	if s.Calls() != 3 || s.Err() != nil {
		t.Errorf("calls = %d, err = %v", s.Calls(), s.Err())
	}
}

func TestScriptDefaults(t *testing.T) {
	s, err := NewScript(`function measure() { return { width: 5 }; }`, ScriptOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Measure(flex.UnspecifiedSpec(), flex.UnspecifiedSpec()); got != (flex.Measured{Width: 5, Baseline: -1}) {
		t.Errorf("Measure() = %+v", got)
	}
}

func TestNewScriptErrors(t *testing.T) {
	tests := map[string]string{
		"syntax":      "function measure( {",
		"no function": "var measure = 3;",
		"missing":     "function size() {}",
		"top level":   "throw new Error('init');",
	}
	for name, src := range tests {
		if _, err := NewScript(src, ScriptOptions{}); err == nil {
			t.Errorf("%s: NewScript() succeeded", name)
		}
	}
}

func TestScriptMeasureErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"throws", `function measure() { throw new Error("boom"); }`, "boom"},
		{"no result", `function measure() {}`, "no result"},
		{"negative", `function measure() { return { width: -1, height: 3 }; }`, "negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewScript(tt.src, ScriptOptions{})
			if err != nil {
				t.Fatal(err)
			}
			if got := s.Measure(flex.ExactSpec(10), flex.ExactSpec(10)); got != (flex.Measured{Baseline: -1}) {
				t.Errorf("Measure() = %+v, want empty", got)
			}
			if s.Err() == nil || !strings.Contains(s.Err().Error(), tt.want) {
				t.Errorf("Err() = %v, want mention of %q", s.Err(), tt.want)
			}

			// The first failure sticks and the script is not run again.
			s.Measure(flex.ExactSpec(10), flex.ExactSpec(10))
			if s.Calls() != 1 {
				t.Errorf("calls = %d, want 1", s.Calls())
			}
		})
	}
}

func TestScriptTimeout(t *testing.T) {
	s, err := NewScript(`function measure() { for (;;) {} }`, ScriptOptions{Timeout: 10 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	done := make(chan struct{})
	go func() {
		s.Measure(flex.UnspecifiedSpec(), flex.UnspecifiedSpec())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("measure was not interrupted")
	}
	if s.Err() == nil || !strings.Contains(s.Err().Error(), "timed out") {
		t.Errorf("Err() = %v, want timeout", s.Err())
	}
}

func TestScriptIgnoresStaleInterrupt(t *testing.T) {
	s, err := NewScript(measureScript, ScriptOptions{})
	if err != nil {
		t.Fatal(err)
	}
	s.vm.Interrupt("measure timed out")
	want := flex.Measured{Width: 120, Height: 20, Baseline: 12}
	if got := s.Measure(flex.UnspecifiedSpec(), flex.UnspecifiedSpec()); got != want {
		t.Errorf("Measure() = %+v, want %+v", got, want)
	}
	if s.Err() != nil {
		t.Errorf("Err() = %v", s.Err())
	}
}

func TestScriptTightTimeoutRecovers(t *testing.T) {
	// Timers that fire right as a call returns must not leak an interrupt
	// into the next call.
	for i := 0; i < 200; i++ {
		s, err := NewScript(measureScript, ScriptOptions{Timeout: time.Microsecond})
		if err != nil {
			t.Fatal(err)
		}
		s.Measure(flex.UnspecifiedSpec(), flex.UnspecifiedSpec())
		if s.Err() != nil {
			continue
		}
		s.timeout = time.Minute
		if got := s.Measure(flex.UnspecifiedSpec(), flex.UnspecifiedSpec()); got.Width != 120 || s.Err() != nil {
			t.Fatalf("run %d: second Measure() = %+v, err = %v", i, got, s.Err())
		}
	}
}
