package scene

import (
	"fmt"
	"time"

	"github.com/dop251/goja"

	"github.com/matzehuels/flexline/pkg/flex"
)

// MeasureFunction is the name a script must define.
const MeasureFunction = "measure"

// DefaultScriptTimeout bounds a single measure call.
const DefaultScriptTimeout = 100 * time.Millisecond

// ScriptOptions configure script content.
type ScriptOptions struct {
	// Timeout interrupts a measure call that runs longer; zero means
	// DefaultScriptTimeout.
	Timeout time.Duration
}

// Script is content measured by a JavaScript function:
//
//	function measure(width, height) {
//	    // width.mode is "exact", "at-most" or "unspecified"
//	    return { width: Math.min(width.size, 120), height: 40, baseline: 30 };
//	}
//
// Missing result fields count as 0 (baseline: none). The runtime is owned
// by the Script, so a Script must not be measured concurrently.
type Script struct {
	vm      *goja.Runtime
	fn      goja.Callable
	timeout time.Duration
	calls   int
	err     error
}

// NewScript compiles src and looks up its measure function.
func NewScript(src string, opts ScriptOptions) (*Script, error) {
	vm := goja.New()
	if _, err := vm.RunString(src); err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	fn, ok := goja.AssertFunction(vm.Get(MeasureFunction))
	if !ok {
		return nil, fmt.Errorf("script does not define function %s(width, height)", MeasureFunction)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultScriptTimeout
	}
	return &Script{vm: vm, fn: fn, timeout: timeout}, nil
}

// Err returns the first error raised while measuring.
func (s *Script) Err() error { return s.err }

// Calls reports how often the script has been run.
func (s *Script) Calls() int { return s.calls }

// Measure implements flex.Measurable. After the first failure the script
// is no longer run and measures as 0x0.
func (s *Script) Measure(width, height flex.Spec) flex.Measured {
	empty := flex.Measured{Baseline: -1}
	if s.err != nil {
		return empty
	}
	s.calls++

	// An interrupt left over from an earlier call must not fail this one.
	s.vm.ClearInterrupt()
	fired := make(chan struct{})
	timer := time.AfterFunc(s.timeout, func() {
		s.vm.Interrupt("measure timed out")
		close(fired)
	})
	res, err := s.fn(goja.Undefined(), s.vm.ToValue(specObject(width)), s.vm.ToValue(specObject(height)))
	if !timer.Stop() {
		<-fired
	}
	s.vm.ClearInterrupt()
	if err != nil {
		s.err = fmt.Errorf("measure(%s, %s): %w", width, height, err)
		return empty
	}
	if res == nil || goja.IsUndefined(res) || goja.IsNull(res) {
		s.err = fmt.Errorf("measure(%s, %s) returned no result", width, height)
		return empty
	}

	obj := res.ToObject(s.vm)
	m := flex.Measured{
		Width:    intField(obj, "width", 0),
		Height:   intField(obj, "height", 0),
		Baseline: intField(obj, "baseline", -1),
	}
	if m.Width < 0 || m.Height < 0 {
		s.err = fmt.Errorf("measure(%s, %s) returned negative size %dx%d", width, height, m.Width, m.Height)
		return empty
	}
	return m
}

func specObject(s flex.Spec) map[string]any {
	return map[string]any{"mode": modeName(s.Mode), "size": s.Size}
}

func modeName(m flex.Mode) string {
	switch m {
	case flex.Exact:
		return ModeExact
	case flex.AtMost:
		return ModeAtMost
	}
	return ModeUnspecified
}

func intField(obj *goja.Object, name string, def int) int {
	v := obj.Get(name)
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return def
	}
	return int(v.ToInteger())
}
