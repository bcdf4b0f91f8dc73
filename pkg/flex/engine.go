package flex

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flexline/pkg/errors"
)

// Engine lays out one container. It owns the derived line list, the
// reordering index and the measure cache; the items and their content stay
// owned by the caller.
//
// An Engine is not safe for concurrent use. Independent containers should
// use independent Engines.
type Engine struct {
	cfg        Config
	horizontal bool
	padding    Edges
	deco       Decoration
	logger     *log.Logger

	items []Item
	order orderIndex
	views []view

	flexLines   []*FlexLine
	lines       []Line
	indexToLine []int

	cache *measureCache

	width, height Spec
	result        Result
}

// view is the engine's per-item state, held in reordered order.
type view struct {
	item     *Item
	index    int
	margin   Edges
	width    int
	height   int
	baseline int
	state    State
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for debug traces.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithoutMeasureCache makes every measurement call the item's content.
func WithoutMeasureCache() Option {
	return func(e *Engine) { e.cache.off = true }
}

// New returns an Engine for cfg. It fails with INVALID_CONFIGURATION when
// cfg does not validate.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:        cfg,
		horizontal: cfg.Direction.Horizontal(),
		padding:    cfg.Padding.resolve(cfg.LayoutDirection == RTL),
		deco:       cfg.Decoration,
		logger:     log.New(io.Discard),
		cache:      newMeasureCache(),
	}
	if e.deco == nil {
		e.deco = noDecoration{}
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the container configuration.
func (e *Engine) Config() Config { return e.cfg }

// SetItems validates items and installs them for the next pass. The
// reordering index is rebuilt and the measure cache invalidated only when
// the item count or some Order changed.
func (e *Engine) SetItems(items []Item) error {
	for i := range items {
		if err := items[i].Validate(); err != nil {
			return err
		}
	}
	if e.OrderChanged(items) {
		e.order = reorder(items)
		e.cache.invalidate(len(items))
		e.logger.Debug("reordered items", "count", len(items))
	}
	e.items = items
	rtl := e.cfg.LayoutDirection == RTL
	if cap(e.views) < len(items) {
		e.views = make([]view, len(items))
	}
	e.views = e.views[:len(items)]
	for pos, idx := range e.order.perm {
		it := &items[idx]
		e.views[pos] = view{item: it, index: idx, margin: it.Margin.resolve(rtl), baseline: -1}
	}
	if cap(e.indexToLine) < len(items) {
		e.indexToLine = make([]int, len(items))
	}
	e.indexToLine = e.indexToLine[:len(items)]
	return nil
}

// OrderChanged reports whether items would need a new reordering index:
// the count differs or some item's Order differs from the cached value.
func (e *Engine) OrderChanged(items []Item) bool {
	return e.order.changed(items)
}

// Reordered returns the original index of the item at reordered position i.
func (e *Engine) Reordered(i int) int { return e.order.perm[i] }

// InvalidateCache drops every cached measurement.
func (e *Engine) InvalidateCache() { e.cache.invalidate(len(e.items)) }

// CacheStats reports measure cache hits and misses since the last
// invalidation.
func (e *Engine) CacheStats() CacheStats {
	return CacheStats{Hits: e.cache.hits, Misses: e.cache.misses}
}

// FlexLines returns the content lines of the last pass.
func (e *Engine) FlexLines() []*FlexLine { return e.flexLines }

// Lines returns the resolved lines, including spacers, of the last pass.
func (e *Engine) Lines() []Line {
	if e.lines == nil {
		lines := make([]Line, len(e.flexLines))
		for i, l := range e.flexLines {
			lines[i] = l
		}
		return lines
	}
	return e.lines
}

// ItemSize returns the measured size of the item at original index i.
func (e *Engine) ItemSize(i int) (width, height int) {
	for pos := range e.views {
		if e.views[pos].index == i {
			return e.views[pos].width, e.views[pos].height
		}
	}
	return 0, 0
}

// Result is the outcome of a full measurement pass.
type Result struct {
	// Width and Height are the container's measured size.
	Width, Height int
	// State combines item states with the container's own too-small flags.
	State State
	// Lines are the resolved lines including spacers.
	Lines []Line
}

// Measure runs a full pass: reorder, build lines, resolve the main axis,
// resolve the cross axis and stretch. The container's measured size is
// derived from the content and clamped by the specs.
func (e *Engine) Measure(items []Item, width, height Spec) (*Result, error) {
	if err := validSpec("width", width); err != nil {
		return nil, err
	}
	if err := validSpec("height", height); err != nil {
		return nil, err
	}
	if err := e.SetItems(items); err != nil {
		return nil, err
	}
	e.cache.invalidate(len(items))
	e.width, e.height = width, height
	main, cross := e.mainCross(width, height)

	_, state := e.BuildLines(main, cross)
	e.ResolveMainAxis(main, cross, 0)
	lines := e.ResolveCrossAxis(cross)
	e.StretchItems()

	res := Result{Lines: lines}
	res.Width, res.Height, res.State = e.containerSize(width, height, state)
	e.result = res

	e.logger.Debug("measured container",
		"items", len(items),
		"lines", len(e.flexLines),
		"width", res.Width,
		"height", res.Height,
		"cache_hits", e.cache.hits,
		"cache_misses", e.cache.misses)
	return &res, nil
}

// Layout places items inside the size computed by the last Measure.
func (e *Engine) Layout() []Frame {
	return e.PlaceItems(e.result.Width, e.result.Height)
}

// Compute measures and places items in one call.
func Compute(cfg Config, items []Item, width, height Spec, opts ...Option) (*Result, []Frame, error) {
	e, err := New(cfg, opts...)
	if err != nil {
		return nil, nil, err
	}
	res, err := e.Measure(items, width, height)
	if err != nil {
		return nil, nil, err
	}
	return res, e.Layout(), nil
}

func validSpec(axis string, s Spec) error {
	if s.Mode > AtMost {
		return errors.New(errors.ErrCodeInvalidConfiguration, "%s: unknown measure mode %d", axis, s.Mode)
	}
	if s.Size < 0 {
		return errors.New(errors.ErrCodeInvalidConfiguration, "%s: negative size %d", axis, s.Size)
	}
	return nil
}

// containerSize derives the measured container size from the lines.
func (e *Engine) containerSize(width, height Spec, state State) (int, int, State) {
	largestMain := e.largestMainSize()
	sumCross := e.sumCrossSize() + e.crossPaddingSum()
	wantW, wantH := sumCross, largestMain
	if e.horizontal {
		wantW, wantH = largestMain, sumCross
	}
	w, tooSmallW := containerAxis(width, wantW)
	h, tooSmallH := containerAxis(height, wantH)
	if tooSmallW {
		state |= StateWidthTooSmall
	}
	if tooSmallH {
		state |= StateHeightTooSmall
	}
	return w, h, state
}

func containerAxis(s Spec, content int) (int, bool) {
	switch s.Mode {
	case Exact:
		return s.Size, s.Size < content
	case AtMost:
		if s.Size < content {
			return s.Size, true
		}
	}
	return content, false
}

func (e *Engine) largestMainSize() int {
	largest := math.MinInt
	for _, l := range e.flexLines {
		largest = max(largest, l.MainSize)
	}
	if largest == math.MinInt {
		return e.mainPaddingSum()
	}
	return largest
}

// sumCrossSize adds up all resolved lines plus cross-axis decorations.
func (e *Engine) sumCrossSize() int {
	sum := 0
	leading := true
	for _, l := range e.Lines() {
		sum += l.CrossExtent()
		if _, ok := l.(*FlexLine); ok {
			sum += e.deco.LineBefore(leading)
			leading = false
		}
	}
	if !leading {
		sum += e.deco.LinesEnd()
	}
	return sum
}

// --- axis helpers ---

func (e *Engine) mainCross(width, height Spec) (main, cross Spec) {
	if e.horizontal {
		return width, height
	}
	return height, width
}

func (e *Engine) widthHeight(main, cross Spec) (width, height Spec) {
	if e.horizontal {
		return main, cross
	}
	return cross, main
}

func (e *Engine) mainPaddingSum() int {
	if e.horizontal {
		return e.padding.Left + e.padding.Right
	}
	return e.padding.Top + e.padding.Bottom
}

func (e *Engine) crossPaddingSum() int {
	if e.horizontal {
		return e.padding.Top + e.padding.Bottom
	}
	return e.padding.Left + e.padding.Right
}

func (e *Engine) mainSize(v *view) int {
	if e.horizontal {
		return v.width
	}
	return v.height
}

func (e *Engine) crossSize(v *view) int {
	if e.horizontal {
		return v.height
	}
	return v.width
}

func (e *Engine) mainMargins(v *view) int {
	if e.horizontal {
		return v.margin.Left + v.margin.Right
	}
	return v.margin.Top + v.margin.Bottom
}

func (e *Engine) crossMargins(v *view) int {
	if e.horizontal {
		return v.margin.Top + v.margin.Bottom
	}
	return v.margin.Left + v.margin.Right
}

// requested returns the item's requested main and cross sizes.
func (e *Engine) requested(it *Item) (main, cross int) {
	if e.horizontal {
		return it.Width, it.Height
	}
	return it.Height, it.Width
}

func (e *Engine) minMax(it *Item) (minMain, maxMain, minCross, maxCross int) {
	if e.horizontal {
		return it.MinWidth, it.maxWidth(), it.MinHeight, it.maxHeight()
	}
	return it.MinHeight, it.maxHeight(), it.MinWidth, it.maxWidth()
}

func (e *Engine) alignOf(v *view) AlignItems {
	return v.item.AlignSelf.Resolve(e.cfg.AlignItems)
}

// --- measurement ---

// childSpec derives an item's constraint from the container's spec, the
// space already used on that axis and the item's requested size.
func childSpec(parent Spec, used, requested int) Spec {
	size := max(0, parent.Size-used)
	if requested >= 0 {
		return ExactSpec(requested)
	}
	switch parent.Mode {
	case Exact:
		if requested == SizeMatchParent {
			return ExactSpec(size)
		}
		return AtMostSpec(size)
	case AtMost:
		return AtMostSpec(size)
	}
	return Spec{Mode: Unspecified, Size: size}
}

// measure asks the item's content for its size under (w, h), going through
// the cache, and records the resolved size on v.
func (e *Engine) measure(v *view, w, h Spec) {
	m, ok := e.cache.lookup(v.index, w, h)
	if !ok {
		if v.item.Content != nil {
			m = v.item.Content.Measure(w, h)
		} else {
			m = Measured{Baseline: -1}
		}
		e.cache.store(v.index, w, h, m)
	}
	var tooW, tooH bool
	v.width, tooW = w.resolve(m.Width)
	v.height, tooH = h.resolve(m.Height)
	v.state = m.State
	if tooW {
		v.state |= StateWidthTooSmall
	}
	if tooH {
		v.state |= StateHeightTooSmall
	}
	v.baseline = m.Baseline
	if v.baseline < 0 || v.baseline > v.height {
		v.baseline = v.height
	}
}

// clampToBounds re-measures v at exact sizes when its measured size falls
// outside its min/max bounds.
func (e *Engine) clampToBounds(v *view) {
	it := v.item
	w, h := v.width, v.height
	needs := false
	if w < it.MinWidth {
		w, needs = it.MinWidth, true
	} else if w > it.maxWidth() {
		w, needs = it.maxWidth(), true
	}
	if h < it.MinHeight {
		h, needs = it.MinHeight, true
	} else if h > it.maxHeight() {
		h, needs = it.maxHeight(), true
	}
	if needs {
		e.measure(v, ExactSpec(w), ExactSpec(h))
	}
}

// crossSpecFor returns the cross-axis spec used when re-measuring v after
// its main size changed: derived from the container's cross spec and the
// cross space of earlier lines, then clamped to the item's cross bounds.
func (e *Engine) crossSpecFor(v *view, cross Spec, usedBefore int) Spec {
	_, reqCross := e.requested(v.item)
	s := childSpec(cross, e.crossPaddingSum()+e.crossMargins(v)+usedBefore, reqCross)
	_, _, minCross, maxCross := e.minMax(v.item)
	if s.Size > maxCross {
		s.Size = maxCross
	} else if s.Size < minCross {
		s.Size = minCross
	}
	return s
}
