package flex

import "math"

// ResolveCrossAxis finalises line cross sizes and returns the resolved
// lines.
//
// Lines holding baseline-aligned items first grow to fit the baseline
// shifts (row directions only). Then, when the cross spec is Exact, the
// free cross space is handed out according to AlignContent: a single line
// simply takes the full inner cross size, several lines are stretched or
// separated by Spacer entries. Other cross modes leave the lines as built.
func (e *Engine) ResolveCrossAxis(cross Spec) []Line {
	e.alignBaselines()

	lines := make([]Line, 0, len(e.flexLines)+2)
	for _, l := range e.flexLines {
		lines = append(lines, l)
	}
	if cross.Mode == Exact && len(e.flexLines) > 0 {
		lines = e.alignContent(cross.Size, lines)
	}
	e.lines = lines
	return lines
}

func (e *Engine) alignContent(size int, lines []Line) []Line {
	n := len(e.flexLines)
	if n == 1 {
		e.flexLines[0].CrossSize = size - e.crossPaddingSum()
		return lines
	}
	extra := size - e.contentCross() - e.crossPaddingSum()

	switch e.cfg.AlignContent {
	case AlignContentStretch:
		if extra <= 0 {
			return lines
		}
		unit := float64(extra) / float64(n)
		var roundErr float64
		for i, l := range e.flexLines {
			f := float64(l.CrossSize) + unit
			if i == n-1 {
				f += roundErr
				roundErr = 0
			}
			c := int(math.Round(f))
			roundErr += f - float64(c)
			if roundErr > 1 {
				c++
				roundErr--
			} else if roundErr < -1 {
				c--
				roundErr++
			}
			l.CrossSize = c
		}
		return lines

	case AlignContentSpaceAround:
		if extra <= 0 {
			// Overflowing content is centred rather than clipped at the start.
			return e.centerLines(extra)
		}
		// Spacer k spans the rounded boundaries k and k+1, so the gaps add
		// up to extra exactly.
		gaps := 2 * n
		boundary := func(k int) int {
			return int(math.Round(float64(k) * float64(extra) / float64(gaps)))
		}
		out := make([]Line, 0, 3*n)
		for i, l := range e.flexLines {
			before := Spacer{Size: boundary(2*i+1) - boundary(2*i)}
			after := Spacer{Size: boundary(2*i+2) - boundary(2*i+1)}
			out = append(out, before, l, after)
		}
		return out

	case AlignContentCenter:
		return e.centerLines(extra)

	case AlignContentSpaceBetween:
		if extra <= 0 {
			return lines
		}
		gap := float64(extra) / float64(n-1)
		var roundErr float64
		out := make([]Line, 0, 2*n-1)
		for i, l := range e.flexLines {
			out = append(out, l)
			if i == n-1 {
				break
			}
			f := gap
			if i == n-2 {
				f += roundErr
				roundErr = 0
			}
			s := int(math.Round(f))
			roundErr += gap - float64(s)
			if roundErr > 1 {
				s++
				roundErr--
			} else if roundErr < -1 {
				s--
				roundErr++
			}
			out = append(out, Spacer{Size: s})
		}
		return out

	case AlignContentFlexEnd:
		return append([]Line{Spacer{Size: extra}}, lines...)
	}
	return lines
}

func (e *Engine) centerLines(extra int) []Line {
	gap := Spacer{Size: extra / 2}
	out := make([]Line, 0, len(e.flexLines)+2)
	out = append(out, gap)
	for _, l := range e.flexLines {
		out = append(out, l)
	}
	return append(out, gap)
}

// contentCross sums content line cross sizes and line decorations.
func (e *Engine) contentCross() int {
	sum := 0
	for i, l := range e.flexLines {
		sum += l.CrossSize + e.deco.LineBefore(i == 0)
	}
	if len(e.flexLines) > 0 {
		sum += e.deco.LinesEnd()
	}
	return sum
}

// alignBaselines recomputes MaxBaseline from the current measurements and
// grows each line so that its baseline-aligned items fit once shifted.
func (e *Engine) alignBaselines() {
	if !e.horizontal {
		return
	}
	for _, l := range e.flexLines {
		maxBaseline, found := 0, false
		for i := l.FirstIndex; i <= l.LastIndex; i++ {
			if v := &e.views[i]; !v.item.Gone && e.alignOf(v) == AlignItemsBaseline {
				maxBaseline = max(maxBaseline, e.baselineOffset(v))
				found = true
			}
		}
		if !found {
			continue
		}
		l.MaxBaseline = maxBaseline
		for i := l.FirstIndex; i <= l.LastIndex; i++ {
			v := &e.views[i]
			if v.item.Gone || e.alignOf(v) != AlignItemsBaseline {
				continue
			}
			lead, trail := e.baselineLead(v, maxBaseline)
			l.CrossSize = max(l.CrossSize, lead+v.height+trail)
		}
	}
}

// baselineLead returns the space before (lead) and after (trail) a
// baseline-aligned item inside its line, measured from the line's
// cross-start edge.
func (e *Engine) baselineLead(v *view, maxBaseline int) (lead, trail int) {
	if e.cfg.Wrap == WrapReverse {
		return max(maxBaseline-(v.height-v.baseline), v.margin.Bottom), v.margin.Top
	}
	return max(maxBaseline-v.baseline, v.margin.Top), v.margin.Bottom
}

// StretchItems resizes stretch-aligned items to their line's cross size
// minus margins and decoration, clamped to their cross bounds, and
// re-measures them at that exact cross size with the main size unchanged.
//
// With AlignItems stretch every item whose AlignSelf is auto or stretch is
// affected; otherwise only the items listed in each line's StretchIndices.
func (e *Engine) StretchItems() {
	for _, l := range e.flexLines {
		if e.cfg.AlignItems != AlignItemsStretch {
			for _, i := range l.StretchIndices {
				e.stretch(&e.views[i], l.CrossSize, i)
			}
			continue
		}
		for i := l.FirstIndex; i <= l.LastIndex; i++ {
			v := &e.views[i]
			if v.item.Gone {
				continue
			}
			if a := v.item.AlignSelf; a != AlignSelfAuto && a != AlignSelfStretch {
				continue
			}
			e.stretch(v, l.CrossSize, i)
		}
	}
}

func (e *Engine) stretch(v *view, lineCross, i int) {
	_, _, minCross, maxCross := e.minMax(v.item)
	size := lineCross - e.crossMargins(v) - e.deco.ItemCross(i)
	size = min(max(size, minCross), maxCross)
	ws, hs := e.widthHeight(ExactSpec(e.mainSize(v)), ExactSpec(size))
	e.measure(v, ws, hs)
}
