package flex

import "math"

// NoPosition marks an unset reordered index.
const NoPosition = -1

type buildOptions struct {
	from      int
	to        int
	stopAfter int
}

// BuildOption restarts or bounds BuildLines.
type BuildOption func(*buildOptions)

// FromIndex recomputes lines starting with the line that contains reordered
// index i. Earlier lines are kept as they are, and so are cached
// measurements. Without a previous pass this is a full build.
func FromIndex(i int) BuildOption {
	return func(o *buildOptions) { o.from = i }
}

// ToIndex stops building once the line containing reordered index i has
// been closed, unless StopAfterCross asks for more.
func ToIndex(i int) BuildOption {
	return func(o *buildOptions) { o.to = i }
}

// StopAfterCross keeps building after the ToIndex line (or from the start
// when ToIndex is unset) until more than n of cross size has been added.
// Hosts showing a window of a long list use it to bound work to the
// visible region.
func StopAfterCross(n int) BuildOption {
	return func(o *buildOptions) { o.stopAfter = n }
}

// BuildLines partitions the reordered items into flex lines under the main
// and cross specs. It returns the lines and the OR-combined item states.
//
// A new line starts at a visible item when the current line already holds a
// visible item and wrapping is required: the container wraps and either the
// item asks for WrapBefore, or the main spec is bounded, the MaxLine cap is
// not reached and the item (with margins and decoration) does not fit.
func (e *Engine) BuildLines(main, cross Spec, opts ...BuildOption) ([]*FlexLine, State) {
	o := buildOptions{to: NoPosition}
	for _, opt := range opts {
		opt(&o)
	}

	n := len(e.views)
	start, kept, used := 0, 0, 0
	if o.from > 0 && o.from < n {
		if li := e.indexToLine[o.from]; li < len(e.flexLines) && e.flexLines[li].Contains(o.from) {
			kept = li
			start = e.flexLines[li].FirstIndex
			used = e.flexLines[li].SumCrossSizeBefore
		}
	}
	lines := e.flexLines[:kept]
	e.lines = nil

	mainPad := e.mainPaddingSum()
	crossPad := e.crossPaddingSum()
	line := &FlexLine{FirstIndex: start, MainSize: mainPad}
	var state State

	reached := o.to == NoPosition
	extra := 0
	closeLine := func(last int) {
		end := e.deco.LineEnd()
		line.LastIndex = last
		line.SumCrossSizeBefore = used
		line.MainSize += end
		line.DividerMainSize += end
		lines = append(lines, line)
		used += line.CrossSize
		if reached {
			extra += line.CrossSize
		} else if last >= o.to {
			reached = true
		}
	}
	done := func() bool {
		if !reached {
			return false
		}
		if o.stopAfter > 0 {
			return extra > o.stopAfter
		}
		return o.to != NoPosition
	}

	for i := start; i < n; i++ {
		v := &e.views[i]
		e.indexToLine[i] = len(lines)

		if v.item.Gone {
			line.ItemCount++
			line.GoneItemCount++
			if i == n-1 && line.VisibleCount() > 0 {
				closeLine(i)
			}
			continue
		}

		it := v.item
		reqMain, reqCross := e.requested(it)
		if it.BasisPercent > 0 && main.Mode == Exact {
			reqMain = int(math.Round(float64(main.Size) * it.BasisPercent))
		}
		mainSpec := childSpec(main, mainPad+e.mainMargins(v), reqMain)
		crossSpec := childSpec(cross, crossPad+e.crossMargins(v)+used, reqCross)
		w, h := e.widthHeight(mainSpec, crossSpec)
		e.measure(v, w, h)
		e.clampToBounds(v)

		extent := e.mainSize(v) + e.mainMargins(v)
		if line.VisibleCount() > 0 && e.wrapRequired(v, main, line, extent, i, len(lines)) {
			closeLine(i - 1)
			// A match-parent cross size depends on the space the closed
			// line left over.
			if reqCross == SizeMatchParent {
				crossSpec = childSpec(cross, crossPad+e.crossMargins(v)+used, SizeMatchParent)
				w, h := e.widthHeight(mainSpec, crossSpec)
				e.measure(v, w, h)
				e.clampToBounds(v)
			}
			line = &FlexLine{FirstIndex: i, MainSize: mainPad}
			e.indexToLine[i] = len(lines)
		}

		leading := line.VisibleCount() == 0
		line.ItemCount++
		if it.AlignSelf == AlignSelfStretch {
			line.StretchIndices = append(line.StretchIndices, i)
		}
		line.MainSize += e.mainSize(v) + e.mainMargins(v)
		if d := e.deco.ItemBefore(i, leading); d > 0 {
			line.MainSize += d
			line.DividerMainSize += d
		}
		line.TotalFlexGrow += it.FlexGrow
		line.TotalFlexShrink += it.FlexShrink
		line.AnyFlexGrow = line.AnyFlexGrow || it.FlexGrow != 0
		line.AnyFlexShrink = line.AnyFlexShrink || it.FlexShrink != 0
		line.CrossSize = max(line.CrossSize, e.crossSize(v)+e.crossMargins(v)+e.deco.ItemCross(i))
		if e.horizontal && e.alignOf(v) == AlignItemsBaseline {
			line.MaxBaseline = max(line.MaxBaseline, e.baselineOffset(v))
		}
		state |= v.state

		if i == n-1 {
			closeLine(i)
		}
		if done() {
			break
		}
	}

	e.flexLines = lines
	e.logger.Debug("built flex lines",
		"from", start,
		"lines", len(lines),
		"main", main,
		"cross", cross)
	return lines, state
}

// wrapRequired reports whether v, with main extent extent, has to start a
// new line after line.
func (e *Engine) wrapRequired(v *view, main Spec, line *FlexLine, extent, i, closedLines int) bool {
	if e.cfg.Wrap == NoWrap {
		return false
	}
	if v.item.WrapBefore {
		return true
	}
	if main.Mode == Unspecified {
		return false
	}
	// The line being built is not in closedLines yet.
	if e.cfg.MaxLine > 0 && e.cfg.MaxLine <= closedLines+1 {
		return false
	}
	extent += e.deco.ItemBefore(i, false) + e.deco.LineEnd()
	return main.Size < line.MainSize+extent
}

// baselineOffset is the distance from the cross-start edge of v's margin box
// to its baseline. With WrapReverse lines grow upwards, so it is measured
// from the bottom.
func (e *Engine) baselineOffset(v *view) int {
	if e.cfg.Wrap == WrapReverse {
		return v.height - v.baseline + v.margin.Bottom
	}
	return v.baseline + v.margin.Top
}
