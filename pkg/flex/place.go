package flex

import "math"

// flow describes how main/cross flow coordinates map onto x/y for the
// current configuration. Flow coordinates grow from the main-start and
// cross-start edges.
type flow struct {
	mainRev, crossRev bool
	mainExtent        int
	crossExtent       int
}

func (e *Engine) flow(width, height int) flow {
	rtl := e.cfg.LayoutDirection == RTL
	f := flow{mainExtent: width, crossExtent: height}
	if e.horizontal {
		f.mainRev = rtl != (e.cfg.Direction == RowReverse)
		f.crossRev = e.cfg.Wrap == WrapReverse
	} else {
		f.mainExtent, f.crossExtent = height, width
		f.mainRev = e.cfg.Direction == ColumnReverse
		f.crossRev = rtl != (e.cfg.Wrap == WrapReverse)
	}
	return f
}

// mainEdges returns (start, end) of m along the main axis in flow order.
func (e *Engine) mainEdges(f flow, m Edges) (int, int) {
	s, t := m.Left, m.Right
	if !e.horizontal {
		s, t = m.Top, m.Bottom
	}
	if f.mainRev {
		return t, s
	}
	return s, t
}

// crossEdges returns (start, end) of m along the cross axis in flow order.
func (e *Engine) crossEdges(f flow, m Edges) (int, int) {
	s, t := m.Top, m.Bottom
	if !e.horizontal {
		s, t = m.Left, m.Right
	}
	if f.crossRev {
		return t, s
	}
	return s, t
}

// PlaceItems converts the resolved lines into absolute item rectangles for
// a container of the given size. Frames are indexed by original item
// index; gone items get an empty rectangle and line -1.
//
// Main-axis offsets follow JustifyContent, cross-axis offsets follow each
// item's effective alignment within its line. Spacers only advance the
// cross position. Line bounds are recorded on each FlexLine.
func (e *Engine) PlaceItems(width, height int) []Frame {
	frames := make([]Frame, len(e.items))
	for i := range e.items {
		frames[i] = Frame{Index: i, ID: e.items[i].ID, Line: -1, Gone: e.items[i].Gone}
	}

	f := e.flow(width, height)
	crossPos, _ := e.crossEdges(f, e.padding)
	leading := true
	lineIdx := 0
	for _, ln := range e.Lines() {
		l, ok := ln.(*FlexLine)
		if !ok {
			crossPos += ln.CrossExtent()
			continue
		}
		crossPos += e.deco.LineBefore(leading)
		leading = false
		e.placeLine(f, l, lineIdx, crossPos, frames)
		crossPos += l.CrossSize
		lineIdx++
	}
	return frames
}

func (e *Engine) placeLine(f flow, l *FlexLine, lineIdx, crossPos int, frames []Frame) {
	padStart, _ := e.mainEdges(f, e.padding)
	free := float64(f.mainExtent - l.MainSize)
	visible := float64(l.VisibleCount())
	start := float64(padStart)
	var space float64
	switch e.cfg.JustifyContent {
	case JustifyFlexEnd:
		start += free
	case JustifyCenter:
		start += free / 2
	case JustifySpaceAround:
		if visible > 0 {
			space = free / visible
		}
		start += space / 2
	case JustifySpaceBetween:
		denom := visible - 1
		if denom < 1 {
			denom = 1
		}
		space = free / denom
	case JustifySpaceEvenly:
		if visible > 0 {
			space = free / (visible + 1)
		}
		start += space
	}
	space = math.Max(space, 0)

	cursor := start
	leading := true
	placed := false
	for i := l.FirstIndex; i <= l.LastIndex; i++ {
		v := &e.views[i]
		if v.item.Gone {
			continue
		}
		mStart, mEnd := e.mainEdges(f, v.margin)
		cursor += float64(mStart + e.deco.ItemBefore(i, leading))
		leading = false

		mainSize, crossSize := e.mainSize(v), e.crossSize(v)
		mainPos := int(math.Round(cursor))
		crossOff := crossPos + e.crossOffset(f, v, l)
		if f.mainRev {
			mainPos = f.mainExtent - mainPos - mainSize
		}
		if f.crossRev {
			crossOff = f.crossExtent - crossOff - crossSize
		}

		r := Rect{X: mainPos, Y: crossOff, Width: v.width, Height: v.height}
		if !e.horizontal {
			r = Rect{X: crossOff, Y: mainPos, Width: v.width, Height: v.height}
		}
		frames[v.index].Rect = r
		frames[v.index].Line = lineIdx
		box := Rect{
			X:      r.X - v.margin.Left,
			Y:      r.Y - v.margin.Top,
			Width:  r.Width + v.margin.Left + v.margin.Right,
			Height: r.Height + v.margin.Top + v.margin.Bottom,
		}
		if placed {
			box = l.Bounds.Union(box)
		}
		l.Bounds, placed = box, true

		cursor += float64(mainSize+mEnd) + space
	}
}

// crossOffset is the distance from the line's cross-start edge to v's
// cross-start edge, in flow coordinates.
func (e *Engine) crossOffset(f flow, v *view, l *FlexLine) int {
	lead, trail := e.crossEdges(f, v.margin)
	size := e.crossSize(v)
	switch e.alignOf(v) {
	case AlignItemsFlexEnd:
		return l.CrossSize - size - trail
	case AlignItemsCenter:
		return (l.CrossSize - size + lead - trail) / 2
	case AlignItemsBaseline:
		if e.horizontal {
			shift, _ := e.baselineLead(v, l.MaxBaseline)
			return shift
		}
	}
	return lead
}
