package flex

import "math"

// ResolveMainAxis grows or shrinks the items of every line, starting with
// the line that contains reordered index fromIndex, so that each line's
// MainSize reaches the target main size.
//
// The target is the main spec's size when it is Exact, the largest line
// clamped by the spec's size when it is AtMost, and the largest line when it
// is Unspecified. Lines shorter than the target grow when any item has a
// grow weight; longer lines shrink when any item has a shrink weight.
//
// Calling it again with unchanged inputs leaves every size as it is.
func (e *Engine) ResolveMainAxis(main, cross Spec, fromIndex int) {
	if fromIndex < 0 || fromIndex >= len(e.views) || len(e.flexLines) == 0 {
		return
	}
	target := e.targetMainSize(main)
	first := 0
	if fromIndex > 0 {
		first = min(e.indexToLine[fromIndex], len(e.flexLines))
	}
	for _, line := range e.flexLines[first:] {
		switch {
		case line.MainSize < target && line.AnyFlexGrow:
			e.distribute(line, cross, target, true)
		case line.MainSize > target && line.AnyFlexShrink:
			e.distribute(line, cross, target, false)
		}
	}
}

func (e *Engine) targetMainSize(main Spec) int {
	largest := e.largestMainSize()
	switch main.Mode {
	case Exact:
		return main.Size
	case AtMost:
		return min(largest, main.Size)
	}
	return largest
}

// distribute runs the freeze loop for one line. Every pass splits the
// remaining free space among unfrozen items by weight; an item whose share
// crosses its bound is clamped, frozen and its weight withdrawn, and the
// loop goes again. It stops when a pass freezes nothing, and never runs more
// passes than the line has items.
//
// Rounding error is carried from item to item and folded into the last
// item taking part in the pass, so the line lands on the target within one
// unit.
func (e *Engine) distribute(line *FlexLine, cross Spec, target int, grow bool) {
	weight := func(it *Item) float64 {
		if grow {
			return it.FlexGrow
		}
		return it.FlexShrink
	}
	total := line.TotalFlexShrink
	if grow {
		total = line.TotalFlexGrow
	}
	frozen := make([]bool, line.ItemCount)
	base := e.mainPaddingSum() + line.DividerMainSize

	for pass := 0; pass <= line.ItemCount; pass++ {
		if total <= 0 || (grow && target < line.MainSize) || (!grow && target > line.MainSize) {
			return
		}
		unit := float64(target-line.MainSize) / total

		last := NoPosition
		for i := line.FirstIndex; i <= line.LastIndex; i++ {
			if v := &e.views[i]; !v.item.Gone && !frozen[i-line.FirstIndex] && weight(v.item) > 0 {
				last = i
			}
		}

		line.MainSize = base
		line.CrossSize = 0
		again := false
		var roundErr float64
		for i := line.FirstIndex; i <= line.LastIndex; i++ {
			v := &e.views[i]
			if v.item.Gone {
				continue
			}
			if wt := weight(v.item); wt > 0 && !frozen[i-line.FirstIndex] {
				raw := float64(e.mainSize(v)) + unit*wt
				if i == last {
					raw += roundErr
					roundErr = 0
				}
				size := int(math.Round(raw))
				minMain, maxMain, _, _ := e.minMax(v.item)
				clamped := true
				switch {
				case grow && size > maxMain:
					size = maxMain
				case !grow && size < minMain:
					size = minMain
				default:
					clamped = false
					roundErr += raw - float64(size)
					if roundErr > 1 {
						size++
						roundErr--
					} else if roundErr < -1 {
						size--
						roundErr++
					}
				}
				if clamped {
					frozen[i-line.FirstIndex] = true
					total -= wt
					again = true
				}
				ws, hs := e.widthHeight(ExactSpec(size), e.crossSpecFor(v, cross, line.SumCrossSizeBefore))
				e.measure(v, ws, hs)
			}
			line.CrossSize = max(line.CrossSize, e.crossSize(v)+e.crossMargins(v)+e.deco.ItemCross(i))
			line.MainSize += e.mainSize(v) + e.mainMargins(v)
		}

		e.logger.Debug("distributed main axis",
			"grow", grow,
			"pass", pass,
			"first", line.FirstIndex,
			"main_size", line.MainSize,
			"target", target)
		if !again {
			return
		}
	}
}
