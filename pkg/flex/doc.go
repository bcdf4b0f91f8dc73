// Package flex computes flexbox layouts for a sequence of measurable items.
//
// # Overview
//
// A container lays out its items along a main axis (horizontal for [Row]
// and [RowReverse], vertical for [Column] and [ColumnReverse]) and stacks
// wrapped lines along the perpendicular cross axis. The engine never draws
// anything: it asks each item's [Measurable] for a natural size, resolves
// sizes and positions, and hands back a [Frame] per item plus the resolved
// [Line] list for hosts that need line-level introspection.
//
// A pass runs in four phases:
//
//  1. Line building ([Engine.BuildLines]): items are measured in order and
//     partitioned into [FlexLine]s using the main-axis constraint, the wrap
//     mode, [Config.MaxLine] and per-item WrapBefore hints.
//  2. Main-axis resolution ([Engine.ResolveMainAxis]): free space in a line
//     is distributed by FlexGrow weights, a deficit by FlexShrink weights.
//     Items hitting their min/max bound are frozen and the rest of the
//     space is redistributed until nothing changes.
//  3. Cross-axis resolution ([Engine.ResolveCrossAxis] and
//     [Engine.StretchItems]): line thickness is finalised (baseline
//     alignment, [AlignContent] distribution with [Spacer] lines) and
//     stretch-aligned items are resized to their line.
//  4. Placement ([Engine.PlaceItems]): [Justify] offsets along the main
//     axis, per-item alignment along the cross axis, with reverse
//     directions, [WrapReverse] and [RTL] flipping the relevant axis.
//
// [Engine.Measure] runs phases 1 to 3 and derives the container's own size;
// [Engine.Layout] runs phase 4 on that size. [Compute] does both.
//
// # Constraints
//
// Sizes are integers. A [Spec] pairs a size with a [Mode]: [Exact] forces
// the size, [AtMost] bounds it and [Unspecified] leaves it open. An
// [Unspecified] main axis never wraps.
//
// # Items
//
// [NewItem] returns an item with the CSS defaults (order 1, shrink 1, both
// sizes [SizeWrapContent]):
//
//	items := []flex.Item{
//	    flex.NewItem("a", flex.Box(50, 20)),
//	    flex.NewItem("b", flex.Box(50, 30)),
//	}
//	items[1].FlexGrow = 1
//
//	res, frames, err := flex.Compute(flex.Config{Wrap: flex.WrapNormal},
//	    items, flex.ExactSpec(200), flex.AtMostSpec(100))
//
// # Caching
//
// An [Engine] keeps the last measurement of every item and reuses it when
// the same specs come up again within a pass. [Engine.Measure] starts each
// pass with a clean cache; incremental rebuilds with [FromIndex] keep it.
//
// # Errors
//
// Invalid enum values, negative padding or weights and NaN values fail fast
// with an INVALID_CONFIGURATION or INVALID_ITEM error from
// [github.com/matzehuels/flexline/pkg/errors]. Numeric edge cases are
// policies, not errors: zero total weight skips distribution and a line at
// its shrink floor simply stays too long.
package flex
