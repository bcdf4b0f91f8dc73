package scene

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/flexline/pkg/errors"
	"github.com/matzehuels/flexline/pkg/flex"
)

// Scene is a document converted into engine inputs.
type Scene struct {
	ID     string
	Config flex.Config
	Items  []flex.Item
	// Labels holds each item's display label, parallel to Items.
	Labels []string
	Width  flex.Spec
	Height flex.Spec

	scripts []*Script
}

// BuildOptions tune how content is turned into measurables.
type BuildOptions struct {
	// DisableScripts rejects script content instead of running it. The HTTP
	// API sets it for untrusted input.
	DisableScripts bool
	// Script configures script measurement.
	Script ScriptOptions
}

// Build converts doc into a Scene. Keywords are parsed with the flex
// package parsers, so unknown values fail with INVALID_CONFIGURATION;
// item problems fail with INVALID_ITEM and structural ones (duplicate ids)
// with INVALID_SCENE.
func Build(doc *Document, opts BuildOptions) (*Scene, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidScene, "nil document")
	}
	cfg, err := buildConfig(doc.Container)
	if err != nil {
		return nil, err
	}
	width, err := buildSpec("width", doc.Width)
	if err != nil {
		return nil, err
	}
	height, err := buildSpec("height", doc.Height)
	if err != nil {
		return nil, err
	}

	sc := &Scene{
		ID:     doc.ID,
		Config: cfg,
		Width:  width,
		Height: height,
		Items:  make([]flex.Item, 0, len(doc.Items)),
		Labels: make([]string, 0, len(doc.Items)),
	}
	seen := make(map[string]int, len(doc.Items))
	for i := range doc.Items {
		d := &doc.Items[i]
		id := d.ID
		if id == "" {
			id = fmt.Sprintf("item-%d", i)
		}
		if err := errors.ValidateID(id); err != nil {
			return nil, err
		}
		if prev, dup := seen[id]; dup {
			return nil, errors.New(errors.ErrCodeInvalidScene, "duplicate item id %q (items %d and %d)", id, prev, i)
		}
		seen[id] = i

		it, err := sc.buildItem(id, d, opts)
		if err != nil {
			return nil, err
		}
		if err := it.Validate(); err != nil {
			return nil, err
		}
		label := d.Label
		if label == "" {
			label = id
		}
		sc.Items = append(sc.Items, it)
		sc.Labels = append(sc.Labels, label)
	}
	return sc, nil
}

func buildConfig(c Container) (flex.Config, error) {
	var cfg flex.Config
	var err error
	if c.Direction != "" {
		if cfg.Direction, err = flex.ParseDirection(c.Direction); err != nil {
			return cfg, err
		}
	}
	if c.Wrap != "" {
		if cfg.Wrap, err = flex.ParseWrap(c.Wrap); err != nil {
			return cfg, err
		}
	}
	if c.JustifyContent != "" {
		if cfg.JustifyContent, err = flex.ParseJustify(c.JustifyContent); err != nil {
			return cfg, err
		}
	}
	if c.AlignItems != "" {
		if cfg.AlignItems, err = flex.ParseAlignItems(c.AlignItems); err != nil {
			return cfg, err
		}
	}
	if c.AlignContent != "" {
		if cfg.AlignContent, err = flex.ParseAlignContent(c.AlignContent); err != nil {
			return cfg, err
		}
	}
	if c.LayoutDirection != "" {
		if cfg.LayoutDirection, err = flex.ParseLayoutDirection(c.LayoutDirection); err != nil {
			return cfg, err
		}
	}
	cfg.MaxLine = c.MaxLine
	cfg.Padding = c.Padding.flex()
	if d := c.Dividers; d != nil {
		showMain, err := parseShow(d.ShowMain)
		if err != nil {
			return cfg, err
		}
		showCross, err := parseShow(d.ShowCross)
		if err != nil {
			return cfg, err
		}
		cfg.Decoration = flex.Dividers{Main: d.Main, Cross: d.Cross, ShowMain: showMain, ShowCross: showCross}
	}
	return cfg, cfg.Validate()
}

func (e Edges) flex() flex.Edges {
	pick := func(v int) int {
		if v != 0 {
			return v
		}
		return e.All
	}
	return flex.Edges{
		Left:   pick(e.Left),
		Top:    pick(e.Top),
		Right:  pick(e.Right),
		Bottom: pick(e.Bottom),
		Start:  e.Start,
		End:    e.End,
	}
}

func parseShow(names []string) (flex.Show, error) {
	var s flex.Show
	for _, n := range names {
		switch strings.ToLower(strings.TrimSpace(n)) {
		case ShowBeginning:
			s |= flex.ShowBeginning
		case ShowMiddle:
			s |= flex.ShowMiddle
		case ShowEnd:
			s |= flex.ShowEnd
		case "all":
			s |= flex.ShowAll
		case "none":
		default:
			return 0, errors.New(errors.ErrCodeInvalidConfiguration, "unknown divider show mode %q", n)
		}
	}
	return s, nil
}

// ParseSpec converts a mode keyword and size into a flex.Spec.
func ParseSpec(mode string, size int) (flex.Spec, error) {
	if size < 0 {
		return flex.Spec{}, errors.New(errors.ErrCodeInvalidConfiguration, "size must be non-negative, got %d", size)
	}
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(mode)), "_", "-") {
	case ModeExact:
		return flex.ExactSpec(size), nil
	case ModeAtMost, "atmost":
		return flex.AtMostSpec(size), nil
	case ModeUnspecified, "":
		return flex.Spec{Mode: flex.Unspecified, Size: size}, nil
	}
	return flex.Spec{}, errors.New(errors.ErrCodeInvalidConfiguration, "unknown constraint mode %q", mode)
}

// SpecString formats a spec the way documents and flags spell it.
func SpecString(s flex.Spec) string {
	switch s.Mode {
	case flex.Exact:
		return fmt.Sprintf("%s:%d", ModeExact, s.Size)
	case flex.AtMost:
		return fmt.Sprintf("%s:%d", ModeAtMost, s.Size)
	}
	return ModeUnspecified
}

// ParseSpecString parses the flag spelling of a constraint: "exact:320",
// "at-most:200", "unspecified", or a bare size meaning exact.
func ParseSpecString(s string) (flex.Spec, error) {
	s = strings.TrimSpace(s)
	mode, size, found := strings.Cut(s, ":")
	if !found {
		if n, err := strconv.Atoi(s); err == nil {
			return ParseSpec(ModeExact, n)
		}
		return ParseSpec(s, 0)
	}
	n, err := strconv.Atoi(strings.TrimSpace(size))
	if err != nil {
		return flex.Spec{}, errors.New(errors.ErrCodeInvalidConfiguration, "invalid constraint size %q", size)
	}
	return ParseSpec(mode, n)
}

func buildSpec(axis string, c Constraint) (flex.Spec, error) {
	s, err := ParseSpec(c.Mode, c.Size)
	if err != nil {
		return s, errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "%s constraint", axis)
	}
	return s, nil
}

func (sc *Scene) buildItem(id string, d *ItemDoc, opts BuildOptions) (flex.Item, error) {
	content, err := sc.buildContent(id, d.Content, opts)
	if err != nil {
		return flex.Item{}, err
	}
	it := flex.NewItem(id, content)
	if d.Order != nil {
		it.Order = *d.Order
	}
	it.Width = d.Width.Flex()
	it.Height = d.Height.Flex()
	it.FlexGrow = d.Grow
	if d.Shrink != nil {
		it.FlexShrink = *d.Shrink
	}
	it.BasisPercent = d.BasisPercent
	if d.AlignSelf != "" {
		if it.AlignSelf, err = flex.ParseAlignSelf(d.AlignSelf); err != nil {
			return flex.Item{}, errors.Wrap(errors.ErrCodeInvalidItem, err, "item %q", id)
		}
	}
	it.MinWidth, it.MinHeight = d.MinWidth, d.MinHeight
	it.MaxWidth, it.MaxHeight = d.MaxWidth, d.MaxHeight
	it.WrapBefore = d.WrapBefore
	it.Margin = d.Margin.flex()
	it.Gone = d.Gone
	return it, nil
}

func (sc *Scene) buildContent(id string, c ContentDoc, opts BuildOptions) (flex.Measurable, error) {
	switch strings.ToLower(c.Kind) {
	case "", ContentBox:
		if c.Width < 0 || c.Height < 0 {
			return nil, errors.New(errors.ErrCodeInvalidItem, "item %q: box size must be non-negative", id)
		}
		f := flex.Box(c.Width, c.Height)
		if c.Baseline != nil {
			f.Baseline = *c.Baseline
		}
		return f, nil

	case ContentText:
		t, err := NewText(c.Text, c.Font, c.FontSize)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidItem, err, "item %q", id)
		}
		return t, nil

	case ContentScript:
		if opts.DisableScripts {
			return nil, errors.New(errors.ErrCodeUnsupported, "item %q: script content is disabled", id)
		}
		s, err := NewScript(c.Script, opts.Script)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeScript, err, "item %q", id)
		}
		sc.scripts = append(sc.scripts, s)
		return s, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidItem, "item %q: unknown content kind %q", id, c.Kind)
}

// Err returns the first error raised by a script while measuring. Hosts
// check it after a pass, since Measurable has no error return.
func (sc *Scene) Err() error {
	for _, s := range sc.scripts {
		if err := s.Err(); err != nil {
			return err
		}
	}
	return nil
}

// Compute lays the scene out under its own constraints.
func (sc *Scene) Compute(opts ...flex.Option) (*flex.Result, []flex.Frame, error) {
	return sc.ComputeWithin(sc.Width, sc.Height, opts...)
}

// ComputeWithin lays the scene out under the given constraints.
func (sc *Scene) ComputeWithin(width, height flex.Spec, opts ...flex.Option) (*flex.Result, []flex.Frame, error) {
	res, frames, err := flex.Compute(sc.Config, sc.Items, width, height, opts...)
	if err != nil {
		return nil, nil, err
	}
	if err := sc.Err(); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeScript, err, "script measurement")
	}
	return res, frames, nil
}
