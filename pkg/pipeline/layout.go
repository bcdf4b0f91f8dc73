package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/flexline/pkg/errors"
	"github.com/matzehuels/flexline/pkg/flex"
	"github.com/matzehuels/flexline/pkg/observability"
	"github.com/matzehuels/flexline/pkg/scene"
)

// =============================================================================
// Layout Generation
// =============================================================================

// ComputeLayout builds the scene, runs the flex engine and exports the
// result. Width and Height in opts override the document's constraints.
// Script failures during measurement fail the whole layout with
// SCRIPT_ERROR.
func ComputeLayout(ctx context.Context, doc *scene.Document, opts Options) (scene.Layout, error) {
	if err := ctx.Err(); err != nil {
		return scene.Layout{}, err
	}
	if err := opts.ValidateForLayout(); err != nil {
		return scene.Layout{}, err
	}

	sc, err := scene.Build(doc, opts.BuildOptions())
	if err != nil {
		return scene.Layout{}, err
	}
	width, height, err := constraints(sc, opts)
	if err != nil {
		return scene.Layout{}, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, sc.ID, len(sc.Items))
	start := time.Now()

	res, frames, err := sc.ComputeWithin(width, height, flex.WithLogger(opts.Logger))
	if err != nil {
		hooks.OnLayoutComplete(ctx, sc.ID, 0, time.Since(start), err)
		return scene.Layout{}, err
	}
	l := scene.Export(sc, res, frames)
	hooks.OnLayoutComplete(ctx, sc.ID, len(l.ContentLines()), time.Since(start), nil)

	opts.Logger.Debug("layout computed",
		"scene", sc.ID,
		"width", width,
		"height", height,
		"lines", len(l.ContentLines()),
		"state", l.State)
	return l, nil
}

// constraints resolves the container specs: overrides win over the
// document's own constraints.
func constraints(sc *scene.Scene, opts Options) (width, height flex.Spec, err error) {
	width, height = sc.Width, sc.Height
	if opts.Width != "" {
		if width, err = scene.ParseSpecString(opts.Width); err != nil {
			return width, height, errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "width")
		}
	}
	if opts.Height != "" {
		if height, err = scene.ParseSpecString(opts.Height); err != nil {
			return width, height, errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "height")
		}
	}
	return width, height, nil
}
