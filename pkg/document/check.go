package document

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yaklabco/mdbridge/pkg/mdast"
	"github.com/yaklabco/mdbridge/pkg/render"
)

// RoundTrip is the outcome of rendering a tree directly and after a trip
// through the block model.
type RoundTrip struct {
	// Direct is the output of the parsed tree.
	Direct string

	// ViaModel is the output of the tree rebuilt from the block model.
	ViaModel string

	// Unmodelled counts the nodes of the parsed tree that have no model
	// type, such as GFM tables. They are the usual cause of a mismatch.
	Unmodelled int
}

// Equal reports whether both renderings are identical.
func (r RoundTrip) Equal() bool {
	return r.Direct == r.ViaModel
}

// CheckRoundTrip renders root as HTML, rebuilds it through the block model,
// renders the rebuilt tree and returns both outputs. Constructs the model has
// no type for fall back to custom and text nodes, so documents using them may
// legitimately differ.
func (p *Processor) CheckRoundTrip(ctx context.Context, root *mdast.Node) (RoundTrip, error) {
	if err := ctx.Err(); err != nil {
		return RoundTrip{}, fmt.Errorf("check round trip: %w", err)
	}

	opts := p.RenderOptions()

	var direct bytes.Buffer
	if err := render.Render(&direct, root, render.FormatHTML, opts); err != nil {
		return RoundTrip{}, fmt.Errorf("render direct: %w", err)
	}

	rebuilt := p.Rebuild(root)
	defer func() { _ = rebuilt.Close() }()

	var viaModel bytes.Buffer
	if err := render.Render(&viaModel, rebuilt, render.FormatHTML, opts); err != nil {
		return RoundTrip{}, fmt.Errorf("render via model: %w", err)
	}

	return RoundTrip{
		Direct:     direct.String(),
		ViaModel:   viaModel.String(),
		Unmodelled: len(mdast.FindByKind(root, mdast.NodeUnknown)),
	}, nil
}
