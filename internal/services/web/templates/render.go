// Package templates renders the site's pages. Page bodies are built as
// gomponents trees and exposed as templ components so layouts can wrap
// them through templ's children contract.
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
)

// Component adapts a node tree built per render to a templ component.
func Component(build func(ctx context.Context) g.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if build == nil {
			return nil
		}
		node := build(ctx)
		if node == nil {
			return nil
		}
		return node.Render(w)
	})
}

// children renders the templ children attached to ctx.
func children(ctx context.Context) g.Node {
	return embed(ctx, templ.GetChildren(ctx))
}

// embed renders a templ component inside a node tree.
func embed(ctx context.Context, c templ.Component) g.Node {
	return g.NodeFunc(func(w io.Writer) error {
		if c == nil {
			return nil
		}
		return c.Render(ctx, w)
	})
}
