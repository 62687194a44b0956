// Package convert maps between the block and inline model and mdast trees.
//
// Build and its variants fold a model value into a freshly allocated tree
// that the caller owns. Read and its variants walk a tree, owned or viewed,
// back into model values. For every model value m, Read(Build(m)) equals m.
//
// Tree nodes with no model counterpart never fail a read: at block position
// they become a CustomBlock carrying the node's literal, and at inline
// position they become an empty Text unless the Reader is configured to
// preserve them.
package convert
