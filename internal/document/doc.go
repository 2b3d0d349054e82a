// Package document implements the structured content model behind the
// editor: a tree of block and inline nodes, a range selection, transactional
// updates with atomic visibility, and the JSON snapshot codec used for
// persistence.
package document
