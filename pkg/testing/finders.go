package testing

import (
	"fmt"
	"strings"

	"github.com/go-drift/cellui/pkg/core"
	"github.com/go-drift/cellui/pkg/geom"
)

// Finder locates nodes in a frame's tree snapshot.
type Finder interface {
	// Evaluate returns all matching nodes under root (depth-first pre-order).
	Evaluate(root *core.SnapshotNode) []*core.SnapshotNode
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	nodes  []*core.SnapshotNode
	finder Finder
}

func (r FinderResult) description() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() *core.SnapshotNode {
	if len(r.nodes) == 0 {
		panic(fmt.Sprintf("Finder found no nodes: %s", r.description()))
	}
	return r.nodes[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() *core.SnapshotNode {
	if len(r.nodes) == 0 {
		return nil
	}
	return r.nodes[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) *core.SnapshotNode {
	if index < 0 || index >= len(r.nodes) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.nodes), r.description()))
	}
	return r.nodes[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []*core.SnapshotNode {
	return r.nodes
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.nodes)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.nodes) > 0
}

// ID returns the widget ID of the first match. Panics if no matches.
func (r FinderResult) ID() core.ID {
	return r.First().ID
}

// Rect returns the laid-out rect of the first match. It reports false when
// nothing matched or the node was not laid out.
func (r FinderResult) Rect() (geom.Rect, bool) {
	n := r.FirstOrNil()
	if n == nil || n.Rect == nil {
		return geom.Rect{}, false
	}
	return *n.Rect, true
}

type typeFinder struct {
	name string
}

func (f *typeFinder) Evaluate(root *core.SnapshotNode) []*core.SnapshotNode {
	return collectMatches(root, func(n *core.SnapshotNode) bool { return n.Type == f.name })
}

func (f *typeFinder) Description() string {
	return fmt.Sprintf("ByType(%s)", f.name)
}

// ByType finds widgets by registered type name, e.g. "Label" or "MouseArea".
func ByType(name string) Finder {
	return &typeFinder{name: name}
}

type idFinder struct {
	id core.ID
}

func (f *idFinder) Evaluate(root *core.SnapshotNode) []*core.SnapshotNode {
	return collectMatches(root, func(n *core.SnapshotNode) bool { return n.ID == f.id })
}

func (f *idFinder) Description() string {
	return fmt.Sprintf("ByID(%s)", f.id)
}

// ByID finds the widget with the given ID.
func ByID(id core.ID) Finder {
	return &idFinder{id: id}
}

func nodeText(n *core.SnapshotNode) (string, bool) {
	s, ok := n.State["text"].(string)
	return s, ok
}

type textFinder struct {
	text string
}

func (f *textFinder) Evaluate(root *core.SnapshotNode) []*core.SnapshotNode {
	return collectMatches(root, func(n *core.SnapshotNode) bool {
		s, ok := nodeText(n)
		return ok && s == f.text
	})
}

func (f *textFinder) Description() string {
	return fmt.Sprintf("ByText(%q)", f.text)
}

// ByText finds widgets whose text is exactly text.
func ByText(text string) Finder {
	return &textFinder{text: text}
}

type textContainingFinder struct {
	substring string
}

func (f *textContainingFinder) Evaluate(root *core.SnapshotNode) []*core.SnapshotNode {
	return collectMatches(root, func(n *core.SnapshotNode) bool {
		s, ok := nodeText(n)
		return ok && strings.Contains(s, f.substring)
	})
}

func (f *textContainingFinder) Description() string {
	return fmt.Sprintf("ByTextContaining(%q)", f.substring)
}

// ByTextContaining finds widgets whose text contains substring.
func ByTextContaining(substring string) Finder {
	return &textContainingFinder{substring: substring}
}

type predicateFinder struct {
	fn   func(*core.SnapshotNode) bool
	desc string
}

func (f *predicateFinder) Evaluate(root *core.SnapshotNode) []*core.SnapshotNode {
	return collectMatches(root, f.fn)
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate finds nodes matching fn.
func ByPredicate(fn func(*core.SnapshotNode) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate"}
}

type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root *core.SnapshotNode) []*core.SnapshotNode {
	var out []*core.SnapshotNode
	seen := make(map[core.ID]bool)
	for _, ancestor := range f.of.Evaluate(root) {
		for _, child := range ancestor.Children {
			for _, n := range f.matching.Evaluate(child) {
				if !seen[n.ID] {
					seen[n.ID] = true
					out = append(out, n)
				}
			}
		}
	}
	return out
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant finds nodes matching matching that sit below a node matching of.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}

type ancestorFinder struct {
	of       Finder
	matching Finder
}

func (f *ancestorFinder) Evaluate(root *core.SnapshotNode) []*core.SnapshotNode {
	targets := make(map[core.ID]bool)
	for _, n := range f.of.Evaluate(root) {
		targets[n.ID] = true
	}
	candidates := make(map[core.ID]bool)
	for _, n := range f.matching.Evaluate(root) {
		candidates[n.ID] = true
	}
	return collectMatches(root, func(n *core.SnapshotNode) bool {
		if !candidates[n.ID] {
			return false
		}
		found := false
		for _, child := range n.Children {
			walkTree(child, func(d *core.SnapshotNode) bool {
				found = targets[d.ID]
				return !found
			})
			if found {
				break
			}
		}
		return found
	})
}

func (f *ancestorFinder) Description() string {
	return fmt.Sprintf("Ancestor(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Ancestor finds nodes matching matching that contain a node matching of.
func Ancestor(of, matching Finder) Finder {
	return &ancestorFinder{of: of, matching: matching}
}

func collectMatches(root *core.SnapshotNode, predicate func(*core.SnapshotNode) bool) []*core.SnapshotNode {
	var out []*core.SnapshotNode
	walkTree(root, func(n *core.SnapshotNode) bool {
		if predicate(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// walkTree visits nodes depth-first pre-order until visitor returns false.
func walkTree(root *core.SnapshotNode, visitor func(*core.SnapshotNode) bool) bool {
	if root == nil {
		return true
	}
	if !visitor(root) {
		return false
	}
	for _, child := range root.Children {
		if !walkTree(child, visitor) {
			return false
		}
	}
	return true
}
