package pythonast

import "reflect"

// IsNil returns true if the given node is nil, including the case of a nil
// concrete pointer stored in a non-nil interface value.
func IsNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// Visitor visits nodes during a traversal. If Visit returns a non-nil
// visitor then the traversal descends into the children of the node with
// that visitor, then calls Visit(nil) to signal the end of the node.
type Visitor interface {
	Visit(n Node) Visitor
}

// Walk traverses the tree rooted at n in depth first order, visiting each
// node with v.
func Walk(v Visitor, n Node) {
	if IsNil(n) {
		return
	}
	inner := v.Visit(n)
	if inner == nil {
		return
	}
	n.iterate(func(field string, child Node) {
		Walk(inner, child)
	})
	inner.Visit(nil)
}

type inspector func(Node) bool

func (f inspector) Visit(n Node) Visitor {
	if f(n) {
		return f
	}
	return nil
}

// Inspect traverses the tree rooted at n, calling f for each node. If f
// returns false for a node then its children are not visited. After
// visiting the children of a node, f is called with nil.
func Inspect(n Node, f func(Node) bool) {
	Walk(inspector(f), n)
}

// EdgeVisitor visits parent/child edges during a traversal.
type EdgeVisitor interface {
	// VisitEdge is called for each edge; returning false prunes the
	// traversal below child.
	VisitEdge(parent Node, child Node, field string) bool
}

// WalkEdges traverses the tree rooted at n, visiting each parent/child edge
// with v. The root itself is visited with a nil parent and an empty field.
func WalkEdges(v EdgeVisitor, n Node) {
	if IsNil(n) {
		return
	}
	if !v.VisitEdge(nil, n, "") {
		return
	}
	walkEdges(v, n)
}

func walkEdges(v EdgeVisitor, n Node) {
	n.iterate(func(field string, child Node) {
		if v.VisitEdge(n, child, field) {
			walkEdges(v, child)
		}
	})
}

type edgeInspector func(Node, Node, string) bool

func (f edgeInspector) VisitEdge(parent Node, child Node, field string) bool {
	return f(parent, child, field)
}

// InspectEdges traverses the tree rooted at n, calling f for each
// parent/child edge. If f returns false then the traversal does not descend
// below child.
func InspectEdges(n Node, f func(parent Node, child Node, field string) bool) {
	WalkEdges(edgeInspector(f), n)
}

// Iterate calls f for each direct child of n in field declaration order.
func Iterate(n Node, f func(field string, child Node)) {
	if IsNil(n) {
		return
	}
	n.iterate(edgeFunc(f))
}

// CountNodes returns the number of nodes in the tree rooted at n.
func CountNodes(n Node) int {
	var count int
	Inspect(n, func(n Node) bool {
		if !IsNil(n) {
			count++
		}
		return true
	})
	return count
}

// ConstructParentTable walks the tree rooted at root and returns a map from
// each node to its parent. The root maps to nil. capacityHint sizes the map
// up front; pass zero if unknown.
func ConstructParentTable(root Node, capacityHint int) map[Node]Node {
	parents := make(map[Node]Node, capacityHint)
	InspectEdges(root, func(parent Node, child Node, field string) bool {
		parents[child] = parent
		return true
	})
	return parents
}
