// Package domtree implements a minimal, arena-backed DOM tree: the backing
// store the tree-construction driver mutates through the sink interfaces.
//
// Nodes are addressed by a stable, opaque NodeId rather than by pointer.
// Storage is chunked (grounded on the allocator pattern used elsewhere in
// this codebase for Element/Text/Comment pooling) so that a *Node obtained
// from Read/WithMut stays valid for the lifetime of the arena even as later
// nodes are appended: growth only ever allocates a new chunk, it never
// reallocates or moves an existing one.
package domtree

// NodeId is an opaque, stable identity for a node inside an Arena.
type NodeId int32

// NoNode is the zero-value-safe "absent" id. It is never a valid node index.
const NoNode NodeId = -1

const chunkSize = 256

// Arena is the single owner of every Node it hands out a NodeId for.
// It is not safe for concurrent use; a parse session owns exactly one Arena.
type Arena struct {
	chunks [][]Node
	length int
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

func (a *Arena) slot(id NodeId) *Node {
	if id < 0 || int(id) >= a.length {
		panic("domtree: invalid NodeId")
	}
	ci := int(id) / chunkSize
	oi := int(id) % chunkSize
	return &a.chunks[ci][oi]
}

func (a *Arena) growTo(n int) {
	for len(a.chunks)*chunkSize < n {
		a.chunks = append(a.chunks, make([]Node, chunkSize))
	}
}

func (a *Arena) reserve() NodeId {
	id := NodeId(a.length)
	a.growTo(a.length + 1)
	a.length++
	return id
}

// Insert adds a fully-formed, detached node to the arena and returns its id.
// Callers should build nodes via the New* constructors in node.go, which
// already set the sibling/parent fields to NoNode.
func (a *Arena) Insert(n Node) NodeId {
	id := a.reserve()
	n.id = id
	*a.slot(id) = n
	return id
}

// InsertCyclic reserves an id before the node is constructed, so the
// constructor can embed the id in the node itself (a Document whose
// node_document is its own id, for instance).
func (a *Arena) InsertCyclic(f func(NodeId) Node) NodeId {
	id := a.reserve()
	n := f(id)
	n.id = id
	*a.slot(id) = n
	return id
}

// Read returns a pointer to the node's current state. The pointer is stable
// across further Insert calls but must not be retained past the arena's
// lifetime.
func (a *Arena) Read(id NodeId) *Node {
	return a.slot(id)
}

// WithMut mutates a node in place.
func (a *Arena) WithMut(id NodeId, f func(*Node)) {
	f(a.slot(id))
}

// IndexOf returns the child's position among its parent's children.
func (a *Arena) IndexOf(id NodeId) int {
	n := a.slot(id)
	idx := 0
	for sib := n.PreviousSibling; sib != NoNode; sib = a.slot(sib).PreviousSibling {
		idx++
	}
	return idx
}

// Children yields the direct children of a node, in document order.
func (a *Arena) Children(parent NodeId) func(yield func(NodeId) bool) {
	return func(yield func(NodeId) bool) {
		for child := a.slot(parent).FirstChild; child != NoNode; child = a.slot(child).NextSibling {
			if !yield(child) {
				return
			}
		}
	}
}

// Descendants yields every node in the subtree rooted at id, pre-order,
// not including id itself.
func (a *Arena) Descendants(id NodeId) func(yield func(NodeId) bool) {
	return func(yield func(NodeId) bool) {
		a.walk(id, yield)
	}
}

func (a *Arena) walk(id NodeId, yield func(NodeId) bool) bool {
	for child := a.slot(id).FirstChild; child != NoNode; child = a.slot(child).NextSibling {
		if !yield(child) {
			return false
		}
		if !a.walk(child, yield) {
			return false
		}
	}
	return true
}

// Append links child as the last child of parent. Precondition: child is
// currently detached (Parent == NoNode); violating it is a programmer error.
func (a *Arena) Append(parent, child NodeId) {
	c := a.slot(child)
	if c.Parent != NoNode {
		panic("domtree: append of a node that already has a parent")
	}
	a.adopt(child, parent)

	p := a.slot(parent)
	c = a.slot(child)
	c.Parent = parent
	c.PreviousSibling = p.LastChild
	c.NextSibling = NoNode
	if p.LastChild != NoNode {
		a.slot(p.LastChild).NextSibling = child
	} else {
		p.FirstChild = child
	}
	p.LastChild = child
	p.ChildCount++
}

// InsertBefore links child immediately before ref, which must already be a
// child of parent. A nil ref (NoNode) behaves like Append.
func (a *Arena) InsertBefore(parent, child, ref NodeId) {
	if ref == NoNode {
		a.Append(parent, child)
		return
	}
	c := a.slot(child)
	if c.Parent != NoNode {
		panic("domtree: insert of a node that already has a parent")
	}
	pos := a.IndexOf(ref)
	a.adopt(child, parent)

	p := a.slot(parent)
	c = a.slot(child)
	r := a.slot(ref)
	prev := r.PreviousSibling
	c.Parent = parent
	c.PreviousSibling = prev
	c.NextSibling = ref
	r.PreviousSibling = child
	if prev != NoNode {
		a.slot(prev).NextSibling = child
	} else {
		p.FirstChild = child
	}
	p.ChildCount++
	a.adjustRanges(parent, pos, 1)
}

// Remove disconnects child from its parent and sibling chain.
func (a *Arena) Remove(child NodeId) {
	c := a.slot(child)
	parent := c.Parent
	if parent == NoNode {
		return
	}
	idx := a.IndexOf(child)
	p := a.slot(parent)
	prev, next := c.PreviousSibling, c.NextSibling
	if prev != NoNode {
		a.slot(prev).NextSibling = next
	} else {
		p.FirstChild = next
	}
	if next != NoNode {
		a.slot(next).PreviousSibling = prev
	} else {
		p.LastChild = prev
	}
	p.ChildCount--
	c.Parent, c.PreviousSibling, c.NextSibling = NoNode, NoNode, NoNode
	a.adjustRanges(parent, idx, -1)
}

// adopt implements the document-adoption procedure (§4.5): when child's
// subtree belongs to a different document than parent, every descendant's
// NodeDocument is rewritten before the link is made.
func (a *Arena) adopt(child, parent NodeId) {
	newDoc := a.ownerDocument(parent)
	oldDoc := a.slot(child).NodeDocument
	if newDoc == oldDoc {
		return
	}
	a.slot(child).NodeDocument = newDoc
	for id := range a.Descendants(child) {
		a.slot(id).NodeDocument = newDoc
	}
}

func (a *Arena) ownerDocument(id NodeId) NodeId {
	n := a.slot(id)
	if n.Type == DocumentNode {
		return id
	}
	return n.NodeDocument
}
