package domtree

import "github.com/go-parse/html5/sink"

// Handle adapts a (arena, NodeId) pair to sink.Handle, letting the tree
// builder (C7) drive this arena through the same abstract contract any
// other TreeSink implementation would use (C8). It is a plain, comparable
// struct: the zero value's NodeId is NoNode, so IsNone() works without any
// special construction.
type Handle struct {
	arena *Arena
	id    NodeId
}

// NewHandle wraps a NodeId for sink consumption.
func NewHandle(a *Arena, id NodeId) Handle {
	return Handle{arena: a, id: id}
}

func (h Handle) ID() NodeId { return h.id }

func (h Handle) IsNone() bool { return h.arena == nil || h.id == NoNode }

func (h Handle) NodeDocument() sink.Handle {
	if h.IsNone() {
		return Handle{}
	}
	return Handle{arena: h.arena, id: h.arena.slot(h.id).NodeDocument}
}

func (h Handle) Root() sink.Handle {
	cur := h
	for {
		p, ok := cur.Parent()
		if !ok {
			return cur
		}
		cur = p.(Handle)
	}
}

func (h Handle) Parent() (sink.Handle, bool) {
	if h.IsNone() {
		return Handle{}, false
	}
	p := h.arena.slot(h.id).Parent
	if p == NoNode {
		return Handle{}, false
	}
	return Handle{arena: h.arena, id: p}, true
}

func toSinkName(q QualifiedName) sink.QualifiedName {
	return sink.QualifiedName{Namespace: q.Namespace, Prefix: q.Prefix, Local: q.Local}
}

func fromSinkName(q sink.QualifiedName) QualifiedName {
	return QualifiedName{Namespace: q.Namespace, Prefix: q.Prefix, Local: q.Local}
}

func (h Handle) ElementName() (sink.QualifiedName, bool) {
	if h.IsNone() {
		return sink.QualifiedName{}, false
	}
	n := h.arena.slot(h.id)
	if n.Type != ElementNode {
		return sink.QualifiedName{}, false
	}
	return toSinkName(n.Name), true
}

func (h Handle) CustomElementRegistry() *sink.Registry {
	if h.IsNone() {
		return nil
	}
	r := h.arena.slot(h.id).Registry
	if r == nil {
		return nil
	}
	return &sink.Registry{Scoped: r.Scoped}
}

func (h Handle) IsText() bool {
	return !h.IsNone() && h.arena.slot(h.id).Type == TextNode
}

func (h Handle) TextData() string {
	if h.IsNone() {
		return ""
	}
	return h.arena.slot(h.id).Data
}

func (h Handle) AppendTextData(s string) {
	if h.IsNone() {
		return
	}
	n := h.arena.slot(h.id)
	n.Data += s
}

func (h Handle) LastChild() (sink.Handle, bool) {
	if h.IsNone() {
		return Handle{}, false
	}
	c := h.arena.slot(h.id).LastChild
	if c == NoNode {
		return Handle{}, false
	}
	return Handle{arena: h.arena, id: c}, true
}

func (h Handle) PreviousSibling() (sink.Handle, bool) {
	if h.IsNone() {
		return Handle{}, false
	}
	c := h.arena.slot(h.id).PreviousSibling
	if c == NoNode {
		return Handle{}, false
	}
	return Handle{arena: h.arena, id: c}, true
}

func (h Handle) Append(child sink.Handle) {
	c := child.(Handle)
	h.arena.Append(h.id, c.id)
}

func (h Handle) AppendBefore(ref, child sink.Handle) {
	r := ref.(Handle)
	c := child.(Handle)
	h.arena.InsertBefore(h.id, c.id, r.id)
}

func (h Handle) AppendAttribute(name sink.QualifiedName, value string) {
	h.arena.AppendAttribute(h.id, fromSinkName(name), value)
}

func (h Handle) HasAttribute(local string) bool {
	return h.arena.HasAttribute(h.id, local)
}

func (h Handle) SetParserInserted() {
	h.arena.slot(h.id).ParserInserted = true
}

func (h Handle) SetAssociatedForm(form sink.Handle) {
	f := form.(Handle)
	h.arena.slot(h.id).AssociatedForm = f.id
}

func (h Handle) Remove() {
	if h.IsNone() {
		return
	}
	h.arena.Remove(h.id)
}

func (h Handle) TemplateContent() sink.Handle {
	id := h.arena.EnsureTemplateContent(h.id)
	return Handle{arena: h.arena, id: id}
}

func (h Handle) Equal(other sink.Handle) bool {
	o, ok := other.(Handle)
	if !ok {
		return false
	}
	return h.arena == o.arena && h.id == o.id
}

var _ sink.Handle = Handle{}
