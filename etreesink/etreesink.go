// Package etreesink is an alternate TreeSink (§6/C8) backed by
// beevik/etree's generic XML-style tree instead of domtree's arena. It
// exists to demonstrate that the tree builder (C7) never depends on
// anything beyond the sink.TreeSink/sink.Handle contract: the same
// construction algorithm drives this tree exactly as it drives domsink's.
//
// etree has no native concept of the DOM-specific bits the contract
// still requires (parser-inserted flags, associated forms, lazily
// created template content, namespace URIs as opposed to prefixes), so
// this sink keeps that bookkeeping in side tables keyed by node
// identity rather than widening etree's own types.
package etreesink

import (
	"github.com/beevik/etree"

	"github.com/go-parse/html5/errors"
	"github.com/go-parse/html5/quirks"
	"github.com/go-parse/html5/sink"
)

// Sink owns one etree.Document for the duration of a single parse.
type Sink struct {
	Doc        *etree.Document
	QuirksMode quirks.Mode

	// CollectErrors, when true, accumulates ParseError calls into Errors
	// instead of discarding them, mirroring domsink's option.
	CollectErrors bool
	Errors        errors.ParseErrors

	docRoot *etree.Element

	namespaces      map[*etree.Element]string
	parserInserted  map[*etree.Element]bool
	associatedForm  map[*etree.Element]etree.Token
	templateContent map[*etree.Element]*etree.Element
	fragmentRoots   map[*etree.Element]bool
}

// New creates a sink with a fresh, empty document.
func New() *Sink {
	doc := etree.NewDocument()
	return &Sink{
		Doc:             doc,
		docRoot:         doc.Root(),
		namespaces:      make(map[*etree.Element]string),
		parserInserted:  make(map[*etree.Element]bool),
		associatedForm:  make(map[*etree.Element]etree.Token),
		templateContent: make(map[*etree.Element]*etree.Element),
		fragmentRoots:   make(map[*etree.Element]bool),
	}
}

func (s *Sink) Document() sink.Handle {
	return Handle{sink: s, tok: s.docRoot}
}

func (s *Sink) CreateElement(doc sink.Handle, name sink.QualifiedName, isAttr string, registry *sink.Registry) sink.Handle {
	et := etree.NewElement(name.Local)
	et.Space = name.Prefix
	if name.Namespace != "" {
		s.namespaces[et] = name.Namespace
	}
	_ = doc      // single-document sink; every element belongs to s.Doc
	_ = isAttr   // no custom-element upgrade side effects (§1 Non-goals)
	_ = registry // never consulted; CustomElementDefinition always reports absent
	return Handle{sink: s, tok: et}
}

func (s *Sink) CreateComment(content string) sink.Handle {
	return Handle{sink: s, tok: &etree.Comment{Data: content}}
}

func (s *Sink) CreateText(content string) sink.Handle {
	return Handle{sink: s, tok: &etree.CharData{Data: content}}
}

func (s *Sink) AppendDoctype(d sink.Doctype) {
	text := "DOCTYPE " + d.Name
	switch {
	case d.PublicID != "":
		text += ` PUBLIC "` + d.PublicID + `" "` + d.SystemID + `"`
	case d.HasSystemID:
		text += ` SYSTEM "` + d.SystemID + `"`
	}
	s.docRoot.AddChild(&etree.Directive{Data: text})
}

func (s *Sink) SetQuirksMode(mode quirks.Mode) {
	s.QuirksMode = mode
}

func (s *Sink) ParseError(msg string) {
	if !s.CollectErrors {
		return
	}
	s.Errors = append(s.Errors, &errors.ParseError{Code: msg, Message: msg})
}

func (s *Sink) CustomElementDefinition(registry *sink.Registry, name sink.QualifiedName, isAttr string) (sink.Definition, bool) {
	return sink.Definition{}, false
}

var _ sink.TreeSink = (*Sink)(nil)

// Handle adapts an etree.Token to sink.Handle. It is a plain, comparable
// struct: the zero value's tok is nil, so IsNone() works without any
// special construction.
type Handle struct {
	sink *Sink
	tok  etree.Token
}

func (h Handle) IsNone() bool { return h.tok == nil }

func (h Handle) elementLike() (*etree.Element, bool) {
	et, ok := h.tok.(*etree.Element)
	return et, ok
}

func (h Handle) isDocumentNode() bool {
	return !h.IsNone() && h.tok == etree.Token(h.sink.docRoot)
}

func (h Handle) NodeDocument() sink.Handle {
	return Handle{sink: h.sink, tok: h.sink.docRoot}
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
	p := h.tok.Parent()
	if p == nil {
		return Handle{}, false
	}
	return Handle{sink: h.sink, tok: p}, true
}

func (h Handle) ElementName() (sink.QualifiedName, bool) {
	if h.IsNone() || h.isDocumentNode() {
		return sink.QualifiedName{}, false
	}
	et, ok := h.elementLike()
	if !ok || h.sink.fragmentRoots[et] {
		return sink.QualifiedName{}, false
	}
	return sink.QualifiedName{
		Namespace: h.sink.namespaces[et],
		Prefix:    et.Space,
		Local:     et.Tag,
	}, true
}

func (h Handle) CustomElementRegistry() *sink.Registry { return nil }

func (h Handle) IsText() bool {
	if h.IsNone() {
		return false
	}
	_, ok := h.tok.(*etree.CharData)
	return ok
}

func (h Handle) TextData() string {
	switch t := h.tok.(type) {
	case *etree.CharData:
		return t.Data
	case *etree.Comment:
		return t.Data
	case *etree.Directive:
		return t.Data
	default:
		return ""
	}
}

func (h Handle) AppendTextData(s string) {
	if cd, ok := h.tok.(*etree.CharData); ok {
		cd.Data += s
	}
}

func (h Handle) LastChild() (sink.Handle, bool) {
	et, ok := h.elementLike()
	if !ok || len(et.Child) == 0 {
		return Handle{}, false
	}
	return Handle{sink: h.sink, tok: et.Child[len(et.Child)-1]}, true
}

func (h Handle) PreviousSibling() (sink.Handle, bool) {
	if h.IsNone() {
		return Handle{}, false
	}
	p := h.tok.Parent()
	if p == nil {
		return Handle{}, false
	}
	idx := h.tok.Index()
	if idx <= 0 {
		return Handle{}, false
	}
	return Handle{sink: h.sink, tok: p.Child[idx-1]}, true
}

func (h Handle) Append(child sink.Handle) {
	et, ok := h.elementLike()
	if !ok {
		return
	}
	c := child.(Handle)
	et.AddChild(c.tok)
}

// AppendBefore inserts child immediately before ref among h's children.
// etree's AddChild always appends at the end, so this appends then
// relocates the token within the (exported) Child slice; reordering the
// slice never touches a token's own parent back-pointer, so it stays
// consistent with AddChild's bookkeeping.
func (h Handle) AppendBefore(ref, child sink.Handle) {
	et, ok := h.elementLike()
	if !ok {
		return
	}
	c := child.(Handle)
	r := ref.(Handle)

	et.AddChild(c.tok)
	n := len(et.Child)
	moved := et.Child[n-1]
	et.Child = et.Child[:n-1]

	idx := r.tok.Index()
	if idx < 0 || idx > len(et.Child) {
		idx = len(et.Child)
	}
	et.Child = append(et.Child, nil)
	copy(et.Child[idx+1:], et.Child[idx:])
	et.Child[idx] = moved
}

func (h Handle) AppendAttribute(name sink.QualifiedName, value string) {
	et, ok := h.elementLike()
	if !ok {
		return
	}
	if et.SelectAttr(name.Local) != nil {
		return // first occurrence wins, matching domtree's AppendAttribute
	}
	et.CreateAttr(name.Local, value)
}

func (h Handle) HasAttribute(local string) bool {
	et, ok := h.elementLike()
	if !ok {
		return false
	}
	return et.SelectAttr(local) != nil
}

func (h Handle) SetParserInserted() {
	if et, ok := h.elementLike(); ok {
		h.sink.parserInserted[et] = true
	}
}

func (h Handle) SetAssociatedForm(form sink.Handle) {
	et, ok := h.elementLike()
	if !ok {
		return
	}
	f := form.(Handle)
	h.sink.associatedForm[et] = f.tok
}

func (h Handle) Remove() {
	if h.IsNone() {
		return
	}
	p := h.tok.Parent()
	if p == nil {
		return
	}
	p.RemoveChildAt(h.tok.Index())
}

// TemplateContent lazily creates the content document fragment of a
// <template> element, keyed by the element's identity so repeated calls
// return the same handle.
func (h Handle) TemplateContent() sink.Handle {
	et, ok := h.elementLike()
	if !ok {
		return Handle{}
	}
	if frag, exists := h.sink.templateContent[et]; exists {
		return Handle{sink: h.sink, tok: frag}
	}
	frag := etree.NewElement("#document-fragment")
	h.sink.templateContent[et] = frag
	h.sink.fragmentRoots[frag] = true
	return Handle{sink: h.sink, tok: frag}
}

func (h Handle) Equal(other sink.Handle) bool {
	o, ok := other.(Handle)
	if !ok {
		return false
	}
	return h.sink == o.sink && h.tok == o.tok
}

var _ sink.Handle = Handle{}
