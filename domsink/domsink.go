// Package domsink is the default TreeSink (§6/C8) implementation, backed by
// the domtree arena (C5+C6). It is the concrete consumer the tree builder
// drives unless a caller substitutes one of its own (see etreesink for an
// alternate, beevik/etree-backed implementation demonstrating the sink
// abstraction is genuinely pluggable).
package domsink

import (
	"github.com/go-parse/html5/domtree"
	"github.com/go-parse/html5/errors"
	"github.com/go-parse/html5/quirks"
	"github.com/go-parse/html5/sink"
)

// Sink owns one arena and one document for the duration of a single parse.
type Sink struct {
	Arena *domtree.Arena
	Doc   domtree.NodeId

	// CollectErrors, when true, accumulates ParseError calls into Errors
	// instead of discarding them, mirroring the root package's
	// WithCollectErrors option.
	CollectErrors bool
	Errors        errors.ParseErrors
}

// New creates a sink with a fresh arena and document.
func New() *Sink {
	a := domtree.NewArena()
	doc := domtree.NewDocument(a)
	return &Sink{Arena: a, Doc: doc}
}

func (s *Sink) Document() sink.Handle {
	return domtree.NewHandle(s.Arena, s.Doc)
}

func (s *Sink) CreateElement(doc sink.Handle, name sink.QualifiedName, isAttr string, registry *sink.Registry) sink.Handle {
	d, _ := doc.(domtree.Handle)
	docID := s.Doc
	if !d.IsNone() {
		docID = d.ID()
	}
	id := domtree.NewElementNS(s.Arena, docID, name.Local, name.Namespace)
	s.Arena.WithMut(id, func(n *domtree.Node) {
		n.Name.Prefix = name.Prefix
		if registry != nil {
			n.Registry = &domtree.Registry{Scoped: registry.Scoped}
		}
	})
	_ = isAttr // no custom-element upgrade side effects (§1 Non-goals)
	return domtree.NewHandle(s.Arena, id)
}

func (s *Sink) CreateComment(content string) sink.Handle {
	id := domtree.NewComment(s.Arena, s.Doc, content)
	return domtree.NewHandle(s.Arena, id)
}

func (s *Sink) CreateText(content string) sink.Handle {
	id := domtree.NewText(s.Arena, s.Doc, content)
	return domtree.NewHandle(s.Arena, id)
}

func (s *Sink) AppendDoctype(d sink.Doctype) {
	id := domtree.NewDocumentType(s.Arena, s.Doc, d.Name, d.PublicID, d.SystemID)
	s.Arena.Append(s.Doc, id)
	s.Arena.WithMut(s.Doc, func(n *domtree.Node) { n.Doctype = id })
}

func (s *Sink) SetQuirksMode(mode quirks.Mode) {
	s.Arena.WithMut(s.Doc, func(n *domtree.Node) { n.QuirksMode = mode })
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
