// Package sink defines the two external interfaces named in §6: TokenSink,
// the tokenizer's collaborator, and TreeSink/Handle, the tree builder's
// collaborator. Any DOM-like consumer can implement TreeSink; domsink is
// this module's default, arena-backed implementation, and etreesink is an
// alternate one backed by a third-party XML tree library.
package sink

import (
	"github.com/go-parse/html5/quirks"
	"github.com/go-parse/html5/token"
)

// QualifiedName is (namespace?, namespace_prefix?, local_name), shared by
// every layer that needs to name an element or attribute without depending
// on a concrete tree implementation.
type QualifiedName struct {
	Namespace string
	Prefix    string
	Local     string
}

// Attribute is a namespaced name/value pair.
type Attribute struct {
	Name  QualifiedName
	Value string
}

// Doctype is the parsed DOCTYPE data the tree builder hands to a TreeSink.
type Doctype struct {
	Name        string
	PublicID    string
	SystemID    string
	HasSystemID bool
	ForceQuirks bool
}

// Registry is an opaque custom-element registry handle. This module never
// populates a definition (no script execution, §1 Non-goals) but the
// lookup protocol is part of the element-creation contract (§4.6).
type Registry struct {
	Scoped bool
}

// Definition is an opaque custom-element definition. Always absent here.
type Definition struct{}

// Handle is a polymorphic reference to a node in whatever tree a TreeSink
// implementation maintains (§6).
type Handle interface {
	// IsNone reports whether this handle refers to "no node" — the zero
	// value of a Handle implementation must satisfy IsNone() == true.
	IsNone() bool

	NodeDocument() Handle
	Root() Handle
	Parent() (Handle, bool)

	// ElementName reports the qualified name if this handle is an
	// element, and ok=false otherwise.
	ElementName() (QualifiedName, bool)
	CustomElementRegistry() *Registry

	IsText() bool
	TextData() string
	AppendTextData(s string)

	LastChild() (Handle, bool)
	PreviousSibling() (Handle, bool)

	Append(child Handle)
	AppendBefore(ref, child Handle)
	AppendAttribute(name QualifiedName, value string)
	HasAttribute(local string) bool

	SetParserInserted()
	SetAssociatedForm(form Handle)

	Remove()

	// TemplateContent returns (lazily creating) the content document
	// fragment of a <template> element.
	TemplateContent() Handle

	// Equal reports reference identity, not structural equality.
	Equal(other Handle) bool
}

// TreeSink is the tree builder's collaborator (§6).
type TreeSink interface {
	Document() Handle
	CreateElement(doc Handle, name QualifiedName, isAttr string, registry *Registry) Handle
	CreateComment(content string) Handle
	CreateText(content string) Handle
	AppendDoctype(d Doctype)
	SetQuirksMode(mode quirks.Mode)
	ParseError(msg string)
	CustomElementDefinition(registry *Registry, name QualifiedName, isAttr string) (Definition, bool)
}

// TokenSink is the tokenizer's collaborator (§6). The tree builder
// implements this interface directly: ProcessToken below is its Process.
type TokenSink interface {
	Process(tok token.Token)
	EOF()
	ParseError(msg string)
	// AdjustedNodeNamespaceIsHTML is queried only from MarkupDeclarationOpen
	// for CDATA dispatch; a TokenSink with no tree context returns true.
	AdjustedNodeNamespaceIsHTML() bool
}
