package domtree

import (
	"strings"

	"github.com/go-parse/html5/quirks"
)

// NodeType discriminates the kinds of node this arena can hold. There is no
// separate Go type per kind (no interface, no downcasting): Node is a single
// struct with kind-specific fields, matching the "tagged variant" resolution
// recorded for the cyclic-ownership/polymorphism design notes.
type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
	CommentNode
	DocumentNode
	DocumentTypeNode
	DocumentFragmentNode
)

func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CommentNode:
		return "comment"
	case DocumentNode:
		return "document"
	case DocumentTypeNode:
		return "doctype"
	case DocumentFragmentNode:
		return "fragment"
	default:
		return "unknown"
	}
}

// Recognized namespace URIs (§3).
const (
	NamespaceHTML   = "http://www.w3.org/1999/xhtml"
	NamespaceMathML = "http://www.w3.org/1998/Math/MathML"
	NamespaceSVG    = "http://www.w3.org/2000/svg"
	NamespaceXLink  = "http://www.w3.org/1999/xlink"
	NamespaceXML    = "http://www.w3.org/XML/1998/namespace"
	NamespaceXMLNS  = "http://www.w3.org/2000/xmlns/"
)

// QualifiedName is (namespace?, namespace_prefix?, local_name) per §3.
type QualifiedName struct {
	Namespace string
	Prefix    string
	Local     string
}

// Attribute is a namespaced name/value pair. Attributes are modeled as plain
// values, not as arena nodes: this backing store only goes as deep as the
// tree builder actually touches (§1), and nothing in the tree-construction
// algorithm needs an attribute's own identity or node_document — only the
// owning element's.
type Attribute struct {
	Name  QualifiedName
	Value string
}

// Node is the single concrete node representation for every node type this
// arena stores. Unused fields for a given Type are simply zero.
type Node struct {
	id   NodeId
	Type NodeType

	NodeDocument NodeId

	Parent          NodeId
	PreviousSibling NodeId
	NextSibling     NodeId
	FirstChild      NodeId
	LastChild       NodeId
	ChildCount      int

	// Element fields.
	Name            QualifiedName
	Attrs           []Attribute
	TemplateContent NodeId
	ParserInserted  bool
	AssociatedForm  NodeId
	Registry        *Registry

	// Text / Comment data.
	Data string

	// DocumentType fields.
	PublicID string
	SystemID string

	// Document fields.
	Doctype    NodeId
	QuirksMode quirks.Mode
	Ranges     []*Range
}

// ID returns the node's own identity.
func (n *Node) ID() NodeId { return n.id }

// Registry is an opaque custom-element registry handle. This module never
// populates one (no JS execution, no custom-element upgrades — §1
// Non-goals) but the field and the lookup protocol around it are part of
// the element-creation contract (§4.6) and must exist for a pluggable sink
// to use.
type Registry struct {
	Scoped bool
	name   string
}

func detached() Node {
	return Node{
		Parent:          NoNode,
		PreviousSibling: NoNode,
		NextSibling:     NoNode,
		FirstChild:      NoNode,
		LastChild:       NoNode,
		TemplateContent: NoNode,
		AssociatedForm:  NoNode,
		Doctype:         NoNode,
	}
}

// NewDocument inserts a new, self-referential Document node: its own
// NodeDocument is its own id, resolved via InsertCyclic (§4.5/§9).
func NewDocument(a *Arena) NodeId {
	return a.InsertCyclic(func(id NodeId) Node {
		n := detached()
		n.Type = DocumentNode
		n.NodeDocument = id
		return n
	})
}

// NewDocumentFragment inserts a detached DocumentFragment owned by doc.
func NewDocumentFragment(a *Arena, doc NodeId) NodeId {
	n := detached()
	n.Type = DocumentFragmentNode
	n.NodeDocument = doc
	return a.Insert(n)
}

// NewElement inserts a detached HTML-namespace element with a lowercased
// local name.
func NewElement(a *Arena, doc NodeId, tagName string) NodeId {
	return NewElementNS(a, doc, strings.ToLower(tagName), NamespaceHTML)
}

// NewElementNS inserts a detached element in the given namespace.
func NewElementNS(a *Arena, doc NodeId, tagName, namespace string) NodeId {
	n := detached()
	n.Type = ElementNode
	n.NodeDocument = doc
	n.Name = QualifiedName{Namespace: namespace, Local: tagName}
	return a.Insert(n)
}

// NewText inserts a detached text node.
func NewText(a *Arena, doc NodeId, data string) NodeId {
	n := detached()
	n.Type = TextNode
	n.NodeDocument = doc
	n.Data = data
	return a.Insert(n)
}

// NewComment inserts a detached comment node.
func NewComment(a *Arena, doc NodeId, data string) NodeId {
	n := detached()
	n.Type = CommentNode
	n.NodeDocument = doc
	n.Data = data
	return a.Insert(n)
}

// NewDocumentType inserts a detached DOCTYPE node.
func NewDocumentType(a *Arena, doc NodeId, name, publicID, systemID string) NodeId {
	n := detached()
	n.Type = DocumentTypeNode
	n.NodeDocument = doc
	n.Data = name
	n.PublicID = publicID
	n.SystemID = systemID
	return a.Insert(n)
}

// AppendAttribute appends an attribute if no attribute of the same
// qualified name already exists — "first wins" on a duplicate name, per
// §3 and the element-creation protocol's attribute-application step (§4.6).
func (a *Arena) AppendAttribute(id NodeId, name QualifiedName, value string) {
	n := a.slot(id)
	for _, attr := range n.Attrs {
		if attr.Name == name {
			return
		}
	}
	n.Attrs = append(n.Attrs, Attribute{Name: name, Value: value})
}

// GetAttribute looks up a no-namespace attribute by local name.
func (a *Arena) GetAttribute(id NodeId, local string) (string, bool) {
	for _, attr := range a.slot(id).Attrs {
		if attr.Name.Namespace == "" && attr.Name.Local == local {
			return attr.Value, true
		}
	}
	return "", false
}

// HasAttribute reports whether a no-namespace attribute exists.
func (a *Arena) HasAttribute(id NodeId, local string) bool {
	_, ok := a.GetAttribute(id, local)
	return ok
}

// EnsureTemplateContent lazily creates and returns the template element's
// content document fragment.
func (a *Arena) EnsureTemplateContent(id NodeId) NodeId {
	n := a.slot(id)
	if n.TemplateContent == NoNode {
		n.TemplateContent = NewDocumentFragment(a, n.NodeDocument)
	}
	return n.TemplateContent
}

// Text concatenates the character-data descendants of a node, depth-first.
func (a *Arena) Text(id NodeId) string {
	var sb strings.Builder
	for child := range a.Children(id) {
		n := a.slot(child)
		switch n.Type {
		case TextNode:
			sb.WriteString(n.Data)
		case ElementNode:
			sb.WriteString(a.Text(child))
		}
	}
	return sb.String()
}
