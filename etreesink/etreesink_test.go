package etreesink

import (
	"testing"

	"github.com/go-parse/html5/quirks"
	"github.com/go-parse/html5/sink"
)

// These mirror domsink's tests exactly, driving Sink purely through the
// sink.TreeSink/sink.Handle contract, to show the tree builder could
// swap one for the other without noticing.
func TestSinkBuildsMinimalDocument(t *testing.T) {
	s := New()
	var ts sink.TreeSink = s

	doc := ts.Document()
	html := ts.CreateElement(doc, sink.QualifiedName{Namespace: "http://www.w3.org/1999/xhtml", Local: "html"}, "", nil)
	doc.Append(html)

	body := ts.CreateElement(doc, sink.QualifiedName{Namespace: "http://www.w3.org/1999/xhtml", Local: "body"}, "", nil)
	html.Append(body)

	text := ts.CreateText("Hello")
	body.Append(text)

	if name, ok := html.ElementName(); !ok || name.Local != "html" {
		t.Fatalf("ElementName = %#v, %v; want html", name, ok)
	}
	bodyParent, ok := body.Parent()
	if !ok || !bodyParent.Equal(html) {
		t.Fatalf("body.Parent() did not return html")
	}
	last, ok := body.LastChild()
	if !ok || !last.Equal(text) {
		t.Fatalf("body.LastChild() did not return the text node")
	}
	if !last.IsText() || last.TextData() != "Hello" {
		t.Fatalf("text data = %q, want Hello", last.TextData())
	}
}

func TestSinkAppendAttributeFirstWins(t *testing.T) {
	s := New()
	var ts sink.TreeSink = s
	doc := ts.Document()
	a := ts.CreateElement(doc, sink.QualifiedName{Local: "a"}, "", nil)

	name := sink.QualifiedName{Local: "href"}
	a.AppendAttribute(name, "first")
	a.AppendAttribute(name, "second")

	if !a.HasAttribute("href") {
		t.Fatalf("HasAttribute(href) = false")
	}
}

func TestSinkAppendBeforeInsertsAtPosition(t *testing.T) {
	s := New()
	var ts sink.TreeSink = s
	doc := ts.Document()
	parent := ts.CreateElement(doc, sink.QualifiedName{Local: "ul"}, "", nil)
	doc.Append(parent)

	last := ts.CreateElement(doc, sink.QualifiedName{Local: "li"}, "", nil)
	parent.Append(last)

	first := ts.CreateElement(doc, sink.QualifiedName{Local: "li"}, "", nil)
	parent.AppendBefore(last, first)

	got, ok := parent.LastChild()
	if !ok || !got.Equal(last) {
		t.Fatalf("last child changed after AppendBefore")
	}
	prev, ok := last.PreviousSibling()
	if !ok || !prev.Equal(first) {
		t.Fatalf("PreviousSibling of last = %#v, want first", prev)
	}
}

func TestSinkAppendBeforeAtHead(t *testing.T) {
	s := New()
	var ts sink.TreeSink = s
	doc := ts.Document()
	parent := ts.CreateElement(doc, sink.QualifiedName{Local: "ul"}, "", nil)
	doc.Append(parent)

	only := ts.CreateElement(doc, sink.QualifiedName{Local: "li"}, "", nil)
	parent.Append(only)

	head := ts.CreateElement(doc, sink.QualifiedName{Local: "li"}, "", nil)
	parent.AppendBefore(only, head)

	prev, ok := only.PreviousSibling()
	if !ok || !prev.Equal(head) {
		t.Fatalf("PreviousSibling of only = %#v, want head", prev)
	}
	if _, ok := head.PreviousSibling(); ok {
		t.Fatalf("head should have no previous sibling")
	}
}

func TestSinkSetQuirksModeAndAppendDoctype(t *testing.T) {
	s := New()
	var ts sink.TreeSink = s
	ts.AppendDoctype(sink.Doctype{Name: "html"})
	ts.SetQuirksMode(quirks.Quirks)

	if s.QuirksMode != quirks.Quirks {
		t.Fatalf("QuirksMode not recorded on the sink")
	}
	last, ok := ts.Document().LastChild()
	if !ok || last.IsText() {
		t.Fatalf("AppendDoctype did not append a child to the document")
	}
}

func TestSinkParseErrorCollection(t *testing.T) {
	s := New()
	s.CollectErrors = true
	var ts sink.TreeSink = s

	ts.ParseError("bad doctype")
	if len(s.Errors) != 1 {
		t.Fatalf("Errors = %v, want 1 entry", s.Errors)
	}
}

func TestSinkTemplateContentIsLazyFragment(t *testing.T) {
	s := New()
	var ts sink.TreeSink = s
	doc := ts.Document()
	tmpl := ts.CreateElement(doc, sink.QualifiedName{Local: "template"}, "", nil)

	content1 := tmpl.TemplateContent()
	content2 := tmpl.TemplateContent()
	if !content1.Equal(content2) {
		t.Fatalf("TemplateContent() not stable across calls")
	}
	if _, ok := content1.ElementName(); ok {
		t.Fatalf("template content fragment must not report an element name")
	}
}

func TestSinkRemoveDetachesNode(t *testing.T) {
	s := New()
	var ts sink.TreeSink = s
	doc := ts.Document()
	parent := ts.CreateElement(doc, sink.QualifiedName{Local: "div"}, "", nil)
	doc.Append(parent)
	child := ts.CreateElement(doc, sink.QualifiedName{Local: "span"}, "", nil)
	parent.Append(child)

	child.Remove()

	if _, ok := child.Parent(); ok {
		t.Fatalf("removed child still reports a parent")
	}
	if _, ok := parent.LastChild(); ok {
		t.Fatalf("parent still reports a last child after removal")
	}
}

func TestSinkCustomElementDefinitionAlwaysAbsent(t *testing.T) {
	s := New()
	var ts sink.TreeSink = s
	_, ok := ts.CustomElementDefinition(nil, sink.QualifiedName{Local: "my-widget"}, "")
	if ok {
		t.Fatalf("CustomElementDefinition reported a definition; this module never populates one (§1 Non-goals)")
	}
}
