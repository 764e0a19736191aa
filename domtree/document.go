package domtree

// DocumentElement returns the document's root element (the html element),
// or NoNode if none has been inserted yet.
func (a *Arena) DocumentElement(doc NodeId) NodeId {
	for child := range a.Children(doc) {
		if a.slot(child).Type == ElementNode {
			return child
		}
	}
	return NoNode
}

func (a *Arena) firstElementChildNamed(parent NodeId, local string) NodeId {
	if parent == NoNode {
		return NoNode
	}
	for child := range a.Children(parent) {
		n := a.slot(child)
		if n.Type == ElementNode && n.Name.Namespace == NamespaceHTML && n.Name.Local == local {
			return child
		}
	}
	return NoNode
}

// Head returns the document's head element, or NoNode.
func (a *Arena) Head(doc NodeId) NodeId {
	return a.firstElementChildNamed(a.DocumentElement(doc), "head")
}

// Body returns the document's body element, or NoNode.
func (a *Arena) Body(doc NodeId) NodeId {
	return a.firstElementChildNamed(a.DocumentElement(doc), "body")
}

// Title returns the text content of the first <title> under <head>, or "".
func (a *Arena) Title(doc NodeId) string {
	title := a.firstElementChildNamed(a.Head(doc), "title")
	if title == NoNode {
		return ""
	}
	return a.Text(title)
}
