package domtree

// Range is a live boundary-point pair `(container, offset)` tracked by its
// owning Document (§4.7). Offsets are child indices, not character offsets.
type Range struct {
	StartContainer NodeId
	StartOffset    int
	EndContainer   NodeId
	EndOffset      int
}

// NewRange creates a range and registers it with doc so it participates in
// offset adjustment on subsequent inserts/removes under doc.
func (a *Arena) NewRange(doc NodeId, startContainer NodeId, startOffset int, endContainer NodeId, endOffset int) *Range {
	r := &Range{StartContainer: startContainer, StartOffset: startOffset, EndContainer: endContainer, EndOffset: endOffset}
	d := a.slot(doc)
	d.Ranges = append(d.Ranges, r)
	return r
}

// adjustRanges implements the §4.7 offset-adjustment rule: inserting (delta
// > 0) or removing (delta < 0) children before position pos in parent shifts
// every live boundary point whose container is parent and whose offset is
// greater than pos by delta, clamped at pos so a range can never observe a
// negative offset.
func (a *Arena) adjustRanges(parent NodeId, pos int, delta int) {
	doc := a.ownerDocument(parent)
	if doc == NoNode {
		return
	}
	d := a.slot(doc)
	for _, r := range d.Ranges {
		if r.StartContainer == parent && r.StartOffset > pos {
			r.StartOffset = clampNonNegative(r.StartOffset+delta, pos)
		}
		if r.EndContainer == parent && r.EndOffset > pos {
			r.EndOffset = clampNonNegative(r.EndOffset+delta, pos)
		}
	}
}

func clampNonNegative(v, floor int) int {
	if v < floor {
		return floor
	}
	return v
}
