// Package quirks implements the doctype-to-quirks-mode classifier (C4):
// a pure function from a parsed DOCTYPE token to one of NoQuirks,
// LimitedQuirks, or Quirks.
//
// Grounded on treebuilder/utils.go's doctypeErrorAndQuirks in the teacher
// repo, split out into its own package and given an explicit iframeSrcdoc
// parameter instead of a field on the tree builder, so the rule ladder in
// §4.4 is independently testable without constructing a TreeBuilder.
package quirks

import "strings"

// Mode is the document-level quirks classification.
type Mode int

const (
	NoQuirks Mode = iota
	Quirks
	LimitedQuirks
)

func (m Mode) String() string {
	switch m {
	case NoQuirks:
		return "no-quirks"
	case Quirks:
		return "quirks"
	case LimitedQuirks:
		return "limited-quirks"
	default:
		return "unknown"
	}
}

// Doctype is the subset of a DOCTYPE token the classifier needs.
type Doctype struct {
	Name        string
	PublicID    string
	SystemID    string
	HasSystemID bool
	ForceQuirks bool
}

// exactPublicQuirks are the three public ids that force Quirks on an exact
// (ASCII-case-insensitive) match; exactSystemQuirks is the one such system id.
var exactPublicQuirks = map[string]bool{
	"-//w3o//dtd w3 html strict 3.0//en//":    true,
	"-/w3c/dtd html 4.0 transitional/en":      true,
	"html":                                    true,
}

const exactSystemQuirks = "http://www.ibm.com/data/dtd/v11/ibmxhtml1-transitional.dtd"

// Classify implements the rule ladder of §4.4, with iframeSrcdoc as an
// explicit short-circuit: an iframe's srcdoc document is NoQuirks whatever
// its name and ids, though a force-quirks doctype still yields Quirks. The
// exception is visible as a parameter, not buried as a field mutation on a
// stateful classifier.
func Classify(d Doctype, iframeSrcdoc bool) Mode {
	if d.ForceQuirks {
		return Quirks
	}
	if iframeSrcdoc {
		return NoQuirks
	}
	nameLower := strings.ToLower(d.Name)
	if nameLower != "html" {
		return Quirks
	}

	publicLower := strings.ToLower(d.PublicID)
	systemLower := strings.ToLower(d.SystemID)

	if exactPublicQuirks[publicLower] {
		return Quirks
	}
	if systemLower == exactSystemQuirks {
		return Quirks
	}
	if hasAnyPrefix(publicLower, quirksPublicPrefixes) {
		return Quirks
	}
	if hasAnyPrefix(publicLower, limitedQuirksPublicPrefixes) {
		if !d.HasSystemID {
			return Quirks
		}
		return LimitedQuirks
	}
	if hasAnyPrefix(publicLower, html4PublicPrefixes) {
		if !d.HasSystemID {
			return Quirks
		}
		return LimitedQuirks
	}
	return NoQuirks
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// quirksPublicPrefixes is the WHATWG "quirky" public-identifier prefix list.
var quirksPublicPrefixes = []string{
	"+//silmaril//dtd html pro v0r11 19970101//",
	"-//advasoft ltd//dtd html 3.0 aswedit + extensions//",
	"-//as//dtd html 3.0 aswedit + extensions//",
	"-//ietf//dtd html 2.0 level 1//",
	"-//ietf//dtd html 2.0 level 2//",
	"-//ietf//dtd html 2.0 strict level 1//",
	"-//ietf//dtd html 2.0 strict level 2//",
	"-//ietf//dtd html 2.0 strict//",
	"-//ietf//dtd html 2.0//",
	"-//ietf//dtd html 2.1e//",
	"-//ietf//dtd html 3.0//",
	"-//ietf//dtd html 3.2 final//",
	"-//ietf//dtd html 3.2//",
	"-//ietf//dtd html 3//",
	"-//ietf//dtd html level 0//",
	"-//ietf//dtd html level 1//",
	"-//ietf//dtd html level 2//",
	"-//ietf//dtd html level 3//",
	"-//ietf//dtd html strict level 0//",
	"-//ietf//dtd html strict level 1//",
	"-//ietf//dtd html strict level 2//",
	"-//ietf//dtd html strict level 3//",
	"-//ietf//dtd html strict//",
	"-//ietf//dtd html//",
	"-//metrius//dtd metrius presentational//",
	"-//microsoft//dtd internet explorer 2.0 html strict//",
	"-//microsoft//dtd internet explorer 2.0 html//",
	"-//microsoft//dtd internet explorer 2.0 tables//",
	"-//microsoft//dtd internet explorer 3.0 html strict//",
	"-//microsoft//dtd internet explorer 3.0 html//",
	"-//microsoft//dtd internet explorer 3.0 tables//",
	"-//netscape comm. corp.//dtd html//",
	"-//netscape comm. corp.//dtd strict html//",
	"-//o'reilly and associates//dtd html 2.0//",
	"-//o'reilly and associates//dtd html extended 1.0//",
	"-//o'reilly and associates//dtd html extended relaxed 1.0//",
	"-//softquad software//dtd hotmetal pro 6.0::19990601::extensions to html 4.0//",
	"-//softquad//dtd hotmetal pro 4.0::19971010::extensions to html 4.0//",
	"-//spyglass//dtd html 2.0 extended//",
	"-//sq//dtd html 2.0 hotmetal + extensions//",
	"-//sun microsystems corp.//dtd hotjava html//",
	"-//sun microsystems corp.//dtd hotjava strict html//",
	"-//w3c//dtd html 3 1995-03-24//",
	"-//w3c//dtd html 3.2 draft//",
	"-//w3c//dtd html 3.2 final//",
	"-//w3c//dtd html 3.2//",
	"-//w3c//dtd html 3.2s draft//",
	"-//w3c//dtd html 4.0 frameset//",
	"-//w3c//dtd html 4.0 transitional//",
	"-//w3c//dtd html experimental 19960712//",
	"-//w3c//dtd html experimental 970421//",
	"-//w3c//dtd w3 html//",
	"-//w3o//dtd w3 html 3.0//",
	"-//webtechs//dtd mozilla html 2.0//",
	"-//webtechs//dtd mozilla html//",
}

// limitedQuirksPublicPrefixes trigger LimitedQuirks (or Quirks if no
// system id is present).
var limitedQuirksPublicPrefixes = []string{
	"-//w3c//dtd xhtml 1.0 frameset//",
	"-//w3c//dtd xhtml 1.0 transitional//",
}

// html4PublicPrefixes additionally trigger LimitedQuirks-or-Quirks under
// the same has-system-id test, covering the plain HTML 4.01 public ids the
// two explicit limited-quirks prefixes above don't name directly.
var html4PublicPrefixes = []string{
	"-//w3c//dtd html 4.01 frameset//",
	"-//w3c//dtd html 4.01 transitional//",
}
