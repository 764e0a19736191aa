// Command justhtml is a CLI tool for parsing and querying HTML documents.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-parse/html5"
	"github.com/go-parse/html5/dom"
	"github.com/go-parse/html5/serialize"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Define flags
	selector := flag.String("selector", "", "CSS selector to filter output")
	selectorShort := flag.String("s", "", "CSS selector to filter output (shorthand)")
	format := flag.String("format", "html", "Output format: html, text, markdown")
	formatShort := flag.String("f", "", "Output format (shorthand)")
	first := flag.Bool("first", false, "Output only first match")
	separator := flag.String("separator", " ", "Separator for text output")
	strip := flag.Bool("strip", true, "Strip whitespace from text")
	pretty := flag.Bool("pretty", true, "Pretty-print HTML output")
	indent := flag.Int("indent", 2, "Indentation size for pretty-print")
	showVersion := flag.Bool("version", false, "Show version")
	versionShort := flag.Bool("v", false, "Show version (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <file>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Parse and query HTML documents.\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  file    HTML file path or '-' for stdin\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	// Handle shorthand flags
	if *selectorShort != "" && *selector == "" {
		*selector = *selectorShort
	}
	if *formatShort != "" && *format == "html" {
		*format = *formatShort
	}

	// Show version
	if *showVersion || *versionShort {
		fmt.Printf("justhtml version %s\n", version)
		return nil
	}

	// Get input file
	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return fmt.Errorf("missing input file")
	}

	inputPath := args[0]

	// Read input
	var input []byte
	var err error

	if inputPath == "-" {
		input, err = io.ReadAll(os.Stdin)
	} else {
		input, err = os.ReadFile(inputPath)
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	// Parse HTML
	doc, err := JustGoHTML.ParseBytes(input)
	if err != nil {
		return fmt.Errorf("parsing HTML: %w", err)
	}

	var nodes []dom.Node
	if *selector != "" {
		matches, err := doc.Query(*selector)
		if err != nil {
			return fmt.Errorf("parsing selector: %w", err)
		}
		for _, m := range matches {
			nodes = append(nodes, m)
		}
	} else {
		nodes = []dom.Node{doc}
	}

	if *first && len(nodes) > 1 {
		nodes = nodes[:1]
	}

	opts := serialize.DefaultOptions()
	opts.Pretty = *pretty
	opts.IndentSize = *indent

	switch *format {
	case "html":
		for _, n := range nodes {
			fmt.Println(serialize.ToHTML(n, opts))
		}
	case "markdown":
		for _, n := range nodes {
			fmt.Println(serialize.ToMarkdown(n))
		}
	case "text":
		texts := make([]string, 0, len(nodes))
		for _, n := range nodes {
			elem, ok := n.(*dom.Element)
			var t string
			if ok {
				t = elem.Text()
			} else if d, ok := n.(*dom.Document); ok {
				if root := d.DocumentElement(); root != nil {
					t = root.Text()
				}
			}
			if *strip {
				t = strings.TrimSpace(t)
			}
			texts = append(texts, t)
		}
		fmt.Println(strings.Join(texts, *separator))
	default:
		return fmt.Errorf("unknown format: %s", *format)
	}

	return nil
}
