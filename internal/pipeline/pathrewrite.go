package pipeline

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RefResolver maps a reference found in markup to its replacement.
// Returning false leaves the attribute untouched.
type RefResolver func(ref string) (string, bool)

// rewritable lists the attributes that carry asset references, per element.
var rewritable = map[atom.Atom][]string{
	atom.Img:    {"src"},
	atom.A:      {"href"},
	atom.Audio:  {"src"},
	atom.Video:  {"src", "poster"},
	atom.Source: {"src"},
	atom.Track:  {"src"},
	atom.Link:   {"href"},
	atom.Embed:  {"src"},
	atom.Object: {"data"},
}

// RewriteRefs passes every asset reference in an HTML fragment or document
// through resolve. Empty references, fragments and srcset are left alone.
// Content without any tag is returned unchanged.
func RewriteRefs(content string, resolve RefResolver) (string, error) {
	if resolve == nil || !strings.Contains(content, "<") {
		return content, nil
	}

	doc, isFragment, err := parseHTML(content)
	if err != nil {
		return "", err
	}

	if !rewriteNode(doc, resolve) {
		return content, nil
	}

	return renderHTML(doc, isFragment)
}

// parseHTML parses HTML content, handling both full documents and fragments.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	// Parse with body context to avoid the <html><body> wrapper.
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	return container, true, nil
}

// renderHTML renders the tree back to a string. Fragments render only their
// children.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// rewriteNode walks the tree and reports whether any attribute changed.
func rewriteNode(n *html.Node, resolve RefResolver) bool {
	changed := false
	if n.Type == html.ElementNode {
		for _, name := range rewritable[n.DataAtom] {
			changed = rewriteAttr(n, name, resolve) || changed
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		changed = rewriteNode(c, resolve) || changed
	}
	return changed
}

func rewriteAttr(n *html.Node, name string, resolve RefResolver) bool {
	for i, attr := range n.Attr {
		if attr.Key != name || attr.Namespace != "" {
			continue
		}
		ref := strings.TrimSpace(attr.Val)
		if ref == "" || strings.HasPrefix(ref, "#") {
			return false
		}
		out, ok := resolve(ref)
		if !ok || out == attr.Val {
			return false
		}
		n.Attr[i].Val = out
		return true
	}
	return false
}
