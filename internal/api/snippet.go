package api

import (
	"strings"

	"golang.org/x/net/html"
)

// StripMarkup returns the text content of an HTML fragment such as a search
// snippet (`<span class="searchmatch">Python</span> — язык`), with entities
// decoded and whitespace collapsed.
func StripMarkup(fragment string) string {
	if fragment == "" {
		return ""
	}

	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(sb.String()), " ")
		case html.TextToken:
			sb.Write(z.Text())
		}
	}
}

// ListEntries returns the text of the first link of every list item in an
// HTML document, in document order. Table-of-contents items and duplicates
// are skipped.
func ListEntries(document string) []string {
	root, err := html.Parse(strings.NewReader(document))
	if err != nil {
		return []string{}
	}

	seen := make(map[string]bool)
	entries := []string{}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "li" && !strings.Contains(attr(n, "class"), "tocsection") {
			if a := firstElement(n, "a"); a != nil {
				t := strings.Join(strings.Fields(textContent(a)), " ")
				if t != "" && !seen[t] {
					seen[t] = true
					entries = append(entries, t)
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return entries
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func firstElement(n *html.Node, tag string) *html.Node {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && child.Data == tag {
			return child
		}
		if found := firstElement(child, tag); found != nil {
			return found
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		sb.WriteString(textContent(child))
	}
	return sb.String()
}
