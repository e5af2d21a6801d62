package rewriter

import (
	"strings"

	"golang.org/x/net/html"
)

// ImageRef is an <img> preserved from the original markup.
type ImageRef struct {
	Src   string `json:"src"`
	Alt   string `json:"alt"`
	Title string `json:"title"`
}

// LinkRef is an <a> preserved from the original markup.
type LinkRef struct {
	Href  string `json:"href"`
	Text  string `json:"text"`
	Title string `json:"title"`
}

// HTMLStructure carries everything the rewrite must not lose from a
// field's markup.
type HTMLStructure struct {
	Images       []ImageRef `json:"images,omitempty"`
	Links        []LinkRef  `json:"links,omitempty"`
	HasLists     bool       `json:"has_lists"`
	HasHeadings  bool       `json:"has_headings"`
	OriginalHTML string     `json:"original_html"`
}

// SplitHTML separates the plain text of a markup fragment from its
// structural metadata. It never fails: when the input cannot be parsed
// the whole fragment is returned as plain text and the structure keeps
// only the original markup.
func SplitHTML(raw string) (string, HTMLStructure) {
	if raw == "" {
		return "", HTMLStructure{}
	}

	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return raw, HTMLStructure{OriginalHTML: raw}
	}

	structure := HTMLStructure{OriginalHTML: raw}
	var parts []string
	collectStructure(doc, &structure, &parts)

	return strings.TrimSpace(strings.Join(parts, " ")), structure
}

func collectStructure(n *html.Node, s *HTMLStructure, parts *[]string) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style":
			return
		case "img":
			s.Images = append(s.Images, ImageRef{
				Src:   attr(n, "src"),
				Alt:   attr(n, "alt"),
				Title: attr(n, "title"),
			})
		case "a":
			s.Links = append(s.Links, LinkRef{
				Href:  attr(n, "href"),
				Text:  nodeText(n),
				Title: attr(n, "title"),
			})
		case "ul", "ol":
			s.HasLists = true
		case "h1", "h2", "h3", "h4", "h5", "h6":
			s.HasHeadings = true
		}
	}

	if n.Type == html.TextNode {
		if text := strings.TrimSpace(n.Data); text != "" {
			*parts = append(*parts, text)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectStructure(c, s, parts)
	}
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		for gc := c.FirstChild; gc != nil; gc = gc.NextSibling {
			walk(gc)
		}
	}
	walk(n)
	return sb.String()
}
