package loginform

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Form is an HTML form with its default field values.
type Form struct {
	ID     string
	Name   string
	Method string
	Action *url.URL
	Fields url.Values
}

// Link is an anchor with a resolvable href.
type Link struct {
	Text string
	Href *url.URL
}

// Page is the result of loading a URL.
//
// URL is where the conversation ended up: the final URL after redirects, or
// the redirect target when the chain was stopped at the stop marker.
type Page struct {
	URL    *url.URL
	Status int
	Forms  []Form
	Links  []Link
}

// FindForm returns the first form whose id equals id, ignoring case.
func (p *Page) FindForm(id string) (Form, bool) {
	for _, f := range p.Forms {
		if strings.EqualFold(f.ID, id) {
			return f, true
		}
	}
	return Form{}, false
}

// FindLink returns the first link whose text contains label.
func (p *Page) FindLink(label string) (Link, bool) {
	for _, l := range p.Links {
		if strings.Contains(l.Text, label) {
			return l, true
		}
	}
	return Link{}, false
}

// parsePage extracts forms and links from an HTML document.
// Relative actions and hrefs are resolved against base.
func parsePage(doc *html.Node, base *url.URL) ([]Form, []Link) {
	var forms []Form
	var links []Link

	var walk func(n *html.Node, form int)
	walk = func(n *html.Node, form int) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Form:
				forms = append(forms, newForm(n, base))
				form = len(forms) - 1
			case atom.A:
				if href, ok := attr(n, "href"); ok {
					if u, err := base.Parse(strings.TrimSpace(href)); err == nil {
						links = append(links, Link{Text: collapse(text(n)), Href: u})
					}
				}
			case atom.Input:
				if form >= 0 {
					addInput(forms[form].Fields, n)
				}
			case atom.Textarea:
				if form >= 0 {
					if name, ok := attr(n, "name"); ok && name != "" {
						forms[form].Fields.Add(name, text(n))
					}
				}
				return
			case atom.Select:
				if form >= 0 {
					addSelect(forms[form].Fields, n)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, form)
		}
	}
	walk(doc, -1)

	return forms, links
}

func newForm(n *html.Node, base *url.URL) Form {
	f := Form{
		Method: "GET",
		Action: base,
		Fields: url.Values{},
	}
	f.ID, _ = attr(n, "id")
	f.Name, _ = attr(n, "name")
	if m, ok := attr(n, "method"); ok && m != "" {
		f.Method = strings.ToUpper(m)
	}
	if a, ok := attr(n, "action"); ok && strings.TrimSpace(a) != "" {
		if u, err := base.Parse(strings.TrimSpace(a)); err == nil {
			f.Action = u
		}
	}
	return f
}

func addInput(fields url.Values, n *html.Node) {
	name, ok := attr(n, "name")
	if !ok || name == "" {
		return
	}
	typ, _ := attr(n, "type")
	value, hasValue := attr(n, "value")

	switch strings.ToLower(typ) {
	case "submit", "button", "image", "reset", "file":
		return
	case "checkbox", "radio":
		if _, checked := attr(n, "checked"); !checked {
			return
		}
		if !hasValue {
			value = "on"
		}
	}
	fields.Add(name, value)
}

func addSelect(fields url.Values, n *html.Node) {
	name, ok := attr(n, "name")
	if !ok || name == "" {
		return
	}
	_, multiple := attr(n, "multiple")

	var options []*html.Node
	var collect func(*html.Node)
	collect = func(c *html.Node) {
		if c.Type == html.ElementNode && c.DataAtom == atom.Option {
			options = append(options, c)
			return
		}
		for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
			collect(cc)
		}
	}
	collect(n)

	selected := 0
	for _, o := range options {
		if _, sel := attr(o, "selected"); sel {
			fields.Add(name, optionValue(o))
			selected++
			if !multiple {
				return
			}
		}
	}
	if selected == 0 && !multiple && len(options) > 0 {
		fields.Add(name, optionValue(options[0]))
	}
}

func optionValue(o *html.Node) string {
	if v, ok := attr(o, "value"); ok {
		return v
	}
	return collapse(text(o))
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
			walk(cc)
		}
	}
	walk(n)
	return sb.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
