package scrape

import (
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Listing is a school entry pulled from the listing page, before geocoding.
type Listing struct {
	Name    string
	Area    string
	Address string
	Phone   string
}

// GeocodeQuery returns the query string to resolve this listing. The page
// does not always carry a street address, so the school name anchored to
// Calgary is the fallback.
func (l Listing) GeocodeQuery() string {
	if l.Address != "" {
		return l.Address
	}
	return l.Name + ", Calgary, AB, Canada"
}

// Section headers on the page that look like school names but are not.
var skipHeadings = []string{"Contact Information", "Education Director", "Schools"}

// Parse extracts school listings from the schools-by-area page. The page
// groups schools as h3 entries under h2 area headers, with phone and address
// in labeled divs below each school. Malformed entries are skipped with a
// warning, never fatal.
func Parse(pageHTML string) ([]Listing, error) {
	doc, err := html.Parse(strings.NewReader(pageHTML))
	if err != nil {
		return nil, eris.Wrap(err, "scrape: parse html")
	}

	var listings []Listing
	var currentArea string
	var current *Listing
	var pendingLabel string

	flush := func() {
		if current != nil {
			listings = append(listings, *current)
			current = nil
		}
	}

	for n := range doc.Descendants() {
		if n.Type != html.ElementNode {
			continue
		}
		switch n.Data {
		case "h2":
			flush()
			pendingLabel = ""
			text := nodeText(n)
			if strings.Contains(text, "Area") || strings.Contains(text, "Central") {
				currentArea = text
			} else {
				// Unrelated section; don't attribute its headings to an area.
				currentArea = ""
			}
		case "h3":
			flush()
			pendingLabel = ""
			if currentArea == "" {
				continue
			}
			text := nodeText(n)
			if text == "" || isSkipHeading(text) {
				if text == "" {
					zap.L().Warn("scrape: skipping unnamed entry", zap.String("area", currentArea))
				}
				continue
			}
			current = &Listing{Name: text, Area: currentArea}
		case "div":
			if current == nil || hasDivChild(n) {
				continue
			}
			text := nodeText(n)
			switch {
			case pendingLabel != "":
				switch pendingLabel {
				case "phone":
					current.Phone = text
				case "address":
					current.Address = text
				}
				pendingLabel = ""
			case strings.HasPrefix(text, "Phone"):
				pendingLabel = "phone"
			case strings.HasPrefix(text, "Address"):
				pendingLabel = "address"
			}
		}
	}
	flush()

	return listings, nil
}

func isSkipHeading(text string) bool {
	for _, h := range skipHeadings {
		if strings.Contains(text, h) {
			return true
		}
	}
	return false
}

// nodeText flattens the text content of a node, collapsing whitespace.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func hasDivChild(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "div" {
			return true
		}
	}
	return false
}
