package epub

import (
	"encoding/xml"
	"strings"
	"time"
)

// container mirrors META-INF/container.xml, which points at the OPF package
// document.
type container struct {
	XMLName   xml.Name `xml:"container"`
	RootFiles []struct {
		FullPath  string `xml:"full-path,attr"`
		MediaType string `xml:"media-type,attr"`
	} `xml:"rootfiles>rootfile"`
}

// packageDoc mirrors the subset of the OPF package document the loader
// needs: publication metadata, the manifest, and the spine.
type packageDoc struct {
	XMLName  xml.Name `xml:"package"`
	Metadata struct {
		Titles []string `xml:"title"`
		Dates  []string `xml:"date"`
	} `xml:"metadata"`
	Manifest struct {
		Items []manifestItem `xml:"item"`
	} `xml:"manifest"`
	Spine struct {
		ItemRefs []struct {
			IDRef  string `xml:"idref,attr"`
			Linear string `xml:"linear,attr"`
		} `xml:"itemref"`
	} `xml:"spine"`
}

type manifestItem struct {
	ID         string `xml:"id,attr"`
	Href       string `xml:"href,attr"`
	MediaType  string `xml:"media-type,attr"`
	Properties string `xml:"properties,attr"`
}

// isNav reports whether the manifest marks this item as the navigation
// document.
func (m manifestItem) isNav() bool {
	for _, p := range strings.Fields(m.Properties) {
		if p == "nav" {
			return true
		}
	}

	return false
}

// isDocument reports whether the item is renderable chapter content.
func (m manifestItem) isDocument() bool {
	switch m.MediaType {
	case "application/xhtml+xml", "text/html":
		return true
	default:
		return false
	}
}

// opfDateFormats lists the dc:date layouts observed in the source archives.
var opfDateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05Z07:00",
	"2006-01",
	"2006",
}

// publishDate extracts the publication date from OPF metadata, returning the
// zero time when none parses.
func (p *packageDoc) publishDate() time.Time {
	for _, raw := range p.Metadata.Dates {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		for _, layout := range opfDateFormats {
			if ts, err := time.Parse(layout, raw); err == nil {
				return ts.UTC()
			}
		}
	}

	return time.Time{}
}

// title returns the first non-empty dc:title, or "".
func (p *packageDoc) title() string {
	for _, t := range p.Metadata.Titles {
		if s := strings.TrimSpace(t); s != "" {
			return s
		}
	}

	return ""
}
