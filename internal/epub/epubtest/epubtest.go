// Package epubtest builds synthetic EPUB archives for tests.
package epubtest

import (
	"archive/zip"
	"fmt"
	"os"
	"strings"
	"testing"
)

// Doc describes one spine document in a synthetic archive.
type Doc struct {
	Name  string // file name inside OEBPS/, e.g. "ch01.xhtml"
	Title string
	Body  string // paragraph text; split on "\n\n" into <p> elements
	Nav   bool   // mark as the navigation document
}

// Archive describes a synthetic EPUB.
type Archive struct {
	Title string
	Date  string // dc:date value, e.g. "2024-01-06"; empty to omit
	Docs  []Doc
}

// Write creates a well-formed EPUB at path.
func Write(t testing.TB, path string, a Archive) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create archive %s: %v", path, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	write := func(name, content string) {
		t.Helper()

		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry %s: %v", name, err)
		}

		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write zip entry %s: %v", name, err)
		}
	}

	write("mimetype", "application/epub+zip")
	write("META-INF/container.xml", containerXML)
	write("OEBPS/content.opf", opfXML(a))

	for _, d := range a.Docs {
		write("OEBPS/"+d.Name, docXML(d))
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("close archive %s: %v", path, err)
	}
}

// WriteInvalid creates a file at path that is not a readable EPUB container.
func WriteInvalid(t testing.TB, path string) {
	t.Helper()

	if err := os.WriteFile(path, []byte("not a zip archive"), 0644); err != nil {
		t.Fatalf("write invalid archive: %v", err)
	}
}

const containerXML = `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>
`

func opfXML(a Archive) string {
	var b strings.Builder

	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" xmlns:dc="http://purl.org/dc/elements/1.1/" version="3.0" unique-identifier="uid">
  <metadata>
`)
	fmt.Fprintf(&b, "    <dc:title>%s</dc:title>\n", xmlEscape(a.Title))

	if a.Date != "" {
		fmt.Fprintf(&b, "    <dc:date>%s</dc:date>\n", a.Date)
	}

	b.WriteString("  </metadata>\n  <manifest>\n")

	for i, d := range a.Docs {
		props := ""
		if d.Nav {
			props = ` properties="nav"`
		}

		fmt.Fprintf(&b, `    <item id="doc%d" href="%s" media-type="application/xhtml+xml"%s/>`+"\n", i, d.Name, props)
	}

	b.WriteString("  </manifest>\n  <spine>\n")

	for i := range a.Docs {
		fmt.Fprintf(&b, `    <itemref idref="doc%d"/>`+"\n", i)
	}

	b.WriteString("  </spine>\n</package>\n")

	return b.String()
}

func docXML(d Doc) string {
	var b strings.Builder

	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml">
<head><title>` + xmlEscape(d.Title) + `</title></head>
<body>
`)
	fmt.Fprintf(&b, "  <h1>%s</h1>\n", xmlEscape(d.Title))

	for _, para := range strings.Split(d.Body, "\n\n") {
		if strings.TrimSpace(para) == "" {
			continue
		}

		fmt.Fprintf(&b, "  <p>%s</p>\n", xmlEscape(para))
	}

	b.WriteString("</body>\n</html>\n")

	return b.String()
}

func xmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

	return r.Replace(s)
}
