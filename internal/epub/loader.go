// Package epub loads EPUB magazine archives into issues of raw documents.
//
// An EPUB container is a zip archive whose META-INF/container.xml names an
// OPF package document; the package's spine lists the chapter documents in
// reading order. The loader surfaces exactly that: one Issue per archive,
// spine-ordered RawDocuments inside it.
package epub

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"newsstand/internal/models"
)

// ErrCorruptArchive indicates an archive that cannot be opened or whose
// container/manifest is missing or invalid. Such issues are skipped with a
// recorded warning; they never abort the run.
var ErrCorruptArchive = errors.New("corrupt or unreadable archive")

const containerPath = "META-INF/container.xml"

// filenameDatePattern matches dates embedded in archive filenames, e.g.
// "TheEconomist.2024.01.06.epub" or "issue-2024-01-06.epub".
var filenameDatePattern = regexp.MustCompile(`(\d{4})[._-](\d{2})[._-](\d{2})`)

// ListArchives returns the EPUB files in dir in filename-sorted order, which
// fixes the issue ordering for the entire run.
func ListArchives(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive directory %s: %w", dir, err)
	}

	var archives []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if strings.EqualFold(filepath.Ext(entry.Name()), ".epub") {
			archives = append(archives, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(archives)

	return archives, nil
}

// LoadArchive opens one EPUB archive and produces its Issue with documents
// in spine order. The archive is fully read before returning; the file is
// not held open.
func LoadArchive(archivePath string) (*models.Issue, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptArchive, filepath.Base(archivePath), err)
	}
	defer reader.Close()

	entries := make(map[string]*zip.File, len(reader.File))
	for _, f := range reader.File {
		entries[f.Name] = f
	}

	pkg, opfDir, err := readPackage(entries, archivePath)
	if err != nil {
		return nil, err
	}

	issueID := issueIDFromPath(archivePath)

	date := pkg.publishDate()
	if date.IsZero() {
		date = dateFromFilename(archivePath)
	}

	issue := &models.Issue{
		ID:    issueID,
		Path:  archivePath,
		Title: pkg.title(),
		Date:  date,
	}

	items := make(map[string]manifestItem, len(pkg.Manifest.Items))
	for _, item := range pkg.Manifest.Items {
		items[item.ID] = item
	}

	for idx, ref := range pkg.Spine.ItemRefs {
		item, ok := items[ref.IDRef]
		if !ok || !item.isDocument() {
			continue
		}

		name := path.Join(opfDir, item.Href)

		entry, ok := entries[name]
		if !ok {
			// A manifest entry without a payload; leave it to the
			// extractor skip accounting via an empty document.
			continue
		}

		content, err := readEntry(entry)
		if err != nil {
			continue
		}

		kind := models.DocOther
		if item.isNav() {
			kind = models.DocNavigation
		}

		issue.Documents = append(issue.Documents, models.RawDocument{
			IssueID:   issueID,
			IssueDate: date,
			Index:     idx,
			Name:      item.Href,
			Content:   content,
			Kind:      kind,
		})
	}

	return issue, nil
}

// readPackage locates and parses the OPF package document via the container
// manifest. Any structural problem maps to ErrCorruptArchive.
func readPackage(entries map[string]*zip.File, archivePath string) (*packageDoc, string, error) {
	base := filepath.Base(archivePath)

	containerEntry, ok := entries[containerPath]
	if !ok {
		return nil, "", fmt.Errorf("%w: %s: missing %s", ErrCorruptArchive, base, containerPath)
	}

	containerData, err := readEntry(containerEntry)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s: %v", ErrCorruptArchive, base, err)
	}

	var c container
	if err := xml.Unmarshal(containerData, &c); err != nil {
		return nil, "", fmt.Errorf("%w: %s: invalid container.xml: %v", ErrCorruptArchive, base, err)
	}

	if len(c.RootFiles) == 0 || c.RootFiles[0].FullPath == "" {
		return nil, "", fmt.Errorf("%w: %s: container names no rootfile", ErrCorruptArchive, base)
	}

	opfPath := c.RootFiles[0].FullPath

	opfEntry, ok := entries[opfPath]
	if !ok {
		return nil, "", fmt.Errorf("%w: %s: missing package document %s", ErrCorruptArchive, base, opfPath)
	}

	opfData, err := readEntry(opfEntry)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s: %v", ErrCorruptArchive, base, err)
	}

	var pkg packageDoc
	if err := xml.Unmarshal(opfData, &pkg); err != nil {
		return nil, "", fmt.Errorf("%w: %s: invalid package document: %v", ErrCorruptArchive, base, err)
	}

	if len(pkg.Spine.ItemRefs) == 0 {
		return nil, "", fmt.Errorf("%w: %s: empty spine", ErrCorruptArchive, base)
	}

	return &pkg, path.Dir(opfPath), nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

// issueIDFromPath derives the issue identifier from the archive filename.
func issueIDFromPath(archivePath string) string {
	return strings.TrimSuffix(filepath.Base(archivePath), filepath.Ext(archivePath))
}

// dateFromFilename recovers a publish date embedded in the archive name.
func dateFromFilename(archivePath string) time.Time {
	m := filenameDatePattern.FindStringSubmatch(filepath.Base(archivePath))
	if m == nil {
		return time.Time{}
	}

	ts, err := time.Parse("2006-01-02", fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3]))
	if err != nil {
		return time.Time{}
	}

	return ts
}
