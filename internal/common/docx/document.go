// Package docx opens word-processing packages, mutates their text, and
// saves them under a new path. The package is modeled at the OOXML element
// tree level: a document part is parsed into an element tree, mutated in
// memory, and only serialized when the whole mutation has succeeded, so the
// source file is never touched.
package docx

import (
	"archive/zip"
	"io"
	"os"
	"strings"

	"github.com/beevik/etree"

	apperrors "inspection-rpa/internal/common/errors"
)

const mainPartName = "word/document.xml"

// part is one zip entry of the package, kept in original order so the saved
// package is structurally identical to the source.
type part struct {
	name string
	data []byte
}

// Document is an in-memory word-processing package.
type Document struct {
	sourcePath string
	parts      []part
	xmlParts   map[string]*etree.Document
}

// Open reads the package at path fully into memory. The file handle is
// released before Open returns; nothing is held across operator actions.
func Open(path string) (*Document, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, apperrors.NewSourceNotFoundError(path)
	}

	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, apperrors.NewDocumentOpenFailureError(path, err)
	}
	defer r.Close()

	d := &Document{
		sourcePath: path,
		xmlParts:   make(map[string]*etree.Document),
	}

	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			return nil, apperrors.NewDocumentOpenFailureError(path, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, apperrors.NewDocumentOpenFailureError(path, err)
		}
		d.parts = append(d.parts, part{name: f.Name, data: data})
	}

	if err := d.parseMutableParts(); err != nil {
		return nil, apperrors.NewDocumentOpenFailureError(path, err)
	}
	return d, nil
}

// SourcePath returns the path the document was opened from.
func (d *Document) SourcePath() string {
	return d.sourcePath
}

// isMutablePart reports whether a part may contain replaceable text: the
// main document part plus every header and footer part.
func isMutablePart(name string) bool {
	if name == mainPartName {
		return true
	}
	if !strings.HasSuffix(name, ".xml") {
		return false
	}
	return strings.HasPrefix(name, "word/header") || strings.HasPrefix(name, "word/footer")
}

func (d *Document) parseMutableParts() error {
	for _, p := range d.parts {
		if !isMutablePart(p.name) {
			continue
		}
		doc := etree.NewDocument()
		if err := doc.ReadFromBytes(p.data); err != nil {
			return err
		}
		d.xmlParts[p.name] = doc
	}
	if _, ok := d.xmlParts[mainPartName]; !ok {
		return errMissingMainPart
	}
	return nil
}

var errMissingMainPart = &notWordDocumentError{}

type notWordDocumentError struct{}

func (*notWordDocumentError) Error() string {
	return "package has no word/document.xml part"
}

// body returns the w:body element of the main document part.
func (d *Document) body() *etree.Element {
	root := d.xmlParts[mainPartName].Root()
	if root == nil {
		return nil
	}
	return firstChildByTag(root, "body")
}

// headerFooterParts returns the parsed header and footer trees in package
// order, so traversal is deterministic across runs.
func (d *Document) headerFooterParts() []*etree.Document {
	var out []*etree.Document
	for _, p := range d.parts {
		if p.name == mainPartName {
			continue
		}
		if doc, ok := d.xmlParts[p.name]; ok {
			out = append(out, doc)
		}
	}
	return out
}

// SaveAs serializes the mutated parts and writes the whole package to a new
// path. The source file is read-only from this package's perspective.
func (d *Document) SaveAs(path string) error {
	for i := range d.parts {
		doc, ok := d.xmlParts[d.parts[i].name]
		if !ok {
			continue
		}
		data, err := doc.WriteToBytes()
		if err != nil {
			return apperrors.NewDocumentSaveFailureError(path, err)
		}
		d.parts[i].data = data
	}

	f, err := os.Create(path)
	if err != nil {
		return apperrors.NewDocumentSaveFailureError(path, err)
	}

	zw := zip.NewWriter(f)
	for _, p := range d.parts {
		w, err := zw.Create(p.name)
		if err == nil {
			_, err = w.Write(p.data)
		}
		if err != nil {
			zw.Close()
			f.Close()
			return apperrors.NewDocumentSaveFailureError(path, err)
		}
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return apperrors.NewDocumentSaveFailureError(path, err)
	}
	if err := f.Close(); err != nil {
		return apperrors.NewDocumentSaveFailureError(path, err)
	}
	return nil
}
