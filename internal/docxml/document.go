// Package docxml reads and writes compiler-produced documentation XML.
package docxml

import (
	"fmt"
	"io"
	"sync"

	"github.com/beevik/etree"
)

// MemberPath selects the member records of a documentation file.
const MemberPath = "/doc/members/member"

// Document is a loaded documentation tree. Attach is safe for concurrent use;
// Save must not run concurrently with Attach.
type Document struct {
	mu   sync.Mutex
	tree *etree.Document
}

// Record is one member element of a document.
type Record struct {
	Index int
	Name  string // value of the name attribute, empty when absent
	el    *etree.Element
}

// Load reads a document from path.
func Load(path string) (*Document, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("failed to read documentation file: %w", err)
	}
	return &Document{tree: tree}, nil
}

// Parse reads a document from a string.
func Parse(s string) (*Document, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromString(s); err != nil {
		return nil, fmt.Errorf("failed to parse documentation: %w", err)
	}
	return &Document{tree: tree}, nil
}

// Records returns the member records in document order.
func (d *Document) Records() []Record {
	d.mu.Lock()
	defer d.mu.Unlock()

	members := d.tree.FindElements(MemberPath)
	records := make([]Record, len(members))
	for i, el := range members {
		records[i] = Record{
			Index: i,
			Name:  el.SelectAttrValue("name", ""),
			el:    el,
		}
	}
	return records
}

// Attach appends fragment as the last child of the record's element.
func (d *Document) Attach(rec Record, fragment *etree.Element) {
	if rec.el == nil || fragment == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	rec.el.AddChild(fragment)
}

// Save writes the document to path. A positive indent re-indents the tree by
// that many spaces; zero keeps the layout it was read with.
func (d *Document) Save(path string, indent int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if indent > 0 {
		d.tree.Indent(indent)
	}
	if err := d.tree.WriteToFile(path); err != nil {
		return fmt.Errorf("failed to write documentation file: %w", err)
	}
	return nil
}

// WriteTo writes the document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tree.WriteTo(w)
}
