package ot

import (
	"fmt"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Table is a font table: its tag and its raw bytes. Entry refers back to the
// table's record in the font's directory.
type Table struct {
	Tag   Tag
	Entry *DirectoryEntry
	data  []byte
}

// Binary returns the table's bytes. Clients must not modify them; use
// TableSet.Replace to exchange a table's content.
func (t *Table) Binary() []byte {
	return t.data
}

// Len returns the table's length in bytes, without padding.
func (t *Table) Len() int {
	return len(t.data)
}

// Checksum returns the sfnt checksum of the table's bytes.
func (t *Table) Checksum() uint32 {
	return Checksum(t.data)
}

// TableSet holds the tables of a font, keyed by tag. It remembers the order in
// which tables have been added, which is the order of the font's directory.
// The set owns the tables' byte buffers.
//
// A TableSet is not safe for concurrent mutation.
type TableSet struct {
	tables *linkedhashmap.Map // Tag → *Table, insertion ordered
}

// NewTableSet creates an empty table set.
func NewTableSet() *TableSet {
	return &TableSet{tables: linkedhashmap.New()}
}

// Add puts a table into the set. If a table with the same tag is already
// present, its content and back-reference are replaced, but its position is kept.
func (ts *TableSet) Add(t *Table) {
	if t == nil {
		return
	}
	ts.tables.Put(t.Tag, t)
}

// Lookup finds the table for a tag. A font is free to omit most tables,
// thus clients have to check the second return value.
func (ts *TableSet) Lookup(tag Tag) (*Table, bool) {
	if ts == nil {
		return nil, false
	}
	if v, found := ts.tables.Get(tag); found {
		return v.(*Table), true
	}
	return nil, false
}

// Bytes returns the bytes of the table for a tag.
func (ts *TableSet) Bytes(tag Tag) ([]byte, bool) {
	t, ok := ts.Lookup(tag)
	if !ok {
		return nil, false
	}
	return t.data, true
}

// Replace exchanges the content of the table for tag wholesale. The set
// takes ownership of data. The new content may differ in length from the old.
func (ts *TableSet) Replace(tag Tag, data []byte) error {
	t, ok := ts.Lookup(tag)
	if !ok {
		return fmt.Errorf("cannot replace table %s: not in font", tag)
	}
	tracer().Debugf("replacing table %s: %d -> %d bytes", tag, len(t.data), len(data))
	t.data = data
	return nil
}

// Len returns the number of tables in the set.
func (ts *TableSet) Len() int {
	if ts == nil {
		return 0
	}
	return ts.tables.Size()
}

// Tags returns the tags of all tables, in insertion order.
func (ts *TableSet) Tags() []Tag {
	tags := make([]Tag, 0, ts.Len())
	ts.Each(func(t *Table) bool {
		tags = append(tags, t.Tag)
		return true
	})
	return tags
}

// Each calls f for every table, in insertion order, until f returns false.
func (ts *TableSet) Each(f func(*Table) bool) {
	if ts == nil {
		return
	}
	it := ts.tables.Iterator()
	for it.Next() {
		if !f(it.Value().(*Table)) {
			return
		}
	}
}
