// Copyright 2022-2024 Boris HUISGEN. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package resource

import (
	"bytes"
	"cmp"
	"fmt"
	"iter"
	"slices"
	"sort"
	"strings"
)

// Namespace is the tag of a logical view over a table.
type Namespace uint8

const (
	// Default is the namespace of path keys, by convention starting with '/'.
	Default Namespace = iota
	// FS is the resfs namespace of relative file paths.
	FS
)

// String returns the namespace name.
func (n Namespace) String() string {
	switch n {
	case Default:
		return "default"
	case FS:
		return "fs"
	default:
		return fmt.Sprintf("namespace(%d)", uint8(n))
	}
}

// KeyPrefix returns the conventional prefix of the namespace keys.
func (n Namespace) KeyPrefix() string {
	if n == Default {
		return "/"
	}
	return ""
}

// ParseNamespace returns the namespace with the given name.
func ParseNamespace(name string) (Namespace, error) {
	switch strings.ToLower(name) {
	case "", "default":
		return Default, nil
	case "fs", "resfs":
		return FS, nil
	default:
		return 0, fmt.Errorf("invalid namespace %q", name)
	}
}

// entry is a single table record.
type entry struct {
	ns    Namespace
	key   string
	value []byte
}

// compareEntries orders entries by namespace then key.
func compareEntries(a, b entry) int {
	if c := cmp.Compare(a.ns, b.ns); c != 0 {
		return c
	}
	return strings.Compare(a.key, b.key)
}

// Table is an immutable table of resources.
//
// All namespaces share one sorted entry slice. A namespace is the contiguous
// range of entries carrying its tag.
type Table struct {
	entries []entry
}

// View returns the read-only view of the given namespace.
func (t *Table) View(ns Namespace) View {
	if t == nil {
		return View{ns: ns}
	}
	lo := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].ns >= ns
	})
	hi := lo + sort.Search(len(t.entries)-lo, func(i int) bool {
		return t.entries[lo+i].ns > ns
	})
	return View{
		ns:      ns,
		entries: t.entries[lo:hi:hi],
	}
}

// Len returns the number of entries in all namespaces.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Find returns the value of the given key in the default namespace.
func (t *Table) Find(key string) ([]byte, error) {
	return t.View(Default).Find(key)
}

// Has reports whether the key exists in the default namespace.
func (t *Table) Has(key string) bool {
	return t.View(Default).Has(key)
}

// Keys returns the keys of the default namespace starting with prefix.
func (t *Table) Keys(prefix string, strip bool) iter.Seq[string] {
	return t.View(Default).Keys(prefix, strip)
}

// Items returns the entries of the default namespace starting with prefix.
func (t *Table) Items(prefix string, strip bool) iter.Seq2[string, []byte] {
	return t.View(Default).Items(prefix, strip)
}

// FSFiles returns the paths of the resfs namespace.
func (t *Table) FSFiles() iter.Seq[string] {
	return t.View(FS).Keys("", false)
}

// FSRead returns the content of the given resfs path.
func (t *Table) FSRead(path string) ([]byte, error) {
	return t.View(FS).Find(path)
}

// View is a read-only query surface over one namespace.
type View struct {
	ns      Namespace
	entries []entry
}

// Namespace returns the namespace of the view.
func (v View) Namespace() Namespace {
	return v.ns
}

// Len returns the number of entries.
func (v View) Len() int {
	return len(v.entries)
}

// Find returns a copy of the value stored under key.
func (v View) Find(key string) ([]byte, error) {
	i, ok := v.search(key)
	if !ok {
		return nil, &NotFoundError{Namespace: v.ns, Key: key}
	}
	return bytes.Clone(v.entries[i].value), nil
}

// Has reports whether key exists.
func (v View) Has(key string) bool {
	_, ok := v.search(key)
	return ok
}

// Keys returns the keys starting with prefix. If strip is set, the prefix is
// removed from each key.
func (v View) Keys(prefix string, strip bool) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, e := range v.scan(prefix) {
			if !yield(trimKey(e.key, prefix, strip)) {
				return
			}
		}
	}
}

// Items returns the keys starting with prefix and their values. If strip is
// set, the prefix is removed from each key.
func (v View) Items(prefix string, strip bool) iter.Seq2[string, []byte] {
	return func(yield func(string, []byte) bool) {
		for _, e := range v.scan(prefix) {
			if !yield(trimKey(e.key, prefix, strip), bytes.Clone(e.value)) {
				return
			}
		}
	}
}

// search returns the index of key.
func (v View) search(key string) (int, bool) {
	i := sort.Search(len(v.entries), func(i int) bool {
		return v.entries[i].key >= key
	})
	return i, i < len(v.entries) && v.entries[i].key == key
}

// scan returns the contiguous run of entries whose key starts with prefix.
func (v View) scan(prefix string) []entry {
	lo := sort.Search(len(v.entries), func(i int) bool {
		return v.entries[i].key >= prefix
	})
	hi := lo
	for hi < len(v.entries) && strings.HasPrefix(v.entries[hi].key, prefix) {
		hi++
	}
	return v.entries[lo:hi]
}

// trimKey removes the literal prefix from key when strip is set.
func trimKey(key, prefix string, strip bool) string {
	if !strip {
		return key
	}
	return key[len(prefix):]
}

// Builder collects entries of a table before it is built.
type Builder struct {
	entries map[Namespace]map[string][]byte
}

// NewBuilder creates a new builder.
func NewBuilder() *Builder {
	return &Builder{
		entries: make(map[Namespace]map[string][]byte),
	}
}

// Add adds a copy of data under key in the given namespace.
func (b *Builder) Add(ns Namespace, key string, data []byte) error {
	if ns != Default && ns != FS {
		return fmt.Errorf("add key %q: invalid namespace %s", key, ns)
	}
	m, ok := b.entries[ns]
	if !ok {
		m = make(map[string][]byte)
		b.entries[ns] = m
	}
	if _, ok := m[key]; ok {
		return &DuplicateError{Namespace: ns, Key: key}
	}
	value := make([]byte, len(data))
	copy(value, data)
	m[key] = value

	return nil
}

// AddTable adds all entries of the given table.
func (b *Builder) AddTable(t *Table) error {
	if t == nil {
		return nil
	}
	for _, e := range t.entries {
		if err := b.Add(e.ns, e.key, e.value); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of collected entries.
func (b *Builder) Len() int {
	var n int
	for _, m := range b.entries {
		n += len(m)
	}
	return n
}

// Build returns a table holding the collected entries.
func (b *Builder) Build() *Table {
	entries := make([]entry, 0, b.Len())
	for ns, m := range b.entries {
		for key, value := range m {
			entries = append(entries, entry{ns: ns, key: key, value: value})
		}
	}
	slices.SortFunc(entries, compareEntries)

	return &Table{
		entries: entries,
	}
}
