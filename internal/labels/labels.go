// Package labels resolves known sender addresses to human labels. It is a
// pure lookup against a static table loaded at process start.
package labels

import "strings"

// Table is an immutable case-insensitive address→label mapping.
type Table struct {
	entries map[string]string
}

// NewTable builds a lookup table from the configured mapping. Keys are
// folded to lower case once here so lookups never rely on input casing.
func NewTable(mapping map[string]string) *Table {
	entries := make(map[string]string, len(mapping))
	for address, label := range mapping {
		address = strings.ToLower(strings.TrimSpace(address))
		label = strings.TrimSpace(label)
		if address == "" || label == "" {
			continue
		}
		entries[address] = label
	}
	return &Table{entries: entries}
}

// Lookup resolves an address to its label, case-insensitively.
func (t *Table) Lookup(address string) (string, bool) {
	if t == nil {
		return "", false
	}
	label, ok := t.entries[strings.ToLower(strings.TrimSpace(address))]
	return label, ok
}

// Len reports the number of configured labels.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}
