package labels

import "testing"

func TestTableLookupCaseInsensitive(t *testing.T) {
	table := NewTable(map[string]string{
		"0xAbCd000000000000000000000000000000000001": "Clanker Factory",
		"0x0000000000000000000000000000000000000002": "Deployer Bot",
	})

	label, ok := table.Lookup("0xabcd000000000000000000000000000000000001")
	if !ok || label != "Clanker Factory" {
		t.Fatalf("lookup lower = %q, %v", label, ok)
	}

	label, ok = table.Lookup("0xABCD000000000000000000000000000000000001")
	if !ok || label != "Clanker Factory" {
		t.Fatalf("lookup upper = %q, %v", label, ok)
	}

	if _, ok := table.Lookup("0x0000000000000000000000000000000000000009"); ok {
		t.Fatalf("unknown address should not resolve")
	}
}

func TestTableSkipsEmptyEntries(t *testing.T) {
	table := NewTable(map[string]string{
		"":      "nameless",
		"0x1":   "",
		" 0x2 ": " Label ",
	})

	if table.Len() != 1 {
		t.Fatalf("table size = %d, want 1", table.Len())
	}
	label, ok := table.Lookup("0X2")
	if !ok || label != "Label" {
		t.Fatalf("trimmed lookup = %q, %v", label, ok)
	}
}

func TestNilTableLookup(t *testing.T) {
	var table *Table
	if _, ok := table.Lookup("0x1"); ok {
		t.Fatalf("nil table should resolve nothing")
	}
}
