package wasmscan_test

import (
	"errors"
	"testing"

	"github.com/qemu-wasm/buildcheck/wasmscan"
)

var header = []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}

// section encodes a section with a single-byte LEB128 size. Payloads in
// these tests stay well under 128 bytes.
func section(id byte, payload ...byte) []byte {
	out := []byte{id, byte(len(payload))}
	return append(out, payload...)
}

// name encodes a length-prefixed string.
func name(s string) []byte {
	return append([]byte{byte(len(s))}, s...)
}

func module(sections ...[]byte) []byte {
	out := append([]byte{}, header...)
	for _, s := range sections {
		out = append(out, s...)
	}
	return out
}

func TestParseHeader(t *testing.T) {
	h, err := wasmscan.ParseHeader(header)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if h.Magic != wasmscan.Magic {
		t.Errorf("magic = %#x, want %#x", h.Magic, wasmscan.Magic)
	}
	if h.Version != wasmscan.Version {
		t.Errorf("version = %d, want %d", h.Version, wasmscan.Version)
	}
}

func TestParseHeaderInvalidMagic(t *testing.T) {
	data := []byte{0x7F, 0x45, 0x4C, 0x46, 0x01, 0x00, 0x00, 0x00}
	_, err := wasmscan.ParseHeader(data)
	if !errors.Is(err, wasmscan.ErrInvalidMagic) {
		t.Errorf("error = %v, want ErrInvalidMagic", err)
	}
}

func TestParseHeaderShort(t *testing.T) {
	_, err := wasmscan.ParseHeader([]byte{0x00, 0x61, 0x73})
	if !errors.Is(err, wasmscan.ErrShortHeader) {
		t.Errorf("error = %v, want ErrShortHeader", err)
	}
}

func TestParseHeaderKeepsVersion(t *testing.T) {
	data := []byte{0x00, 0x61, 0x73, 0x6D, 0x02, 0x00, 0x00, 0x00}
	h, err := wasmscan.ParseHeader(data)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if h.Version != 2 {
		t.Errorf("version = %d, want 2", h.Version)
	}
}

func TestScanMinimalModule(t *testing.T) {
	inv, err := wasmscan.Scan(module())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(inv.Sections) != 0 {
		t.Errorf("got %d sections, want 0", len(inv.Sections))
	}
	if inv.HasMemory() {
		t.Error("minimal module reports a memory")
	}
}

func TestScanInventory(t *testing.T) {
	memory := section(wasmscan.SectionMemory, 0x01, 0x00, 0x01)

	exportPayload := []byte{0x02}
	exportPayload = append(exportPayload, name("memory")...)
	exportPayload = append(exportPayload, wasmscan.KindMemory, 0x00)
	exportPayload = append(exportPayload, name("_start")...)
	exportPayload = append(exportPayload, wasmscan.KindFunc, 0x00)
	export := section(wasmscan.SectionExport, exportPayload...)

	custom := section(wasmscan.SectionCustom, name("producers")...)

	inv, err := wasmscan.Scan(module(memory, export, custom))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if inv.Memories != 1 {
		t.Errorf("Memories = %d, want 1", inv.Memories)
	}
	if !inv.HasMemory() {
		t.Error("HasMemory() = false")
	}
	if got := inv.ExportedFunctions(); len(got) != 1 || got[0] != "_start" {
		t.Errorf("ExportedFunctions() = %v, want [_start]", got)
	}
	if len(inv.Sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(inv.Sections))
	}
	if inv.Sections[2].Name != "producers" {
		t.Errorf("custom section name = %q, want producers", inv.Sections[2].Name)
	}
}

func TestScanExportedMemoryOnly(t *testing.T) {
	exportPayload := []byte{0x01}
	exportPayload = append(exportPayload, name("memory")...)
	exportPayload = append(exportPayload, wasmscan.KindMemory, 0x00)
	export := section(wasmscan.SectionExport, exportPayload...)

	inv, err := wasmscan.Scan(module(export))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if inv.Memories != 0 {
		t.Errorf("Memories = %d, want 0", inv.Memories)
	}
	if !inv.HasMemory() {
		t.Error("exported memory not detected")
	}
}

func TestScanShortHeader(t *testing.T) {
	_, err := wasmscan.Scan([]byte{0x00, 0x61, 0x73})
	if !errors.Is(err, wasmscan.ErrShortHeader) {
		t.Errorf("error = %v, want ErrShortHeader", err)
	}
}

func TestScanInvalidMagic(t *testing.T) {
	data := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x00, 0x00, 0x00}
	_, err := wasmscan.Scan(data)
	if !errors.Is(err, wasmscan.ErrInvalidMagic) {
		t.Errorf("error = %v, want ErrInvalidMagic", err)
	}
}

func TestScanSectionOutOfOrder(t *testing.T) {
	export := section(wasmscan.SectionExport, 0x00)
	memory := section(wasmscan.SectionMemory, 0x01, 0x00, 0x01)

	_, err := wasmscan.Scan(module(export, memory))
	if err == nil {
		t.Error("expected error for out-of-order sections")
	}
}

func TestScanDuplicateSection(t *testing.T) {
	memory := section(wasmscan.SectionMemory, 0x01, 0x00, 0x01)
	_, err := wasmscan.Scan(module(memory, memory))
	if err == nil {
		t.Error("expected error for duplicate section")
	}
}

func TestScanTruncatedSection(t *testing.T) {
	// Declares 16 payload bytes but provides 2.
	data := append(append([]byte{}, header...), wasmscan.SectionType, 0x10, 0x01, 0x60)
	_, err := wasmscan.Scan(data)
	if err == nil {
		t.Error("expected error for truncated section")
	}
}

func TestScanUnknownSectionID(t *testing.T) {
	_, err := wasmscan.Scan(module(section(0x20)))
	if err == nil {
		t.Error("expected error for unknown section id")
	}
}

func TestScanCustomSectionAnywhere(t *testing.T) {
	custom := section(wasmscan.SectionCustom, name("x")...)
	memory := section(wasmscan.SectionMemory, 0x01, 0x00, 0x01)
	export := section(wasmscan.SectionExport, 0x00)

	if _, err := wasmscan.Scan(module(custom, memory, custom, export, custom)); err != nil {
		t.Errorf("Scan with interleaved custom sections: %v", err)
	}
}
