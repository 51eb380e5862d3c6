package wasmscan

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// Scanning errors returned by ParseHeader and Scan.
var (
	ErrShortHeader  = errors.New("module shorter than the 8-byte header")
	ErrInvalidMagic = errors.New("invalid wasm magic number")
	ErrOverflow     = errors.New("leb128: overflow")
)

// Header is the decoded 8-byte module preamble.
type Header struct {
	Magic   uint32
	Version uint32
}

// Export is one entry of the export section.
type Export struct {
	Name string
	Kind byte
}

// Section records one section's identity and payload size.
type Section struct {
	ID   byte
	Name string // set for custom sections
	Size uint32
}

// Inventory summarizes a scanned module without decoding function bodies.
type Inventory struct {
	Header   Header
	Sections []Section
	Memories int // memories declared in the memory section
	Exports  []Export
}

// HasMemory reports whether the module declares or exports a linear memory.
func (inv *Inventory) HasMemory() bool {
	if inv.Memories > 0 {
		return true
	}
	for _, e := range inv.Exports {
		if e.Kind == KindMemory {
			return true
		}
	}
	return false
}

// ExportedFunctions returns the names of all exported functions.
func (inv *Inventory) ExportedFunctions() []string {
	var names []string
	for _, e := range inv.Exports {
		if e.Kind == KindFunc {
			names = append(names, e.Name)
		}
	}
	return names
}

// ParseHeader decodes the magic number and version from the start of a
// module. The version is returned as read; callers decide version policy.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, ErrShortHeader
	}
	h := Header{
		Magic:   binary.LittleEndian.Uint32(data[0:4]),
		Version: binary.LittleEndian.Uint32(data[4:8]),
	}
	if h.Magic != Magic {
		return h, ErrInvalidMagic
	}
	return h, nil
}

// Scan walks every section of a module, checking canonical section
// ordering and payload extents, and collects the memory and export
// inventory. Function bodies are skipped, so scanning a large module
// costs a single pass over the section headers plus the export and
// memory payloads.
func Scan(data []byte) (*Inventory, error) {
	header, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	inv := &Inventory{Header: header}
	r := &reader{data: data, pos: HeaderSize}

	// Track section ordering using canonical order, not section IDs.
	// Spec order: Type(1), Import(2), Function(3), Table(4), Memory(5),
	// Tag(13), Global(6), Export(7), Start(8), Element(9), DataCount(12),
	// Code(10), Data(11)
	var lastOrder int

	for r.pos < len(data) {
		id, err := r.readByte()
		if err != nil {
			return nil, fmt.Errorf("section id at offset %d: %w", r.pos, err)
		}

		if id != SectionCustom {
			order := sectionOrder(id)
			if order < 0 {
				return nil, fmt.Errorf("unknown section id %d at offset %d", id, r.pos-1)
			}
			if order <= lastOrder {
				return nil, fmt.Errorf("%s section appears out of order", SectionName(id))
			}
			lastOrder = order
		}

		size, err := r.readU32()
		if err != nil {
			return nil, fmt.Errorf("%s section size: %w", SectionName(id), err)
		}
		payload, err := r.readBytes(int(size))
		if err != nil {
			return nil, fmt.Errorf("%s section truncated: %w", SectionName(id), err)
		}

		section := Section{ID: id, Size: size}
		sr := &reader{data: payload}

		switch id {
		case SectionCustom:
			name, err := sr.readName()
			if err != nil {
				return nil, fmt.Errorf("custom section name: %w", err)
			}
			section.Name = name
		case SectionMemory:
			count, err := sr.readU32()
			if err != nil {
				return nil, fmt.Errorf("memory section count: %w", err)
			}
			inv.Memories = int(count)
		case SectionExport:
			if err := scanExports(sr, inv); err != nil {
				return nil, fmt.Errorf("export section: %w", err)
			}
		}

		inv.Sections = append(inv.Sections, section)
	}

	return inv, nil
}

func scanExports(r *reader, inv *Inventory) error {
	count, err := r.readU32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		name, err := r.readName()
		if err != nil {
			return fmt.Errorf("export %d name: %w", i, err)
		}
		kind, err := r.readByte()
		if err != nil {
			return fmt.Errorf("export %d kind: %w", i, err)
		}
		if _, err := r.readU32(); err != nil { // index
			return fmt.Errorf("export %d index: %w", i, err)
		}
		inv.Exports = append(inv.Exports, Export{Name: name, Kind: kind})
	}
	return nil
}

// sectionOrder maps a section ID to its canonical position, or -1 for
// unknown IDs.
func sectionOrder(id byte) int {
	switch id {
	case SectionType:
		return 1
	case SectionImport:
		return 2
	case SectionFunction:
		return 3
	case SectionTable:
		return 4
	case SectionMemory:
		return 5
	case SectionTag:
		return 6
	case SectionGlobal:
		return 7
	case SectionExport:
		return 8
	case SectionStart:
		return 9
	case SectionElement:
		return 10
	case SectionDataCount:
		return 11
	case SectionCode:
		return 12
	case SectionData:
		return 13
	default:
		return -1
	}
}

// reader provides position-tracked reads over a byte slice.
type reader struct {
	data []byte
	pos  int
}

func (r *reader) readByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, io.ErrUnexpectedEOF
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) readBytes(n int) ([]byte, error) {
	if r.pos+n > len(r.data) {
		return nil, io.ErrUnexpectedEOF
	}
	buf := r.data[r.pos : r.pos+n]
	r.pos += n
	return buf, nil
}

// readU32 reads an unsigned LEB128 encoded uint32.
func (r *reader) readU32() (uint32, error) {
	var result uint32
	var shift uint
	for {
		b, err := r.readByte()
		if err != nil {
			return 0, err
		}
		result |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
		if shift >= 35 {
			return 0, ErrOverflow
		}
	}
}

// readName reads a length-prefixed UTF-8 string.
func (r *reader) readName() (string, error) {
	n, err := r.readU32()
	if err != nil {
		return "", err
	}
	buf, err := r.readBytes(int(n))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(buf) {
		return "", fmt.Errorf("name is not valid UTF-8")
	}
	return string(buf), nil
}
