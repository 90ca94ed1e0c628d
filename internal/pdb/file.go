package pdb

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Table file layout, little endian:
//
//	0   magic "RPDB"
//	4   version  uint16
//	6   kind     uint8
//	7   pieces   uint8 (m)
//	8   width    uint8 (bytes per entry, always 1)
//	9   reserved [3]byte
//	12  entries  uint32
//	16  piece list, m bytes
//	    entries, one byte per rank
//
// Files holding only the entries, with no header, are also accepted when
// their length equals the pattern's domain size.
const (
	fileVersion = 1
	headerSize  = 16
	entryWidth  = 1
)

var fileMagic = [4]byte{'R', 'P', 'D', 'B'}

type fileHeader struct {
	Magic    [4]byte
	Version  uint16
	Kind     uint8
	Pieces   uint8
	Width    uint8
	Reserved [3]byte
	Entries  uint32
}

// WriteTable writes t in the headered format.
func WriteTable(w io.Writer, t *Table) error {
	p := t.Pattern
	h := fileHeader{
		Magic:   fileMagic,
		Version: fileVersion,
		Kind:    uint8(p.Kind()),
		Pieces:  uint8(len(p.pieces)),
		Width:   entryWidth,
		Entries: uint32(len(t.Costs)),
	}
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	pieces := make([]byte, len(p.pieces))
	for i, v := range p.pieces {
		pieces[i] = byte(v)
	}
	if _, err := w.Write(pieces); err != nil {
		return fmt.Errorf("failed to write pieces: %w", err)
	}
	if _, err := w.Write(t.Costs); err != nil {
		return fmt.Errorf("failed to write entries: %w", err)
	}
	return nil
}

// ReadTable reads a table for pattern p. Headered files must describe
// the same pattern; headerless files must hold exactly p.Size() entries.
func ReadTable(r io.Reader, p *Pattern) (*Table, error) {
	br := bufio.NewReader(r)

	magic, err := br.Peek(len(fileMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}
	if bytes.Equal(magic, fileMagic[:]) {
		if err := readHeader(br, p); err != nil {
			return nil, err
		}
	}

	t := &Table{Pattern: p, Costs: make([]uint8, p.Size())}
	if _, err := io.ReadFull(br, t.Costs); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: %s is truncated", ErrMalformedTable, p.Name())
		}
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	if _, err := br.ReadByte(); err == nil {
		return nil, fmt.Errorf("%w: %s has trailing data", ErrMalformedTable, p.Name())
	} else if !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	return t, nil
}

func readHeader(r io.Reader, p *Pattern) error {
	var h fileHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("%w: %s header: %v", ErrMalformedTable, p.Name(), err)
	}
	if h.Version == 0 || h.Version > fileVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	if h.Width != entryWidth {
		return fmt.Errorf("%w: %s entry width %d", ErrMalformedTable, p.Name(), h.Width)
	}

	pieces := make([]byte, h.Pieces)
	if _, err := io.ReadFull(r, pieces); err != nil {
		return fmt.Errorf("%w: %s piece list: %v", ErrMalformedTable, p.Name(), err)
	}
	stored := make([]int, len(pieces))
	for i, v := range pieces {
		stored[i] = int(v)
	}
	if Kind(h.Kind) != p.Kind() || !equalInts(stored, p.pieces) {
		return fmt.Errorf("%w: file has %s %v, want %s %v", ErrPatternMismatch, Kind(h.Kind), stored, p.Kind(), p.pieces)
	}
	if int(h.Entries) != p.Size() {
		return fmt.Errorf("%w: %s header declares %d entries, want %d", ErrMalformedTable, p.Name(), h.Entries, p.Size())
	}
	return nil
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// SaveTable writes t to path, replacing any existing file only once the
// new one is complete.
func SaveTable(path string, t *Table) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create table file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriterSize(tmp, 1<<20)
	if err := WriteTable(w, t); err != nil {
		tmp.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write table file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close table file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to save table file: %w", err)
	}
	return nil
}

// LoadTable reads the table for p from path.
func LoadTable(path string, p *Pattern) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table: %w", err)
	}
	defer f.Close()

	t, err := ReadTable(f, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
