// Package pack reads and writes resource packs: single files bundling many
// binary resources together with their resource types.
//
// Layout: magic | boundary | json TOC | boundary | resources... | boundary
package pack

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"fortio.org/safecast"

	"github.com/maja42/resourcelib/internal"
)

// Pack represents an opened resource pack.
type Pack struct {
	file    *os.File
	names   []string
	offsets map[string]int64
	sizes   map[string]int64
	types   map[string]string
}

// Open opens the resource pack at the given path.
func Open(path string) (*Pack, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	p, err := read(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return p, nil
}

func read(f *os.File) (*Pack, error) {
	magic := make([]byte, len(internal.Magic))
	if _, err := io.ReadFull(f, magic); err != nil || !internal.IsMagic(magic) {
		return nil, newPackErr("not a resource pack (magic missing)")
	}

	// determine TOC location
	if internal.SeekBoundary(f) < 0 {
		return nil, newPackErr("corrupt pack (TOC missing)")
	}
	tocOffset, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	next := internal.SeekBoundary(f)
	if next < 0 {
		return nil, newPackErr("corrupt pack (incomplete TOC)")
	}
	tocEndOffset := tocOffset + next
	tocSize, err := safecast.Conv[int](next - int64(internal.BoundarySize))
	if err != nil {
		return nil, newPackErr("corrupt pack (TOC too large)")
	}

	// read TOC
	if _, err := f.Seek(tocOffset, io.SeekStart); err != nil {
		return nil, err
	}
	jsonTOC := make([]byte, tocSize)
	if _, err := io.ReadFull(f, jsonTOC); err != nil {
		return nil, err
	}
	var toc internal.TOC
	if err := json.Unmarshal(jsonTOC, &toc); err != nil {
		return nil, newPackErr("corrupt pack (invalid TOC)")
	}

	p := &Pack{
		file:    f,
		names:   make([]string, 0, len(toc)),
		offsets: make(map[string]int64, len(toc)),
		sizes:   make(map[string]int64, len(toc)),
		types:   make(map[string]string, len(toc)),
	}
	offset := tocEndOffset
	for _, e := range toc {
		if _, dup := p.offsets[e.Name]; dup {
			return nil, newPackErr("corrupt pack (duplicate resource %q)", e.Name)
		}
		if e.Size < 0 {
			return nil, newPackErr("corrupt pack (negative size for %q)", e.Name)
		}
		if e.Size > math.MaxInt64-offset {
			return nil, newPackErr("corrupt pack (offsets too large)")
		}
		p.names = append(p.names, e.Name)
		p.offsets[e.Name] = offset
		p.sizes[e.Name] = e.Size
		p.types[e.Name] = e.Type
		offset += e.Size
	}

	// find trailing boundary
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return nil, err
	}
	trailer := make([]byte, internal.BoundarySize)
	if _, err := io.ReadFull(f, trailer); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF { // offsets point outside the file
			return nil, newPackErr("corrupt pack (offsets too large)")
		}
		return nil, err
	}
	if !internal.IsBoundary(trailer) {
		return nil, newPackErr("corrupt pack (invalid offsets)")
	}
	return p, nil
}

// Close closes the underlying file.
// Close will return an error if it has already been called.
func (p *Pack) Close() error {
	return p.file.Close()
}

// List returns the names of all resources, in pack order.
func (p *Pack) List() []string {
	if len(p.names) == 0 {
		return nil
	}
	l := make([]string, len(p.names))
	copy(l, p.names)
	return l
}

// Count returns the number of resources.
func (p *Pack) Count() int {
	return len(p.names)
}

// Reader groups basic methods available on packed resources.
type Reader interface {
	io.ReadSeeker
	io.ReaderAt
	Size() int64
}

// Reader returns a reader for a given resource.
// Returns nil if no resource with that name exists.
func (p *Pack) Reader(name string) Reader {
	offset, ok := p.offsets[name]
	if !ok {
		return nil
	}
	return io.NewSectionReader(p.file, offset, p.sizes[name])
}

// ReadResource returns the content of a resource.
func (p *Pack) ReadResource(name string) ([]byte, error) {
	r := p.Reader(name)
	if r == nil {
		return nil, fmt.Errorf("resource %q: %w", name, os.ErrNotExist)
	}
	size, err := safecast.Conv[int](r.Size())
	if err != nil {
		return nil, fmt.Errorf("resource %q: %w", name, err)
	}
	data := make([]byte, size)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("read resource %q: %w", name, err)
	}
	return data, nil
}

// Type returns the resource type of a resource, eg. TEMP.
// Returns an empty string if no resource with that name exists.
func (p *Pack) Type(name string) string {
	return p.types[name]
}

// Size returns the size of a resource in bytes.
// Returns zero if no resource with that name exists.
func (p *Pack) Size(name string) int64 {
	return p.sizes[name]
}

// Offset returns the offset of a resource in bytes, relative to the start of the pack.
// Returns zero if no resource with that name exists.
func (p *Pack) Offset(name string) int64 {
	return p.offsets[name]
}
