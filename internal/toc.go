package internal

// TOC (=table of content) lists all resources of a pack.
// The order of entries reflects the order of the resource blobs that follow it.
// The TOC is stored as json, guarded by a boundary pattern on both sides.
type TOC []Entry

// Entry describes a single packed resource.
type Entry struct {
	Name string // Resource name, unique within the pack
	Type string // Resource type, eg. TEMP
	Size int64  // Resource size in bytes
}
