package resourcelib

import (
	"iter"
	"structs"
	"unsafe"

	"fortio.org/safecast"

	"github.com/maja42/resourcelib/internal"
)

// The view types below share their memory layout with ResourceLibCommon.h.
// None of them own the memory they point to: whoever produced a view is
// responsible for releasing it, and consumers must never write through them.

// JsonString is a read-only view of a JSON document.
type JsonString struct {
	_ structs.HostLayout

	// JsonData is always NUL-terminated.
	JsonData *byte
	// StrSize is the length of JsonData, excluding the NUL terminator.
	StrSize uintptr
}

// ResourceMem is a read-only view of a binary resource.
// There is no terminator; only DataSize bytes may be read.
type ResourceMem struct {
	_ structs.HostLayout

	ResourceData unsafe.Pointer
	DataSize     uintptr
}

// ResourceTypesArray is a read-only view of a list of NUL-terminated resource type names.
type ResourceTypesArray struct {
	_ structs.HostLayout

	Types     **byte
	TypeCount uintptr
}

// StringView is a read-only view of a string.
// The string is not guaranteed to be NUL-terminated.
type StringView struct {
	_ structs.HostLayout

	Data *byte
	Size uintptr
}

func viewLen(n uintptr) int {
	l, err := safecast.Conv[int](n)
	if err != nil {
		panic(newLibErr("view length %d does not fit into int", n))
	}
	return l
}

// MakeJsonString returns a view of a NUL-terminated copy of doc.
func MakeJsonString(doc []byte) JsonString {
	buf := make([]byte, len(doc)+1)
	copy(buf, doc)
	return JsonString{JsonData: &buf[0], StrSize: uintptr(len(doc))}
}

// IsNil reports whether the view points nowhere.
func (j JsonString) IsNil() bool {
	return j.JsonData == nil
}

// Bytes returns the viewed document, without the terminator.
// The slice aliases the producer's memory and must not be modified or retained
// after the view is freed.
func (j JsonString) Bytes() []byte {
	if j.JsonData == nil {
		return nil
	}
	return unsafe.Slice(j.JsonData, viewLen(j.StrSize))
}

// String returns a copy of the viewed document.
func (j JsonString) String() string {
	return string(j.Bytes())
}

// Validate checks that the view is non-nil and that the byte following
// the document is the NUL terminator.
func (j JsonString) Validate() error {
	if j.JsonData == nil {
		return ErrNilView
	}
	n := viewLen(j.StrSize)
	if *(*byte)(unsafe.Add(unsafe.Pointer(j.JsonData), n)) != 0 {
		return newLibErr("json string of %d bytes is not NUL-terminated", n)
	}
	return nil
}

// MakeResourceMem returns a view of data.
// The caller must keep data unmodified for as long as the view is in use.
func MakeResourceMem(data []byte) ResourceMem {
	if len(data) == 0 {
		return ResourceMem{}
	}
	return ResourceMem{ResourceData: unsafe.Pointer(&data[0]), DataSize: uintptr(len(data))}
}

// Len returns the number of viewed bytes.
func (m ResourceMem) Len() int {
	return viewLen(m.DataSize)
}

// Bytes returns the viewed resource.
// The slice aliases the producer's memory and must not be modified.
func (m ResourceMem) Bytes() []byte {
	if m.ResourceData == nil {
		return nil
	}
	return unsafe.Slice((*byte)(m.ResourceData), viewLen(m.DataSize))
}

// Clone returns a copy of the viewed resource that outlives the view.
func (m ResourceMem) Clone() []byte {
	b := m.Bytes()
	c := make([]byte, len(b))
	copy(c, b)
	return c
}

// Len returns the number of type names.
func (a ResourceTypesArray) Len() int {
	return viewLen(a.TypeCount)
}

// At returns a copy of the i-th type name.
// It panics if i is out of range.
func (a ResourceTypesArray) At(i int) string {
	slots := a.slots()
	return internal.GoString(slots[i])
}

// All iterates over the type names in order.
func (a ResourceTypesArray) All() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i, p := range a.slots() {
			if !yield(i, internal.GoString(p)) {
				return
			}
		}
	}
}

// Strings returns a copy of all type names.
func (a ResourceTypesArray) Strings() []string {
	slots := a.slots()
	s := make([]string, len(slots))
	for i, p := range slots {
		s[i] = internal.GoString(p)
	}
	return s
}

func (a ResourceTypesArray) slots() []*byte {
	if a.Types == nil {
		return nil
	}
	return unsafe.Slice(a.Types, viewLen(a.TypeCount))
}

// MakeStringView returns a view of s.
func MakeStringView(s string) StringView {
	if len(s) == 0 {
		return StringView{}
	}
	return StringView{Data: unsafe.StringData(s), Size: uintptr(len(s))}
}

// IsNil reports whether the view points nowhere.
// Lookups that find nothing return a nil view.
func (v StringView) IsNil() bool {
	return v.Data == nil
}

// Bytes returns the viewed bytes. They must not be modified.
func (v StringView) Bytes() []byte {
	if v.Data == nil {
		return nil
	}
	return unsafe.Slice(v.Data, viewLen(v.Size))
}

// String returns a copy of the viewed string.
func (v StringView) String() string {
	return string(v.Bytes())
}
