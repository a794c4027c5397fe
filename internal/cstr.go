package internal

import "unsafe"

// CStrLen returns the number of bytes preceding the NUL terminator at p.
// It never reads past the terminator. A nil pointer has length zero.
func CStrLen(p *byte) int {
	if p == nil {
		return 0
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return n
}

// GoString copies the NUL-terminated string at p.
func GoString(p *byte) string {
	if p == nil {
		return ""
	}
	return string(unsafe.Slice(p, CStrLen(p)))
}
