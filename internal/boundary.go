package internal

import (
	"bufio"
	"bytes"
	"io"
)

// Magic is written at the very start of every resource pack.
var Magic = []byte("~~resourcelib pack v1~~")

// boundaryPart is repeated to separate the pack header, the TOC and the resource blobs.
var boundaryPart = []byte{'#', 'R', 0, 'L', 0, '#'}

// boundaryPartCount defines how often the boundary part is repeated.
// This keeps the pattern from appearing by accident inside the TOC.
const boundaryPartCount = 4

var boundary []byte

// BoundarySize is the size of the complete boundary pattern.
var BoundarySize int

func init() {
	partLen := len(boundaryPart)
	BoundarySize = partLen * boundaryPartCount

	boundary = make([]byte, BoundarySize)
	for i := 0; i < boundaryPartCount; i++ {
		copy(boundary[i*partLen:], boundaryPart)
	}
}

// IsMagic checks if the given byte slice equals the pack magic.
func IsMagic(data []byte) bool {
	return bytes.Equal(Magic, data)
}

// IsBoundary checks if the given byte slice equals the boundary.
func IsBoundary(data []byte) bool {
	return bytes.Equal(boundary, data)
}

// WriteBoundary writes the boundary pattern.
func WriteBoundary(w io.Writer) error {
	_, err := w.Write(boundary)
	return err
}

// SeekBoundary reads from the reader until the end of the boundary.
// Returns the number of bytes (offset) that were read (including the pattern itself).
// Returns -1 if the boundary was not found.
func SeekBoundary(in io.ReadSeeker) int64 {
	return SeekPattern(in, boundary)
}

// SeekPattern reads from the reader until the search pattern was found.
// The next byte coming from the reader will be the first byte after the pattern ended.
// Returns the number of bytes (offset) that were read (including the pattern itself).
// Returns -1 if the pattern was not found.
func SeekPattern(in io.ReadSeeker, pattern []byte) int64 {
	start, err := in.Seek(0, io.SeekCurrent)
	if err != nil {
		return -1
	}

	var offset int64
	r := bufio.NewReader(in)

	// sliding window over the most recently read bytes
	window := make([]byte, 0, len(pattern))
	for !bytes.Equal(window, pattern) {
		b, err := r.ReadByte()
		if err != nil {
			return -1
		}
		offset++
		if len(window) == len(pattern) {
			copy(window, window[1:])
			window = window[:len(window)-1]
		}
		window = append(window, b)
	}

	// the bufio reader read ahead, so reposition the underlying seeker
	_, _ = in.Seek(start+offset, io.SeekStart)
	return offset
}
