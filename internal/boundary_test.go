package internal

import (
	"bytes"
	"crypto/rand"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitBoundary(t *testing.T) {
	assert.Equal(t, BoundarySize, len(boundaryPart)*boundaryPartCount)

	assert.Len(t, boundary, len(boundaryPart)*boundaryPartCount)
	for i := 0; i < boundaryPartCount; i++ {
		b := boundary[i*len(boundaryPart):]
		assert.Equal(t, boundaryPart, b[:len(boundaryPart)])
	}
}

func TestIsBoundary(t *testing.T) {
	assert.True(t, IsBoundary(boundary[:]))
	assert.False(t, IsBoundary(boundary[1:]))
	assert.False(t, IsBoundary(append(append([]byte{}, boundary...), 0)))
}

func TestIsMagic(t *testing.T) {
	assert.True(t, IsMagic([]byte("~~resourcelib pack v1~~")))
	assert.False(t, IsMagic([]byte("~~resourcelib pack v2~~")))
	assert.False(t, IsMagic(nil))
}

func TestWriteBoundary(t *testing.T) {
	buf := new(bytes.Buffer)
	err := WriteBoundary(buf)
	assert.NoError(t, err)
	assert.Equal(t, boundary, buf.Bytes())
}

type errWriter struct{}

func (errWriter) Write([]byte) (n int, err error) {
	return 0, errors.New("simulated error")
}

func TestWriteBoundary_writeError(t *testing.T) {
	err := WriteBoundary(errWriter{})
	assert.EqualError(t, err, "simulated error")
}

func TestSeekBoundary(t *testing.T) {
	// Create buffer:
	//	- filler bytes
	//	- boundary
	//  - "text 1"
	//	- boundary
	//  - "text 2"
	filler := bytes.Repeat([]byte{0xAB}, 50)

	buf := bytes.NewBuffer(append([]byte{}, filler...))
	buf.Write(boundary)
	buf.WriteString("text 1")
	buf.Write(boundary)
	buf.WriteString("text 2")

	r := bytes.NewReader(buf.Bytes())

	offset := SeekBoundary(r)
	assert.Equal(t, int64(len(filler)+len(boundary)), offset)

	txt := make([]byte, 6)
	_, err := r.Read(txt)
	assert.NoError(t, err)
	assert.Equal(t, []byte("text 1"), txt)

	offset = SeekBoundary(r)
	assert.Equal(t, int64(len(boundary)), offset)

	content, err := io.ReadAll(r)
	assert.NoError(t, err)
	assert.Equal(t, []byte("text 2"), content)

	offset = SeekBoundary(r)
	assert.Equal(t, int64(-1), offset)
}

func TestSeekPattern_restartOnPartialMatch(t *testing.T) {
	r := bytes.NewReader([]byte("aaab"))
	offset := SeekPattern(r, []byte("aab"))
	assert.Equal(t, int64(4), offset)
}

func TestSeekBoundary_noBoundary(t *testing.T) {
	random := make([]byte, 50)
	_, err := rand.Read(random)
	assert.NoError(t, err)

	r := bytes.NewReader(random)
	assert.Equal(t, int64(-1), SeekBoundary(r))
}
