package resourcelib

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameStructSize(t *testing.T) {
	sizes := map[string]int{
		"SVector2":           8,
		"SVector3":           12,
		"SVector4":           16,
		"SColorRGB":          12,
		"SColorRGBA":         16,
		"SMatrix43":          48,
		"ZRuntimeResourceID": 8,
	}
	for name, size := range sizes {
		got, err := GameStructSize(name)
		assert.NoError(t, err, name)
		assert.Equal(t, size, got, name)
	}
	assert.Len(t, GameStructTypes(), len(sizes))

	_, err := GameStructSize("SVector5")
	assert.ErrorIs(t, err, ErrUnknownStruct)
}

func TestLibrary_GameStructToJSON(t *testing.T) {
	lib := newTestLibrary(t, HM3)

	data := make([]byte, 12)
	binary.LittleEndian.PutUint32(data[0:], math.Float32bits(1.5))
	binary.LittleEndian.PutUint32(data[4:], math.Float32bits(-2))
	binary.LittleEndian.PutUint32(data[8:], math.Float32bits(0))

	js, err := lib.GameStructToJSON("SVector3", data)
	require.NoError(t, err)
	require.NoError(t, js.Validate())
	assert.JSONEq(t, `{"x":1.5,"y":-2,"z":0}`, js.String())
	lib.FreeJSONString(js)

	_, err = lib.GameStructToJSON("SVector3", data[:11])
	assert.EqualError(t, err, "convert SVector3 to json: SVector3 needs 12 bytes, got 11")

	_, err = lib.GameStructToJSON("Nope", data)
	assert.ErrorIs(t, err, ErrUnknownStruct)
}

func TestLibrary_GameStructToJSON_nonFinite(t *testing.T) {
	lib := newTestLibrary(t, HM3)

	for _, f := range []float32{float32(math.NaN()), float32(math.Inf(1)), float32(math.Inf(-1))} {
		data := make([]byte, 8)
		binary.LittleEndian.PutUint32(data[4:], math.Float32bits(f))

		js, err := lib.GameStructToJSON("SVector2", data)
		assert.Nil(t, js)
		var unsupported *json.UnsupportedValueError
		assert.True(t, errors.As(err, &unsupported), "%v", f)
		assert.ErrorContains(t, err, "convert SVector2 to json: encode SVector2")
	}
}

func TestLibrary_JSONToGameStruct(t *testing.T) {
	lib := newTestLibrary(t, HM3)

	target := make([]byte, 10)
	for i := range target {
		target[i] = 0xEE
	}
	err := lib.JSONToGameStruct("ZRuntimeResourceID", []byte(`{"m_IDHigh":1,"m_IDLow":2}`), target)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 0, 0, 0, 2, 0, 0, 0, 0xEE, 0xEE}, target)

	err = lib.JSONToGameStruct("ZRuntimeResourceID", []byte(`{"m_IDHigh":1}`), target[:7])
	assert.ErrorIs(t, err, ErrTargetTooSmall)

	err = lib.JSONToGameStruct("ZRuntimeResourceID", []byte(`{"m_IDHigh":1,"bogus":2}`), target)
	assert.Error(t, err)

	err = lib.JSONToGameStruct("SVector9", []byte(`{}`), target)
	assert.ErrorIs(t, err, ErrUnknownStruct)
}

func TestGameStruct_roundTrip(t *testing.T) {
	lib := newTestLibrary(t, HM2)
	doc := `{"XAxis":{"x":1,"y":0,"z":0},"YAxis":{"x":0,"y":1,"z":0},"ZAxis":{"x":0,"y":0,"z":1},"Trans":{"x":10.5,"y":-3,"z":7}}`

	size, err := GameStructSize("SMatrix43")
	require.NoError(t, err)
	mem := make([]byte, size)
	require.NoError(t, lib.JSONToGameStruct("SMatrix43", []byte(doc), mem))

	js, err := lib.GameStructToJSON("SMatrix43", mem)
	require.NoError(t, err)
	defer lib.FreeJSONString(js)
	assert.JSONEq(t, doc, js.String())
}
