package resourcelib

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sort"
)

// Game structures are plain fixed-size records, stored little endian.

type SVector2 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

type SVector3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

type SVector4 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
	W float32 `json:"w"`
}

type SColorRGB struct {
	R float32 `json:"r"`
	G float32 `json:"g"`
	B float32 `json:"b"`
}

type SColorRGBA struct {
	R float32 `json:"r"`
	G float32 `json:"g"`
	B float32 `json:"b"`
	A float32 `json:"a"`
}

// SMatrix43 is an affine transform: three axes and a translation.
type SMatrix43 struct {
	XAxis SVector3 `json:"XAxis"`
	YAxis SVector3 `json:"YAxis"`
	ZAxis SVector3 `json:"ZAxis"`
	Trans SVector3 `json:"Trans"`
}

// ZRuntimeResourceID identifies a resource at runtime.
type ZRuntimeResourceID struct {
	IDHigh uint32 `json:"m_IDHigh"`
	IDLow  uint32 `json:"m_IDLow"`
}

type gameStruct struct {
	size  int
	alloc func() any
}

func newGameStruct[T any]() gameStruct {
	var zero T
	return gameStruct{
		size:  binary.Size(zero),
		alloc: func() any { return new(T) },
	}
}

var gameStructs = map[string]gameStruct{
	"SVector2":           newGameStruct[SVector2](),
	"SVector3":           newGameStruct[SVector3](),
	"SVector4":           newGameStruct[SVector4](),
	"SColorRGB":          newGameStruct[SColorRGB](),
	"SColorRGBA":         newGameStruct[SColorRGBA](),
	"SMatrix43":          newGameStruct[SMatrix43](),
	"ZRuntimeResourceID": newGameStruct[ZRuntimeResourceID](),
}

// GameStructTypes returns the names of all known game structures, sorted.
func GameStructTypes() []string {
	names := make([]string, 0, len(gameStructs))
	for name := range gameStructs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GameStructSize returns the in-memory size of a game structure.
func GameStructSize(structType string) (int, error) {
	gs, ok := gameStructs[structType]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownStruct, structType)
	}
	return gs.size, nil
}

// gameStructToJSON decodes the leading bytes of data as structType.
// JSON has no representation for NaN or infinite floats, so structures holding them fail.
func gameStructToJSON(structType string, data []byte) ([]byte, error) {
	gs, ok := gameStructs[structType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStruct, structType)
	}
	if len(data) < gs.size {
		return nil, newLibErr("%s needs %d bytes, got %d", structType, gs.size, len(data))
	}
	v := gs.alloc()
	if err := binary.Read(bytes.NewReader(data[:gs.size]), binary.LittleEndian, v); err != nil {
		return nil, fmt.Errorf("read %s: %w", structType, err)
	}
	doc, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", structType, err)
	}
	return doc, nil
}

// jsonToGameStruct encodes doc as structType into the start of target.
func jsonToGameStruct(structType string, doc []byte, target []byte) error {
	gs, ok := gameStructs[structType]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStruct, structType)
	}
	if len(target) < gs.size {
		return fmt.Errorf("%w: %s needs %d bytes, got %d", ErrTargetTooSmall, structType, gs.size, len(target))
	}
	v := gs.alloc()
	if err := decodeJSON(doc, v, true); err != nil {
		return err
	}
	buf := bytes.NewBuffer(make([]byte, 0, gs.size))
	if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
		return fmt.Errorf("write %s: %w", structType, err)
	}
	copy(target, buf.Bytes())
	return nil
}
