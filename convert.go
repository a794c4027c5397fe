package resourcelib

import (
	"encoding/json"
	"fmt"
)

// ConvertString converts a binary resource and returns a copy of the resulting JSON.
// The intermediate JsonString is freed before returning.
func ConvertString(lib *Library, resourceType string, data []byte) (string, error) {
	conv := lib.ConverterFor(resourceType)
	if conv == nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, resourceType)
	}
	js, err := conv.FromMemoryToJSONString(data)
	if err != nil {
		return "", err
	}
	defer conv.FreeJSONString(js)

	if err := js.Validate(); err != nil {
		return "", fmt.Errorf("convert %s: %w", resourceType, err)
	}
	return js.String(), nil
}

// Convert converts a binary resource and decodes the resulting JSON into T.
func Convert[T any](lib *Library, resourceType string, data []byte) (T, error) {
	var v T
	conv := lib.ConverterFor(resourceType)
	if conv == nil {
		return v, fmt.Errorf("%w: %q", ErrUnsupportedType, resourceType)
	}
	js, err := conv.FromMemoryToJSONString(data)
	if err != nil {
		return v, err
	}
	defer conv.FreeJSONString(js)

	if err := json.Unmarshal(js.Bytes(), &v); err != nil {
		return v, fmt.Errorf("decode %s json: %w", resourceType, err)
	}
	return v, nil
}

// Generate encodes v as JSON and returns a copy of the generated binary resource.
func Generate(lib *Library, resourceType string, v any, simple bool) ([]byte, error) {
	gen := lib.GeneratorFor(resourceType)
	if gen == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, resourceType)
	}
	doc, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s json: %w", resourceType, err)
	}
	return GenerateBytes(gen, doc, simple)
}

// GenerateBytes runs gen on a JSON document and returns a copy of the binary resource.
func GenerateBytes(gen *Generator, doc []byte, simple bool) ([]byte, error) {
	js := MakeJsonString(doc)
	mem, err := gen.FromJsonString(js, simple)
	if err != nil {
		return nil, err
	}
	defer gen.FreeResourceMem(mem)
	return mem.Clone(), nil
}
