package resourcelib

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec converts one resource type between its binary and JSON forms.
type Codec interface {
	// ToJSON converts a binary resource to JSON.
	ToJSON(bin []byte) ([]byte, error)
	// FromJSON converts a JSON document to a binary resource.
	// In strict mode, unknown fields are rejected.
	FromJSON(doc []byte, strict bool) ([]byte, error)
}

// Document is a schemaless resource body.
type Document = map[string]any

// DocumentCodec stores resources of type T as msgpack.
type DocumentCodec[T any] struct{}

func (DocumentCodec[T]) ToJSON(bin []byte) ([]byte, error) {
	var v T
	if err := msgpack.Unmarshal(bin, &v); err != nil {
		return nil, fmt.Errorf("decode msgpack: %w", err)
	}
	return json.Marshal(v)
}

func (DocumentCodec[T]) FromJSON(doc []byte, strict bool) ([]byte, error) {
	var v T
	if err := decodeJSON(doc, &v, strict); err != nil {
		return nil, err
	}
	if err := resolveNumbers(reflect.ValueOf(&v)); err != nil {
		return nil, err
	}
	bin, err := msgpack.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode msgpack: %w", err)
	}
	return bin, nil
}

// decodeJSON decodes exactly one JSON value.
// Numbers stored in interface values are kept as json.Number.
func decodeJSON(doc []byte, v any, strict bool) error {
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return newLibErr("trailing data after json document")
	}
	return nil
}

// resolveNumbers replaces every json.Number held in an interface value
// with an int64, uint64 or float64, whichever represents it exactly.
func resolveNumbers(v reflect.Value) error {
	switch v.Kind() {
	case reflect.Pointer:
		if !v.IsNil() {
			return resolveNumbers(v.Elem())
		}
	case reflect.Interface:
		if v.IsNil() {
			return nil
		}
		if n, ok := v.Interface().(json.Number); ok {
			num, err := parseNumber(n)
			if err != nil {
				return err
			}
			v.Set(reflect.ValueOf(num))
			return nil
		}
		elem := reflect.New(v.Elem().Type()).Elem()
		elem.Set(v.Elem())
		if err := resolveNumbers(elem); err != nil {
			return err
		}
		v.Set(elem)
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if f := v.Field(i); f.CanSet() {
				if err := resolveNumbers(f); err != nil {
					return err
				}
			}
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := resolveNumbers(v.Index(i)); err != nil {
				return err
			}
		}
	case reflect.Map:
		for _, key := range v.MapKeys() {
			elem := reflect.New(v.Type().Elem()).Elem()
			elem.Set(v.MapIndex(key))
			if err := resolveNumbers(elem); err != nil {
				return err
			}
			v.SetMapIndex(key, elem)
		}
	}
	return nil
}

func parseNumber(n json.Number) (any, error) {
	if i, err := n.Int64(); err == nil {
		return i, nil
	}
	if u, err := strconv.ParseUint(n.String(), 10, 64); err == nil {
		return u, nil
	}
	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("decode json: number %s: %w", n, err)
	}
	return f, nil
}

// CppEntity is the body of a CPPT resource.
type CppEntity struct {
	BlueprintIndexInResourceHeader int32      `json:"blueprintIndexInResourceHeader" msgpack:"blueprintIndexInResourceHeader"`
	PropertyValues                 []Property `json:"propertyValues" msgpack:"propertyValues"`
}

// Property is a single property value of an entity.
type Property struct {
	PropertyID uint32        `json:"nPropertyID" msgpack:"nPropertyID"`
	Value      PropertyValue `json:"value" msgpack:"value"`
}

// PropertyValue is a typed value.
type PropertyValue struct {
	Type  string `json:"$type" msgpack:"$type"`
	Value any    `json:"$val" msgpack:"$val"`
}

// builtinCodecs returns the resource types each game supports out of the box.
func builtinCodecs(game Game) map[string]Codec {
	codecs := map[string]Codec{
		"TEMP": DocumentCodec[Document]{},
		"TBLU": DocumentCodec[Document]{},
		"CPPT": DocumentCodec[CppEntity]{},
		"ECPB": DocumentCodec[Document]{},
		"DSWB": SwitchGroupCodec{},
		"WSGB": SwitchGroupCodec{},
	}
	if game == HM3 {
		codecs["UICB"] = DocumentCodec[Document]{}
	}
	return codecs
}
