package main

/*
#include "views.h"
*/
import "C"

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/maja42/resourcelib"
)

type layout struct {
	name   string
	goSize uintptr
	cSize  uintptr
	goOffs [2]uintptr
	cOffs  [2]uintptr
}

// checkLayout verifies that the Go views can be reinterpreted as their C counterparts.
func checkLayout() error {
	layouts := []layout{
		{
			name:   "JsonString",
			goSize: unsafe.Sizeof(resourcelib.JsonString{}),
			cSize:  unsafe.Sizeof(C.struct_JsonString{}),
			goOffs: [2]uintptr{unsafe.Offsetof(resourcelib.JsonString{}.JsonData), unsafe.Offsetof(resourcelib.JsonString{}.StrSize)},
			cOffs:  [2]uintptr{unsafe.Offsetof(C.struct_JsonString{}.JsonData), unsafe.Offsetof(C.struct_JsonString{}.StrSize)},
		},
		{
			name:   "ResourceMem",
			goSize: unsafe.Sizeof(resourcelib.ResourceMem{}),
			cSize:  unsafe.Sizeof(C.struct_ResourceMem{}),
			goOffs: [2]uintptr{unsafe.Offsetof(resourcelib.ResourceMem{}.ResourceData), unsafe.Offsetof(resourcelib.ResourceMem{}.DataSize)},
			cOffs:  [2]uintptr{unsafe.Offsetof(C.struct_ResourceMem{}.ResourceData), unsafe.Offsetof(C.struct_ResourceMem{}.DataSize)},
		},
		{
			name:   "ResourceTypesArray",
			goSize: unsafe.Sizeof(resourcelib.ResourceTypesArray{}),
			cSize:  unsafe.Sizeof(C.struct_ResourceTypesArray{}),
			goOffs: [2]uintptr{unsafe.Offsetof(resourcelib.ResourceTypesArray{}.Types), unsafe.Offsetof(resourcelib.ResourceTypesArray{}.TypeCount)},
			cOffs:  [2]uintptr{unsafe.Offsetof(C.struct_ResourceTypesArray{}.Types), unsafe.Offsetof(C.struct_ResourceTypesArray{}.TypeCount)},
		},
		{
			name:   "StringView",
			goSize: unsafe.Sizeof(resourcelib.StringView{}),
			cSize:  unsafe.Sizeof(C.struct_StringView{}),
			goOffs: [2]uintptr{unsafe.Offsetof(resourcelib.StringView{}.Data), unsafe.Offsetof(resourcelib.StringView{}.Size)},
			cOffs:  [2]uintptr{unsafe.Offsetof(C.struct_StringView{}.Data), unsafe.Offsetof(C.struct_StringView{}.Size)},
		},
	}

	var errs []error
	for _, l := range layouts {
		if l.goSize != l.cSize {
			errs = append(errs, fmt.Errorf("%s: size %d, C expects %d", l.name, l.goSize, l.cSize))
		}
		if l.goOffs != l.cOffs {
			errs = append(errs, fmt.Errorf("%s: field offsets %v, C expects %v", l.name, l.goOffs, l.cOffs))
		}
	}
	return errors.Join(errs...)
}
