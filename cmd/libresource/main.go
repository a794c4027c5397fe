// Command libresource exports the resource library through a C ABI.
//
// Build it with
//
//	go build -buildmode=c-shared -o libresource.so ./cmd/libresource
//
// Every game gets its own set of functions, prefixed with HM2016_, HM2_ or HM3_.
// All views returned to C are pinned Go memory and stay valid until they are
// passed to the matching Free function. Failures are reported as NULL or false.
package main

/*
#include "views.h"
*/
import "C"

import (
	"os"
	"sync"
	"unsafe"

	"fortio.org/safecast"
	"github.com/sirupsen/logrus"

	"github.com/maja42/resourcelib"
)

// LogLevelEnv configures the log level of the library. Logs are written to stderr.
const LogLevelEnv = "RESOURCELIB_LOG_LEVEL"

var (
	hm2016 = newTarget(resourcelib.HM2016)
	hm2    = newTarget(resourcelib.HM2)
	hm3    = newTarget(resourcelib.HM3)
)

func init() {
	if err := checkLayout(); err != nil {
		panic(err)
	}

	logrus.SetLevel(logrus.WarnLevel)
	if lvl, ok := os.LookupEnv(LogLevelEnv); ok {
		parsed, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.Warnf("%s: %v", LogLevelEnv, err)
			return
		}
		logrus.SetLevel(parsed)
	}
}

func main() {}

// target is the exported library of a single game.
type target struct {
	lib *resourcelib.Library
	log logrus.FieldLogger

	mu    sync.Mutex
	names map[uint32]C.struct_StringView // C copies, never freed
}

func newTarget(game resourcelib.Game) *target {
	log := logrus.WithField("game", game.String())
	return &target{
		lib:   resourcelib.New(game, resourcelib.WithLogger(logrus.StandardLogger()), resourcelib.WithPinnedMemory()),
		log:   log,
		names: make(map[uint32]C.struct_StringView),
	}
}

func (t *target) supportedTypes() *C.struct_ResourceTypesArray {
	return (*C.struct_ResourceTypesArray)(unsafe.Pointer(t.lib.SupportedResourceTypes()))
}

func (t *target) freeSupportedTypes(arr *C.struct_ResourceTypesArray) {
	t.lib.FreeSupportedResourceTypes((*resourcelib.ResourceTypesArray)(unsafe.Pointer(arr)))
}

func (t *target) convert(resourceType string, data []byte) *C.struct_JsonString {
	conv := t.lib.ConverterFor(resourceType)
	if conv == nil {
		t.log.Errorf("no converter for resource type %q", resourceType)
		return nil
	}
	js, err := conv.FromMemoryToJSONString(data)
	if err != nil {
		t.log.Error(err)
		return nil
	}
	return (*C.struct_JsonString)(unsafe.Pointer(js))
}

func (t *target) generate(resourceType string, doc []byte, simple bool) *C.struct_ResourceMem {
	gen := t.lib.GeneratorFor(resourceType)
	if gen == nil {
		t.log.Errorf("no generator for resource type %q", resourceType)
		return nil
	}
	mem, err := gen.FromJSONStringToResourceMem(doc, simple)
	if err != nil {
		t.log.Error(err)
		return nil
	}
	return (*C.struct_ResourceMem)(unsafe.Pointer(mem))
}

func (t *target) freeJSONString(js *C.struct_JsonString) {
	t.lib.FreeJSONString((*resourcelib.JsonString)(unsafe.Pointer(js)))
}

func (t *target) freeResourceMem(mem *C.struct_ResourceMem) {
	t.lib.FreeResourceMem((*resourcelib.ResourceMem)(unsafe.Pointer(mem)))
}

func (t *target) gameStructToJSON(structType string, data []byte) *C.struct_JsonString {
	js, err := t.lib.GameStructToJSON(structType, data)
	if err != nil {
		t.log.Error(err)
		return nil
	}
	return (*C.struct_JsonString)(unsafe.Pointer(js))
}

func (t *target) jsonToGameStruct(structType string, doc []byte, target []byte) bool {
	if err := t.lib.JSONToGameStruct(structType, doc, target); err != nil {
		t.log.Error(err)
		return false
	}
	return true
}

// propertyName returns a view into C memory.
// Go strings are not pinned and must not be handed out.
func (t *target) propertyName(id uint32) C.struct_StringView {
	t.mu.Lock()
	defer t.mu.Unlock()
	if sv, ok := t.names[id]; ok {
		return sv
	}
	name := t.lib.PropertyName(id)
	if name.IsNil() {
		return C.struct_StringView{}
	}
	sv := C.struct_StringView{
		Data: C.CString(name.String()),
		Size: C.size_t(name.Size),
	}
	t.names[id] = sv
	return sv
}

func goString(s *C.char) string {
	if s == nil {
		return ""
	}
	return C.GoString(s)
}

// borrow returns a slice over C memory without copying it.
func borrow(data unsafe.Pointer, size C.size_t) ([]byte, bool) {
	if size == 0 {
		return nil, true
	}
	if data == nil {
		return nil, false
	}
	n, err := safecast.Conv[int](uint64(size))
	if err != nil {
		return nil, false
	}
	return unsafe.Slice((*byte)(data), n), true
}
