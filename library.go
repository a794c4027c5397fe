package resourcelib

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"unsafe"

	"github.com/sirupsen/logrus"

	"github.com/maja42/resourcelib/internal"
)

// Library converts the resources of one game between their binary and JSON forms.
//
// Every view returned by a Library is owned by it and stays valid until it is
// passed to the matching Free function. Freeing zeroes the view.
// A Library is safe for concurrent use.
type Library struct {
	game  Game
	log   logrus.FieldLogger
	arena *internal.Arena
	props *propertyTable

	mu     sync.RWMutex
	codecs map[string]Codec
}

// Option configures a Library.
type Option func(*options)

type options struct {
	logger    logrus.FieldLogger
	pin       bool
	codecs    map[string]Codec
	propNames []string
}

// WithLogger sets the logger. Defaults to the logrus standard logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPinnedMemory pins the memory of all produced views,
// which is required when they are handed to C code.
func WithPinnedMemory() Option {
	return func(o *options) {
		o.pin = true
	}
}

// WithCodec registers an additional codec, replacing any built-in one for that type.
func WithCodec(resourceType string, codec Codec) Option {
	return func(o *options) {
		if o.codecs == nil {
			o.codecs = make(map[string]Codec)
		}
		o.codecs[resourceType] = codec
	}
}

// WithPropertyNames adds names that can be resolved by PropertyName.
func WithPropertyNames(names ...string) Option {
	return func(o *options) {
		o.propNames = append(o.propNames, names...)
	}
}

// New creates a library for the given game.
func New(game Game, opts ...Option) *Library {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logrus.StandardLogger()
	}

	codecs := builtinCodecs(game)
	for t, c := range o.codecs {
		codecs[t] = c
	}

	lib := &Library{
		game:   game,
		log:    o.logger.WithField("game", game.String()),
		arena:  internal.NewArena(o.pin),
		props:  newPropertyTable(),
		codecs: codecs,
	}
	lib.props.add(o.propNames...)
	lib.log.Debugf("resource library created with %d resource types", len(codecs))
	return lib
}

// Game returns the game this library converts resources for.
func (l *Library) Game() Game {
	return l.game
}

// RegisterCodec adds or replaces the codec of a resource type.
func (l *Library) RegisterCodec(resourceType string, codec Codec) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.codecs[resourceType] = codec
}

func (l *Library) codec(resourceType string) (Codec, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	c, ok := l.codecs[resourceType]
	return c, ok
}

// ConverterFor returns a binary -> json converter for the given resource type (eg. TEMP).
// Returns nil if the type is not supported.
func (l *Library) ConverterFor(resourceType string) *Converter {
	c, ok := l.codec(resourceType)
	if !ok {
		return nil
	}
	return &Converter{lib: l, resourceType: resourceType, codec: c}
}

// GeneratorFor returns a json -> binary generator for the given resource type (eg. TEMP).
// Returns nil if the type is not supported.
func (l *Library) GeneratorFor(resourceType string) *Generator {
	c, ok := l.codec(resourceType)
	if !ok {
		return nil
	}
	return &Generator{lib: l, resourceType: resourceType, codec: c}
}

// IsResourceTypeSupported reports whether resources of this type can be converted in both directions.
func (l *Library) IsResourceTypeSupported(resourceType string) bool {
	_, ok := l.codec(resourceType)
	return ok
}

// SupportedResourceTypes lists all supported resource types, sorted.
// The result must be released with FreeSupportedResourceTypes.
func (l *Library) SupportedResourceTypes() *ResourceTypesArray {
	l.mu.RLock()
	names := make([]string, 0, len(l.codecs))
	for name := range l.codecs {
		names = append(names, name)
	}
	l.mu.RUnlock()
	sort.Strings(names)

	blk := l.arena.NewBlock()
	slots := internal.Alloc[*byte](blk, len(names))
	for i, name := range names {
		buf := internal.Alloc[byte](blk, len(name)+1)
		copy(buf, name)
		slots[i] = &buf[0]
	}
	view := &internal.Alloc[ResourceTypesArray](blk, 1)[0]
	if len(slots) > 0 {
		view.Types = &slots[0]
	}
	view.TypeCount = uintptr(len(slots))
	l.arena.Commit(unsafe.Pointer(view), blk)
	return view
}

// FreeSupportedResourceTypes releases an array returned by SupportedResourceTypes.
func (l *Library) FreeSupportedResourceTypes(types *ResourceTypesArray) {
	if !l.release(unsafe.Pointer(types), "resource types array") {
		return
	}
	*types = ResourceTypesArray{}
}

// GameStructToJSON converts the native in-memory representation of a game structure to JSON.
// The result must be released with FreeJSONString.
// Structures containing NaN or infinite floats cannot be converted.
func (l *Library) GameStructToJSON(structType string, data []byte) (*JsonString, error) {
	doc, err := gameStructToJSON(structType, data)
	if err != nil {
		return nil, fmt.Errorf("convert %s to json: %w", structType, err)
	}
	return l.newJSONString(doc), nil
}

// JSONToGameStruct converts the JSON representation of a game structure to its native form,
// written to the start of target. Target must be large enough to hold the structure.
func (l *Library) JSONToGameStruct(structType string, doc []byte, target []byte) error {
	if err := jsonToGameStruct(structType, doc, target); err != nil {
		return fmt.Errorf("convert json to %s: %w", structType, err)
	}
	return nil
}

// FreeJSONString releases a JSON string produced by this library.
func (l *Library) FreeJSONString(js *JsonString) {
	if !l.release(unsafe.Pointer(js), "json string") {
		return
	}
	*js = JsonString{}
}

// FreeResourceMem releases a resource produced by this library.
func (l *Library) FreeResourceMem(mem *ResourceMem) {
	if !l.release(unsafe.Pointer(mem), "resource memory") {
		return
	}
	*mem = ResourceMem{}
}

// PropertyName resolves a property id (the CRC32 of its name).
// Unknown ids result in a nil view with size zero.
// The returned view remains valid for the lifetime of the library.
func (l *Library) PropertyName(id uint32) StringView {
	name, ok := l.props.lookup(id)
	if !ok {
		return StringView{}
	}
	return MakeStringView(name)
}

// RegisterPropertyNames makes the given names resolvable by PropertyName.
func (l *Library) RegisterPropertyNames(names ...string) {
	l.props.add(names...)
}

// LoadPropertyNames reads one property name per line and registers them.
// Returns the number of names read.
func (l *Library) LoadPropertyNames(r io.Reader) (int, error) {
	names, err := readPropertyNames(r)
	if err != nil {
		return 0, err
	}
	l.props.add(names...)
	l.log.Debugf("loaded %d property names", len(names))
	return len(names), nil
}

// Outstanding returns the number of views that have not been freed yet.
func (l *Library) Outstanding() int {
	return l.arena.Len()
}

func (l *Library) release(key unsafe.Pointer, kind string) bool {
	if key == nil {
		l.log.Warnf("attempted to free nil %s", kind)
		return false
	}
	if !l.arena.Release(key) {
		l.log.Warnf("attempted to free %s %p not owned by this library", kind, key)
		return false
	}
	return true
}

func (l *Library) newJSONString(doc []byte) *JsonString {
	blk := l.arena.NewBlock()
	buf := internal.Alloc[byte](blk, len(doc)+1)
	copy(buf, doc)
	view := &internal.Alloc[JsonString](blk, 1)[0]
	view.JsonData = &buf[0]
	view.StrSize = uintptr(len(doc))
	l.arena.Commit(unsafe.Pointer(view), blk)
	return view
}

func (l *Library) newResourceMem(data []byte) *ResourceMem {
	blk := l.arena.NewBlock()
	buf := internal.Alloc[byte](blk, len(data))
	copy(buf, data)
	view := &internal.Alloc[ResourceMem](blk, 1)[0]
	if len(buf) > 0 {
		view.ResourceData = unsafe.Pointer(&buf[0])
	}
	view.DataSize = uintptr(len(buf))
	l.arena.Commit(unsafe.Pointer(view), blk)
	return view
}
