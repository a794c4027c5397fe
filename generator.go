package resourcelib

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Generator converts JSON documents to binary resources of one type.
type Generator struct {
	lib          *Library
	resourceType string
	codec        Codec
}

// ResourceType returns the resource type handled by the generator.
func (g *Generator) ResourceType() string {
	return g.resourceType
}

// FromJSONStringToResourceMem converts a JSON document to its binary resource.
// Simple documents may carry fields the resource type does not know about;
// they are ignored. Otherwise such fields are an error.
// The result must be released with FreeResourceMem.
func (g *Generator) FromJSONStringToResourceMem(doc []byte, simple bool) (*ResourceMem, error) {
	bin, err := g.codec.FromJSON(doc, !simple)
	if err != nil {
		return nil, fmt.Errorf("generate %s from json: %w", g.resourceType, err)
	}
	g.lib.log.WithFields(logrus.Fields{
		"type":   g.resourceType,
		"in":     len(doc),
		"out":    len(bin),
		"simple": simple,
	}).Debug("generated resource from json")
	return g.lib.newResourceMem(bin), nil
}

// FromJsonString converts a viewed JSON document to its binary resource.
func (g *Generator) FromJsonString(js JsonString, simple bool) (*ResourceMem, error) {
	if js.IsNil() {
		return nil, fmt.Errorf("generate %s from json: %w", g.resourceType, ErrNilView)
	}
	return g.FromJSONStringToResourceMem(js.Bytes(), simple)
}

// FreeResourceMem releases a resource returned by the generator.
func (g *Generator) FreeResourceMem(mem *ResourceMem) {
	g.lib.FreeResourceMem(mem)
}
