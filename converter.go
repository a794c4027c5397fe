package resourcelib

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Converter converts binary resources of one type to JSON.
type Converter struct {
	lib          *Library
	resourceType string
	codec        Codec
}

// ResourceType returns the resource type handled by the converter.
func (c *Converter) ResourceType() string {
	return c.resourceType
}

// FromMemoryToJSONString converts a binary resource to its JSON representation.
// The result must be released with FreeJSONString.
func (c *Converter) FromMemoryToJSONString(data []byte) (*JsonString, error) {
	doc, err := c.codec.ToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("convert %s to json: %w", c.resourceType, err)
	}
	c.lib.log.WithFields(logrus.Fields{
		"type": c.resourceType,
		"in":   len(data),
		"out":  len(doc),
	}).Debug("converted resource to json")
	return c.lib.newJSONString(doc), nil
}

// FromResourceMem converts a viewed binary resource to JSON.
func (c *Converter) FromResourceMem(mem ResourceMem) (*JsonString, error) {
	return c.FromMemoryToJSONString(mem.Bytes())
}

// FreeJSONString releases a JSON string returned by the converter.
func (c *Converter) FreeJSONString(js *JsonString) {
	c.lib.FreeJSONString(js)
}
