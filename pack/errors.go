package pack

import "fmt"

// PackErr reports malformed resource packs.
type PackErr string

func (o *PackErr) Error() string {
	return string(*o)
}

func newPackErr(format string, a ...interface{}) *PackErr {
	err := PackErr(fmt.Sprintf(format, a...))
	return &err
}
