package resourcelib

import (
	"io"

	"github.com/sirupsen/logrus"
)

// DiscardLogger returns a logger that drops everything.
// Useful for embedding the library into hosts with their own diagnostics.
func DiscardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
