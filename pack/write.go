package pack

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/maja42/resourcelib/internal"
)

// Entry is a resource to be packed.
type Entry struct {
	Name string
	Type string
	Data io.ReadSeeker
}

// FileEntry is a resource to be packed, read from a file.
type FileEntry struct {
	Name string
	Type string
	Path string
}

// Write writes a resource pack containing the given entries, in order.
//
// Note that all ReadSeekers are seeked to their start before usage,
// meaning the entirety of readable content is packed. Use io.SectionReader to avoid this.
//
// logger (optional) is used to report the progress.
func Write(out io.Writer, entries []Entry, logger logrus.FieldLogger) error {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}

	toc, err := buildTOC(entries)
	if err != nil {
		return fmt.Errorf("build TOC: %w", err)
	}
	jsonTOC, err := json.Marshal(toc)
	if err != nil {
		return fmt.Errorf("marshal TOC: %w", err)
	}

	if _, err := out.Write(internal.Magic); err != nil {
		return fmt.Errorf("write magic: %w", err)
	}
	if err := internal.WriteBoundary(out); err != nil {
		return err
	}
	logger.Debugf("adding TOC (%d bytes)", len(jsonTOC))
	if _, err := out.Write(jsonTOC); err != nil {
		return fmt.Errorf("write TOC: %w", err)
	}
	if err := internal.WriteBoundary(out); err != nil {
		return err
	}
	for i, e := range entries {
		logger.WithField("type", e.Type).Debugf("adding %q (%d bytes)", e.Name, toc[i].Size)
		n, err := io.Copy(out, e.Data)
		if err != nil {
			return fmt.Errorf("write resource %q: %w", e.Name, err)
		}
		if n != toc[i].Size {
			return fmt.Errorf("write resource %q: size changed from %d to %d bytes", e.Name, toc[i].Size, n)
		}
	}
	return internal.WriteBoundary(out)
}

// WriteFiles writes a resource pack containing the given files.
//
// See Write for more information.
func WriteFiles(out io.Writer, files []FileEntry, logger logrus.FieldLogger) error {
	entries := make([]Entry, 0, len(files))
	for _, fe := range files {
		file, err := os.Open(fe.Path)
		if err != nil {
			return fmt.Errorf("open resource %q (%q): %w", fe.Name, fe.Path, err)
		}
		//goland:noinspection ALL
		defer file.Close()
		entries = append(entries, Entry{Name: fe.Name, Type: fe.Type, Data: file})
	}
	return Write(out, entries, logger)
}

// buildTOC returns the TOC for the given entries.
// All readers are seeked to the beginning afterwards.
func buildTOC(entries []Entry) (internal.TOC, error) {
	toc := make(internal.TOC, 0, len(entries))
	seen := make(map[string]bool, len(entries))

	for _, e := range entries {
		if e.Name == "" {
			return nil, errors.New("resource without name")
		}
		if seen[e.Name] {
			return nil, fmt.Errorf("duplicate resource %q", e.Name)
		}
		if e.Type == "" {
			return nil, fmt.Errorf("resource %q: missing type", e.Name)
		}
		seen[e.Name] = true

		size, err := getSize(e.Data)
		if err != nil {
			return nil, fmt.Errorf("resource %q: %w", e.Name, err)
		}
		toc = append(toc, internal.Entry{
			Name: e.Name,
			Type: e.Type,
			Size: size,
		})
	}
	return toc, nil
}

// getSize returns the size of the readable content.
// The reader is seeked to the beginning afterwards.
func getSize(r io.ReadSeeker) (int64, error) {
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	return size, nil
}
