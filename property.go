package resourcelib

import (
	"bufio"
	"fmt"
	"hash/crc32"
	"io"
	"strings"
	"sync"
)

// defaultPropertyNames are always resolvable.
var defaultPropertyNames = []string{
	"m_mTransform",
	"m_eidParent",
	"m_bVisible",
	"m_bEnabled",
	"m_sName",
	"m_aSwitches",
	"m_rResource",
	"m_fRadius",
}

// PropertyID returns the CRC32 id of a property name.
func PropertyID(name string) uint32 {
	return crc32.ChecksumIEEE([]byte(name))
}

type propertyTable struct {
	mu    sync.RWMutex
	names map[uint32]string
}

func newPropertyTable() *propertyTable {
	t := &propertyTable{names: make(map[uint32]string)}
	t.add(defaultPropertyNames...)
	return t
}

func (t *propertyTable) add(names ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, name := range names {
		if name == "" {
			continue
		}
		t.names[PropertyID(name)] = name
	}
}

func (t *propertyTable) lookup(id uint32) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	name, ok := t.names[id]
	return name, ok
}

// readPropertyNames reads one property name per line.
// Blank lines and lines starting with '#' are skipped.
func readPropertyNames(r io.Reader) ([]string, error) {
	var names []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read property names: %w", err)
	}
	return names, nil
}
