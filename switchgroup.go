package resourcelib

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"fortio.org/safecast"
)

// SwitchGroup is the body of DSWB and WSGB resources.
type SwitchGroup struct {
	Switches []string `json:"m_aSwitches"`
}

// SwitchGroupCodec converts switch groups.
//
// Binary layout (little endian):
//
//	uint32 count
//	count times: uint32 length, length bytes of UTF-8
type SwitchGroupCodec struct{}

func (SwitchGroupCodec) ToJSON(bin []byte) ([]byte, error) {
	group, err := decodeSwitchGroup(bin)
	if err != nil {
		return nil, err
	}
	return json.Marshal(group)
}

func (SwitchGroupCodec) FromJSON(doc []byte, strict bool) ([]byte, error) {
	var group SwitchGroup
	if err := decodeJSON(doc, &group, strict); err != nil {
		return nil, err
	}
	return encodeSwitchGroup(group)
}

func decodeSwitchGroup(bin []byte) (SwitchGroup, error) {
	count, rest, ok := readUint32(bin)
	if !ok {
		return SwitchGroup{}, newLibErr("switch group truncated (missing count)")
	}
	// every switch needs at least its length prefix
	if uint64(count)*4 > uint64(len(rest)) {
		return SwitchGroup{}, newLibErr("switch group truncated (%d switches declared)", count)
	}

	group := SwitchGroup{Switches: make([]string, 0, count)}
	for i := uint32(0); i < count; i++ {
		var n uint32
		n, rest, ok = readUint32(rest)
		if !ok {
			return SwitchGroup{}, newLibErr("switch %d truncated (missing length)", i)
		}
		if uint64(n) > uint64(len(rest)) {
			return SwitchGroup{}, newLibErr("switch %d truncated (%d bytes declared, %d left)", i, n, len(rest))
		}
		group.Switches = append(group.Switches, string(rest[:n]))
		rest = rest[n:]
	}
	if len(rest) != 0 {
		return SwitchGroup{}, newLibErr("%d trailing bytes after switch group", len(rest))
	}
	return group, nil
}

func encodeSwitchGroup(group SwitchGroup) ([]byte, error) {
	count, err := safecast.Conv[uint32](len(group.Switches))
	if err != nil {
		return nil, fmt.Errorf("switch count: %w", err)
	}
	size := 4
	for _, s := range group.Switches {
		size += 4 + len(s)
	}

	bin := make([]byte, 0, size)
	bin = binary.LittleEndian.AppendUint32(bin, count)
	for i, s := range group.Switches {
		n, err := safecast.Conv[uint32](len(s))
		if err != nil {
			return nil, fmt.Errorf("switch %d: %w", i, err)
		}
		bin = binary.LittleEndian.AppendUint32(bin, n)
		bin = append(bin, s...)
	}
	return bin, nil
}

func readUint32(b []byte) (uint32, []byte, bool) {
	if len(b) < 4 {
		return 0, b, false
	}
	return binary.LittleEndian.Uint32(b), b[4:], true
}
