package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maja42/resourcelib"
	"github.com/maja42/resourcelib/pack"
)

func switchGroup(switches ...string) []byte {
	bin := binary.LittleEndian.AppendUint32(nil, uint32(len(switches)))
	for _, s := range switches {
		bin = binary.LittleEndian.AppendUint32(bin, uint32(len(s)))
		bin = append(bin, s...)
	}
	return bin
}

func convertJSON(lib *resourcelib.Library) func(job, []byte) ([]byte, error) {
	return func(j job, data []byte) ([]byte, error) {
		doc, err := resourcelib.ConvertString(lib, j.resourceType, data)
		return []byte(doc), err
	}
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("in", "a.json"), outputPath(filepath.Join("in", "a.dswb"), "", ".json"))
	assert.Equal(t, filepath.Join("out", "a.json"), outputPath(filepath.Join("in", "a.dswb"), "out", ".json"))
	assert.Equal(t, "noext.temp", outputPath("noext", "", ".temp"))
}

func TestRunJobs_files(t *testing.T) {
	lib := resourcelib.New(resourcelib.HM3, resourcelib.WithLogger(resourcelib.DiscardLogger()))
	dir := t.TempDir()

	var paths []string
	for i, name := range []string{"a", "b", "c"} {
		path := filepath.Join(dir, name+".dswb")
		require.NoError(t, os.WriteFile(path, switchGroup(strings.Repeat(name, i+1)), 0o644))
		paths = append(paths, path)
	}

	jobs := fileJobs(paths, "DSWB", "", ".json")
	n, err := runJobs(context.Background(), jobs, 2, convertJSON(lib))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	doc, err := os.ReadFile(filepath.Join(dir, "c.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"m_aSwitches":["ccc"]}`, string(doc))
	assert.Zero(t, lib.Outstanding())

	// and back again
	gen := lib.GeneratorFor("DSWB")
	jsonPaths := []string{filepath.Join(dir, "c.json")}
	outDir := filepath.Join(dir, "gen")
	require.NoError(t, os.Mkdir(outDir, 0o755))
	n, err = runJobs(context.Background(), fileJobs(jsonPaths, "DSWB", outDir, ".dswb"), 1, func(_ job, doc []byte) ([]byte, error) {
		return resourcelib.GenerateBytes(gen, doc, false)
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	bin, err := os.ReadFile(filepath.Join(outDir, "c.dswb"))
	require.NoError(t, err)
	assert.Equal(t, switchGroup("ccc"), bin)
}

func TestRunJobs_failure(t *testing.T) {
	lib := resourcelib.New(resourcelib.HM3, resourcelib.WithLogger(resourcelib.DiscardLogger()))
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.dswb")
	require.NoError(t, os.WriteFile(broken, []byte{1}, 0o644))

	jobs := fileJobs([]string{broken, filepath.Join(dir, "missing.dswb")}, "DSWB", "", ".json")
	n, err := runJobs(context.Background(), jobs, 1, convertJSON(lib))
	assert.Error(t, err)
	assert.Zero(t, n)
	assert.NoFileExists(t, filepath.Join(dir, "broken.json"))
}

func TestRunJobs_unsupportedType(t *testing.T) {
	lib := resourcelib.New(resourcelib.HM2, resourcelib.WithLogger(resourcelib.DiscardLogger()))
	path := filepath.Join(t.TempDir(), "x.uicb")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := runJobs(context.Background(), fileJobs([]string{path}, "UICB", "", ".json"), 1, convertJSON(lib))
	assert.True(t, errors.Is(err, resourcelib.ErrUnsupportedType))
}

func writeTestPack(t *testing.T, entries ...pack.Entry) string {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, pack.Write(buf, entries, nil))
	path := filepath.Join(t.TempDir(), "test.rpack")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestPackConvertJobs(t *testing.T) {
	lib := resourcelib.New(resourcelib.HM3, resourcelib.WithLogger(resourcelib.DiscardLogger()))
	path := writeTestPack(t,
		pack.Entry{Name: "music", Type: "DSWB", Data: bytes.NewReader(switchGroup("Calm", "Alert"))},
		pack.Entry{Name: "ambience", Type: "WSGB", Data: bytes.NewReader(switchGroup())},
	)
	p, err := pack.Open(path)
	require.NoError(t, err)
	defer p.Close()

	outDir := t.TempDir()
	jobs, err := packConvertJobs(p, nil, "", outDir)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "DSWB", jobs[0].resourceType)
	assert.Equal(t, "WSGB", jobs[1].resourceType)

	n, err := runJobs(context.Background(), jobs, 4, convertJSON(lib))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	doc, err := os.ReadFile(filepath.Join(outDir, "music.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"m_aSwitches":["Calm","Alert"]}`, string(doc))

	_, err = packConvertJobs(p, []string{"nope"}, "", outDir)
	assert.EqualError(t, err, `pack has no resource "nope"`)

	jobs, err = packConvertJobs(p, []string{"ambience"}, "DSWB", outDir)
	require.NoError(t, err)
	assert.Equal(t, "DSWB", jobs[0].resourceType)
}

func TestPackConvertJobs_outputCollision(t *testing.T) {
	path := writeTestPack(t,
		pack.Entry{Name: "a/music", Type: "DSWB", Data: bytes.NewReader(switchGroup("A"))},
		pack.Entry{Name: "b/music", Type: "DSWB", Data: bytes.NewReader(switchGroup("B"))},
		pack.Entry{Name: "b/other", Type: "DSWB", Data: bytes.NewReader(switchGroup("C"))},
	)
	p, err := pack.Open(path)
	require.NoError(t, err)
	defer p.Close()

	outDir := t.TempDir()
	_, err = packConvertJobs(p, nil, "", outDir)
	assert.EqualError(t, err, fmt.Sprintf(`resources "a/music" and "b/music" would both be written to %s`, filepath.Join(outDir, "music.json")))

	_, err = packConvertJobs(p, []string{"b/other", "b/other"}, "", outDir)
	assert.Error(t, err)

	jobs, err := packConvertJobs(p, []string{"a/music", "b/other"}, "", outDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "music.json"), jobs[0].out)
	assert.Equal(t, filepath.Join(outDir, "other.json"), jobs[1].out)
}

func TestParseFileEntry(t *testing.T) {
	fe, err := parseFileEntry("music=DSWB:data/music.dswb")
	require.NoError(t, err)
	assert.Equal(t, pack.FileEntry{Name: "music", Type: "DSWB", Path: "data/music.dswb"}, fe)

	fe, err = parseFileEntry(`win=TEMP:C:\data\x.temp`)
	require.NoError(t, err)
	assert.Equal(t, `C:\data\x.temp`, fe.Path)

	for _, bad := range []string{"music", "=DSWB:x", "music=DSWB", "music=:x", "music=DSWB:"} {
		_, err := parseFileEntry(bad)
		assert.Error(t, err, bad)
	}
}

func TestListPack(t *testing.T) {
	color.NoColor = true
	lib := resourcelib.New(resourcelib.HM2, resourcelib.WithLogger(resourcelib.DiscardLogger()))
	path := writeTestPack(t,
		pack.Entry{Name: "music", Type: "DSWB", Data: bytes.NewReader(switchGroup("A"))},
		pack.Entry{Name: "menu", Type: "UICB", Data: bytes.NewReader([]byte{0x80})},
	)
	p, err := pack.Open(path)
	require.NoError(t, err)
	defer p.Close()

	out := new(bytes.Buffer)
	listPack(out, p, lib)
	assert.Contains(t, out.String(), "2 resources")
	assert.Regexp(t, `music\s+DSWB 9 bytes`, out.String())
	assert.Regexp(t, `menu\s+UICB 1 bytes`, out.String())
}

func TestLookupProperties(t *testing.T) {
	color.NoColor = true
	lib := resourcelib.New(resourcelib.HM3, resourcelib.WithLogger(resourcelib.DiscardLogger()))
	id := resourcelib.PropertyID("m_bVisible")

	out := new(bytes.Buffer)
	require.NoError(t, lookupProperties(out, lib, []string{"0x1", "0"}))
	assert.Equal(t, "1\t<unknown>\n0\t<unknown>\n", out.String())

	out.Reset()
	require.NoError(t, lookupProperties(out, lib, []string{formatUint(id)}))
	assert.Equal(t, formatUint(id)+"\tm_bVisible\n", out.String())

	assert.Error(t, lookupProperties(out, lib, []string{"banana"}))
	assert.Error(t, lookupProperties(out, lib, []string{"0x1FFFFFFFF"}))
}

func formatUint(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}
