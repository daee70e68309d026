package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHelper writes an xclip stand-in that keeps one selection and its
// target in dir.
func fakeHelper(t *testing.T) (bin, dir string) {
	t.Helper()
	dir = t.TempDir()
	script := fmt.Sprintf(`#!/bin/sh
out=0
t=""
while [ $# -gt 0 ]; do
	case "$1" in
	-o) out=1 ;;
	-t) shift; t="$1" ;;
	esac
	shift
done
if [ "$out" = 1 ]; then
	[ -f %[1]q/sel ] || { echo "Error: target STRING not available" >&2; exit 1; }
	if [ -n "$t" ] && [ "$t" != "$(cat %[1]q/target)" ]; then exit 1; fi
	cat %[1]q/sel
	exit 0
fi
cat > %[1]q/sel
printf '%%s' "$t" > %[1]q/target
`, dir)
	bin = filepath.Join(t.TempDir(), "xclip")
	require.NoError(t, os.WriteFile(bin, []byte(script), 0o755))
	return bin, dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCopyThenPaths(t *testing.T) {
	isolateConfig(t)
	bin, _ := fakeHelper(t)
	files, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	a, b := filepath.Join(files, "a.txt"), filepath.Join(files, "b.txt")
	require.NoError(t, os.WriteFile(a, nil, 0o644))
	require.NoError(t, os.WriteFile(b, nil, 0o644))

	_, err = run(t, "copy", "--helper", bin, a, b)
	require.NoError(t, err)

	out, err := run(t, "paths", "--helper", bin)
	require.NoError(t, err)
	assert.Equal(t, a+"\n"+b+"\n", out)

	out, err = run(t, "paths", "--helper", bin, "--json")
	require.NoError(t, err)
	var got []string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{a, b}, got)

	out, err = run(t, "snapshot", "--helper", bin, "--json")
	require.NoError(t, err)
	var snap struct {
		Paths []string `json:"paths"`
		Text  *string  `json:"text"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, []string{a, b}, snap.Paths)
}

func TestCopyStrictFailureLeavesSelection(t *testing.T) {
	isolateConfig(t)
	bin, dir := fakeHelper(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sel"), []byte("keep me"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "target"), nil, 0o644))

	_, err := run(t, "copy", "--helper", bin, filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid paths")

	out, err := run(t, "paste", "--helper", bin)
	require.NoError(t, err)
	assert.Equal(t, "keep me", out)
}

func TestPasteEmptyPrintsNothing(t *testing.T) {
	isolateConfig(t)
	bin, _ := fakeHelper(t)
	out, err := run(t, "paste", "--helper", bin)
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = run(t, "raw", "--helper", bin)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRawInspect(t *testing.T) {
	isolateConfig(t)
	bin, dir := fakeHelper(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sel"), []byte("%PDF-1.4\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "target"), nil, 0o644))

	out, err := run(t, "raw", "--helper", bin)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4\n", out)

	out, err = run(t, "raw", "--helper", bin, "--inspect", "--json")
	require.NoError(t, err)
	var r map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, "application/pdf", r["mime_type"])
	assert.EqualValues(t, 9, r["size"])

	out, err = run(t, "raw", "--helper", bin, "--inspect")
	require.NoError(t, err)
	assert.Contains(t, out, "application/pdf")
	assert.Contains(t, out, "25 50 44 46")
}

func TestSnapshotTextOnly(t *testing.T) {
	isolateConfig(t)
	bin, dir := fakeHelper(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sel"), []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "target"), nil, 0o644))

	out, err := run(t, "snapshot", "--helper", bin)
	require.NoError(t, err)
	assert.Equal(t, "Paths (0):\nText:\nhello\n", out)
}

func TestSnapshotFailsWithoutDisplay(t *testing.T) {
	isolateConfig(t)
	bin := filepath.Join(t.TempDir(), "xclip")
	require.NoError(t, os.WriteFile(bin,
		[]byte("#!/bin/sh\necho \"Error: Can't open display: (null)\" >&2\nexit 1\n"), 0o755))

	_, err := run(t, "snapshot", "--helper", bin)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't open display")

	_, err = run(t, "paste", "--helper", bin)
	require.Error(t, err)
}
