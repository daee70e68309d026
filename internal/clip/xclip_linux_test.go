package clip

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeXclip installs a shell script that mimics xclip's clipboard selection:
// input is stored with the requested target, -o prints it back, and a missing
// selection or target fails with xclip's message.
func fakeXclip(t *testing.T) (bin, state string) {
	t.Helper()
	state = t.TempDir()
	script := fmt.Sprintf(`#!/bin/sh
store=%[1]q/selection
target=%[1]q/target
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
	if [ ! -f "$store" ]; then
		echo "Error: target STRING not available" >&2
		exit 1
	fi
	if [ -n "$t" ] && [ "$t" != "$(cat "$target")" ]; then
		echo "Error: target $t not available" >&2
		exit 1
	fi
	cat "$store"
	exit 0
fi
cat > "$store"
printf '%%s' "$t" > "$target"
`, state)
	bin = filepath.Join(t.TempDir(), "xclip")
	require.NoError(t, os.WriteFile(bin, []byte(script), 0o755))
	return bin, state
}

func setSelection(t *testing.T, state, target, data string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(state, "selection"), []byte(data), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(state, "target"), []byte(target), 0o644))
}

func TestNewUsesHelper(t *testing.T) {
	bin, _ := fakeXclip(t)
	a := New(Options{Helper: bin})
	require.IsType(t, &xclipAdapter{}, a)
	assert.Equal(t, "X11 selection (xclip)", a.Name())
}

func TestXclipRoundTrip(t *testing.T) {
	bin, state := fakeXclip(t)
	a := &xclipAdapter{bin: bin}
	dir := tempTree(t, "b.txt", "with space.txt")
	b, spaced := filepath.Join(dir, "b.txt"), filepath.Join(dir, "with space.txt")

	require.NoError(t, WritePaths(a, []string{spaced, b}, PolicyStrict))

	stored, err := os.ReadFile(filepath.Join(state, "selection"))
	require.NoError(t, err)
	assert.Equal(t, fileURI(spaced)+"\n"+fileURI(b), string(stored))

	got, err := a.ReadPaths()
	require.NoError(t, err)
	assert.Equal(t, []string{spaced, b}, got)

	// Writing the same list again reads back the same list.
	require.NoError(t, WritePaths(a, []string{spaced, b}, PolicyStrict))
	again, err := a.ReadPaths()
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestXclipTextOnly(t *testing.T) {
	bin, state := fakeXclip(t)
	a := &xclipAdapter{bin: bin}
	setSelection(t, state, "", "hello")

	paths, err := a.ReadPaths()
	require.NoError(t, err)
	assert.Empty(t, paths)
	assert.NotNil(t, paths)

	text, err := a.ReadText()
	require.NoError(t, err)
	assert.Equal(t, "hello", text)

	raw, err := a.ReadRaw()
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), raw)
}

func TestXclipEmptySelection(t *testing.T) {
	bin, state := fakeXclip(t)
	a := &xclipAdapter{bin: bin}

	_, err := a.ReadText()
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "target STRING not available")

	_, err = a.ReadRaw()
	assert.True(t, IsNotFound(err))

	paths, err := a.ReadPaths()
	require.NoError(t, err)
	assert.Empty(t, paths)

	setSelection(t, state, "", "")
	_, err = a.ReadText()
	assert.True(t, IsNotFound(err))
}

func TestXclipMissingBinary(t *testing.T) {
	a := &xclipAdapter{bin: filepath.Join(t.TempDir(), "no-such-xclip")}

	_, err := a.ReadText()
	assert.Equal(t, KindPlatform, KindOf(err))
	_, err = a.ReadPaths()
	assert.Equal(t, KindPlatform, KindOf(err))
	err = a.WritePaths([]Entry{{Path: "/x", URI: "file:///x"}})
	assert.Equal(t, KindPlatform, KindOf(err))
}

func helperScript(t *testing.T, body string) string {
	t.Helper()
	bin := filepath.Join(t.TempDir(), "xclip")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return bin
}

func TestXclipNoDisplayIsNotAbsence(t *testing.T) {
	a := &xclipAdapter{bin: helperScript(t, `echo "Error: Can't open display: (null)" >&2; exit 1`)}

	paths, err := a.ReadPaths()
	require.Error(t, err)
	assert.Nil(t, paths)
	assert.Equal(t, KindResource, KindOf(err))
	assert.Contains(t, err.Error(), "Can't open display")

	_, err = a.ReadText()
	assert.False(t, IsNotFound(err))
	assert.Equal(t, KindResource, KindOf(err))

	_, err = a.ReadRaw()
	assert.Equal(t, KindResource, KindOf(err))
}

func TestXclipUnknownFailureIsPlatform(t *testing.T) {
	a := &xclipAdapter{bin: helperScript(t, `echo "xclip: segfault in selection handler" >&2; exit 2`)}

	_, err := a.ReadText()
	assert.Equal(t, KindPlatform, KindOf(err))
	assert.Contains(t, err.Error(), "segfault in selection handler")

	_, err = a.ReadPaths()
	assert.Equal(t, KindPlatform, KindOf(err))
}

func TestXclipSilentExitIsAbsence(t *testing.T) {
	a := &xclipAdapter{bin: helperScript(t, `exit 1`)}

	_, err := a.ReadText()
	assert.True(t, IsNotFound(err))

	paths, err := a.ReadPaths()
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestLibraryAdapterOwnsSelection(t *testing.T) {
	var a Adapter = &libraryAdapter{}
	o, ok := a.(SelectionOwner)
	require.True(t, ok, "in-process writes must be held by the caller")
	assert.Nil(t, o.Lost())

	_, ok = Adapter(&xclipAdapter{}).(SelectionOwner)
	assert.False(t, ok, "xclip keeps serving after we exit")
}
