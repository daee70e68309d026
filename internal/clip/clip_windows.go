//go:build windows

package clip

import (
	"errors"
	"log/slog"
	"runtime"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	cfUnicodeText = 13
	cfHDrop       = 15

	// GHND: movable, zero-initialised. Clipboard data must be movable memory.
	ghnd = 0x0002 | 0x0040

	dragQueryCount = 0xFFFFFFFF

	openAttempts   = 5
	openRetryDelay = 10 * time.Millisecond
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")
	shell32  = windows.NewLazySystemDLL("shell32.dll")

	procOpenClipboard              = user32.NewProc("OpenClipboard")
	procCloseClipboard             = user32.NewProc("CloseClipboard")
	procEmptyClipboard             = user32.NewProc("EmptyClipboard")
	procGetClipboardData           = user32.NewProc("GetClipboardData")
	procSetClipboardData           = user32.NewProc("SetClipboardData")
	procIsClipboardFormatAvailable = user32.NewProc("IsClipboardFormatAvailable")

	procGlobalAlloc  = kernel32.NewProc("GlobalAlloc")
	procGlobalFree   = kernel32.NewProc("GlobalFree")
	procGlobalLock   = kernel32.NewProc("GlobalLock")
	procGlobalUnlock = kernel32.NewProc("GlobalUnlock")
	procGlobalSize   = kernel32.NewProc("GlobalSize")

	procDragQueryFileW = shell32.NewProc("DragQueryFileW")
)

type windowsAdapter struct{}

// New returns the Windows clipboard adapter.
func New(_ Options) Adapter {
	return &windowsAdapter{}
}

func (a *windowsAdapter) Name() string { return "Windows Clipboard" }

// osErr turns the error from a LazyProc call into something worth reporting.
// A zero errno means the API failed without calling SetLastError.
func osErr(err error) error {
	var errno windows.Errno
	if errors.As(err, &errno) && errno == 0 {
		return errors.New("call failed without an error code")
	}
	return err
}

// session is an open clipboard. OpenClipboard binds ownership to the calling
// thread, so the goroutine stays locked to it until close.
type session struct{}

func openSession() (*session, error) {
	runtime.LockOSThread()
	// Another process holding the clipboard usually releases it quickly.
	err := retry(openAttempts, openRetryDelay, time.Sleep, func() error {
		if r, _, e := procOpenClipboard.Call(0); r == 0 {
			return e
		}
		return nil
	})
	if err != nil {
		runtime.UnlockOSThread()
		return nil, newError(KindResource, "OpenClipboard", osErr(err))
	}
	return &session{}, nil
}

func (s *session) close() {
	if r, _, err := procCloseClipboard.Call(); r == 0 {
		slog.Warn("CloseClipboard failed", "err", osErr(err))
	}
	runtime.UnlockOSThread()
}

func (s *session) available(format uintptr) bool {
	r, _, _ := procIsClipboardFormatAvailable.Call(format)
	return r != 0
}

func (s *session) data(format uintptr) (uintptr, error) {
	h, _, err := procGetClipboardData.Call(format)
	if h == 0 {
		return 0, newError(KindPlatform, "GetClipboardData", osErr(err))
	}
	return h, nil
}

// globalMem is a movable global memory block. It is freed by release unless
// ownership was passed to the clipboard with handOff.
type globalMem struct {
	h uintptr
}

func allocGlobal(size int) (*globalMem, error) {
	h, _, err := procGlobalAlloc.Call(ghnd, uintptr(size))
	if h == 0 {
		return nil, newError(KindResource, "GlobalAlloc", osErr(err))
	}
	return &globalMem{h: h}, nil
}

func (m *globalMem) write(data []byte) error {
	p, _, err := procGlobalLock.Call(m.h)
	if p == 0 {
		return newError(KindResource, "GlobalLock", osErr(err))
	}
	copy(unsafe.Slice((*byte)(unsafe.Pointer(p)), len(data)), data)
	// GlobalUnlock returns zero once the lock count drops to zero.
	procGlobalUnlock.Call(m.h)
	return nil
}

func (m *globalMem) handOff() uintptr {
	h := m.h
	m.h = 0
	return h
}

func (m *globalMem) release() {
	if m.h == 0 {
		return
	}
	if r, _, err := procGlobalFree.Call(m.h); r != 0 {
		slog.Warn("GlobalFree failed", "err", osErr(err))
	}
	m.h = 0
}

// readGlobal copies the whole of a clipboard-owned memory block.
func readGlobal(h uintptr) ([]byte, error) {
	p, _, err := procGlobalLock.Call(h)
	if p == 0 {
		return nil, newError(KindResource, "GlobalLock", osErr(err))
	}
	defer procGlobalUnlock.Call(h)

	size, _, _ := procGlobalSize.Call(h)
	if size == 0 {
		return nil, nil
	}
	out := make([]byte, size)
	copy(out, unsafe.Slice((*byte)(unsafe.Pointer(p)), size))
	return out, nil
}

// WritePaths puts entries on the clipboard as CF_HDROP.
func (a *windowsAdapter) WritePaths(entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	payload := encodeDropFiles(paths)

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	if r, _, err := procEmptyClipboard.Call(); r == 0 {
		return newError(KindPlatform, "EmptyClipboard", osErr(err))
	}

	mem, err := allocGlobal(len(payload))
	if err != nil {
		return err
	}
	defer mem.release()

	if err := mem.write(payload); err != nil {
		return err
	}
	if r, _, err := procSetClipboardData.Call(cfHDrop, mem.h); r == 0 {
		return newError(KindPlatform, "SetClipboardData", osErr(err))
	}
	// The system owns the block now.
	mem.handOff()
	return nil
}

// ReadText returns CF_UNICODETEXT up to its NUL terminator.
func (a *windowsAdapter) ReadText() (string, error) {
	s, err := openSession()
	if err != nil {
		return "", err
	}
	defer s.close()

	if !s.available(cfUnicodeText) {
		return "", notFound("ReadText", "no text available in clipboard")
	}
	h, err := s.data(cfUnicodeText)
	if err != nil {
		return "", err
	}
	raw, err := readGlobal(h)
	if err != nil {
		return "", err
	}
	text := decodeUTF16Z(raw)
	if text == "" {
		return "", notFound("ReadText", "clipboard text is empty")
	}
	return text, nil
}

// ReadRaw returns the CF_UNICODETEXT block verbatim, including its terminator
// and any slack GlobalSize reports. Other formats are not enumerated.
func (a *windowsAdapter) ReadRaw() ([]byte, error) {
	s, err := openSession()
	if err != nil {
		return nil, err
	}
	defer s.close()

	if !s.available(cfUnicodeText) {
		return nil, notFound("ReadRaw", "no data available in clipboard")
	}
	h, err := s.data(cfUnicodeText)
	if err != nil {
		return nil, err
	}
	data, err := readGlobal(h)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, notFound("ReadRaw", "no data available in clipboard")
	}
	return data, nil
}

// ReadPaths queries the CF_HDROP list: item count first, then each item's
// length, then the item itself.
func (a *windowsAdapter) ReadPaths() ([]string, error) {
	s, err := openSession()
	if err != nil {
		return nil, err
	}
	defer s.close()

	if !s.available(cfHDrop) {
		return []string{}, nil
	}
	hdrop, err := s.data(cfHDrop)
	if err != nil {
		return nil, err
	}

	count, _, _ := procDragQueryFileW.Call(hdrop, dragQueryCount, 0, 0)
	paths := make([]string, 0, count)
	for i := uintptr(0); i < count; i++ {
		n, _, _ := procDragQueryFileW.Call(hdrop, i, 0, 0)
		if n == 0 {
			continue
		}
		buf := make([]uint16, n+1)
		got, _, _ := procDragQueryFileW.Call(hdrop, i, uintptr(unsafe.Pointer(&buf[0])), n+1)
		if got == 0 {
			slog.Warn("DragQueryFileW returned no path", "index", i)
			continue
		}
		paths = append(paths, windows.UTF16ToString(buf[:got]))
	}
	return paths, nil
}
