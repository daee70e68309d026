//go:build darwin

package clip

// #cgo CFLAGS: -x objective-c
// #cgo LDFLAGS: -framework Cocoa
// #import <Cocoa/Cocoa.h>
// #include <stdint.h>
// #include <stdlib.h>
// #include <string.h>
//
// static void *panclip_pool_push(void) {
//     return [[NSAutoreleasePool alloc] init];
// }
//
// static void panclip_pool_drain(void *pool) {
//     [(NSAutoreleasePool *)pool drain];
// }
//
// static int panclip_available(void) {
//     return [NSPasteboard generalPasteboard] != nil;
// }
//
// static void panclip_clear(void) {
//     [[NSPasteboard generalPasteboard] clearContents];
// }
//
// static int panclip_declare_file_types(void) {
//     NSArray *types = @[ @"public.file-url", @"NSFilenamesPboardType" ];
//     return [[NSPasteboard generalPasteboard] declareTypes:types owner:nil] > 0;
// }
//
// // Returns 1 on success, 0 if writeObjects: failed, -1 if a path is not UTF-8.
// // *legacy is set to whether the NSFilenamesPboardType list was stored.
// static int panclip_write_files(char **paths, int n, int *legacy) {
//     NSMutableArray *names = [NSMutableArray arrayWithCapacity:n];
//     NSMutableArray *urls = [NSMutableArray arrayWithCapacity:n];
//     for (int i = 0; i < n; i++) {
//         NSString *s = [NSString stringWithUTF8String:paths[i]];
//         if (s == nil) {
//             return -1;
//         }
//         [names addObject:s];
//         [urls addObject:[NSURL fileURLWithPath:s]];
//     }
//     NSPasteboard *pb = [NSPasteboard generalPasteboard];
//     *legacy = [pb setPropertyList:names forType:@"NSFilenamesPboardType"] ? 1 : 0;
//     return [pb writeObjects:urls] ? 1 : 0;
// }
//
// static char *panclip_string_for_type(const char *type) {
//     NSString *t = [NSString stringWithUTF8String:type];
//     NSString *s = [[NSPasteboard generalPasteboard] stringForType:t];
//     if (s == nil) {
//         return NULL;
//     }
//     const char *u = [s UTF8String];
//     return u ? strdup(u) : NULL;
// }
//
// // *len is set to the payload size even when it is too large to copy, and to
// // -1 when the copy could not be allocated.
// static void *panclip_data_for_type(const char *type, long *len) {
//     *len = 0;
//     NSString *t = [NSString stringWithUTF8String:type];
//     NSData *d = [[NSPasteboard generalPasteboard] dataForType:t];
//     if (d == nil || [d length] == 0) {
//         return NULL;
//     }
//     *len = (long)[d length];
//     if ([d length] > INT32_MAX) {
//         return NULL;
//     }
//     void *buf = malloc([d length]);
//     if (buf == NULL) {
//         *len = -1;
//         return NULL;
//     }
//     memcpy(buf, [d bytes], [d length]);
//     return buf;
// }
//
// static long panclip_type_count(void) {
//     return (long)[[[NSPasteboard generalPasteboard] types] count];
// }
//
// static char *panclip_type_at(long i) {
//     NSArray *types = [[NSPasteboard generalPasteboard] types];
//     if (i < 0 || i >= (long)[types count]) {
//         return NULL;
//     }
//     const char *u = [[types objectAtIndex:i] UTF8String];
//     return u ? strdup(u) : NULL;
// }
//
// // Stores a malloc'd array of malloc'd paths in *out and returns its length,
// // or -1 if the array could not be allocated.
// static long panclip_file_paths(char ***out) {
//     *out = NULL;
//     NSArray *objs = [[NSPasteboard generalPasteboard]
//         readObjectsForClasses:@[ [NSURL class] ] options:nil];
//     if (objs == nil || [objs count] == 0) {
//         return 0;
//     }
//     char **paths = malloc(sizeof(char *) * [objs count]);
//     if (paths == NULL) {
//         return -1;
//     }
//     long n = 0;
//     for (id obj in objs) {
//         if (![obj isKindOfClass:[NSURL class]] || ![obj isFileURL]) {
//             continue;
//         }
//         NSURL *url = [obj isFileReferenceURL] ? [obj filePathURL] : obj;
//         const char *u = [[url path] UTF8String];
//         if (u == NULL) {
//             continue;
//         }
//         paths[n++] = strdup(u);
//     }
//     *out = paths;
//     return n;
// }
import "C"

import (
	"errors"
	"log/slog"
	"runtime"
	"unsafe"
)

var (
	// Tried in order before the advertised types; first non-empty wins.
	darwinTextTypes = []string{
		"public.utf8-plain-text",
		"public.text",
		"NSStringPboardType",
		"com.apple.traditional-mac-plain-text",
	}
	darwinRawTypes = []string{
		"public.utf8-plain-text",
		"public.text",
		"NSStringPboardType",
		"public.data",
	}
)

type darwinAdapter struct{}

// New returns the macOS pasteboard adapter.
func New(_ Options) Adapter {
	return &darwinAdapter{}
}

func (a *darwinAdapter) Name() string { return "macOS NSPasteboard" }

// autoreleasePool scopes the Objective-C objects created by one operation.
// Pools are per thread, so the goroutine is pinned until drain.
type autoreleasePool struct {
	p unsafe.Pointer
}

func newPool() autoreleasePool {
	runtime.LockOSThread()
	return autoreleasePool{p: C.panclip_pool_push()}
}

func (p autoreleasePool) drain() {
	C.panclip_pool_drain(p.p)
	runtime.UnlockOSThread()
}

func pasteboard(op string) error {
	if C.panclip_available() == 0 {
		return newError(KindResource, op, errors.New("failed to get general pasteboard"))
	}
	return nil
}

// cStrings copies ss into a C array of C strings. free releases all of it.
func cStrings(ss []string) (arr **C.char, free func()) {
	arr = (**C.char)(C.malloc(C.size_t(len(ss)) * C.size_t(unsafe.Sizeof(uintptr(0)))))
	elems := unsafe.Slice(arr, len(ss))
	for i, s := range ss {
		elems[i] = C.CString(s)
	}
	return arr, func() {
		for _, e := range elems {
			C.free(unsafe.Pointer(e))
		}
		C.free(unsafe.Pointer(arr))
	}
}

func stringForType(t string) (string, bool) {
	ct := C.CString(t)
	defer C.free(unsafe.Pointer(ct))
	cs := C.panclip_string_for_type(ct)
	if cs == nil {
		return "", false
	}
	defer C.free(unsafe.Pointer(cs))
	return C.GoString(cs), true
}

// dataForType returns nil, nil when t holds nothing.
func dataForType(t string) ([]byte, error) {
	ct := C.CString(t)
	defer C.free(unsafe.Pointer(ct))
	var n C.long
	p := C.panclip_data_for_type(ct, &n)
	if p == nil {
		if n < 0 {
			return nil, newError(KindResource, "dataForType", errors.New("out of memory"))
		}
		if err := checkPayloadSize("dataForType", int64(n)); err != nil {
			return nil, err
		}
		return nil, nil
	}
	defer C.free(p)
	return C.GoBytes(p, C.int(n)), nil
}

// advertisedTypes lists the types the pasteboard currently offers. Another
// process may change them mid-listing; vanished entries are skipped.
func advertisedTypes() []string {
	n := int(C.panclip_type_count())
	types := make([]string, 0, n)
	for i := 0; i < n; i++ {
		cs := C.panclip_type_at(C.long(i))
		if cs == nil {
			continue
		}
		types = append(types, C.GoString(cs))
		C.free(unsafe.Pointer(cs))
	}
	return types
}

// WritePaths clears the pasteboard, declares the file URL and legacy
// filenames types, then writes the URL objects.
func (a *darwinAdapter) WritePaths(entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	pool := newPool()
	defer pool.drain()

	if err := pasteboard("WritePaths"); err != nil {
		return err
	}
	C.panclip_clear()

	if C.panclip_declare_file_types() == 0 {
		return newError(KindPlatform, "declareTypes", errors.New("failed to declare pasteboard types"))
	}

	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	arr, free := cStrings(paths)
	defer free()

	var legacy C.int
	switch C.panclip_write_files(arr, C.int(len(paths)), &legacy) {
	case -1:
		return newError(KindInvalidInput, "writeObjects", errors.New("path is not valid UTF-8"))
	case 0:
		return newError(KindPlatform, "writeObjects", errors.New("failed to write file URLs to pasteboard"))
	}
	if legacy == 0 {
		slog.Debug("legacy filenames type not stored")
	}
	return nil
}

// ReadText walks the preferred text types, then everything advertised.
func (a *darwinAdapter) ReadText() (string, error) {
	pool := newPool()
	defer pool.drain()

	if err := pasteboard("ReadText"); err != nil {
		return "", err
	}
	for _, t := range darwinTextTypes {
		if s, ok := stringForType(t); ok && s != "" {
			return s, nil
		}
	}
	for _, t := range advertisedTypes() {
		if s, ok := stringForType(t); ok && s != "" {
			slog.Debug("text read from advertised type", "type", t)
			return s, nil
		}
	}
	return "", notFound("ReadText", "no text content found on clipboard")
}

// ReadRaw walks the preferred raw types, then everything advertised.
func (a *darwinAdapter) ReadRaw() ([]byte, error) {
	pool := newPool()
	defer pool.drain()

	if err := pasteboard("ReadRaw"); err != nil {
		return nil, err
	}
	advertised := advertisedTypes()
	if len(advertised) == 0 {
		return nil, notFound("ReadRaw", "clipboard has no available types")
	}
	for _, t := range darwinRawTypes {
		b, err := dataForType(t)
		if err != nil {
			return nil, err
		}
		if len(b) > 0 {
			return b, nil
		}
	}
	for _, t := range advertised {
		b, err := dataForType(t)
		if err != nil {
			return nil, err
		}
		if len(b) > 0 {
			slog.Debug("raw data read from advertised type", "type", t)
			return b, nil
		}
	}
	return nil, notFound("ReadRaw", "no data found in clipboard for any available type")
}

// ReadPaths reads NSURL objects and keeps the file URLs. The legacy filenames
// type written alongside can surface the same files twice, so repeats are
// dropped.
func (a *darwinAdapter) ReadPaths() ([]string, error) {
	pool := newPool()
	defer pool.drain()

	if err := pasteboard("ReadPaths"); err != nil {
		return nil, err
	}
	var out **C.char
	n := int(C.panclip_file_paths(&out))
	if n < 0 {
		return nil, newError(KindResource, "readObjectsForClasses", errors.New("out of memory"))
	}
	if out == nil {
		return []string{}, nil
	}
	defer C.free(unsafe.Pointer(out))

	elems := unsafe.Slice(out, n)
	paths := make([]string, 0, n)
	for _, cs := range elems {
		paths = append(paths, C.GoString(cs))
		C.free(unsafe.Pointer(cs))
	}
	return dedupe(paths), nil
}
