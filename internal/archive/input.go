package archive

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aleister1102/harextractor/internal/common/errorwrapper"
	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// StdinPath selects standard input as the archive.
const StdinPath = "-"

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// IsStdin reports whether path names standard input.
func IsStdin(path string) bool {
	return path == "" || path == StdinPath
}

// OpenInput opens the archive at path, or stdin when IsStdin(path).
// gzip and zstd captures are recognized by their magic bytes, brotli ones by a
// .br extension, and are decompressed on the fly.
func OpenInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	var stack readerStack
	if IsStdin(path) {
		stack.Reader = stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, errorwrapper.WrapError(err, "could not open archive")
		}
		stack.push(f, f)
	}

	if strings.EqualFold(filepath.Ext(path), ".br") {
		stack.Reader = brotli.NewReader(stack.Reader)
		return &stack, nil
	}

	buffered := bufio.NewReader(stack.Reader)
	stack.Reader = buffered
	magic, _ := buffered.Peek(len(zstdMagic))

	switch {
	case bytes.HasPrefix(magic, gzipMagic):
		gr, err := gzip.NewReader(buffered)
		if err != nil {
			stack.Close()
			return nil, errorwrapper.WrapError(err, "could not open gzip archive")
		}
		stack.push(gr, gr)
	case bytes.HasPrefix(magic, zstdMagic):
		zr, err := zstd.NewReader(buffered)
		if err != nil {
			stack.Close()
			return nil, errorwrapper.WrapError(err, "could not open zstd archive")
		}
		rc := zr.IOReadCloser()
		stack.push(rc, rc)
	}

	return &stack, nil
}

// readerStack reads from its outermost layer and closes every layer,
// outermost first.
type readerStack struct {
	io.Reader
	closers []io.Closer
}

func (s *readerStack) push(r io.Reader, c io.Closer) {
	s.Reader = r
	s.closers = append(s.closers, c)
}

func (s *readerStack) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	s.closers = nil
	return first
}
