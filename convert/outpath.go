package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/prgtools/prgconv/prg"
)

// MaxNameSuffix is the number of numbered names (_0 to _99) tried when the output path is taken.
const MaxNameSuffix = 100

// ErrNameExhausted indicates that the output path and all its numbered variants already exist.
var ErrNameExhausted = errors.New("no free output file name")

// ReplaceExtension returns path with its extension replaced by ext, or ext appended if the
// file name has none. A leading dot of the file name does not start an extension.
func ReplaceExtension(path string, ext string) string {
	dir, name := filepath.Split(path)
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		name = name[:i]
	}

	return dir + name + "." + ext
}

// WithSuffix inserts "_n" before the extension of path.
//
// Only the part after the last dot counts as the extension, so "a.b.prg" becomes "a.b_0.prg"
// rather than "a_0.b.prg".
func WithSuffix(path string, n int) string {
	dir, name := filepath.Split(path)
	suffix := "_" + strconv.Itoa(n)
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		return dir + name[:i] + suffix + name[i:]
	}

	return dir + name + suffix
}

// ResolveOutputPath returns the output path for converting inPath into format.
//
// The candidate is inPath with the extension of format. If a file already exists there,
// "_0" to "_99" is inserted before the extension until a free name is found; if every
// name is taken ErrNameExhausted is returned.
func ResolveOutputPath(inPath string, format prg.Format) (string, error) {
	ext := format.Extension()
	if ext == "" {
		return "", fmt.Errorf("%w: %d", prg.ErrUnknownFormat, format)
	}

	candidate := ReplaceExtension(inPath, ext)
	taken, err := exists(candidate)
	if err != nil {
		return "", err
	}
	if !taken {
		return candidate, nil
	}

	for n := 0; n < MaxNameSuffix; n++ {
		suffixed := WithSuffix(candidate, n)
		taken, err := exists(suffixed)
		if err != nil {
			return "", err
		}
		if !taken {
			return suffixed, nil
		}
	}

	return "", fmt.Errorf("%w: %s and %s to %s exist", ErrNameExhausted,
		candidate, WithSuffix(candidate, 0), WithSuffix(candidate, MaxNameSuffix-1))
}

// exists reports whether anything occupies path. Directories and symlinks count as taken,
// the final rename could not replace them.
func exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
}
