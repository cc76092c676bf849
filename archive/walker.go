// Package archive reads parts of zip based packages (docx is one) on top of
// "archive/zip".
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// ErrStop may be returned by WalkFunc to end the walk early without error.
var ErrStop = errors.New("stop walking archive")

// WalkFunc is called for every regular file in the archive whose name starts
// with requested prefix.
type WalkFunc func(archive string, file *zip.File) error

// Walk visits files in the archive whose name starts with prefix. Archives
// with absolute or escaping ("..") entry names are rejected as a whole.
func Walk(archive, prefix string, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}
		if err := walkFn(archive, f); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
	return nil
}

// ReadParts returns content of named package parts. Part names are matched
// case insensitively since package part names are. Absent required part is
// an error, absent optional parts are simply not in the result.
func ReadParts(archive string, required []string, optional ...string) (map[string][]byte, error) {
	wanted := make(map[string]string, len(required)+len(optional))
	for _, n := range append(append([]string(nil), required...), optional...) {
		wanted[strings.ToLower(n)] = n
	}

	parts := make(map[string][]byte, len(wanted))
	err := Walk(archive, "", func(_ string, f *zip.File) error {
		name, ok := wanted[strings.ToLower(f.FileHeader.Name)]
		if !ok {
			return nil
		}
		data, err := readFile(f)
		if err != nil {
			return fmt.Errorf("unable to read %s: %w", f.FileHeader.Name, err)
		}
		parts[name] = data
		if len(parts) == len(wanted) {
			return ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, n := range required {
		if _, ok := parts[n]; !ok {
			return nil, fmt.Errorf("required part %s not found in %s", n, archive)
		}
	}
	return parts, nil
}

func readFile(f *zip.File) ([]byte, error) {
	r, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(strings.ReplaceAll(name, `\`, "/"), "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
