package assets

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenData opens the asset root at path, either a directory or a .zip archive.
// An archive whose files all sit under one top-level directory is rooted there.
// Close the returned io.Closer once no more assets will be read.
func OpenData(path string) (fs.FS, io.Closer, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("assets: data: %w", err)
	}
	if info.IsDir() {
		return os.DirFS(path), nopCloser{}, nil
	}
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return nil, nil, fmt.Errorf("assets: data %s: not a directory or .zip archive", path)
	}
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, fmt.Errorf("assets: data: %w", err)
	}
	return packRoot(&zr.Reader), zr, nil
}

func packRoot(fsys fs.FS) fs.FS {
	if _, err := fs.Stat(fsys, SpherePath); err == nil {
		return fsys
	}
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil || len(entries) != 1 || !entries[0].IsDir() {
		return fsys
	}
	sub, err := fs.Sub(fsys, entries[0].Name())
	if err != nil {
		return fsys
	}
	return sub
}
