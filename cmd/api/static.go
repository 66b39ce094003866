package main

import (
	"io/fs"
	"net/http"
)

// fileOnlyFS serves regular files only. Opening a directory reports fs.ErrNotExist, so the file server
// answers 404 instead of listing the uploaded posters.
type fileOnlyFS struct {
	fs http.FileSystem
}

func (f fileOnlyFS) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, fs.ErrNotExist
	}

	return file, nil
}
