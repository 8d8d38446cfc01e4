//go:build !unix

package source

import "os"

// Platforms without a usable mmap read the file into memory instead. Remap
// still works; it just costs a full re-read.

func mapFile(f *os.File, size int) ([]byte, error) {
	data := make([]byte, size)
	if _, err := f.ReadAt(data, 0); err != nil {
		return nil, err
	}
	return data, nil
}

func unmapFile([]byte) error {
	return nil
}
