// Package assets enumerates the on-disk asset storage the inspector browses:
// one directory per asset, each holding model files named after the
// directory plus an optional thumbnail.
package assets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileInfo describes a single file or directory.
type FileInfo struct {
	Path        string `json:"path"`
	Name        string `json:"name"`
	Extension   string `json:"extension"` // without the dot, empty if none
	SizeBytes   int64  `json:"sizeBytes"`
	Modified    int64  `json:"modified"` // unix seconds, 0 when unknown
	IsDirectory bool   `json:"isDirectory"`
}

// StorageAsset describes one asset directory in storage.
type StorageAsset struct {
	ID            string `json:"id"`
	Path          string `json:"path"`
	HasGLB        bool   `json:"hasGlb"`
	HasOBJ        bool   `json:"hasObj"`
	HasFBX        bool   `json:"hasFbx"`
	HasThumbnail  bool   `json:"hasThumbnail"`
	GLBSizeBytes  int64  `json:"glbSizeBytes"` // 0 when no GLB present
	ThumbnailPath string `json:"thumbnailPath"`
}

// Stat returns information about a single file or directory.
func Stat(path string) (*FileInfo, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("assets: stat %s: %w", path, err)
	}

	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	return &FileInfo{
		Path:        path,
		Name:        filepath.Base(path),
		Extension:   ext,
		SizeBytes:   fi.Size(),
		Modified:    fi.ModTime().Unix(),
		IsDirectory: fi.IsDir(),
	}, nil
}

// ScanStorage lists the asset directories directly under root. Each child
// directory becomes one StorageAsset; plain files at the top level are
// ignored.
func ScanStorage(root string) ([]StorageAsset, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("assets: read storage %s: %w", root, err)
	}

	var found []StorageAsset
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		id := entry.Name()
		dir := filepath.Join(root, id)

		glbPath := filepath.Join(dir, id+".glb")
		thumbPath := filepath.Join(dir, "thumbnail.png")

		asset := StorageAsset{
			ID:           id,
			Path:         dir,
			HasGLB:       fileExists(glbPath),
			HasOBJ:       fileExists(filepath.Join(dir, id+".obj")),
			HasFBX:       fileExists(filepath.Join(dir, id+".fbx")),
			HasThumbnail: fileExists(thumbPath),
		}
		if asset.HasGLB {
			if fi, err := os.Stat(glbPath); err == nil {
				asset.GLBSizeBytes = fi.Size()
			}
		}
		if asset.HasThumbnail {
			asset.ThumbnailPath = thumbPath
		}
		found = append(found, asset)
	}
	return found, nil
}

// ListDirectory returns FileInfo records for the immediate children of a
// directory, for the frontend's file browser.
func ListDirectory(path string) ([]FileInfo, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("assets: read directory %s: %w", path, err)
	}

	files := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		child := filepath.Join(path, entry.Name())
		info, err := Stat(child)
		if err != nil {
			// The entry may have vanished between the listing and the
			// stat; skip it rather than failing the whole listing.
			continue
		}
		files = append(files, *info)
	}
	return files, nil
}

// ReadChunk reads up to length bytes from the file starting at offset.
// Reads past the end of the file return the available prefix; an offset at
// or beyond the end returns an empty slice.
func ReadChunk(path string, offset, length int64) ([]byte, error) {
	if offset < 0 || length < 0 {
		return nil, fmt.Errorf("assets: negative offset or length")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("assets: open %s: %w", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("assets: stat %s: %w", path, err)
	}
	if offset >= fi.Size() {
		return []byte{}, nil
	}
	if remaining := fi.Size() - offset; length > remaining {
		length = remaining
	}

	buf := make([]byte, length)
	n, err := f.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("assets: read %s: %w", path, err)
	}
	return buf[:n], nil
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}
