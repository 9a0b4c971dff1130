// Package scan lists the media files of an input directory.
package scan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ankit-chaubey/mediamd/core"
)

// ErrNotDir is returned when the input path is missing or not a directory.
var ErrNotDir = errors.New("not a valid directory")

// List returns the image and video files directly inside dir, sorted by
// path. Subdirectories and unrecognised extensions are skipped. Only stat
// information is read, never file contents.
func List(dir string) ([]core.MediaFile, error) {
	fi, err := os.Stat(dir)
	if err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("%q: %w", dir, ErrNotDir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", dir, err)
	}

	files := make([]core.MediaFile, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		kind := core.Classify(e.Name())
		if kind == core.KindIgnored {
			continue
		}
		path := filepath.Join(dir, e.Name())
		// Follow symlinks so a link to a regular file counts as a file.
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, core.MediaFile{
			Path: path,
			Name: e.Name(),
			Size: info.Size(),
			Kind: kind,
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// FirstOfEach keeps at most one video and one image from files, in order.
func FirstOfEach(files []core.MediaFile) []core.MediaFile {
	var video, image *core.MediaFile
	for i := range files {
		switch files[i].Kind {
		case core.KindVideo:
			if video == nil {
				video = &files[i]
			}
		case core.KindImage:
			if image == nil {
				image = &files[i]
			}
		}
	}
	out := make([]core.MediaFile, 0, 2)
	for i := range files {
		if &files[i] == video || &files[i] == image {
			out = append(out, files[i])
		}
	}
	return out
}
