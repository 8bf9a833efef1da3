package photos

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var skipDirs = map[string]bool{
	".git":      true,
	"thumbs":    true,
	"originals": true,
}

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// ScanDir walks dir and returns the image files beneath it, sorted by path.
// Hidden files and the thumbs/originals folders of photo exports are skipped.
func ScanDir(dir string) ([]string, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	var refs []string
	err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != absPath && (skipDirs[d.Name()] || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if imageExts[strings.ToLower(filepath.Ext(d.Name()))] {
			refs = append(refs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(refs) == 0 {
		return nil, errors.New("no image files in " + dir)
	}
	sort.Strings(refs)
	return refs, nil
}
