package filesig

import (
	"context"
	"io/fs"
	"path/filepath"
)

// DetectTree walks root and detects every regular file accepted by
// selector, in lexical order. A nil selector accepts everything. Per-file
// failures are reported in Detection.Err and do not stop the walk;
// cancelling ctx stops it and returns the detections made so far with an
// error wrapping ctx.Err().
func (d *Detector) DetectTree(ctx context.Context, root string, selector FileSelector) ([]Detection, error) {
	if selector == nil {
		selector = All()
	}

	var results []Detection
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if path == root {
				return walkErr
			}
			results = append(results, Detection{Path: path, Err: wrapPathErr("walk", path, walkErr)})
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		info := &FileInfo{
			Name:  entry.Name(),
			Path:  filepath.ToSlash(rel),
			IsDir: entry.IsDir(),
		}

		if entry.IsDir() {
			if !selector.TraverseDescendants(info) {
				return fs.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() {
			return nil
		}

		if fi, err := entry.Info(); err == nil {
			info.Size = fi.Size()
			info.ModTime = fi.ModTime()
		}
		if !selector.Match(info) {
			return nil
		}

		res, err := d.DetectFile(ctx, path)
		results = append(results, Detection{Path: path, Result: res, Err: err})
		return nil
	})
	if err != nil {
		return results, wrapPathErr("detect-tree", root, err)
	}
	return results, nil
}
