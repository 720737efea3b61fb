package main

import (
	"os"
	"path/filepath"
)

// saveToFiles writes one tile below tm. MkdirAll makes the column directory
// creation safe when several workers hit the same column.
func saveToFiles(tile Tile, tm *TileMap) error {
	dir := tm.ColumnDir(tile.T.Z, tile.T.X)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return IOError(err, "create tile directory '%s'", dir)
	}
	fileName := tm.GetTilePath(tile.T)
	if err := os.WriteFile(fileName, tile.C, 0o644); err != nil {
		return IOError(err, "write tile '%s'", fileName)
	}
	return nil
}

// writeFileAtomic writes data to a temp file next to path and renames it
// into place, so readers see either the old or the new content.
func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// removeAll 清空输出目录
func removeAll(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return IOError(err, "remove output directory '%s'", dir)
	}
	return nil
}
