package export

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/klauspost/compress/flate"
	"github.com/spf13/afero"
)

// PackageExtension is .ipk3 when dir holds an iwadinfo.txt, else .pk3.
func PackageExtension(fsys afero.Fs, dir string) string {
	if ok, _ := afero.Exists(fsys, filepath.Join(dir, "iwadinfo.txt")); ok {
		return ".ipk3"
	}
	return ".pk3"
}

// Package zips the contents of dir into zipPath. Directories named in
// exclude are skipped at any depth.
func Package(fsys afero.Fs, dir, zipPath string, exclude []string) error {
	if err := fsys.MkdirAll(filepath.Dir(zipPath), 0o755); err != nil {
		return fmt.Errorf("creating package directory: %w", err)
	}
	out, err := fsys.Create(zipPath)
	if err != nil {
		return fmt.Errorf("creating package: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.DefaultCompression)
	})

	count := 0
	err = afero.Walk(fsys, dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if p != dir && slices.Contains(exclude, info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   filepath.ToSlash(rel),
			Method: zip.Deflate,
		})
		if err != nil {
			return fmt.Errorf("adding %s: %w", rel, err)
		}
		data, err := afero.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing %s: %w", rel, err)
		}
		count++
		return nil
	})
	if err != nil {
		zw.Close()
		return fmt.Errorf("packaging %s: %w", dir, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finishing package: %w", err)
	}
	slog.Debug("Packaged directory", "dir", dir, "package", zipPath, "files", count)
	return out.Close()
}
