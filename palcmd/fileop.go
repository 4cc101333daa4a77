package palcmd

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"picdither/palette"
)

func convert(p color.Palette, dest string) (err error) {
	slog.Info("writing palette", "to", dest, "colors", len(p))

	if err := checkFile(dest); err != nil {
		return err
	}

	outFile, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary destination for %q: %w", dest, err)
	}
	defer func() {
		if close_err := outFile.Close(); close_err != nil && err == nil {
			err = fmt.Errorf("could not close destination file %q: %w", dest, close_err)
		}
		if err == nil {
			err = os.Rename(outFile.Name(), dest)
		}
		if err != nil {
			_ = os.Remove(outFile.Name())
		}
	}()

	if err = palette.Encode(outFile, dest, p); err != nil {
		return fmt.Errorf("could not write palette %q: %w", dest, err)
	}

	if err = outFile.Sync(); err != nil {
		return fmt.Errorf("could not flush destination file %q: %w", dest, err)
	}
	return nil
}

// checkFile refuses to overwrite dest.
func checkFile(dest string) error {
	destFileInfo, err := os.Stat(dest)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot stat destination file %q: %w", dest, err)
		}
		return nil
	}
	return fmt.Errorf("destination file already exists: %q", destFileInfo.Name())
}
