package pipeline

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/matzehuels/meander/pkg/errors"
)

// OutputPaths maps each format to its file path. The first path is output
// itself when its extension already matches the format; every other format
// replaces the extension of output.
func OutputPaths(output string, formats []string) (map[string]string, error) {
	if err := errors.ValidateFilename(output); err != nil {
		return nil, err
	}
	ext := filepath.Ext(output)
	base := strings.TrimSuffix(output, ext)

	paths := make(map[string]string, len(formats))
	for _, f := range formats {
		if strings.EqualFold(strings.TrimPrefix(ext, "."), f) {
			paths[f] = output
			continue
		}
		paths[f] = base + "." + f
	}
	return paths, nil
}

// WriteArtifacts writes every artifact next to output and returns the
// written paths in format order.
func WriteArtifacts(artifacts map[string][]byte, output string) ([]string, error) {
	formats := make([]string, 0, len(artifacts))
	for f := range artifacts {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	paths, err := OutputPaths(output, formats)
	if err != nil {
		return nil, err
	}

	written := make([]string, 0, len(formats))
	for _, f := range formats {
		if err := WriteFile(paths[f], artifacts[f]); err != nil {
			return written, err
		}
		written = append(written, paths[f])
	}
	return written, nil
}

// WriteFile writes data to path through a temporary file in the same
// directory, so a failed write never leaves a partial artifact behind.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeIOFailure, err, "create %s", path)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeIOFailure, err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeIOFailure, err, "write %s", path)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeIOFailure, err, "write %s", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeIOFailure, err, "write %s", path)
	}
	return nil
}
