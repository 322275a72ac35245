// Package config reads and writes meander parameter files.
//
// A parameter file is TOML whose keys match the generator inputs. Keys that
// are absent keep their default value, so a file only needs to list what it
// changes:
//
//	# narrow.toml
//	number_of_loops = 120
//	pad_size = 0.8
package config

import (
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/meander/pkg/errors"
	"github.com/matzehuels/meander/pkg/meander"
)

// Load reads the parameter file at path on top of the defaults.
func Load(path string) (meander.Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return meander.Params{}, errors.Wrap(errors.ErrCodeIOFailure, err, "open config %s", path)
	}
	defer f.Close()

	p, err := Decode(f)
	if err != nil {
		return meander.Params{}, errors.Wrap(errors.GetCode(err), err, "config %s", path)
	}
	return p, nil
}

// Decode parses TOML from r on top of the defaults. Unknown keys are an
// error so that typos do not silently fall back to defaults.
func Decode(r io.Reader) (meander.Params, error) {
	return DecodeOver(r, meander.DefaultParams())
}

// DecodeOver parses TOML from r on top of base.
func DecodeOver(r io.Reader, base meander.Params) (meander.Params, error) {
	p := base
	md, err := toml.NewDecoder(r).Decode(&p)
	if err != nil {
		return meander.Params{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return meander.Params{}, errors.New(errors.ErrCodeInvalidConfig,
			"unknown keys: %s", strings.Join(keys, ", "))
	}
	return p, nil
}

// Encode writes p as TOML.
func Encode(w io.Writer, p meander.Params) error {
	if err := toml.NewEncoder(w).Encode(p); err != nil {
		return errors.Wrap(errors.ErrCodeIOFailure, err, "encode toml")
	}
	return nil
}
