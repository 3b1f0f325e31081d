package gamedata

import (
	"bytes"

	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Load reads and unmarshals a YAML file from the embedded filesystem.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, errors.Wrapf(err, "failed to read embedded file %s", filename)
	}

	if err := Parse(content, &result); err != nil {
		return result, errors.Wrapf(err, "failed to parse %s", filename)
	}

	return result, nil
}

// Parse decodes YAML content into out, rejecting unknown fields.
func Parse(content []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	return dec.Decode(out)
}

// MustLoad reads and unmarshals a YAML file, panicking on error.
// Use this for data that must be present for the game to function.
func MustLoad[T any](filename string) T {
	return must.M1(Load[T](filename))
}
