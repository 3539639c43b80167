package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/db47h/logik"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Encode returns the JSON encoding of l.
//
func Encode(l *logik.Library) ([]byte, error) {
	gs, err := Store(l)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(gs, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "json marshal")
	}
	return data, nil
}

// Decode decodes a JSON encoded library.
//
func Decode(data []byte) (*logik.Library, error) {
	var gs []Gate
	if err := json.Unmarshal(data, &gs); err != nil {
		return nil, errors.Wrap(err, "json unmarshal")
	}
	return Load(gs)
}

// EncodeYAML returns the YAML encoding of l.
//
func EncodeYAML(l *logik.Library) ([]byte, error) {
	gs, err := Store(l)
	if err != nil {
		return nil, err
	}
	var b bytes.Buffer
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err = enc.Encode(gs); err != nil {
		return nil, errors.Wrap(err, "yaml marshal")
	}
	if err = enc.Close(); err != nil {
		return nil, errors.Wrap(err, "yaml marshal")
	}
	return b.Bytes(), nil
}

// DecodeYAML decodes a YAML encoded library.
//
func DecodeYAML(data []byte) (*logik.Library, error) {
	var gs []Gate
	if err := yaml.Unmarshal(data, &gs); err != nil {
		return nil, errors.Wrap(err, "yaml unmarshal")
	}
	return Load(gs)
}

type codec struct {
	encode func(*logik.Library) ([]byte, error)
	decode func([]byte) (*logik.Library, error)
}

var codecs = map[string]codec{
	".json": {Encode, Decode},
	".yaml": {EncodeYAML, DecodeYAML},
	".yml":  {EncodeYAML, DecodeYAML},
}

func codecFor(name string) (codec, error) {
	ext := strings.ToLower(filepath.Ext(name))
	c, ok := codecs[ext]
	if !ok {
		return codec{}, errors.Errorf("%s: unsupported file type %q", name, ext)
	}
	return c, nil
}

// ReadFile loads a library from the named file. The file extension selects
// the format: .json for JSON, .yaml or .yml for YAML.
//
func ReadFile(name string) (*logik.Library, error) {
	c, err := codecFor(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read library")
	}
	l, err := c.decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", name)
	}
	return l, nil
}

// WriteFile writes l to the named file, in the format selected by the file
// extension.
//
func WriteFile(name string, l *logik.Library) error {
	c, err := codecFor(name)
	if err != nil {
		return err
	}
	data, err := c.encode(l)
	if err != nil {
		return err
	}
	return errors.Wrap(os.WriteFile(name, data, 0o644), "write library")
}
