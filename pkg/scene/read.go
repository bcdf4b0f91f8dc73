package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/flexline/pkg/errors"
)

// Document formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// FormatFromPath picks the document format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown scene format for %s (want .json, .toml, .yaml or .yml)", path)
}

// ReadDocument decodes a scene document in the given format from r.
// Unknown fields are rejected so that typos in property names surface
// instead of silently falling back to defaults.
func ReadDocument(r io.Reader, format string) (*Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, decodeError(format, err)
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&doc)
		if err != nil {
			return nil, decodeError(format, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidScene, "toml: unknown field %s", undecoded[0])
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && err != io.EOF {
			return nil, decodeError(format, err)
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown scene format %q", format)
	}
	return &doc, nil
}

// decodeError keeps coded errors from Size decoding and wraps the rest.
func decodeError(format string, err error) error {
	if code := errors.GetCode(err); code != "" {
		return err
	}
	return errors.Wrap(errors.ErrCodeInvalidScene, err, "decode %s scene", format)
}

// ReadDocumentFile reads a scene document, choosing the format from the
// file extension.
func ReadDocumentFile(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDocument(f, format)
}

// ParseDocument decodes a scene document from bytes.
func ParseDocument(data []byte, format string) (*Document, error) {
	return ReadDocument(bytes.NewReader(data), format)
}

// MarshalDocument serializes a document to canonical JSON. Equal documents
// produce equal bytes, which makes the output usable as a cache key input.
func MarshalDocument(doc *Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode scene: %w", err)
	}
	return data, nil
}
