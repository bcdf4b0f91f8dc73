package scene

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/flexline/pkg/errors"
	"github.com/matzehuels/flexline/pkg/flex"
)

// SizeKind tells the three forms of a requested size apart.
type SizeKind uint8

const (
	// SizeWrap uses the content's natural size. It is the zero value.
	SizeWrap SizeKind = iota
	// SizeMatch fills the space the container offers.
	SizeMatch
	// SizeFixed requests Length.
	SizeFixed
)

// Size is a requested item size: a non-negative length, "wrap" or "match".
// It decodes from a number or a keyword in JSON, TOML and YAML.
type Size struct {
	Kind   SizeKind
	Length int
}

// Fixed returns a Size requesting n.
func Fixed(n int) Size { return Size{Kind: SizeFixed, Length: n} }

// Flex returns the size in the form flex.Item expects.
func (s Size) Flex() int {
	switch s.Kind {
	case SizeMatch:
		return flex.SizeMatchParent
	case SizeFixed:
		return s.Length
	}
	return flex.SizeWrapContent
}

func (s Size) String() string {
	switch s.Kind {
	case SizeMatch:
		return "match"
	case SizeFixed:
		return strconv.Itoa(s.Length)
	}
	return "wrap"
}

// parseSize accepts the values produced by the three decoders: strings,
// integers and floats.
func parseSize(v any) (Size, error) {
	switch t := v.(type) {
	case nil:
		return Size{}, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "", "wrap", "wrap-content", "wrap_content", "auto":
			return Size{}, nil
		case "match", "match-parent", "match_parent", "fill":
			return Size{Kind: SizeMatch}, nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return Size{}, errors.New(errors.ErrCodeInvalidItem, "invalid size %q (want a length, \"wrap\" or \"match\")", t)
		}
		return sizeOf(int64(n))
	case int:
		return sizeOf(int64(t))
	case int64:
		return sizeOf(t)
	case uint64:
		if t > math.MaxInt32 {
			return Size{}, errors.New(errors.ErrCodeInvalidItem, "size %d out of range", t)
		}
		return sizeOf(int64(t))
	case float64:
		if t != math.Trunc(t) {
			return Size{}, errors.New(errors.ErrCodeInvalidItem, "size %v must be a whole number", t)
		}
		return sizeOf(int64(t))
	}
	return Size{}, errors.New(errors.ErrCodeInvalidItem, "invalid size of type %T", v)
}

func sizeOf(n int64) (Size, error) {
	if n < 0 || n > math.MaxInt32 {
		return Size{}, errors.New(errors.ErrCodeInvalidItem, "size %d out of range", n)
	}
	return Fixed(int(n)), nil
}

// MarshalJSON writes lengths as numbers and keywords as strings.
func (s Size) MarshalJSON() ([]byte, error) {
	if s.Kind == SizeFixed {
		return []byte(strconv.Itoa(s.Length)), nil
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Size) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("size: %w", err)
	}
	parsed, err := parseSize(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (s Size) MarshalYAML() (any, error) {
	if s.Kind == SizeFixed {
		return s.Length, nil
	}
	return s.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Size) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return fmt.Errorf("size: %w", err)
	}
	parsed, err := parseSize(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (s *Size) UnmarshalTOML(v any) error {
	parsed, err := parseSize(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
