package errors

import (
	"math"
	"testing"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "header", false},
		{"digits", "42", false},
		{"punctuated", "nav.item-1:a_b", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 200)), true},
		{"leading dash", "-a", true},
		{"space", "a b", true},
		{"quote", `a"b`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidItem) {
				t.Errorf("ValidateID(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "scripts/measure.js", false},
		{"valid filename only", "measure.js", false},
		{"valid with dots", "v1.2.3/measure.js", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"absolute path", "/etc/passwd", true},
		{"path traversal", "../../../etc/passwd", true},
		{"path traversal middle", "foo/../bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateWeight(t *testing.T) {
	tests := []struct {
		w       float64
		wantErr bool
	}{
		{0, false},
		{1.5, false},
		{-1, true},
		{math.NaN(), true},
		{math.Inf(1), true},
	}
	for _, tt := range tests {
		err := ValidateWeight("flex_grow", tt.w)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateWeight(%v) error = %v, wantErr %v", tt.w, err, tt.wantErr)
		}
	}
}

func TestValidateColor(t *testing.T) {
	for _, c := range []string{"#fff", "#A0b1C2"} {
		if err := ValidateColor(c); err != nil {
			t.Errorf("ValidateColor(%q) = %v", c, err)
		}
	}
	for _, c := range []string{"", "fff", "#ffff", "#ggg", "#12345z"} {
		if err := ValidateColor(c); !Is(err, ErrCodeInvalidStyle) {
			t.Errorf("ValidateColor(%q) = %v, want INVALID_STYLE", c, err)
		}
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidConfiguration,
		ErrCodeInvalidItem,
		ErrCodeInvalidFormat,
		ErrCodeInvalidStyle,
		ErrCodeInvalidScene,
		ErrCodeInvalidPath,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeScript,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
