package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	defer func(v string) { Version = v }(Version)
	Version = "v1.2.3"

	if s := String(); !strings.HasPrefix(s, "version: v1.2.3\n") {
		t.Errorf("String() = %q", s)
	}
	if s := Template(); !strings.HasPrefix(s, "{{.Name}} version v1.2.3") {
		t.Errorf("Template() = %q", s)
	}
	if ua := UserAgent(); ua != "flexline/v1.2.3" {
		t.Errorf("UserAgent() = %q", ua)
	}
}
