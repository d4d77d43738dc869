package buildinfo

import (
	"strings"
	"testing"
)

func TestHeader(t *testing.T) {
	oldV, oldC := Version, Commit
	defer func() { Version, Commit = oldV, oldC }()

	Version, Commit = "v1.2.3", "abc123"
	if got, want := Header(), "ioring v1.2.3 (abc123)"; got != want {
		t.Errorf("Header() = %q, want %q", got, want)
	}
}

func TestTemplate(t *testing.T) {
	tpl := Template()
	if !strings.HasPrefix(tpl, "{{.Name}} version ") {
		t.Errorf("Template() = %q, missing cobra name placeholder", tpl)
	}
	if !strings.Contains(String(), "commit: ") {
		t.Errorf("String() = %q, missing commit line", String())
	}
}
