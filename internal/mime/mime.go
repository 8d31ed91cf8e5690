package mime

import (
	_ "embed"
	"fmt"
	stdmime "mime"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed overrides.yaml
var overridesYAML []byte

// fallbackType is used when neither the override table nor the
// platform table knows the extension.
const fallbackType = "application/octet-stream"

// Table resolves file names to MIME types. Overrides win over the
// platform table. It is built once at startup and never mutated, so
// concurrent lookups need no locking.
type Table struct {
	overrides map[string]string
}

// NewTable parses the embedded override document into a Table.
// The document ships with the binary, so a parse failure is a
// programmer error and panics.
func NewTable() *Table {
	overrides := make(map[string]string)
	if err := yaml.Unmarshal(overridesYAML, &overrides); err != nil {
		panic(fmt.Sprintf("mime: invalid embedded override table: %v", err))
	}
	return &Table{overrides: overrides}
}

// Resolve returns the MIME type for a file name. The extension is
// matched case-insensitively against the override table first, then
// the platform table, then the generic binary type.
func (t *Table) Resolve(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if typ, ok := t.overrides[ext]; ok {
		return typ
	}
	if typ := stdmime.TypeByExtension(ext); typ != "" {
		return typ
	}
	return fallbackType
}
