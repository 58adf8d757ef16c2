package configloader

import (
	"fmt"
	"os"

	"github.com/yaklabco/adocblocks/pkg/config"
	"github.com/yaklabco/adocblocks/pkg/parser"
)

// LoadAttributeFile reads attribute entries (":name: value" and ":name!:")
// from an .asciidoctorconfig file. Entries are evaluated in order with the
// same rules the parser applies to a document header, so later entries may
// reference earlier ones.
func LoadAttributeFile(path string) (map[string]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read attribute file: %w", err)
	}

	host := parser.NewDocumentHost(nil, config.SafeModeSecure)
	p := parser.New(parser.Options{Host: host})
	p.ParseText(path, string(content))

	return host.Attributes(), nil
}
