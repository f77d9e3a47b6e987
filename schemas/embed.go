// Package schemas embeds the JSON Schema documents for the three profile blocks.
package schemas

import (
	"embed"
	"fmt"
)

//go:embed *.schema.json
var files embed.FS

// Schema file names, one per submitted block.
const (
	PersonalInfo = "personal_info.schema.json"
	Education    = "education.schema.json"
	Skills       = "skills.schema.json"
)

// Names lists every embedded schema.
var Names = []string{PersonalInfo, Education, Skills}

// Load returns the raw schema document called name.
func Load(name string) ([]byte, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("schema %s not found: %w", name, err)
	}
	return data, nil
}
