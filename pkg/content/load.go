package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultDocument []byte

// ErrInvalidDocument is returned when a résumé document fails validation.
var ErrInvalidDocument = errors.New("invalid resume document")

// Default returns the embedded résumé.
func Default() *Document {
	doc, err := LoadFromReader(bytes.NewReader(defaultDocument))
	if err != nil {
		panic(fmt.Sprintf("embedded resume is invalid: %v", err))
	}
	return doc
}

// Load reads and validates a résumé document from disk.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open resume %s: %w", path, err)
	}
	defer f.Close()

	doc, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// LoadFromReader decodes a résumé document. Unknown keys are rejected so
// typos surface at startup instead of silently dropping content.
func LoadFromReader(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: document is empty", ErrInvalidDocument)
		}
		return nil, fmt.Errorf("failed to parse resume: %w", err)
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks the fields the rendered commands depend on.
func (d *Document) Validate() error {
	var problems []string

	if strings.TrimSpace(d.Name) == "" {
		problems = append(problems, "name is required")
	}
	for i, role := range d.Experience {
		if strings.TrimSpace(role.Organisation) == "" {
			problems = append(problems, fmt.Sprintf("experience[%d]: organisation is required", i))
		}
	}
	for i, group := range d.Skills {
		for j, skill := range group.Items {
			if skill.Level < 0 || skill.Level > 100 {
				problems = append(problems, fmt.Sprintf("skills[%d].items[%d]: level %d out of range 0-100", i, j, skill.Level))
			}
		}
	}
	for i, extra := range d.Extra {
		if strings.TrimSpace(extra.Name) == "" {
			problems = append(problems, fmt.Sprintf("extra[%d]: name is required", i))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(problems, "; "))
	}
	return nil
}
