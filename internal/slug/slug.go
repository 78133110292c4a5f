// Package slug turns post titles into URL-safe identifiers.
package slug

import (
	"regexp"
	"strings"
)

var (
	// nonAlphanumeric matches every run of characters outside [a-z0-9].
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	validSlug       = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2024" → "hello-world-2024"
func Generate(s string) string {
	result := strings.ToLower(s)
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// Valid reports whether s is already a well-formed slug.
func Valid(s string) bool {
	return validSlug.MatchString(s)
}

// Field is the slug input of the post editor. It follows the title until
// the author types a slug of their own; after that it is never regenerated.
type Field struct {
	value      string
	overridden bool
}

// NewField starts a field for an existing post. A non-empty slug counts as
// already set.
func NewField(existing string) Field {
	return Field{value: existing, overridden: existing != ""}
}

// TitleChanged re-derives the slug unless the author has set one.
func (f *Field) TitleChanged(title string) {
	if !f.overridden {
		f.value = Generate(title)
	}
}

// Set records an explicit slug. Input is lowercased as typed; clearing it
// hands control back to the title.
func (f *Field) Set(s string) {
	f.value = strings.ToLower(strings.TrimSpace(s))
	f.overridden = f.value != ""
}

func (f Field) Value() string { return f.value }

func (f Field) Overridden() bool { return f.overridden }

// Resolve returns the slug to submit: the field value, or one generated from
// title when the field is empty.
func (f Field) Resolve(title string) string {
	if f.value != "" {
		return f.value
	}
	return Generate(title)
}
