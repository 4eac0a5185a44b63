package transfer

import "errors"

// Transfer errors.
var (
	// ErrInvalidDocument is returned when an export document is not valid JSON
	// or carries no templates array.
	ErrInvalidDocument = errors.New("transfer: invalid export document")

	// ErrInvalidFrontmatter is returned for a markdown file whose YAML header
	// cannot be parsed.
	ErrInvalidFrontmatter = errors.New("transfer: invalid frontmatter")

	// ErrNoBackup is returned by Restore when no backup exists under the prefix.
	ErrNoBackup = errors.New("transfer: no backup found")
)
