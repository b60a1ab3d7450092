package ports

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrScriptNotFound is returned by ScriptStore.Read for unknown names.
	ErrScriptNotFound = errors.New("script not found")

	// ErrInvalidScriptName is returned for names that are not plain file names.
	ErrInvalidScriptName = errors.New("invalid script name")
)

// ScriptStore defines where script files (util_verbs.nss, b_*.nss, z_b_*.nss) live.
// Names are base file names; stores never interpret the content.
type ScriptStore interface {
	// Read returns the whole content of a script.
	// Returns ErrScriptNotFound if the script does not exist.
	Read(ctx context.Context, name string) ([]byte, error)

	// Write replaces the whole content of a script.
	Write(ctx context.Context, name string, data []byte) error

	// Delete removes a script. Deleting a missing script is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all scripts, sorted.
	List(ctx context.Context) ([]string, error)
}

// ValidateScriptName rejects empty names and names that would escape the store.
func ValidateScriptName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidScriptName, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q must not contain a path separator", ErrInvalidScriptName, name)
	}
	return nil
}
