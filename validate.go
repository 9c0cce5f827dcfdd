package promptvault

import (
	"fmt"
	"strings"
)

// ValidateName checks that each name is safe to join into a filesystem path:
// non-empty, no path separators, no current or parent directory references.
// Registries call it on domain and use-case arguments before touching disk.
func ValidateName(names ...string) error {
	for _, name := range names {
		if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
	}

	return nil
}
