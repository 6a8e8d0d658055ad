package assets

import (
	"fmt"
	"path"
	"strings"
)

// ValidatePageName checks that a page name is a clean, relative, slash-separated
// path. Nested names such as "admin/users" are allowed.
func ValidatePageName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidPageName)
	}
	if strings.ContainsAny(name, "\\\x00") || strings.HasPrefix(name, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidPageName, name)
	}
	if path.Clean(name) != name {
		return fmt.Errorf("%w: %q is not clean", ErrInvalidPageName, name)
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == "." || seg == ".." {
			return fmt.Errorf("%w: %q", ErrInvalidPageName, name)
		}
	}
	return nil
}
