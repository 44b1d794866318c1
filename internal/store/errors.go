package store

import "fmt"

type InvalidEntityKindError struct {
	Kind string
}

func (e InvalidEntityKindError) Error() string {
	return fmt.Sprintf("invalid entity kind: %q", e.Kind)
}

func errInvalidEntityKind(kind string) error {
	return InvalidEntityKindError{Kind: kind}
}
