package mutate

import "fmt"

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

type EmptyFieldError struct {
	Field string
}

func (e EmptyFieldError) Error() string {
	return fmt.Sprintf("%s must not be empty", e.Field)
}
