package toolkit

import "fmt"

// MissingFieldError reports a required schema field absent from call
// arguments. It is surfaced as text by the tool instance; the call fails
// but the process continues.
type MissingFieldError struct {
	Tool  string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// NotFoundError reports a tool name absent from the registry or from a
// configuration set.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("tool %q not found", e.Name)
}

// DuplicateNameError reports a registration-time name conflict. The
// registry is strict: re-registering a name fails instead of silently
// replacing the previous entry.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("tool %q is already registered", e.Name)
}

// MalformedConfigError reports a descriptor that cannot be built into a
// tool. The factory logs it and skips the entry.
type MalformedConfigError struct {
	Name   string
	Reason string
}

func (e *MalformedConfigError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("malformed tool config: %s", e.Reason)
	}
	return fmt.Sprintf("malformed tool config %q: %s", e.Name, e.Reason)
}
