package compiler

// Default bootstrap class and entry selector.
const (
	DefaultEntryClass  = "Main"
	DefaultEntryMethod = "run"
)

// EntryPoint names the class and zero-argument method a program must
// declare.
type EntryPoint struct {
	Class  string
	Method string
}

// DefaultEntryPoint returns Main>>run.
func DefaultEntryPoint() EntryPoint {
	return EntryPoint{Class: DefaultEntryClass, Method: DefaultEntryMethod}
}

// CheckEntryPoint requires the entry class to exist and to declare the entry
// method itself. An inherited method does not count.
func CheckEntryPoint(registry *Registry, entry EntryPoint) error {
	desc, ok := registry.Lookup(entry.Class)
	if !ok {
		return NewError(ErrMissingEntry, "there is no class named '%s'", entry.Class)
	}
	if !desc.Declares(entry.Method) {
		return NewError(ErrMissingEntry, "class '%s' has no method '%s'", entry.Class, entry.Method)
	}
	return nil
}
