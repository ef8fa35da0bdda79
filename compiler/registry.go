package compiler

// ---------------------------------------------------------------------------
// Class registry: declared classes with single inheritance
// ---------------------------------------------------------------------------

// RootClass is the only class without a parent.
const RootClass = "Object"

// ClassDescriptor describes one class: its parent and the selectors it
// declares itself, in declaration order.
type ClassDescriptor struct {
	Name    string
	Parent  string // empty for the root class
	Methods []string
	Builtin bool

	methodSet map[string]bool
}

// Declares reports whether the class itself declares selector.
func (c *ClassDescriptor) Declares(selector string) bool {
	return c.methodSet[selector]
}

func (c *ClassDescriptor) addMethod(selector string) {
	if c.methodSet == nil {
		c.methodSet = make(map[string]bool)
	}
	if c.methodSet[selector] {
		return
	}
	c.methodSet[selector] = true
	c.Methods = append(c.Methods, selector)
}

// Registry maps class names to descriptors. It is written once by
// BuildRegistry and only read afterwards.
type Registry struct {
	classes map[string]*ClassDescriptor
	order   []string
}

// builtinClasses is the fixed hierarchy present before any user class.
var builtinClasses = []struct {
	name    string
	parent  string
	methods []string
}{
	{"Object", "", []string{"identicalTo:", "equalTo:", "asString", "isNumber", "isString", "isBlock", "isNil", "new", "from:"}},
	{"Nil", "Object", []string{"asString"}},
	{"Integer", "Object", []string{"equalTo:", "greaterThan:", "plus:", "minus:", "multiplyBy:", "divBy:", "asString", "asInteger", "timesRepeat:"}},
	{"String", "Object", []string{
		"read", "print", "equalTo:", "asString", "asInteger", "concatenateWith:",
		"startsWith:endsBefore:", "startsWith:", "endsBefore:",
		"startWith:endsBefore:", "startWith:",
	}},
	// value sends are resolved by block arity at run time; up to three
	// parameters are known statically.
	{"Block", "Object", []string{"whileTrue:", "whileTrue", "value", "value:", "value:value:", "value:value:value:"}},
	{"True", "Object", []string{"not", "and:", "or:", "ifTrue:ifFalse:", "ifTrue:", "ifFalse:"}},
	{"False", "Object", []string{"not", "and:", "or:", "ifTrue:ifFalse:", "ifTrue:", "ifFalse:"}},
}

// NewRegistry returns a registry holding only the built-in classes.
func NewRegistry() *Registry {
	r := &Registry{classes: make(map[string]*ClassDescriptor)}
	for _, b := range builtinClasses {
		desc := &ClassDescriptor{Name: b.name, Parent: b.parent, Builtin: true}
		for _, m := range b.methods {
			desc.addMethod(m)
		}
		r.classes[b.name] = desc
		r.order = append(r.order, b.name)
	}
	return r
}

// Lookup returns the descriptor for name.
func (r *Registry) Lookup(name string) (*ClassDescriptor, bool) {
	desc, ok := r.classes[name]
	return desc, ok
}

// Has reports whether name is a registered class.
func (r *Registry) Has(name string) bool {
	_, ok := r.classes[name]
	return ok
}

// Names returns class names in registration order, built-ins first.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// declare adds a user class. It fails on any name collision.
func (r *Registry) declare(cls *ClassDef) error {
	if r.Has(cls.Name) {
		return errorAt(ErrDuplicate, cls.SpanVal.Start, "class '%s' already exists", cls.Name)
	}
	desc := &ClassDescriptor{Name: cls.Name, Parent: cls.Parent}
	for _, m := range cls.Methods {
		desc.addMethod(m.Selector.Name())
	}
	r.classes[cls.Name] = desc
	r.order = append(r.order, cls.Name)
	return nil
}

// Ancestry returns the class and its ancestors up to the root, nearest
// first. A missing parent ends the chain; a cycle is cut at the first
// repeated class.
func (r *Registry) Ancestry(name string) []*ClassDescriptor {
	var chain []*ClassDescriptor
	seen := make(map[string]bool)
	for name != "" && !seen[name] {
		desc, ok := r.classes[name]
		if !ok {
			break
		}
		seen[name] = true
		chain = append(chain, desc)
		name = desc.Parent
	}
	return chain
}

// MethodsOf returns the ancestor-inclusive method set of a class, the
// class's own selectors first.
func (r *Registry) MethodsOf(name string) []string {
	var methods []string
	for _, desc := range r.Ancestry(name) {
		methods = append(methods, desc.Methods...)
	}
	return methods
}

// Understands reports whether selector is in the ancestor-inclusive method
// set of the class.
func (r *Registry) Understands(class, selector string) bool {
	for _, desc := range r.Ancestry(class) {
		if desc.Declares(selector) {
			return true
		}
	}
	return false
}

// BuildRegistry walks the program once and registers every class with its
// parent name and selectors. Parent existence is not checked here.
func BuildRegistry(prog *Program) (*Registry, error) {
	r := NewRegistry()
	for _, cls := range prog.Classes {
		if err := r.declare(cls); err != nil {
			return nil, err
		}
	}
	return r, nil
}
