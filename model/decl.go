package model

import (
	"strconv"
	"strings"
)

// DeclarationFile is the top-level structure of a jnihgen declaration YAML file.
type DeclarationFile struct {
	Options *GenerateOptions `yaml:"options,omitempty" validate:"omitempty"`
	Classes []ClassDecl      `yaml:"classes" validate:"required,min=1,dive"`
}

// ScopeKind says where a class is declared.
type ScopeKind string

const (
	ScopeTopLevel ScopeKind = "top_level"
	ScopeNested   ScopeKind = "nested"
	ScopeLocal    ScopeKind = "local" // declared in a method body or initializer, anonymous included
)

// Modifier is a Java declaration modifier keyword.
type Modifier string

const (
	ModPublic       Modifier = "public"
	ModProtected    Modifier = "protected"
	ModPrivate      Modifier = "private"
	ModStatic       Modifier = "static"
	ModFinal        Modifier = "final"
	ModNative       Modifier = "native"
	ModSynchronized Modifier = "synchronized"
	ModAbstract     Modifier = "abstract"
)

// Modifiers is an unordered modifier set.
type Modifiers []Modifier

// Has reports whether m contains x.
func (m Modifiers) Has(x Modifier) bool {
	for _, v := range m {
		if v == x {
			return true
		}
	}
	return false
}

// ClassDecl describes one class as supplied by the host.
type ClassDecl struct {
	Name          string       `yaml:"name" validate:"required"`
	Scope         ScopeKind    `yaml:"scope,omitempty" validate:"omitempty,oneof=top_level nested local"`
	Enclosing     string       `yaml:"enclosing,omitempty" validate:"required_if=Scope nested"`
	Extends       string       `yaml:"extends,omitempty"`
	Header        string       `yaml:"header,omitempty"`
	ReferenceOnly bool         `yaml:"reference_only,omitempty"`
	Fields        []FieldDecl  `yaml:"fields,omitempty" validate:"dive"`
	Methods       []MethodDecl `yaml:"methods,omitempty" validate:"dive"`

	// Set by the resolver. Superclass is nil at the hierarchy root.
	Superclass *ClassDecl `yaml:"-" validate:"-"`
	Outer      *ClassDecl `yaml:"-" validate:"-"`
}

// MethodDecl describes one method with erased parameter and return types.
type MethodDecl struct {
	Name           string          `yaml:"name" validate:"required"`
	Parameters     []ParameterDecl `yaml:"parameters,omitempty" validate:"dive"`
	Returns        TypeRef         `yaml:"returns,omitempty"`
	Modifiers      Modifiers       `yaml:"modifiers,omitempty"`
	FastNative     bool            `yaml:"fast_native,omitempty"`
	CriticalNative bool            `yaml:"critical_native,omitempty"`
}

// ParameterDecl is a single method parameter. Name may be empty for
// declarations read from class files.
type ParameterDecl struct {
	Name string  `yaml:"name,omitempty"`
	Type TypeRef `yaml:"type"`
}

// FieldDecl describes one field. Value holds the compile-time constant, if any.
type FieldDecl struct {
	Name      string    `yaml:"name" validate:"required"`
	Type      TypeRef   `yaml:"type"`
	Modifiers Modifiers `yaml:"modifiers,omitempty"`
	Value     any       `yaml:"value,omitempty"`
}

// IsLocal reports whether c is a local or anonymous class.
func (c *ClassDecl) IsLocal() bool {
	return c.Scope == ScopeLocal
}

// SimpleName returns the class name without package or enclosing classes.
func (c *ClassDecl) SimpleName() string {
	if c.Enclosing != "" && strings.HasPrefix(c.Name, c.Enclosing+".") {
		return c.Name[len(c.Enclosing)+1:]
	}
	if i := strings.LastIndexByte(c.Name, '.'); i >= 0 {
		return c.Name[i+1:]
	}
	return c.Name
}

// NestedPath returns simple names from the outermost enclosing class down to c.
func (c *ClassDecl) NestedPath() []string {
	var path []string
	for cur := c; cur != nil; cur = cur.Outer {
		path = append([]string{cur.SimpleName()}, path...)
		if cur.Outer == nil && cur.Enclosing != "" {
			// Enclosing class not linked; fall back to its last name segment.
			enc := cur.Enclosing
			if i := strings.LastIndexByte(enc, '.'); i >= 0 {
				enc = enc[i+1:]
			}
			path = append([]string{enc}, path...)
		}
	}
	return path
}

// BinaryName returns the JVM internal name, e.g. "com/example/Outer$Inner".
func (c *ClassDecl) BinaryName() string {
	if c.Outer != nil {
		return c.Outer.BinaryName() + "$" + c.SimpleName()
	}
	if c.Enclosing != "" {
		return strings.ReplaceAll(c.Enclosing, ".", "/") + "$" + c.SimpleName()
	}
	return strings.ReplaceAll(c.Name, ".", "/")
}

// NativeMethods returns the native methods of c in declaration order.
func (c *ClassDecl) NativeMethods() []*MethodDecl {
	var out []*MethodDecl
	for i := range c.Methods {
		if c.Methods[i].IsNative() {
			out = append(out, &c.Methods[i])
		}
	}
	return out
}

// Ancestry returns c and its superclasses, most-derived first.
func (c *ClassDecl) Ancestry() []*ClassDecl {
	var chain []*ClassDecl
	seen := map[*ClassDecl]bool{}
	for cur := c; cur != nil && !seen[cur]; cur = cur.Superclass {
		seen[cur] = true
		chain = append(chain, cur)
	}
	return chain
}

func (m *MethodDecl) IsNative() bool { return m.Modifiers.Has(ModNative) }
func (m *MethodDecl) IsStatic() bool { return m.Modifiers.Has(ModStatic) }

// ParameterName returns the declared name of parameter i, or argN when absent.
func (m *MethodDecl) ParameterName(i int) string {
	if n := m.Parameters[i].Name; n != "" {
		return n
	}
	return "arg" + strconv.Itoa(i)
}

func (f *FieldDecl) IsStatic() bool { return f.Modifiers.Has(ModStatic) }
func (f *FieldDecl) IsFinal() bool  { return f.Modifiers.Has(ModFinal) }

// IsConstant reports whether f is a final static primitive field carrying a value.
func (f *FieldDecl) IsConstant() bool {
	return f.IsFinal() && f.IsStatic() && f.Value != nil && f.Type.IsPrimitive()
}

// ClassPtrs returns pointers into d.Classes.
func (d *DeclarationFile) ClassPtrs() []*ClassDecl {
	out := make([]*ClassDecl, len(d.Classes))
	for i := range d.Classes {
		out[i] = &d.Classes[i]
	}
	return out
}

// Normalize fills defaults the YAML form may omit.
func (d *DeclarationFile) Normalize() {
	for i := range d.Classes {
		c := &d.Classes[i]
		if c.Scope == "" {
			if c.Enclosing != "" {
				c.Scope = ScopeNested
			} else {
				c.Scope = ScopeTopLevel
			}
		}
		for j := range c.Methods {
			if c.Methods[j].Returns.IsZero() {
				c.Methods[j].Returns = Prim(Void)
			}
		}
	}
}
