package resolver

import (
	"fmt"
	"strings"

	"github.com/benn-herrera/jnihgen/model"
)

// jdkSuperclasses maps well-known JDK classes to their superclass, so types
// extending them resolve to jthrowable without their class files.
var jdkSuperclasses = map[string]string{
	"java.lang.Throwable":                      model.JavaLangObject,
	"java.lang.Exception":                      "java.lang.Throwable",
	"java.lang.Error":                          "java.lang.Throwable",
	"java.lang.RuntimeException":               "java.lang.Exception",
	"java.lang.IllegalArgumentException":       "java.lang.RuntimeException",
	"java.lang.IllegalStateException":          "java.lang.RuntimeException",
	"java.lang.NullPointerException":           "java.lang.RuntimeException",
	"java.lang.UnsupportedOperationException":  "java.lang.RuntimeException",
	"java.lang.IndexOutOfBoundsException":      "java.lang.RuntimeException",
	"java.lang.ArrayIndexOutOfBoundsException": "java.lang.IndexOutOfBoundsException",
	"java.lang.ClassCastException":             "java.lang.RuntimeException",
	"java.lang.ArithmeticException":            "java.lang.RuntimeException",
	"java.lang.NumberFormatException":          "java.lang.IllegalArgumentException",
	"java.lang.InterruptedException":           "java.lang.Exception",
	"java.lang.ReflectiveOperationException":   "java.lang.Exception",
	"java.lang.ClassNotFoundException":         "java.lang.ReflectiveOperationException",
	"java.io.IOException":                      "java.lang.Exception",
	"java.io.FileNotFoundException":            "java.io.IOException",
	"java.io.UncheckedIOException":             "java.lang.RuntimeException",
	"java.lang.LinkageError":                   "java.lang.Error",
	"java.lang.UnsatisfiedLinkError":           "java.lang.LinkageError",
	"java.lang.AssertionError":                 "java.lang.Error",
	"java.lang.VirtualMachineError":            "java.lang.Error",
	"java.lang.OutOfMemoryError":               "java.lang.VirtualMachineError",
	"java.lang.StackOverflowError":             "java.lang.VirtualMachineError",
	model.JavaLangString:                       model.JavaLangObject,
	model.JavaLangClass:                        model.JavaLangObject,
}

// Hierarchy indexes the known classes by name and answers subtype queries.
type Hierarchy struct {
	classes map[string]*model.ClassDecl
}

// Link resolves Extends and Enclosing references between classes, setting
// Superclass and Outer. Names may use either '.' or '$' for nesting. An Extends
// that names no known class is left unlinked. A superclass cycle is an error.
func Link(classes []*model.ClassDecl) (*Hierarchy, error) {
	h := &Hierarchy{classes: make(map[string]*model.ClassDecl, len(classes)*2)}
	for _, c := range classes {
		h.classes[c.Name] = c
	}

	for _, c := range classes {
		if c.Enclosing != "" {
			c.Outer = h.lookup(c.Enclosing)
		}
	}
	// Binary-name aliases need Outer links in place.
	for _, c := range classes {
		alias := strings.ReplaceAll(c.BinaryName(), "/", ".")
		if _, ok := h.classes[alias]; !ok {
			h.classes[alias] = c
		}
	}

	for _, c := range classes {
		if c.Extends != "" {
			c.Superclass = h.lookup(c.Extends)
		}
	}

	for _, c := range classes {
		seen := map[*model.ClassDecl]bool{}
		for cur := c; cur != nil; cur = cur.Superclass {
			if seen[cur] {
				return nil, fmt.Errorf("class hierarchy cycle involving %s", c.Name)
			}
			seen[cur] = true
		}
	}
	return h, nil
}

func (h *Hierarchy) lookup(name string) *model.ClassDecl {
	if c, ok := h.classes[name]; ok {
		return c
	}
	return h.classes[strings.ReplaceAll(name, "$", ".")]
}

// Lookup returns the class registered under name.
func (h *Hierarchy) Lookup(name string) (*model.ClassDecl, bool) {
	c := h.lookup(name)
	return c, c != nil
}

// superclass returns the superclass name of name, from the linked classes or
// the built-in JDK table.
func (h *Hierarchy) superclass(name string) string {
	if c := h.lookup(name); c != nil {
		if c.Superclass != nil {
			return c.Superclass.Name
		}
		return c.Extends
	}
	return jdkSuperclasses[name]
}

// IsAssignable reports whether from is to or a subclass of it.
func (h *Hierarchy) IsAssignable(from, to string) bool {
	seen := map[string]bool{}
	for cur := from; cur != "" && !seen[cur]; cur = h.superclass(cur) {
		if cur == to || strings.ReplaceAll(cur, "$", ".") == to {
			return true
		}
		seen[cur] = true
	}
	return false
}
