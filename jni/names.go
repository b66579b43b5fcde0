package jni

import (
	"strings"

	"github.com/benn-herrera/jnihgen/model"
)

// RegisterNativesMethod is the bootstrap method that exists only to trigger
// static initialization and register the rest of the natives.
const RegisterNativesMethod = "registerNatives"

// Symbol is a native method paired with its exported JNI symbol.
type Symbol struct {
	Method     *model.MethodDecl
	Overloaded bool
	Name       string
	Signature  string
}

// ResolveSymbols returns the native methods of c in declaration order with
// their exported names. Native methods sharing a simple name are overloaded and
// get the "__" + mangled parameter signature suffix.
func ResolveSymbols(c *model.ClassDecl) []Symbol {
	natives := c.NativeMethods()
	counts := make(map[string]int, len(natives))
	for _, m := range natives {
		counts[m.Name]++
	}

	syms := make([]Symbol, 0, len(natives))
	for _, m := range natives {
		overloaded := counts[m.Name] > 1
		syms = append(syms, Symbol{
			Method:     m,
			Overloaded: overloaded,
			Name:       MangledMethodName(c, m, overloaded),
			Signature:  MethodSignature(m),
		})
	}
	return syms
}

// MangledMethodName builds Java_<class>_<method>[__<params>].
func MangledMethodName(c *model.ClassDecl, m *model.MethodDecl, overloaded bool) string {
	var b strings.Builder
	b.WriteString("Java_")
	b.WriteString(Encode(c.Name, EncodeJNI))
	b.WriteByte('_')
	b.WriteString(Encode(m.Name, EncodeJNI))
	if overloaded {
		b.WriteString("__")
		b.WriteString(Encode(ParameterSignature(m), EncodeJNI))
	}
	return b.String()
}

// ClassMacroName is the class part of constant macros and include guards.
func ClassMacroName(c *model.ClassDecl) string {
	return Encode(c.Name, EncodeClass)
}

// RegistrationPrefix is the macro prefix shared by all signature definitions of c:
// the upper-cased class encoding of its nested simple-name path, so
// "com.example.Outer.Inner" gives "OUTER_INNER".
func RegistrationPrefix(c *model.ClassDecl) string {
	return strings.ToUpper(Encode(strings.Join(c.NestedPath(), "."), EncodeClass))
}
