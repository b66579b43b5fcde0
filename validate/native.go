package validate

import (
	"fmt"

	"github.com/benn-herrera/jnihgen/jni"
	"github.com/benn-herrera/jnihgen/model"
)

// Outcome is the terminal state of a native method check.
type Outcome int

const (
	Valid Outcome = iota
	Invalid
)

func (o Outcome) String() string {
	if o == Valid {
		return "valid"
	}
	return "invalid"
}

// MethodOutcome pairs a native method with its check result.
type MethodOutcome struct {
	Method  *model.MethodDecl
	Outcome Outcome
}

// MethodPath identifies m inside c for diagnostics.
func MethodPath(c *model.ClassDecl, m *model.MethodDecl) string {
	return c.Name + "#" + m.Name + jni.MethodSignature(m)
}

// NativeMethod checks the @FastNative/@CriticalNative constraints on m.
// The first violated rule is reported and ends the check. The returned error is
// non-nil only when rep refuses a diagnostic.
func NativeMethod(c *model.ClassDecl, m *model.MethodDecl, rep Reporter) (Outcome, error) {
	path := MethodPath(c, m)
	fail := func(msg string) (Outcome, error) {
		if err := rep.Report(Diagnostic{Severity: SeverityError, Path: path, Message: msg}); err != nil {
			return Invalid, err
		}
		return Invalid, nil
	}

	if m.FastNative && m.CriticalNative {
		return fail(fmt.Sprintf("method '%s' can be either @FastNative or @CriticalNative, but not both (mutually exclusive) in class %s", m.Name, c.Name))
	}

	if m.CriticalNative {
		// No JNIEnv, jclass or jobject is passed, so references cannot cross.
		if !m.IsStatic() {
			return fail(fmt.Sprintf("@CriticalNative methods must be static. Method %s in class %s", m.Name, c.Name))
		}
		if !m.Returns.IsPrimitive() && !m.Returns.IsVoid() {
			return fail(fmt.Sprintf("@CriticalNative methods must have a primitive return type. Method %s in class %s", m.Name, c.Name))
		}
		for _, p := range m.Parameters {
			if !p.Type.IsPrimitive() {
				return fail(fmt.Sprintf("@CriticalNative methods must have primitive parameter types. Method %s in class %s", m.Name, c.Name))
			}
		}
	}

	return Valid, nil
}

// NativeMethods runs NativeMethod over every native method of c in declaration order.
func NativeMethods(c *model.ClassDecl, rep Reporter) ([]MethodOutcome, error) {
	var outcomes []MethodOutcome
	for _, m := range c.NativeMethods() {
		o, err := NativeMethod(c, m, rep)
		if err != nil {
			return outcomes, fmt.Errorf("validating %s: %w", MethodPath(c, m), err)
		}
		outcomes = append(outcomes, MethodOutcome{Method: m, Outcome: o})
	}
	return outcomes, nil
}
