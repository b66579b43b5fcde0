package validate

import (
	"fmt"

	"github.com/benn-herrera/jnihgen/jni"
	"github.com/benn-herrera/jnihgen/model"
)

// Validate runs the native-method checks and the declaration checks over classes.
// Local and reference-only classes are skipped the same way generation skips them.
func Validate(classes []*model.ClassDecl, opts model.GenerateOptions) *Result {
	result := &Result{}

	// Check for duplicate class names
	seen := make(map[string]bool)
	for _, c := range classes {
		if seen[c.Name] {
			result.addError(c.Name, fmt.Sprintf("duplicate class %q", c.Name))
		}
		seen[c.Name] = true
	}

	prefixes := make(map[string]string)
	for _, c := range classes {
		if c.IsLocal() || c.ReferenceOnly {
			continue
		}

		// Result never refuses a diagnostic.
		_, _ = NativeMethods(c, result)

		validateFields(c, result)
		validateMethods(c, opts, result)

		if len(c.NativeMethods()) == 0 {
			continue
		}
		prefix := jni.RegistrationPrefix(c)
		if other, ok := prefixes[prefix]; ok && other != c.Name {
			result.addWarning(c.Name, fmt.Sprintf("registration prefix %s is shared with class %s", prefix, other))
		} else {
			prefixes[prefix] = c.Name
		}
	}

	return result
}

func validateFields(c *model.ClassDecl, result *Result) {
	for _, f := range c.Fields {
		if f.Value != nil && !(f.IsStatic() && f.IsFinal()) {
			result.addWarning(c.Name+"."+f.Name, "value is ignored on a field that is not final static")
		}
	}
}

func validateMethods(c *model.ClassDecl, opts model.GenerateOptions, result *Result) {
	sigs := make(map[string]bool)
	hasRegister := false

	for i := range c.Methods {
		m := &c.Methods[i]
		path := MethodPath(c, m)

		if !m.IsNative() {
			if m.FastNative || m.CriticalNative {
				result.addWarning(path, "@FastNative/@CriticalNative has no effect on a method that is not native")
			}
			continue
		}

		key := m.Name + "(" + jni.ParameterSignature(m) + ")"
		if sigs[key] {
			result.addError(path, fmt.Sprintf("duplicate native method %s", key))
		}
		sigs[key] = true

		if m.Name != jni.RegisterNativesMethod {
			continue
		}
		hasRegister = true
		switch {
		case !m.IsStatic():
			result.addError(path, "registerNatives must be static")
		case len(m.Parameters) != 0:
			result.addError(path, "registerNatives must not take parameters")
		case !m.Returns.IsVoid():
			result.addError(path, "registerNatives must return void")
		}
	}

	if opts.RequireRegisterNatives && !hasRegister && len(c.NativeMethods()) > 0 {
		result.addError(c.Name, "class declares native methods but no native static void registerNatives()")
	}
}
