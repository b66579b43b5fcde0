package gen

import (
	"fmt"

	"github.com/benn-herrera/jnihgen/jni"
	"github.com/benn-herrera/jnihgen/model"
	"github.com/benn-herrera/jnihgen/validate"
)

// Artifact is the complete output for one class.
type Artifact struct {
	Header      string
	Signatures  string
	Diagnostics []validate.Diagnostic
}

// GenerateClass renders both headers for c and collects its native-method
// diagnostics. Validation does not gate emission: an invalid method still gets
// its prototype. Local classes produce an empty Artifact.
func GenerateClass(c *model.ClassDecl, types jni.Assignability, windows bool) Artifact {
	if c.IsLocal() {
		return Artifact{}
	}
	result := &validate.Result{}
	// Result never refuses a diagnostic.
	_, _ = validate.NativeMethods(c, result)
	return Artifact{
		Header:      WriteHeader(c, types, windows),
		Signatures:  WriteSignatureDefs(c),
		Diagnostics: result.Diagnostics,
	}
}

// Run executes the named generators in order and returns their combined output.
func Run(ctx *Context, names []string) ([]*OutputFile, error) {
	var all []*OutputFile
	for _, name := range names {
		g, ok := Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown generator %q", name)
		}
		files, err := g.Generate(ctx)
		if err != nil {
			return nil, fmt.Errorf("generator %s failed: %w", name, err)
		}
		all = append(all, files...)
	}
	return all, nil
}
