package gen

import (
	"runtime"

	"github.com/benn-herrera/jnihgen/jni"
	"github.com/benn-herrera/jnihgen/model"
)

// Context holds everything a generator needs to produce output.
type Context struct {
	Classes   []*model.ClassDecl
	Options   model.GenerateOptions
	Types     jni.Assignability // nil means nominal matching only
	Windows   bool              // long constants use the i64 suffix
	OutputDir string
	Verbose   bool
	DryRun    bool
}

// NewContext creates a new generation context. The platform option is resolved
// here once for the whole run.
func NewContext(classes []*model.ClassDecl, opts model.GenerateOptions, types jni.Assignability, outputDir string) *Context {
	return &Context{
		Classes:   classes,
		Options:   opts,
		Types:     types,
		Windows:   IsWindows(opts.Platform),
		OutputDir: outputDir,
	}
}

// IsWindows maps a platform option to the long-suffix choice.
func IsWindows(platform string) bool {
	switch platform {
	case model.PlatformWindows:
		return true
	case model.PlatformUnix:
		return false
	default:
		return runtime.GOOS == "windows"
	}
}

// Targets returns the classes that get per-class headers, in input order.
// Local and anonymous classes have no stable JNI name and are skipped, as are
// classes loaded only to complete the hierarchy.
func (ctx *Context) Targets() []*model.ClassDecl {
	var out []*model.ClassDecl
	for _, c := range ctx.Classes {
		if c.IsLocal() || c.ReferenceOnly {
			continue
		}
		out = append(out, c)
	}
	return out
}

// FileStem is the per-class output name without extension.
func (ctx *Context) FileStem(c *model.ClassDecl) string {
	stem := c.Header
	if stem == "" {
		stem = jni.ClassMacroName(c)
	}
	return ctx.Options.FilePrefix + stem
}

func (ctx *Context) HeaderFileName(c *model.ClassDecl) string {
	return ctx.FileStem(c) + ".h"
}

func (ctx *Context) SigsFileName(c *model.ClassDecl) string {
	return ctx.FileStem(c) + "_sigs.h"
}

func (ctx *Context) StubFileName(c *model.ClassDecl) string {
	return ctx.FileStem(c) + "_impl.c"
}
