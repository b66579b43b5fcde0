package cmd

import (
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/benn-herrera/jnihgen/loader"
	"github.com/benn-herrera/jnihgen/model"
	"github.com/benn-herrera/jnihgen/resolver"
	"github.com/benn-herrera/jnihgen/validate"
)

var log = commonlog.GetLogger("jnihgen.cmd")

// project is the linked and checked input of one run.
type project struct {
	Classes   []*model.ClassDecl
	Options   model.GenerateOptions
	Hierarchy *resolver.Hierarchy
	Result    *validate.Result
}

// loadProject reads the inputs, applies option overrides, links the class
// hierarchy and runs the declaration checks. Diagnostics are logged but do not
// fail the load.
func loadProject(inputs []string, classpath string, overrides []string) (*project, error) {
	cp, err := resolver.ResolveClasspath(classpath)
	if err != nil {
		return nil, err
	}
	if len(cp.Entries) > 0 {
		log.Debugf("class path: %v", cp.Entries)
	}

	in, err := loader.LoadInputs(inputs, cp)
	if err != nil {
		return nil, fmt.Errorf("loading inputs: %w", err)
	}
	opts, err := loader.ResolveOptions(in.Options, overrides)
	if err != nil {
		return nil, err
	}

	h, err := resolver.Link(in.Classes)
	if err != nil {
		return nil, fmt.Errorf("linking classes: %w", err)
	}

	result := validate.Validate(in.Classes, opts)
	if err := result.Forward(logReporter{}); err != nil {
		return nil, err
	}
	return &project{Classes: in.Classes, Options: opts, Hierarchy: h, Result: result}, nil
}

// logReporter writes diagnostics to the command logger.
type logReporter struct{}

func (logReporter) Report(d validate.Diagnostic) error {
	switch d.Severity {
	case validate.SeverityError:
		log.Errorf("%s: %s", d.Path, d.Message)
	default:
		log.Warningf("%s: %s", d.Path, d.Message)
	}
	return nil
}
