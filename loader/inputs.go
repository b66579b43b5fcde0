package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/benn-herrera/jnihgen/model"
	"github.com/benn-herrera/jnihgen/resolver"
)

var log = commonlog.GetLogger("jnihgen.loader")

// Inputs holds the classes and options read from the command line inputs.
type Inputs struct {
	Classes []*model.ClassDecl
	// Options merges the options blocks of every declaration file, in order.
	// Nil when no file carries one.
	Options *model.GenerateOptions
}

// IsDeclarationFile reports whether path names a YAML declaration file.
func IsDeclarationFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// LoadInputs reads YAML declaration files, .class files, .jar archives and
// directories of class files. Superclasses that none of the inputs define are
// looked up on cp, when given, and added as reference-only classes.
func LoadInputs(paths []string, cp *resolver.Classpath) (*Inputs, error) {
	if len(paths) == 0 {
		return nil, errors.New("no inputs given")
	}

	in := &Inputs{}
	set := newClassSet()
	for _, p := range paths {
		if !IsDeclarationFile(p) {
			if err := set.addPath(p); err != nil {
				return nil, err
			}
			continue
		}
		decl, err := LoadDeclarations(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		log.Debugf("read %d classes from %s", len(decl.Classes), p)
		if decl.Options != nil {
			merged := model.GenerateOptions{}.Merge(in.Options).Merge(decl.Options)
			in.Options = &merged
		}
		in.Classes = append(in.Classes, decl.ClassPtrs()...)
	}

	if cp != nil && len(cp.Entries) > 0 {
		if err := fetchSuperclasses(in.Classes, set, cp); err != nil {
			return nil, err
		}
	}
	in.Classes = append(in.Classes, set.classes()...)
	return in, nil
}

// fetchSuperclasses pulls missing superclasses from cp until every chain ends
// at a class that is loaded or not on the class path.
func fetchSuperclasses(declared []*model.ClassDecl, set *classSet, cp *resolver.Classpath) error {
	known := map[string]bool{}
	for _, c := range declared {
		known[c.Name] = true
	}
	var pending []string
	for _, c := range declared {
		if c.Extends != "" && !known[c.Extends] {
			pending = append(pending, strings.ReplaceAll(c.Extends, ".", "/"))
		}
	}

	tried := map[string]bool{}
	for {
		pending = append(pending, set.missingSupers()...)
		fetched := false
		for _, name := range pending {
			if tried[name] {
				continue
			}
			tried[name] = true
			data, origin, err := cp.Find(name)
			if errors.Is(err, resolver.ErrClassNotFound) {
				log.Debugf("superclass %s not on class path", name)
				continue
			}
			if err != nil {
				return err
			}
			if err := set.add(data, origin, roleReference); err != nil {
				return err
			}
			fetched = true
		}
		if !fetched {
			return nil
		}
		pending = pending[:0]
	}
}
