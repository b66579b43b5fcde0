package loader

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/benn-herrera/jnihgen/classfile"
	"github.com/benn-herrera/jnihgen/model"
)

// classInput is a parsed class file awaiting name resolution.
type classInput struct {
	internal string
	nesting  classfile.Nesting
	super    string
	origin   string
	decl     *model.ClassDecl
}

// classSet collects class files keyed by internal name. Qualified names are
// assigned once every input is known, since a nested class takes its name
// from its enclosing class.
type classSet struct {
	byInternal map[string]*classInput
	order      []*classInput
}

func newClassSet() *classSet {
	return &classSet{byInternal: map[string]*classInput{}}
}

// inputRole decides whether a class read from a file becomes a generation target.
type inputRole int

const (
	roleTarget      inputRole = iota // named explicitly, always generated
	roleIfNative                     // found in a directory or jar, generated when it declares natives
	roleReference                    // fetched from the class path for linkage only
)

func (s *classSet) add(data []byte, origin string, role inputRole) error {
	cf, err := classfile.Parse(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%s: %w", origin, err)
	}
	in, err := convertClass(cf)
	if err != nil {
		return fmt.Errorf("%s: %w", origin, err)
	}
	if prev, ok := s.byInternal[in.internal]; ok {
		log.Warningf("class %s from %s shadowed by %s", in.internal, origin, prev.origin)
		return nil
	}
	in.origin = origin
	switch role {
	case roleIfNative:
		in.decl.ReferenceOnly = len(in.decl.NativeMethods()) == 0
	case roleReference:
		in.decl.ReferenceOnly = true
	}
	log.Debugf("read class %s from %s", in.internal, origin)
	s.byInternal[in.internal] = in
	s.order = append(s.order, in)
	return nil
}

// addPath reads a .class file, a .jar archive or every class file under a directory.
func (s *classSet) addPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("reading class input: %w", err)
	}
	switch {
	case info.IsDir():
		return s.addDir(path)
	case isJar(path):
		return s.addJar(path)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading class input: %w", err)
		}
		return s.add(data, path, roleTarget)
	}
}

func (s *classSet) addDir(dir string) error {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isClassFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking %s: %w", dir, err)
	}
	sort.Strings(files)
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("reading class input: %w", err)
		}
		if err := s.add(data, f, roleIfNative); err != nil {
			return err
		}
	}
	return nil
}

func (s *classSet) addJar(path string) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer zr.Close()

	files := make([]*zip.File, 0, len(zr.File))
	for _, f := range zr.File {
		if !f.FileInfo().IsDir() && isClassFile(f.Name) {
			files = append(files, f)
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	for _, f := range files {
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("opening %s!/%s: %w", path, f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return fmt.Errorf("reading %s!/%s: %w", path, f.Name, err)
		}
		if err := s.add(data, path+"!/"+f.Name, roleIfNative); err != nil {
			return err
		}
	}
	return nil
}

// qualifiedName gives the dotted source name of a class: nested classes are
// named through their enclosing class, other names map '/' to '.'. A '$' in a
// class that was not loaded is taken as a nesting separator.
func (s *classSet) qualifiedName(internal string) string {
	seen := map[string]bool{}
	var walk func(string) string
	walk = func(name string) string {
		in, ok := s.byInternal[name]
		if !ok {
			return strings.ReplaceAll(classfile.InternalToSourceName(name), "$", ".")
		}
		if in.nesting.Outer == "" || in.nesting.Local || seen[name] {
			return classfile.InternalToSourceName(name)
		}
		seen[name] = true
		return walk(in.nesting.Outer) + "." + in.nesting.InnerName
	}
	return walk(internal)
}

// classes assigns names and returns the declarations in read order.
func (s *classSet) classes() []*model.ClassDecl {
	out := make([]*model.ClassDecl, 0, len(s.order))
	for _, in := range s.order {
		c := in.decl
		c.Name = s.qualifiedName(in.internal)
		if c.Scope == model.ScopeNested {
			c.Enclosing = s.qualifiedName(in.nesting.Outer)
		}
		if in.super != "" {
			c.Extends = s.qualifiedName(in.super)
		}
		out = append(out, c)
	}
	return out
}

// missingSupers lists superclass internal names not in the set.
func (s *classSet) missingSupers() []string {
	var out []string
	for _, in := range s.order {
		if in.super == "" {
			continue
		}
		if _, ok := s.byInternal[in.super]; !ok {
			out = append(out, in.super)
		}
	}
	return out
}

func convertClass(cf *classfile.ClassFile) (*classInput, error) {
	cp := cf.ConstantPool
	in := &classInput{
		internal: cf.ClassName(),
		nesting:  cf.Nesting(),
		super:    cf.SuperClassName(),
		decl:     &model.ClassDecl{Scope: model.ScopeTopLevel},
	}
	if in.internal == "" {
		return nil, fmt.Errorf("missing this_class name")
	}
	switch {
	case in.nesting.Local:
		in.decl.Scope = model.ScopeLocal
	case in.nesting.Outer != "":
		in.decl.Scope = model.ScopeNested
	}

	for i := range cf.Fields {
		f := &cf.Fields[i]
		if f.AccessFlags.IsSynthetic() {
			continue
		}
		ft, err := classfile.ParseFieldDescriptor(f.Descriptor(cp))
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name(cp), err)
		}
		fd := model.FieldDecl{
			Name:      f.Name(cp),
			Type:      typeRef(ft),
			Modifiers: modifiers(f.AccessFlags),
		}
		if v, ok := f.ConstantValue(cp); ok {
			fd.Value = constantValue(fd.Type, v)
		}
		in.decl.Fields = append(in.decl.Fields, fd)
	}

	for i := range cf.Methods {
		m := &cf.Methods[i]
		name := m.Name(cp)
		if m.AccessFlags.IsSynthetic() || m.AccessFlags.IsBridge() || strings.HasPrefix(name, "<") {
			continue
		}
		md, err := classfile.ParseMethodDescriptor(m.Descriptor(cp))
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", name, err)
		}
		decl := model.MethodDecl{
			Name:           name,
			Returns:        typeRef(md.ReturnType),
			Modifiers:      modifiers(m.AccessFlags),
			FastNative:     m.HasAnnotation(classfile.FastNativeAnnotation),
			CriticalNative: m.HasAnnotation(classfile.CriticalNativeAnnotation),
		}
		named := len(m.ParameterNames) == len(md.Parameters)
		for j, p := range md.Parameters {
			pd := model.ParameterDecl{Type: typeRef(p)}
			if named {
				pd.Name = m.ParameterNames[j]
			}
			decl.Parameters = append(decl.Parameters, pd)
		}
		in.decl.Methods = append(in.decl.Methods, decl)
	}
	return in, nil
}

var baseTypes = map[byte]model.PrimitiveKind{
	'V': model.Void,
	'Z': model.Boolean,
	'B': model.Byte,
	'C': model.Char,
	'S': model.Short,
	'I': model.Int,
	'J': model.Long,
	'F': model.Float,
	'D': model.Double,
}

// typeRef maps a descriptor type to the model. Declared names keep '$' so
// descriptors of nested types come out in binary form.
func typeRef(ft classfile.FieldType) model.TypeRef {
	var t model.TypeRef
	if ft.ClassName != "" {
		t = model.Declared(classfile.InternalToSourceName(ft.ClassName))
	} else {
		t = model.Prim(baseTypes[ft.BaseType])
	}
	for i := 0; i < ft.ArrayDepth; i++ {
		t = model.ArrayOf(t)
	}
	return t
}

func modifiers(flags classfile.AccessFlags) model.Modifiers {
	var mods model.Modifiers
	add := func(ok bool, m model.Modifier) {
		if ok {
			mods = append(mods, m)
		}
	}
	add(flags.IsPublic(), model.ModPublic)
	add(flags.IsProtected(), model.ModProtected)
	add(flags.IsPrivate(), model.ModPrivate)
	add(flags.IsStatic(), model.ModStatic)
	add(flags.IsFinal(), model.ModFinal)
	add(flags.IsNative(), model.ModNative)
	add(flags.IsSynchronized(), model.ModSynchronized)
	add(flags.IsAbstract(), model.ModAbstract)
	return mods
}

// constantValue adapts a pool constant to the field type. Boolean constants
// are stored as integers in class files.
func constantValue(t model.TypeRef, v any) any {
	if t.Kind == model.KindPrimitive && t.Primitive == model.Boolean {
		if n, ok := v.(int32); ok {
			return n != 0
		}
	}
	return v
}

func isJar(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".jar")
}

func isClassFile(path string) bool {
	base := filepath.Base(path)
	return strings.HasSuffix(base, ".class") && base != "module-info.class" && base != "package-info.class"
}
