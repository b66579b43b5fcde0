package resolver

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ClasspathEnv names the environment variable consulted when no --classpath flag is given.
const ClasspathEnv = "JNIHGEN_CLASSPATH"

// ErrClassNotFound is returned by Classpath.Find when no entry holds the class.
var ErrClassNotFound = errors.New("class not found on classpath")

// Classpath is an ordered list of directories and .jar archives.
type Classpath struct {
	Entries []string
}

// ResolveClasspath builds the class path using the resolution order:
// 1. Explicit flag value (if non-empty)
// 2. JNIHGEN_CLASSPATH environment variable
// 3. Empty class path
// Entries are separated by the platform list separator and must exist.
func ResolveClasspath(flagValue string) (*Classpath, error) {
	source := "--classpath"
	value := flagValue
	if value == "" {
		source = ClasspathEnv
		value = os.Getenv(ClasspathEnv)
	}
	if value == "" {
		return &Classpath{}, nil
	}

	cp := &Classpath{}
	for _, entry := range filepath.SplitList(value) {
		if entry == "" {
			continue
		}
		if _, err := os.Stat(entry); err != nil {
			return nil, fmt.Errorf("classpath entry from %s not found: %s", source, entry)
		}
		cp.Entries = append(cp.Entries, entry)
	}
	return cp, nil
}

// Find returns the bytes of the class with the given internal name
// ("com/example/Foo") from the first entry that holds it, plus a description
// of where it was found.
func (cp *Classpath) Find(internalName string) ([]byte, string, error) {
	rel := internalName + ".class"
	for _, entry := range cp.Entries {
		if strings.HasSuffix(strings.ToLower(entry), ".jar") {
			data, err := readFromJar(entry, rel)
			if errors.Is(err, ErrClassNotFound) {
				continue
			}
			if err != nil {
				return nil, "", err
			}
			return data, entry + "!/" + rel, nil
		}

		path := filepath.Join(entry, filepath.FromSlash(rel))
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, "", fmt.Errorf("reading %s: %w", path, err)
		}
		return data, path, nil
	}
	return nil, "", fmt.Errorf("%s: %w", internalName, ErrClassNotFound)
}

func readFromJar(jarPath, name string) ([]byte, error) {
	zr, err := zip.OpenReader(jarPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", jarPath, err)
	}
	defer zr.Close()

	f, err := zr.Open(name)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrClassNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s in %s: %w", name, jarPath, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s in %s: %w", name, jarPath, err)
	}
	return data, nil
}
