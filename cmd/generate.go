package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benn-herrera/jnihgen/gen"
)

var (
	genOutput    string
	genClasspath string
	genSet       []string
	genDryRun    bool
	genClean     bool
	genNoOnLoad  bool
	genStubs     bool
	genOnly      []string
)

var generateCmd = &cobra.Command{
	Use:   "generate [inputs...]",
	Short: "Generate JNI headers and RegisterNatives signature tables",
	Long: "Generates one JNI header and one signature header per class. Inputs are YAML " +
		"declaration files, .class files, .jar archives or directories of class files.",
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "./generated", "Output directory")
	generateCmd.Flags().StringVar(&genClasspath, "classpath", "", "Class path for resolving superclasses (default $JNIHGEN_CLASSPATH)")
	generateCmd.Flags().StringArrayVar(&genSet, "set", nil, "Override an option, as key=value (repeatable)")
	generateCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "Show what would be generated without writing")
	generateCmd.Flags().BoolVar(&genClean, "clean", false, "Remove previously generated files first")
	generateCmd.Flags().BoolVar(&genNoOnLoad, "no-onload", false, "Skip the onload registration header")
	generateCmd.Flags().BoolVar(&genStubs, "stubs", false, "Also write C implementation stubs for classes that have none yet")
	generateCmd.Flags().StringSliceVar(&genOnly, "only", nil, "Run only these generators (comma-separated)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if !quiet {
		fmt.Printf("Generating from %d input(s)\n", len(args))
	}

	p, err := loadProject(args, genClasspath, genSet)
	if err != nil {
		return err
	}

	if genClean {
		if !quiet {
			fmt.Printf("Cleaning %s\n", genOutput)
		}
		if !genDryRun {
			os.RemoveAll(genOutput)
		}
	}

	ctx := gen.NewContext(p.Classes, p.Options, p.Hierarchy, genOutput)
	ctx.Verbose = verbose
	ctx.DryRun = genDryRun

	generatorNames := gen.DefaultGenerators(!genNoOnLoad)
	if genStubs {
		generatorNames = appendUnique(generatorNames, "jnistubs")
	}
	if len(genOnly) > 0 {
		generatorNames = nil
		for _, name := range genOnly {
			if _, ok := gen.Get(name); !ok {
				return fmt.Errorf("unknown generator %q (available: %s)", name, strings.Join(gen.All(), ", "))
			}
			generatorNames = appendUnique(generatorNames, name)
		}
	}

	var allFiles []*gen.OutputFile
	for _, name := range generatorNames {
		if verbose {
			fmt.Printf("  Running generator: %s\n", name)
		}
		files, err := gen.Run(ctx, []string{name})
		if err != nil {
			return err
		}
		allFiles = append(allFiles, files...)
	}

	var written, skipped int
	for _, f := range allFiles {
		outPath := filepath.Join(genOutput, f.Path)

		// Scaffold files are only written when they don't already exist.
		if f.Scaffold {
			if _, err := os.Stat(outPath); err == nil {
				skipped++
				if verbose {
					fmt.Printf("  Scaffold exists, skipped: %s\n", outPath)
				}
				continue
			}
		}

		if genDryRun {
			fmt.Printf("  Would write: %s\n", outPath)
			continue
		}

		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", outPath, err)
		}
		if err := os.WriteFile(outPath, f.Content, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}

		written++
		log.Debugf("wrote %s", outPath)
		if verbose {
			fmt.Printf("  Wrote: %s\n", outPath)
		}
	}

	if !quiet {
		skippedMsg := ""
		if skipped > 0 {
			skippedMsg = fmt.Sprintf(", %d scaffold file(s) preserved", skipped)
		}
		fmt.Printf("Generated %d files in %s%s\n", written, genOutput, skippedMsg)
	}

	if !p.Result.IsValid() {
		return fmt.Errorf("%d declaration error(s):\n%s", len(p.Result.Errors()), p.Result.Error())
	}
	return nil
}

func appendUnique(slice []string, s string) []string {
	for _, existing := range slice {
		if existing == s {
			return slice
		}
	}
	return append(slice, s)
}
