package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	valClasspath string
	valSet       []string
	valStrict    bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [inputs...]",
	Short: "Check class declarations without generating",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&valClasspath, "classpath", "", "Class path for resolving superclasses (default $JNIHGEN_CLASSPATH)")
	validateCmd.Flags().StringArrayVar(&valSet, "set", nil, "Override an option, as key=value (repeatable)")
	validateCmd.Flags().BoolVar(&valStrict, "strict", false, "Treat warnings as errors")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if !quiet {
		fmt.Printf("Validating %d input(s)\n", len(args))
	}

	p, err := loadProject(args, valClasspath, valSet)
	if err != nil {
		return err
	}

	if verbose {
		var targets, natives int
		for _, c := range p.Classes {
			if c.IsLocal() || c.ReferenceOnly {
				continue
			}
			targets++
			natives += len(c.NativeMethods())
		}
		fmt.Printf("  Classes: %d (%d generated)\n", len(p.Classes), targets)
		fmt.Printf("  Native methods: %d\n", natives)
		fmt.Printf("  Platform: %s\n", p.Options.Platform)
	}

	if !p.Result.IsValid() {
		return fmt.Errorf("validation failed:\n%s", p.Result.Error())
	}
	if warnings := len(p.Result.Diagnostics); valStrict && warnings > 0 {
		return fmt.Errorf("validation failed: %d warning(s) in strict mode", warnings)
	}

	if !quiet {
		fmt.Println("Validation passed.")
	}
	return nil
}
