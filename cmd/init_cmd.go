package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benn-herrera/jnihgen/model"
)

var (
	initName    string
	initPackage string
	initOutput  string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold a starter class declaration file",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().StringVarP(&initName, "name", "n", "NativeLib", "Class simple name")
	initCmd.Flags().StringVarP(&initPackage, "package", "p", "com.example", "Java package")
	initCmd.Flags().StringVarP(&initOutput, "output", "o", ".", "Output directory")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	className := initName
	if initPackage != "" {
		className = initPackage + "." + initName
	}
	if !model.IsQualifiedName(className) {
		return fmt.Errorf("invalid class name %q", className)
	}

	if !quiet {
		fmt.Printf("Initializing declarations for %s in %s\n", className, initOutput)
	}
	if err := os.MkdirAll(initOutput, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	declPath := filepath.Join(initOutput, strings.ToLower(initName)+".yaml")
	if _, err := os.Stat(declPath); err == nil {
		return fmt.Errorf("%s already exists", declPath)
	}

	decl := fmt.Sprintf(`options:
  platform: auto
  require_register_natives: true

classes:
  - name: %s
    fields:
      - name: VERSION
        type: int
        modifiers: [public, static, final]
        value: 1
    methods:
      - name: registerNatives
        modifiers: [private, static, native]
      - name: open
        modifiers: [static, native]
        parameters:
          - name: path
            type: java.lang.String
        returns: long
      - name: close
        modifiers: [static, native]
        parameters:
          - name: handle
            type: long
      - name: checksum
        modifiers: [static, native]
        critical_native: true
        parameters:
          - name: seed
            type: int
        returns: int
`, className)

	if err := os.WriteFile(declPath, []byte(decl), 0644); err != nil {
		return fmt.Errorf("writing declarations: %w", err)
	}

	if !quiet {
		fmt.Printf("Created:\n")
		fmt.Printf("  %s\n", declPath)
		fmt.Printf("\nNext: jnihgen generate %s\n", declPath)
	}
	return nil
}
