package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benn-herrera/jnihgen/jni"
)

var mangleContext string

var mangleCmd = &cobra.Command{
	Use:   "mangle [names...]",
	Short: "Print the JNI encoding of each name",
	Long: "Encodes names the way generated headers do. Contexts: jni (exported symbol " +
		"parts), class (macro and guard names), fieldstub, signature.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := jni.ParseEncodeContext(mangleContext)
		if err != nil {
			return err
		}
		for _, name := range args {
			fmt.Println(jni.Encode(name, ctx))
		}
		return nil
	},
}

func init() {
	mangleCmd.Flags().StringVarP(&mangleContext, "context", "c", "jni", "Encoding context (jni, class, fieldstub, signature)")
	rootCmd.AddCommand(mangleCmd)
}
