package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maja42/resourcelib"
)

var (
	generateType   string
	generateSimple bool
	generateOutDir string
)

func init() {
	generateCmd.Flags().StringVarP(&generateType, "type", "t", "", "resource type to generate (eg. TEMP)")
	generateCmd.Flags().BoolVar(&generateSimple, "simple", false, "ignore unknown fields in the input")
	generateCmd.Flags().StringVarP(&generateOutDir, "out", "o", "", "output directory (default: next to the input)")
	_ = generateCmd.MarkFlagRequired("type")
}

var generateCmd = &cobra.Command{
	Use:   "generate files...",
	Short: "Generate binary resources from JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gen := app.lib.GeneratorFor(generateType)
		if gen == nil {
			return fmt.Errorf("%w: %q", resourcelib.ErrUnsupportedType, generateType)
		}

		ext := "." + strings.ToLower(generateType)
		jobs := fileJobs(args, generateType, generateOutDir, ext)
		n, err := runJobs(cmd.Context(), jobs, app.cfg.CLI.Workers, func(_ job, doc []byte) ([]byte, error) {
			return resourcelib.GenerateBytes(gen, doc, generateSimple)
		})
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), failure("generated %d of %d resources", n, len(jobs)))
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), success("generated %d resources", n))
		return nil
	},
}
