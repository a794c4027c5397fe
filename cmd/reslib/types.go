package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maja42/resourcelib"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the supported resource types and game structures",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		arr := app.lib.SupportedResourceTypes()
		defer app.lib.FreeSupportedResourceTypes(arr)

		fmt.Fprintln(out, heading("Resource types (%s):", app.lib.Game()))
		for _, name := range arr.All() {
			fmt.Fprintf(out, "  %s\n", name)
		}

		fmt.Fprintln(out, heading("Game structures:"))
		for _, name := range resourcelib.GameStructTypes() {
			size, _ := resourcelib.GameStructSize(name)
			fmt.Fprintf(out, "  %s %s\n", name, faint("(%d bytes)", size))
		}
		return nil
	},
}
