package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/maja42/resourcelib"
)

var (
	structType string
	structOut  string
)

func init() {
	structCmd.PersistentFlags().StringVarP(&structType, "type", "t", "", "game structure type (eg. SVector3)")
	_ = structCmd.MarkPersistentFlagRequired("type")
	structFromJSONCmd.Flags().StringVarP(&structOut, "out", "o", "", "output file (required)")
	_ = structFromJSONCmd.MarkFlagRequired("out")

	structCmd.AddCommand(structToJSONCmd)
	structCmd.AddCommand(structFromJSONCmd)
}

var structCmd = &cobra.Command{
	Use:   "struct",
	Short: "Convert game structures",
}

var structToJSONCmd = &cobra.Command{
	Use:   "to-json file",
	Short: "Print the JSON representation of a native game structure",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		js, err := app.lib.GameStructToJSON(structType, data)
		if err != nil {
			return err
		}
		defer app.lib.FreeJSONString(js)

		_, err = fmt.Fprintln(cmd.OutOrStdout(), js.String())
		return err
	},
}

var structFromJSONCmd = &cobra.Command{
	Use:   "from-json file",
	Short: "Write the native representation of a game structure given as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		size, err := resourcelib.GameStructSize(structType)
		if err != nil {
			return err
		}
		target := make([]byte, size)
		if err := app.lib.JSONToGameStruct(structType, doc, target); err != nil {
			return err
		}
		if err := os.WriteFile(structOut, target, 0o644); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), success("wrote %s (%d bytes)", structOut, size))
		return nil
	},
}
