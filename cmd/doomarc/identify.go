package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jchantrell/doomarc/internal/info"
)

var identifyCmd = &cobra.Command{
	Use:   "identify",
	Short: "Identify the IWAD of a chain",
	Long: `Identify matches the IWAD against the IWADINFO of the engine archive,
or against its own IWADINFO when it carries one, and prints the matching
IWad block.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		chain, id, err := openChain(iwadPath, pwadPaths)
		if err != nil {
			return err
		}
		defer closeChain(chain)

		ctx := chain.Context()
		fmt.Printf("// game %s, gametype %s\n", ctx.Game, ctx.GameType)
		fmt.Print(info.WrapIWad(id).String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(identifyCmd)
}
