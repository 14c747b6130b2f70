package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jchantrell/doomarc/internal/export"
)

var texturesCmd = &cobra.Command{
	Use:   "textures",
	Short: "Print the texture definitions of a chain in TEXTURES syntax",
	Long: `Textures converts the TEXTURE1/TEXTURE2 tables of the chain to ZDoom
TEXTURES definitions. With --noncomposites every sprite, graphic, flat,
texture and hires image also gets a patchless definition; a texture replaces
a sprite, graphic or flat of the same name.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		nonComposites, err := cmd.Flags().GetBool("noncomposites")
		if err != nil {
			return fmt.Errorf("failed to get noncomposites flag: %w", err)
		}

		chain, _, err := openChain(iwadPath, pwadPaths)
		if err != nil {
			return err
		}
		defer closeChain(chain)

		textures, err := export.Textures(chain, export.TextureOptions{
			NonComposites: nonComposites,
			Hacks:         cfg.Hacks,
		})
		if err != nil {
			return fmt.Errorf("reading textures: %w", err)
		}
		for _, t := range textures {
			fmt.Println(t.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(texturesCmd)
	texturesCmd.Flags().Bool("noncomposites", false, "include patchless definitions for plain images")
}
