package main

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jchantrell/doomarc/internal/archive"
	"github.com/jchantrell/doomarc/internal/utils"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the visible lumps of an archive chain",
	Long: `List prints every lump visible in the chain after filtering by the
identified game, one row per archive entry. Later archives override earlier
ones when lumps share a namespace and name. With --tree the merged view is
printed instead, one path per effective lump.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		nameGlob, err := cmd.Flags().GetString("name")
		if err != nil {
			return fmt.Errorf("failed to get name flag: %w", err)
		}
		namespaceGlob, err := cmd.Flags().GetString("namespace")
		if err != nil {
			return fmt.Errorf("failed to get namespace flag: %w", err)
		}
		tree, err := cmd.Flags().GetBool("tree")
		if err != nil {
			return fmt.Errorf("failed to get tree flag: %w", err)
		}

		chain, _, err := openChain(iwadPath, pwadPaths)
		if err != nil {
			return err
		}
		defer closeChain(chain)

		if tree {
			return printTree(chain)
		}

		fmt.Printf("%-20s %-16s %-10s %-5s %-10s %-28s %10s\n",
			"Archive", "Namespace", "Name", "Ext", "Type", "Filter", "Size")
		var total int64
		headers := chain.Headers(nameGlob, namespaceGlob)
		for _, h := range headers {
			total += h.Size
			fmt.Printf("%-20s %-16s %-10s %-5s %-10s %-28s %10s\n",
				utils.Truncate(filepath.Base(h.Owner.Path()), 20),
				h.Namespace, h.Name, h.Extension, h.Type,
				utils.Truncate(h.Filter, 28), humanize.Bytes(uint64(h.Size)))
		}
		fmt.Printf("\n%s lumps, %s\n", humanize.Comma(int64(len(headers))), humanize.Bytes(uint64(total)))
		return nil
	},
}

func printTree(chain *archive.Archives) error {
	return fs.WalkDir(archive.NewFS(chain), ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == "." {
			return nil
		}
		if d.IsDir() {
			fmt.Println(p + "/")
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%s\n", p, humanize.Bytes(uint64(info.Size())))
		return nil
	})
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().String("name", "*", "lump name glob")
	listCmd.Flags().String("namespace", "*", "namespace glob")
	listCmd.Flags().Bool("tree", false, "print the merged chain as a file tree")
}
