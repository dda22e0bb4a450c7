// Package cli — library.go implements the "cabinetgen library" command
// group for the remote hardware block library: info, list, fetch and
// clear-cache.
//
// The library location defaults to the built-in catalog and can be
// overridden with CABINETGEN_CATALOG_URL, CABINETGEN_BLOCKS_URL and
// CABINETGEN_CACHE_DIR, or with the flags below (flags win).
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/cabinetgen/internal/library"
	"github.com/shinji-kodama/cabinetgen/internal/model"
)

// libraryFlags holds the location overrides shared by the library
// subcommands.
type libraryFlags struct {
	catalogURL string
	blocksURL  string
	cacheDir   string
}

// client builds a library client from the environment plus any flags.
func (f *libraryFlags) client() *library.Client {
	cfg := library.ConfigFromEnv()
	if f.catalogURL != "" {
		cfg.CatalogURL = f.catalogURL
	}
	if f.blocksURL != "" {
		cfg.BlocksBaseURL = f.blocksURL
	}
	if f.cacheDir != "" {
		cfg.CacheDir = f.cacheDir
	}
	VerboseLog("Block library: catalog=%s blocks=%s cache=%s", cfg.CatalogURL, cfg.BlocksBaseURL, cfg.CacheDir)
	return library.NewClient(cfg, logger)
}

// NewLibraryCommand creates the "library" cobra command group.
func NewLibraryCommand() *cobra.Command {
	flags := &libraryFlags{}

	cmd := &cobra.Command{
		Use:   "library",
		Short: "Browse and download hardware blocks",
		Long: `Browse the remote hardware block library and manage its local cache.

Examples:
  cabinetgen library info
  cabinetgen library list --category hinges
  cabinetgen library fetch hinges_blum_clip_top
  cabinetgen library clear-cache`,
	}

	cmd.PersistentFlags().StringVar(&flags.catalogURL, "catalog-url", "", "Catalog URL (env "+library.EnvCatalogURL+")")
	cmd.PersistentFlags().StringVar(&flags.blocksURL, "blocks-url", "", "Blocks base URL (env "+library.EnvBlocksURL+")")
	cmd.PersistentFlags().StringVar(&flags.cacheDir, "cache-dir", "", "Local cache directory (env "+library.EnvCacheDir+")")

	cmd.AddCommand(newLibraryInfoCommand(flags))
	cmd.AddCommand(newLibraryListCommand(flags))
	cmd.AddCommand(newLibraryFetchCommand(flags))
	cmd.AddCommand(newLibraryClearCacheCommand(flags))

	return cmd
}

func newLibraryInfoCommand(flags *libraryFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show library name, version, author and block count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := flags.client()
			cat, err := c.LoadCatalog(cmd.Context())
			if err != nil {
				return model.WrapDomainError("failed to load block library", err)
			}
			return printLibraryInfo(cmd.OutOrStdout(), c, cat)
		},
	}
}

func printLibraryInfo(w io.Writer, c *library.Client, cat *library.Catalog) error {
	info := cat.Info.WithDefaults()

	if IsJSONOutput() {
		out := struct {
			library.LibraryInfo
			Blocks     int    `json:"blocks"`
			CatalogURL string `json:"catalogUrl"`
		}{info, len(cat.Blocks), c.Config().CatalogURL}
		return writeJSON(w, out)
	}

	fmt.Fprintf(w, "Name:         %s\n", info.Name)
	fmt.Fprintf(w, "Version:      %s\n", info.Version)
	fmt.Fprintf(w, "Author:       %s\n", info.Author)
	fmt.Fprintf(w, "Last Updated: %s\n", info.Updated)
	fmt.Fprintf(w, "Total Blocks: %d\n", len(cat.Blocks))
	fmt.Fprintf(w, "Catalog:      %s\n", c.Config().CatalogURL)
	return nil
}

func newLibraryListCommand(flags *libraryFlags) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List blocks grouped by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := flags.client().LoadCatalog(cmd.Context())
			if err != nil {
				return model.WrapDomainError("failed to load block library", err)
			}

			groups := cat.ByCategory()
			if category != "" {
				filtered := make([]library.Category, 0, 1)
				for _, g := range groups {
					if g.Name == category {
						filtered = append(filtered, g)
					}
				}
				groups = filtered
			}
			return printLibraryList(cmd.OutOrStdout(), groups)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only show this category")
	return cmd
}

// printLibraryList prints blocks grouped by category:
//
//	CATEGORY  ID                    NAME                 DESCRIPTION
//	hinges    hinges_blum_clip_top  Blum Clip Top Hinge  110 degree full overlay
func printLibraryList(w io.Writer, groups []library.Category) error {
	if IsJSONOutput() {
		if groups == nil {
			groups = []library.Category{}
		}
		return writeJSON(w, struct {
			Categories []library.Category `json:"categories"`
		}{groups})
	}

	if len(groups) == 0 {
		fmt.Fprintln(w, "No blocks found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tID\tNAME\tDESCRIPTION")
	for _, g := range groups {
		for _, b := range g.Blocks {
			desc := b.Description
			if desc == "" {
				desc = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", g.Name, b.BlockID(), b.Name, desc)
		}
	}
	return tw.Flush()
}

func newLibraryFetchCommand(flags *libraryFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <block>",
		Short: "Download a block into the local cache",
		Long:  "Download a block, given by ID or name, into the local cache and print its path.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := flags.client()
			cat, err := c.LoadCatalog(cmd.Context())
			if err != nil {
				return model.WrapDomainError("failed to load block library", err)
			}

			block, ok := cat.Find(args[0])
			if !ok {
				return model.NewCLIError(model.ExitGeneralError,
					fmt.Sprintf("block %q not found in library", args[0]))
			}

			path, err := c.Fetch(cmd.Context(), block)
			if err != nil {
				return model.WrapDomainError(fmt.Sprintf("failed to download block %q", block.Name), err)
			}

			w := cmd.OutOrStdout()
			if IsJSONOutput() {
				return writeJSON(w, map[string]string{"blockId": block.BlockID(), "path": path})
			}
			fmt.Fprintln(w, path)
			return nil
		},
	}
}

func newLibraryClearCacheCommand(flags *libraryFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-cache",
		Short: "Delete the local block cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := flags.client()
			if err := c.ClearCache(); err != nil {
				return model.WrapDomainError("failed to clear cache", err)
			}

			w := cmd.OutOrStdout()
			if IsJSONOutput() {
				return writeJSON(w, map[string]string{"cleared": c.Config().CacheDir})
			}
			fmt.Fprintf(w, "Cache cleared: %s\n", c.Config().CacheDir)
			return nil
		},
	}
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to serialize JSON", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
