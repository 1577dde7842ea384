package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sarchlab/modeline/mode"
	"github.com/sarchlab/modeline/modedb"
)

const defaultDBPath = "modeline.sqlite3"

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the catalog of display modes.",
	Long: "Manage the catalog of display modes. The catalog is stored in " +
		"the SQLite file named by --db or MODELINE_DB, " + defaultDBPath +
		" if neither is set.",
}

var catalogAddCmd = &cobra.Command{
	Use:   "add MODELINE",
	Short: "Add a modeline to the catalog.",
	Long: "Add a modeline to the catalog. The arguments are joined and " +
		`parsed as an X11 modeline, for example ` +
		`'Modeline "1920x1080" 148.50 1920 2008 2052 2200 1080 1084 1089 1125'.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		m, _, err := mode.Parse(strings.Join(args, " "))
		if err != nil {
			log.Fatalf("Error: %v", err)
		}

		source, _ := cmd.Flags().GetString("source")

		catalog, closeCatalog := openCatalog(cmd)
		defer closeCatalog()

		entry, added, err := catalog.Add(source, m)
		if err != nil {
			log.Fatalf("Error adding mode: %v", err)
		}

		reportAdd(cmd.OutOrStdout(), entry.ID, added)
	},
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the modes of the catalog.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		catalog, closeCatalog := openCatalog(cmd)
		defer closeCatalog()

		listEntries(cmd.OutOrStdout(), catalog.List())
	},
}

var catalogExportCmd = &cobra.Command{
	Use:   "export [FILE]",
	Short: "Write the catalog as YAML to a file or to the standard output.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		catalog, closeCatalog := openCatalog(cmd)
		defer closeCatalog()

		w := cmd.OutOrStdout()
		if len(args) == 1 {
			f, err := os.Create(args[0])
			if err != nil {
				log.Fatalf("Error: %v", err)
			}
			defer f.Close()

			w = f
		}

		if err := modedb.ExportYAML(w, catalog.List()); err != nil {
			log.Fatalf("Error exporting catalog: %v", err)
		}
	},
}

var catalogImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Add the modes of a YAML file to the catalog.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(args[0])
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		defer f.Close()

		entries, err := modedb.ImportYAML(f)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}

		catalog, closeCatalog := openCatalog(cmd)
		defer closeCatalog()

		added, err := catalog.Import(entries)
		if err != nil {
			log.Fatalf("Error importing %s: %v", args[0], err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d modes.\n",
			added, len(entries))
	},
}

var catalogRemoveCmd = &cobra.Command{
	Use:   "remove ID...",
	Short: "Remove modes from the catalog.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		catalog, closeCatalog := openCatalog(cmd)
		defer closeCatalog()

		for _, id := range args {
			if err := catalog.Remove(id); err != nil {
				log.Fatalf("Error: %v", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed mode %s.\n", id)
		}
	},
}

func init() {
	catalogAddCmd.Flags().String("source", "modeline",
		"Source recorded in the catalog.")

	catalogCmd.AddCommand(catalogAddCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogExportCmd)
	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogRemoveCmd)

	rootCmd.AddCommand(catalogCmd)
}

// openCatalog opens the catalog file. The returned function flushes and
// closes it.
func openCatalog(cmd *cobra.Command) (*modedb.Catalog, func()) {
	path := dbPath(cmd)
	if path == "" {
		path = defaultDBPath
	}

	store, err := modedb.NewSQLiteStore(path)
	if err != nil {
		log.Fatalf("Error opening catalog: %v", err)
	}

	catalog, err := modedb.OpenCatalog(modedb.NewParallelIDGenerator(), store)
	if err != nil {
		log.Fatalf("Error opening catalog: %v", err)
	}

	return catalog, func() {
		if err := store.Close(); err != nil {
			log.Fatalf("Error closing catalog: %v", err)
		}
	}
}

func listEntries(w io.Writer, entries []modedb.Entry) {
	for _, e := range entries {
		fmt.Fprintf(w, "%-20s %-8s %s\n", e.ID, e.Source, e.Mode.String())
	}
}
