package cmd

import (
	"fmt"
	"io"
	"log"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sarchlab/modeline/mode"
	"github.com/sarchlab/modeline/modegen"
)

var cvtCmd = &cobra.Command{
	Use:   "cvt WIDTH HEIGHT [REFRESH]",
	Short: "Compute a mode with the Coordinated Video Timing formula.",
	Args:  cobra.RangeArgs(2, 3),
	Run: func(cmd *cobra.Command, args []string) {
		req, err := parseRequest(cmd, args)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}

		reduced, _ := cmd.Flags().GetBool("reduced")
		req.Reduced = reduced

		generate(cmd, modegen.CVT{}, req)
	},
}

var gtfCmd = &cobra.Command{
	Use:   "gtf WIDTH HEIGHT [REFRESH]",
	Short: "Compute a mode with the Generalized Timing Formula.",
	Long: "Compute a mode with the Generalized Timing Formula. " +
		"The --m, --c, --k and --j flags select the secondary curve.",
	Args: cobra.RangeArgs(2, 3),
	Run: func(cmd *cobra.Command, args []string) {
		req, err := parseRequest(cmd, args)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}

		c := modegen.DefaultGTF
		c.M, _ = cmd.Flags().GetInt("m")
		c.K, _ = cmd.Flags().GetInt("k")

		cValue, _ := cmd.Flags().GetInt("c")
		jValue, _ := cmd.Flags().GetInt("j")
		c.C2 = 2 * cValue
		c.J2 = 2 * jValue

		generate(cmd, modegen.GTF{Coefficients: c}, req)
	},
}

func init() {
	for _, c := range []*cobra.Command{cvtCmd, gtfCmd} {
		c.Flags().BoolP("interlaced", "i", false, "Compute an interlaced mode.")
		c.Flags().Bool("margins", false, "Add 1.8% borders around the picture.")
		c.Flags().Bool("add", false, "Add the mode to the catalog.")
		c.Flags().String("source", "", "Source recorded in the catalog.")
		rootCmd.AddCommand(c)
	}

	cvtCmd.Flags().BoolP("reduced", "r", false, "Use reduced blanking.")

	gtfCmd.Flags().Int("m", modegen.DefaultGTF.M, "Gradient, in %/kHz.")
	gtfCmd.Flags().Int("c", modegen.DefaultGTF.C2/2, "Offset, in %.")
	gtfCmd.Flags().Int("k", modegen.DefaultGTF.K, "Blanking time scaling factor.")
	gtfCmd.Flags().Int("j", modegen.DefaultGTF.J2/2, "Scaling factor weighting, in %.")
}

func parseRequest(cmd *cobra.Command, args []string) (modegen.Request, error) {
	req := modegen.Request{VRefresh: cfg.Refresh}

	values := []*int{&req.HDisplay, &req.VDisplay, &req.VRefresh}
	names := []string{"width", "height", "refresh"}

	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return req, fmt.Errorf("%s: %w", names[i], err)
		}

		if n <= 0 {
			return req, fmt.Errorf("%s must be positive, got %d", names[i], n)
		}

		*values[i] = n
	}

	req.Interlaced, _ = cmd.Flags().GetBool("interlaced")
	req.Margins, _ = cmd.Flags().GetBool("margins")

	return req, nil
}

func generate(cmd *cobra.Command, g modegen.Generator, req modegen.Request) {
	m := g.Generate(req)

	printMode(cmd.OutOrStdout(), g.Name(), m)

	add, _ := cmd.Flags().GetBool("add")
	if !add {
		return
	}

	source, _ := cmd.Flags().GetString("source")
	if source == "" {
		source = g.Name()
	}

	catalog, closeCatalog := openCatalog(cmd)
	defer closeCatalog()

	entry, added, err := catalog.Add(source, m)
	if err != nil {
		log.Fatalf("Error adding mode: %v", err)
	}

	reportAdd(cmd.OutOrStdout(), entry.ID, added)
}

// printMode writes the mode the way the cvt and gtf utilities do: a comment
// with the rates followed by the modeline.
func printMode(w io.Writer, algorithm string, m *mode.DisplayMode) {
	refresh := m.VFreq().In(mode.Hz)

	fmt.Fprintf(w, "# %s %.2f Hz (%s) hsync: %.2f kHz; pclk: %.2f MHz\n",
		m.Name(), refresh, algorithm,
		m.HFreq().In(mode.KHz), m.PixelFreq().In(mode.MHz))
	fmt.Fprintln(w, m.Modeline(fmt.Sprintf("%s_%.2f", m.Name(), refresh)))
}

func reportAdd(w io.Writer, id string, added bool) {
	if added {
		fmt.Fprintf(w, "Added mode %s.\n", id)
		return
	}

	fmt.Fprintf(w, "Mode already in the catalog as %s.\n", id)
}
