package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/sarchlab/modeline/mode"
	"github.com/sarchlab/modeline/modegen"
	"github.com/sarchlab/modeline/modeplot"
)

var plotCmd = &cobra.Command{
	Use:   "plot WIDTH HEIGHT [REFRESH]",
	Short: "Draw the timing diagram of a mode into a PNG file.",
	Long: "Draw the timing diagram of a mode into a PNG file. The mode is " +
		"computed with --algo, or read from --modeline when given.",
	Args: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("modeline") {
			return cobra.NoArgs(cmd, args)
		}

		return cobra.RangeArgs(2, 3)(cmd, args)
	},
	Run: func(cmd *cobra.Command, args []string) {
		m := plotMode(cmd, args)

		output, _ := cmd.Flags().GetString("output")
		width, _ := cmd.Flags().GetInt("width")
		height, _ := cmd.Flags().GetInt("height")

		if err := modeplot.SavePNG(m, output, width, height); err != nil {
			log.Fatalf("Error: %v", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Timing diagram of %s written to %s.\n",
			m.Name(), output)
	},
}

func plotMode(cmd *cobra.Command, args []string) *mode.DisplayMode {
	if line, _ := cmd.Flags().GetString("modeline"); line != "" {
		m, _, err := mode.Parse(line)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}

		return m
	}

	algo, _ := cmd.Flags().GetString("algo")

	g, err := modegen.Lookup(algo)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	req, err := parseRequest(cmd, args)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	return g.Generate(req)
}

func init() {
	plotCmd.Flags().String("algo", "cvt", "Timing algorithm: cvt, cvt-rb or gtf.")
	plotCmd.Flags().String("modeline", "", "Plot this modeline instead.")
	plotCmd.Flags().StringP("output", "o", "modeline.png", "PNG file to write.")
	plotCmd.Flags().Int("width", 800, "Image width in pixels.")
	plotCmd.Flags().Int("height", 400, "Image height in pixels.")
	plotCmd.Flags().BoolP("interlaced", "i", false, "Compute an interlaced mode.")
	plotCmd.Flags().Bool("margins", false, "Add 1.8% borders around the picture.")

	rootCmd.AddCommand(plotCmd)
}
