package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docshift/internal/images"
	"github.com/pdiddy/docshift/internal/runlog"
)

var imagesCmd = &cobra.Command{
	Use:   "images <file.pdf>",
	Short: "Export embedded images from a PDF without converting it",
	Long: `Images runs only the image-extraction stage: embedded images that pass
the chart heuristic are written as <stem>_p<page>_chart<idx>.png next to
the input. With --include-all-images everything is exported under the
"img" label instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runImages,
}

func init() {
	imagesCmd.Flags().Bool("include-all-images", false, "export every embedded image, not only charts")

	rootCmd.AddCommand(imagesCmd)
}

func runImages(cmd *cobra.Command, args []string) error {
	if err := validatePDFArgs(args); err != nil {
		return err
	}
	pdfPath := args[0]
	keepAll, _ := cmd.Flags().GetBool("include-all-images")

	log, closer, err := runlog.Open(pdfPath, os.Stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	stem := runlog.Stem(pdfPath)
	exported, err := images.NewExporter().Export(pdfPath, filepath.Dir(pdfPath), stem, keepAll, log)
	if err != nil {
		log.Error("image extraction failed", "error", err)
		return err
	}

	for _, img := range exported {
		fmt.Fprintln(os.Stdout, img.Path)
	}
	fmt.Fprintf(os.Stdout, "%d image(s) exported\n", len(exported))
	return nil
}
