package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockmaster/internal/config"
	"github.com/vovakirdan/blockmaster/internal/games/blocks/engine"
)

var flagShapesFile string

var shapesCmd = &cobra.Command{
	Use:   "shapes",
	Short: "Print the shape catalog",
	Long: `Print every shape the generator can offer.

The catalog comes from --shapes, then the shapes_file of the loaded config,
then the built-in catalog.

Examples:
  blockmaster shapes
  blockmaster shapes --shapes ./my-shapes.yaml`,
	Run: runShapes,
}

func init() {
	shapesCmd.Flags().StringVar(&flagShapesFile, "shapes", "", "Path to a shape catalog YAML")
}

const shapesPerRow = 6

var (
	shapeNameStyle = lipgloss.NewStyle().Bold(true)
	shapeCellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3b82f6"))
	shapeBoxStyle  = lipgloss.NewStyle().Width(14).MarginBottom(1)
)

func runShapes(_ *cobra.Command, _ []string) {
	path := flagShapesFile
	if path == "" {
		cfg, err := config.LoadBlocks(flagConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
		path = cfg.ShapesFile
	}

	catalog := engine.DefaultCatalog()
	if path != "" {
		c, err := engine.LoadCatalogFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		catalog = c
	}

	fmt.Printf("Shape catalog %s (%d shapes)\n\n", catalog.Version(), catalog.Len())

	shapes := catalog.Shapes()
	for start := 0; start < len(shapes); start += shapesPerRow {
		end := min(start+shapesPerRow, len(shapes))
		cols := make([]string, 0, end-start)
		for _, s := range shapes[start:end] {
			cols = append(cols, renderShape(s))
		}
		fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	}
}

func renderShape(s engine.Shape) string {
	rows := strings.Split(s.String(), "\n")
	for i, row := range rows {
		row = strings.ReplaceAll(row, "#", shapeCellStyle.Render("██"))
		rows[i] = strings.ReplaceAll(row, ".", "  ")
	}
	header := shapeNameStyle.Render(s.Name()) + fmt.Sprintf(" (%d)", s.Area())
	return shapeBoxStyle.Render(header + "\n" + strings.Join(rows, "\n"))
}
