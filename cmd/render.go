package cmd

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/fogleman/gg"
	"github.com/spf13/cobra"

	"github.com/cartastcg/cartas-tray/internal/card"
	"github.com/cartastcg/cartas-tray/internal/colors"
	"github.com/cartastcg/cartas-tray/internal/config"
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a card face to a PNG file",
	Long: `Render a card face to a PNG file.

Reads a card description as JSON and composites the 400x600 card face.

USAGE:
    cartas-tray render --spec <card.json> --out <card.png> [OPTIONS]

OPTIONS:
    --spec <file>      Card description JSON (required)
    --out <file>       Output PNG path (required)
    --artwork <file>   Artwork image (PNG or JPEG) for the art box
    -h, --help         Show this help

SPEC FIELDS:
    title, type, cost, description, frameColor, creator, attack, defense`,
	RunE: runRender,
}

var (
	renderSpecPath    string
	renderOutPath     string
	renderArtworkPath string
)

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVar(&renderSpecPath, "spec", "", "Card description JSON file")
	renderCmd.Flags().StringVar(&renderOutPath, "out", "", "Output PNG path")
	renderCmd.Flags().StringVar(&renderArtworkPath, "artwork", "", "Artwork image for the art box")
	_ = renderCmd.MarkFlagRequired("spec")
	_ = renderCmd.MarkFlagRequired("out")
}

func runRender(cmd *cobra.Command, args []string) error {
	spec, err := loadRenderSpec(renderSpecPath)
	if err != nil {
		return err
	}

	if renderArtworkPath != "" {
		artwork, err := loadArtwork(renderArtworkPath)
		if err != nil {
			// A missing artwork degrades to the placeholder fill.
			colors.Warning(fmt.Sprintf("artwork not usable: %v", err))
		} else {
			spec.Artwork = artwork
		}
	}

	if fontPath := config.Get("card_font_path", ""); fontPath != "" {
		card.SetFontPath(fontPath)
	}

	dc := gg.NewContext(card.Width, card.Height)
	card.Render(dc, spec)

	if err := savePNG(renderOutPath, dc.Image()); err != nil {
		return fmt.Errorf("error writing card image: %w", err)
	}
	colors.Success(fmt.Sprintf("Card written to %s", renderOutPath))
	return nil
}

func loadRenderSpec(path string) (card.RenderSpec, error) {
	var spec card.RenderSpec
	data, err := os.ReadFile(path)
	if err != nil {
		return spec, fmt.Errorf("error reading card spec: %w", err)
	}
	if err := json.Unmarshal(data, &spec); err != nil {
		return spec, fmt.Errorf("error parsing card spec: %w", err)
	}
	return spec, nil
}

func loadArtwork(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}
