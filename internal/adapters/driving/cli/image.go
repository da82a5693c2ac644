package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ocrhl/internal/core/domain"
)

var (
	imageWidth    int
	imageManifest bool

	overlayImageWidth float64
	overlayOffsetX    float64
	overlayOffsetY    float64
	overlayInset      float64
	overlayJSON       bool
)

var imageURLCmd = &cobra.Command{
	Use:   "image-url <source> <doc-id> <page-id> <ulx,uly,lrx,lry>",
	Short: "Print the IIIF image URL of a page region",
	Long: `Prints the IIIF Image API URL that shows a region of a document page.

For newspapers (lunion) the document id is the issue id, page ids look like
"P12" and coordinates are in hundredths of a millimetre. For books (gbooks)
page ids look like "page_12" and coordinates are in pixels.

Examples:
  ocrhl image-url lunion 1234567 P3 100,200,300,400
  ocrhl image-url gbooks Volume_0001 page_12 10,20,410,80 --width 600`,
	Args: cobra.ExactArgs(4),
	RunE: runImageURL,
}

var overlayCmd = &cobra.Command{
	Use:   "overlay <box ulx,uly,lrx,lry> <region ulx,uly,lrx,lry>",
	Short: "Compute the on-screen rectangle of a highlight box",
	Long: `Scales a highlight box, given relative to its region, onto a region image
displayed --image-width pixels wide at offset (--x, --y).

Prints left,top,width,height in screen pixels.`,
	Args: cobra.ExactArgs(2),
	RunE: runOverlay,
}

func init() {
	imageURLCmd.Flags().IntVarP(&imageWidth, "width", "w", 0, "requested image width in pixels (0 = full size)")
	imageURLCmd.Flags().BoolVar(&imageManifest, "manifest", false, "also print the document's IIIF manifest URI")
	rootCmd.AddCommand(imageURLCmd)

	overlayCmd.Flags().Float64Var(&overlayImageWidth, "image-width", 0, "displayed image width in pixels")
	overlayCmd.Flags().Float64Var(&overlayOffsetX, "x", 0, "image left offset within its container")
	overlayCmd.Flags().Float64Var(&overlayOffsetY, "y", 0, "image top offset within its container")
	overlayCmd.Flags().Float64Var(&overlayInset, "inset", 0, "shift the rectangle up and left by this many pixels")
	overlayCmd.Flags().BoolVar(&overlayJSON, "json", false, "output the rectangle as JSON")
	_ = overlayCmd.MarkFlagRequired("image-width")
	rootCmd.AddCommand(overlayCmd)
}

func runImageURL(cmd *cobra.Command, args []string) error {
	if imageService == nil {
		return errors.New("image service not configured")
	}

	kind, err := domain.ParseSourceKind(args[0])
	if err != nil {
		return err
	}
	region, err := parseRegion(args[3])
	if err != nil {
		return err
	}

	url, err := imageService.ImageURL(kind, args[1], domain.Page{ID: args[2]}, region, imageWidth)
	if err != nil {
		return fmt.Errorf("image url: %w", err)
	}
	cmd.Println(url)

	if imageManifest {
		manifest, err := imageService.ManifestURI(kind, args[1])
		if err != nil {
			return fmt.Errorf("manifest: %w", err)
		}
		cmd.Println(manifest)
	}
	return nil
}

func runOverlay(cmd *cobra.Command, args []string) error {
	if imageService == nil {
		return errors.New("image service not configured")
	}

	box, err := parseRegion(args[0])
	if err != nil {
		return fmt.Errorf("box: %w", err)
	}
	container, err := parseRegion(args[1])
	if err != nil {
		return fmt.Errorf("region: %w", err)
	}

	var img *domain.RenderedImage
	if overlayImageWidth > 0 {
		img = &domain.RenderedImage{X: overlayOffsetX, Y: overlayOffsetY, Width: overlayImageWidth}
	}
	rect, ok := imageService.Overlay(box, container, img)
	if !ok {
		return fmt.Errorf("%w: no overlay for a zero-width region or unrendered image", domain.ErrInvalidInput)
	}
	rect = rect.Inset(overlayInset)

	if overlayJSON {
		return printJSON(cmd, rect)
	}
	cmd.Printf("%g,%g,%g,%g\n", rect.Left, rect.Top, rect.Width, rect.Height)
	return nil
}

// parseRegion parses "ulx,uly,lrx,lry".
func parseRegion(s string) (domain.Region, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return domain.Region{}, fmt.Errorf("%w: region %q must be ulx,uly,lrx,lry", domain.ErrInvalidInput, s)
	}

	var vals [4]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return domain.Region{}, fmt.Errorf("%w: region %q has a non-numeric coordinate", domain.ErrInvalidInput, s)
		}
		vals[i] = v
	}

	region := domain.Region{ULX: vals[0], ULY: vals[1], LRX: vals[2], LRY: vals[3]}
	if err := region.Validate(); err != nil {
		return domain.Region{}, err
	}
	return region, nil
}
