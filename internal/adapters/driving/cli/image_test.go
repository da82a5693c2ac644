package cli

import (
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ocrhl/internal/core/domain"
)

func TestImageURLCmd_Newspaper(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "image-url", "lunion", "issue-42", "P3", "100,200,300,400")

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultImageAPIBase+"/bnl:issue-42_00003/118,236,236,236/full/0/default.jpg\n", out)
}

func TestImageURLCmd_BookWithWidthAndManifest(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "image-url", "gbooks", "Volume_0001", "page_12", "10,20,410,80", "--width", "600", "--manifest")

	require.NoError(t, err)
	assert.Contains(t, out, "/gbooks:Volume_0001_0011/10,20,400,60/600,/0/default.jpg")
	assert.Contains(t, out, "http://localhost:8181/iiif/presentation/gbooks:Volume_0001/manifest")
}

func TestImageURLCmd_UsesConfiguredBase(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	require.NoError(t, settingsService.Set("iiif.image_api_base", "https://images.example.org/iiif/"))

	out, err := execute(t, "image-url", "gbooks", "v", "page_1", "0,0,10,10")

	require.NoError(t, err)
	assert.Contains(t, out, "https://images.example.org/iiif/gbooks:v_0000/")
}

func TestImageURLCmd_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"unknown source", []string{"archive", "d", "P1", "0,0,1,1"}, domain.ErrUnknownSource},
		{"bad page", []string{"lunion", "d", "Pxx", "0,0,1,1"}, domain.ErrInvalidRegionReference},
		{"bad region", []string{"gbooks", "d", "page_1", "0,0,1"}, domain.ErrInvalidInput},
		{"non-numeric region", []string{"gbooks", "d", "page_1", "a,b,c,d"}, domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cleanup := setupTestServices()
			defer cleanup()

			_, err := execute(t, append([]string{"image-url"}, tt.args...)...)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestImageURLCmd_RequiresFourArgs(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "image-url", "lunion", "issue")

	assert.Error(t, err)
}

func TestOverlayCmd(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "overlay", "10,10,60,30", "1000,2000,1300,2100",
		"--image-width", "600", "--x", "5", "--y", "7")

	require.NoError(t, err)
	assert.Equal(t, "25,27,100,40\n", out)
}

func TestOverlayCmd_InsetJSON(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "overlay", "10,10,60,30", "1000,2000,1300,2100",
		"--image-width", "600", "--inset", "2", "--json")

	require.NoError(t, err)
	var rect domain.Rect
	require.NoError(t, json.Unmarshal([]byte(out), &rect))
	assert.Equal(t, domain.Rect{Left: 18, Top: 18, Width: 100, Height: 40}, rect)
}

func TestOverlayCmd_ZeroWidthRegion(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "overlay", "0,0,1,1", "5,0,5,10", "--image-width", "600")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOverlayCmd_ImageWidthRequired(t *testing.T) {
	flag := overlayCmd.Flags().Lookup("image-width")
	require.NotNil(t, flag)
	assert.Equal(t, []string{"true"}, flag.Annotations[cobra.BashCompOneRequiredFlag])
}

func TestParseRegion(t *testing.T) {
	region, err := parseRegion(" 1.5, 2,3 ,4")
	require.NoError(t, err)
	assert.Equal(t, domain.Region{ULX: 1.5, ULY: 2, LRX: 3, LRY: 4}, region)

	_, err = parseRegion("4,4,1,1")
	assert.Error(t, err)
}
