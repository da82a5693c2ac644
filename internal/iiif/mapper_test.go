package iiif

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ocrhl/internal/core/domain"
)

const testImageBase = "https://images.example.org/iiif/image/v2"

func testMapper() Mapper {
	return NewMapper(testImageBase+"/", "http://localhost:8181/")
}

func TestNewMapper_TrimsSlashes(t *testing.T) {
	m := testMapper()

	assert.Equal(t, testImageBase, m.ImageAPIBase)
	assert.Equal(t, "http://localhost:8181", m.AppBase)
}

func TestImageURL_Newspaper(t *testing.T) {
	region := domain.Region{ULX: 100, ULY: 200, LRX: 300, LRY: 400}

	got, err := testMapper().ImageURL(domain.SourceLUnion, "issue-42", domain.Page{ID: "P3"}, region, 0)

	require.NoError(t, err)
	assert.Equal(t, testImageBase+"/bnl:issue-42_00003/118,236,236,236/full/0/default.jpg", got)
}

func TestImageURL_Book(t *testing.T) {
	region := domain.Region{ULX: 100, ULY: 200, LRX: 300, LRY: 450}

	got, err := testMapper().ImageURL(domain.SourceGoogleBooks, "Volume_0001", domain.Page{ID: "page_12"}, region, 0)

	require.NoError(t, err)
	assert.Equal(t, testImageBase+"/gbooks:Volume_0001_0011/100,200,200,250/full/0/default.jpg", got)
}

func TestImageURL_BookFloorsFractionalCoordinates(t *testing.T) {
	region := domain.Region{ULX: 10.7, ULY: 20.2, LRX: 40.9, LRY: 60.1}

	got, err := testMapper().ImageURL(domain.SourceGoogleBooks, "v", domain.Page{ID: "page_1"}, region, 0)

	require.NoError(t, err)
	assert.Equal(t, testImageBase+"/gbooks:v_0000/10,20,30,39/full/0/default.jpg", got)
}

func TestImageURL_RequestedWidth(t *testing.T) {
	region := domain.Region{ULX: 0, ULY: 0, LRX: 500, LRY: 100}

	got, err := testMapper().ImageURL(domain.SourceGoogleBooks, "v", domain.Page{ID: "page_2"}, region, 300)

	require.NoError(t, err)
	assert.Equal(t, testImageBase+"/gbooks:v_0001/0,0,500,100/300,/0/default.jpg", got)
}

func TestImageURL_OmittedWidthIsFull(t *testing.T) {
	region := domain.Region{LRX: 10, LRY: 10}

	for _, width := range []int{0, -1} {
		got, err := testMapper().ImageURL(domain.SourceGoogleBooks, "v", domain.Page{ID: "page_1"}, region, width)
		require.NoError(t, err)
		assert.Contains(t, got, "/full/0/default.jpg")
	}
}

func TestImageURL_Deterministic(t *testing.T) {
	m := testMapper()
	region := domain.Region{ULX: 12, ULY: 34, LRX: 560, LRY: 780}
	page := domain.Page{ID: "P7"}

	first, err := m.ImageURL(domain.SourceLUnion, "issue", page, region, 640)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := m.ImageURL(domain.SourceLUnion, "issue", page, region, 640)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestImageURL_InvalidPageToken(t *testing.T) {
	region := domain.Region{LRX: 10, LRY: 10}
	tests := []struct {
		name string
		kind domain.SourceKind
		page string
	}{
		{"newspaper non-numeric", domain.SourceLUnion, "Pabc"},
		{"newspaper too short", domain.SourceLUnion, "P"},
		{"newspaper empty", domain.SourceLUnion, ""},
		{"book without separator", domain.SourceGoogleBooks, "page12"},
		{"book non-numeric", domain.SourceGoogleBooks, "page_xii"},
		{"book page zero", domain.SourceGoogleBooks, "page_0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testMapper().ImageURL(tt.kind, "doc", domain.Page{ID: tt.page}, region, 0)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidRegionReference))
		})
	}
}

func TestImageURL_InvalidRegion(t *testing.T) {
	region := domain.Region{ULX: 50, ULY: 0, LRX: 10, LRY: 10}

	_, err := testMapper().ImageURL(domain.SourceGoogleBooks, "v", domain.Page{ID: "page_1"}, region, 0)

	assert.True(t, errors.Is(err, domain.ErrInvalidRegionReference))
}

func TestImageURL_UnknownSource(t *testing.T) {
	_, err := testMapper().ImageURL("other", "v", domain.Page{ID: "page_1"}, domain.Region{}, 0)

	assert.True(t, errors.Is(err, domain.ErrUnknownSource))
}

func TestManifestURI(t *testing.T) {
	m := testMapper()

	assert.Equal(t, "http://localhost:8181/iiif/presentation/bnl:issue-42/manifest",
		m.ManifestURI(domain.SourceLUnion, "issue-42"))
	assert.Equal(t, "http://localhost:8181/iiif/presentation/gbooks:Volume_0001/manifest",
		m.ManifestURI(domain.SourceGoogleBooks, "Volume_0001"))
}

func TestNewspaperScheme_PixelRegion(t *testing.T) {
	scheme, err := SchemeFor(domain.SourceLUnion)
	require.NoError(t, err)

	got := scheme.PixelRegion(domain.Region{ULX: 100, ULY: 200, LRX: 300, LRY: 400})
	assert.Equal(t, PixelRegion{X: 118, Y: 236, W: 236, H: 236}, got)

	// Exact multiples of the scan resolution stay exact.
	got = scheme.PixelRegion(domain.Region{ULX: 254, ULY: 508, LRX: 508, LRY: 762})
	assert.Equal(t, PixelRegion{X: 300, Y: 600, W: 300, H: 300}, got)
}

func TestPixelRegion_String(t *testing.T) {
	assert.Equal(t, "1,2,3,4", PixelRegion{X: 1, Y: 2, W: 3, H: 4}.String())
}
