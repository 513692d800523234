package pdfsource

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/pdfstruct/content"
	"github.com/tsawler/pdfstruct/model"
)

func bytesStream(dict map[string]any, data []byte) Stream {
	return Stream{Dict: dict, read: func() ([]byte, error) { return data, nil }}
}

// ============================================================================
// Color spaces
// ============================================================================

func TestColorSpaceOf(t *testing.T) {
	tests := []struct {
		name   string
		obj    any
		family string
		comps  int
	}{
		{"device name", Name("DeviceRGB"), content.DeviceRGB, 3},
		{"cal rgb", []any{Name("CalRGB"), map[string]any{}}, content.DeviceRGB, 3},
		{"lab", []any{Name("Lab"), map[string]any{}}, content.Lab, 3},
		{"icc", []any{Name("ICCBased"), bytesStream(map[string]any{"N": int64(4)}, nil)}, content.ICCBased, 4},
		{"separation", []any{Name("Separation"), Name("Spot"), Name("DeviceCMYK"), nil}, content.Separation, 1},
		{"devicen", []any{Name("DeviceN"), []any{Name("A"), Name("B")}, Name("DeviceCMYK"), nil}, content.DeviceN, 2},
		{"pattern", []any{Name("Pattern"), Name("DeviceRGB")}, content.Pattern, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs, err := colorSpaceOf(tt.obj)
			require.NoError(t, err)
			assert.Equal(t, tt.family, cs.Family)
			assert.Equal(t, tt.comps, cs.Components())
		})
	}
}

func TestIndexedColorSpace(t *testing.T) {
	for _, lookup := range []any{
		"\xff\x00\x00\x00\x00\xff",
		bytesStream(map[string]any{}, []byte{255, 0, 0, 0, 0, 255}),
	} {
		cs, err := colorSpaceOf([]any{Name("Indexed"), Name("DeviceRGB"), int64(1), lookup})
		require.NoError(t, err)
		assert.Equal(t, content.Indexed, cs.Family)
		assert.Equal(t, 1, cs.HiVal)
		assert.Equal(t, model.Color{B: 255}, cs.ToRGB([]float64{1}))
	}
}

func TestColorSpaceErrors(t *testing.T) {
	_, err := colorSpaceOf(Name("CS0"))
	assert.ErrorIs(t, err, content.ErrNotFound)
	_, err = colorSpaceOf([]any{})
	assert.ErrorIs(t, err, ErrMalformed)
	_, err = colorSpaceOf([]any{Name("Indexed"), Name("DeviceRGB"), int64(1), int64(3)})
	assert.ErrorIs(t, err, ErrMalformed)
	_, err = colorSpaceOf([]any{Name("Unheard")})
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = colorSpaceOf(int64(1))
	assert.ErrorIs(t, err, ErrMalformed)
}

// ============================================================================
// Fonts
// ============================================================================

func TestCIDWidths(t *testing.T) {
	w := []any{
		int64(1), []any{int64(500), float64(600)},
		int64(5), int64(6), int64(700),
	}
	first, widths := cidWidths(w, 1000)
	assert.Equal(t, 1, first)
	assert.Equal(t, []float64{500, 600, 1000, 1000, 700, 700}, widths)

	first, widths = cidWidths(nil, 1000)
	assert.Equal(t, 0, first)
	assert.Nil(t, widths)

	// a truncated range entry is ignored
	_, widths = cidWidths([]any{int64(3), []any{int64(250)}, int64(9), int64(10)}, 1000)
	assert.Equal(t, []float64{250}, widths)
}

func TestDifferences(t *testing.T) {
	d := differences([]any{int64(65), Name("alpha"), Name("beta"), int64(1), Name("gamma"), Name("orphan")})
	assert.Equal(t, map[int]string{65: "alpha", 66: "beta", 1: "gamma", 2: "orphan"}, d)
	assert.Empty(t, differences([]any{Name("noCode")}))
}

// ============================================================================
// Images
// ============================================================================

func TestNewImage(t *testing.T) {
	res := content.ResourceMap{ColorSpaces: map[string]*content.ColorSpace{"CS1": content.CMYKSpace}}

	img, err := newImage(bytesStream(map[string]any{
		"Width":            int64(2),
		"Height":           int64(1),
		"BitsPerComponent": int64(8),
		"ColorSpace":       Name("CS1"),
		"Decode":           []any{int64(1), int64(0), int64(1), int64(0), int64(1), int64(0), int64(1), int64(0)},
	}, []byte{1, 2, 3, 4, 5, 6, 7, 8}), res)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Width)
	assert.Equal(t, 1, img.Height)
	assert.Same(t, content.CMYKSpace, img.ColorSpace)
	assert.Len(t, img.Decode, 8)
	assert.Empty(t, img.Filters)
	assert.Len(t, img.Data, 8)

	mask, err := newImage(bytesStream(map[string]any{
		"Width": int64(1), "Height": int64(1), "ImageMask": true,
	}, []byte{0}), nil)
	require.NoError(t, err)
	assert.True(t, mask.ImageMask)
	assert.Equal(t, 1, mask.BitsPerComponent)
	assert.Same(t, content.GraySpace, mask.ColorSpace)
}

func TestNewImageReadFailure(t *testing.T) {
	broken := Stream{
		Dict: map[string]any{"Width": int64(4), "Height": int64(4)},
		read: func() ([]byte, error) { return nil, errors.New("unknown filter") },
	}
	img, err := newImage(broken, nil)
	assert.Error(t, err)
	require.NotNil(t, img, "geometry survives an unreadable payload")
	assert.Equal(t, 4, img.Width)
}

// ============================================================================
// Helpers
// ============================================================================

func TestGuardRecoversPanics(t *testing.T) {
	err := guard("read", func() error { panic("unknown filter DCTDecode") })
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.Contains(t, err.Error(), "DCTDecode")

	sentinel := errors.New("plain")
	assert.Same(t, sentinel, guard("read", func() error { return sentinel }))
}

func TestObjectConversions(t *testing.T) {
	assert.Equal(t, model.NewMatrix(2, 0, 0, 2, 1, 1),
		matrixOf([]any{int64(2), int64(0), int64(0), float64(2), int64(1), int64(1)}))
	assert.Equal(t, model.Identity(), matrixOf([]any{int64(1)}))
	assert.Equal(t, model.Identity(), matrixOf(nil))

	r, ok := rectangleOf([]any{int64(10), int64(20), float64(0), int64(0)})
	require.True(t, ok)
	assert.Equal(t, model.NewRectangle(0, 0, 10, 20), r)
	_, ok = rectangleOf([]any{Name("x"), int64(0), int64(0), int64(0)})
	assert.False(t, ok)

	assert.Equal(t, 3.0, numberOr(Name("x"), 3))
}

func TestOpenErrorMessage(t *testing.T) {
	err := &OpenError{Path: "a.pdf", Err: ErrMalformed}
	assert.Equal(t, "open pdf a.pdf: malformed pdf", err.Error())
	assert.Equal(t, "open pdf: malformed pdf", (&OpenError{Err: ErrMalformed}).Error())
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestStandardWidths(t *testing.T) {
	for name, table := range standardFonts {
		assert.Len(t, table, 95, name)
	}

	tests := []struct {
		base  string
		code  int
		want  float64
		found bool
	}{
		{"Helvetica", ' ', 278, true},
		{"Helvetica", 'i', 222, true},
		{"ABCDEF+Helvetica-Bold", 'A', 722, true},
		{"Arial,Bold", 'b', 611, true},
		{"Times-Roman", 'm', 778, true},
		{"CourierNewPSMT", 'W', 600, true},
		{"Symbol", 'a', 0, false},
		{"Garamond", 'a', 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			first, widths, ok := standardWidths(tt.base)
			require.Equal(t, tt.found, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.want, widths[tt.code-first])
		})
	}
}

func TestBrokenEncodingIsLogged(t *testing.T) {
	saved := fontEncoder
	defer func() { fontEncoder = saved }()
	fontEncoder = func(pdf.Value) pdf.TextEncoding { panic("unknown filter DCTDecode") }

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	f := newFont(pdf.Value{}, log)

	assert.Nil(t, f.Decoder)
	assert.Contains(t, buf.String(), "decoding as Latin-1")
	assert.Contains(t, buf.String(), "DCTDecode")
}
