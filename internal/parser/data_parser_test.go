package parser

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTwoLines(t *testing.T) {
	got, err := Parse(strings.NewReader("data: |\n0.25 1.52\n0.30 1.50\n"))
	require.NoError(t, err)
	assert.Equal(t, []Measurement{
		{Wavelength: 0.25, RefractiveIndex: 1.52},
		{Wavelength: 0.30, RefractiveIndex: 1.50},
	}, got)
}

func TestParseCountsEveryDataLine(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("COMMENTS: \"synthetic\"\nDATA:\n  - type: tabulated n\n    data: |\n")
	for i := 0; i < 25; i++ {
		sb.WriteString("        0.5 1.5\n")
	}

	got, err := Parse(strings.NewReader(sb.String()))
	require.NoError(t, err)
	require.Len(t, got, 25)
	for _, m := range got {
		assert.False(t, math.IsNaN(m.Wavelength) || math.IsInf(m.Wavelength, 0))
		assert.False(t, math.IsNaN(m.RefractiveIndex) || math.IsInf(m.RefractiveIndex, 0))
	}
}

func TestParseSingleLineStripsNewline(t *testing.T) {
	got, err := Parse(strings.NewReader("    data: |\n        0.5 1.6\n"))
	require.NoError(t, err)
	assert.Equal(t, []Measurement{{Wavelength: 0.5, RefractiveIndex: 1.6}}, got)

	got, err = Parse(strings.NewReader("data: |\r\n        0.5 1.6\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []Measurement{{Wavelength: 0.5, RefractiveIndex: 1.6}}, got)
}

func TestParseStopsAtDedentedKey(t *testing.T) {
	input := `DATA:
  - type: tabulated n
    data: |
        0.40 1.81
        0.50 1.73
  - type: tabulated k
    data: |
        0.40 0.01
SPECS:
    temperature: 25
`
	got, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []Measurement{
		{Wavelength: 0.40, RefractiveIndex: 1.81},
		{Wavelength: 0.50, RefractiveIndex: 1.73},
	}, got)
}

func TestParseStopsAtDedentedComment(t *testing.T) {
	input := "  data: |\n      0.40 1.81\n      0.50 1.73\n# trailing note\nSPECS: {}\n"
	got, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestParseSkipsBlankLinesAndMarkerSuffix(t *testing.T) {
	input := "data: |-   ignored header\n        1 1.4\n\n   \n        2 1.3\n\n"
	got, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []Measurement{
		{Wavelength: 1, RefractiveIndex: 1.4},
		{Wavelength: 2, RefractiveIndex: 1.3},
	}, got)
}

func TestParseStopsAtSecondMarker(t *testing.T) {
	input := "data: |\n0.4 1.8\ndata: |\n0.4 0.01\n"
	got, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []Measurement{{Wavelength: 0.4, RefractiveIndex: 1.8}}, got)
}

func TestParseAcceptsTabsAndExponents(t *testing.T) {
	got, err := Parse(strings.NewReader("data: |\n\t2.5e-1\t 1.52E0\n"))
	require.NoError(t, err)
	assert.Equal(t, []Measurement{{Wavelength: 0.25, RefractiveIndex: 1.52}}, got)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sentinel error
		kind     ErrorKind
		line     int
	}{
		{
			name:     "missing marker",
			input:    "REFERENCES: \"x\"\n0.25 1.52\n",
			sentinel: ErrMissingMarker,
			kind:     KindMissingMarker,
		},
		{
			name:     "empty input",
			input:    "",
			sentinel: ErrMissingMarker,
			kind:     KindMissingMarker,
		},
		{
			name:     "one token",
			input:    "data: |\n        0.25 1.52\n        0.30\n",
			sentinel: ErrMalformedLine,
			kind:     KindMalformedLine,
			line:     3,
		},
		{
			name:     "three tokens",
			input:    "data: |\n        0.25 1.52 0.01\n",
			sentinel: ErrMalformedLine,
			kind:     KindMalformedLine,
			line:     2,
		},
		{
			name:     "word token",
			input:    "data: |\n        0.25 abc\n",
			sentinel: ErrNonNumericToken,
			kind:     KindNonNumericToken,
			line:     2,
		},
		{
			name:     "nan token",
			input:    "data: |\n        NaN 1.5\n",
			sentinel: ErrNonNumericToken,
			kind:     KindNonNumericToken,
			line:     2,
		},
		{
			name:     "inf token",
			input:    "data: |\n        0.5 +Inf\n",
			sentinel: ErrNonNumericToken,
			kind:     KindNonNumericToken,
			line:     2,
		},
		{
			name:     "marker at end of file",
			input:    "DATA:\n  - type: tabulated n\n    data: |\n",
			sentinel: ErrEmptyData,
			kind:     KindEmptyData,
		},
		{
			name:     "dedented data line inside block",
			input:    "DATA:\n  - type: tabulated n\n    data: |\n        0.40 1.81\n        0.50 1.73\n      0.60 1.70\n        0.70 1.69\n",
			sentinel: ErrMalformedLine,
			kind:     KindMalformedLine,
			line:     6,
		},
		{
			name:     "data line at column zero",
			input:    "    data: |\n        0.40 1.81\n0.50 1.73\n0.60 1.70\n",
			sentinel: ErrMalformedLine,
			kind:     KindMalformedLine,
			line:     3,
		},
		{
			name:     "first data line left of marker",
			input:    "    data: |\n  0.40 1.81\n",
			sentinel: ErrMalformedLine,
			kind:     KindMalformedLine,
			line:     2,
		},
		{
			name:     "dedented key deeper than marker",
			input:    "    data: |\n          0.40 1.81\n      temperature: 25\n",
			sentinel: ErrMalformedLine,
			kind:     KindMalformedLine,
			line:     3,
		},
		{
			name:     "block closed by key",
			input:    "DATA:\n  - type: tabulated n\n    data: |\nSPECS:\n    a: 1\n",
			sentinel: ErrEmptyData,
			kind:     KindEmptyData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, tt.sentinel), "got %v", err)
			assert.Equal(t, tt.kind, KindOf(err))

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.line, pe.Line)
		})
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := Parse(strings.NewReader("data: |\n        0.25 1.52\n        0.30\n"))
	require.Error(t, err)
	assert.Equal(t, `line 3: malformed data line "0.30"`, err.Error())

	_, err = Parse(strings.NewReader("no data here"))
	require.Error(t, err)
	assert.Equal(t, "data marker not found", err.Error())
}

func TestParseErrorUnwrapsStrconv(t *testing.T) {
	_, err := Parse(strings.NewReader("data: |\n1,5 1.5\n"))
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "1,5", pe.Text)
	assert.NotNil(t, errors.Unwrap(err))
	assert.False(t, errors.Is(err, ErrMalformedLine))
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("boom")))
	assert.Equal(t, ErrorKind(""), KindOf(nil))
}

func TestRoundTrip(t *testing.T) {
	lists := [][]Measurement{
		{{Wavelength: 0.25, RefractiveIndex: 1.52}, {Wavelength: 0.30, RefractiveIndex: 1.50}},
		{{Wavelength: 0.5, RefractiveIndex: 1.6}},
		{
			{Wavelength: 0.2113, RefractiveIndex: 1.62939},
			{Wavelength: 1e-3, RefractiveIndex: 2.5e2},
			{Wavelength: 12.000000001, RefractiveIndex: 1.0000000000000002},
			{Wavelength: -0.1, RefractiveIndex: 0},
		},
	}

	for _, list := range lists {
		var buf bytes.Buffer
		require.NoError(t, Format(&buf, list))

		got, err := Parse(&buf)
		require.NoError(t, err)
		assert.Equal(t, list, got)
	}
}

func TestParseFile(t *testing.T) {
	got, err := ParseFile(filepath.Join("testdata", "kapton.yml"))
	require.NoError(t, err)
	require.Len(t, got, 8)
	assert.Equal(t, Measurement{Wavelength: 0.40, RefractiveIndex: 1.8120}, got[0])
	assert.Equal(t, Measurement{Wavelength: 1.00, RefractiveIndex: 1.6655}, got[7])
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Equal(t, ErrorKind(""), KindOf(err))
}

func TestParseDataset(t *testing.T) {
	path := filepath.Join("testdata", "kapton.yml")
	ds, err := ParseDataset(path)
	require.NoError(t, err)

	assert.Equal(t, path, ds.Path)
	assert.Len(t, ds.Measurements, 8)
	assert.Equal(t, "Kapton HN; polyimide film", ds.Metadata.Comments)
	assert.Equal(t, "tabulated n", ds.Metadata.DataType)
	assert.Contains(t, ds.Metadata.References, "Rodríguez-Parada")
}

func TestParseDatasetWithoutYAMLHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(path, []byte("data: |\n0.25 1.52\n\t: not yaml [\n"), 0644))

	_, err := ParseDataset(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedLine))
	assert.Contains(t, err.Error(), path)

	require.NoError(t, os.WriteFile(path, []byte("data: |\n0.25 1.52\n"), 0644))
	ds, err := ParseDataset(path)
	require.NoError(t, err)
	assert.Equal(t, Metadata{}, ds.Metadata)
	assert.Len(t, ds.Measurements, 1)
}
