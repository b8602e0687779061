package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
)

const maxLineBytes = 1 << 20

// yamlKeyLine matches a mapping key, a sequence entry or a comment.
var yamlKeyLine = regexp.MustCompile(`^[ \t]*(?:#|(?:-[ \t]+)?[A-Za-z_][\w .-]*:(?:[ \t]|$))`)

// indentOf returns the number of leading spaces and tabs in line. A tab
// counts as one column, unlike YAML which forbids tab indentation.
func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

// closesBlock reports whether a dedented line is YAML structure that ends
// the data block. Any other dedented line is a malformed data line.
func closesBlock(line string, indent, markerIndent int) bool {
	return indent <= markerIndent && yamlKeyLine.MatchString(line)
}

// parseToken converts one token to a finite float64.
func parseToken(tok string, lineNo int) (float64, error) {
	val, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, &ParseError{Kind: KindNonNumericToken, Line: lineNo, Text: tok, Err: err}
	}
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, &ParseError{Kind: KindNonNumericToken, Line: lineNo, Text: tok}
	}
	return val, nil
}

// parseDataLine splits a block line into exactly two numeric tokens.
func parseDataLine(line string, lineNo int) (Measurement, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Measurement{}, &ParseError{Kind: KindMalformedLine, Line: lineNo, Text: strings.TrimSpace(line)}
	}
	wl, err := parseToken(fields[0], lineNo)
	if err != nil {
		return Measurement{}, err
	}
	n, err := parseToken(fields[1], lineNo)
	if err != nil {
		return Measurement{}, err
	}
	return Measurement{Wavelength: wl, RefractiveIndex: n}, nil
}

// Parse reads the first data block of r and returns its measurements in order.
//
// The block starts on the line after the first occurrence of Marker; text
// following the marker on its own line is ignored. The first non-blank line
// sets the block indentation. The block ends at a YAML key no deeper than
// the marker line, at a second marker, or at end of input. Any other line
// indented less than the block is a malformed data line. Blank lines
// inside the block are skipped.
func Parse(r io.Reader) ([]Measurement, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	markerIndent := -1
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.Contains(line, Marker) {
			markerIndent = indentOf(line)
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	if markerIndent < 0 {
		return nil, &ParseError{Kind: KindMissingMarker}
	}

	var measurements []Measurement
	blockIndent := -1
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := indentOf(line)
		if strings.Contains(line, Marker) {
			break
		}
		if blockIndent < 0 {
			if markerIndent > 0 && indent <= markerIndent {
				if closesBlock(line, indent, markerIndent) {
					break
				}
				return nil, &ParseError{Kind: KindMalformedLine, Line: lineNo, Text: strings.TrimSpace(line)}
			}
			blockIndent = indent
		}
		if indent < blockIndent {
			if closesBlock(line, indent, markerIndent) {
				break
			}
			return nil, &ParseError{Kind: KindMalformedLine, Line: lineNo, Text: strings.TrimSpace(line)}
		}

		m, err := parseDataLine(line, lineNo)
		if err != nil {
			return nil, err
		}
		measurements = append(measurements, m)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}

	if len(measurements) == 0 {
		return nil, &ParseError{Kind: KindEmptyData}
	}
	return measurements, nil
}

// ParseFile reads the data file at path and parses its measurements.
func ParseFile(path string) ([]Measurement, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// ParseDataset reads path once and returns its measurements together with
// the header metadata. Metadata decoding is best effort and never fails
// the parse.
func ParseDataset(path string) (*Dataset, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	measurements, err := Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	meta, _ := ReadMetadata(content)
	return &Dataset{
		Path:         path,
		Metadata:     meta,
		Measurements: measurements,
	}, nil
}
