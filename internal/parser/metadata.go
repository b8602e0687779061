package parser

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// fileHeader mirrors the top-level keys of a refractiveindex.info entry.
type fileHeader struct {
	References string `yaml:"REFERENCES"`
	Comments   string `yaml:"COMMENTS"`
	Data       []struct {
		Type string `yaml:"type"`
	} `yaml:"DATA"`
}

// cleanText normalizes a header string to NFC and collapses whitespace.
func cleanText(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

// ReadMetadata decodes the descriptive header of a data file. Files that are
// not valid YAML return an empty Metadata and the decode error.
func ReadMetadata(content []byte) (Metadata, error) {
	var hdr fileHeader
	if err := yaml.Unmarshal(content, &hdr); err != nil {
		return Metadata{}, fmt.Errorf("failed to decode header: %w", err)
	}

	meta := Metadata{
		References: cleanText(hdr.References),
		Comments:   cleanText(hdr.Comments),
	}
	if len(hdr.Data) > 0 {
		meta.DataType = cleanText(hdr.Data[0].Type)
	}
	return meta, nil
}
