package parser

// Marker is the literal text that opens the numeric data block in a
// refractiveindex.info style file.
const Marker = "data: |"

// Measurement is one (wavelength, refractive index) pair from the data block.
type Measurement struct {
	Wavelength      float64 `json:"wavelength"`
	RefractiveIndex float64 `json:"refractive_index"`
}

// Metadata holds the descriptive header of a data file.
// Fields stay empty when the header is not valid YAML.
type Metadata struct {
	References string `json:"references,omitempty"`
	Comments   string `json:"comments,omitempty"`
	DataType   string `json:"data_type,omitempty"` // e.g. "tabulated n"
}

// Dataset is everything read from one input file.
type Dataset struct {
	Path         string        `json:"path"`
	Metadata     Metadata      `json:"metadata"`
	Measurements []Measurement `json:"measurements"`
}
