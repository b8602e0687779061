package parser

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// dataIndent matches the indentation refractiveindex.info uses for data lines.
const dataIndent = "        "

// Format writes measurements as a data block that Parse reads back to the
// same values. Floats use the shortest representation that round-trips.
func Format(w io.Writer, measurements []Measurement) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, Marker); err != nil {
		return err
	}
	for _, m := range measurements {
		_, err := fmt.Fprintf(bw, "%s%s %s\n", dataIndent,
			strconv.FormatFloat(m.Wavelength, 'g', -1, 64),
			strconv.FormatFloat(m.RefractiveIndex, 'g', -1, 64))
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}
