package filtration

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WriteIntervals emits one "dim birth death" line per interval, with "inf"
// for essential classes.
func WriteIntervals(w io.Writer, d Diagram) error {
	bw := bufio.NewWriter(w)

	for _, p := range d {
		death := "inf"
		if p.HasDeath {
			death = strconv.FormatFloat(p.Death, 'g', -1, 64)
		}

		if _, err := fmt.Fprintf(bw, "%d %s %s\n", p.Dim, strconv.FormatFloat(p.Birth, 'g', -1, 64), death); err != nil {
			return err
		}
	}

	return bw.Flush()
}
