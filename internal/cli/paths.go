package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// expandTemplate substitutes the filename placeholders used by the
// gen and bench commands: %V for the vertex count, %E for the edge
// axis value (with its conversion prefix), %N for the graph count.
//
//	graphs-%V-%E-%N.dat  ->  graphs-v100-e500-n3.dat
func expandTemplate(tmpl string, v int, eLabel string, eValue float64, n int) string {
	out := strings.ReplaceAll(tmpl, "%V", "v"+strconv.Itoa(v))
	out = strings.ReplaceAll(out, "%E", eLabel+trimFloat(eValue))
	out = strings.ReplaceAll(out, "%N", "n"+strconv.Itoa(n))
	return out
}

// trimFloat formats a float compactly: integers lose the decimal
// point, fractions keep up to five significant digits.
func trimFloat(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return fmt.Sprintf("%.5g", f)
}
