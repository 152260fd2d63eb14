package value

import "strconv"

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'g', -1, 64)
}
