package util

import "fmt"

var sizeUnits = []string{"KB", "MB", "GB", "TB"}

// Human formats a byte count with binary units, e.g. 2048 -> "2.00 KB".
func Human(n int64) string {
	if n < 1<<10 {
		return fmt.Sprintf("%d B", n)
	}

	v := float64(n) / (1 << 10)
	unit := 0
	for v >= 1<<10 && unit < len(sizeUnits)-1 {
		v /= 1 << 10
		unit++
	}

	return fmt.Sprintf("%.2f %s", v, sizeUnits[unit])
}
