// Package csvq renders CSV with every cell double-quoted, embedded
// quotes doubled. encoding/csv quotes conditionally; the attendance
// report format quotes everything.
package csvq

import "strings"

// Render joins rows into CSV text. Rows are separated by \n with no
// trailing newline.
func Render(rows [][]string) string {
	var sb strings.Builder
	for i, row := range rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for j, cell := range row {
			if j > 0 {
				sb.WriteByte(',')
			}
			sb.WriteByte('"')
			sb.WriteString(strings.ReplaceAll(cell, `"`, `""`))
			sb.WriteByte('"')
		}
	}
	return sb.String()
}
