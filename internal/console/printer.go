package console

import (
	"fmt"
	"io"
	"strings"
	"time"

	"supply-chain-cli/internal/entity"
)

const (
	NoResultsMessage = "No results."

	// separatorWidth is the number of dashes printed per column.
	separatorWidth = 12
)

// PrintResult writes the column names, a separator line and one line per
// row. Every value is followed by a single space.
func PrintResult(w io.Writer, rs *entity.ResultSet) {
	if rs.Empty() {
		fmt.Fprintln(w, NoResultsMessage)
		return
	}

	for _, name := range rs.Columns {
		fmt.Fprintf(w, "%s ", name)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("-", len(rs.Columns)*separatorWidth))

	for _, row := range rs.Rows {
		for _, v := range row {
			fmt.Fprintf(w, "%s ", formatValue(v))
		}
		fmt.Fprintln(w)
	}
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format(time.DateOnly)
		}
		return val.Format(time.DateTime)
	default:
		return fmt.Sprint(val)
	}
}
