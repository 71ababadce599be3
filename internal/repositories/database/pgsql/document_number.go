package pgsql

import (
	"fmt"
	"time"
)

// documentNumberPrefix builds the PREFIX-YYYYMMDD- portion shared by all
// documents created on the given day.
func documentNumberPrefix(prefix string, day time.Time) string {
	return fmt.Sprintf("%s-%s-", prefix, day.Format("20060102"))
}

// documentNumber builds the full PREFIX-YYYYMMDD-NNNN number following the
// day's highest existing suffix. The suffix is zero padded to four digits and
// keeps growing past 9999 rather than wrapping.
func documentNumber(prefix string, day time.Time, maxSuffix int) string {
	return fmt.Sprintf("%s%04d", documentNumberPrefix(prefix, day), maxSuffix+1)
}
