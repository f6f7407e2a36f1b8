package lifecycle

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DocketSuffix is appended to every docket number.
const DocketSuffix = "IMR"

var docketPattern = regexp.MustCompile(`^(\d{6})-(\d{4,})-` + DocketSuffix + `$`)

// ParseDocketNo splits a docket number into its date and daily sequence.
func ParseDocketNo(docket string) (time.Time, int, error) {
	m := docketPattern.FindStringSubmatch(docket)
	if m == nil {
		return time.Time{}, 0, fmt.Errorf("invalid docket number %q", docket)
	}
	date, err := time.Parse("060102", m[1])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid docket date %q: %w", m[1], err)
	}
	seq, err := strconv.Atoi(m[2])
	if err != nil || seq <= 0 {
		return time.Time{}, 0, fmt.Errorf("invalid docket sequence %q", m[2])
	}
	return date, seq, nil
}

// IsDocketNo reports whether s has the docket layout.
func IsDocketNo(s string) bool {
	_, _, err := ParseDocketNo(s)
	return err == nil
}
