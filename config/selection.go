package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSelectionRange parses paragraph range "FROM:TO", "FROM:" or "N". Both
// ends are 1-based and inclusive, zero "last" means up to the end of
// document. Empty string selects everything and returns 0, 0.
func ParseSelectionRange(s string) (first, last int, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, nil
	}
	from, to, found := strings.Cut(s, ":")
	if first, err = strconv.Atoi(strings.TrimSpace(from)); err != nil || first < 1 {
		return 0, 0, fmt.Errorf("bad selection range %q: start must be positive number", s)
	}
	if !found {
		return first, first, nil
	}
	to = strings.TrimSpace(to)
	if to == "" {
		return first, 0, nil
	}
	if last, err = strconv.Atoi(to); err != nil || last < first {
		return 0, 0, fmt.Errorf("bad selection range %q: end must be number not less than start", s)
	}
	return first, last, nil
}
