package dbrepo

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DocumentPrefix builds the year-scoped prefix for a document kind, e.g.
// "INV-2026-" or "PUR-2026-".
func DocumentPrefix(kind string, year int) string {
	return fmt.Sprintf("%s-%d-", kind, year)
}

// NextDocumentNumber derives the next document number for the given prefix
// from the ids already on file. No matching ids yields "<prefix>001";
// otherwise the maximum numeric suffix is incremented and zero-padded to
// three digits (wider suffixes keep their width). A parse error on any
// matching id falls back to "<prefix>001".
//
// Not safe under concurrent callers: two near-simultaneous calls over the
// same id set return the same number. Callers must serialize document
// creation.
func NextDocumentNumber(prefix string, existing []string) string {
	first := prefix + "001"

	maxNum := 0
	matched := false
	for _, id := range existing {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		suffix := id[strings.LastIndex(id, "-")+1:]
		n, err := strconv.Atoi(suffix)
		if err != nil {
			return first
		}
		matched = true
		if n > maxNum {
			maxNum = n
		}
	}
	if !matched {
		return first
	}
	return fmt.Sprintf("%s%03d", prefix, maxNum+1)
}

func currentYear() int {
	return time.Now().Year()
}
