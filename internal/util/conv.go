package util

import (
	"strconv"
)

// ParsePage normalizes page/limit query values, falling back to defaults
// and capping limit at MaxLimit.
func ParsePage(pageStr, limitStr string) (page, limit int) {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = DefaultPage
	}
	limit, err = strconv.Atoi(limitStr)
	if err != nil {
		limit = DefaultLimit
	}
	return page, ClampLimit(limit)
}

// ClampLimit maps values below 1 to DefaultLimit and caps the rest at MaxLimit.
func ClampLimit(limit int) int {
	if limit < 1 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

func Offset(page, limit int) int {
	return (page - 1) * limit
}
