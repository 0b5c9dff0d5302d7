// Package brand resolves reference garment measurements for named brands from
// a semi-structured size-chart dataset.
package brand

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	numberPattern  = regexp.MustCompile(`\d+\.?\d*`)
	integerPattern = regexp.MustCompile(`\d+`)
)

// ParseRange extracts a single representative value from a dataset cell.  The
// cell may hold a plain number ("90"), a dashed range ("71–78", en-dash or
// hyphen), or arbitrary text.  When more than one number is present the
// arithmetic mean is returned.  Blank or unparseable cells yield nil rather
// than an error.
func ParseRange(value string) *float64 {
	matches := numberPattern.FindAllString(strings.TrimSpace(value), -1)
	if len(matches) == 0 {
		return nil
	}

	sum := 0.0
	for _, m := range matches {
		n, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return nil
		}
		sum += n
	}
	result := sum / float64(len(matches))
	return &result
}

// AgeMatches reports whether targetAge falls into a dataset age cell.  The
// cell may be an ampersand-joined list ("10&11"), a dashed range ("104–110"),
// or a single integer.  targetAge is truncated to an integer before
// comparison.  Unrecognized formats match nothing.
func AgeMatches(cell string, targetAge float64) bool {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return false
	}
	target := int(targetAge)

	if strings.Contains(cell, "&") {
		for _, m := range integerPattern.FindAllString(cell, -1) {
			n, err := strconv.Atoi(m)
			if err == nil && n == target {
				return true
			}
		}
		return false
	}

	if strings.Contains(cell, "–") || strings.Contains(cell, "-") {
		nums := integerPattern.FindAllString(cell, -1)
		if len(nums) == 2 {
			lo, err1 := strconv.Atoi(nums[0])
			hi, err2 := strconv.Atoi(nums[1])
			if err1 == nil && err2 == nil {
				return lo <= target && target <= hi
			}
		}
		return false
	}

	if n, err := strconv.Atoi(cell); err == nil {
		return n == target
	}
	return false
}
