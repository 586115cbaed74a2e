package minifier

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// A declaration value runs from ':' to ';' or '}'. Selectors end in '{'
	// and are never matched, so ids such as #aabbcc are left alone.
	declValue = regexp.MustCompile(`:([^;{}]+)([;}])`)
	rgbColor  = regexp.MustCompile(`(?i)rgb\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*\)`)
	rgbaColor = regexp.MustCompile(`(?i)rgba\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(0|1|0?\.\d+|1\.0+)\s*\)`)
	hexColor  = regexp.MustCompile(`#([0-9a-fA-F]{8}|[0-9a-fA-F]{6})\b`)
)

// ShortenColors rewrites colors inside declaration values to their shortest hex form:
// rgb() to #rrggbb, rgba() to #rrggbbaa, and #aabbcc / #aabbccdd to #abc / #abcd.
func ShortenColors(css string) string {
	return declValue.ReplaceAllStringFunc(css, func(decl string) string {
		m := declValue.FindStringSubmatch(decl)
		value := m[1]
		value = rgbaColor.ReplaceAllStringFunc(value, rgbaToHex)
		value = rgbColor.ReplaceAllStringFunc(value, rgbToHex)
		value = hexColor.ReplaceAllStringFunc(value, shortenHex)
		return ":" + value + m[2]
	})
}

func channels(parts []string) ([]int, bool) {
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n > 255 {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

func rgbToHex(s string) string {
	m := rgbColor.FindStringSubmatch(s)
	c, ok := channels(m[1:4])
	if !ok {
		return s
	}
	return shortenHex(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}

func rgbaToHex(s string) string {
	m := rgbaColor.FindStringSubmatch(s)
	c, ok := channels(m[1:4])
	if !ok {
		return s
	}
	alpha, err := strconv.ParseFloat(m[4], 64)
	if err != nil || alpha < 0 || alpha > 1 {
		return s
	}
	a := int(math.Round(alpha * 255))
	return shortenHex(fmt.Sprintf("#%02x%02x%02x%02x", c[0], c[1], c[2], a))
}

// shortenHex turns #aabbcc into #abc and #aabbccdd into #abcd when every pair repeats.
func shortenHex(s string) string {
	digits := strings.ToLower(s[1:])
	if len(digits) != 6 && len(digits) != 8 {
		return s
	}
	short := make([]byte, 0, len(digits)/2)
	for i := 0; i < len(digits); i += 2 {
		if digits[i] != digits[i+1] {
			return "#" + digits
		}
		short = append(short, digits[i])
	}
	return "#" + string(short)
}
