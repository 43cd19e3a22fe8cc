package heuristic

import "unicode/utf8"

// nonPrintableRatio is the fraction of runes in s that are neither
// printable ASCII nor one of the three whitespace control characters
// text commonly carries (\n, \r, \t).
func nonPrintableRatio(s string) float64 {
	if s == "" {
		return 0
	}
	total := 0
	nonPrintable := 0
	for _, r := range s {
		total++
		switch r {
		case '\n', '\r', '\t':
			continue
		}
		if r > 0x7e || r < 0x20 {
			nonPrintable++
		}
	}
	return float64(nonPrintable) / float64(total)
}

// Quality scores a candidate string's plausibility as natural-language
// plaintext, in [0,1]. It is 0 outright when more than half the string is
// non-printable; otherwise it is a triangular function of length: a
// flat 0.1 below length 3, rising to a peak of 1.0 at length 100, then
// falling to 0.3 at length 5000 and staying flat beyond that.
func Quality(s string) float64 {
	if nonPrintableRatio(s) > 0.5 {
		return 0
	}

	n := float64(utf8.RuneCountInString(s))
	const lowLen, peakLen, highLen = 3.0, 100.0, 5000.0
	const lowVal, peakVal, highVal = 0.1, 1.0, 0.3

	switch {
	case n < lowLen:
		return lowVal
	case n <= peakLen:
		return lowVal + (n-lowLen)/(peakLen-lowLen)*(peakVal-lowVal)
	case n <= highLen:
		return peakVal - (n-peakLen)/(highLen-peakLen)*(peakVal-highVal)
	default:
		return highVal
	}
}
