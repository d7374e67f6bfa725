package generator

import "unicode/utf8"

// byLength orders items by rune count. It is a counting sort, so members of
// equal length keep their insertion order.
func byLength(items []string) []string {
	out := make([]string, len(items))
	if len(items) == 0 {
		return out
	}
	lens := make([]int, len(items))
	maxLen := 0
	for i, s := range items {
		lens[i] = utf8.RuneCountInString(s)
		if lens[i] > maxLen {
			maxLen = lens[i]
		}
	}
	offsets := make([]int, maxLen+2)
	for _, l := range lens {
		offsets[l+1]++
	}
	for l := 1; l < len(offsets); l++ {
		offsets[l] += offsets[l-1]
	}
	for i, s := range items {
		out[offsets[lens[i]]] = s
		offsets[lens[i]]++
	}
	return out
}
