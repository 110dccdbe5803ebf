package parallel

// Bands splits [0, n) into at most parts contiguous half-open ranges whose
// sizes differ by at most one. No range is shorter than minSize unless n
// itself is. n <= 0 yields a single empty band.
func Bands(n, parts, minSize int) [][2]int {
	if n <= 0 {
		return [][2]int{{0, 0}}
	}
	minSize = max(minSize, 1)
	parts = max(min(parts, n/minSize), 1)

	bands := make([][2]int, parts)
	size, extra := n/parts, n%parts
	start := 0
	for i := range bands {
		end := start + size
		if i < extra {
			end++
		}
		bands[i] = [2]int{start, end}
		start = end
	}
	return bands
}
