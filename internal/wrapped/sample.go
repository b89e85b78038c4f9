package wrapped

// SelectRepresentatives picks up to k asset ids spread evenly across the
// input order. For n > k the chosen indices are floor(i*(n-1)/(k-1)) for
// i = 0..k-1, so the first and last ids are always kept.
func SelectRepresentatives(assetIDs []string, k int) []string {
	if len(assetIDs) <= k {
		return assetIDs
	}

	n := len(assetIDs)
	selected := make([]string, 0, k)
	for i := 0; i < k; i++ {
		idx := (i * (n - 1)) / (k - 1)
		selected = append(selected, assetIDs[idx])
	}
	return selected
}
