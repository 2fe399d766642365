package selection

// RangeBetween returns the set of ids between a and b (inclusive) in the
// ordered sequence seq. The result is symmetric in a and b, and a == b yields
// the singleton {a}.
//
// If either id is absent the empty set is returned rather than an error: the
// list can be refetched between the event that captured an id and this call,
// and a stale endpoint simply means there is no range to select.
func RangeBetween(seq []string, a, b string) map[string]struct{} {
	out := make(map[string]struct{})

	ia, ib := -1, -1
	for i, id := range seq {
		if id == a {
			ia = i
		}
		if id == b {
			ib = i
		}
	}
	if ia < 0 || ib < 0 {
		return out
	}

	lo, hi := ia, ib
	if lo > hi {
		lo, hi = hi, lo
	}
	for _, id := range seq[lo : hi+1] {
		out[id] = struct{}{}
	}
	return out
}
