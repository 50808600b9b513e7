package narrate

// promote moves id to the front of order, inserting it when absent.
func promote(order []string, id string) []string {
	out := make([]string, 0, len(order)+1)
	out = append(out, id)
	for _, v := range order {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// reconcile drops voices that are gone and appends new ones in the order
// the engine lists them.
func reconcile(order, available []string) []string {
	avail := make(map[string]struct{}, len(available))
	for _, v := range available {
		avail[v] = struct{}{}
	}

	out := make([]string, 0, len(available))
	seen := make(map[string]struct{}, len(available))
	for _, v := range order {
		if _, ok := avail[v]; ok {
			out = append(out, v)
			seen[v] = struct{}{}
		}
	}
	for _, v := range available {
		if _, ok := seen[v]; ok {
			continue
		}
		out = append(out, v)
		seen[v] = struct{}{}
	}
	return out
}

func contains(list []string, s string) bool {
	if s == "" {
		return false
	}
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
