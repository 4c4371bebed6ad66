package model

// AllContents returns every instance reachable through containment from roots,
// in document order: pre-order, containments in feature order.
func AllContents(roots []*Instance) []*Instance {
	var result []*Instance

	Walk(roots, func(i *Instance) bool {
		result = append(result, i)
		return true
	})

	return result
}

// Walk visits roots and their contents in document order. Returning false from
// fn skips the contents of that instance.
func Walk(roots []*Instance, fn func(*Instance) bool) {
	for _, r := range roots {
		if fn(r) {
			Walk(r.Contents(), fn)
		}
	}
}
