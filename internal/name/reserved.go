package name

var reservedSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(reservedList))
	for _, n := range reservedList {
		m[n] = struct{}{}
	}
	return m
}()

// IsReserved reports whether firstLabel (already normalized) is in the
// compile-time reserved list.
func IsReserved(firstLabel string) bool {
	_, ok := reservedSet[firstLabel]
	return ok
}
