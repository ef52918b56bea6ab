package poly

// StripTrailing removes the trailing run of elements equal to trim. The
// result is a prefix of v and shares its backing array.
func StripTrailing[T comparable](v []T, trim T) []T {
	for len(v) > 0 && v[len(v)-1] == trim {
		v = v[:len(v)-1]
	}
	return v
}

// StripTrailingFunc is StripTrailing for element types compared by isTrim.
func StripTrailingFunc[T any](v []T, isTrim func(T) bool) []T {
	for len(v) > 0 && isTrim(v[len(v)-1]) {
		v = v[:len(v)-1]
	}
	return v
}
