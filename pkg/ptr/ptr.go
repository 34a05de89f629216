package ptr

// Ptr returns a pointer to the given value.
// Useful for passing literals and loop variables to APIs that expect pointers.
func Ptr[T any](v T) *T {
	return &v
}
