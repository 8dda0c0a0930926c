package ptr

// Ptr returns a pointer to v. Handy for optional fields in DTOs and tests.
func Ptr[T any](v T) *T {
	return &v
}
