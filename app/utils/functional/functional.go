package functional

func Map[T, V any](slice []T, f func(T) V) []V {
	out := make([]V, 0, len(slice))
	for _, v := range slice {
		out = append(out, f(v))
	}
	return out
}

// Deref flattens repository rows ([]*T) into payload values ([]T).
func Deref[T any](slice []*T) []T {
	out := make([]T, 0, len(slice))
	for _, v := range slice {
		out = append(out, *v)
	}
	return out
}
