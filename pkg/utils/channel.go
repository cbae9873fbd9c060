package utils

// IsClosed reports whether ch has been closed and drained.
// Must not be used concurrently with receives on the same channel.
func IsClosed[T any](ch chan T) bool {
	select {
	case _, ok := <-ch:
		return !ok
	default:
	}
	return false
}
