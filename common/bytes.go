package common

// RightPadBytes returns a new slice of length size containing the bytes of
// slice, right-padded with zeroes. If slice is already at least size bytes
// long it is returned unmodified.
func RightPadBytes(slice []byte, size int) []byte {
	if size <= len(slice) {
		return slice
	}
	padded := make([]byte, size)
	copy(padded, slice)
	return padded
}
