package render

// Label returns the answer label for the zero-based index i.
// Labels run A..Z, then continue spreadsheet style: AA, AB, ..., AZ, BA, ...
func Label(i int) string {
	if i < 0 {
		return ""
	}
	var buf []byte
	for n := i + 1; n > 0; n = (n - 1) / 26 {
		buf = append([]byte{byte('A' + (n-1)%26)}, buf...)
	}
	return string(buf)
}
