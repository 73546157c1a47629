// Package readutil contains methods to simplify parsing raw data
package readutil

// ReadTo reads from b until to is seen and returns the bytes between the start
// and to, exclusive of to. Returns nil if it's not found
func ReadTo(b []byte, to byte) []byte {
	var i int
	for ; i < len(b) && b[i] != to; i++ {
		// the conditions handle it all!
	}

	if i == len(b) {
		return nil
	}

	return b[0:i]
}

// ReadLine returns the bytes of b up to the first \n (exclusive), and
// the remaining data after the \n.
// If there are no \n, the whole slice is returned as the line and
// rest is nil
func ReadLine(b []byte) (line, rest []byte) {
	line = ReadTo(b, '\n')
	if line == nil {
		return b, nil
	}
	return line, b[len(line)+1:]
}
