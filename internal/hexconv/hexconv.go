package hexconv

// Halfbyte maps an ASCII character to its hexadecimal value. Characters which aren't
// valid hex digits map to 0xFF, so checking for `a|b > 0x0f` rejects both at once.
var Halfbyte = func() (table [256]byte) {
	for i := range table {
		table[i] = 0xFF
	}

	for c := '0'; c <= '9'; c++ {
		table[c] = byte(c - '0')
	}

	for c := 'a'; c <= 'f'; c++ {
		table[c] = byte(c-'a') + 10
		table[c-'a'+'A'] = byte(c-'a') + 10
	}

	return table
}()
