package curl

// Quote returns s as a single shell word, quoted only when needed.
func Quote(s string) string {
	return string(appendWord(nil, s))
}

// appendContinuation appends " \" and a newline, then indents the next line.
func appendContinuation(buf []byte) []byte {
	return append(buf, " \\\n  "...)
}

// appendWord appends s as one shell word: bare when every byte is safe,
// single-quoted when s holds no quote or backslash, double-quoted otherwise.
func appendWord(buf []byte, s string) []byte {
	if s != "" && s != "--" && isBare(s) {
		return append(buf, s...)
	}
	if !containsAny(s, '\'', '\\') {
		buf = append(buf, '\'')
		buf = append(buf, s...)
		return append(buf, '\'')
	}

	buf = append(buf, '"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\', '"', '$', '`':
			buf = append(buf, '\\', c)
		default:
			buf = append(buf, c)
		}
	}
	return append(buf, '"')
}

// isBare reports whether s survives the shell unquoted.
func isBare(s string) bool {
	for i := 0; i < len(s); i++ {
		if !bareByte[s[i]] {
			return false
		}
	}
	return true
}

var bareByte = func() [256]bool {
	var t [256]bool
	for c := 'a'; c <= 'z'; c++ {
		t[c] = true
	}
	for c := 'A'; c <= 'Z'; c++ {
		t[c] = true
	}
	for c := '0'; c <= '9'; c++ {
		t[c] = true
	}
	for _, c := range "-_./:@%+=," {
		t[c] = true
	}
	return t
}()

func containsAny(s string, a, b byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == a || s[i] == b {
			return true
		}
	}
	return false
}
