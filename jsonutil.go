package edgehttp

// skipThrough advances i past the next occurrence of until (inclusive).
func skipThrough(buffer []byte, i *int, until byte) {
	for *i < len(buffer) {
		if buffer[*i] == until {
			*i++
			return
		}
		*i++
	}
}

// skipUntil advances i to the next occurrence of until (exclusive).
func skipUntil(buffer []byte, i *int, until byte) {
	for *i < len(buffer) {
		if buffer[*i] == until {
			return
		}
		*i++
	}
}

// skipToValue advances i past the separator between a key and its
// value (any run of spaces and a single ':').
func skipToValue(buffer []byte, i *int) {
	for *i < len(buffer) {
		if buffer[*i] == ':' {
			*i++
			return
		}
		*i++
	}
}

func trimWhitespace(val []byte) []byte {
	start, end := 0, len(val)
	for start < end && isJSONSpace(val[start]) {
		start++
	}
	for end > start && isJSONSpace(val[end-1]) {
		end--
	}
	return val[start:end]
}

func isJSONSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r'
}
