package utils

func U64ToBytes(u uint64) []byte {
	return []byte{
		byte(u >> 56), byte(u >> 48), byte(u >> 40), byte(u >> 32),
		byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u),
	}
}

// FingerprintString keys a statement by its SQL text.
func FingerprintString(s string) uint64 {
	return U64(s)
}

// FingerprintScoped keys a statement by SQL text within a scope such as a
// dialect name, so identical text for two backends never collides.
func FingerprintScoped(scope, s string) uint64 {
	return Mix64(U64(scope), U64(s))
}
