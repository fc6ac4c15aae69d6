package css

import "strconv"

// hashSeed is the initial accumulator for the identity hash.
const hashSeed uint32 = 0x811c9dc5

// hashString folds s into h one byte at a time: XOR the byte in, then
// multiply the accumulator by 16777619 (written as shift-adds, wrapping at
// 32 bits). Passing a previous result as h chains an ordered sequence of
// strings into one identifier. 32-bit collisions are accepted and not
// detected.
func hashString(h uint32, s string) uint32 {
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h += (h << 1) + (h << 4) + (h << 7) + (h << 8) + (h << 24)
	}
	return h
}

// hashName renders a hash as a compact base-32 identifier.
func hashName(h uint32) string {
	return strconv.FormatUint(uint64(h), 32)
}

// identity hashes a single string from the seed and renders it. Used for
// the content-derived keys of selectors, styles and at-rules.
func identity(s string) string {
	return hashName(hashString(hashSeed, s))
}
