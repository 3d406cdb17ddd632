// Package codec implements the frame obfuscation used by legacy relay
// clients: every byte of every frame, in both directions, is XORed with a
// fixed key. The transform is its own inverse.
package codec

// Key is the byte every frame byte is XORed with. Legacy clients hardcode
// it, so it is not configurable.
const Key byte = 0x15

// Apply returns a new slice with every byte XORed with Key. Applying it
// twice yields the original input.
func Apply(frame []byte) []byte {
	out := make([]byte, len(frame))
	for i, b := range frame {
		out[i] = b ^ Key
	}
	return out
}
