package protocol

// checksum computes the frame checksum: the XOR of every byte from the start
// marker through the last body byte. A valid frame including its checksum
// XORs to zero.
func checksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum ^= b
	}
	return sum
}
