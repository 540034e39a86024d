package cpu

// addCarry returns a+b mod 256 and 1 if the sum exceeded 255, else 0.
func addCarry(a, b byte) (sum, carry byte) {
	r := uint16(a) + uint16(b)
	if r > 0xFF {
		carry = 1
	}
	return byte(r), carry
}

// subtract returns a-b wrapping and 1 if no borrow occurred (a >= b), else 0.
func subtract(a, b byte) (diff, noBorrow byte) {
	if a >= b {
		noBorrow = 1
	}
	return a - b, noBorrow
}

// shiftRight returns a>>1 and the bit shifted out.
func shiftRight(a byte) (res, low byte) {
	return a >> 1, a & 0x01
}

// shiftLeft returns a<<1 mod 256 and the bit shifted out.
func shiftLeft(a byte) (res, high byte) {
	return a << 1, a >> 7
}
