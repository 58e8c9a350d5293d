package primitives

import "math/big"

func leBytesToBigInt(b []byte) *big.Int {
	be := make([]byte, len(b))
	for i, c := range b {
		be[len(b)-1-i] = c
	}
	return new(big.Int).SetBytes(be)
}

func bigIntToLEBytes(v *big.Int) [32]byte {
	be := v.Bytes()
	var out [32]byte
	for i, c := range be {
		out[len(be)-1-i] = c
	}
	return out
}
