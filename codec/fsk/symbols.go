/*
NAME
  symbols.go

DESCRIPTION
  symbols.go packs 2-bit symbols into bytes (and back), 4 symbols per byte,
  MSB-first within a byte.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package fsk

// SymbolsPerByte is the number of 2-bit symbols packed into each byte.
const SymbolsPerByte = 4

// SymbolsToBytes packs the first floor(len(syms)/4)*4 symbols of syms into
// bytes, symbol[0] in bits 7..6 down to symbol[3] in bits 1..0. A trailing
// group of 1-3 symbols contributes nothing to the output.
func SymbolsToBytes(syms []int) []byte {
	n := len(syms) / SymbolsPerByte
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		base := i * SymbolsPerByte
		out[i] = byte(syms[base])<<6 | byte(syms[base+1])<<4 | byte(syms[base+2])<<2 | byte(syms[base+3])
	}
	return out
}

// BytesToSymbols unpacks b into exactly 4*len(b) symbols, the inverse of
// SymbolsToBytes.
func BytesToSymbols(b []byte) []int {
	out := make([]int, 0, len(b)*SymbolsPerByte)
	for _, by := range b {
		out = append(out,
			int(by>>6)&0x3,
			int(by>>4)&0x3,
			int(by>>2)&0x3,
			int(by)&0x3,
		)
	}
	return out
}
