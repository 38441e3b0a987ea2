/*
NAME
  crc.go

DESCRIPTION
  crc.go implements the CRC-16/CCITT checksum used to protect outer packets.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package fsk implements the outer packet and inner message wire formats
// for the 4-FSK link, along with the CRC that protects them.
package fsk

// crc16Poly is the CRC-16/CCITT (XModem) polynomial, x^16 + x^12 + x^5 + 1.
const crc16Poly = 0x1021

// crc16Init is the initial register value before any bytes are processed.
const crc16Init = 0xFFFF

// CRC16 computes the CRC-16/CCITT checksum of b: initial register 0xFFFF,
// polynomial 0x1021, MSB-first bit processing, no reflection, no final XOR.
func CRC16(b []byte) uint16 {
	crc := uint16(crc16Init)
	for _, by := range b {
		crc ^= uint16(by) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ crc16Poly
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
