// Package ft8 is a Go port of the FT8 forward error correction and line
// coding layer: the 14 bit CRC outer code, the (174,91) LDPC inner code,
// and the Gray mapped 8-FSK tone symbols with Costas synchronization arrays.
package ft8
