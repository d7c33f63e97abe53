// Package crc computes CRC-32 checksums with the IEEE polynomial, the one
// used by ethernet, gzip, zip and png.
package crc

import "hash"

// IEEE is the reversed CRC-32 IEEE polynomial.
const IEEE = 0xEDB88320

// Size of a CRC-32 checksum in bytes.
const Size = 4

var table [256]uint32

func init() {
	for i := range table {
		c := uint32(i)
		for j := 0; j < 8; j++ {
			if c&1 == 1 {
				c = IEEE ^ (c >> 1)
			} else {
				c >>= 1
			}
		}
		table[i] = c
	}
}

// Digest continues the checksum crc over b. Start with 0; feeding data in
// pieces gives the checksum of the concatenation:
//
//	c := Digest(0, s1)
//	c = Digest(c, s2)
func Digest(crc uint32, b []byte) uint32 {
	c := ^crc
	for _, x := range b {
		c = table[byte(c)^x] ^ (c >> 8)
	}
	return ^c
}

type digest struct {
	crc uint32
}

// New returns a hash.Hash32 computing the checksum. Sum appends it in big
// endian order.
func New() hash.Hash32 {
	return &digest{}
}

func (d *digest) Write(p []byte) (int, error) {
	d.crc = Digest(d.crc, p)
	return len(p), nil
}

func (d *digest) Sum32() uint32 {
	return d.crc
}

func (d *digest) Sum(in []byte) []byte {
	s := d.crc
	return append(in, byte(s>>24), byte(s>>16), byte(s>>8), byte(s))
}

func (d *digest) Reset() {
	d.crc = 0
}

func (d *digest) Size() int {
	return Size
}

func (d *digest) BlockSize() int {
	return 1
}
