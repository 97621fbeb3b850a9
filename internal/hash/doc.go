// Package hash provides the CRC32-Castagnoli checksum stored in skymap
// headers. The standard library uses the SSE4.2 and ARMv8 CRC instructions
// where available.
package hash
