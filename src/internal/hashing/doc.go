// Package hashing feeds byte streams and string collections through the MD5
// accumulator.
//
// ChecksumReaderProxy is a transparent io.Reader that hashes everything read
// through it, so the checksum of a file or request body falls out of normal
// consumption. HashReader drives such a proxy to EOF with a fixed chunk size,
// and NewDecodingReader puts a gzip or zstd decoder in front of it when the
// input is compressed.
//
// ChecksumStringSetProxy collects unique strings and hashes each one as a
// newline-terminated line the first time it is seen.
package hashing
