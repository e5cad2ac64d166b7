// Package filters provides the stream codecs used by HWP documents.
//
// Stream bodies are either stored raw or compressed with raw DEFLATE (no
// zlib or gzip framing). Distributable (view-only) documents additionally
// scramble each body stream: a 256-byte header block carries a seed from
// which an XOR mask and an AES-128 key are derived, and the remaining bytes
// are AES-ECB ciphertext.
//
// # Supported Codecs
//
// InflateRaw:
//
//	plain, err := filters.InflateRaw(data)
//
// DecryptDistributed:
//
//	plain, err := filters.DecryptDistributed(data)
//
// Both are pure functions over byte slices. Failures wrap [ErrDecompression]
// or [ErrDecryption] so callers can classify them with errors.Is.
package filters
