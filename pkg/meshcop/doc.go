// Package meshcop decodes Thread MeshCoP operational dataset TLVs.
//
// An operational dataset is a sequence of type-length-value records carrying
// the credentials and parameters of a Thread network (network name, PAN ID,
// extended PAN ID, network key, channel, ...). Each record is encoded as a
// one-byte type tag, a one-byte length, and a value of that length.
//
// Parse validates every type tag against the MeshCoP registry and fails with
// an InvalidFormatError on the first unrecognized tag or truncated record.
// The raw TLV blob stays the canonical form throughout the system; this
// package only reads it, it never re-encodes.
package meshcop
