// Package dataset implements the persisted store of Thread operational datasets.
//
// The store owns the set of known datasets, keyed by a generated ID, in
// insertion order. Exactly one dataset in a non-empty store is designated
// preferred; the first dataset ever added becomes preferred by default and
// the preferred dataset cannot be deleted while other datasets remain.
//
// Dataset TLV blobs are validated with pkg/meshcop before they are accepted,
// and every mutation is written through pkg/persistence before it is
// acknowledged, so the collection survives restarts.
//
// The store serializes its own mutations; callers may use it concurrently.
package dataset
