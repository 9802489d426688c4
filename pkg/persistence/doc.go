// Package persistence provides durable storage for the Thread dataset collection.
//
// The collection is serialized to a versioned JSON state file. Unknown fields
// are ignored on load so the schema can gain fields without breaking older
// state files. Discovery state is deliberately not persisted; the router
// registry is rebuilt from live mDNS announcements each session.
package persistence
