// Package discovery implements mDNS/DNS-SD discovery of Thread border routers.
//
// Thread border routers advertise the MeshCoP border agent service
// (_meshcop._udp). TXT records carry the network parameters:
//
//   - xp: extended PAN ID (raw bytes) - identifies the Thread network
//   - nn: network name
//   - vn: vendor name
//   - mn: model name
//   - tv: advertised Thread version
//   - xa: extended address of the border agent
//
// RouterDiscovery subscribes to announcements of that service type through a
// ServiceBrowser, resolves each announced instance asynchronously, and folds
// the results into a RouterRegistry keyed by a fingerprint of the extended
// PAN ID (first 64 bits of SHA-256, 16 hex chars). Two instance names
// resolving to the same extended PAN ID converge to a single registry entry.
//
// Every successful resolution signals a discovered router, whether or not
// the record changed - consumers treat discovery and update identically. A
// withdrawn announcement signals removal with just the fingerprint. The
// registry is memory-only and rebuilt each subscription session.
package discovery
