// Package api implements the WebSocket command and subscription API.
//
// Clients connect to /api/v1/ws and exchange JSON messages. Each request
// carries a client-chosen id; the matching response echoes it. A
// discover_routers request additionally opens a subscription: router
// lifecycle events are pushed to the client tagged with the request's id
// until the client unsubscribes or disconnects.
package api
