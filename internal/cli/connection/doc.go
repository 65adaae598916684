// Package connection provides connection management for the FerroDB CLI.
//
// This package manages connections to FerroDB servers:
//
//   - manager.go: Tracks the single current connection
//   - resp.go: RESP client over a TCP connection
//
// RESPClient.Do sends one command and waits for its one reply before
// returning; ReadReply reads a further reply (such as a pushed pub/sub
// message) without sending anything.
package connection
