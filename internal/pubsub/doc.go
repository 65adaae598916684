// Package pubsub implements FerroDB's channel-multiplexed publish/subscribe
// fabric.
//
// The hub tracks, per channel, the set of subscribers currently joined to
// it. Each subscriber owns a bounded receive queue; PUBLISH is best-effort
// with respect to that bound — a full queue causes the message to be
// dropped for that one subscriber, who is still counted as delivered-to.
// This keeps a slow subscriber from ever blocking a publisher or growing
// hub memory without bound.
//
// The hub's lock is independent of the keyspace's. A command handler must
// never hold the keyspace lock while calling Publish.
package pubsub
