package pubsub

// Subscriptions tracks the set of channels a single connection is joined
// to. It is not safe for concurrent use — each connection owns exactly one
// and drives it from its single reader goroutine.
type Subscriptions struct {
	hub  *Hub
	subs map[string]*Subscriber
}

// NewSubscriptions creates an empty per-connection subscription tracker
// bound to hub.
func NewSubscriptions(hub *Hub) *Subscriptions {
	return &Subscriptions{hub: hub, subs: make(map[string]*Subscriber)}
}

// Add joins channelName, returning the new subscriber and the connection's
// total subscribed-channel count after joining. Re-subscribing to an
// already-joined channel is a no-op that returns the existing subscriber.
func (s *Subscriptions) Add(channelName string) (*Subscriber, int) {
	if existing, ok := s.subs[channelName]; ok {
		return existing, len(s.subs)
	}
	sub := s.hub.Subscribe(channelName)
	s.subs[channelName] = sub
	return sub, len(s.subs)
}

// Remove leaves channelName, returning the remaining subscribed-channel
// count. Removing a channel the connection was not subscribed to is a
// no-op.
func (s *Subscriptions) Remove(channelName string) int {
	sub, ok := s.subs[channelName]
	if !ok {
		return len(s.subs)
	}
	sub.Unsubscribe()
	delete(s.subs, channelName)
	return len(s.subs)
}

// Channels returns the list of channels currently joined, in no particular
// order.
func (s *Subscriptions) Channels() []string {
	names := make([]string, 0, len(s.subs))
	for name := range s.subs {
		names = append(names, name)
	}
	return names
}

// Count returns the number of channels currently joined.
func (s *Subscriptions) Count() int { return len(s.subs) }

// Active reports whether the connection is joined to at least one channel
// — true means the connection is in subscribed mode.
func (s *Subscriptions) Active() bool { return len(s.subs) > 0 }

// RemoveAll leaves every joined channel, returning their names in the order
// they're removed so the caller can emit one reply per channel.
func (s *Subscriptions) RemoveAll() []string {
	names := s.Channels()
	for _, name := range names {
		s.Remove(name)
	}
	return names
}
