package pubsub

import (
	"sync"

	"github.com/zuhaib786/FerroDB/pkg/cmap"
)

// DefaultQueueSize is the per-subscriber bounded queue depth used when a
// Hub is constructed with NewHub.
const DefaultQueueSize = 128

// Message is a single published event delivered to a channel's subscribers.
type Message struct {
	Channel string
	Payload string
}

// Subscriber is a single connection's receive end for one channel
// subscription. The zero value is not usable; create one with Hub.Subscribe.
type Subscriber struct {
	ID      uint64
	channel string
	queue   chan Message
	hub     *Hub
}

// Messages returns the channel to receive published messages from. It is
// closed by Unsubscribe.
func (s *Subscriber) Messages() <-chan Message { return s.queue }

// Unsubscribe removes the subscriber from its channel and closes its queue.
// Safe to call more than once.
func (s *Subscriber) Unsubscribe() {
	s.hub.unsubscribe(s)
}

type channel struct {
	mu   sync.RWMutex
	subs map[uint64]*Subscriber
}

// Hub is a registry of channels and their subscribers. It holds a lock
// independent of the keyspace's: publishing never contends with GET/SET/etc.
//
// Channels are stored in a cmap.Map so that unrelated channels' subscribe
// and publish traffic can proceed without contending on a single global
// lock — only operations on the same channel ever block each other.
type Hub struct {
	channels  *cmap.Map[string, *channel]
	queueSize int
	nextID    uint64
	idMu      sync.Mutex
}

// NewHub creates a pub/sub hub with the default per-subscriber queue size.
func NewHub() *Hub {
	return NewHubWithQueueSize(DefaultQueueSize)
}

// NewHubWithQueueSize creates a hub whose subscriber queues hold at most
// size pending messages before PUBLISH starts dropping for that subscriber.
func NewHubWithQueueSize(size int) *Hub {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Hub{
		channels:  cmap.New[string, *channel](),
		queueSize: size,
	}
}

// Subscribe joins the connection to channelName, creating the channel's
// registry entry if this is its first subscriber.
func (h *Hub) Subscribe(channelName string) *Subscriber {
	ch, _ := h.channels.GetOrSet(channelName, &channel{subs: make(map[uint64]*Subscriber)})

	h.idMu.Lock()
	h.nextID++
	id := h.nextID
	h.idMu.Unlock()

	sub := &Subscriber{
		ID:      id,
		channel: channelName,
		queue:   make(chan Message, h.queueSize),
		hub:     h,
	}

	ch.mu.Lock()
	ch.subs[id] = sub
	ch.mu.Unlock()

	return sub
}

func (h *Hub) unsubscribe(sub *Subscriber) {
	ch, ok := h.channels.Get(sub.channel)
	if !ok {
		return
	}

	ch.mu.Lock()
	if _, present := ch.subs[sub.ID]; present {
		delete(ch.subs, sub.ID)
		close(sub.queue)
	}
	empty := len(ch.subs) == 0
	ch.mu.Unlock()

	if empty {
		h.channels.Delete(sub.channel)
	}
}

// Publish delivers a message to every current subscriber of channelName and
// returns how many subscribers it was delivered to. A subscriber whose
// queue is full still counts as delivered — the message is dropped for
// that one subscriber rather than blocking the publisher.
func (h *Hub) Publish(channelName, payload string) int {
	ch, ok := h.channels.Get(channelName)
	if !ok {
		return 0
	}

	msg := Message{Channel: channelName, Payload: payload}

	ch.mu.RLock()
	defer ch.mu.RUnlock()

	delivered := 0
	for _, sub := range ch.subs {
		select {
		case sub.queue <- msg:
		default:
			// queue full: dropped for this subscriber, still counted.
		}
		delivered++
	}
	return delivered
}

// NumSubscribers returns the current subscriber count for a channel.
func (h *Hub) NumSubscribers(channelName string) int {
	ch, ok := h.channels.Get(channelName)
	if !ok {
		return 0
	}
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	return len(ch.subs)
}

// ChannelCount returns the number of channels with at least one subscriber.
func (h *Hub) ChannelCount() int {
	return h.channels.Count()
}
