package relay

import (
	"github.com/sirupsen/logrus"

	"stegochat/internal/domain"
	"stegochat/internal/presence"
	"stegochat/internal/queue"
)

// Router decides, for every event, between immediate delivery and
// store-and-forward. It owns nothing itself; presence, queue and trust are
// constructed at startup and passed in.
type Router struct {
	presence *presence.Directory
	queue    *queue.Store
	trust    domain.TrustStore
	log      *logrus.Entry
}

func NewRouter(p *presence.Directory, q *queue.Store, t domain.TrustStore) *Router {
	return &Router{
		presence: p,
		queue:    q,
		trust:    t,
		log:      logrus.WithField("component", "router"),
	}
}

// Route applies the trust gate, stamps the sender, and delivers or queues.
//
// An event between principals who are not mutual friends is dropped with
// only a log line: the sender deliberately gets no error and no
// notification. Trust is checked once, here, not again at delivery time.
func (r *Router) Route(sender domain.PrincipalID, ev domain.Event) {
	if ev.To == "" || ev.To == sender {
		r.log.WithField("sender", sender).Warn("event with missing or self target dropped")
		return
	}
	if !r.trust.Mutual(sender, ev.To) {
		r.log.WithFields(logrus.Fields{
			"sender": sender,
			"target": ev.To,
		}).Info("untrusted event dropped")
		return
	}
	ev.From = sender
	r.DeliverOrQueue(ev.To, ev)
}

// DeliverOrQueue sends ev to target's live handle, or queues it if target
// is offline. A failed live send is logged and lost; the queue only covers
// the offline-at-send-time case, not mid-transit failures.
func (r *Router) DeliverOrQueue(target domain.PrincipalID, ev domain.Event) {
	if h, ok := r.presence.Lookup(target); ok {
		if err := h.Send(ev); err != nil {
			r.log.WithFields(logrus.Fields{
				"target": target,
				"handle": h.ID(),
			}).WithError(err).Warn("live delivery failed")
		}
		return
	}
	r.queue.Enqueue(target, ev)
}

// Connected flushes the principal's backlog to h in arrival order, then
// registers the handle. Registering last keeps a sender's queued events
// ahead of any new live traffic it produces while the flush runs; a final
// drain catches events that raced into the queue just before the handle
// became visible.
func (r *Router) Connected(id domain.PrincipalID, h domain.Handle) {
	flushed := 0
	for {
		backlog := r.queue.Drain(id)
		if len(backlog) == 0 {
			break
		}
		flushed += len(backlog)
		r.sendAll(id, h, backlog)
	}
	r.presence.Register(id, h)
	// Between Register and this drain a concurrent Route can deliver a new
	// event directly while an older one from the same sender still sits in
	// catchUp, reordering that pair. Closing the window would need a
	// per-target lock spanning Route and Connected; each client handles at
	// most one inbound event at a time, so the window stays tolerable.
	catchUp := r.queue.Drain(id)
	flushed += len(catchUp)
	r.sendAll(id, h, catchUp)

	if flushed > 0 {
		r.log.WithFields(logrus.Fields{
			"principal": id,
			"events":    flushed,
		}).Info("backlog flushed")
	}
}

func (r *Router) sendAll(id domain.PrincipalID, h domain.Handle, evs []domain.Event) {
	for _, ev := range evs {
		if err := h.Send(ev); err != nil {
			r.log.WithFields(logrus.Fields{
				"principal": id,
				"handle":    h.ID(),
			}).WithError(err).Warn("backlog delivery failed")
		}
	}
}

// Disconnected removes id's presence entry, but only if handleID still
// identifies the current handle. A reconnect that already replaced the
// handle must not be knocked offline by the old connection's teardown.
func (r *Router) Disconnected(id domain.PrincipalID, handleID string) {
	if h, ok := r.presence.Lookup(id); ok && h.ID() == handleID {
		r.presence.Unregister(id)
	}
}
