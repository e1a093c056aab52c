// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factoryvm

import (
	"github.com/ava-labs/avalanchego/ids"
)

// queue holds receipts waiting for a step. Ready receipts run in FIFO order;
// postponed receipts wait for the outcomes of their dependencies.
type queue struct {
	ready     []*Receipt
	postponed []*Receipt

	// notify is signalled without blocking whenever a receipt becomes
	// ready, so that a step loop can wake up.
	notify chan struct{}
}

func newQueue() *queue {
	return &queue{notify: make(chan struct{}, 1)}
}

// push adds [r] to the ready or postponed set.
func (q *queue) push(r *Receipt) {
	if len(r.DependsOn) > 0 {
		q.postponed = append(q.postponed, r)
		return
	}
	q.pushReady(r)
}

func (q *queue) pushReady(r *Receipt) {
	q.ready = append(q.ready, r)
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// fork returns a copy of [q] sharing its notify channel. Receipts moved
// around in the copy reach [q] only through adopt.
func (q *queue) fork() *queue {
	return &queue{
		ready:     append([]*Receipt(nil), q.ready...),
		postponed: append([]*Receipt(nil), q.postponed...),
		notify:    q.notify,
	}
}

// adopt replaces the receipts of [q] with those of [staged].
func (q *queue) adopt(staged *queue) {
	q.ready = staged.ready
	q.postponed = staged.postponed
}

// drain removes and returns every ready receipt.
func (q *queue) drain() []*Receipt {
	ready := q.ready
	q.ready = nil
	return ready
}

// release moves to the ready set, in the order they were postponed, every
// postponed receipt for which [settled] holds on all dependencies.
func (q *queue) release(settled func(ids.ID) (bool, error)) error {
	kept := q.postponed[:0]
	for _, r := range q.postponed {
		ready := true
		for _, dep := range r.DependsOn {
			ok, err := settled(dep)
			if err != nil {
				return err
			}
			if !ok {
				ready = false
				break
			}
		}
		if ready {
			q.pushReady(r)
		} else {
			kept = append(kept, r)
		}
	}
	for i := len(kept); i < len(q.postponed); i++ {
		q.postponed[i] = nil
	}
	q.postponed = kept
	return nil
}

// readyLen is the number of receipts the next step will execute.
func (q *queue) readyLen() int { return len(q.ready) }

func (q *queue) postponedLen() int { return len(q.postponed) }
