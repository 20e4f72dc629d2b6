package mail

import (
	"context"
	"fmt"
	"sync"
)

type FakeOutbox struct {
	Outbox      []Message
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeOutbox() *FakeOutbox {
	return &FakeOutbox{}
}

func (o *FakeOutbox) Enqueue(ctx context.Context, m Message) error {
	if o.ReturnError {
		return fmt.Errorf("could not enqueue %v", m)
	}
	o.lock.Lock()
	defer o.lock.Unlock()
	o.Outbox = append(o.Outbox, m)
	return nil
}

func (o *FakeOutbox) Recipients() [][]string {
	o.lock.Lock()
	defer o.lock.Unlock()
	recipients := make([][]string, 0, len(o.Outbox))
	for _, m := range o.Outbox {
		recipients = append(recipients, m.To)
	}
	return recipients
}

type FakeTransport struct {
	Delivered   []Message
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeTransport() *FakeTransport {
	return &FakeTransport{}
}

func (t *FakeTransport) Deliver(ctx context.Context, m Message) error {
	if t.ReturnError {
		return fmt.Errorf("could not deliver %v", m)
	}
	t.lock.Lock()
	defer t.lock.Unlock()
	t.Delivered = append(t.Delivered, m)
	return nil
}
