package outbox

import (
	"context"
	e "registrar/internal/core/domain/errors"
	"registrar/internal/core/domain/logging"
	"registrar/internal/core/domain/mail"
	"sync"
)

// Direct hands every message to the transport synchronously.
type Direct struct {
	transport mail.Transport
}

func NewDirect(transport mail.Transport) *Direct {
	if transport == nil {
		panic(e.NewNilArgumentError("transport"))
	}
	return &Direct{transport: transport}
}

func (o *Direct) Enqueue(ctx context.Context, m mail.Message) error {
	return o.transport.Deliver(ctx, m)
}

// Local keeps messages in memory and logs them. It is used in test mode.
type Local struct {
	log      logging.Logger
	messages []mail.Message
	lock     sync.RWMutex
}

func NewLocal(log logging.Logger) *Local {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &Local{log: log}
}

func (o *Local) Enqueue(ctx context.Context, m mail.Message) error {
	o.lock.Lock()
	o.messages = append(o.messages, m)
	o.lock.Unlock()
	o.log.Info(
		ctx,
		"Message stored in local outbox.",
		logging.Entry("messageID", m.ID),
		logging.Entry("to", m.To),
		logging.Entry("subject", m.Subject),
	)
	return nil
}

func (o *Local) Messages() []mail.Message {
	o.lock.RLock()
	defer o.lock.RUnlock()
	messages := make([]mail.Message, len(o.messages))
	copy(messages, o.messages)
	return messages
}
