package memstore

import (
	"context"
	"sync"

	"github.com/jhoicas/pipeline-crm/internal/application/ports"
)

// Notifier registra las notificaciones emitidas.
type Notifier struct {
	mu   sync.Mutex
	Sent []ports.Notification
}

func (n *Notifier) Notify(_ context.Context, msg ports.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Sent = append(n.Sent, msg)
}

// Levels niveles de las notificaciones emitidas, en orden.
func (n *Notifier) Levels() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.Sent))
	for _, m := range n.Sent {
		out = append(out, m.Level)
	}
	return out
}
