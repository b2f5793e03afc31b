// Package notify implementa el puerto Notifier con colas en memoria por usuario.
package notify

import (
	"context"
	"sync"

	"github.com/jhoicas/pipeline-crm/internal/application/ports"
	"github.com/jhoicas/pipeline-crm/pkg/logger"
)

// SystemQueue cola de las notificaciones sin actor.
const SystemQueue = "system"

// DefaultCapacity avisos pendientes por usuario; los más antiguos se descartan.
const DefaultCapacity = 50

// FlashStore guarda avisos pendientes por usuario hasta que se leen con Drain.
type FlashStore struct {
	mu       sync.Mutex
	queues   map[string][]ports.Notification
	capacity int
	log      *logger.Logger
}

// NewFlashStore crea el almacén. capacity <= 0 usa DefaultCapacity.
func NewFlashStore(capacity int, log *logger.Logger) *FlashStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &FlashStore{
		queues:   make(map[string][]ports.Notification),
		capacity: capacity,
		log:      log.Component("notify"),
	}
}

func queueKey(userID *string) string {
	if userID == nil || *userID == "" {
		return SystemQueue
	}
	return *userID
}

// Notify encola el aviso y lo registra en el log. Nunca falla.
func (s *FlashStore) Notify(_ context.Context, n ports.Notification) {
	key := queueKey(n.UserID)
	ev := s.log.Info()
	switch n.Level {
	case ports.NotificationWarning:
		ev = s.log.Warn()
	case ports.NotificationDanger:
		ev = s.log.Error()
	}
	ev.Str("queue", key).Str("level", n.Level).Str("body", n.Body).Msg(n.Title)

	s.mu.Lock()
	defer s.mu.Unlock()
	q := append(s.queues[key], n)
	if len(q) > s.capacity {
		q = q[len(q)-s.capacity:]
	}
	s.queues[key] = q
}

// Drain devuelve y vacía los avisos pendientes del usuario, del más antiguo al más reciente.
func (s *FlashStore) Drain(userID string) []ports.Notification {
	key := queueKey(&userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.queues[key]
	delete(s.queues, key)
	if q == nil {
		return []ports.Notification{}
	}
	return q
}

// Pending cantidad de avisos sin leer del usuario.
func (s *FlashStore) Pending(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queues[queueKey(&userID)])
}
