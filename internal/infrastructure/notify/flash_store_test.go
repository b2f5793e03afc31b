package notify

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pipeline-crm/internal/application/ports"
	"github.com/jhoicas/pipeline-crm/pkg/logger"
)

func ptr(s string) *string { return &s }

func TestFlashStore_ColasPorUsuario(t *testing.T) {
	var buf bytes.Buffer
	s := NewFlashStore(0, logger.New(logger.Config{Env: "production", Output: &buf}))
	ctx := context.Background()

	s.Notify(ctx, ports.Notification{UserID: ptr("u1"), Level: ports.NotificationSuccess, Title: "Ana Gómez Pipeline Stage Updated"})
	s.Notify(ctx, ports.Notification{UserID: ptr("u2"), Level: ports.NotificationWarning, Title: "Etapa en uso"})
	s.Notify(ctx, ports.Notification{Level: ports.NotificationSuccess, Title: "seed"})

	assert.Equal(t, 1, s.Pending("u1"))
	got := s.Drain("u2")
	require.Len(t, got, 1)
	assert.Equal(t, "Etapa en uso", got[0].Title)
	assert.Empty(t, s.Drain("u2"))
	assert.Len(t, s.Drain(""), 1)
	assert.Contains(t, buf.String(), "Etapa en uso")
}

func TestFlashStore_DescartaLosMasAntiguos(t *testing.T) {
	s := NewFlashStore(3, logger.Nop())
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		s.Notify(ctx, ports.Notification{UserID: ptr("u1"), Title: fmt.Sprint(i)})
	}

	got := s.Drain("u1")
	require.Len(t, got, 3)
	assert.Equal(t, "2", got[0].Title)
	assert.Equal(t, "4", got[2].Title)
}

func TestFlashStore_Concurrente(t *testing.T) {
	s := NewFlashStore(1000, logger.Nop())
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				s.Notify(ctx, ports.Notification{UserID: ptr("u1")})
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 200, s.Pending("u1"))
}
