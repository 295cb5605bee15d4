package discord

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lmittmann/tint"
)

const presenceInterval = time.Minute

var presenceMessages = []string{
	"Invite Blue Brain to your server by using @Blue Brain invite",
	"To view information about Blue Brain, use @Blue Brain botinfo",
	"Need help with Blue Brain? Join the support server! Use @Blue Brain support to get an invite",
	"Available under the GPLv3 license",
}

// presence rotates through presenceMessages.
type presence struct {
	mu   sync.Mutex
	next int
}

func (p *presence) name(version string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	msg := presenceMessages[p.next%len(presenceMessages)]
	p.next++
	return fmt.Sprintf("@Blue Brain help • %s • Version %s", msg, version)
}

// RunScheduledTasks refreshes the presence every minute until ctx is done.
func (h *Handler) RunScheduledTasks(ctx context.Context, s Session) {
	ticker := time.NewTicker(presenceInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.setPresence(s)
		}
	}
}

func (h *Handler) setPresence(s Session) {
	if err := s.UpdateWatchStatus(0, h.presence.name(h.version)); err != nil {
		h.log.Warn("presence update failed", tint.Err(err))
	}
}
