package discord

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

func (h *Handler) adminExtension() *Extension {
	return &Extension{
		Name: "admin",
		Commands: []*Command{
			{
				Name:      "shutdown",
				Aliases:   []string{"sd"},
				Doc:       "Shuts the bot down.",
				OwnerOnly: true,
				SkipReady: true,
				Run:       h.shutdown,
			},
		},
	}
}

func (h *Handler) errorExtension() *Extension {
	return &Extension{
		Name: "error",
		Commands: []*Command{
			{
				Name:      "recallerror",
				Aliases:   []string{"err"},
				Doc:       "Recalls the details of an error by its reference.",
				Usage:     "<ref>",
				OwnerOnly: true,
				Run:       h.recallError,
			},
		},
	}
}

func (h *Handler) shutdown(ctx context.Context, c *Context) error {
	c.logger().Info("shutdown requested", "user_id", c.Author().ID)
	if err := c.Info(ctx, "admin.shutting_down", nil); err != nil {
		c.logger().Warn("shutdown reply failed", tint.Err(err))
	}
	h.stop()
	return nil
}

func (h *Handler) recallError(ctx context.Context, c *Context) error {
	ref := c.Arg(0)
	if ref == "" {
		return errUsage
	}
	rec, err := h.svc.Errors.Recall(ctx, ref)
	if err != nil {
		return err
	}
	return c.SendFile(ctx, rec.Ref+".txt", strings.NewReader(errorReport(rec.Time, rec.Cause, rec.Traceback)))
}

func errorReport(at time.Time, cause, traceback string) string {
	return fmt.Sprintf("Time of error:\n%s\n\nCause:\n%s\n\n%s", at.UTC().Format(time.DateTime), cause, traceback)
}
