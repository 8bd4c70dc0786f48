package system

import (
	"os/exec"

	"github.com/dsaleh/appimage-installer/internal/log"
)

// Notifier delivers a desktop notification. Delivery is best-effort.
type Notifier interface {
	Notify(title, message string)
}

// CommandNotifier runs an external program (notify-send by default) with the
// title and message as arguments and does not wait for it.
type CommandNotifier struct {
	Command string
}

func (n CommandNotifier) Notify(title, message string) {
	name := n.Command
	if name == "" {
		name = "notify-send"
	}
	if !HasCommand(name) {
		log.Debug(log.CatNotify, "notifier not available", "command", name)
		return
	}
	cmd := exec.Command(name, title, message)
	if err := cmd.Start(); err != nil {
		log.Debug(log.CatNotify, "notification failed", "command", name, "error", err)
		return
	}
	_ = cmd.Process.Release()
}

// NopNotifier drops every notification.
type NopNotifier struct{}

func (NopNotifier) Notify(string, string) {}

// HasCommand reports whether name resolves to an executable on PATH.
func HasCommand(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
