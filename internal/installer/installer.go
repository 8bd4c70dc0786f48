package installer

import (
	"errors"

	"github.com/dsaleh/appimage-installer/internal/system"
)

// ErrNotFound is returned when the bundle to install does not exist.
var ErrNotFound = errors.New("file not found")

// Step identifies a stage of an install.
type Step int

const (
	StepExtracting Step = iota
	StepCopyingBinary
	StepCopyingIcon
	StepWritingEntry
	StepRemoving
)

func (s Step) String() string {
	return [...]string{
		"extracting", "copying binary", "copying icon", "writing entry", "removing",
	}[s]
}

// ProgressMsg is passed to Options.Progress as each step starts.
type ProgressMsg struct {
	Step Step
	Path string
}

// Options configures Install and Uninstall.
type Options struct {
	Layout   system.Layout
	Notifier system.Notifier   // nil disables notifications
	Progress func(ProgressMsg) // optional
}

func (o Options) progress(step Step, path string) {
	if o.Progress != nil {
		o.Progress(ProgressMsg{Step: step, Path: path})
	}
}

func (o Options) notify(title, message string) {
	if o.Notifier != nil {
		o.Notifier.Notify(title, message)
	}
}
