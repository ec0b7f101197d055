package app

import (
	"car-viewer/internal/material"
	"car-viewer/internal/model"
	"car-viewer/internal/parts"
)

// Event is something that changes the configurator. Events are posted from any
// goroutine and applied in order by Drain.
type Event interface {
	event()
}

// ModelLoaded carries a freshly decoded model, or the error that prevented it.
type ModelLoaded struct {
	Root *model.Node
	Path string
	Err  error
}

// LibraryLoaded replaces the material library. Current selections are looked up again
// by name in the new library.
type LibraryLoaded struct {
	Library *material.Library
	Err     error
}

// Command is a typed chat phrase.
type Command struct {
	Text string
}

// VoiceResult is the transcript of a push-to-talk recording.
type VoiceResult struct {
	Text string
}

// VoiceFailed reports that a recording could not be transcribed.
type VoiceFailed struct {
	Err error
}

// Select picks a material by name for one paintable part.
type Select struct {
	Part parts.Tag
	Name string
}

// SetLighting activates a preset, or lighting.None.
type SetLighting struct {
	Preset string
}

// ToggleFollow flips the follow camera.
type ToggleFollow struct{}

// SetFollow turns the follow camera on or off.
type SetFollow struct {
	On bool
}

// ToggleDoors opens closed doors and closes open ones.
type ToggleDoors struct{}

func (ModelLoaded) event()   {}
func (LibraryLoaded) event() {}
func (Command) event()       {}
func (VoiceResult) event()   {}
func (VoiceFailed) event()   {}
func (Select) event()        {}
func (SetLighting) event()   {}
func (ToggleFollow) event()  {}
func (SetFollow) event()     {}
func (ToggleDoors) event()   {}
