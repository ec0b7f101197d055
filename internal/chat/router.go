// Package chat turns typed or spoken phrases into configurator actions. Phrases are
// matched against an ordered list of intents; the first intent that matches handles the
// phrase and no other intent is consulted.
package chat

import (
	"fmt"
	"strings"

	"car-viewer/internal/logger"
	"car-viewer/internal/material"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Status is the kind of Outcome.
type Status int

const (
	Applied Status = iota
	NotUnderstood
	NotReady
)

func (s Status) String() string {
	switch s {
	case Applied:
		return "applied"
	case NotUnderstood:
		return "not understood"
	case NotReady:
		return "not ready"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Outcome is the result of routing one phrase.
type Outcome struct {
	Status Status
	Intent string
	Reply  string
}

// Target is the state the router acts on.
type Target interface {
	Ready() bool
	// OpenDoors starts the door animation and returns how many doors the model has.
	OpenDoors() int
	SetBody(m *material.Material)
	SetRims(m *material.Material)
	SetGlass(m *material.Material)
	SetLighting(preset string) bool
}

// Intent is one recognized command. Action receives lower-cased text.
type Intent struct {
	Name   string
	Match  IntentMatcher
	Action func(text string) Outcome
}

// Router routes phrases to intents and records the exchange in the conversation log.
// It is not safe for concurrent use; callers serialize Route on one goroutine.
type Router struct {
	lib     *material.Library
	presets []string
	target  Target
	log     *logger.Logger
	finder  NameFinder
	intents []Intent
}

// NewRouter returns a router with the default intents: open doors, body paint, rims,
// glass, lighting.
func NewRouter(lib *material.Library, presets []string, target Target, log *logger.Logger) *Router {
	r := &Router{lib: lib, presets: presets, target: target, log: log, finder: SubstringFinder{}}
	r.intents = r.DefaultIntents()
	return r
}

// SetFinder replaces how option names are found in text.
func (r *Router) SetFinder(f NameFinder) {
	r.finder = f
}

// SetIntents replaces the intent list. Order is priority.
func (r *Router) SetIntents(intents []Intent) {
	r.intents = intents
}

// Intents returns the intent list in priority order.
func (r *Router) Intents() []Intent {
	return r.intents
}

// DefaultIntents returns the built-in intents in priority order.
func (r *Router) DefaultIntents() []Intent {
	return []Intent{
		{Name: "open-doors", Match: AllWords("open", "door"), Action: r.openDoors},
		{Name: "set-body", Match: AnyWord("body", "paint"), Action: r.pick("body paint", material.Main, r.target.SetBody)},
		{Name: "set-rims", Match: AnyWord("rim", "details"), Action: r.pick("rims", material.Main, r.target.SetRims)},
		{Name: "set-glass", Match: Contains("glass"), Action: r.pick("glass", material.Glass, r.target.SetGlass)},
		{Name: "set-lighting", Match: AnyWord("light", "lighting"), Action: r.lighting},
	}
}

// Route handles one phrase from the user. The phrase and the reply are both logged.
func (r *Router) Route(text string) Outcome {
	if r.log != nil {
		r.log.Log(logger.User, text)
	}
	out := r.route(text)
	if r.log != nil {
		r.log.Log(logger.Bot, out.Reply)
	}
	return out
}

func (r *Router) route(text string) Outcome {
	if !r.target.Ready() {
		return Outcome{Status: NotReady, Reply: "The car is still loading, try again in a moment."}
	}
	norm := cases.Lower(language.Und).String(strings.TrimSpace(text))
	if norm == "" {
		return r.notUnderstood("")
	}
	for _, in := range r.intents {
		if !in.Match.Matches(norm) {
			continue
		}
		out := in.Action(norm)
		out.Intent = in.Name
		return out
	}
	return r.notUnderstood("")
}

func (r *Router) openDoors(string) Outcome {
	n := r.target.OpenDoors()
	if n == 0 {
		return Outcome{Status: Applied, Reply: "This car has no doors I can open."}
	}
	return Outcome{Status: Applied, Reply: "Opening the doors."}
}

func (r *Router) pick(part string, c material.Category, set func(*material.Material)) func(string) Outcome {
	return func(text string) Outcome {
		name, ok := r.finder.Find(text, r.lib.Names(c))
		if !ok {
			return r.notUnderstood(fmt.Sprintf("Available %s options: %s.", part, strings.Join(r.lib.Names(c), ", ")))
		}
		m, _ := r.lib.Lookup(c, name)
		set(m)
		return Outcome{Status: Applied, Reply: fmt.Sprintf("Set %s to %s.", part, name)}
	}
}

func (r *Router) lighting(text string) Outcome {
	name, ok := r.finder.Find(text, r.presets)
	if !ok {
		return r.notUnderstood(fmt.Sprintf("Available lighting: %s.", strings.Join(r.presets, ", ")))
	}
	r.target.SetLighting(name)
	return Outcome{Status: Applied, Reply: fmt.Sprintf("Lighting set to %s.", name)}
}

func (r *Router) notUnderstood(hint string) Outcome {
	reply := "Sorry, I didn't understand. " + r.Help()
	if hint != "" {
		reply += " " + hint
	}
	return Outcome{Status: NotUnderstood, Reply: reply}
}

// Help lists example phrases built from the configured options.
func (r *Router) Help() string {
	ex := []string{`"open the doors"`}
	if names := r.lib.Names(material.Main); len(names) > 0 {
		ex = append(ex, fmt.Sprintf(`"make the body %s"`, names[0]))
		ex = append(ex, fmt.Sprintf(`"set rims to %s"`, names[len(names)-1]))
	}
	if names := r.lib.Names(material.Glass); len(names) > 0 {
		ex = append(ex, fmt.Sprintf(`"%s glass"`, names[0]))
	}
	if len(r.presets) > 0 {
		ex = append(ex, fmt.Sprintf(`"%s lighting"`, r.presets[0]))
	}
	return "Try " + strings.Join(ex, ", ") + "."
}
