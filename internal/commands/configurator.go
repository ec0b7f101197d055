package commands

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"car-viewer/internal/app"
	"car-viewer/internal/parts"
)

// Poster accepts configurator events.
type Poster interface {
	Post(ev app.Event) bool
}

var errQueueFull = errors.New("busy, try again")

// Configurator returns the terminal form of the window's controls. reload re-reads the
// model and material files from disk; nil disables "cmd reload".
func Configurator(p Poster, reload func() error) *Registry {
	r := NewRegistry()
	post := func(ev app.Event) error {
		if !p.Post(ev) {
			return errQueueFull
		}
		return nil
	}

	for _, tag := range []parts.Tag{parts.Body, parts.Rims, parts.Glass} {
		fs := flag.NewFlagSet(string(tag), flag.ContinueOnError)
		r.Register(string(tag), string(tag)+" <material>", fs, func() error {
			name, err := oneArg(fs)
			if err != nil {
				return err
			}
			return post(app.Select{Part: tag, Name: name})
		})
	}

	lightFS := flag.NewFlagSet("light", flag.ContinueOnError)
	r.Register("light", "light <preset|none>", lightFS, func() error {
		name, err := oneArg(lightFS)
		if err != nil {
			return err
		}
		return post(app.SetLighting{Preset: strings.ToLower(name)})
	})

	followFS := flag.NewFlagSet("follow", flag.ContinueOnError)
	on := followFS.Bool("on", false, "enable the follow camera")
	off := followFS.Bool("off", false, "disable the follow camera")
	r.Register("follow", "follow [--on|--off]", followFS, func() error {
		defer func() { *on, *off = false, false }()
		switch {
		case *on && *off:
			return fmt.Errorf("follow: --on and --off are exclusive")
		case *on:
			return post(app.SetFollow{On: true})
		case *off:
			return post(app.SetFollow{On: false})
		}
		return post(app.ToggleFollow{})
	})

	doorsFS := flag.NewFlagSet("doors", flag.ContinueOnError)
	r.Register("doors", "doors", doorsFS, func() error {
		return post(app.ToggleDoors{})
	})

	if reload != nil {
		reloadFS := flag.NewFlagSet("reload", flag.ContinueOnError)
		r.Register("reload", "reload", reloadFS, reload)
	}
	return r
}

func oneArg(fs *flag.FlagSet) (string, error) {
	if fs.NArg() != 1 {
		return "", fmt.Errorf("%s: expected one name, got %d", fs.Name(), fs.NArg())
	}
	return fs.Arg(0), nil
}
