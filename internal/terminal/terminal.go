package terminal

import (
	"unicode/utf8"

	"car-viewer/internal/app"
	"car-viewer/internal/commands"
	"car-viewer/internal/logger"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	BarHeight = 40
	// When windowed, move bar up by this many pixels so it stays visible (avoids being cut off by taskbar/window bounds).
	WindowedBarOffset = 56
	prompt            = "> "
	fontSize          = 20
	padding           = 8
	// Number of chat/log lines drawn above the input bar when terminal is open.
	maxLinesOnScreen = 14
	lineHeight       = fontSize + 4
	maxLineLen       = 200
)

var (
	// Reused every frame when drawing the terminal bar to avoid per-frame color allocations.
	termBarColor    = rl.NewColor(40, 40, 40, 255)
	termLineColor   = rl.NewColor(80, 80, 80, 255)
	termChatBgColor = rl.NewColor(24, 24, 24, 240)
	userColor       = rl.NewColor(230, 230, 230, 255)
	botColor        = rl.NewColor(120, 200, 255, 255)
	systemColor     = rl.NewColor(240, 190, 90, 255)
)

// Terminal is the chat input bar at the bottom of the screen. It is shown/hidden with ESC.
// When closed, nothing is drawn and the keyboard drives the car.
// Lines starting with "cmd " are parsed as subcommand + flags and executed via the command registry.
// Other lines are chat phrases and are posted to the configurator as app.Command events;
// the chat router logs them together with its reply.
type Terminal struct {
	log      *logger.Logger
	reg      *commands.Registry
	post     commands.Poster
	inputBuf string
	open     bool
	font     rl.Font // optional; when set, Draw uses DrawTextEx instead of default font
}

// New returns a Terminal that shows log, runs "cmd ..." through reg and posts chat
// phrases to post. It starts closed; press ESC to open.
func New(log *logger.Logger, reg *commands.Registry, post commands.Poster) *Terminal {
	return &Terminal{log: log, reg: reg, post: post}
}

// SetFont sets the font used to draw the terminal. Zero texture ID = use raylib default.
func (t *Terminal) SetFont(font rl.Font) {
	t.font = font
}

// IsOpen returns true when the terminal is visible and capturing input.
func (t *Terminal) IsOpen() bool {
	return t.open
}

// Submit handles one entered line.
func (t *Terminal) Submit(line string) {
	if line == "" {
		return
	}
	if args, isCmd := commands.Parse(line); isCmd {
		t.log.Log(logger.User, line)
		if err := t.reg.Execute(args); err != nil {
			t.log.Log(logger.System, err.Error())
			if len(args) == 0 {
				t.log.Log(logger.System, t.reg.Help())
			}
		}
		return
	}
	if !t.post.Post(app.Command{Text: line}) {
		t.log.Log(logger.System, "Too many pending commands, try again.")
	}
}

// Update handles ESC (toggle open/closed), and when open: typing, backspace, enter. Call once per frame.
func (t *Terminal) Update() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		t.open = !t.open
	}
	if !t.open {
		return
	}
	// Paste: Ctrl+V (Windows/Linux) or Cmd+V (macOS)
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		if pasted := rl.GetClipboardText(); pasted != "" {
			t.inputBuf += pasted
		}
	} else {
		for {
			c := rl.GetCharPressed()
			if c == 0 {
				break
			}
			t.inputBuf += string(rune(c))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(t.inputBuf) > 0 {
		_, size := utf8.DecodeLastRuneInString(t.inputBuf)
		t.inputBuf = t.inputBuf[:len(t.inputBuf)-size]
	}
	if (rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter)) && t.inputBuf != "" {
		line := t.inputBuf
		t.inputBuf = ""
		t.Submit(line)
	}
}

// Draw draws the terminal bar at the bottom when open, and the recent conversation above it.
// Uses GetScreenWidth/GetScreenHeight so the bar matches the 2D overlay coordinate system (correct in fullscreen).
func (t *Terminal) Draw() {
	if !t.open {
		return
	}
	screenW := int(rl.GetScreenWidth())
	screenH := int(rl.GetScreenHeight())
	barY := screenH - BarHeight
	if !rl.IsWindowFullscreen() {
		barY -= WindowedBarOffset
	}

	chatHeight := maxLinesOnScreen * lineHeight
	chatY := barY - chatHeight
	if chatY < 0 {
		chatHeight = barY
		chatY = 0
	}
	if chatHeight > 0 {
		rl.DrawRectangle(0, int32(chatY), int32(screenW), int32(chatHeight), termChatBgColor)
	}
	entries := Recent(t.log.Entries(), maxLinesOnScreen)
	for i, e := range entries {
		y := chatY + i*lineHeight + padding
		t.drawText(Clip(logger.Format(e), maxLineLen), padding, int32(y), senderColor(e.Sender))
	}

	// Input bar
	rl.DrawRectangle(0, int32(barY), int32(screenW), int32(BarHeight), termBarColor)
	rl.DrawRectangle(0, int32(barY), int32(screenW), 1, termLineColor)
	t.drawText(prompt+t.inputBuf+"|", padding, int32(barY+padding), rl.White)
}

func (t *Terminal) drawText(text string, x, y int32, c rl.Color) {
	if t.font.Texture.ID != 0 {
		rl.DrawTextEx(t.font, text, rl.NewVector2(float32(x), float32(y)), fontSize, 1, c)
		return
	}
	rl.DrawText(text, x, y, fontSize, c)
}

// Recent returns the last n entries.
func Recent(entries []logger.Entry, n int) []logger.Entry {
	if len(entries) > n {
		return entries[len(entries)-n:]
	}
	return entries
}

// Clip shortens s to at most max bytes, ending in "..." when cut, without splitting a rune.
func Clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func senderColor(s logger.Sender) rl.Color {
	switch s {
	case logger.Bot:
		return botColor
	case logger.System:
		return systemColor
	}
	return userColor
}
