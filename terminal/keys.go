package terminal

import (
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// Named keys usable in input mappings; printable runes map to themselves, lowercased
var keyNames = map[tcell.Key]string{
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyEnter:      "enter",
	tcell.KeyEscape:     "escape",
	tcell.KeyTab:        "tab",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyDelete:     "delete",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyPgUp:       "pgup",
	tcell.KeyPgDn:       "pgdn",
}

// Rune aliases for keys that can't be bare single-char TOML values
var runeAliases = map[rune]string{
	' ': "space",
}

var knownNames = func() map[string]bool {
	m := make(map[string]bool, len(keyNames)+len(runeAliases))
	for _, n := range keyNames {
		m[n] = true
	}
	for _, n := range runeAliases {
		m[n] = true
	}
	return m
}()

// KeyName returns the mapping name for a key event, "" for keys with no name
func KeyName(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if alias, ok := runeAliases[r]; ok {
			return alias
		}
		if !unicode.IsPrint(r) {
			return ""
		}
		return string(unicode.ToLower(r))
	}
	return keyNames[ev.Key()]
}

// IsKnownKey reports whether name can ever be produced by KeyName
func IsKnownKey(name string) bool {
	if knownNames[name] {
		return true
	}
	r, size := utf8.DecodeRuneInString(name)
	return size == len(name) && r != utf8.RuneError && r != ' ' && unicode.IsPrint(r) && !unicode.IsUpper(r)
}

// isQuit reports the hardwired quit chords
func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyCtrlQ:
		return true
	}
	return false
}
