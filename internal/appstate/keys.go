package appstate

import (
	"unicode"

	"golang.org/x/mobile/event/key"
)

// Action is something the window can do in response to a key, a click on
// the shortcut bar or a palette button.
type Action int

const (
	ActionNone Action = iota
	ActionSelectSwatch
	ActionCycleSwatch
	ActionNextImage
	ActionZoomIn
	ActionZoomOut
	ActionPanLeft
	ActionPanRight
	ActionPanUp
	ActionPanDown
	ActionResetView
	ActionCopy
	ActionCopyColor
	ActionPaste
	ActionSave
	ActionQuit
)

var actionNames = map[Action]string{
	ActionNone:         "none",
	ActionSelectSwatch: "select",
	ActionCycleSwatch:  "cycle",
	ActionNextImage:    "next",
	ActionZoomIn:       "zoom-in",
	ActionZoomOut:      "zoom-out",
	ActionPanLeft:      "pan-left",
	ActionPanRight:     "pan-right",
	ActionPanUp:        "pan-up",
	ActionPanDown:      "pan-down",
	ActionResetView:    "reset",
	ActionCopy:         "copy",
	ActionCopyColor:    "copy-colour",
	ActionPaste:        "paste",
	ActionSave:         "save",
	ActionQuit:         "quit",
}

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return "unknown"
}

// Binding is an action with its argument, the swatch index for
// ActionSelectSwatch.
type Binding struct {
	Action Action
	Arg    int
}

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// swatchKeys select palette slots 1-12 in order.
var swatchKeys = []rune{'1', '2', '3', '4', '5', '6', '7', '8', '9', '0', '-', '='}

var keyboardAction = func() map[KeyShortcut]Binding {
	m := map[KeyShortcut]Binding{
		{Rune: 'n'}:                              {Action: ActionNextImage},
		{Rune: 'q'}:                              {Action: ActionQuit},
		{Rune: '+'}:                              {Action: ActionZoomIn},
		{Rune: '+', Modifiers: key.ModControl}:   {Action: ActionZoomIn},
		{Rune: '=', Modifiers: key.ModControl}:   {Action: ActionZoomIn},
		{Rune: '-', Modifiers: key.ModControl}:   {Action: ActionZoomOut},
		{Rune: 'c', Modifiers: key.ModControl}:   {Action: ActionCopy},
		{Rune: 'v', Modifiers: key.ModControl}:   {Action: ActionPaste},
		{Rune: 's', Modifiers: key.ModControl}:   {Action: ActionSave},
		{Code: key.CodeTab}:                      {Action: ActionCycleSwatch},
		{Code: key.CodeLeftArrow}:                {Action: ActionPanLeft},
		{Code: key.CodeRightArrow}:               {Action: ActionPanRight},
		{Code: key.CodeUpArrow}:                  {Action: ActionPanUp},
		{Code: key.CodeDownArrow}:                {Action: ActionPanDown},
		{Code: key.CodeHome}:                     {Action: ActionResetView},
		{Rune: 'q', Modifiers: key.ModControl}:   {Action: ActionQuit},
		{Code: key.CodeEscape, Modifiers: 0}:     {Action: ActionResetView},
		{Rune: '0', Modifiers: key.ModControl}:   {Action: ActionResetView},
		{Rune: 'n', Modifiers: key.ModControl}:   {Action: ActionNextImage},
		{Rune: 'c', Modifiers: key.ModMeta}:      {Action: ActionCopy},
		{Rune: 'v', Modifiers: key.ModMeta}:      {Action: ActionPaste},
		{Rune: 's', Modifiers: key.ModMeta}:      {Action: ActionSave},

		{Rune: 'c', Modifiers: key.ModControl | key.ModShift}: {Action: ActionCopyColor},
		{Rune: 'c', Modifiers: key.ModMeta | key.ModShift}:    {Action: ActionCopyColor},
	}
	for i, r := range swatchKeys {
		m[KeyShortcut{Rune: r}] = Binding{Action: ActionSelectSwatch, Arg: i}
	}
	return m
}()

// bindingFor resolves a key press. Combinations bound with shift match
// first; otherwise shift is ignored so that "+" typed as shift+= still
// zooms.
func bindingFor(e key.Event) (Binding, bool) {
	if e.Direction == key.DirRelease {
		return Binding{}, false
	}
	if b, ok := lookupKey(e, e.Modifiers); ok {
		return b, true
	}
	if e.Modifiers&key.ModShift == 0 {
		return Binding{}, false
	}
	return lookupKey(e, e.Modifiers&^key.ModShift)
}

func lookupKey(e key.Event, mods key.Modifiers) (Binding, bool) {
	r := unicode.ToLower(e.Rune)
	if r >= 0 {
		if b, ok := keyboardAction[KeyShortcut{Rune: r, Modifiers: mods}]; ok {
			return b, true
		}
		// Control combinations often arrive with the control character as
		// the rune; fall back to the key code.
		if mods&key.ModControl != 0 {
			if cr, ok := codeRunes[e.Code]; ok {
				if b, ok := keyboardAction[KeyShortcut{Rune: cr, Modifiers: mods}]; ok {
					return b, true
				}
			}
		}
	}
	b, ok := keyboardAction[KeyShortcut{Code: e.Code, Modifiers: mods}]
	return b, ok
}

var codeRunes = map[key.Code]rune{
	key.CodeC:              'c',
	key.CodeV:              'v',
	key.CodeS:              's',
	key.CodeN:              'n',
	key.CodeQ:              'q',
	key.Code0:              '0',
	key.CodeEqualSign:      '=',
	key.CodeHyphenMinus:    '-',
	key.CodeKeypadPlusSign: '+',
}
