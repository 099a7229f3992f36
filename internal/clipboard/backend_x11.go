//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"fmt"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Without cgo the clipboard is served directly over the X11 protocol. A
// hidden window owns the CLIPBOARD selection and answers conversion
// requests from its own event loop.

const needsDisplay = true

type x11Atoms struct {
	clipboard xproto.Atom
	targets   xproto.Atom
	utf8      xproto.Atom
	textPlain xproto.Atom
	png       xproto.Atom
	property  xproto.Atom
}

type x11Backend struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  x11Atoms

	mu    sync.RWMutex
	owned map[xproto.Atom][]byte // conversion target to payload
}

func newBackend() backend { return &x11Backend{} }

func (b *x11Backend) init() error {
	conn, err := xgb.NewConn()
	if err != nil {
		return err
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return err
	}
	const mask = xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify
	if err := xproto.CreateWindowChecked(conn, screen.RootDepth, window, screen.Root,
		0, 0, 1, 1, 0, xproto.WindowClassInputOutput, screen.RootVisual,
		xproto.CwEventMask, []uint32{mask}).Check(); err != nil {
		conn.Close()
		return err
	}
	atoms, err := internX11Atoms(conn)
	if err != nil {
		conn.Close()
		return err
	}
	b.conn, b.window, b.atoms = conn, window, atoms
	go b.serve()
	return nil
}

func internX11Atoms(conn *xgb.Conn) (x11Atoms, error) {
	names := []string{"CLIPBOARD", "TARGETS", "UTF8_STRING", "text/plain;charset=utf-8", "image/png", "COLORFILL_SELECTION"}
	got := make([]xproto.Atom, len(names))
	for i, n := range names {
		reply, err := xproto.InternAtom(conn, false, uint16(len(n)), n).Reply()
		if err != nil {
			return x11Atoms{}, fmt.Errorf("intern %s: %w", n, err)
		}
		got[i] = reply.Atom
	}
	return x11Atoms{
		clipboard: got[0],
		targets:   got[1],
		utf8:      got[2],
		textPlain: got[3],
		png:       got[4],
		property:  got[5],
	}, nil
}

// targetsFor lists the conversion targets that carry f, preferred first.
func (b *x11Backend) targetsFor(f format) []xproto.Atom {
	if f == formatPNG {
		return []xproto.Atom{b.atoms.png}
	}
	return []xproto.Atom{b.atoms.utf8, b.atoms.textPlain, xproto.AtomString}
}

func (b *x11Backend) write(f format, data []byte) error {
	owned := make(map[xproto.Atom][]byte)
	payload := append([]byte(nil), data...)
	for _, t := range b.targetsFor(f) {
		owned[t] = payload
	}
	b.mu.Lock()
	b.owned = owned
	b.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(b.conn, b.window, b.atoms.clipboard, xproto.TimeCurrentTime).Check()
}

func (b *x11Backend) serve() {
	for {
		ev, err := b.conn.WaitForEvent()
		if err != nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			b.answer(e)
		case xproto.SelectionClearEvent:
			b.mu.Lock()
			b.owned = nil
			b.mu.Unlock()
		}
	}
}

func (b *x11Backend) answer(e xproto.SelectionRequestEvent) {
	property := e.Property
	if property == xproto.AtomNone {
		property = e.Target
	}

	b.mu.RLock()
	owned := b.owned
	b.mu.RUnlock()

	if e.Target == b.atoms.targets {
		list := []xproto.Atom{b.atoms.targets}
		for t := range owned {
			list = append(list, t)
		}
		buf := make([]byte, 4*len(list))
		for i, a := range list {
			xgb.Put32(buf[4*i:], uint32(a))
		}
		xproto.ChangeProperty(b.conn, xproto.PropModeReplace, e.Requestor, property,
			xproto.AtomAtom, 32, uint32(len(list)), buf)
	} else if payload, ok := owned[e.Target]; ok && len(payload) > 0 {
		xproto.ChangeProperty(b.conn, xproto.PropModeReplace, e.Requestor, property,
			e.Target, 8, uint32(len(payload)), payload)
	} else {
		property = xproto.AtomNone
	}

	reply := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  property,
	}
	_ = xproto.SendEvent(b.conn, false, e.Requestor, 0, string(reply.Bytes()))
}

func (b *x11Backend) read(f format) ([]byte, error) {
	var lastErr error
	for _, t := range b.targetsFor(f) {
		data, err := b.convert(t)
		if err == nil {
			return data, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// convert asks the current owner for target on a private connection so the
// request does not race the serving event loop.
func (b *x11Backend) convert(target xproto.Atom) ([]byte, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}
	if err := xproto.CreateWindowChecked(conn, 0, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOnly, 0, xproto.CwEventMask,
		[]uint32{xproto.EventMaskPropertyChange}).Check(); err != nil {
		return nil, err
	}
	defer xproto.DestroyWindow(conn, window)

	if err := xproto.ConvertSelectionChecked(conn, window, b.atoms.clipboard, target,
		b.atoms.property, xproto.TimeCurrentTime).Check(); err != nil {
		return nil, err
	}
	for {
		ev, err := conn.WaitForEvent()
		if err != nil {
			return nil, err
		}
		e, ok := ev.(xproto.SelectionNotifyEvent)
		if !ok {
			continue
		}
		if e.Property == xproto.AtomNone {
			return nil, fmt.Errorf("%w: owner cannot provide the requested form", ErrEmpty)
		}
		reply, perr := xproto.GetProperty(conn, true, window, e.Property,
			xproto.GetPropertyTypeAny, 0, (1<<31)-1).Reply()
		if perr != nil {
			return nil, perr
		}
		return append([]byte(nil), reply.Value...), nil
	}
}
