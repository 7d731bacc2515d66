package savegame

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Kind tags a persisted state record. Kinds replace name-string type checks:
// dispatch during load is a tag lookup, never a string comparison.
type Kind uint16

const KindNone Kind = 0

// State is a named, type-checkable persisted record. Implementations own
// their payload layout and must make Save followed by Load a lossless
// round trip.
type State interface {
	StateKind() Kind
	Save(w *Writer) error
	Load(r *Reader) error
}

// Registry holds every registered state record and moves them to and from a
// single save file. Records of unknown kinds are skipped on load so older
// builds can open newer files.
type Registry struct {
	path   string
	states map[Kind]State
	order  []Kind
}

func NewRegistry(path string) *Registry {
	return &Registry{
		path:   path,
		states: map[Kind]State{},
	}
}

// Register adds a state record. Re-registering a kind replaces the old record.
func (g *Registry) Register(s State) {
	if g == nil || s == nil || s.StateKind() == KindNone {
		return
	}
	k := s.StateKind()
	if _, ok := g.states[k]; !ok {
		g.order = append(g.order, k)
	}
	g.states[k] = s
}

// Find returns the registered record for a kind, if any.
func (g *Registry) Find(k Kind) (State, bool) {
	if g == nil {
		return nil, false
	}
	s, ok := g.states[k]
	return s, ok
}

// WriteTo serializes the header and every registered record in registration
// order. Each record carries its kind and payload length.
func (g *Registry) WriteTo(w io.Writer) error {
	if g == nil {
		return fmt.Errorf("savegame: nil registry")
	}
	out := NewWriter(w)
	if err := out.WriteU32(fileMagic); err != nil {
		return fmt.Errorf("savegame: write magic: %w", err)
	}
	if err := out.WriteU8(fileVersion); err != nil {
		return fmt.Errorf("savegame: write version: %w", err)
	}
	if err := out.WriteU16(uint16(len(g.order))); err != nil {
		return fmt.Errorf("savegame: write record count: %w", err)
	}

	for _, k := range g.order {
		var payload bytes.Buffer
		if err := g.states[k].Save(NewWriter(&payload)); err != nil {
			return fmt.Errorf("savegame: save record kind=%d: %w", k, err)
		}
		if err := out.WriteU16(uint16(k)); err != nil {
			return fmt.Errorf("savegame: write record kind: %w", err)
		}
		if err := out.WriteU32(uint32(payload.Len())); err != nil {
			return fmt.Errorf("savegame: write record length: %w", err)
		}
		if _, err := w.Write(payload.Bytes()); err != nil {
			return fmt.Errorf("savegame: write record payload: %w", err)
		}
	}
	return nil
}

// ReadFrom loads records into the registered states. Records whose kind has
// no registered state are skipped.
func (g *Registry) ReadFrom(r io.Reader) error {
	if g == nil {
		return fmt.Errorf("savegame: nil registry")
	}
	in := NewReader(r)
	magic, err := in.ReadU32()
	if err != nil {
		return fmt.Errorf("savegame: read magic: %w", err)
	}
	if magic != fileMagic {
		return fmt.Errorf("savegame: bad magic 0x%08x", magic)
	}
	version, err := in.ReadU8()
	if err != nil {
		return fmt.Errorf("savegame: read version: %w", err)
	}
	if version != fileVersion {
		return fmt.Errorf("savegame: unsupported version %d", version)
	}
	count, err := in.ReadU16()
	if err != nil {
		return fmt.Errorf("savegame: read record count: %w", err)
	}

	for i := 0; i < int(count); i++ {
		rawKind, err := in.ReadU16()
		if err != nil {
			return fmt.Errorf("savegame: read record kind: %w", err)
		}
		length, err := in.ReadU32()
		if err != nil {
			return fmt.Errorf("savegame: read record length: %w", err)
		}

		s, ok := g.states[Kind(rawKind)]
		if !ok {
			if err := in.Skip(length); err != nil {
				return err
			}
			continue
		}
		payload := make([]byte, length)
		if _, err := io.ReadFull(in.r, payload); err != nil {
			return fmt.Errorf("savegame: read record payload kind=%d: %w", rawKind, err)
		}
		if err := s.Load(NewReader(bytes.NewReader(payload))); err != nil {
			return fmt.Errorf("savegame: load record kind=%d: %w", rawKind, err)
		}
	}
	return nil
}

// Save writes the registry to its file path.
func (g *Registry) Save() error {
	if g == nil || g.path == "" {
		return fmt.Errorf("savegame: registry has no path")
	}
	f, err := os.Create(g.path)
	if err != nil {
		return fmt.Errorf("savegame: create %s: %w", g.path, err)
	}
	defer f.Close()
	if err := g.WriteTo(f); err != nil {
		return err
	}
	return f.Close()
}

// Load reads the registry from its file path. A missing file is not an
// error: registered states keep their defaults.
func (g *Registry) Load() error {
	if g == nil || g.path == "" {
		return fmt.Errorf("savegame: registry has no path")
	}
	f, err := os.Open(g.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("savegame: open %s: %w", g.path, err)
	}
	defer f.Close()
	return g.ReadFrom(f)
}
