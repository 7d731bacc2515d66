package savegame

import (
	"bytes"
	"path/filepath"
	"testing"
)

const testKind Kind = 7

type testState struct {
	flag  bool
	count int16
	tick  int32
}

func (s *testState) StateKind() Kind { return testKind }

func (s *testState) Save(w *Writer) error {
	if err := w.WriteBool(s.flag); err != nil {
		return err
	}
	if err := w.WriteS16(s.count); err != nil {
		return err
	}
	return w.WriteS32(s.tick)
}

func (s *testState) Load(r *Reader) error {
	var err error
	if s.flag, err = r.ReadBool(); err != nil {
		return err
	}
	if s.count, err = r.ReadS16(); err != nil {
		return err
	}
	s.tick, err = r.ReadS32()
	return err
}

func TestRegistryRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		state testState
	}{
		{"zero", testState{}},
		{"positive", testState{flag: true, count: 120, tick: 98765}},
		{"negative", testState{flag: false, count: -3, tick: -1}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			src := NewRegistry("unused")
			original := c.state
			src.Register(&original)

			var buf bytes.Buffer
			if err := src.WriteTo(&buf); err != nil {
				t.Fatalf("WriteTo failed: %v", err)
			}

			dst := NewRegistry("unused")
			loaded := &testState{}
			dst.Register(loaded)
			if err := dst.ReadFrom(bytes.NewReader(buf.Bytes())); err != nil {
				t.Fatalf("ReadFrom failed: %v", err)
			}
			if *loaded != c.state {
				t.Fatalf("round trip mismatch: got %+v want %+v", *loaded, c.state)
			}

			var again bytes.Buffer
			if err := dst.WriteTo(&again); err != nil {
				t.Fatalf("second WriteTo failed: %v", err)
			}
			if !bytes.Equal(buf.Bytes(), again.Bytes()) {
				t.Fatalf("serialize after deserialize not byte-identical")
			}
		})
	}
}

func TestRegistrySkipsUnknownKinds(t *testing.T) {
	src := NewRegistry("unused")
	src.Register(&testState{flag: true, count: 9, tick: 42})

	var buf bytes.Buffer
	if err := src.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}

	// A registry with nothing registered should step over the record.
	dst := NewRegistry("unused")
	if err := dst.ReadFrom(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("ReadFrom with unknown kind failed: %v", err)
	}
}

func TestRegistryRejectsBadHeader(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"bad_magic", []byte{0xde, 0xad, 0xbe, 0xef, 1, 0, 0}},
		{"bad_version", []byte{0x53, 0x4b, 0x57, 0x54, 99, 0, 0}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := NewRegistry("unused")
			if err := g.ReadFrom(bytes.NewReader(c.data)); err == nil {
				t.Fatalf("expected error for %s", c.name)
			}
		})
	}
}

func TestRegistryFileLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "towtruck.sav")

	g := NewRegistry(path)
	g.Register(&testState{flag: true, count: 5, tick: 100})
	if err := g.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reload := NewRegistry(path)
	loaded := &testState{}
	reload.Register(loaded)
	if err := reload.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !loaded.flag || loaded.count != 5 || loaded.tick != 100 {
		t.Fatalf("loaded state mismatch: %+v", *loaded)
	}
}

func TestRegistryLoadMissingFileKeepsDefaults(t *testing.T) {
	g := NewRegistry(filepath.Join(t.TempDir(), "missing.sav"))
	s := &testState{count: 77}
	g.Register(s)
	if err := g.Load(); err != nil {
		t.Fatalf("Load of missing file should not error, got %v", err)
	}
	if s.count != 77 {
		t.Fatalf("defaults should survive missing file, got %+v", *s)
	}
}
