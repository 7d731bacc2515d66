package actor

import (
	"bytes"
	"testing"

	"github.com/milk9111/towtruck/savegame"
)

func TestHighScoreSlots(t *testing.T) {
	s := NewMissionState()
	for id := 1; id <= 5; id++ {
		if !s.RecordScore(id, int16(id*10)) {
			t.Fatalf("RecordScore failed for driver %d", id)
		}
	}

	cases := []struct {
		name   string
		driver int
		want   int16
	}{
		{"driver_1", 1, 10},
		{"driver_3", 3, 30},
		{"driver_5", 5, 50},
		{"zero_id", 0, 0},
		{"negative_id", -2, 0},
		{"above_range", 6, 0},
		{"way_above_range", 9000, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := s.HighScore(c.driver); got != c.want {
				t.Fatalf("HighScore(%d) = %d, want %d", c.driver, got, c.want)
			}
		})
	}
}

func TestRecordScoreMonotonicBest(t *testing.T) {
	s := NewMissionState()
	s.RecordScore(2, 100)

	if s.RecordScore(2, 50) {
		t.Fatalf("lower score should not overwrite best")
	}
	if got := s.HighScore(2); got != 100 {
		t.Fatalf("best decreased to %d", got)
	}

	if !s.RecordScore(2, 100) {
		t.Fatalf("equal score should overwrite")
	}
	if !s.RecordScore(2, 150) {
		t.Fatalf("higher score should overwrite")
	}
	if got := s.HighScore(2); got != 150 {
		t.Fatalf("best should be 150, got %d", got)
	}

	if s.RecordScore(0, 999) || s.RecordScore(6, 999) {
		t.Fatalf("out-of-range drivers must not record")
	}
}

func TestMissionStateRoundTrip(t *testing.T) {
	src := NewMissionState()
	src.StartTime = 123456
	src.InProgress = true
	src.Attempts = 7
	src.Completions = 4
	src.Failures = 3
	src.BestTier = 1
	src.LastScore = 150
	src.RecordScore(1, 300)
	src.RecordScore(4, 50)
	src.RecordScore(5, 10)

	var buf bytes.Buffer
	if err := src.Save(savegame.NewWriter(&buf)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Layout: 4 reserved + 4 time + 1 flag + 5*2 counters + 5*2 scores.
	if buf.Len() != 29 {
		t.Fatalf("unexpected record size %d", buf.Len())
	}

	dst := NewMissionState()
	if err := dst.Load(savegame.NewReader(bytes.NewReader(buf.Bytes()))); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	for id := 1; id <= 5; id++ {
		if dst.HighScore(id) != src.HighScore(id) {
			t.Fatalf("score slot %d mismatch: %d vs %d", id, dst.HighScore(id), src.HighScore(id))
		}
	}
	if dst.StartTime != src.StartTime || dst.InProgress != src.InProgress {
		t.Fatalf("header fields mismatch: %+v vs %+v", dst, src)
	}
	if dst.Attempts != 7 || dst.Completions != 4 || dst.Failures != 3 || dst.BestTier != 1 || dst.LastScore != 150 {
		t.Fatalf("counters mismatch: %+v", dst)
	}

	var again bytes.Buffer
	if err := dst.Save(savegame.NewWriter(&again)); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), again.Bytes()) {
		t.Fatalf("serialize after deserialize is not byte-identical")
	}
}

func TestMissionStateInRegistry(t *testing.T) {
	src := savegame.NewRegistry("unused")
	ms := NewMissionState()
	ms.RecordScore(3, 200)
	src.Register(ms)

	var buf bytes.Buffer
	if err := src.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}

	dst := savegame.NewRegistry("unused")
	fresh := NewMissionState()
	dst.Register(fresh)
	if err := dst.ReadFrom(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("ReadFrom failed: %v", err)
	}
	if fresh.HighScore(3) != 200 {
		t.Fatalf("registry round trip lost score: %d", fresh.HighScore(3))
	}
}
