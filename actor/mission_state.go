package actor

import "github.com/milk9111/towtruck/savegame"

// MissionStateKind tags the tow mission record in the save-game registry.
const MissionStateKind savegame.Kind = 1

const scoreSlots = 5

// MissionState is the persisted tow mission record: encounter timer, the
// in-progress flag, sub-phase counters, and one best-score slot per driver
// (1-5). It is created and mutated only by its owning TowTrack.
type MissionState struct {
	reserved uint32

	StartTime  int32
	InProgress bool

	Attempts    int16
	Completions int16
	Failures    int16 // runs ended by fuel exhaustion
	BestTier    int16 // lowest tier index achieved, -1 before any finish
	LastScore   int16

	scores [scoreSlots]int16
}

func NewMissionState() *MissionState {
	return &MissionState{BestTier: -1}
}

func (s *MissionState) StateKind() savegame.Kind { return MissionStateKind }

// HighScore returns the stored best for a driver slot. Slots 1-5 are
// defined; any other id reads as 0.
func (s *MissionState) HighScore(driver int) int16 {
	if s == nil || driver < 1 || driver > scoreSlots {
		return 0
	}
	return s.scores[driver-1]
}

// RecordScore stores a new result in a driver slot if it matches or beats
// the stored best. Reports whether the slot was written.
func (s *MissionState) RecordScore(driver int, score int16) bool {
	if s == nil || driver < 1 || driver > scoreSlots {
		return false
	}
	if score < s.scores[driver-1] {
		return false
	}
	s.scores[driver-1] = score
	return true
}

// Save writes the record in its fixed field order.
func (s *MissionState) Save(w *savegame.Writer) error {
	if err := w.WriteU32(s.reserved); err != nil {
		return err
	}
	if err := w.WriteS32(s.StartTime); err != nil {
		return err
	}
	if err := w.WriteBool(s.InProgress); err != nil {
		return err
	}
	for _, v := range []int16{s.Attempts, s.Completions, s.Failures, s.BestTier, s.LastScore} {
		if err := w.WriteS16(v); err != nil {
			return err
		}
	}
	for _, v := range s.scores {
		if err := w.WriteS16(v); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the record in the same field order Save writes it.
func (s *MissionState) Load(r *savegame.Reader) error {
	var err error
	if s.reserved, err = r.ReadU32(); err != nil {
		return err
	}
	if s.StartTime, err = r.ReadS32(); err != nil {
		return err
	}
	if s.InProgress, err = r.ReadBool(); err != nil {
		return err
	}
	counters := []*int16{&s.Attempts, &s.Completions, &s.Failures, &s.BestTier, &s.LastScore}
	for _, c := range counters {
		if *c, err = r.ReadS16(); err != nil {
			return err
		}
	}
	for i := range s.scores {
		if s.scores[i], err = r.ReadS16(); err != nil {
			return err
		}
	}
	return nil
}
