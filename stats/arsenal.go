package stats

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Table is a read-only weapon lookup, keyed by arsenal name. Iteration
// order over Names is stable (sorted) so hosts that enumerate weapons do
// so identically on every peer.
type Table struct {
	byName map[string]*WeaponStats
	names  []string
}

// Get returns the stats for name, or nil if absent.
func (t *Table) Get(name string) *WeaponStats {
	return t.byName[name]
}

// Names returns the weapon names in stable order.
func (t *Table) Names() []string {
	return t.names
}

// Len returns the number of weapons in the table.
func (t *Table) Len() int {
	return len(t.names)
}

type weaponEntry struct {
	Movement          MovementModel  `toml:"movement"`
	Class             WeaponClass    `toml:"class"`
	SubClass          WeaponSubClass `toml:"subclass"`
	Effect            WeaponEffect   `toml:"effect"`
	FlightSpeed       int32          `toml:"flight-speed"`
	DistanceExtension int32          `toml:"distance-extension"`
	RadiusLife        uint32         `toml:"radius-life"`
	Penetrate         bool           `toml:"penetrate"`
	NoFriendlyFire    bool           `toml:"no-friendly-fire"`
	FacePlayer        bool           `toml:"face-player"`
	Targets           *TargetFlags   `toml:"targets"`

	PeriodicalSubClass *WeaponSubClass `toml:"periodical-subclass"`
	PeriodicalClass    *WeaponClass    `toml:"periodical-class"`
	PeriodicalEffect   *WeaponEffect   `toml:"periodical-effect"`

	Level Level `toml:"level"`
}

type weaponFile struct {
	Weapons map[string]weaponEntry `toml:"weapons"`
}

// Load reads a TOML arsenal. Unknown keys are rejected so typos in
// upgrade data fail loudly instead of silently zeroing a stat.
func Load(r io.Reader) (*Table, error) {
	var file weaponFile
	md, err := toml.NewDecoder(r).Decode(&file)
	if err != nil {
		return nil, fmt.Errorf("decode arsenal: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, fmt.Errorf("arsenal: unknown key %q", undec[0].String())
	}
	if len(file.Weapons) == 0 {
		return nil, fmt.Errorf("arsenal: no weapons defined")
	}

	t := &Table{byName: make(map[string]*WeaponStats, len(file.Weapons))}
	for name, entry := range file.Weapons {
		w, err := entry.build(name)
		if err != nil {
			return nil, err
		}
		t.byName[name] = w
		t.names = append(t.names, name)
	}
	sort.Strings(t.names)
	return t, nil
}

// LoadFile reads a TOML arsenal from disk.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open arsenal: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Default returns the embedded arsenal. The embedded data is part of the
// build; a decode failure is a programming error and panics.
func Default() *Table {
	t, err := Load(strings.NewReader(defaultArsenal))
	if err != nil {
		panic(err)
	}
	return t
}

func (e weaponEntry) build(name string) (*WeaponStats, error) {
	if e.FlightSpeed <= 0 {
		return nil, fmt.Errorf("arsenal: weapon %q: flight-speed must be positive", name)
	}
	if e.Level.MaxRange <= 0 {
		return nil, fmt.Errorf("arsenal: weapon %q: level.max-range must be positive", name)
	}
	w := &WeaponStats{
		Name:                    name,
		Movement:                e.Movement,
		Class:                   e.Class,
		SubClass:                e.SubClass,
		Effect:                  e.Effect,
		FlightSpeed:             e.FlightSpeed,
		DistanceExtensionFactor: e.DistanceExtension,
		RadiusLife:              e.RadiusLife,
		Penetrate:               e.Penetrate,
		NoFriendlyFire:          e.NoFriendlyFire,
		FacePlayer:              e.FacePlayer,
		Targets:                 ShootOnGround,
		PeriodicalClass:         e.Class,
		PeriodicalSubClass:      e.SubClass,
		PeriodicalEffect:        e.Effect,
	}
	if w.DistanceExtensionFactor <= 0 {
		w.DistanceExtensionFactor = 100
	}
	if e.Targets != nil {
		w.Targets = *e.Targets
	}
	if e.PeriodicalClass != nil {
		w.PeriodicalClass = *e.PeriodicalClass
	}
	if e.PeriodicalSubClass != nil {
		w.PeriodicalSubClass = *e.PeriodicalSubClass
	}
	if e.PeriodicalEffect != nil {
		w.PeriodicalEffect = *e.PeriodicalEffect
	}
	w.SetAllLevels(e.Level)
	return w, nil
}
