package entities

import "fmt"

// Level is an administrative level. The zero value is LevelNational.
type Level int

const (
	LevelNational Level = iota
	LevelProvince
	LevelDistrict
	LevelSubDistrict
	LevelVillage
	LevelLandParcel
)

// AllLevels lists every level from the top of the hierarchy down.
var AllLevels = []Level{
	LevelNational,
	LevelProvince,
	LevelDistrict,
	LevelSubDistrict,
	LevelVillage,
	LevelLandParcel,
}

var levelNames = map[Level]string{
	LevelNational:    "nasional",
	LevelProvince:    "prov",
	LevelDistrict:    "kabu",
	LevelSubDistrict: "keca",
	LevelVillage:     "desa",
	LevelLandParcel:  "lahan",
}

func (l Level) String() string {
	if n, ok := levelNames[l]; ok {
		return n
	}
	return fmt.Sprintf("level(%d)", int(l))
}

func (l Level) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

func (l *Level) UnmarshalText(b []byte) error {
	for lv, n := range levelNames {
		if n == string(b) {
			*l = lv
			return nil
		}
	}
	return fmt.Errorf("unknown level %q", string(b))
}
