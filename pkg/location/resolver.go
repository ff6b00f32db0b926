// Package location classifies administrative ids and maps each level to its
// backing tables in the monitoring, planning and optimization sources.
package location

import (
	"errors"
	"fmt"

	"indash/entities"
)

// NationalID is the literal id of the whole country.
const NationalID = "1"

// VillageIDLength is the prefix length used by land parcels for sources
// without a parcel table.
const VillageIDLength = 10

// ParcelIDLength is the shortest id with its own rainfall rows; shorter
// parcel ids read their village.
const ParcelIDLength = 13

var ErrInvalidID = errors.New("invalid location id")

type levelSpec struct {
	suffix           string
	idColumn         string
	monitoringTable  string
	monitoringColumn string
	planningTable    string
	joinAdminName    bool
	irrigationTable  string
	rainfallSuffix   string
	rainfall         bool
}

// levels must carry an entry for every entities.Level.
var levels = map[entities.Level]levelSpec{
	entities.LevelNational: {
		suffix: "NASIONAL", idColumn: "ID_ADMIN",
		monitoringTable: "q_sc_nasional", monitoringColumn: "id_admin",
		planningTable: "v2_katam_nasional",
	},
	entities.LevelProvince: {
		suffix: "PROV", idColumn: "ID_PROV",
		monitoringTable: "q_sc_propinsi", monitoringColumn: "id_bps",
		planningTable: "v2_katam_prov",
		rainfall:      true, rainfallSuffix: "_prov",
	},
	entities.LevelDistrict: {
		suffix: "KABU", idColumn: "ID_KABU",
		monitoringTable: "q_sc_kabupaten", monitoringColumn: "id_bps",
		planningTable: "v2_katam_kabu",
		rainfall:      true, rainfallSuffix: "_kabu",
	},
	entities.LevelSubDistrict: {
		suffix: "KECA", idColumn: "ID_KECA",
		monitoringTable: "q_sc_kecamatan", monitoringColumn: "id_bps",
		planningTable:   "v2_katam_summary_keca",
		irrigationTable: "t2_katam_keca",
		rainfall:        true, rainfallSuffix: "_keca",
	},
	entities.LevelVillage: {
		suffix: "DESA", idColumn: "ID_DESA",
		monitoringTable: "q_sc_desa", monitoringColumn: "id_bps",
		planningTable: "v2_katam_summary_desa", joinAdminName: true,
		irrigationTable: "t2_katam_desa",
		rainfall:        true,
	},
	entities.LevelLandParcel: {
		suffix: "LAHAN", idColumn: "ID_LAHAN",
		monitoringTable: "q_sc_desa", monitoringColumn: "id_bps",
		planningTable: "v2_katam_summary", joinAdminName: true,
		irrigationTable: "t2_katam",
		rainfall:        true, rainfallSuffix: "_lahan",
	},
}

// Info is the classification of one id.
type Info struct {
	ID     string         `json:"id"`
	Level  entities.Level `json:"level"`
	Suffix string         `json:"tableSuffix"`
}

// Target is a table plus the column and value that select a location in it.
type Target struct {
	Table  string `json:"table"`
	Column string `json:"column"`
	ID     string `json:"id"`
	// JoinAdminName marks tables without a NAMA column; the name comes from
	// t2_admin.
	JoinAdminName bool `json:"joinAdminName,omitempty"`
}

// Resolve classifies id by its length. It is total: anything that is not
// "1" or 2, 4, 6 or 10 characters long is a land parcel.
func Resolve(id string) Info {
	lv := LevelOf(id)
	return Info{ID: id, Level: lv, Suffix: levels[lv].suffix}
}

// LevelOf returns the administrative level encoded by the id length.
func LevelOf(id string) entities.Level {
	if id == NationalID {
		return entities.LevelNational
	}
	switch len(id) {
	case 2:
		return entities.LevelProvince
	case 4:
		return entities.LevelDistrict
	case 6:
		return entities.LevelSubDistrict
	case VillageIDLength:
		return entities.LevelVillage
	default:
		return entities.LevelLandParcel
	}
}

// Validate rejects ids Resolve would misclassify: empty, non-digit, or of a
// length no level uses.
func Validate(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty", ErrInvalidID)
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return fmt.Errorf("%w: %q is not numeric", ErrInvalidID, id)
		}
	}
	if id == NationalID {
		return nil
	}
	switch n := len(id); {
	case n == 2, n == 4, n == 6, n >= VillageIDLength:
		return nil
	}
	return fmt.Errorf("%w: %q has no administrative level", ErrInvalidID, id)
}

// IDColumn is the planning id column for the level, e.g. ID_KABU.
func (i Info) IDColumn() string { return levels[i.Level].idColumn }

// Monitoring is the crop-monitoring table for the level. Land parcels read
// their village row.
func (i Info) Monitoring() Target {
	s := levels[i.Level]
	id := i.ID
	if i.Level == entities.LevelLandParcel && len(id) > VillageIDLength {
		id = id[:VillageIDLength]
	}
	return Target{Table: s.monitoringTable, Column: s.monitoringColumn, ID: id}
}

// Planning is the planting-plan table for the level.
func (i Info) Planning() Target {
	s := levels[i.Level]
	return Target{Table: s.planningTable, Column: s.idColumn, ID: i.ID, JoinAdminName: s.joinAdminName}
}

// Irrigation is the per-dekad table; ok is false for district and above.
func (i Info) Irrigation() (Target, bool) {
	s := levels[i.Level]
	if s.irrigationTable == "" {
		return Target{}, false
	}
	return Target{Table: s.irrigationTable, Column: s.idColumn, ID: i.ID}, true
}

// Rainfall returns the dekad rainfall prediction and climatological normal
// tables. ok is false at national level, which has neither.
func (i Info) Rainfall() (prediction, normal Target, ok bool) {
	lv, id := i.Level, i.ID
	if lv == entities.LevelLandParcel && len(id) >= VillageIDLength && len(id) < ParcelIDLength {
		lv, id = entities.LevelVillage, id[:VillageIDLength]
	}
	s := levels[lv]
	if !s.rainfall {
		return Target{}, Target{}, false
	}
	prediction = Target{Table: "t2_pre_pred" + s.rainfallSuffix, Column: s.idColumn, ID: id}
	normal = Target{Table: "t2_pre_norm" + s.rainfallSuffix, Column: s.idColumn, ID: id}
	return prediction, normal, true
}

// Ancestors returns the administrative ids enclosing id, most specific first,
// including id itself up to village level. Land parcels stop at their village
// since t2_admin has no parcel rows. The national id is never included.
func Ancestors(id string) []string {
	if id == NationalID {
		return nil
	}
	var out []string
	for _, n := range []int{VillageIDLength, 6, 4, 2} {
		if len(id) >= n {
			out = append(out, id[:n])
		}
	}
	return out
}
