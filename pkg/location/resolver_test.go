package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"indash/entities"
)

func TestResolveLevels(t *testing.T) {
	cases := map[string]entities.Level{
		"1":             entities.LevelNational,
		"11":            entities.LevelProvince,
		"1101":          entities.LevelDistrict,
		"110102":        entities.LevelSubDistrict,
		"1101022001":    entities.LevelVillage,
		"1101022001001": entities.LevelLandParcel,
	}
	for id, want := range cases {
		info := Resolve(id)
		assert.Equal(t, want, info.Level, id)
		assert.Equal(t, id, info.ID)
		assert.NotEmpty(t, info.Suffix, id)
	}
}

func TestEveryLevelHasTables(t *testing.T) {
	for _, lv := range entities.AllLevels {
		s, ok := levels[lv]
		require.True(t, ok, lv.String())
		assert.NotEmpty(t, s.monitoringTable, lv.String())
		assert.NotEmpty(t, s.planningTable, lv.String())
		assert.NotEmpty(t, s.idColumn, lv.String())
	}
}

func TestTargets(t *testing.T) {
	tests := []struct {
		id         string
		monitoring Target
		planning   Target
		irrigation string
	}{
		{"1", Target{"q_sc_nasional", "id_admin", "1", false}, Target{"v2_katam_nasional", "ID_ADMIN", "1", false}, ""},
		{"32", Target{"q_sc_propinsi", "id_bps", "32", false}, Target{"v2_katam_prov", "ID_PROV", "32", false}, ""},
		{"3201", Target{"q_sc_kabupaten", "id_bps", "3201", false}, Target{"v2_katam_kabu", "ID_KABU", "3201", false}, ""},
		{"320101", Target{"q_sc_kecamatan", "id_bps", "320101", false}, Target{"v2_katam_summary_keca", "ID_KECA", "320101", false}, "t2_katam_keca"},
		{"3201012001", Target{"q_sc_desa", "id_bps", "3201012001", false}, Target{"v2_katam_summary_desa", "ID_DESA", "3201012001", true}, "t2_katam_desa"},
		{"3201012001001", Target{"q_sc_desa", "id_bps", "3201012001", false}, Target{"v2_katam_summary", "ID_LAHAN", "3201012001001", true}, "t2_katam"},
	}
	for _, tt := range tests {
		info := Resolve(tt.id)
		assert.Equal(t, tt.monitoring, info.Monitoring(), tt.id)
		assert.Equal(t, tt.planning, info.Planning(), tt.id)
		irr, ok := info.Irrigation()
		assert.Equal(t, tt.irrigation != "", ok, tt.id)
		assert.Equal(t, tt.irrigation, irr.Table, tt.id)
	}
}

func TestValidate(t *testing.T) {
	for _, id := range []string{"1", "11", "1101", "110102", "1101022001", "1101022001001"} {
		assert.NoError(t, Validate(id), id)
	}
	for _, id := range []string{"", "2", "123", "11a1", "12345", "3201'--", " 32"} {
		err := Validate(id)
		assert.ErrorIs(t, err, ErrInvalidID, id)
	}
}

func TestAncestors(t *testing.T) {
	assert.Nil(t, Ancestors("1"))
	assert.Equal(t, []string{"32"}, Ancestors("32"))
	assert.Equal(t, []string{"320101", "3201", "32"}, Ancestors("320101"))
	assert.Equal(t,
		[]string{"3201012001", "320101", "3201", "32"},
		Ancestors("3201012001001"))
	assert.Equal(t, []string{"3201012001", "320101", "3201", "32"}, Ancestors("3201012001"))
}

func TestRainfallTargets(t *testing.T) {
	tests := []struct {
		id         string
		prediction Target
		normal     Target
	}{
		{"32", Target{Table: "t2_pre_pred_prov", Column: "ID_PROV", ID: "32"}, Target{Table: "t2_pre_norm_prov", Column: "ID_PROV", ID: "32"}},
		{"3201", Target{Table: "t2_pre_pred_kabu", Column: "ID_KABU", ID: "3201"}, Target{Table: "t2_pre_norm_kabu", Column: "ID_KABU", ID: "3201"}},
		{"320101", Target{Table: "t2_pre_pred_keca", Column: "ID_KECA", ID: "320101"}, Target{Table: "t2_pre_norm_keca", Column: "ID_KECA", ID: "320101"}},
		{"3201012001", Target{Table: "t2_pre_pred", Column: "ID_DESA", ID: "3201012001"}, Target{Table: "t2_pre_norm", Column: "ID_DESA", ID: "3201012001"}},
		{"320101200101", Target{Table: "t2_pre_pred", Column: "ID_DESA", ID: "3201012001"}, Target{Table: "t2_pre_norm", Column: "ID_DESA", ID: "3201012001"}},
		{"3201012001001", Target{Table: "t2_pre_pred_lahan", Column: "ID_LAHAN", ID: "3201012001001"}, Target{Table: "t2_pre_norm_lahan", Column: "ID_LAHAN", ID: "3201012001001"}},
	}
	for _, tt := range tests {
		pred, norm, ok := Resolve(tt.id).Rainfall()
		require.True(t, ok, tt.id)
		assert.Equal(t, tt.prediction, pred, tt.id)
		assert.Equal(t, tt.normal, norm, tt.id)
	}

	_, _, ok := Resolve(NationalID).Rainfall()
	assert.False(t, ok)
}
