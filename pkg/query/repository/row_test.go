package repository

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowFloat(t *testing.T) {
	r := Row{
		"LBS":     json.Number("1250.5"),
		"x1":      "42",
		"lower":   int64(7),
		"ZERO":    0.0,
		"bad":     "n/a",
		"nothing": nil,
	}
	assert.Equal(t, 1250.5, r.Float("LBS"))
	assert.Equal(t, 1250.5, r.Float("lbs"))
	assert.Equal(t, 42.0, r.Float("X1"))
	assert.Equal(t, 7.0, r.Float("LOWER"))
	assert.Equal(t, 0.0, r.Float("missing"))
	assert.Zero(t, r.Float("bad", "nothing", "missing"))

	// a present zero does not fall through
	v, ok := r.FloatOK("ZERO", "LBS")
	assert.True(t, ok)
	assert.Zero(t, v)

	v, ok = r.FloatOK("nothing", "bad", "x1")
	assert.True(t, ok)
	assert.Equal(t, 42.0, v)
}

func TestRowString(t *testing.T) {
	r := Row{"NAMA": "", "NAMA_ADMIN": "Cibinong", "DST": json.Number("28"), "ID": 3201.0}
	assert.Equal(t, "Cibinong", r.String("NAMA", "NAMA_ADMIN"))
	assert.Equal(t, "28", r.String("dst"))
	assert.Equal(t, "3201", r.String("ID"))
	assert.Equal(t, "", r.String("missing"))
	assert.True(t, r.Has("nama_admin"))
	assert.False(t, r.Has("LUAS_PADI"))
}

func TestResponseDecodeUseNumber(t *testing.T) {
	body := `{"status":"success","data":[{"PADI":"5.6","JAGUNG":4.25}],"count":1}`
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	var resp Response
	require.NoError(t, dec.Decode(&resp))
	row, ok := resp.First()
	require.True(t, ok)
	assert.Equal(t, 5.6, row.Float("PADI"))
	assert.Equal(t, 4.25, row.Float("jagung"))
}

func TestCheckReadOnly(t *testing.T) {
	assert.NoError(t, CheckReadOnly("SELECT 1"))
	assert.NoError(t, CheckReadOnly("  with x as (select 1) select * from x"))
	assert.ErrorIs(t, CheckReadOnly("DELETE FROM t2_admin"), ErrNotReadOnly)
	assert.ErrorIs(t, CheckReadOnly("selected"), ErrNotReadOnly)
}

func TestQuote(t *testing.T) {
	assert.Equal(t, "'32'", Quote("32"))
	assert.Equal(t, "'O''Brien'", Quote("O'Brien"))
}
