package serviceImp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"indash/entities"
	"indash/pkg/location"
	"indash/pkg/query/querytest"
	"indash/pkg/query/repository"
)

func fixedNow() time.Time {
	return time.Date(2025, time.November, 18, 10, 0, 0, 0, time.FixedZone("WIB", 7*3600))
}

func desaRow() repository.Row {
	return repository.Row{
		"id_bps": "3201012001", "x0": 0, "x1": "2", "x2": 3, "x3": 3, "x4": 2, "x5": 1, "x6": 1, "x7": 0,
		"data_date": "251115", "lbs": 350.0, "provitas_bps": 5.7, "provitas_sc": nil,
	}
}

func TestDisplayLandParcelUsesVillageRow(t *testing.T) {
	fake := querytest.New().On("FROM q_sc_desa WHERE id_bps = '3201012001'", desaRow())
	svc := NewMonitoringService(fake, zap.NewNop(), fixedNow)

	d, avail := svc.Display(context.Background(), "3201012001001")
	require.NotNil(t, d)
	assert.True(t, avail.Available)
	assert.Equal(t, entities.LevelLandParcel, d.Level)
	assert.Equal(t, "3201012001001", d.LocationID)
	assert.InDelta(t, 350, d.PhaseAreas.Total(), 1e-9)
	assert.InDelta(t, 350.0*2/12, d.Metrics.Water, 1e-9)
	assert.InDelta(t, 350.0*9/12, d.Metrics.Rice, 1e-9)
	assert.InDelta(t, 350.0/12, d.Metrics.Fallow, 1e-9)
	assert.Equal(t, "15 November 2025", d.DataDate.Formatted)
	assert.True(t, d.DataDate.IsRealTime)
	assert.Equal(t, [4]string{"Desember", "Januari", "Februari", "Maret"}, d.HarvestMonths)
	require.NotNil(t, d.Productivity.BPS)
	assert.Nil(t, d.Productivity.SisCrop)
	assert.Equal(t, 5.7, d.Productivity.Used)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, repository.SourceMonitoring, calls[0].Source)
	assert.Contains(t, calls[0].SQL, "ORDER BY data_date DESC LIMIT 1")
}

func TestDisplayNationalUsesIDAdmin(t *testing.T) {
	fake := querytest.New()
	svc := NewMonitoringService(fake, zap.NewNop(), fixedNow)
	_, avail := svc.Display(context.Background(), location.NationalID)
	assert.Equal(t, entities.ReasonNoDataForPeriod, avail.Reason)
	assert.Equal(t, 1, fake.Count("FROM q_sc_nasional WHERE id_admin = '1'"))
}

func TestDisplayErrors(t *testing.T) {
	fake := querytest.New().Fail("q_sc_propinsi", errors.New("timeout"))
	svc := NewMonitoringService(fake, zap.NewNop(), fixedNow)

	d, avail := svc.Display(context.Background(), "32")
	assert.Nil(t, d)
	assert.Equal(t, entities.ReasonNetworkError, avail.Reason)
	assert.Contains(t, avail.Details, "timeout")

	d, avail = svc.Display(context.Background(), "3x")
	assert.Nil(t, d)
	assert.Equal(t, entities.ReasonInvalidLocation, avail.Reason)
}
