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
	monImp "indash/pkg/monitoring/serviceImp"
	planImp "indash/pkg/planning/serviceImp"
	"indash/pkg/query/querytest"
	"indash/pkg/query/repository"
)

func newSummary(fake *querytest.Fake) *SummarySvc {
	log := zap.NewNop()
	mon := monImp.NewMonitoringService(fake, log, time.Now)
	plan := planImp.NewPlanningService(fake, nil, log)
	return NewSummaryService(mon, plan, log)
}

var period = &entities.Period{Year: 2025, Season: 1}

func TestAggregateIsolatesFailedLevel(t *testing.T) {
	fake := querytest.New().
		Fail("q_sc_propinsi", errors.New("connection refused")).
		Fail("v2_katam_prov", errors.New("connection refused")).
		On("FROM q_sc_kabupaten ", repository.Row{"lbs": 100.0, "x2": 1, "x5": 1, "data_date": "251115"}).
		On("FROM v2_katam_kabu ", repository.Row{"NAMA": "BOGOR", "LBS": 80.0, "POLA": "100"})
	svc := newSummary(fake)

	sum, avail := svc.Aggregate(context.Background(), "3201", period)
	require.NotNil(t, sum)
	assert.True(t, avail.Available)

	require.NotNil(t, sum.District)
	assert.Equal(t, "BOGOR", sum.District.Name)
	assert.True(t, sum.Availability[entities.LevelDistrict].Available)

	assert.Nil(t, sum.Province)
	assert.Equal(t, entities.ReasonNetworkError, sum.Availability[entities.LevelProvince].Reason)

	assert.Nil(t, sum.National)
	assert.Equal(t, entities.ReasonNoDataForPeriod, sum.Availability[entities.LevelNational].Reason)

	assert.Nil(t, sum.Village)
	assert.NotContains(t, sum.Availability, entities.LevelVillage)
}

func TestAggregatePartialSourceFailure(t *testing.T) {
	fake := querytest.New().
		Fail("q_sc_propinsi", errors.New("timeout")).
		On("FROM v2_katam_prov ", repository.Row{"NAMA": "JAWA BARAT", "LBS": 10.0, "POLA": "1"})
	svc := newSummary(fake)

	sum, _ := svc.Aggregate(context.Background(), "32", period)
	require.NotNil(t, sum.Province)
	assert.Equal(t, "planning only", sum.Availability[entities.LevelProvince].Details)
}

func TestAggregateNationalOnly(t *testing.T) {
	fake := querytest.New()
	svc := newSummary(fake)

	sum, avail := svc.Aggregate(context.Background(), "1", period)
	require.NotNil(t, sum)
	assert.False(t, avail.Available)
	assert.Equal(t, entities.ReasonNoDataForPeriod, avail.Reason)
	assert.Len(t, sum.Availability, 1)
	assert.Equal(t, 2025, sum.Availability[entities.LevelNational].Year)
}

func TestAggregateLandParcelUsesVillage(t *testing.T) {
	fake := querytest.New().
		On("FROM v2_katam_summary_desa ", repository.Row{"NAMA_ADMIN": "PONDOK RAJEG", "LBS": 10.0, "POLA": "1"})
	svc := newSummary(fake)

	sum, _ := svc.Aggregate(context.Background(), "3201012001001", nil)
	require.NotNil(t, sum.Village)
	assert.Equal(t, "3201012001", sum.Village.ID)
	assert.Equal(t, "PONDOK RAJEG", sum.Village.Name)
	assert.Len(t, sum.Availability, 4)
	assert.Zero(t, fake.Count("FROM v2_katam_summary "))
	assert.Equal(t, 1, fake.Count("ORDER BY k.TAHUN DESC, k.SEA DESC"))
}

func TestAggregateInvalid(t *testing.T) {
	sum, avail := newSummary(querytest.New()).Aggregate(context.Background(), "", period)
	assert.Nil(t, sum)
	assert.Equal(t, entities.ReasonInvalidLocation, avail.Reason)
}
