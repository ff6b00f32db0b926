package serviceImp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"indash/entities"
	irrImp "indash/pkg/irrigation/serviceImp"
	"indash/pkg/location"
	"indash/pkg/metrics"
	monImp "indash/pkg/monitoring/serviceImp"
	planImp "indash/pkg/planning/serviceImp"
	"indash/pkg/query/querytest"
	"indash/pkg/query/repository"
	rainImp "indash/pkg/rainfall/serviceImp"
	sumImp "indash/pkg/summary/serviceImp"
)

var fixedNow = func() time.Time { return time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC) }

func newDashboard(fake *querytest.Fake) *DashboardSvc {
	log := zap.NewNop()
	mon := monImp.NewMonitoringService(fake, log, fixedNow)
	plan := planImp.NewPlanningService(fake, nil, log)
	irr := irrImp.NewIrrigationService(fake, log)
	sum := sumImp.NewSummaryService(mon, plan, log)
	rain := rainImp.NewRainfallService(fake, log, fixedNow)
	return NewDashboardService(fake, mon, plan, irr, sum, rain, metrics.New(prometheus.NewRegistry()), log, fixedNow)
}

func TestLoadReferencePeriod(t *testing.T) {
	fake := querytest.New().On("from latest", repository.Row{"TAHUN": "2024", "MUSIM": "2"})
	d := newDashboard(fake)

	p := d.LoadReferencePeriod(context.Background())
	assert.Equal(t, entities.Period{Year: 2024, Season: 2}, p)
	assert.Equal(t, p, d.Period())
	assert.Equal(t, repository.SourcePlanning, fake.Calls()[0].Source)
}

func TestLoadReferencePeriodFallback(t *testing.T) {
	d := newDashboard(querytest.New().Fail("from latest", errors.New("down")))
	assert.Equal(t, entities.Period{Year: 2026, Season: 1}, d.LoadReferencePeriod(context.Background()))

	d = newDashboard(querytest.New())
	assert.Equal(t, entities.Period{Year: 2026, Season: 1}, d.LoadReferencePeriod(context.Background()))
}

func TestGettersBeforeSelection(t *testing.T) {
	d := newDashboard(querytest.New())
	assert.Nil(t, d.Snapshot())
	p, a := d.Planning()
	assert.Nil(t, p)
	assert.False(t, a.Available)
}

func TestOnLocationSelected(t *testing.T) {
	fake := querytest.New().
		On("FROM q_sc_kabupaten ", repository.Row{"id_bps": "3201", "lbs": 100.0, "x2": 5, "x6": 5, "data_date": "260301"}).
		On("FROM v2_katam_kabu ", repository.Row{"NAMA": "BOGOR", "TAHUN": "2026", "SEA": "1", "LBS": 100.0, "POLA": "110", "DST": 28}).
		On("FROM t2_pre_pred_kabu ", repository.Row{"ID_KABU": "3201", "TAHUN": "2026", "d07": 140.0}).
		On("FROM t2_pre_norm_kabu ", repository.Row{"ID_KABU": "3201", "d07": 120.0}).
		Fail("FROM q_sc_propinsi ", errors.New("timeout"))
	d := newDashboard(fake)

	snap, applied, err := d.OnLocationSelected(context.Background(), "3201")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, uint64(1), snap.Generation)
	assert.NotEmpty(t, snap.SelectionID)
	assert.Equal(t, entities.LevelDistrict, snap.Level)

	require.NotNil(t, snap.Monitoring)
	require.NotNil(t, snap.Planning)
	assert.Equal(t, "BOGOR", snap.Planning.Name)
	assert.True(t, snap.PlanningAvailability.Available)
	require.NotNil(t, snap.Summary)
	assert.NotNil(t, snap.Summary.District)

	require.NotNil(t, snap.Rainfall)
	assert.True(t, snap.RainfallAvailability.Available)
	assert.Equal(t, 7, snap.Rainfall.StartDekad)
	assert.Equal(t, 140.0, snap.Rainfall.Prediction[0])
	assert.Equal(t, 1, fake.Count("FROM t2_pre_pred_kabu WHERE ID_KABU = '3201' AND TAHUN = '2026'"))
	rain, _ := d.Rainfall()
	assert.Same(t, snap.Rainfall, rain)

	got, a := d.Monitoring()
	assert.Same(t, snap.Monitoring, got)
	assert.True(t, a.Available)
	assert.Same(t, snap, d.Snapshot())
}

func TestOnLocationSelectedInvalid(t *testing.T) {
	d := newDashboard(querytest.New())
	_, applied, err := d.OnLocationSelected(context.Background(), "32a")
	assert.ErrorIs(t, err, location.ErrInvalidID)
	assert.False(t, applied)
	assert.Nil(t, d.Snapshot())
}

func TestSupersededSelectionIsDiscarded(t *testing.T) {
	fake := querytest.New()
	release := fake.Block("ID_PROV = '32'")
	fake.On("FROM v2_katam_prov ", repository.Row{"NAMA": "JAWA TENGAH", "LBS": 10.0, "POLA": "1"})
	d := newDashboard(fake)

	type result struct {
		snap    *entities.Snapshot
		applied bool
	}
	first := make(chan result, 1)
	go func() {
		snap, applied, _ := d.OnLocationSelected(context.Background(), "32")
		first <- result{snap, applied}
	}()
	require.Eventually(t, func() bool { return fake.Count("ID_PROV = '32'") > 0 }, time.Second, 5*time.Millisecond)

	second, applied, err := d.OnLocationSelected(context.Background(), "33")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, uint64(2), second.Generation)

	release()
	r := <-first
	assert.False(t, r.applied)
	assert.Equal(t, "32", r.snap.LocationID)
	assert.Equal(t, "33", d.Snapshot().LocationID)

	p, _ := d.Planning()
	require.NotNil(t, p)
	assert.Equal(t, "JAWA TENGAH", p.Name)
}

func TestLocationHierarchyLabel(t *testing.T) {
	fake := querytest.New().On("FROM t2_admin ",
		repository.Row{"ID_ADMIN": "3201012001", "NAMA": "Pondok Rajeg, Cibinong, Bogor, Jawa Barat"},
		repository.Row{"ID_ADMIN": "3201", "NAMA": "Bogor, Jawa Barat"},
	)
	d := newDashboard(fake)

	assert.Equal(t, "Pondok Rajeg, Cibinong, Bogor, Jawa Barat - 3201012001001",
		d.LocationHierarchyLabel(context.Background(), "3201012001001"))
	assert.Equal(t,
		"SELECT ID_ADMIN, NAMA FROM t2_admin WHERE ID_ADMIN IN ('3201012001', '320101', '3201', '32') ORDER BY LENGTH(ID_ADMIN) DESC",
		fake.Calls()[0].SQL)
}

func TestLocationHierarchyLabelFallback(t *testing.T) {
	d := newDashboard(querytest.New().Fail("t2_admin", errors.New("down")))
	assert.Equal(t, "3201", d.LocationHierarchyLabel(context.Background(), "3201"))

	d = newDashboard(querytest.New())
	assert.Equal(t, "3201", d.LocationHierarchyLabel(context.Background(), "3201"))
	assert.Equal(t, "1", d.LocationHierarchyLabel(context.Background(), "1"))
}
