package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RentEase-BookingService/internal/infra/storage/stats"
)

type stubLogger struct{}

func (stubLogger) Info(string, ...interface{})  {}
func (stubLogger) Error(string, ...interface{}) {}

type fakeStatsRepo struct {
	lastScope      stats.Scope
	customersCalls int
}

func (f *fakeStatsRepo) Totals(_ context.Context, scope stats.Scope, _ time.Time) (*stats.Totals, error) {
	f.lastScope = scope
	return &stats.Totals{
		BookingsCount:  12,
		Revenue:        decimal.NewFromInt(12500),
		ActiveBookings: 3,
	}, nil
}

func (f *fakeStatsRepo) TopCourts(_ context.Context, _ stats.Scope) ([]*stats.CourtUsage, error) {
	return []*stats.CourtUsage{
		{CourtName: "Корт 1", FacilityName: "Арена", Bookings: 7},
	}, nil
}

func (f *fakeStatsRepo) RevenueTrends(_ context.Context, _ stats.Scope) ([]*stats.MonthRevenue, error) {
	return []*stats.MonthRevenue{
		{Month: "Aug", Revenue: decimal.NewFromInt(4000)},
		{Month: "Sep", Revenue: decimal.NewFromInt(8500)},
	}, nil
}

func (f *fakeStatsRepo) TopCustomers(_ context.Context, _ stats.Scope) ([]*stats.CustomerSpend, error) {
	f.customersCalls++
	return []*stats.CustomerSpend{
		{UserName: "Alice", Bookings: 5, Spent: decimal.NewFromInt(2000)},
	}, nil
}

func TestGet_AdminSeesEverything(t *testing.T) {
	repo := &fakeStatsRepo{}
	svc := NewService(repo, stubLogger{})

	resp, err := svc.Get(context.Background(), 1, "admin")
	require.NoError(t, err)

	// Для админа область видимости не ограничена
	assert.Nil(t, repo.lastScope.OwnerID)
	assert.Nil(t, repo.lastScope.UserID)

	assert.Equal(t, "12500.00", resp.Totals.Revenue)
	assert.Len(t, resp.TopCourts, 1)
	assert.Len(t, resp.RevenueTrend, 2)
	require.Len(t, resp.TopCustomers, 1)
	assert.Equal(t, "2000.00", resp.TopCustomers[0].Spent)
}

func TestGet_OwnerScopedToFacilities(t *testing.T) {
	repo := &fakeStatsRepo{}
	svc := NewService(repo, stubLogger{})

	_, err := svc.Get(context.Background(), 2, "owner")
	require.NoError(t, err)

	require.NotNil(t, repo.lastScope.OwnerID)
	assert.Equal(t, int64(2), *repo.lastScope.OwnerID)
	assert.Nil(t, repo.lastScope.UserID)
	assert.Equal(t, 1, repo.customersCalls)
}

func TestGet_UserScopedToOwnBookings(t *testing.T) {
	repo := &fakeStatsRepo{}
	svc := NewService(repo, stubLogger{})

	resp, err := svc.Get(context.Background(), 11, "user")
	require.NoError(t, err)

	require.NotNil(t, repo.lastScope.UserID)
	assert.Equal(t, int64(11), *repo.lastScope.UserID)

	// Топ клиентов обычному пользователю не показывается
	assert.Empty(t, resp.TopCustomers)
	assert.Equal(t, 0, repo.customersCalls)
}
