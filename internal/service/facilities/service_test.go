package facilities

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RentEase-BookingService/internal/domain"
	"github.com/m04kA/RentEase-BookingService/internal/service/facilities/models"
	"github.com/m04kA/RentEase-BookingService/pkg/types"
)

type stubLogger struct{}

func (stubLogger) Info(string, ...interface{})  {}
func (stubLogger) Warn(string, ...interface{})  {}
func (stubLogger) Error(string, ...interface{}) {}

type fakeFacilityRepo struct {
	facility      *domain.Facility
	pending       []*domain.Facility
	created       *domain.Facility
	statusUpdates map[int64]domain.FacilityStatus
}

func (f *fakeFacilityRepo) Create(_ context.Context, facility *domain.Facility) (*domain.Facility, error) {
	facility.ID = 10
	f.created = facility
	return facility, nil
}

func (f *fakeFacilityRepo) GetByID(_ context.Context, _ int64) (*domain.Facility, error) {
	return f.facility, nil
}

func (f *fakeFacilityRepo) ListApproved(_ context.Context, _ domain.FacilityFilter) ([]*domain.FacilityWithPrice, int64, error) {
	return nil, 0, nil
}

func (f *fakeFacilityRepo) ListByStatus(_ context.Context, _ domain.FacilityStatus) ([]*domain.Facility, error) {
	return f.pending, nil
}

func (f *fakeFacilityRepo) Update(_ context.Context, id int64, name, location string, description *string) (*domain.Facility, error) {
	f.facility.Name = name
	f.facility.Location = location
	f.facility.Description = description
	return f.facility, nil
}

func (f *fakeFacilityRepo) UpdateStatus(_ context.Context, id int64, status domain.FacilityStatus) error {
	if f.statusUpdates == nil {
		f.statusUpdates = make(map[int64]domain.FacilityStatus)
	}
	f.statusUpdates[id] = status
	return nil
}

type fakeCourtRepo struct {
	courts  []*domain.Court
	created *domain.Court
}

func (f *fakeCourtRepo) Create(_ context.Context, court *domain.Court) (*domain.Court, error) {
	court.ID = 20
	f.created = court
	return court, nil
}

func (f *fakeCourtRepo) ListByFacility(_ context.Context, _ int64) ([]*domain.Court, error) {
	return f.courts, nil
}

const facilityOwnerID = int64(2)

func pendingFacility() *domain.Facility {
	return &domain.Facility{
		ID:       3,
		OwnerID:  facilityOwnerID,
		Name:     "Арена",
		Location: "Москва",
		Status:   domain.FacilityPending,
	}
}

func newFixture(facility *domain.Facility) (*Service, *fakeFacilityRepo, *fakeCourtRepo) {
	facilities := &fakeFacilityRepo{facility: facility}
	courts := &fakeCourtRepo{}
	return NewService(facilities, courts, stubLogger{}), facilities, courts
}

func TestGetDetail_UnapprovedHiddenFromStrangers(t *testing.T) {
	svc, _, _ := newFixture(pendingFacility())

	// Площадка до модерации для посторонних не существует
	_, err := svc.GetDetail(context.Background(), 3, 99, "user")
	assert.ErrorIs(t, err, ErrFacilityNotFound)

	_, err = svc.GetDetail(context.Background(), 3, 0, "")
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}

func TestGetDetail_UnapprovedVisibleToOwnerAndAdmin(t *testing.T) {
	svc, _, _ := newFixture(pendingFacility())

	resp, err := svc.GetDetail(context.Background(), 3, facilityOwnerID, "owner")
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Facility.Status)

	_, err = svc.GetDetail(context.Background(), 3, 99, "admin")
	assert.NoError(t, err)
}

func TestGetDetail_StartingPrice(t *testing.T) {
	facility := pendingFacility()
	facility.Status = domain.FacilityApproved
	svc, _, courts := newFixture(facility)
	courts.courts = []*domain.Court{
		{ID: 1, PricePerHour: decimal.NewFromInt(300)},
		{ID: 2, PricePerHour: decimal.NewFromInt(150)},
	}

	resp, err := svc.GetDetail(context.Background(), 3, 99, "user")
	require.NoError(t, err)
	require.NotNil(t, resp.Facility.StartingPrice)
	assert.Equal(t, "150.00", *resp.Facility.StartingPrice)
	assert.Len(t, resp.Courts, 2)
}

func TestCreate(t *testing.T) {
	svc, facilities, _ := newFixture(nil)

	resp, err := svc.Create(context.Background(), &models.CreateFacilityRequest{
		OwnerID:   facilityOwnerID,
		OwnerRole: "owner",
		Name:      "  Арена  ",
		Location:  "Москва",
	})
	require.NoError(t, err)

	// Новая площадка всегда уходит на модерацию
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "Арена", facilities.created.Name)
}

func TestCreate_PlainUserForbidden(t *testing.T) {
	svc, _, _ := newFixture(nil)

	_, err := svc.Create(context.Background(), &models.CreateFacilityRequest{
		OwnerID:   5,
		OwnerRole: "user",
		Name:      "Арена",
		Location:  "Москва",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestModerate(t *testing.T) {
	svc, facilities, _ := newFixture(pendingFacility())

	resp, err := svc.Moderate(context.Background(), 3, &models.ModerateFacilityRequest{
		UserID:   1,
		UserRole: "admin",
		Status:   "approved",
	})
	require.NoError(t, err)

	assert.Equal(t, "approved", resp.Status)
	assert.Equal(t, domain.FacilityApproved, facilities.statusUpdates[3])
}

func TestModerate_NotAdmin(t *testing.T) {
	svc, _, _ := newFixture(pendingFacility())

	// Даже владелец не может одобрить собственную площадку
	_, err := svc.Moderate(context.Background(), 3, &models.ModerateFacilityRequest{
		UserID:   facilityOwnerID,
		UserRole: "owner",
		Status:   "approved",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestModerate_InvalidDecision(t *testing.T) {
	svc, _, _ := newFixture(pendingFacility())

	for _, status := range []string{"pending", "deleted", ""} {
		_, err := svc.Moderate(context.Background(), 3, &models.ModerateFacilityRequest{
			UserID:   1,
			UserRole: "admin",
			Status:   status,
		})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	}
}

func TestAddCourt(t *testing.T) {
	svc, _, courts := newFixture(pendingFacility())

	resp, err := svc.AddCourt(context.Background(), 3, &models.AddCourtRequest{
		UserID:       facilityOwnerID,
		UserRole:     "owner",
		Name:         "Корт 1",
		SportType:    "tennis",
		PricePerHour: "200.50",
	})
	require.NoError(t, err)

	assert.Equal(t, "200.50", resp.PricePerHour)
	// Часы работы по умолчанию
	assert.Equal(t, types.TimeString(domain.DefaultOpenTime), courts.created.OpenTime)
	assert.Equal(t, types.TimeString(domain.DefaultCloseTime), courts.created.CloseTime)
}

func TestAddCourt_InvalidData(t *testing.T) {
	svc, _, _ := newFixture(pendingFacility())

	openAt := "23:00"
	closeAt := "08:00"

	tests := []struct {
		name string
		req  *models.AddCourtRequest
	}{
		{"empty name", &models.AddCourtRequest{UserID: facilityOwnerID, UserRole: "owner", SportType: "tennis", PricePerHour: "200"}},
		{"empty sport", &models.AddCourtRequest{UserID: facilityOwnerID, UserRole: "owner", Name: "Корт", PricePerHour: "200"}},
		{"bad price", &models.AddCourtRequest{UserID: facilityOwnerID, UserRole: "owner", Name: "Корт", SportType: "tennis", PricePerHour: "дорого"}},
		{"negative price", &models.AddCourtRequest{UserID: facilityOwnerID, UserRole: "owner", Name: "Корт", SportType: "tennis", PricePerHour: "-10"}},
		{"inverted hours", &models.AddCourtRequest{UserID: facilityOwnerID, UserRole: "owner", Name: "Корт", SportType: "tennis", PricePerHour: "200", OpenTime: &openAt, CloseTime: &closeAt}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddCourt(context.Background(), 3, tt.req)
			assert.ErrorIs(t, err, ErrInvalidCourtData)
		})
	}
}

func TestAddCourt_StrangerForbidden(t *testing.T) {
	svc, _, _ := newFixture(pendingFacility())

	_, err := svc.AddCourt(context.Background(), 3, &models.AddCourtRequest{
		UserID:       99,
		UserRole:     "owner",
		Name:         "Корт",
		SportType:    "tennis",
		PricePerHour: "200",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
