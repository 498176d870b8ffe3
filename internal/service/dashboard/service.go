package dashboard

import (
	"context"
	"fmt"

	"github.com/m04kA/RentEase-BookingService/internal/domain"
	"github.com/m04kA/RentEase-BookingService/internal/infra/storage/stats"
	"github.com/m04kA/RentEase-BookingService/internal/service/dashboard/models"
)

// Service сервис сводки для личного кабинета
type Service struct {
	statsRepo    StatsRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса дашборда
func NewService(statsRepo StatsRepository, logger Logger) *Service {
	return &Service{
		statsRepo:    statsRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Get собирает сводку показателей в области видимости пользователя.
// Админ видит всю систему, владелец - брони своих площадок,
// обычный пользователь - только собственные брони
func (s *Service) Get(ctx context.Context, userID int64, userRole string) (*models.DashboardResponse, error) {
	s.logger.Info("Dashboard: building summary for user=%d, role=%s", userID, userRole)

	scope := scopeFor(userID, userRole)
	now := s.timeProvider.Now()

	totals, err := s.statsRepo.Totals(ctx, scope, now)
	if err != nil {
		s.logger.Error("Dashboard: failed to get totals: %v", err)
		return nil, fmt.Errorf("%w: Get - totals: %v", ErrInternal, err)
	}

	topCourts, err := s.statsRepo.TopCourts(ctx, scope)
	if err != nil {
		s.logger.Error("Dashboard: failed to get top courts: %v", err)
		return nil, fmt.Errorf("%w: Get - top courts: %v", ErrInternal, err)
	}

	trend, err := s.statsRepo.RevenueTrends(ctx, scope)
	if err != nil {
		s.logger.Error("Dashboard: failed to get revenue trend: %v", err)
		return nil, fmt.Errorf("%w: Get - revenue trend: %v", ErrInternal, err)
	}

	resp := &models.DashboardResponse{
		Totals: models.TotalsResponse{
			Bookings:       totals.BookingsCount,
			Revenue:        totals.Revenue.StringFixed(domain.MoneyPrecision),
			ActiveBookings: totals.ActiveBookings,
			LateReturns:    totals.LateReturns,
		},
		TopCourts:    make([]models.CourtUsageResponse, 0, len(topCourts)),
		RevenueTrend: make([]models.MonthPointResponse, 0, len(trend)),
	}

	for _, item := range topCourts {
		resp.TopCourts = append(resp.TopCourts, models.CourtUsageResponse{
			Court:    item.CourtName,
			Facility: item.FacilityName,
			Bookings: item.Bookings,
		})
	}

	for _, point := range trend {
		resp.RevenueTrend = append(resp.RevenueTrend, models.MonthPointResponse{
			Month:   point.Month,
			Revenue: point.Revenue.StringFixed(domain.MoneyPrecision),
		})
	}

	// Топ клиентов показываем только владельцу и админу
	if userRole == string(domain.RoleAdmin) || userRole == string(domain.RoleOwner) {
		customers, err := s.statsRepo.TopCustomers(ctx, scope)
		if err != nil {
			s.logger.Error("Dashboard: failed to get top customers: %v", err)
			return nil, fmt.Errorf("%w: Get - top customers: %v", ErrInternal, err)
		}
		for _, c := range customers {
			resp.TopCustomers = append(resp.TopCustomers, models.TopCustomerResponse{
				Name:     c.UserName,
				Bookings: c.Bookings,
				Spent:    c.Spent.StringFixed(domain.MoneyPrecision),
			})
		}
	}

	s.logger.Info("Dashboard: summary ready for user=%d", userID)
	return resp, nil
}

// scopeFor строит область видимости агрегатов по роли
func scopeFor(userID int64, userRole string) stats.Scope {
	switch userRole {
	case string(domain.RoleAdmin):
		return stats.Scope{}
	case string(domain.RoleOwner):
		return stats.Scope{OwnerID: &userID}
	default:
		return stats.Scope{UserID: &userID}
	}
}
