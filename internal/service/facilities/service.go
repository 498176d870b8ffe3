package facilities

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m04kA/RentEase-BookingService/internal/domain"
	facilityRepo "github.com/m04kA/RentEase-BookingService/internal/infra/storage/facility"
	"github.com/m04kA/RentEase-BookingService/internal/service/facilities/models"
	"github.com/m04kA/RentEase-BookingService/pkg/types"
)

// Service сервис для работы с площадками и кортами
type Service struct {
	facilityRepo FacilityRepository
	courtRepo    CourtRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса площадок
func NewService(
	facilityRepo FacilityRepository,
	courtRepo CourtRepository,
	logger Logger,
) *Service {
	return &Service{
		facilityRepo: facilityRepo,
		courtRepo:    courtRepo,
		logger:       logger,
	}
}

// List публичный поиск одобренных площадок с фильтрами и пагинацией
func (s *Service) List(ctx context.Context, req *models.ListFacilitiesRequest) (*models.FacilityListResponse, error) {
	s.logger.Info("List: public search query=%q, location=%q, sport=%q, page=%d",
		req.Query, req.Location, req.Sport, req.Page)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid price filter: %v", err)
		return nil, fmt.Errorf("%w: invalid price filter", ErrInvalidInput)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = domain.DefaultPerPage
	}
	if filter.PerPage > domain.MaxPerPage {
		filter.PerPage = domain.MaxPerPage
	}

	items, total, err := s.facilityRepo.ListApproved(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	facilities := make([]models.FacilityResponse, 0, len(items))
	for _, item := range items {
		facilities = append(facilities, models.FromDomainFacilityWithPrice(item))
	}

	s.logger.Info("List: found %d facilities (page %d of total %d rows)", len(facilities), filter.Page, total)

	return &models.FacilityListResponse{
		Facilities: facilities,
		Total:      total,
		Page:       filter.Page,
		PerPage:    filter.PerPage,
	}, nil
}

// GetDetail возвращает площадку вместе с её кортами
// Непрошедшие модерацию площадки видят только владелец и администратор
func (s *Service) GetDetail(ctx context.Context, id int64, userID int64, userRole string) (*models.FacilityDetailResponse, error) {
	s.logger.Info("GetDetail: fetching facility id=%d", id)

	facility, err := s.getFacility(ctx, id, "GetDetail")
	if err != nil {
		return nil, err
	}

	if !facility.IsBookable() {
		if facility.OwnerID != userID && userRole != string(domain.RoleAdmin) {
			s.logger.Warn("GetDetail: facility id=%d is not approved, access denied for user=%d", id, userID)
			return nil, ErrFacilityNotFound
		}
	}

	courts, err := s.courtRepo.ListByFacility(ctx, id)
	if err != nil {
		s.logger.Error("GetDetail: failed to list courts for facility id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetDetail - list courts: %v", ErrInternal, err)
	}

	courtItems := make([]models.CourtResponse, 0, len(courts))
	for _, c := range courts {
		courtItems = append(courtItems, models.FromDomainCourt(c))
	}

	resp := models.FromDomainFacility(facility)
	if price := startingPrice(courts); price != nil {
		formatted := price.StringFixed(domain.MoneyPrecision)
		resp.StartingPrice = &formatted
	}

	s.logger.Info("GetDetail: facility id=%d has %d courts", id, len(courts))

	return &models.FacilityDetailResponse{
		Facility: resp,
		Courts:   courtItems,
	}, nil
}

// Create создает новую площадку в статусе pending
// Доступно владельцам и администраторам
func (s *Service) Create(ctx context.Context, req *models.CreateFacilityRequest) (*models.FacilityResponse, error) {
	s.logger.Info("Create: new facility %q by user=%d", req.Name, req.OwnerID)

	if req.OwnerRole != string(domain.RoleOwner) && req.OwnerRole != string(domain.RoleAdmin) {
		s.logger.Warn("Create: user=%d with role=%s cannot create facilities", req.OwnerID, req.OwnerRole)
		return nil, ErrAccessDenied
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Location) == "" {
		return nil, fmt.Errorf("%w: name and location are required", ErrInvalidInput)
	}

	facility := &domain.Facility{
		OwnerID:     req.OwnerID,
		Name:        strings.TrimSpace(req.Name),
		Location:    strings.TrimSpace(req.Location),
		Description: req.Description,
		Status:      domain.FacilityPending,
	}

	created, err := s.facilityRepo.Create(ctx, facility)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: facility id=%d created, pending moderation", created.ID)

	resp := models.FromDomainFacility(created)
	return &resp, nil
}

// Update редактирует площадку
// Доступно её владельцу и администратору
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateFacilityRequest) (*models.FacilityResponse, error) {
	s.logger.Info("Update: facility id=%d by user=%d", id, req.UserID)

	facility, err := s.getFacility(ctx, id, "Update")
	if err != nil {
		return nil, err
	}

	if facility.OwnerID != req.UserID && req.UserRole != string(domain.RoleAdmin) {
		s.logger.Warn("Update: access denied for user=%d to facility id=%d", req.UserID, id)
		return nil, ErrAccessDenied
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Location) == "" {
		return nil, fmt.Errorf("%w: name and location are required", ErrInvalidInput)
	}

	updated, err := s.facilityRepo.Update(ctx, id, strings.TrimSpace(req.Name), strings.TrimSpace(req.Location), req.Description)
	if err != nil {
		s.logger.Error("Update: repository error for facility id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: facility id=%d updated", id)

	resp := models.FromDomainFacility(updated)
	return &resp, nil
}

// Moderate одобряет или отклоняет площадку (только администратор)
func (s *Service) Moderate(ctx context.Context, id int64, req *models.ModerateFacilityRequest) (*models.FacilityResponse, error) {
	s.logger.Info("Moderate: facility id=%d, decision=%s, admin=%d", id, req.Status, req.UserID)

	if req.UserRole != string(domain.RoleAdmin) {
		s.logger.Warn("Moderate: access denied for user=%d", req.UserID)
		return nil, ErrAccessDenied
	}

	status := domain.FacilityStatus(req.Status)
	if status != domain.FacilityApproved && status != domain.FacilityRejected {
		s.logger.Warn("Moderate: invalid decision=%s", req.Status)
		return nil, ErrInvalidStatus
	}

	facility, err := s.getFacility(ctx, id, "Moderate")
	if err != nil {
		return nil, err
	}

	if err := s.facilityRepo.UpdateStatus(ctx, id, status); err != nil {
		s.logger.Error("Moderate: repository error for facility id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Moderate - repository error: %v", ErrInternal, err)
	}

	facility.Status = status

	s.logger.Info("Moderate: facility id=%d moved to status=%s", id, status)

	resp := models.FromDomainFacility(facility)
	return &resp, nil
}

// ListPending возвращает очередь площадок на модерацию (только администратор)
func (s *Service) ListPending(ctx context.Context, userID int64, userRole string) ([]models.FacilityResponse, error) {
	s.logger.Info("ListPending: moderation queue requested by user=%d", userID)

	if userRole != string(domain.RoleAdmin) {
		s.logger.Warn("ListPending: access denied for user=%d", userID)
		return nil, ErrAccessDenied
	}

	facilities, err := s.facilityRepo.ListByStatus(ctx, domain.FacilityPending)
	if err != nil {
		s.logger.Error("ListPending: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListPending - repository error: %v", ErrInternal, err)
	}

	items := make([]models.FacilityResponse, 0, len(facilities))
	for _, f := range facilities {
		items = append(items, models.FromDomainFacility(f))
	}

	s.logger.Info("ListPending: %d facilities awaiting moderation", len(items))
	return items, nil
}

// AddCourt добавляет корт на площадку
// Доступно владельцу площадки и администратору
func (s *Service) AddCourt(ctx context.Context, facilityID int64, req *models.AddCourtRequest) (*models.CourtResponse, error) {
	s.logger.Info("AddCourt: new court %q on facility id=%d by user=%d", req.Name, facilityID, req.UserID)

	facility, err := s.getFacility(ctx, facilityID, "AddCourt")
	if err != nil {
		return nil, err
	}

	if facility.OwnerID != req.UserID && req.UserRole != string(domain.RoleAdmin) {
		s.logger.Warn("AddCourt: access denied for user=%d to facility id=%d", req.UserID, facilityID)
		return nil, ErrAccessDenied
	}

	court, err := buildCourt(facilityID, req)
	if err != nil {
		s.logger.Warn("AddCourt: invalid court data: %v", err)
		return nil, err
	}

	created, err := s.courtRepo.Create(ctx, court)
	if err != nil {
		s.logger.Error("AddCourt: repository error for facility id=%d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: AddCourt - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddCourt: court id=%d created on facility id=%d", created.ID, facilityID)

	resp := models.FromDomainCourt(created)
	return &resp, nil
}

// getFacility общая выборка площадки с маппингом ошибок
func (s *Service) getFacility(ctx context.Context, id int64, op string) (*domain.Facility, error) {
	facility, err := s.facilityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			s.logger.Warn("%s: facility id=%d not found", op, id)
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("%s: repository error for facility id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return facility, nil
}

// buildCourt валидирует данные корта и собирает domain модель
// Часы работы по умолчанию: 06:00 - 22:00
func buildCourt(facilityID int64, req *models.AddCourtRequest) (*domain.Court, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidCourtData)
	}
	if strings.TrimSpace(req.SportType) == "" {
		return nil, fmt.Errorf("%w: sportType is required", ErrInvalidCourtData)
	}

	price, err := decimal.NewFromString(req.PricePerHour)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid pricePerHour: %v", ErrInvalidCourtData, err)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: pricePerHour must not be negative", ErrInvalidCourtData)
	}

	openTime := types.TimeString(domain.DefaultOpenTime)
	if req.OpenTime != nil {
		openTime, err = types.NewTimeStringFromString(*req.OpenTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid openTime: %v", ErrInvalidCourtData, err)
		}
	}

	closeTime := types.TimeString(domain.DefaultCloseTime)
	if req.CloseTime != nil {
		closeTime, err = types.NewTimeStringFromString(*req.CloseTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid closeTime: %v", ErrInvalidCourtData, err)
		}
	}

	if !openTime.IsBefore(closeTime) {
		return nil, fmt.Errorf("%w: openTime must be before closeTime", ErrInvalidCourtData)
	}

	return &domain.Court{
		FacilityID:   facilityID,
		Name:         strings.TrimSpace(req.Name),
		SportType:    strings.TrimSpace(req.SportType),
		PricePerHour: price,
		OpenTime:     openTime,
		CloseTime:    closeTime,
	}, nil
}

// startingPrice возвращает минимальную почасовую цену среди кортов
func startingPrice(courts []*domain.Court) *decimal.Decimal {
	var min *decimal.Decimal
	for _, c := range courts {
		if min == nil || c.PricePerHour.LessThan(*min) {
			price := c.PricePerHour
			min = &price
		}
	}
	return min
}
