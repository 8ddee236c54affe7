package financing

import (
	"context"

	"github.com/google/uuid"
	"github.com/stationery/backoffice/internal/domain/financing"
	"github.com/stationery/backoffice/internal/domain/shared"
	"go.uber.org/zap"
)

// InvestorService handles investor management
type InvestorService struct {
	investorRepo   financing.InvestorRepository
	investmentRepo financing.InvestmentRepository
	logger         *zap.Logger
}

// NewInvestorService creates a new InvestorService
func NewInvestorService(
	investorRepo financing.InvestorRepository,
	investmentRepo financing.InvestmentRepository,
	logger *zap.Logger,
) *InvestorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvestorService{
		investorRepo:   investorRepo,
		investmentRepo: investmentRepo,
		logger:         logger,
	}
}

// Create creates a new active investor
func (s *InvestorService) Create(ctx context.Context, req CreateInvestorRequest) (*InvestorResponse, error) {
	investor, err := financing.NewInvestor(req.Name, contactFromInput(req.Contact), bankFromInput(req.Bank))
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		investor.SetNotes(req.Notes)
	}
	if err := s.investorRepo.Save(ctx, investor); err != nil {
		return nil, err
	}

	s.logger.Info("investor created",
		zap.String("investor_id", investor.ID.String()),
		zap.String("name", investor.Name),
	)
	resp := ToInvestorResponse(investor)
	return &resp, nil
}

// GetByID retrieves an investor
func (s *InvestorService) GetByID(ctx context.Context, id uuid.UUID) (*InvestorResponse, error) {
	investor, err := s.investorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToInvestorResponse(investor)
	return &resp, nil
}

// List lists investors with filtering and pagination
func (s *InvestorService) List(ctx context.Context, filter InvestorListFilter) ([]InvestorResponse, int64, error) {
	domainFilter := financing.InvestorFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
		},
		Active:       filter.Active,
		IncludeHouse: filter.IncludeHouse,
	}
	if domainFilter.Page <= 0 {
		domainFilter.Page = 1
	}
	if domainFilter.OrderBy == "" {
		domainFilter.OrderBy = "name"
		domainFilter.OrderDir = "asc"
	}

	investors, total, err := s.investorRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	items := make([]InvestorResponse, len(investors))
	for i := range investors {
		items[i] = ToInvestorResponse(&investors[i])
	}
	return items, total, nil
}

// Update applies a partial update
func (s *InvestorService) Update(ctx context.Context, id uuid.UUID, req UpdateInvestorRequest) (*InvestorResponse, error) {
	investor, err := s.investorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := investor.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Contact != nil {
		investor.UpdateContact(contactFromInput(*req.Contact))
	}
	if req.Bank != nil {
		investor.UpdateBankDetails(bankFromInput(*req.Bank))
	}
	if req.Notes != nil {
		investor.SetNotes(*req.Notes)
	}

	if err := s.investorRepo.Save(ctx, investor); err != nil {
		return nil, err
	}
	resp := ToInvestorResponse(investor)
	return &resp, nil
}

// Activate marks an investor active
func (s *InvestorService) Activate(ctx context.Context, id uuid.UUID) (*InvestorResponse, error) {
	investor, err := s.investorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := investor.Activate(); err != nil {
		return nil, err
	}
	if err := s.investorRepo.Save(ctx, investor); err != nil {
		return nil, err
	}
	resp := ToInvestorResponse(investor)
	return &resp, nil
}

// Deactivate marks an investor inactive. Existing investments keep earning.
func (s *InvestorService) Deactivate(ctx context.Context, id uuid.UUID) (*InvestorResponse, error) {
	investor, err := s.investorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := investor.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.investorRepo.Save(ctx, investor); err != nil {
		return nil, err
	}
	resp := ToInvestorResponse(investor)
	return &resp, nil
}

// Delete removes an investor that holds no investments
func (s *InvestorService) Delete(ctx context.Context, id uuid.UUID) error {
	investor, err := s.investorRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	count, err := s.investmentRepo.CountByInvestor(ctx, id)
	if err != nil {
		return err
	}
	if err := investor.EnsureDeletable(count); err != nil {
		return err
	}
	if err := s.investorRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("investor deleted", zap.String("investor_id", id.String()))
	return nil
}

// EnsureHouseInvestor inserts the reserved house investor if it is missing
func (s *InvestorService) EnsureHouseInvestor(ctx context.Context, houseID uuid.UUID) error {
	return s.investorRepo.EnsureHouse(ctx, houseID)
}

func contactFromInput(in ContactInput) financing.ContactDetails {
	return financing.ContactDetails{
		Phone:   in.Phone,
		Email:   in.Email,
		Address: in.Address,
	}
}

func bankFromInput(in BankInput) financing.BankDetails {
	return financing.BankDetails{
		BankName:      in.BankName,
		AccountName:   in.AccountName,
		AccountNumber: in.AccountNumber,
		Branch:        in.Branch,
	}
}
