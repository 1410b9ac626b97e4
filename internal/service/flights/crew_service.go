package flights

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/policy"
	"github.com/Domenick1991/airport/internal/repository"
)

// CrewUseCase covers crews and their flight assignments. Staff only.
type CrewUseCase interface {
	ListCrews(ctx context.Context, identity domain.Identity, filter domain.CrewFilter) ([]domain.Crew, error)
	GetCrew(ctx context.Context, identity domain.Identity, id int64) (*domain.Crew, error)
	CreateCrew(ctx context.Context, identity domain.Identity, input CrewInput) (*domain.Crew, error)
	UpdateCrew(ctx context.Context, identity domain.Identity, id int64, patch CrewPatch) (*domain.Crew, error)
	DeleteCrew(ctx context.Context, identity domain.Identity, id int64) error

	ListMembers(ctx context.Context, identity domain.Identity, filter domain.FlightCrewMemberFilter) ([]domain.FlightCrewMember, error)
	GetMember(ctx context.Context, identity domain.Identity, id int64) (*domain.FlightCrewMember, error)
	CreateMember(ctx context.Context, identity domain.Identity, input MemberInput) (*domain.FlightCrewMember, error)
	UpdateMember(ctx context.Context, identity domain.Identity, id int64, patch MemberPatch) (*domain.FlightCrewMember, error)
	DeleteMember(ctx context.Context, identity domain.Identity, id int64) error
}

type CrewInput struct {
	FirstName string
	LastName  string
}

type CrewPatch struct {
	FirstName *string
	LastName  *string
}

type MemberInput struct {
	FlightID int64
	CrewID   int64
}

type MemberPatch struct {
	FlightID *int64
	CrewID   *int64
}

type CrewService struct {
	crews   repository.CrewRepository
	members repository.FlightCrewMemberRepository
}

func NewCrewService(crews repository.CrewRepository, members repository.FlightCrewMemberRepository) *CrewService {
	return &CrewService{crews: crews, members: members}
}

func staffOnly(identity domain.Identity, action policy.Action) error {
	return policy.Authorize(policy.StaffOnly, identity, action, nil)
}

func (s *CrewService) ListCrews(ctx context.Context, identity domain.Identity, filter domain.CrewFilter) ([]domain.Crew, error) {
	if err := staffOnly(identity, policy.ActionList); err != nil {
		return nil, err
	}
	return s.crews.List(ctx, filter)
}

func (s *CrewService) GetCrew(ctx context.Context, identity domain.Identity, id int64) (*domain.Crew, error) {
	if err := staffOnly(identity, policy.ActionRetrieve); err != nil {
		return nil, err
	}
	return s.crews.GetByID(ctx, id)
}

func (s *CrewService) CreateCrew(ctx context.Context, identity domain.Identity, input CrewInput) (*domain.Crew, error) {
	if err := staffOnly(identity, policy.ActionCreate); err != nil {
		return nil, err
	}
	crew := &domain.Crew{FirstName: input.FirstName, LastName: input.LastName}
	if err := validateCrew(crew); err != nil {
		return nil, err
	}
	if err := s.crews.Create(ctx, crew); err != nil {
		return nil, fmt.Errorf("create crew: %w", err)
	}
	return crew, nil
}

func (s *CrewService) UpdateCrew(ctx context.Context, identity domain.Identity, id int64, patch CrewPatch) (*domain.Crew, error) {
	if err := staffOnly(identity, policy.ActionUpdate); err != nil {
		return nil, err
	}
	crew, err := s.crews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.FirstName != nil {
		crew.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		crew.LastName = *patch.LastName
	}
	if err := validateCrew(crew); err != nil {
		return nil, err
	}
	if err := s.crews.Update(ctx, crew); err != nil {
		return nil, fmt.Errorf("update crew: %w", err)
	}
	return crew, nil
}

func (s *CrewService) DeleteCrew(ctx context.Context, identity domain.Identity, id int64) error {
	if err := staffOnly(identity, policy.ActionDelete); err != nil {
		return err
	}
	if err := s.crews.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete crew: %w", err)
	}
	return nil
}

func (s *CrewService) ListMembers(ctx context.Context, identity domain.Identity, filter domain.FlightCrewMemberFilter) ([]domain.FlightCrewMember, error) {
	if err := staffOnly(identity, policy.ActionList); err != nil {
		return nil, err
	}
	return s.members.List(ctx, filter)
}

func (s *CrewService) GetMember(ctx context.Context, identity domain.Identity, id int64) (*domain.FlightCrewMember, error) {
	if err := staffOnly(identity, policy.ActionRetrieve); err != nil {
		return nil, err
	}
	return s.members.GetByID(ctx, id)
}

func (s *CrewService) CreateMember(ctx context.Context, identity domain.Identity, input MemberInput) (*domain.FlightCrewMember, error) {
	if err := staffOnly(identity, policy.ActionCreate); err != nil {
		return nil, err
	}
	member := &domain.FlightCrewMember{FlightID: input.FlightID, CrewID: input.CrewID}
	if err := validateMember(member); err != nil {
		return nil, err
	}
	if err := s.members.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("create flight crew member: %w", err)
	}
	return s.members.GetByID(ctx, member.ID)
}

func (s *CrewService) UpdateMember(ctx context.Context, identity domain.Identity, id int64, patch MemberPatch) (*domain.FlightCrewMember, error) {
	if err := staffOnly(identity, policy.ActionUpdate); err != nil {
		return nil, err
	}
	member, err := s.members.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.FlightID != nil {
		member.FlightID = *patch.FlightID
	}
	if patch.CrewID != nil {
		member.CrewID = *patch.CrewID
	}
	if err := validateMember(member); err != nil {
		return nil, err
	}
	if err := s.members.Update(ctx, member); err != nil {
		return nil, fmt.Errorf("update flight crew member: %w", err)
	}
	return s.members.GetByID(ctx, id)
}

func (s *CrewService) DeleteMember(ctx context.Context, identity domain.Identity, id int64) error {
	if err := staffOnly(identity, policy.ActionDelete); err != nil {
		return err
	}
	if err := s.members.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete flight crew member: %w", err)
	}
	return nil
}

func validateCrew(c *domain.Crew) error {
	verr := &domain.ValidationError{}
	requireName(verr, "first_name", c.FirstName)
	requireName(verr, "last_name", c.LastName)
	return verr.Err()
}

func validateMember(m *domain.FlightCrewMember) error {
	verr := &domain.ValidationError{}
	if m.FlightID <= 0 {
		verr.Add("flight", "this field is required")
	}
	if m.CrewID <= 0 {
		verr.Add("crew", "this field is required")
	}
	return verr.Err()
}

var _ CrewUseCase = (*CrewService)(nil)
