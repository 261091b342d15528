package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// DirectoryService manages user accounts: creation, updates and the
// guarded delete path. All operations are manager-only at the route
// level; invariants are still re-checked here.
type DirectoryService struct {
	users      repository.UserRepository
	tickets    repository.TicketRepository
	bcryptCost int
}

// DirectoryDependencies bundles repositories for the directory service.
type DirectoryDependencies struct {
	UserRepo   repository.UserRepository
	TicketRepo repository.TicketRepository
	BcryptCost int
}

// UserInput carries user create/update fields. Password is optional on
// update; when empty the stored hash is kept.
type UserInput struct {
	Name          string
	ServiceNumber string
	Password      string
	Role          domain.Role
	Section       string
}

// NewDirectoryService constructs the service.
func NewDirectoryService(deps DirectoryDependencies) *DirectoryService {
	return &DirectoryService{
		users:      deps.UserRepo,
		tickets:    deps.TicketRepo,
		bcryptCost: deps.BcryptCost,
	}
}

// CreateUser registers a new account after validating the service
// number format, uniqueness and role.
func (s *DirectoryService) CreateUser(ctx context.Context, input UserInput) (*domain.User, error) {
	if err := validateUserInput(input, true); err != nil {
		return nil, err
	}
	if err := s.requireUniqueServiceNumber(ctx, input.ServiceNumber, ""); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	user := &domain.User{
		Name:          strings.TrimSpace(input.Name),
		ServiceNumber: input.ServiceNumber,
		PasswordHash:  hash,
		Role:          input.Role,
		Section:       strings.TrimSpace(input.Section),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// UpdateUser overwrites account fields. The service number may change
// but uniqueness is re-checked against everyone else; the password is
// re-hashed only when a new one is provided.
func (s *DirectoryService) UpdateUser(ctx context.Context, userID string, input UserInput) (*domain.User, error) {
	if err := validateUserInput(input, false); err != nil {
		return nil, err
	}
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.requireUniqueServiceNumber(ctx, input.ServiceNumber, userID); err != nil {
		return nil, err
	}

	user.Name = strings.TrimSpace(input.Name)
	user.ServiceNumber = input.ServiceNumber
	user.Role = input.Role
	user.Section = strings.TrimSpace(input.Section)
	if input.Password != "" {
		hash, err := auth.HashPassword(input.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		user.PasswordHash = hash
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// DeleteUser removes an account. Deletion is refused while any ticket
// references the user or the user is the last manager.
func (s *DirectoryService) DeleteUser(ctx context.Context, userID string) error {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return err
	}

	refs, err := s.tickets.CountReferencingUser(ctx, userID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if refs > 0 {
		return apperrors.NewConflict("user has tickets and cannot be deleted",
			map[string]any{"ticket_count": refs})
	}

	if user.Role == domain.RoleManager {
		managers, err := s.users.CountByRole(ctx, domain.RoleManager)
		if err != nil {
			return apperrors.MapError(err)
		}
		if managers <= 1 {
			return apperrors.NewConflict("cannot delete the last manager", nil)
		}
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// GetUser fetches a single account.
func (s *DirectoryService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.loadUser(ctx, userID)
}

// ListUsers returns all accounts ordered by name.
func (s *DirectoryService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// ListTechnicians returns the assignment pick-list.
func (s *DirectoryService) ListTechnicians(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.ListByRole(ctx, domain.RoleTechnician)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

func (s *DirectoryService) loadUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

func (s *DirectoryService) requireUniqueServiceNumber(ctx context.Context, serviceNumber, selfID string) error {
	existing, err := s.users.GetByServiceNumber(ctx, serviceNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return apperrors.MapError(err)
	}
	if existing.ID != selfID {
		return apperrors.NewConflict("service number already registered",
			map[string]any{"service_number": serviceNumber})
	}
	return nil
}

func validateUserInput(input UserInput, passwordRequired bool) error {
	if strings.TrimSpace(input.Name) == "" || input.ServiceNumber == "" || !input.Role.Valid() {
		return apperrors.NewValidationError("name, service number and a valid role are required", nil)
	}
	if passwordRequired && input.Password == "" {
		return apperrors.NewValidationError("password required", nil)
	}
	if !isServiceNumber(input.ServiceNumber) {
		return apperrors.NewValidationError("service number must be exactly 10 digits",
			map[string]any{"service_number": input.ServiceNumber})
	}
	return nil
}

func isServiceNumber(value string) bool {
	if len(value) != 10 {
		return false
	}
	for _, ch := range value {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
