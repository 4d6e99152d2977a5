package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rukioi/CocadaNordestina/internal/entity"
	"github.com/rukioi/CocadaNordestina/internal/repository"
)

// rolePermissions is the closed role → action table. No inheritance: each
// role's set is enumerated on its own. ActionAll grants everything.
var rolePermissions = map[entity.Role][]entity.Action{
	entity.RoleAdministrador: {entity.ActionAll},
	entity.RoleGerente:       {entity.ActionSales, entity.ActionProducts, entity.ActionCustomers, entity.ActionDelivery, entity.ActionReports},
	entity.RoleVendedor:      {entity.ActionSales, entity.ActionCustomers},
	entity.RoleEstoquista:    {entity.ActionProducts, entity.ActionStock},
}

const minPasswordLen = 6

// AuthService is the access gate: login/logout, the signed-in-user slot,
// the permission check, and user administration.
type AuthService struct {
	userRepo *repository.UserRepository
	current  *repository.CurrentUserRepository
	audit    *AuditService
}

func NewAuthService(userRepo *repository.UserRepository, current *repository.CurrentUserRepository, audit *AuditService) *AuthService {
	return &AuthService{userRepo: userRepo, current: current, audit: audit}
}

// Login checks the credentials against the active users and, on success,
// stamps LastLogin and fills the signed-in slot. Bad credentials return a
// nil user without distinguishing unknown email from wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if user == nil || !user.Active {
		return nil, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.userRepo.Update(*user); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := s.current.Set(user.Sanitized()); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.audit.Record(entity.AuditLogin, "Usuário fez login no sistema")
	signed := user.Sanitized()
	return &signed, nil
}

// Logout audits while the user is still signed in, then clears the slot.
func (s *AuthService) Logout() error {
	s.audit.Record(entity.AuditLogout, "Usuário fez logout do sistema")
	if err := s.current.Clear(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// CurrentUser returns nil when nobody is signed in.
func (s *AuthService) CurrentUser() (*entity.User, error) {
	user, err := s.current.Get()
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	sanitized := user.Sanitized()
	return &sanitized, nil
}

// HasPermission reports whether the signed-in user may perform the action.
// Unknown action tags are simply never granted except through the wildcard.
func (s *AuthService) HasPermission(action entity.Action) bool {
	user, err := s.current.Get()
	if err != nil || user == nil {
		return false
	}
	for _, a := range rolePermissions[user.Role] {
		if a == entity.ActionAll || a == action {
			return true
		}
	}
	return false
}

type CreateUserRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     entity.Role `json:"role"`
	Active   bool        `json:"active"`
}

func (s *AuthService) CreateUser(req CreateUserRequest) (*entity.User, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("name, email and password are required")
	}
	if len(req.Password) < minPasswordLen {
		return nil, fmt.Errorf("password must have at least %d characters", minPasswordLen)
	}
	taken, err := s.userRepo.EmailTaken(req.Email, "")
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("email %s is already in use", req.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	user := &entity.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Active:       req.Active,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.audit.Record(entity.AuditCreateUser, fmt.Sprintf("Criou usuário: %s", user.Name))
	created := user.Sanitized()
	return &created, nil
}

type UpdateUserRequest struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"` // empty keeps the current one
	Role     entity.Role `json:"role"`
	Active   bool        `json:"active"`
}

// UpdateUser edits profile fields and optionally rotates the password.
// Unknown ids are a silent no-op.
func (s *AuthService) UpdateUser(req UpdateUserRequest) error {
	user, err := s.userRepo.GetByID(req.ID)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if user == nil {
		return nil
	}
	taken, err := s.userRepo.EmailTaken(req.Email, req.ID)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if taken {
		return fmt.Errorf("email %s is already in use", req.Email)
	}

	user.Name = req.Name
	user.Email = req.Email
	user.Role = req.Role
	user.Active = req.Active
	if req.Password != "" {
		if len(req.Password) < minPasswordLen {
			return fmt.Errorf("password must have at least %d characters", minPasswordLen)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	if err := s.userRepo.Update(*user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if err := s.refreshCurrent(*user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	s.audit.Record(entity.AuditUpdateUser, fmt.Sprintf("Atualizou usuário: %s", user.Name))
	return nil
}

// ChangePassword rotates the signed-in user's own password after checking
// the current one.
func (s *AuthService) ChangePassword(currentPassword, newPassword string) error {
	signed, err := s.current.Get()
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if signed == nil {
		return fmt.Errorf("nobody is signed in")
	}
	user, err := s.userRepo.GetByID(signed.ID)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if user == nil {
		return fmt.Errorf("signed-in user no longer exists")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return fmt.Errorf("current password is incorrect")
	}
	if len(newPassword) < minPasswordLen {
		return fmt.Errorf("password must have at least %d characters", minPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	user.PasswordHash = string(hash)
	if err := s.userRepo.Update(*user); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return s.refreshCurrent(*user)
}

func (s *AuthService) DeleteUser(id string) error {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if err := s.userRepo.Delete(id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if user != nil {
		s.audit.Record(entity.AuditDeleteUser, fmt.Sprintf("Deletou usuário: %s", user.Name))
	}
	return nil
}

// ListUsers never exposes password hashes.
func (s *AuthService) ListUsers() ([]entity.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i] = users[i].Sanitized()
	}
	return users, nil
}

// SeedInitialAdmin creates the first administrator on a fresh store.
func (s *AuthService) SeedInitialAdmin(name, email, password string) error {
	seeded, err := s.userRepo.Seeded()
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if seeded {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	admin := &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.RoleAdministrador,
		Active:       true,
	}
	if err := s.userRepo.Create(admin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}

// refreshCurrent keeps the signed-in slot in sync when the same user record
// changes underneath it.
func (s *AuthService) refreshCurrent(user entity.User) error {
	signed, err := s.current.Get()
	if err != nil || signed == nil || signed.ID != user.ID {
		return err
	}
	return s.current.Set(user.Sanitized())
}
