package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ordersuite/order-system/internal/auth"
	"github.com/ordersuite/order-system/internal/core/domain"
	"github.com/ordersuite/order-system/internal/core/ports"
	"github.com/ordersuite/order-system/internal/query"
)

// UserService implements registration, login, profile management and
// administration of accounts.
type UserService struct {
	repo  ports.UserRepository
	codec *auth.Codec
	log   zerolog.Logger
}

func NewUserService(repo ports.UserRepository, codec *auth.Codec, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, codec: codec, log: log}
}

// userListSchema drives the shared query pipeline for GET /users.
var userListSchema = query.Schema[*domain.User]{
	Filters: map[string]query.Matcher[*domain.User]{
		"role": func(u *domain.User, v string) bool {
			return string(u.Role) == v
		},
		"search": func(u *domain.User, v string) bool {
			needle := strings.ToLower(v)
			return strings.Contains(strings.ToLower(u.Email), needle) ||
				strings.Contains(strings.ToLower(u.Name), needle)
		},
	},
	Sort: map[string]query.Less[*domain.User]{
		"createdAt": func(a, b *domain.User) bool { return a.CreatedAt.Before(b.CreatedAt) },
		"updatedAt": func(a, b *domain.User) bool { return a.UpdatedAt.Before(b.UpdatedAt) },
		"email":     func(a, b *domain.User) bool { return a.Email < b.Email },
		"name":      func(a, b *domain.User) bool { return a.Name < b.Name },
	},
	DefaultSort: "createdAt",
}

func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	role, ok := domain.ParseRole(in.Role)
	if !ok || !role.SelfRegisterable() {
		return nil, domain.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.codec.Issue(created)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return &ports.AuthResult{Token: token, User: created}, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.codec.Issue(user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")
	return &ports.AuthResult{Token: token, User: user}, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, id string, in ports.UpdateProfileInput) (*domain.User, error) {
	if in.Email != "" {
		existing, err := s.repo.FindByEmail(ctx, in.Email)
		if err == nil && existing.ID != id {
			return nil, domain.ErrEmailExists
		}
	}

	return s.repo.Mutate(ctx, id, func(u *domain.User) error {
		if in.Name != "" {
			u.Name = in.Name
		}
		if in.Email != "" {
			u.Email = in.Email
		}
		u.UpdatedAt = time.Now().UTC()
		return nil
	})
}

func (s *UserService) List(ctx context.Context, p query.Params) (*query.Result[*domain.User], error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	res := query.Run(users, p, userListSchema)
	return &res, nil
}

func (s *UserService) Delete(ctx context.Context, targetID string, claims *auth.Claims) error {
	if claims == nil {
		return domain.ErrUnauthorized
	}

	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return err
	}

	isAdmin := claims.Role == string(domain.RoleAdmin)
	if targetID == claims.UserID && !isAdmin {
		return domain.ErrSelfDeleteNotAllowed
	}

	if target.Role == domain.RoleAdmin {
		admins, err := s.countAdmins(ctx)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return domain.ErrSelfDeleteNotAllowed.WithMessage("cannot delete the only admin account")
		}
	}

	if err := s.repo.Delete(ctx, targetID); err != nil {
		return err
	}

	s.log.Info().Str("user_id", targetID).Str("deleted_by", claims.UserID).Msg("user deleted")
	return nil
}

func (s *UserService) EnsureAdmin(ctx context.Context, email, password, name string) error {
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = s.repo.Create(ctx, &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return err
	}

	s.log.Info().Str("email", email).Msg("admin account provisioned")
	return nil
}

func (s *UserService) countAdmins(ctx context.Context) (int, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, u := range users {
		if u.Role == domain.RoleAdmin {
			n++
		}
	}
	return n, nil
}
