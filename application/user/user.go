package user

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/xam1dullo/identity-api/constant"
	"github.com/xam1dullo/identity-api/model"
	userrepo "github.com/xam1dullo/identity-api/repository/user"
	"github.com/xam1dullo/identity-api/utils/errors"
	"github.com/xam1dullo/identity-api/utils/logger"
	"go.uber.org/zap"
)

const minPasswordLength = 6

type UserApp interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	List(ctx context.Context) ([]*model.UserEntity, error)
	Update(ctx context.Context, email string, req *model.UpdateRequest) error
	Delete(ctx context.Context, email string) error
}

// PasswordHasher abstracts the credential hashing algorithm.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

// EventPublisher feeds user lifecycle events to downstream consumers.
type EventPublisher interface {
	PublishUserEvent(event model.UserEvent) error
}

type UserAppImpl struct {
	userRepo userrepo.UserRepository
	hasher   PasswordHasher
	events   EventPublisher
}

// NewUserApp wires the user application layer. events may be nil when
// the lifecycle feed is disabled.
func NewUserApp(userRepo userrepo.UserRepository, hasher PasswordHasher, events EventPublisher) UserApp {
	return &UserAppImpl{
		userRepo: userRepo,
		hasher:   hasher,
		events:   events,
	}
}

func (s *UserAppImpl) Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResponse, error) {
	// Friendly duplicate check; uniqueness is enforced by the
	// atomic create below, not by this read.
	exists, err := s.userRepo.Exists(ctx, req.Email)
	if err != nil {
		logger.Error("[Register] err userRepo.Exists", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if exists {
		return nil, errors.SetCustomError(constant.ErrEmailExists)
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		logger.Error("[Register] err hasher.Hash", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	userEntity := &model.UserEntity{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Address:      req.Address,
		PasswordHash: hashedPassword,
	}

	if err := s.userRepo.Create(ctx, userEntity); err != nil {
		if stderrors.Is(err, userrepo.ErrDuplicateKey) {
			// lost the race against a concurrent registration
			return nil, errors.SetCustomError(constant.ErrEmailExists)
		}
		logger.Error("[Register] err userRepo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	s.publish(constant.UserEventRegistered, userEntity.Email)

	return &model.RegisterResponse{
		Email:   userEntity.Email,
		Message: "user registered successfully",
	}, nil
}

func (s *UserAppImpl) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	userEntity, err := s.userRepo.Get(ctx, req.Email)
	if err != nil {
		logger.Error("[Login] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if userEntity == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	if !s.hasher.Verify(req.Password, userEntity.PasswordHash) {
		return nil, errors.SetCustomError(constant.ErrInvalidPassword)
	}

	return &model.LoginResponse{
		Email:   userEntity.Email,
		Message: "login successful",
	}, nil
}

func (s *UserAppImpl) List(ctx context.Context) ([]*model.UserEntity, error) {
	entities, err := s.userRepo.List(ctx)
	if err != nil {
		logger.Error("[List] err userRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return entities, nil
}

func (s *UserAppImpl) Update(ctx context.Context, email string, req *model.UpdateRequest) error {
	patch, err := s.buildPatch(req)
	if err != nil {
		logger.Error("[Update] err buildPatch", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if _, err := s.userRepo.Update(ctx, email, patch); err != nil {
		if stderrors.Is(err, userrepo.ErrNotFound) {
			return errors.SetCustomError(constant.ErrNotFound)
		}
		logger.Error("[Update] err userRepo.Update", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	s.publish(constant.UserEventUpdated, email)
	return nil
}

func (s *UserAppImpl) Delete(ctx context.Context, email string) error {
	if err := s.userRepo.Delete(ctx, email); err != nil {
		if stderrors.Is(err, userrepo.ErrNotFound) {
			return errors.SetCustomError(constant.ErrNotFound)
		}
		logger.Error("[Delete] err userRepo.Delete", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	s.publish(constant.UserEventDeleted, email)
	return nil
}

// buildPatch resolves the update request into concrete field changes.
// Absent or blank fields are dropped; a password shorter than the
// registration minimum is ignored rather than rejected.
func (s *UserAppImpl) buildPatch(req *model.UpdateRequest) (*model.UserPatch, error) {
	patch := &model.UserPatch{}

	if v, ok := model.TrimmedValue(req.FirstName); ok {
		patch.FirstName = &v
	}
	if v, ok := model.TrimmedValue(req.LastName); ok {
		patch.LastName = &v
	}
	if v, ok := model.TrimmedValue(req.Phone); ok {
		patch.Phone = &v
	}
	if v, ok := model.TrimmedValue(req.Address); ok {
		patch.Address = &v
	}
	if req.Password != nil && len(*req.Password) >= minPasswordLength {
		hashed, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hashed
	}

	return patch, nil
}

func (s *UserAppImpl) publish(action, email string) {
	if s.events == nil {
		return
	}
	event := model.UserEvent{
		Action:     action,
		Email:      email,
		OccurredAt: time.Now().UTC(),
	}
	// The store write is the system of record; a publish failure is
	// logged, never surfaced to the caller.
	if err := s.events.PublishUserEvent(event); err != nil {
		logger.Error("[publish] err events.PublishUserEvent",
			zap.String("action", action), zap.String("error", err.Error()))
	}
}
