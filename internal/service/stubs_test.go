package service

import (
	"context"
	"testing"
	"time"

	"vyaparify/internal/models"
	"vyaparify/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// adRepoStub is a stub for repository.AdRepository.
type adRepoStub struct {
	createFn      func(context.Context, *models.Ad) error
	getByIDFn     func(context.Context, uint) (*models.Ad, error)
	getByUserIDFn func(context.Context, uint, int, int) ([]*models.Ad, error)
	listFn        func(context.Context, repository.AdFilter, int, int) ([]*models.Ad, error)
	deleteFn      func(context.Context, uint) error
	existsFn      func(context.Context, uint) (bool, error)
}

func (s *adRepoStub) Create(ctx context.Context, ad *models.Ad) error {
	return s.createFn(ctx, ad)
}
func (s *adRepoStub) GetByID(ctx context.Context, id uint) (*models.Ad, error) {
	return s.getByIDFn(ctx, id)
}
func (s *adRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Ad, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset)
}
func (s *adRepoStub) List(ctx context.Context, filter repository.AdFilter, limit, offset int) ([]*models.Ad, error) {
	return s.listFn(ctx, filter, limit, offset)
}
func (s *adRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *adRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}

func noopAdRepo() *adRepoStub {
	return &adRepoStub{
		createFn:  func(_ context.Context, _ *models.Ad) error { return nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.Ad, error) { return &models.Ad{}, nil },
		getByUserIDFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Ad, error) {
			return nil, nil
		},
		listFn: func(_ context.Context, _ repository.AdFilter, _, _ int) ([]*models.Ad, error) {
			return nil, nil
		},
		deleteFn: func(_ context.Context, _ uint) error { return nil },
		existsFn: func(_ context.Context, _ uint) (bool, error) { return true, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn        func(context.Context, uint) (*models.User, error)
	getByIDWithAdsFn func(context.Context, uint, int) (*models.User, error)
	getByEmailFn     func(context.Context, string) (*models.User, error)
	createFn         func(context.Context, *models.User) error
	updateFn         func(context.Context, *models.User) error
	deleteFn         func(context.Context, uint) error
	listFn           func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDWithAds(ctx context.Context, id uint, limit int) (*models.User, error) {
	return s.getByIDWithAdsFn(ctx, id, limit)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		getByIDWithAdsFn: func(_ context.Context, id uint, _ int) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:     func(_ context.Context, _ *models.User) error { return nil },
		updateFn:     func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
		listFn:       func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
	}
}

// msgRepoStub is a stub for repository.MessageRepository.
type msgRepoStub struct {
	createFn   func(context.Context, *models.Message) error
	getByIDFn  func(context.Context, uint) (*models.Message, error)
	inboxFn    func(context.Context, uint, int, int) ([]*models.Message, error)
	threadFn   func(context.Context, uint, uint, uint) ([]*models.Message, error)
	markReadFn func(context.Context, uint, time.Time) error
}

func (s *msgRepoStub) Create(ctx context.Context, msg *models.Message) error {
	return s.createFn(ctx, msg)
}
func (s *msgRepoStub) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	return s.getByIDFn(ctx, id)
}
func (s *msgRepoStub) Inbox(ctx context.Context, receiverID uint, limit, offset int) ([]*models.Message, error) {
	return s.inboxFn(ctx, receiverID, limit, offset)
}
func (s *msgRepoStub) Thread(ctx context.Context, userA, userB, adID uint) ([]*models.Message, error) {
	return s.threadFn(ctx, userA, userB, adID)
}
func (s *msgRepoStub) MarkRead(ctx context.Context, id uint, at time.Time) error {
	return s.markReadFn(ctx, id, at)
}

func noopMsgRepo() *msgRepoStub {
	return &msgRepoStub{
		createFn:  func(_ context.Context, _ *models.Message) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Message, error) { return &models.Message{ID: id}, nil },
		inboxFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Message, error) {
			return nil, nil
		},
		threadFn: func(_ context.Context, _, _, _ uint) ([]*models.Message, error) {
			return nil, nil
		},
		markReadFn: func(_ context.Context, _ uint, _ time.Time) error { return nil },
	}
}

func neverAdmin(_ context.Context, _ uint) (bool, error) { return false, nil }
func alwaysAdmin(_ context.Context, _ uint) (bool, error) { return true, nil }

// assertAppErrorCode asserts that err is an AppError with the given code.
func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}
