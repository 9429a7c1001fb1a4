package service

import (
	"context"

	"chirper/internal/models"
)

// Function-field stubs so each test overrides only the calls it cares
// about. Unset fields return zero values.

type stubUserRepo struct {
	CreateFn        func(ctx context.Context, user *models.User) error
	GetByIDFn       func(ctx context.Context, id uint) (*models.User, error)
	GetByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	SearchFn        func(ctx context.Context, query string) ([]models.User, error)
	UpdateFn        func(ctx context.Context, user *models.User) error
	DeleteFn        func(ctx context.Context, id uint) error
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, user)
	}
	return nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	return &models.User{ID: id}, nil
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.GetByUsernameFn != nil {
		return s.GetByUsernameFn(ctx, username)
	}
	return nil, nil
}

func (s *stubUserRepo) Search(ctx context.Context, query string) ([]models.User, error) {
	if s.SearchFn != nil {
		return s.SearchFn(ctx, query)
	}
	return nil, nil
}

func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, user)
	}
	return nil
}

func (s *stubUserRepo) Delete(ctx context.Context, id uint) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

type stubMessageRepo struct {
	CreateFn        func(ctx context.Context, message *models.Message) error
	GetByIDFn       func(ctx context.Context, id uint) (*models.Message, error)
	ListByUserFn    func(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error)
	ListByAuthorsFn func(ctx context.Context, authorIDs []uint, limit int) ([]models.Message, error)
	DeleteFn        func(ctx context.Context, id, requesterID uint) error
}

func (s *stubMessageRepo) Create(ctx context.Context, message *models.Message) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, message)
	}
	return nil
}

func (s *stubMessageRepo) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	return &models.Message{ID: id}, nil
}

func (s *stubMessageRepo) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (s *stubMessageRepo) ListByAuthors(ctx context.Context, authorIDs []uint, limit int) ([]models.Message, error) {
	if s.ListByAuthorsFn != nil {
		return s.ListByAuthorsFn(ctx, authorIDs, limit)
	}
	return nil, nil
}

func (s *stubMessageRepo) Delete(ctx context.Context, id, requesterID uint) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id, requesterID)
	}
	return nil
}

type stubFollowRepo struct {
	FollowFn           func(ctx context.Context, followerID, followeeID uint) error
	UnfollowFn         func(ctx context.Context, followerID, followeeID uint) error
	IsFollowingFn      func(ctx context.Context, followerID, followeeID uint) (bool, error)
	ListFollowingFn    func(ctx context.Context, userID uint) ([]models.User, error)
	ListFollowersFn    func(ctx context.Context, userID uint) ([]models.User, error)
	ListFollowingIDsFn func(ctx context.Context, userID uint) ([]uint, error)
}

func (s *stubFollowRepo) Follow(ctx context.Context, followerID, followeeID uint) error {
	if s.FollowFn != nil {
		return s.FollowFn(ctx, followerID, followeeID)
	}
	return nil
}

func (s *stubFollowRepo) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	if s.UnfollowFn != nil {
		return s.UnfollowFn(ctx, followerID, followeeID)
	}
	return nil
}

func (s *stubFollowRepo) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	if s.IsFollowingFn != nil {
		return s.IsFollowingFn(ctx, followerID, followeeID)
	}
	return false, nil
}

func (s *stubFollowRepo) ListFollowing(ctx context.Context, userID uint) ([]models.User, error) {
	if s.ListFollowingFn != nil {
		return s.ListFollowingFn(ctx, userID)
	}
	return nil, nil
}

func (s *stubFollowRepo) ListFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	if s.ListFollowersFn != nil {
		return s.ListFollowersFn(ctx, userID)
	}
	return nil, nil
}

func (s *stubFollowRepo) ListFollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	if s.ListFollowingIDsFn != nil {
		return s.ListFollowingIDsFn(ctx, userID)
	}
	return nil, nil
}

type stubLikeRepo struct {
	ToggleFn            func(ctx context.Context, userID, messageID uint) (bool, error)
	IsLikedFn           func(ctx context.Context, userID, messageID uint) (bool, error)
	CountForMessageFn   func(ctx context.Context, messageID uint) (int64, error)
	ListLikedMessagesFn func(ctx context.Context, userID uint) ([]models.Message, error)
}

func (s *stubLikeRepo) Toggle(ctx context.Context, userID, messageID uint) (bool, error) {
	if s.ToggleFn != nil {
		return s.ToggleFn(ctx, userID, messageID)
	}
	return false, nil
}

func (s *stubLikeRepo) IsLiked(ctx context.Context, userID, messageID uint) (bool, error) {
	if s.IsLikedFn != nil {
		return s.IsLikedFn(ctx, userID, messageID)
	}
	return false, nil
}

func (s *stubLikeRepo) CountForMessage(ctx context.Context, messageID uint) (int64, error) {
	if s.CountForMessageFn != nil {
		return s.CountForMessageFn(ctx, messageID)
	}
	return 0, nil
}

func (s *stubLikeRepo) ListLikedMessages(ctx context.Context, userID uint) ([]models.Message, error) {
	if s.ListLikedMessagesFn != nil {
		return s.ListLikedMessagesFn(ctx, userID)
	}
	return nil, nil
}
