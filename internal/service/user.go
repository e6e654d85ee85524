package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/car-registry/backend/internal/logging"
	"github.com/car-registry/backend/internal/model"
)

// UserImageStore is the slice of the repository the profile-image service
// needs.
type UserImageStore interface {
	GetUserByID(ctx context.Context, id int64) (*model.User, bool, error)
	UpdateUserImage(ctx context.Context, id int64, img string) (bool, error)
}

// UserService stores and serves user profile images. Images live as base64
// text on the user row.
type UserService struct {
	store UserImageStore
	log   logging.Logger
}

func NewUserService(store UserImageStore, log logging.Logger) *UserService {
	return &UserService{store: store, log: log}
}

func (s *UserService) AddUserImage(ctx context.Context, id int64, data []byte) (bool, error) {
	if len(data) == 0 {
		return false, fmt.Errorf("%w: empty image", ErrInvalidInput)
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	found, err := s.store.UpdateUserImage(ctx, id, encoded)
	if err != nil {
		return false, err
	}
	if found {
		s.log.Info(ctx, "user image saved", "userId", id, "bytes", len(data))
	}
	return found, nil
}

func (s *UserService) GetUserImage(ctx context.Context, id int64) ([]byte, bool, error) {
	user, found, err := s.store.GetUserByID(ctx, id)
	if err != nil || !found {
		return nil, found, err
	}
	if user.Img == nil {
		return nil, false, nil
	}

	data, err := base64.StdEncoding.DecodeString(*user.Img)
	if err != nil {
		return nil, false, fmt.Errorf("stored image for user %d is not valid base64: %w", id, err)
	}
	return data, true, nil
}
