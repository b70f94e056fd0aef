package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"applytrack/internal/domain/user"
	"applytrack/internal/pkg/logger"

	"github.com/google/uuid"
)

type ProfilePictures struct {
	users    user.Repository
	pictures user.ProfilePictureRepository
	cache    *CollectionCache
	log      *logger.Logger
	now      func() time.Time
}

func NewProfilePictureUsecase(users user.Repository, pictures user.ProfilePictureRepository, cache *CollectionCache, log *logger.Logger) *ProfilePictures {
	return &ProfilePictures{users: users, pictures: pictures, cache: cache, log: log, now: time.Now}
}

// SetProfilePicture overwrites the owner's single picture slot.
func (u *ProfilePictures) SetProfilePicture(ctx context.Context, identity *user.Identity, ownerID uuid.UUID, pictureURL string) (user.User, user.ProfilePicture, error) {
	owner, err := AuthorizeOwner(identity, ownerID)
	if err != nil {
		return user.User{}, user.ProfilePicture{}, err
	}
	pictureURL = strings.TrimSpace(pictureURL)
	if !isPictureURL(pictureURL) {
		return user.User{}, user.ProfilePicture{}, fmt.Errorf("%w: pictureUrl must be an absolute http(s) URL", ErrInvalidInput)
	}

	usr, err := u.users.GetByID(ctx, owner)
	if err != nil {
		return user.User{}, user.ProfilePicture{}, storageErr(u.log, "profile_picture.owner", err)
	}

	pic, err := u.pictures.Upsert(ctx, user.ProfilePicture{
		UserID:     owner,
		PictureURL: pictureURL,
		UpdatedAt:  u.now().UTC(),
	})
	if err != nil {
		return user.User{}, user.ProfilePicture{}, storageErr(u.log, "profile_picture.upsert", err)
	}

	u.cache.invalidate(ctx, ProfilePictureCacheKey(owner))
	return publicUser(usr), pic, nil
}

func isPictureURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
