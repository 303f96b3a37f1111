package store

import (
	"context"

	"github.com/pkg/errors"
)

// UserSettingKey names one per-user setting.
type UserSettingKey string

const (
	// UserSettingKeyTimezone holds the user's IANA timezone.
	UserSettingKeyTimezone UserSettingKey = "TIMEZONE"
)

// UserSetting is one key/value pair for a bot user. UserID is the
// messaging platform's identifier (a Telegram id or a WhatsApp JID).
type UserSetting struct {
	UserID    string
	Key       UserSettingKey
	Value     string
	UpdatedTs int64
}

// FindUserSetting specifies the conditions for finding user settings.
type FindUserSetting struct {
	UserID *string
	Key    *UserSettingKey
}

// DeleteUserSetting specifies the setting to delete.
type DeleteUserSetting struct {
	UserID string
	Key    UserSettingKey
}

func (s *Store) UpsertUserSetting(ctx context.Context, upsert *UserSetting) (*UserSetting, error) {
	if upsert.UserID == "" || upsert.Key == "" {
		return nil, errors.New("user id and key are required")
	}
	return s.driver.UpsertUserSetting(ctx, upsert)
}

func (s *Store) ListUserSettings(ctx context.Context, find *FindUserSetting) ([]*UserSetting, error) {
	return s.driver.ListUserSettings(ctx, find)
}

// GetUserSetting returns nil without error when the setting does not exist.
func (s *Store) GetUserSetting(ctx context.Context, userID string, key UserSettingKey) (*UserSetting, error) {
	list, err := s.driver.ListUserSettings(ctx, &FindUserSetting{UserID: &userID, Key: &key})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) DeleteUserSetting(ctx context.Context, delete *DeleteUserSetting) error {
	return s.driver.DeleteUserSetting(ctx, delete)
}

// ListTimezonePreferences returns every stored user id → timezone.
func (s *Store) ListTimezonePreferences(ctx context.Context) (map[string]string, error) {
	key := UserSettingKeyTimezone
	list, err := s.driver.ListUserSettings(ctx, &FindUserSetting{Key: &key})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list timezone preferences")
	}
	prefs := make(map[string]string, len(list))
	for _, setting := range list {
		prefs[setting.UserID] = setting.Value
	}
	return prefs, nil
}

// SaveTimezonePreference stores the user's timezone.
func (s *Store) SaveTimezonePreference(ctx context.Context, userID, zone string) error {
	_, err := s.UpsertUserSetting(ctx, &UserSetting{
		UserID: userID,
		Key:    UserSettingKeyTimezone,
		Value:  zone,
	})
	return errors.Wrap(err, "failed to save timezone preference")
}
