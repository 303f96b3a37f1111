package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/agendabot/server/timezone"
	"github.com/hrygo/agendabot/store"
)

func TestUserSettingStore(t *testing.T) {
	for _, driver := range Drivers {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			ts := NewTestingStore(ctx, t, driver)

			setting, err := ts.UpsertUserSetting(ctx, &store.UserSetting{
				UserID: "5592991234567@s.whatsapp.net",
				Key:    store.UserSettingKeyTimezone,
				Value:  "America/Manaus",
			})
			require.NoError(t, err)
			assert.Equal(t, "America/Manaus", setting.Value)
			assert.NotZero(t, setting.UpdatedTs)

			// Upsert replaces the value.
			_, err = ts.UpsertUserSetting(ctx, &store.UserSetting{
				UserID: "5592991234567@s.whatsapp.net",
				Key:    store.UserSettingKeyTimezone,
				Value:  "America/Sao_Paulo",
			})
			require.NoError(t, err)

			got, err := ts.GetUserSetting(ctx, "5592991234567@s.whatsapp.net", store.UserSettingKeyTimezone)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, "America/Sao_Paulo", got.Value)

			missing, err := ts.GetUserSetting(ctx, "telegram:1", store.UserSettingKeyTimezone)
			require.NoError(t, err)
			assert.Nil(t, missing)

			require.NoError(t, ts.DeleteUserSetting(ctx, &store.DeleteUserSetting{
				UserID: "5592991234567@s.whatsapp.net",
				Key:    store.UserSettingKeyTimezone,
			}))
			list, err := ts.ListUserSettings(ctx, &store.FindUserSetting{})
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestUserSettingStore_Validation(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t, "sqlite")

	_, err := ts.UpsertUserSetting(ctx, &store.UserSetting{Key: store.UserSettingKeyTimezone, Value: "UTC"})
	assert.Error(t, err)
}

func TestMigrate_Idempotent(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t, "sqlite")

	require.NoError(t, ts.Migrate(ctx))
	initialized, err := ts.GetDriver().IsInitialized(ctx)
	require.NoError(t, err)
	assert.True(t, initialized)
}

func TestTimezonePreferences(t *testing.T) {
	for _, driver := range Drivers {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			ts := NewTestingStore(ctx, t, driver)

			require.NoError(t, ts.SaveTimezonePreference(ctx, "telegram:1", "America/Manaus"))
			require.NoError(t, ts.SaveTimezonePreference(ctx, "telegram:2", "Europe/Lisbon"))

			prefs, err := ts.ListTimezonePreferences(ctx)
			require.NoError(t, err)
			assert.Equal(t, map[string]string{
				"telegram:1": "America/Manaus",
				"telegram:2": "Europe/Lisbon",
			}, prefs)
		})
	}
}

func TestResolverWarmFromStore(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t, "sqlite")

	writer := timezone.NewResolver(timezone.WithPreferenceStore(ts))
	require.NoError(t, writer.SetPreference(ctx, "telegram:7", "America/Cuiaba"))

	// A fresh process sees the stored choice after warm-up.
	reader := timezone.NewResolver(timezone.WithPreferenceStore(ts))
	n, err := reader.Warm(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "America/Cuiaba", reader.Resolve("telegram:7", ""))
}
