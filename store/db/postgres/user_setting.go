package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/hrygo/agendabot/store"
)

func (d *DB) UpsertUserSetting(ctx context.Context, upsert *store.UserSetting) (*store.UserSetting, error) {
	stmt := `INSERT INTO user_setting (user_id, key, value, updated_ts)
		VALUES (` + placeholder(1) + `, ` + placeholder(2) + `, ` + placeholder(3) + `, ` + placeholder(4) + `)
		ON CONFLICT (user_id, key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_ts = EXCLUDED.updated_ts
		RETURNING user_id, key, value, updated_ts`

	result := &store.UserSetting{}
	err := d.db.QueryRowContext(ctx, stmt, upsert.UserID, string(upsert.Key), upsert.Value, time.Now().Unix()).Scan(
		&result.UserID,
		&result.Key,
		&result.Value,
		&result.UpdatedTs,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to upsert user_setting")
	}
	return result, nil
}

func (d *DB) ListUserSettings(ctx context.Context, find *store.FindUserSetting) ([]*store.UserSetting, error) {
	where, args := []string{"1 = 1"}, []any{}
	if find.UserID != nil {
		where, args = append(where, "user_id = "+placeholder(len(args)+1)), append(args, *find.UserID)
	}
	if find.Key != nil {
		where, args = append(where, "key = "+placeholder(len(args)+1)), append(args, string(*find.Key))
	}

	query := `SELECT user_id, key, value, updated_ts FROM user_setting WHERE ` + strings.Join(where, " AND ") + ` ORDER BY user_id`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user_setting")
	}
	defer rows.Close()

	list := []*store.UserSetting{}
	for rows.Next() {
		setting := &store.UserSetting{}
		if err := rows.Scan(&setting.UserID, &setting.Key, &setting.Value, &setting.UpdatedTs); err != nil {
			return nil, errors.Wrap(err, "failed to scan user_setting")
		}
		list = append(list, setting)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (d *DB) DeleteUserSetting(ctx context.Context, delete *store.DeleteUserSetting) error {
	stmt := `DELETE FROM user_setting WHERE user_id = ` + placeholder(1) + ` AND key = ` + placeholder(2)
	_, err := d.db.ExecContext(ctx, stmt, delete.UserID, string(delete.Key))
	return errors.Wrap(err, "failed to delete user_setting")
}
