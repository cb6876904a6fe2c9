package storage

import (
	"database/sql"
	"embed"
	"errors"
	"time"

	_ "modernc.org/sqlite"

	"telegram-prayer-companion/internal/models"
)

//go:embed schema.sql
var ddl embed.FS

type DB struct{ *sql.DB }

func New(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	if err = migrate(db); err != nil {
		return nil, err
	}
	return &DB{db}, nil
}

func migrate(db *sql.DB) error {
	b, err := ddl.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.Exec(string(b))
	return err
}

// ClearData wipes everything stored for a chat.
func (d *DB) ClearData(chatID int64) error {
	tx, err := d.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, tbl := range []string{"kv_blobs", "user_states", "users"} {
		if _, err := tx.Exec("DELETE FROM "+tbl+" WHERE chat_id = ?", chatID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ---------- users -----------------------------------------------------------

func (d *DB) UpsertUser(u *models.User) error {
	_, err := d.Exec(`
        INSERT INTO users (chat_id, city, province, latitude, longitude, tz, reminders, created_at)
        VALUES (?,?,?,?,?,?,?,?)
        ON CONFLICT(chat_id) DO UPDATE SET city=excluded.city,
            province=excluded.province,
            latitude=excluded.latitude,
            longitude=excluded.longitude,
            tz=excluded.tz,
            reminders=excluded.reminders
    `, u.ChatID, u.City, u.Province, u.Latitude, u.Longitude, u.TZ, u.Reminders, time.Now().Unix())
	return err
}

func (d *DB) GetUser(chatID int64) (*models.User, error) {
	var u models.User

	err := d.QueryRow(`
        SELECT id, chat_id, city, province, latitude, longitude, tz, reminders, created_at
        FROM users WHERE chat_id=?`, chatID,
	).Scan(&u.ID, &u.ChatID, &u.City, &u.Province, &u.Latitude, &u.Longitude, &u.TZ, &u.Reminders, &u.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (d *DB) ListUsers() ([]models.User, error) {
	rows, err := d.Query(`SELECT id, chat_id, city, province, latitude, longitude, tz, reminders, created_at FROM users`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.ChatID, &u.City, &u.Province, &u.Latitude, &u.Longitude, &u.TZ, &u.Reminders, &u.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, rows.Err()
}

// ---------- user state (fsm) ------------------------------------------------

func (d *DB) SetUserState(chatID int64, state string) error {
	_, err := d.Exec(`
        INSERT INTO user_states(chat_id, state) VALUES (?,?)
        ON CONFLICT(chat_id) DO UPDATE SET state=excluded.state`, chatID, state)
	return err
}

func (d *DB) GetUserState(chatID int64) (string, error) {
	var st string
	err := d.QueryRow(`SELECT state FROM user_states WHERE chat_id=?`, chatID).Scan(&st)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return st, err
}

// ---------- per-chat blobs --------------------------------------------------

func (d *DB) GetBlob(chatID int64, key string) (string, error) {
	var v string
	err := d.QueryRow(`SELECT value FROM kv_blobs WHERE chat_id=? AND key=?`, chatID, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return v, err
}

func (d *DB) SetBlob(chatID int64, key, value string) error {
	_, err := d.Exec(`
        INSERT INTO kv_blobs(chat_id, key, value, updated_at) VALUES (?,?,?,?)
        ON CONFLICT(chat_id, key) DO UPDATE SET value=excluded.value,
            updated_at=excluded.updated_at
    `, chatID, key, value, time.Now().Unix())
	return err
}

// ChatKV binds one chat's blob namespace to the KV port the history store
// and tasbih counter consume.
type ChatKV struct {
	db     *DB
	chatID int64
}

func (d *DB) ChatKV(chatID int64) ChatKV { return ChatKV{db: d, chatID: chatID} }

func (kv ChatKV) Get(key string) (string, error) { return kv.db.GetBlob(kv.chatID, key) }

func (kv ChatKV) Set(key, value string) error { return kv.db.SetBlob(kv.chatID, key, value) }
