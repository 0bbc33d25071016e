package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"quotedesk/models"
	"quotedesk/utils"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

var db *sql.DB

func InitDB() *sql.DB {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")

	connStr := fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%s sslmode=disable",
		user, password, dbname, host, port)

	var err error
	db, err = sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Light server load: a small pool is plenty
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	if err := EnsureSchema(db); err != nil {
		log.Fatal("Failed to create schema:", err)
	}
	if err := SeedDefaultAdmin(db); err != nil {
		log.Fatal("Failed to seed default admin:", err)
	}

	return db
}

func GetDB() *sql.DB {
	return db
}

// quotationBusinessColumns is the shared column list of quotations and
// deleted_quotations.
const quotationBusinessColumns = `
	serial_no TEXT,
	item_name TEXT NOT NULL,
	spec_model TEXT,
	description TEXT,
	brand TEXT,
	unit TEXT,
	quantity DOUBLE PRECISION,
	quoted_brand TEXT,
	model TEXT,
	unit_price DOUBLE PRECISION,
	equipment_subtotal DOUBLE PRECISION,
	labor_unit_price DOUBLE PRECISION,
	labor_subtotal DOUBLE PRECISION,
	combined_total DOUBLE PRECISION,
	currency TEXT,
	warranty TEXT,
	lead_time TEXT,
	remarks TEXT,
	inquirer TEXT,
	project TEXT,
	supplier TEXT,
	inquiry_date TEXT,
	entered_by TEXT,
	region TEXT`

// EnsureSchema creates the tables managed through database/sql. The
// misc_costs table is migrated separately through GORM.
func EnsureSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			role TEXT NOT NULL CHECK (role IN ('admin','user')),
			region TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			expires_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS quotations (
			id BIGSERIAL PRIMARY KEY,` + quotationBusinessColumns + `
		)`,
		`CREATE TABLE IF NOT EXISTS deleted_quotations (
			id BIGSERIAL PRIMARY KEY,
			original_id BIGINT NOT NULL,` + quotationBusinessColumns + `,
			deleted_at TIMESTAMP NOT NULL DEFAULT NOW(),
			deleted_by TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("schema bootstrap: %w", err)
		}
	}
	return nil
}

// SeedDefaultAdmin inserts the default administrator account. Idempotent:
// an existing admin row is left untouched.
func SeedDefaultAdmin(db *sql.DB) error {
	password := os.Getenv("ADMIN_DEFAULT_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash default admin password: %w", err)
	}
	_, err = db.Exec(`
		INSERT INTO users (username, password, role, region)
		VALUES ('admin', $1, 'admin', $2)
		ON CONFLICT (username) DO NOTHING`, hash, models.RegionAll)
	return err
}

// SaveSession stores a new login session for a user.
func SaveSession(db *sql.DB, session *models.Session) error {
	_, err := db.Exec(`
		INSERT INTO sessions (session_id, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)`,
		session.SessionID, session.UserID, session.CreatedAt, session.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// DeleteSessionByID removes one session (logout).
func DeleteSessionByID(db *sql.DB, sessionID string) error {
	result, err := db.Exec(`DELETE FROM sessions WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return errors.New("session not found or already deleted")
	}
	return nil
}

// GetUserBySessionID resolves the Authorization token to its account,
// rejecting expired sessions.
func GetUserBySessionID(db *sql.DB, sessionID string) (*models.User, error) {
	var user models.User
	err := db.QueryRow(`
		SELECT u.id, u.username, u.role, u.region, u.created_at
		FROM sessions s
		JOIN users u ON s.user_id = u.id
		WHERE s.session_id = $1 AND s.expires_at > NOW()`, sessionID).
		Scan(&user.ID, &user.Username, &user.Role, &user.Region, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("session not found or expired")
		}
		return nil, err
	}
	return &user, nil
}

// CleanupExpiredSessions removes sessions past their expiry. Run daily by
// the maintenance cron.
func CleanupExpiredSessions(db *sql.DB) error {
	_, err := db.Exec(`DELETE FROM sessions WHERE expires_at < NOW()`)
	return err
}

func GetUserByUsername(db *sql.DB, username string) (*models.User, error) {
	var user models.User
	err := db.QueryRow(`
		SELECT id, username, password, role, region, created_at
		FROM users WHERE LOWER(username) = LOWER($1)`, username).
		Scan(&user.ID, &user.Username, &user.Password, &user.Role, &user.Region, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user %s not found", username)
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

// CreateUser inserts an account with an already-hashed password. A duplicate
// username surfaces as the driver's unique-violation error.
func CreateUser(db *sql.DB, username, passwordHash, role, region string) (int, error) {
	var id int
	err := db.QueryRow(`
		INSERT INTO users (username, password, role, region)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		username, passwordHash, role, region).Scan(&id)
	return id, err
}

func ListUsers(db *sql.DB) ([]models.User, error) {
	rows, err := db.Query(`SELECT id, username, role, region, created_at FROM users ORDER BY username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Role, &u.Region, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateUserRoleRegion changes an account's role and/or region. Empty values
// keep the current setting.
func UpdateUserRoleRegion(db *sql.DB, id int, role, region string) error {
	result, err := db.Exec(`
		UPDATE users
		SET role = COALESCE(NULLIF($2, ''), role),
		    region = COALESCE(NULLIF($3, ''), region)
		WHERE id = $1`, id, role, region)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("user %d not found", id)
	}
	return nil
}

func DeleteUser(db *sql.DB, id int) error {
	result, err := db.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("user %d not found", id)
	}
	return nil
}
