package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/PabloGalante/fillyourcup/internal/domain"
)

// stateRow holds everything except mood history as a JSON document.
type stateRow struct {
	UserID    string `gorm:"primaryKey"`
	Data      []byte
	UpdatedAt time.Time
}

func (stateRow) TableName() string { return "user_states" }

// moodRow is one mood entry; (user_id, day) keeps one entry per day.
type moodRow struct {
	UserID string `gorm:"primaryKey"`
	Day    string `gorm:"primaryKey"`
	Mood   string
}

func (moodRow) TableName() string { return "mood_entries" }

type Store struct {
	db *gorm.DB
}

// Open opens a SQLite database and runs migrations.
func Open(dsn string) (*Store, error) {
	if dsn == "" {
		dsn = "fillcup.db"
	}

	if err := ensureDirForSQLite(dsn); err != nil {
		return nil, err
	}

	dbLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: dbLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.AutoMigrate(&stateRow{}, &moodRow{}); err != nil {
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) SaveState(ctx context.Context, userID domain.UserID, state *domain.State) error {
	if state == nil {
		return nil
	}

	doc := state.Clone()
	moods := doc.MoodHistory
	doc.MoodHistory = nil

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := stateRow{UserID: string(userID), Data: data}
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
			return err
		}
		if len(moods) == 0 {
			return nil
		}

		rows := make([]moodRow, 0, len(moods))
		for day, mood := range moods {
			rows = append(rows, moodRow{UserID: string(userID), Day: string(day), Mood: string(mood)})
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "day"}},
			DoUpdates: clause.AssignmentColumns([]string{"mood"}),
		}).Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("sqlite SaveState: %w", err)
	}
	return nil
}

func (s *Store) LoadState(ctx context.Context, userID domain.UserID) (*domain.State, error) {
	db := s.db.WithContext(ctx)

	var row stateRow
	if err := db.First(&row, "user_id = ?", string(userID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStateNotFound
		}
		return nil, fmt.Errorf("sqlite LoadState: %w", err)
	}

	var st domain.State
	if err := json.Unmarshal(row.Data, &st); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}

	var moods []moodRow
	if err := db.Where("user_id = ?", string(userID)).Find(&moods).Error; err != nil {
		return nil, fmt.Errorf("sqlite LoadState moods: %w", err)
	}
	st.MoodHistory = make(map[domain.Day]domain.Mood, len(moods))
	for _, m := range moods {
		st.MoodHistory[domain.Day(m.Day)] = domain.Mood(m.Mood)
	}

	return &st, nil
}

// ensureDirForSQLite creates parent dir for SQLite file if needed.
func ensureDirForSQLite(dsn string) error {
	// Ignore DSNs with explicit mode=memory or network.
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	// Strip file: prefix if present.
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}
