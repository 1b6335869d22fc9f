package mysql

import (
	"context"
	"fmt"
	"testing"
	"time"

	"krysselista-backend/internal/domain/attendance"
	"krysselista-backend/internal/domain/authorized"
	"krysselista-backend/internal/domain/chat"
	"krysselista-backend/internal/domain/child"
	"krysselista-backend/internal/domain/pickup"
	"krysselista-backend/internal/domain/profile"
	"krysselista-backend/pkg/id"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB creates a private in-memory sqlite DB with the full schema.
// A single connection keeps every goroutine on the same database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return openSQLite(t, "", &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
}

// openTestDBWithFK enforces foreign keys and translates driver errors the
// way db.OpenGorm does against MySQL.
func openTestDBWithFK(t *testing.T) *gorm.DB {
	t.Helper()
	return openSQLite(t, "&_foreign_keys=on", &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
}

func openSQLite(t *testing.T, params string, cfg *gorm.Config) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared%s", id.New(), params)
	db, err := gorm.Open(sqlite.Open(dsn), cfg)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(
		&profile.Profile{}, &profile.UserRole{},
		&child.Child{}, &child.ParentChild{},
		&authorized.Entry{}, &pickup.PickupRequest{},
		&attendance.Log{}, &chat.Message{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func seedProfile(t *testing.T, db *gorm.DB, name string, requiresApproval bool) *profile.Profile {
	t.Helper()
	p := &profile.Profile{
		ID:           id.New(),
		FullName:     name,
		Email:        id.New() + "@example.com",
		PasswordHash: "x",
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	// gorm skips a false bool on create when the column has a default
	if err := db.Model(p).Update("requires_approval", requiresApproval).Error; err != nil {
		t.Fatalf("seed requires_approval: %v", err)
	}
	p.RequiresApproval = requiresApproval
	return p
}

func seedChild(t *testing.T, db *gorm.DB, name string) *child.Child {
	t.Helper()
	c := &child.Child{ID: id.New(), Name: name, PhotoURL: "https://example.com/" + name + ".jpg"}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("seed child: %v", err)
	}
	return c
}

func seedPickup(t *testing.T, db *gorm.DB, c *child.Child, parent *profile.Profile, st pickup.Status, at time.Time) *pickup.PickupRequest {
	t.Helper()
	p := &pickup.PickupRequest{
		ID:               id.New(),
		ChildID:          c.ID,
		ParentID:         parent.ID,
		PickupPersonName: parent.FullName,
		Status:           st,
		RequestedAt:      at,
	}
	switch st {
	case pickup.StatusApproved, pickup.StatusCompleted:
		by := "staff-1"
		p.ApprovedAt, p.ApprovedBy = &at, &by
	}
	if st == pickup.StatusCompleted {
		p.CompletedAt = &at
	}
	if err := NewPickupRepository(db).Create(context.Background(), p); err != nil {
		t.Fatalf("seed pickup: %v", err)
	}
	return p
}
