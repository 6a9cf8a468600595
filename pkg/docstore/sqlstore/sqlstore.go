// Package sqlstore implements docstore.Store on a relational database.
// Every collection shares one "documents" table; a row keeps the encoded
// BSON body of a document keyed by (collection, id).
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/shopapp/pkg/docstore"
)

// Document is the row model of the documents table.
type Document struct {
	Collection string    `gorm:"primaryKey;size:64"`
	ID         string    `gorm:"primaryKey;size:24"`
	Body       []byte    `gorm:"not null"`
	CreatedAt  time.Time `gorm:"index"`
	UpdatedAt  time.Time
}

func (Document) TableName() string { return "documents" }

type Store struct {
	db *gorm.DB
}

// Open connects to driver (sqlite, postgres, mysql, sqlserver) and
// configures the connection pool.
func Open(driver, dsn string) (*Store, error) {
	dialector, err := buildDialector(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: build dialector: %w", err)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent), // use pkg/logger, not GORM's own
	})
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlstore: get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(2 * time.Minute)
	if driver == "sqlite" {
		// sqlite serialises writers; one connection avoids SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("sqlstore: ping: %w", err)
	}

	return &Store{db: db}, nil
}

func buildDialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite":
		return sqlite.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlserver":
		return sqlserver.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q (supported: sqlite, postgres, mysql, sqlserver)", driver)
	}
}

// DB exposes the gorm handle for the migration runner.
func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) Collection(name string) docstore.Collection {
	return &Collection{db: s.db, name: name}
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type Collection struct {
	db   *gorm.DB
	name string
}

func (c *Collection) Find(ctx context.Context, filter docstore.Filter, results any) error {
	var rows []Document
	err := c.db.WithContext(ctx).
		Where("collection = ?", c.name).
		Order("created_at, id").
		Find(&rows).Error
	if err != nil {
		return fmt.Errorf("sqlstore: find %s: %w", c.name, err)
	}

	matched := make([]bson.Raw, 0, len(rows))
	for _, row := range rows {
		raw := bson.Raw(row.Body)
		ok, err := docstore.Matches(raw, filter)
		if err != nil {
			return err
		}
		if ok {
			matched = append(matched, raw)
		}
	}
	return docstore.DecodeAll(matched, results)
}

func (c *Collection) FindByID(ctx context.Context, id primitive.ObjectID, result any) error {
	var row Document
	err := c.db.WithContext(ctx).
		Where("collection = ? AND id = ?", c.name, id.Hex()).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return docstore.ErrNoDocument
	}
	if err != nil {
		return fmt.Errorf("sqlstore: find %s %s: %w", c.name, id.Hex(), err)
	}
	return bson.Unmarshal(row.Body, result)
}

func (c *Collection) Insert(ctx context.Context, doc any) error {
	raw, id, err := docstore.Encode(doc)
	if err != nil {
		return err
	}
	row := Document{Collection: c.name, ID: id.Hex(), Body: raw}
	if err := c.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("sqlstore: insert %s: %w", c.name, err)
	}
	return nil
}

func (c *Collection) Replace(ctx context.Context, id primitive.ObjectID, doc any) error {
	raw, docID, err := docstore.Encode(doc)
	if err != nil {
		return err
	}
	if docID != id {
		return fmt.Errorf("sqlstore: replace %s with document %s", id.Hex(), docID.Hex())
	}

	res := c.db.WithContext(ctx).Model(&Document{}).
		Where("collection = ? AND id = ?", c.name, id.Hex()).
		Updates(map[string]any{"body": []byte(raw), "updated_at": time.Now()})
	if res.Error != nil {
		return fmt.Errorf("sqlstore: replace %s %s: %w", c.name, id.Hex(), res.Error)
	}
	if res.RowsAffected == 0 {
		// MySQL counts changed rows, not matched ones.
		found, err := c.exists(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return docstore.ErrNoDocument
		}
	}
	return nil
}

func (c *Collection) exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	var n int64
	err := c.db.WithContext(ctx).Model(&Document{}).
		Where("collection = ? AND id = ?", c.name, id.Hex()).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("sqlstore: replace %s %s: %w", c.name, id.Hex(), err)
	}
	return n > 0, nil
}

func (c *Collection) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res := c.db.WithContext(ctx).
		Where("collection = ? AND id = ?", c.name, id.Hex()).
		Delete(&Document{})
	if res.Error != nil {
		return false, fmt.Errorf("sqlstore: delete %s %s: %w", c.name, id.Hex(), res.Error)
	}
	return res.RowsAffected > 0, nil
}
