package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/shopapp/pkg/docstore/sqlstore"
	"github.com/shashiranjanraj/shopapp/pkg/migration"
)

func init() {
	migration.Register("20260301000000_create_documents_table", &CreateDocumentsTable{})
}

type CreateDocumentsTable struct{}

func (m *CreateDocumentsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&sqlstore.Document{})
}

func (m *CreateDocumentsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&sqlstore.Document{})
}
