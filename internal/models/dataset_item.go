package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DatasetItem - одна запись каталога биологических датасетов.
// Таблица целиком заменяется при каждой синхронизации (snapshot-replace).
type DatasetItem struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	DatasetID  string         `gorm:"index" json:"dataset_id"`
	Title      string         `gorm:"type:text" json:"title,omitempty"`
	Status     string         `gorm:"type:varchar(50)" json:"status,omitempty"`
	// Имя совпадает с трекинговым полем gorm; autoUpdateTime:false
	// оставляет NULL, пока источник не прислал собственный timestamp.
	UpdatedAt  *time.Time     `gorm:"index;autoUpdateTime:false" json:"updated_at"`
	InsertedAt time.Time      `gorm:"not null;index" json:"inserted_at"`
	Raw        datatypes.JSON `gorm:"type:jsonb;not null" json:"raw"`
}
