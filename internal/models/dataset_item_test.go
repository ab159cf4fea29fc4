package models

import (
	"sync"
	"testing"

	"gorm.io/gorm/schema"
)

// UpdatedAt - данные источника, а не трекинговое поле: gorm не должен
// заполнять его временем вставки.
func TestDatasetItemUpdatedAtStaysManual(t *testing.T) {
	s, err := schema.Parse(&DatasetItem{}, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		t.Fatalf("parse schema: %v", err)
	}

	field := s.LookUpField("UpdatedAt")
	if field == nil {
		t.Fatal("UpdatedAt field not found")
	}
	if field.AutoUpdateTime != 0 {
		t.Errorf("UpdatedAt is auto-filled by gorm on insert/update")
	}
	if field.AutoCreateTime != 0 {
		t.Errorf("UpdatedAt is auto-filled by gorm on create")
	}
}
