package app

import (
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/talkincode/gocrm/internal/domain"
	"gorm.io/gorm"
)

// ConfigManager reads and writes runtime settings from the sys_config
// table. Values are stored as strings and cast on read.
type ConfigManager struct {
	db *gorm.DB
}

func NewConfigManager(db *gorm.DB) *ConfigManager {
	return &ConfigManager{db: db}
}

func (m *ConfigManager) GetString(category, name string) string {
	var cfg domain.SysConfig
	err := m.db.Where("type = ? and name = ?", category, name).First(&cfg).Error
	if err != nil {
		return ""
	}
	return cfg.Value
}

func (m *ConfigManager) GetInt(category, name string) int {
	return cast.ToInt(m.GetString(category, name))
}

func (m *ConfigManager) GetBool(category, name string) bool {
	return cast.ToBool(m.GetString(category, name))
}

func (m *ConfigManager) SetValue(category, name, value string) error {
	var count int64
	m.db.Model(&domain.SysConfig{}).
		Where("type = ? and name = ?", category, name).Count(&count)
	if count == 0 {
		return errors.WithStack(m.db.Create(&domain.SysConfig{
			Type:  category,
			Name:  name,
			Value: value,
		}).Error)
	}
	return errors.WithStack(m.db.Model(&domain.SysConfig{}).
		Where("type = ? and name = ?", category, name).
		Update("value", value).Error)
}
