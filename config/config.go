package config

import (
	"os"
	"path/filepath"

	"github.com/talkincode/gocrm/pkg/common"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

type WebConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Type   string `yaml:"type"`
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	Name   string `yaml:"name"`
	User   string `yaml:"user"`
	Passwd string `yaml:"passwd"`
	Debug  bool   `yaml:"debug"`
}

type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

// JobsConfig configures the out-of-band maintenance jobs. Endpoint is the
// GraphQL URL the jobs call; the log files are plain append-only text.
type JobsConfig struct {
	Enabled          bool   `yaml:"enabled"`
	Endpoint         string `yaml:"endpoint"`
	HeartbeatLog     string `yaml:"heartbeat_log"`
	LowStockLog      string `yaml:"low_stock_log"`
	LowStockErrorLog string `yaml:"low_stock_error_log"`
	ReminderLog      string `yaml:"reminder_log"`
	ErrorLog         string `yaml:"error_log"`
}

type AppConfig struct {
	System   SysConfig  `yaml:"system"`
	Web      WebConfig  `yaml:"web"`
	Database DBConfig   `yaml:"database"`
	Logger   LogConfig  `yaml:"logger"`
	Jobs     JobsConfig `yaml:"jobs"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "gocrm",
		Location: "Asia/Jakarta",
		Workdir:  "/var/gocrm",
		Debug:    true,
	},
	Web: WebConfig{
		Host: "0.0.0.0",
		Port: 8000,
	},
	Database: DBConfig{
		Type:   "postgres",
		Host:   "127.0.0.1",
		Port:   5432,
		Name:   "gocrm",
		User:   "postgres",
		Passwd: "",
		Debug:  false,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/gocrm/gocrm.log",
	},
	Jobs: JobsConfig{
		Enabled:          true,
		Endpoint:         "http://127.0.0.1:8000/graphql",
		HeartbeatLog:     "/tmp/crm_heartbeat_log.txt",
		LowStockLog:      "/tmp/low_stock_updates_log.txt",
		LowStockErrorLog: "/tmp/update_low_stock_error.txt",
		ReminderLog:      "/tmp/order_reminders_log.txt",
		ErrorLog:         "/tmp/crm_error_log.txt",
	},
}

func setEnvValue(name string, val *string) {
	if v, ok := os.LookupEnv(name); ok {
		*val = v
	}
}

// LoadConfig reads the YAML configuration file and applies environment
// overrides. A missing file yields the defaults.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if common.FileExists(cfile) {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	setEnvValue("GOCRM_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvValue("GOCRM_DB_HOST", &cfg.Database.Host)
	setEnvValue("GOCRM_DB_NAME", &cfg.Database.Name)
	setEnvValue("GOCRM_DB_USER", &cfg.Database.User)
	setEnvValue("GOCRM_DB_PWD", &cfg.Database.Passwd)
	setEnvValue("GOCRM_JOBS_ENDPOINT", &cfg.Jobs.Endpoint)
	return cfg
}

// InitDirs creates the working directories used by logs and data files.
func (c *AppConfig) InitDirs() {
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "logs"), 0o755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "data"), 0o755)
}
