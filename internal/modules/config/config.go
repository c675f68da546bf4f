package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	configFilePathENV = "CONFIG_FILE"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
	databaseDSN       = "DATABASE_DSN"
	mt5BaseURLENV     = "MT5_BASE_URL"
)

// Config ...
type Config struct {
	Telegram struct {
		Token string `mapstructure:"token"`
		// Allow-list каналов/чатов с сигналами. Пустые списки = разрешено всё.
		AllowedChatIDs   []int64  `mapstructure:"allowed_chat_ids"`
		AllowedUsernames []string `mapstructure:"allowed_usernames"`
		// Куда слать сервисные уведомления (0 — не слать).
		OpsChatID int64 `mapstructure:"ops_chat_id"`
	} `mapstructure:"telegram"`
	DB  string `mapstructure:"db_dsn"`
	MT5 struct {
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"mt5"`
	Service struct {
		AdminPort int `mapstructure:"admin_port"`
	} `mapstructure:"service"`
	Jaeger struct {
		Host string `mapstructure:"host"`
		Port int    `mapstructure:"port"`
	} `mapstructure:"jaeger"`

	// Сколько от депозита рискуем на одну позицию, в процентах equity.
	RiskPct float64 `mapstructure:"risk_pct"`
	// Сколько позиций открываем по одному сигналу.
	PositionsPerSignal int `mapstructure:"positions_per_signal"`

	Storage struct {
		PositionsPath string `mapstructure:"positions_path"`
		SymbolsPath   string `mapstructure:"symbols_path"`
	} `mapstructure:"storage"`
}

func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = "values_local.yaml"
	}

	v := viper.New()
	v.SetConfigFile("configs/" + configFileName)

	v.SetDefault("risk_pct", 1.0)
	v.SetDefault("positions_per_signal", 3)
	v.SetDefault("service.admin_port", 8080)
	v.SetDefault("jaeger.host", "127.0.0.1")
	v.SetDefault("jaeger.port", 6831)
	v.SetDefault("mt5.base_url", "http://127.0.0.1:8228")
	v.SetDefault("storage.positions_path", "data/positions.json")
	v.SetDefault("storage.symbols_path", "data/symbols.yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, err
	}

	token := os.Getenv(tokenTelegramENV)
	if token != "" {
		config.Telegram.Token = token
	}

	dsn := os.Getenv(databaseDSN)
	if dsn != "" {
		config.DB = dsn
	}

	if base := os.Getenv(mt5BaseURLENV); base != "" {
		config.MT5.BaseURL = base
	}

	if v := os.Getenv("OPS_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Telegram.OpsChatID = id
		}
	}

	for i, u := range config.Telegram.AllowedUsernames {
		config.Telegram.AllowedUsernames[i] = strings.ToLower(strings.TrimPrefix(u, "@"))
	}

	return config, nil
}
