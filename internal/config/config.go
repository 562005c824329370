package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

var (
	ErrMissingToken = errors.New("config: telegram token is not set")
	ErrBadAdminID   = errors.New("config: admin ids must be positive")
	ErrBadRateLimit = errors.New("config: rate limit must not be negative")
)

type Config struct {
	App struct {
		Env      string
		LogLevel string `mapstructure:"log_level"`
	} `mapstructure:"app"`

	Telegram struct {
		Token       string
		AdminIDs    []int64 `mapstructure:"admin_ids"`
		AdminChatID int64   `mapstructure:"admin_chat_id"`
		PollTimeout int     `mapstructure:"poll_timeout"`
		Debug       bool
	} `mapstructure:"telegram"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	RateLimit struct {
		PerSecond float64 `mapstructure:"per_second"`
		Burst     int
	} `mapstructure:"rate_limit"`

	Shop struct {
		SeedCatalog bool `mapstructure:"seed_catalog"`
	} `mapstructure:"shop"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "prod")
	v.SetDefault("app.log_level", "")
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.admin_ids", []int64{})
	v.SetDefault("telegram.admin_chat_id", 0)
	v.SetDefault("telegram.poll_timeout", 60)
	v.SetDefault("telegram.debug", false)
	v.SetDefault("http.addr", ":5000")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("rate_limit.per_second", 0)
	v.SetDefault("rate_limit.burst", 0)
	v.SetDefault("shop.seed_catalog", true)
}

// Load: .env (если есть) -> defaults -> YAML (если файл есть) -> APP_* из окружения.
// Токен можно передать и как TELEGRAM_BOT_TOKEN, порт хостинга как PORT.
func Load(path string) (Config, error) {
	var c Config
	if err := gotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return c, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("telegram.token", "APP_TELEGRAM_TOKEN", "TELEGRAM_BOT_TOKEN")
	_ = v.BindEnv("http.port", "PORT")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return c, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	// список id из окружения приходит строкой "1,2,3"
	if raw := os.Getenv("APP_TELEGRAM_ADMIN_IDS"); raw != "" {
		ids, err := parseIDs(raw)
		if err != nil {
			return c, err
		}
		v.Set("telegram.admin_ids", ids)
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	if port := strings.TrimSpace(v.GetString("http.port")); port != "" {
		c.HTTP.Addr = ":" + port
	}
	return c, nil
}

func parseIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadAdminID, part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Telegram.Token) == "" {
		return ErrMissingToken
	}
	for _, id := range c.Telegram.AdminIDs {
		if id <= 0 {
			return fmt.Errorf("%w: %d", ErrBadAdminID, id)
		}
	}
	if c.RateLimit.PerSecond < 0 || c.RateLimit.Burst < 0 {
		return ErrBadRateLimit
	}
	return nil
}

// Recipients кому слать уведомления: admin_chat_id и все админы, без повторов.
func (c Config) Recipients() []int64 {
	all := append([]int64{c.Telegram.AdminChatID}, c.Telegram.AdminIDs...)
	return lo.Uniq(lo.Filter(all, func(id int64, _ int) bool { return id != 0 }))
}
