package config

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides: otp.master_key is read from
// OTPGATE_OTP_MASTER_KEY.
const EnvPrefix = "OTPGATE"

var errNoConfigType = errors.New("config type is required")

// Viper implements Config on top of spf13/viper.
type Viper struct {
	v *viper.Viper
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// NewViper reads the file at path, with the format taken from its extension,
// and reloads it whenever the file changes.
func NewViper(path string) (*Viper, error) {
	v := newViper()
	v.SetConfigFile(path)
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
		v.SetConfigType(ext)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if err := v.ReadInConfig(); err != nil {
			slog.Error("config reload failed", "path", path, "op", e.Op.String(), "error", err)
			return
		}
		slog.Info("config reloaded", "path", path)
	})
	v.WatchConfig()

	return &Viper{v: v}, nil
}

// NewViperFromBytes reads configuration of configType (yaml, json, toml...) from data.
func NewViperFromBytes(configType string, data []byte) (*Viper, error) {
	if strings.TrimSpace(configType) == "" {
		return nil, errNoConfigType
	}

	v := newViper()
	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, err
	}

	return &Viper{v: v}, nil
}

func (c *Viper) IsSet(key string) bool         { return c.v.IsSet(key) }
func (c *Viper) GetInt(key string) int         { return c.v.GetInt(key) }
func (c *Viper) GetBool(key string) bool       { return c.v.GetBool(key) }
func (c *Viper) GetFloat64(key string) float64 { return c.v.GetFloat64(key) }
func (c *Viper) GetString(key string) string   { return c.v.GetString(key) }
func (c *Viper) GetSecond(key string) time.Duration {
	return time.Duration(c.v.GetInt64(key)) * time.Second
}

func (c *Viper) GetBinary(key string) []byte {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(c.v.GetString(key)))
	if err != nil {
		return nil
	}
	return data
}

// GetArray accepts a comma separated string or a list.
func (c *Viper) GetArray(key string) []string {
	var items []string
	switch raw := c.v.Get(key).(type) {
	case nil:
		return nil
	case []any:
		items = lo.Map(raw, func(item any, _ int) string { return fmt.Sprint(item) })
	case []string:
		items = raw
	default:
		items = strings.Split(c.v.GetString(key), ",")
	}

	return lo.Compact(lo.Map(items, func(s string, _ int) string { return strings.TrimSpace(s) }))
}

// Close is a no-op; the file watcher lives as long as the process.
func (c *Viper) Close() error { return nil }
