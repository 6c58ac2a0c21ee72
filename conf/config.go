package conf

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// 配置加载（数据库、券商、通知渠道等）

type WebhookConfig struct {
	// 全局共享令牌，为空时不校验
	Token string `yaml:"token"`
}

// Market Maya 券商接口配置
type MayaConfig struct {
	BaseURL string `yaml:"base-url"`
	// 进程级默认token，策略未配置token时回退到这里
	Token     string `yaml:"token"`
	TimeoutMs int    `yaml:"timeout-ms"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot-token"`
	// 订阅同步模式：polling 或 off
	SyncMode string `yaml:"sync-mode"`
}

type Db struct {
	DbName   string `yaml:"dbname"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	FileName   string `yaml:"file-name"`
	TimeFormat string `yaml:"time-format"`
	MaxSize    int    `yaml:"max-size"`
	MaxBackups int    `yaml:"max-backups"`
	MaxAge     int    `yaml:"max-age"`
	Compress   bool   `yaml:"compress"`
	LocalTime  bool   `yaml:"local-time"`
	Console    bool   `yaml:"console"`
}

type JwtConfig struct {
	Secret string `yaml:"secret"`
	JwtTtl int64  `yaml:"ttl"` // token 有效期（秒）
}

type EmailConfig struct {
	Host     string `yaml:"smtp-host"`
	Port     int    `yaml:"smtp-port"`
	Username string `yaml:"smtp-user"`
	Password string `yaml:"smtp-password"`
	Sender   string `yaml:"smtp-sender"`
	// 发送前是否先校验收件地址可达
	PreCheck bool `yaml:"precheck"`
}

type Config struct {
	AppName      string `yaml:"app_name"`
	Listen       string `yaml:"listen"`
	Mode         string `yaml:"mode"`
	Language     string `yaml:"language"`
	MaxPingCount int    `yaml:"max-ping-count"`

	Webhook  WebhookConfig  `yaml:"webhook"`
	Maya     MayaConfig     `yaml:"maya"`
	Telegram TelegramConfig `yaml:"telegram"`
	Db       `yaml:"database"`
	Log      LogConfig   `yaml:"log"`
	Jwt      JwtConfig   `yaml:"jwt"`
	Email    EmailConfig `yaml:"email"`
}

var AppConfig Config

func LoadConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("Read config file error %w", err)
	}
	if err := yaml.Unmarshal(data, &AppConfig); err != nil {
		return fmt.Errorf("Unmarshal config yaml error: %w", err)
	}
	return nil
}
