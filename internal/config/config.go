package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// RedisConfig Redis配置结构
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// 连接池设置
	PoolSize     int `yaml:"pool_size"`      // 连接池大小
	MinIdleConns int `yaml:"min_idle_conns"` // 最小空闲连接数
	// 超时设置
	DialTimeoutSeconds  int `yaml:"dial_timeout_seconds"`  // 连接超时(秒)
	ReadTimeoutSeconds  int `yaml:"read_timeout_seconds"`  // 读取超时(秒)
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds"` // 写入超时(秒)
	// 重试设置
	MaxRetries        int `yaml:"max_retries"`          // 最大重试次数
	MinRetryBackoffMS int `yaml:"min_retry_backoff_ms"` // 最小重试间隔(毫秒)
	MaxRetryBackoffMS int `yaml:"max_retry_backoff_ms"` // 最大重试间隔(毫秒)
	// 记录过期设置
	RecordExpireDays    int `yaml:"record_expire_days"`     // 导入记录过期时间(天)，0表示不过期
	MD5RecordExpireDays int `yaml:"md5_record_expire_days"` // 文件MD5记录过期时间(天)
}

// MinIOConfig MinIO配置结构
type MinIOConfig struct {
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"accessKeyID"`
	SecretAccessKey string `yaml:"secretAccessKey"`
	UseSSL          bool   `yaml:"useSSL"`
	Location        string `yaml:"location"` // 可选，存储桶区域
	// 对象存储桶名称
	OriginalsBucket string `yaml:"originalsBucket"` // 原始文档存储桶
	RawTextBucket   string `yaml:"rawTextBucket"`   // 提取文本存储桶
	// 对象生命周期管理
	OriginalFileExpireDays int `yaml:"original_file_expire_days"` // 原始文件过期天数
	RawTextExpireDays      int `yaml:"raw_text_expire_days"`      // 提取文本过期天数
}

// ServerConfig 定义服务器配置
type ServerConfig struct {
	Address string `yaml:"address"` // 例如 ":8080" or "0.0.0.0:8080"
}

// ImporterConfig 导入管线配置
type ImporterConfig struct {
	MaxFileSizeMB          int `yaml:"max_file_size_mb"`          // 上传文件大小上限(MB)
	LowConfidenceThreshold int `yaml:"low_confidence_threshold"`  // 低置信度提示阈值(0-100)
	ScannedMinCharsPerPage int `yaml:"scanned_min_chars_per_page"` // 扫描件判定的每页字符数阈值
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	Format       string `yaml:"format"`        // json, pretty
	TimeFormat   string `yaml:"time_format"`   // 时间格式
	ReportCaller bool   `yaml:"report_caller"` // 是否报告调用位置
}

// Config 应用程序配置
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Importer ImporterConfig `yaml:"importer"`
	Redis    RedisConfig    `yaml:"redis"`
	MinIO    MinIOConfig    `yaml:"minio"`
	Logger   LoggerConfig   `yaml:"logger"`
}

// LoadConfig 从文件加载配置。
// 路径为空时在常见位置查找；测试环境下找不到配置文件时回退默认配置。
// .env 文件（如存在）会先注入环境变量，敏感项随后从环境变量覆盖。
func LoadConfig(configPath string) (*Config, error) {
	// 加载.env（不存在时静默忽略）
	_ = godotenv.Load()

	if configPath == "" {
		configPath = findConfigFile()
	}
	if configPath == "" {
		if inTestEnv() {
			return createDefaultConfig(), nil
		}
		configPath = "config.yaml"
	}

	if _, err := os.Stat(configPath); err != nil {
		if inTestEnv() {
			return createDefaultConfig(), nil
		}
		return nil, fmt.Errorf("配置文件不存在: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	applyEnvOverrides(&config)
	applyDefaults(&config)
	return &config, nil
}

// findConfigFile 在常见位置查找配置文件
func findConfigFile() string {
	searchPaths := []string{
		"config.yaml",
		"./config.yaml",
		"../config.yaml",
		"../../config.yaml",
		filepath.Join(os.Getenv("HOME"), ".resume-import", "config.yaml"),
	}
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		searchPaths = append(searchPaths,
			filepath.Join(execDir, "config.yaml"),
			filepath.Join(execDir, "..", "config.yaml"))
	}
	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// inTestEnv 检测是否在 go test 下运行
func inTestEnv() bool {
	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			return true
		}
	}
	return false
}

// applyEnvOverrides 敏感配置从环境变量覆盖
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("REDIS_ADDRESS"); v != "" {
		config.Redis.Address = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		config.Redis.Password = v
	}
	if v := os.Getenv("MINIO_ENDPOINT"); v != "" {
		config.MinIO.Endpoint = v
	}
	if v := os.Getenv("MINIO_ACCESS_KEY_ID"); v != "" {
		config.MinIO.AccessKeyID = v
	}
	if v := os.Getenv("MINIO_SECRET_ACCESS_KEY"); v != "" {
		config.MinIO.SecretAccessKey = v
	}
}

// applyDefaults 补齐缺省值
func applyDefaults(config *Config) {
	if config.Server.Address == "" {
		config.Server.Address = ":8080"
	}
	if config.Importer.MaxFileSizeMB <= 0 {
		config.Importer.MaxFileSizeMB = 10
	}
	if config.Importer.LowConfidenceThreshold <= 0 {
		config.Importer.LowConfidenceThreshold = 50
	}
	if config.Importer.ScannedMinCharsPerPage <= 0 {
		config.Importer.ScannedMinCharsPerPage = 200
	}
	if config.Redis.PoolSize <= 0 {
		config.Redis.PoolSize = 10
	}
	if config.Redis.MinIdleConns <= 0 {
		config.Redis.MinIdleConns = 2
	}
	if config.Redis.DialTimeoutSeconds <= 0 {
		config.Redis.DialTimeoutSeconds = 5
	}
	if config.Redis.ReadTimeoutSeconds <= 0 {
		config.Redis.ReadTimeoutSeconds = 3
	}
	if config.Redis.WriteTimeoutSeconds <= 0 {
		config.Redis.WriteTimeoutSeconds = 3
	}
	if config.Redis.MD5RecordExpireDays <= 0 {
		config.Redis.MD5RecordExpireDays = 30
	}
	if config.MinIO.OriginalsBucket == "" {
		config.MinIO.OriginalsBucket = "resume-originals"
	}
	if config.MinIO.RawTextBucket == "" {
		config.MinIO.RawTextBucket = "resume-raw-text"
	}
	if config.Logger.Level == "" {
		config.Logger.Level = "info"
	}
	if config.Logger.Format == "" {
		config.Logger.Format = "json"
	}
}

// createDefaultConfig 创建默认配置，用于测试环境
func createDefaultConfig() *Config {
	config := &Config{}
	config.Server.Address = ":8080"
	config.Redis.Address = "localhost:6379"
	config.Redis.DB = 0
	config.MinIO.Endpoint = "localhost:9000"
	config.MinIO.AccessKeyID = "minioadmin"
	config.MinIO.SecretAccessKey = "minioadmin123"
	config.MinIO.UseSSL = false
	config.Logger.Level = "info"
	config.Logger.Format = "pretty"
	applyDefaults(config)
	return config
}
