package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"resume-import-go/internal/config"
	"resume-import-go/internal/constants"
)

// ErrNotFound 键不存在时返回，包装底层的 redis.Nil
var ErrNotFound = redis.Nil

// 为Redis操作定义专用tracer
var redisTracer = otel.Tracer("resume-import-go/storage/redis")

// Redis 导入记录与去重集合的存取封装
type Redis struct {
	Client *redis.Client
	config *config.RedisConfig
}

// FormatKey 格式化包含租户占位符的Redis键。
// keyConstant: 来自 constants 包的键模板。
// parts: 附加到键尾部的动态段，例如 import_uuid。
func (r *Redis) FormatKey(keyConstant string, parts ...string) string {
	// 租户ID后续应来自context，目前固定为默认租户
	base := strings.Replace(keyConstant, constants.TenantPlaceholder, constants.DefaultTenantID, 1)
	if len(parts) > 0 {
		return base + strings.Join(parts, ":")
	}
	return base
}

// NewRedisAdapter 创建Redis连接并注册OpenTelemetry钩子
func NewRedisAdapter(cfg *config.RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config cannot be nil")
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	opt := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,

		// 连接池设置
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,

		// 超时设置
		DialTimeout:  time.Duration(cfg.DialTimeoutSeconds) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,

		// 重试设置
		MaxRetries:      cfg.MaxRetries,
		MinRetryBackoff: time.Duration(cfg.MinRetryBackoffMS) * time.Millisecond,
		MaxRetryBackoff: time.Duration(cfg.MaxRetryBackoffMS) * time.Millisecond,
	}

	client := redis.NewClient(opt)

	// 记录所有Redis操作到trace
	if err := redisotel.InstrumentTracing(client); err != nil {
		return nil, fmt.Errorf("failed to instrument Redis with OpenTelemetry: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Address, err)
	}

	return &Redis{
		Client: client,
		config: cfg,
	}, nil
}

// Close 关闭Redis连接
func (r *Redis) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

// Ping 检查Redis连接
func (r *Redis) Ping(ctx context.Context) error {
	if r.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}
	return r.Client.Ping(ctx).Err()
}

// GetRecordExpireDuration 导入记录的过期时间，0表示不过期
func (r *Redis) GetRecordExpireDuration() time.Duration {
	if r.config.RecordExpireDays <= 0 {
		return 0
	}
	return time.Duration(r.config.RecordExpireDays) * 24 * time.Hour
}

// GetMD5ExpireDuration MD5去重记录的过期时间
func (r *Redis) GetMD5ExpireDuration() time.Duration {
	if r.config.MD5RecordExpireDays <= 0 {
		return constants.DefaultMD5ExpireDuration
	}
	return time.Duration(r.config.MD5RecordExpireDays) * 24 * time.Hour
}

// SaveImportRecord 以JSON形式保存导入记录
func (r *Redis) SaveImportRecord(ctx context.Context, importUUID string, record any) error {
	if r.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("序列化导入记录失败: %w", err)
	}
	key := r.FormatKey(constants.KeyImportRecordPrefix, importUUID)
	if err := r.Client.Set(ctx, key, data, r.GetRecordExpireDuration()).Err(); err != nil {
		return fmt.Errorf("保存导入记录失败: %w", err)
	}
	return nil
}

// GetImportRecord 按UUID读取导入记录的原始JSON。
// 记录不存在时返回 ErrNotFound。
func (r *Redis) GetImportRecord(ctx context.Context, importUUID string) ([]byte, error) {
	if r.Client == nil {
		return nil, fmt.Errorf("redis client is not initialized")
	}
	key := r.FormatKey(constants.KeyImportRecordPrefix, importUUID)
	data, err := r.Client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err // 包括 redis.Nil
	}
	return data, nil
}

// CheckAndAddFileMD5 原子地检查并登记上传文件MD5，返回此前是否已存在
func (r *Redis) CheckAndAddFileMD5(ctx context.Context, md5Hex string) (exists bool, err error) {
	ctx, span := redisTracer.Start(ctx, "Redis.CheckAndAddFileMD5",
		trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(
		semconv.DBSystemRedis,
		attribute.String("db.redis.database", fmt.Sprintf("%d", r.config.DB)),
		attribute.String("net.peer.name", r.config.Address),
		attribute.String("db.operation", "EVAL"),
		attribute.String("db.redis.key", constants.KeyFileMD5Set),
		attribute.String("db.redis.member", md5Hex),
	)

	if r.Client == nil {
		err = fmt.Errorf("redis client is not initialized")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}

	key := r.FormatKey(constants.KeyFileMD5Set)

	// Lua脚本保证检查与添加的原子性
	script := `
		local exists = redis.call('SISMEMBER', KEYS[1], ARGV[1])
		redis.call('SADD', KEYS[1], ARGV[1])
		redis.call('EXPIRE', KEYS[1], ARGV[2])
		return exists
	`
	expiry := r.GetMD5ExpireDuration().Seconds()

	res, err := r.Client.Eval(ctx, script, []string{key}, md5Hex, expiry).Result()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, fmt.Errorf("执行原子检查和添加操作失败: %w", err)
	}

	existsVal, ok := res.(int64)
	if !ok {
		err := fmt.Errorf("意外的Redis返回类型: %T", res)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}

	exists = existsVal == 1
	span.SetAttributes(attribute.Bool("already_exists", exists))
	span.SetStatus(codes.Ok, "")
	return exists, nil
}

// RemoveFileMD5 从去重集合中移除文件MD5，用于失败回滚
func (r *Redis) RemoveFileMD5(ctx context.Context, md5Hex string) error {
	if r.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}
	key := r.FormatKey(constants.KeyFileMD5Set)
	if err := r.Client.SRem(ctx, key, md5Hex).Err(); err != nil {
		return fmt.Errorf("从集合中移除MD5失败: %w", err)
	}
	return nil
}
