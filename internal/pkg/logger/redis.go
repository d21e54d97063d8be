package logger

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const slowCommandThreshold = 100 * time.Millisecond

// redisHook 记录慢命令和执行失败，正常命令不产生日志
type redisHook struct{}

func NewRedisLogger() redis.Hook {
	return redisHook{}
}

func (redisHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		start := time.Now()
		conn, err := next(ctx, network, addr)
		if err != nil {
			log.ErrorContext(ctx, "redis dial error",
				log.String("addr", addr),
				log.Duration("latency", time.Since(start)),
				log.Any("err", err),
			)
		}
		return conn, err
	}
}

func (redisHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		elapsed := time.Since(start)

		if err != nil && !ignorableRedisError(cmd, err) {
			log.ErrorContext(ctx, "redis error",
				log.String("command", cmd.Name()),
				log.String("args", commandArgs(cmd)),
				log.Duration("latency", elapsed),
				log.Any("err", err),
			)
			return err
		}
		if elapsed > slowCommandThreshold {
			log.WarnContext(ctx, "redis slow command",
				log.String("command", cmd.Name()),
				log.String("args", commandArgs(cmd)),
				log.Duration("latency", elapsed),
			)
		}
		return err
	}
}

func (redisHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		elapsed := time.Since(start)

		if err != nil {
			log.ErrorContext(ctx, "redis pipeline error",
				log.Int("cmd_count", len(cmds)),
				log.Duration("latency", elapsed),
				log.Any("err", err),
			)
			return err
		}
		if elapsed > slowCommandThreshold {
			log.WarnContext(ctx, "redis slow pipeline",
				log.Int("cmd_count", len(cmds)),
				log.Duration("latency", elapsed),
			)
		}
		return err
	}
}

// ignorableRedisError 过滤缓存未命中和客户端握手噪音
func ignorableRedisError(cmd redis.Cmder, err error) bool {
	if errors.Is(err, redis.Nil) {
		return true
	}
	if cmd.Name() == "client" && strings.Contains(err.Error(), "setinfo") {
		return true
	}
	return false
}

// commandArgs 序列化命令参数，认证类命令不落盘
func commandArgs(cmd redis.Cmder) string {
	switch cmd.Name() {
	case "auth", "hello":
		return "[PROTECTED]"
	}
	return fmt.Sprint(cmd.Args())
}
