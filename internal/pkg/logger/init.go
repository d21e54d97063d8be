package logger

import (
	"Arbor/internal/api/config"
	"io"
	log "log/slog"
	"net"
	"os"
	"time"
)

const logstashDialTimeout = 3 * time.Second

// LogWriter 是访问日志的输出口，Logstash 不可用时退回标准输出
var LogWriter io.Writer

// InitLogger 组装日志链：Context 注入 → 本地 JSON 与 Logstash 双写，
// 远端只收带链路 ID 的日志。Logstash 连不上时只写标准输出，不阻塞启动。
func InitLogger() {
	cfg := config.Cfg.Logstash

	stdout := log.NewJSONHandler(os.Stdout, &log.HandlerOptions{Level: log.LevelInfo})

	var root log.Handler = stdout
	LogWriter = os.Stdout

	conn, err := net.DialTimeout("tcp", cfg.Address, logstashDialTimeout)
	if err != nil {
		log.Warn("logstash unreachable, logging to stdout only", "addr", cfg.Address, "err", err)
	} else {
		remote := log.NewJSONHandler(conn, &log.HandlerOptions{Level: log.LevelInfo}).
			WithAttrs([]log.Attr{
				log.String("target_index", cfg.Index),
				log.String("log_token", cfg.Token),
			})
		root = &teeHandler{
			local:  stdout,
			remote: &traceFilterHandler{next: remote},
		}
		LogWriter = conn
	}

	log.SetDefault(log.New(&contextHandler{next: root}))
}
