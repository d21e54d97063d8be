package logger

import (
	"Arbor/internal/api/config"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type accessLine struct {
	Time        string `json:"time"`
	Level       string `json:"level"`
	Msg         string `json:"msg"`
	TraceID     string `json:"trace_id"`
	LogToken    string `json:"log_token"`
	TargetIndex string `json:"target_index"`
	Method      string `json:"method"`
	Path        string `json:"path"`
	Status      int    `json:"status"`
	Latency     string `json:"latency"`
	ClientIP    string `json:"client_ip"`
	Error       string `json:"error,omitempty"`
}

// SetupGin 挂接访问日志和 panic 恢复，访问日志直接写到 LogWriter
func SetupGin(r *gin.Engine) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output: LogWriter,
		Formatter: func(p gin.LogFormatterParams) string {
			line := accessLine{
				Time:        p.TimeStamp.Format(time.RFC3339),
				Level:       "INFO",
				Msg:         "GIN_ACCESS",
				TraceID:     accessTraceID(p),
				LogToken:    config.Cfg.Logstash.Token,
				TargetIndex: config.Cfg.Logstash.Index,
				Method:      p.Method,
				Path:        p.Path,
				Status:      p.StatusCode,
				Latency:     p.Latency.String(),
				ClientIP:    p.ClientIP,
				Error:       p.ErrorMessage,
			}
			buf, err := json.Marshal(line)
			if err != nil {
				return ""
			}
			return string(buf) + "\n"
		},
	}))

	r.Use(gin.Recovery())
}

func accessTraceID(p gin.LogFormatterParams) string {
	if p.Keys != nil {
		if id, ok := p.Keys[TraceIDKey].(string); ok && id != "" {
			return id
		}
	}
	if p.Request != nil {
		return TraceIDFromContext(p.Request.Context())
	}
	return ""
}
