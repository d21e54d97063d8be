package kafka

import (
	"errors"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// Canal 消息类型
const (
	INSERT = "INSERT"
	UPDATE = "UPDATE"
	DELETE = "DELETE"
)

var (
	ErrTableMismatch = errors.New("canal message table mismatch")
	ErrEmptyRowData  = errors.New("canal message carries no row data")
)

// CanalMessage 定义了 Canal 推送到 Kafka 的 JSON 数据结构
type CanalMessage struct {
	ID       int64    `json:"id"`
	Database string   `json:"database"`
	Table    string   `json:"table"`
	PKNames  []string `json:"pkNames"`
	IsDDL    bool     `json:"isDdl"`
	Type     string   `json:"type"`
	ES       int64    `json:"es"`
	TS       int64    `json:"ts"`
	SQL      string   `json:"sql"`

	// Data 存储变更后的数据
	Data []map[string]interface{} `json:"data"`

	// Old 存储变更前的数据
	Old []map[string]interface{} `json:"old"`

	// 字段类型元数据
	SqlType   map[string]int    `json:"sqlType"`   // JDBC 类型 ID
	MysqlType map[string]string `json:"mysqlType"` // MySQL 类型描述
}

// ToCanalMessage 解析 Kafka 消息为 Canal 变更，DDL 和空行变更不可处理
func ToCanalMessage(msg *sarama.ConsumerMessage, tableName string) (*CanalMessage, error) {
	var canalMsg CanalMessage
	if err := json.Unmarshal(msg.Value, &canalMsg); err != nil {
		return nil, err
	}

	if canalMsg.Table != tableName {
		return nil, ErrTableMismatch
	}

	if len(canalMsg.Data) == 0 {
		return nil, ErrEmptyRowData
	}

	return &canalMsg, nil
}
