package kafka

import (
	"fmt"
	"strconv"
	"time"
)

// Canal 的 JSON 里列值一律是字符串或 null，这里做宽松转换

func StrToString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func StrToUint64(v interface{}) uint64 {
	n, _ := strconv.ParseUint(StrToString(v), 10, 64)
	return n
}

func StrToDateTime(v interface{}) time.Time {
	t, _ := time.ParseInLocation("2006-01-02 15:04:05", StrToString(v), time.Local)
	return t
}
