package xlog

import (
	"strconv"
	"time"
)

// 常用字段 key
const (
	KeyError     = "error"
	KeyDuration  = "duration"
	KeyCount     = "count"
	KeyComponent = "component"
	KeyOperation = "operation"
	KeyTraceID   = "trace_id"
	KeySpanID    = "span_id"
)

// Field 一个有序的键值对，值总是字符串
//
// Key 为空的字段视为无效，输出时被跳过，不影响同一条记录里的其它字段。
type Field struct {
	Key   string
	Value string
}

func (f Field) valid() bool {
	return f.Key != ""
}

// Pairs 由扁平的 key, value, key, value... 列表构造字段
//
// 末尾落单的 key 没有对应的值，被丢弃。
func Pairs(kv ...string) []Field {
	if len(kv) < 2 {
		return nil
	}
	fields := make([]Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields = append(fields, Field{Key: kv[i], Value: kv[i+1]})
	}
	return fields
}

// String 创建字符串字段
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int 创建整数字段
func Int(key string, v int64) Field {
	return Field{Key: key, Value: strconv.FormatInt(v, 10)}
}

// Bool 创建布尔字段
func Bool(key string, v bool) Field {
	return Field{Key: key, Value: strconv.FormatBool(v)}
}

// Err 创建错误字段，key 固定为 "error"
//
// err 为 nil 时返回空 key 的字段，输出时被跳过。
func Err(err error) Field {
	if err == nil {
		return Field{}
	}
	return Field{Key: KeyError, Value: err.Error()}
}

// Duration 创建耗时字段（人类可读格式，如 "1m30s"）
func Duration(d time.Duration) Field {
	return Field{Key: KeyDuration, Value: d.String()}
}

// Count 创建计数字段
func Count(n int64) Field {
	return Int(KeyCount, n)
}

// Component 创建组件名字段
func Component(name string) Field {
	return Field{Key: KeyComponent, Value: name}
}

// Operation 创建操作名字段
func Operation(name string) Field {
	return Field{Key: KeyOperation, Value: name}
}
