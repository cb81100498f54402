package xlog

import (
	"time"

	"github.com/valyala/bytebufferpool"
)

const (
	// timeLayout 记录时间戳，精确到秒，不带时区
	timeLayout = "2006-01-02T15:04:05"
	levelWidth = 5
	hexDigits  = "0123456789abcdef"
)

var recordPool bytebufferpool.Pool

// Render 将一条记录格式化为一行（含结尾换行）
//
// 输出与 Logger 写入 stdout 和文件的字节完全一致。
func Render(format Format, level Level, msg string, fields []Field, now time.Time) []byte {
	return appendRecord(nil, format, level, msg, fields, now)
}

// renderPooled 从缓冲池取缓冲区格式化记录，调用方用完后须 recordPool.Put
func renderPooled(format Format, level Level, msg string, fields []Field, now time.Time) *bytebufferpool.ByteBuffer {
	buf := recordPool.Get()
	buf.B = appendRecord(buf.B[:0], format, level, msg, fields, now)
	return buf
}

func appendRecord(dst []byte, format Format, level Level, msg string, fields []Field, now time.Time) []byte {
	if format == FormatJSON {
		return appendJSON(dst, level, msg, fields, now)
	}
	return appendText(dst, level, msg, fields, now)
}

// appendText TIME [LEVEL] msg k=v k=v\n，字段原样输出
func appendText(dst []byte, level Level, msg string, fields []Field, now time.Time) []byte {
	dst = now.AppendFormat(dst, timeLayout)
	dst = append(dst, " ["...)
	name := level.String()
	dst = append(dst, name...)
	for i := len(name); i < levelWidth; i++ {
		dst = append(dst, ' ')
	}
	dst = append(dst, "] "...)
	dst = append(dst, msg...)
	for _, f := range fields {
		if !f.valid() {
			continue
		}
		dst = append(dst, ' ')
		dst = append(dst, f.Key...)
		dst = append(dst, '=')
		dst = append(dst, f.Value...)
	}
	return append(dst, '\n')
}

// appendJSON {"time":..,"level":..,"msg":..,字段按调用顺序}\n
//
// 字段不去重，重复 key 原样输出。
func appendJSON(dst []byte, level Level, msg string, fields []Field, now time.Time) []byte {
	dst = append(dst, `{"time":"`...)
	dst = now.AppendFormat(dst, timeLayout)
	dst = append(dst, `","level":"`...)
	dst = append(dst, level.lowerName()...)
	dst = append(dst, `","msg":`...)
	dst = appendJSONString(dst, msg)
	for _, f := range fields {
		if !f.valid() {
			continue
		}
		dst = append(dst, ',')
		dst = appendJSONString(dst, f.Key)
		dst = append(dst, ':')
		dst = appendJSONString(dst, f.Value)
	}
	return append(dst, "}\n"...)
}

// appendJSONString 按字节转义：引号、反斜杠、\n \r \t 用短格式，
// 其它 0x20 以下的控制字节用 \u00xx，其余字节（包括非 ASCII）原样输出。
func appendJSONString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			dst = append(dst, '\\', '"')
		case '\\':
			dst = append(dst, '\\', '\\')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		default:
			if c < 0x20 {
				dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
				continue
			}
			dst = append(dst, c)
		}
	}
	return append(dst, '"')
}
