package xfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// SanitizePath 单元测试
// =============================================================================

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "绝对路径", input: "/var/log/app.log", want: "/var/log/app.log"},
		{name: "相对路径", input: "logs/app.log", want: "logs/app.log"},
		{name: "简单文件名", input: "app.log", want: "app.log"},
		{name: "文件名包含双点", input: "app..2024.log", want: "app..2024.log"},
		{name: "双点开头的文件名", input: "..config", want: "..config"},
		{name: "冗余斜杠", input: "logs//app.log", want: "logs/app.log"},
		{name: "当前目录前缀", input: "./app.log", want: "app.log"},
		{name: "绝对路径中的双点被解析", input: "/var/log/../tmp/app.log", want: "/var/tmp/app.log"},

		{name: "上级目录", input: "../app.log", want: "../app.log"},
		{name: "多级上级目录", input: "logs/../../app.log", want: "../app.log"},
		{name: "目录路径保留结尾分隔符", input: "/var/log/", want: "/var/log/"},
		{name: "冗余结尾分隔符", input: "logs//", want: "logs/"},
		{name: "只有点", input: ".", want: "."},

		{name: "空路径", input: "", wantErr: ErrEmptyPath},
		{name: "空字节", input: "app\x00.log", wantErr: ErrNullByte},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizePath(tt.input)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
