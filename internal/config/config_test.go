package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/darkkaiser/taolink-server/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfigFile 테스트용 설정 파일을 생성하고 그 경로를 반환합니다.
func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLoad_Defaults 기본값이 설정 파일에 명시되지 않은 항목을 채우는지 검증합니다.
func TestLoad_Defaults(t *testing.T) {
	path := writeConfigFile(t, `{
		"telegram": {
			"bot_token": "123456:TEST-TOKEN",
			"chat_id": -1001234567890
		}
	}`)

	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://taodaxiang.com/taopass/parse/get", config.Resolver.TaopassEndpoint)
	assert.Equal(t, "https://m.tb.cn", config.Resolver.ShortlinkBaseURL)
	assert.Equal(t, 15*time.Second, config.Resolver.ResolveTimeout)
	assert.Equal(t, int64(-1001234567890), config.Telegram.ChatID)
	assert.False(t, config.Debug)
}

// TestLoad_FileOverridesDefaults 설정 파일 값이 기본값을 재정의하는지 검증합니다.
func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `{
		"debug": true,
		"telegram": {
			"bot_token": "123456:TEST-TOKEN",
			"chat_id": 99
		},
		"resolver": {
			"taopass_endpoint": "https://example.com/parse",
			"resolve_timeout": "3s",
			"user_agent": "taolink-test-agent"
		}
	}`)

	config, err := Load(path)
	require.NoError(t, err)

	assert.True(t, config.Debug)
	assert.Equal(t, "https://example.com/parse", config.Resolver.TaopassEndpoint)
	assert.Equal(t, 3*time.Second, config.Resolver.ResolveTimeout)
	assert.Equal(t, "taolink-test-agent", config.Resolver.UserAgent)
	// 재정의하지 않은 항목은 기본값 유지
	assert.Equal(t, "https://m.tb.cn", config.Resolver.ShortlinkBaseURL)
}

// TestLoad_EnvOverridesFile 환경 변수가 설정 파일 값을 재정의하는지 검증합니다.
func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `{
		"telegram": {
			"bot_token": "123456:FILE-TOKEN",
			"chat_id": 99
		}
	}`)

	t.Setenv("TAOLINK_TELEGRAM__BOT_TOKEN", "123456:ENV-TOKEN")

	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "123456:ENV-TOKEN", config.Telegram.BotToken)
}

// TestLoad_ValidationFailures 필수 설정 누락 및 잘못된 값에 대한 검증 실패를 테스트합니다.
func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantMessage string
	}{
		{
			name:        "봇 토큰 누락",
			content:     `{"telegram": {"chat_id": 99}}`,
			wantMessage: "bot_token",
		},
		{
			name:        "채팅 ID 누락",
			content:     `{"telegram": {"bot_token": "123456:TEST-TOKEN"}}`,
			wantMessage: "chat_id",
		},
		{
			name: "유효하지 않은 API 주소",
			content: `{
				"telegram": {"bot_token": "123456:TEST-TOKEN", "chat_id": 99},
				"resolver": {"taopass_endpoint": "not-a-url"}
			}`,
			wantMessage: "taopass_endpoint",
		},
		{
			name: "0 이하의 해석 마감 시간",
			content: `{
				"telegram": {"bot_token": "123456:TEST-TOKEN", "chat_id": 99},
				"resolver": {"resolve_timeout": "-1s"}
			}`,
			wantMessage: "resolve_timeout",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)

			_, err := Load(path)
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
			assert.Contains(t, err.Error(), tt.wantMessage)
		})
	}
}

// TestLoad_MissingFile 존재하지 않는 설정 파일에 대한 에러 처리를 검증합니다.
func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "no-such-file.json"))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}
