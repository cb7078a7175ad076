package config

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/taolink-server/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 애플리케이션의 전역 고유 식별자입니다.
	AppName string = "taolink-server"

	// DefaultFilename 애플리케이션 초기화 시 참조하는 기본 설정 파일명입니다.
	// 실행 인자를 통해 명시적인 경로가 제공되지 않을 경우, 시스템은 이 파일을 탐색하여 구성을 로드합니다.
	DefaultFilename = AppName + ".json"

	// envPrefix 환경 변수를 통한 설정 재정의 시 사용하는 접두어입니다.
	// 예: TAOLINK_TELEGRAM__BOT_TOKEN -> telegram.bot_token
	envPrefix = "TAOLINK_"
)

var validate = validator.New()

// AppConfig 애플리케이션의 모든 설정을 관장하는 최상위 루트 구조체
type AppConfig struct {
	Debug    bool           `json:"debug"`
	Log      LogConfig      `json:"log"`
	Telegram TelegramConfig `json:"telegram"`
	Resolver ResolverConfig `json:"resolver"`
}

// LogConfig 로그 파일 저장 경로를 정의하는 설정 구조체
type LogConfig struct {
	Dir string `json:"dir"`
}

// TelegramConfig 텔레그램 봇 토큰 및 수신을 허용할 채팅 ID 정보를 담는 설정 구조체
type TelegramConfig struct {
	BotToken string `json:"bot_token" validate:"required"`
	ChatID   int64  `json:"chat_id" validate:"required"`
}

// ResolverConfig 상품 링크 해석 파이프라인의 외부 엔드포인트와 실행 정책을 정의하는 설정 구조체
type ResolverConfig struct {
	// TaopassEndpoint 타오커우링(숫자/기호로 감싸진 토큰)을 상품 정보로 변환해 주는 API 주소
	TaopassEndpoint string `json:"taopass_endpoint" validate:"required,url"`

	// ShortlinkBaseURL 단축링크(m.tb.cn) 리다이렉트 페이지의 기본 주소
	ShortlinkBaseURL string `json:"shortlink_base_url" validate:"required,url"`

	// ResolveTimeout 해석 전략 경쟁(Race)에 적용되는 전체 마감 시간
	ResolveTimeout time.Duration `json:"resolve_timeout"`

	// UserAgent 외부 페이지 요청 시 사용할 User-Agent (비어 있으면 기본값 사용)
	UserAgent string `json:"user_agent"`
}

// defaultConfig 설정 파일이나 환경 변수로 재정의되기 전의 기본 설정값을 반환합니다.
func defaultConfig() AppConfig {
	return AppConfig{
		Resolver: ResolverConfig{
			TaopassEndpoint:  "https://taodaxiang.com/taopass/parse/get",
			ShortlinkBaseURL: "https://m.tb.cn",
			ResolveTimeout:   15 * time.Second,
		},
	}
}

// Load 기본값 -> 설정 파일 -> 환경 변수의 우선순위로 설정을 로드하고 유효성을 검증합니다.
func Load(filename string) (*AppConfig, error) {
	k := koanf.New(".")

	// 1. 기본값
	if err := k.Load(structs.Provider(defaultConfig(), "json"), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal, "기본 설정값 로드가 실패하였습니다")
	}

	// 2. 설정 파일
	if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrNotFound, fmt.Sprintf("설정 파일(%s)을 읽을 수 없습니다", filename))
	}

	// 3. 환경 변수 (TAOLINK_ 접두어, '__'는 계층 구분자로 치환)
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal, "환경 변수 로드가 실패하였습니다")
	}

	var config AppConfig
	if err := k.UnmarshalWithConf("", &config, koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
			WeaklyTypedInput: true,
			Result:           &config,
			TagName:          "json",
		},
	}); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInvalidInput, fmt.Sprintf("설정 파일(%s)의 구조가 올바르지 않습니다", filename))
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// validate 설정 파일 로드 직후, 각 설정 항목의 정합성과 필수 값의 유효성을 검증합니다.
func (c *AppConfig) validate() error {
	if err := validate.Struct(c.Telegram); err != nil {
		// Validator 에러를 사용자 친화적인 메시지로 변환한다.
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fieldErr := range validationErrors {
				switch fieldErr.StructField() {
				case "BotToken":
					return apperrors.New(apperrors.ErrInvalidInput, "텔레그램 봇 토큰(telegram.bot_token)이 설정되지 않았습니다")
				case "ChatID":
					return apperrors.New(apperrors.ErrInvalidInput, "수신을 허용할 채팅 ID(telegram.chat_id)가 설정되지 않았습니다")
				}
			}
		}
		return apperrors.Wrap(err, apperrors.ErrInvalidInput, "텔레그램 설정이 올바르지 않습니다")
	}

	if err := validate.Struct(c.Resolver); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fieldErr := range validationErrors {
				switch fieldErr.StructField() {
				case "TaopassEndpoint":
					return apperrors.New(apperrors.ErrInvalidInput, "타오패스 API 주소(resolver.taopass_endpoint)가 유효한 URL이 아닙니다")
				case "ShortlinkBaseURL":
					return apperrors.New(apperrors.ErrInvalidInput, "단축링크 기본 주소(resolver.shortlink_base_url)가 유효한 URL이 아닙니다")
				}
			}
		}
		return apperrors.Wrap(err, apperrors.ErrInvalidInput, "해석기(Resolver) 설정이 올바르지 않습니다")
	}

	if c.Resolver.ResolveTimeout <= 0 {
		return apperrors.New(apperrors.ErrInvalidInput, fmt.Sprintf("해석 마감 시간(resolver.resolve_timeout)은 0보다 커야 합니다: '%s'", c.Resolver.ResolveTimeout))
	}

	return nil
}
