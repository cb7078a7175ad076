package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "github.com/darkkaiser/taolink-server/pkg/errors"
	"golang.org/x/net/html/charset"
)

const (
	// defaultTimeout HTTP 클라이언트의 기본 요청 타임아웃
	// 개별 요청의 마감 시간은 Context를 통해 더 짧게 제한될 수 있습니다.
	defaultTimeout = 30 * time.Second

	// defaultMaxResponseBodySize 응답 본문의 최대 허용 크기입니다.
	// 악의적이거나 비정상적으로 큰 응답으로부터 메모리 사용량을 보호하기 위해 사용됩니다.
	defaultMaxResponseBodySize = 10 * 1024 * 1024 // 10MB

	// defaultUserAgent User-Agent 미지정 시 사용되는 기본값으로, 봇 차단을 방지합니다.
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Fetcher HTTP 요청을 수행하는 인터페이스
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPFetcher 기본 타임아웃(30초) 및 User-Agent 자동 추가 기능이 내장된 HTTP 클라이언트 구현체입니다.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// NewHTTPFetcher 기본 타임아웃 설정이 포함된 새로운 HTTPFetcher 인스턴스를 생성합니다.
// userAgent가 빈 문자열이면 기본값(Chrome)이 사용됩니다.
func NewHTTPFetcher(userAgent string) *HTTPFetcher {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: defaultTimeout,
		},
		userAgent: userAgent,
	}
}

// Do 커스텀 HTTP 요청을 실행합니다.
// 요청 헤더에 User-Agent가 없는 경우, 기본값을 자동으로 추가합니다.
func (h *HTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", h.userAgent)
	}
	return h.client.Do(req)
}

// FetchText 지정된 URL로 GET 요청을 보내 응답 본문을 UTF-8 문자열로 반환합니다.
// 응답 헤더의 Content-Type을 분석하여, 비 UTF-8 인코딩(예: GBK) 페이지도 자동으로 UTF-8로 변환하여 처리합니다.
func FetchText(ctx context.Context, fetcher Fetcher, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrNetworkFailure, fmt.Sprintf("HTTP 요청 생성에 실패했습니다. (URL: %s)", url))
	}

	resp, err := fetcher.Do(req)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrNetworkFailure, fmt.Sprintf("페이지(%s) 요청 중 네트워크 또는 클라이언트 에러가 발생했습니다.", url))
	}
	defer resp.Body.Close() // 응답을 받은 즉시 defer 설정하여 메모리 누수 방지

	if resp.StatusCode != http.StatusOK {
		return "", apperrors.New(apperrors.ErrNetworkFailure, fmt.Sprintf("페이지(%s) 요청이 실패했습니다. 상태 코드: %s", url, resp.Status))
	}

	// Content-Type 헤더를 기반으로 인코딩을 UTF-8로 변환
	utf8Reader, err := charset.NewReader(newContextAwareReader(ctx, resp.Body), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrNetworkFailure, fmt.Sprintf("페이지(%s)의 인코딩 변환이 실패하였습니다.", url))
	}

	body, err := io.ReadAll(io.LimitReader(utf8Reader, defaultMaxResponseBodySize))
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrNetworkFailure, fmt.Sprintf("페이지(%s)의 응답 본문을 읽는 중 에러가 발생했습니다.", url))
	}

	return string(body), nil
}

// FetchJSON HTTP 요청을 수행하고 응답 본문(JSON)을 지정된 구조체(v)로 디코딩합니다.
func FetchJSON(ctx context.Context, fetcher Fetcher, method, url string, header map[string]string, body io.Reader, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrNetworkFailure, fmt.Sprintf("JSON 요청 생성에 실패했습니다. (URL: %s)", url))
	}
	for key, value := range header {
		req.Header.Set(key, value)
	}

	resp, err := fetcher.Do(req)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrNetworkFailure, fmt.Sprintf("JSON API(%s) 요청 전송 중 에러가 발생했습니다.", url))
	}
	defer resp.Body.Close() // 응답을 받은 즉시 defer 설정하여 메모리 누수 방지

	if resp.StatusCode != http.StatusOK {
		return apperrors.New(apperrors.ErrNetworkFailure, fmt.Sprintf("JSON API(%s) 요청이 실패했습니다. 상태 코드: %s", url, resp.Status))
	}

	// json.Decoder를 사용하여 스트림 방식으로 JSON 파싱 (메모리 효율적)
	limited := io.LimitReader(newContextAwareReader(ctx, resp.Body), defaultMaxResponseBodySize)
	if err = json.NewDecoder(limited).Decode(v); err != nil {
		return apperrors.Wrap(err, apperrors.ErrNetworkFailure, fmt.Sprintf("JSON API(%s) 응답의 JSON 변환이 실패하였습니다.", url))
	}

	return nil
}
