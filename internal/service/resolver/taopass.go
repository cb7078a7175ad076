package resolver

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/darkkaiser/taolink-server/internal/service/resolver/fetcher"
	apperrors "github.com/darkkaiser/taolink-server/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	// expireTimeLayout 타오패스 API가 반환하는 유효기간 문자열의 형식
	expireTimeLayout = "2006-01-02 15:04:05"

	// expireTimeOffset 업스트림 유효기간의 시간대 보정값입니다.
	// API는 원격지 시간대(UTC+8) 기준의 벽시계 시각을 반환하는 것으로 가정합니다.
	expireTimeOffset = -8 * time.Hour
)

// taopassAPIResponse 타오패스 API의 응답 형식
type taopassAPIResponse struct {
	Code int `json:"code"`
	Data struct {
		URL     string `json:"url"`
		Content string `json:"content"`
		PicURL  string `json:"picUrl"`
		Expire  string `json:"expire"`
	} `json:"data"`
}

// resolveTaopass 기호로 감싸진 토큰을 타오패스 API로 해석하는 전략입니다.
//
// API가 0이 아닌 상태 코드를 반환하면 해당 상품은 삭제된 것으로 간주합니다.
// 성공 시 발견된 URL을 정규화하고, 상품 페이지 가격 조회까지 수행합니다.
func (r *Resolver) resolveTaopass(ctx context.Context, token string) (*ResolvedProduct, error) {
	form := url.Values{"content": {token}}

	var payload taopassAPIResponse
	if err := fetcher.FetchJSON(ctx, r.fetcher, http.MethodPost, r.taopassEndpoint,
		map[string]string{"Content-Type": "application/x-www-form-urlencoded"},
		strings.NewReader(form.Encode()), &payload); err != nil {
		return nil, err
	}

	if payload.Code != 0 {
		return nil, apperrors.New(apperrors.ErrProductUnavailable, "삭제되었거나 조회할 수 없는 상품입니다. (타오패스 API 응답)")
	}

	product := &ResolvedProduct{
		URL:    CanonicalizeProductURL(payload.Data.URL),
		Title:  payload.Data.Content,
		PicURL: payload.Data.PicURL,
	}

	// 유효기간 문자열이 비정상이면 유효기간 미상으로 처리한다.
	if payload.Data.Expire != "" {
		if expire, err := time.Parse(expireTimeLayout, payload.Data.Expire); err == nil {
			product.Expiry = expire.UTC().Add(expireTimeOffset)
		} else {
			log.Debugf("타오패스 API의 유효기간(%s) 해석이 실패하였습니다: %v", payload.Data.Expire, err)
		}
	}

	priceSummary, err := r.fetchPriceSummary(ctx, product.URL)
	if err != nil {
		return nil, err
	}
	product.PriceSummary = priceSummary

	return product, nil
}

// fetchPriceSummary 정규화된 상품 URL의 페이지를 가져와 가격 요약을 추출합니다.
// 페이지 요청 실패는 전략 전체의 실패로 전파되지만, 가격 템플릿 불일치는 빈 요약으로 처리됩니다.
func (r *Resolver) fetchPriceSummary(ctx context.Context, productURL string) (string, error) {
	html, err := fetcher.FetchText(ctx, r.fetcher, productURL)
	if err != nil {
		return "", err
	}

	summary := ScanPriceSummary(html)
	if summary == "" {
		log.Debugf("상품 페이지(%s)에서 알려진 가격 템플릿을 찾지 못했습니다.", productURL)
	}
	return summary, nil
}
