package resolver

import (
	"context"
	"regexp"
	"strings"

	"github.com/darkkaiser/taolink-server/internal/service/resolver/fetcher"
	apperrors "github.com/darkkaiser/taolink-server/pkg/errors"
	"github.com/tidwall/gjson"
)

// 단축링크 리다이렉트 페이지의 데이터 추출에 사용되는 패턴들입니다.
//
// m.tb.cn은 HTTP 리다이렉트 헤더가 아니라 페이지 본문의 자바스크립트 할당문에
// 실제 목적지 URL을 담아 반환합니다.
var (
	// shortlinkURLPattern 목적지 URL 할당문. 예: var url = 'https://...';
	shortlinkURLPattern = regexp.MustCompile(`url\s*=\s*'(.+)';`)

	// shortlinkExtraDataPattern 상품 제목/이미지가 담긴 부가 데이터 할당문 (없을 수 있음)
	shortlinkExtraDataPattern = regexp.MustCompile(`extraData\s*=\s*(\{.+\});`)
)

// resolveShortlink m.tb.cn 단축링크 코드를 리다이렉트 페이지 스크래핑으로 해석하는 전략입니다.
//
// 페이지에 목적지 URL 할당문이 없으면 해당 상품은 삭제된 것으로 간주합니다.
// 부가 데이터(extraData)는 선택 사항이며, 없더라도 에러가 아닙니다.
func (r *Resolver) resolveShortlink(ctx context.Context, code string) (*ResolvedProduct, error) {
	html, err := fetcher.FetchText(ctx, r.fetcher, strings.TrimSuffix(r.shortlinkBaseURL, "/")+"/"+code)
	if err != nil {
		return nil, err
	}

	m := shortlinkURLPattern.FindStringSubmatch(html)
	if m == nil {
		return nil, apperrors.New(apperrors.ErrProductUnavailable, "삭제되었거나 조회할 수 없는 상품입니다. (단축링크 페이지 해석)")
	}

	product := &ResolvedProduct{
		URL: CanonicalizeProductURL(m[1]),
	}

	// 부가 데이터가 존재하고 해석 가능한 경우에만 제목/이미지를 채운다.
	if m := shortlinkExtraDataPattern.FindStringSubmatch(html); m != nil {
		extraData := gjson.Parse(m[1])
		product.Title = extraData.Get("title").String()
		product.PicURL = extraData.Get("pic").String()
	}

	priceSummary, err := r.fetchPriceSummary(ctx, product.URL)
	if err != nil {
		return nil, err
	}
	product.PriceSummary = priceSummary

	return product, nil
}
