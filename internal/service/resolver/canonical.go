package resolver

import (
	"net/url"
	"regexp"
	"strings"
)

// URL 정규화에 사용되는 호스트 판별 패턴들입니다.
var (
	// mobileShopHostPattern 모바일 상점 페이지 호스트. 예: shop12345.m.taobao.com
	mobileShopHostPattern = regexp.MustCompile(`^shop(\d+)\.m\.taobao\.com$`)

	// desktopShopHostPattern 정규화 결과로 생성되는 데스크톱 상점 페이지 호스트
	desktopShopHostPattern = regexp.MustCompile(`^shop\d+\.taobao\.com$`)

	// mobileItemPathPattern 모바일 앱 링크 호스트의 상품 번호 경로. 예: /i612345678.htm
	mobileItemPathPattern = regexp.MustCompile(`^/i(\d+)\.htm`)

	// trackingParamPrefixPattern 이름의 접두어만으로 추적용임을 판별할 수 있는 쿼리 파라미터
	trackingParamPrefixPattern = regexp.MustCompile(`(?i)^(x_|wh_|uth_|source|bft|hm_)`)
)

const (
	couponRedirectHost = "taoquan.taobao.com"
	mobileSearchHost   = "s.m.taobao.com"
	mobileAppLinkHost  = "a.m.taobao.com"
)

// trackingParamNames 상품 식별과 무관한 것으로 알려진 추적용 쿼리 파라미터 이름 목록
var trackingParamNames = map[string]struct{}{
	"abtest":        {},
	"acm":           {},
	"alg_bts":       {},
	"algArgs":       {},
	"app":           {},
	"appid":         {},
	"cat":           {},
	"cps":           {},
	"from":          {},
	"impid":         {},
	"initiative_id": {},
	"lwfrom":        {},
	"lygClk":        {},
	"pos":           {},
	"ppath":         {},
	"pvid":          {},
	"rpos":          {},
	"scene":         {},
	"scm":           {},
	"share_crt_v":   {},
	"short_name":    {},
	"spm":           {},
	"ssid":          {},
	"stats_click":   {},
	"t_trace_id":    {},
	"trackInfo":     {},
	"uid":           {},
	"un":            {},
	"utparam":       {},
}

// CanonicalizeProductURL 다양한 형태의 상품 URL을 하나의 정규화된 절대 URL로 변환합니다.
//
// 적용 규칙(첫 번째로 일치하는 규칙만 적용):
//  1. 모바일 상점 페이지 -> 데스크톱 상점 호스트로 재작성
//  2. 쿠폰 리다이렉트 페이지 -> 'e' 파라미터만 유지
//  3. 모바일 검색 페이지 -> 데스크톱 검색 경로로 재작성 ('q' 파라미터만 유지)
//  4. 모바일 앱 링크의 상품 번호 경로 -> 상품 상세 페이지로 재작성
//  5. 'id' 파라미터를 가진 URL -> 호스트에 따라 타오바오/티몰 상품 상세 페이지로 재작성
//
// 어떤 규칙에도 해당하지 않으면 추적용 쿼리 파라미터만 제거한 URL을 반환합니다.
// 이 함수는 멱등합니다: 두 번 적용한 결과는 한 번 적용한 결과와 같습니다.
func CanonicalizeProductURL(raw string) string {
	// 스킴이 생략된 형태(item.taobao.com/...)도 절대 URL로 취급한다.
	normalized := raw
	if !strings.Contains(normalized, "://") {
		normalized = "https://" + normalized
	}

	u, err := url.Parse(normalized)
	if err != nil || u.Host == "" {
		return raw
	}

	query := u.Query()

	// 규칙 1: 모바일 상점 페이지
	if m := mobileShopHostPattern.FindStringSubmatch(u.Hostname()); m != nil {
		u.Host = "shop" + m[1] + ".taobao.com"
		u.RawQuery = stripTrackingParams(query)
		return u.String()
	}

	// 규칙 2: 쿠폰 리다이렉트 페이지
	if u.Hostname() == couponRedirectHost && u.Path == "/coupon/edetail" && query.Get("e") != "" {
		return "https://" + couponRedirectHost + "/coupon/edetail?" + url.Values{"e": {query.Get("e")}}.Encode()
	}

	// 규칙 3: 모바일 검색 페이지
	if u.Hostname() == mobileSearchHost && query.Get("q") != "" {
		return "https://s.taobao.com/search?" + url.Values{"q": {query.Get("q")}}.Encode()
	}

	// 규칙 4: 모바일 앱 링크의 상품 번호 경로
	if u.Hostname() == mobileAppLinkHost {
		if m := mobileItemPathPattern.FindStringSubmatch(u.Path); m != nil {
			return itemPageURL(u.Hostname(), m[1])
		}
	}

	// 규칙 5: 'id' 파라미터를 가진 URL
	// 상점 페이지는 'id' 파라미터가 있더라도 상품 상세 페이지가 아니므로 제외한다.
	if id := query.Get("id"); id != "" && !desktopShopHostPattern.MatchString(u.Hostname()) {
		return itemPageURL(u.Hostname(), id)
	}

	u.RawQuery = stripTrackingParams(query)
	return u.String()
}

// itemPageURL 호스트 이름에 따라 타오바오 또는 티몰의 상품 상세 페이지 URL을 생성합니다.
func itemPageURL(host, id string) string {
	platform := "item.taobao.com"
	if strings.Contains(host, "tmall") {
		platform = "detail.tmall.com"
	}
	return "https://" + platform + "/item.htm?" + url.Values{"id": {id}}.Encode()
}

// stripTrackingParams 추적용으로 알려진 쿼리 파라미터를 제거한 쿼리 문자열을 반환합니다.
// 이름이 고정 목록에 있거나 추적용 접두어 패턴에 일치하는 파라미터가 제거 대상입니다.
func stripTrackingParams(query url.Values) string {
	for name := range query {
		if _, ok := trackingParamNames[name]; ok {
			delete(query, name)
			continue
		}
		if trackingParamPrefixPattern.MatchString(name) {
			delete(query, name)
		}
	}
	return query.Encode()
}
