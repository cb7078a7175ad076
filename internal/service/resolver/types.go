package resolver

import (
	"strings"
	"time"
)

// CandidateKind 메시지에서 발견된 상품 코드의 종류를 나타냅니다.
type CandidateKind int

const (
	// CandidateSymbolEmbedded 기호 문자로 감싸진 타오커우링 토큰 (타오패스 API로 해석)
	CandidateSymbolEmbedded CandidateKind = iota

	// CandidateShortlink m.tb.cn 단축링크 코드 (리다이렉트 페이지 스크래핑으로 해석)
	CandidateShortlink
)

func (k CandidateKind) String() string {
	switch k {
	case CandidateSymbolEmbedded:
		return "SymbolEmbedded"
	case CandidateShortlink:
		return "Shortlink"
	default:
		return "Unknown"
	}
}

// CandidateCode 분류기가 메시지에서 추출한 해석 대상 코드입니다.
// 하나의 메시지가 두 종류의 코드를 동시에 포함할 수 있으며, 각 코드는 독립적인 전략으로 해석됩니다.
type CandidateCode struct {
	Kind  CandidateKind
	Token string
}

// ResolvedProduct 해석이 완료된 상품 정보입니다.
//
// URL은 항상 절대 경로의 정규화된 형태이며, Title/PicURL/PriceSummary는
// 업스트림 응답에 따라 비어 있을 수 있습니다. Expiry의 제로값은 유효기간 미상을 의미합니다.
type ResolvedProduct struct {
	URL          string
	Title        string
	PicURL       string
	PriceSummary string
	Expiry       time.Time
}

// productPageHosts 상품 상세 페이지로 인정되는 정규 호스트 목록
var productPageHosts = []string{
	"https://item.taobao.com/",
	"https://detail.tmall.com/",
}

// IsProductPage 정규화된 URL이 상품 상세 페이지를 가리키는지 여부를 반환합니다.
// 상세 페이지가 아닌 결과(상점 페이지, 검색 페이지 등)는 부가 정보 없이 URL만 전달됩니다.
func (p *ResolvedProduct) IsProductPage() bool {
	for _, host := range productPageHosts {
		if strings.HasPrefix(p.URL, host) {
			return true
		}
	}
	return false
}
