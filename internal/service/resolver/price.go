package resolver

import (
	"fmt"
	"regexp"

	"github.com/tidwall/gjson"
)

// 상품 페이지의 가격 정보 추출에 사용되는 패턴들입니다.
//
// 타오바오/티몰 상품 페이지는 템플릿에 따라 가격 정보를 서로 다른 형태의
// 인라인 스크립트 데이터로 노출하므로, 알려진 세 가지 형태를 우선순위에 따라 순서대로 시도합니다.
var (
	// skuMapPattern 타오바오 상품 페이지의 인라인 skuMap 객체 리터럴
	skuMapPattern = regexp.MustCompile(`skuMap\s*:\s*(\{.+\})\s*,`)

	// currentPricePattern 타오바오 상품 페이지의 current_price 숨김 입력 필드
	currentPricePattern = regexp.MustCompile(`name="current_price"\s*value\s*=\s*"(\d+(?:\.\d+))"`)

	// tshopSetupPattern 티몰 상품 페이지의 TShop.Setup 호출 인자
	tshopSetupPattern = regexp.MustCompile(`TShop\.Setup\(\s*(\{.+\})\s*\);`)
)

// ScanPriceSummary 상품 페이지의 원본 HTML에서 가격 요약 문자열을 추출합니다.
//
// 알려진 어떤 템플릿에도 일치하지 않으면 빈 문자열을 반환하며, 이는 에러가 아닌
// 정상적인 결과입니다(페이지 템플릿은 예고 없이 변경됩니다).
func ScanPriceSummary(html string) string {
	return formatPriceSummary(extractPrices(html))
}

// extractPrices 세 가지 페이지 템플릿을 우선순위에 따라 시도하여, 문서에 나타난 순서대로 가격 값을 수집합니다.
func extractPrices(html string) []float64 {
	// 1. 인라인 skuMap 객체 리터럴 (item.taobao.com)
	if m := skuMapPattern.FindStringSubmatch(html); m != nil {
		return collectSkuPrices(gjson.Parse(m[1]))
	}

	// 2. current_price 숨김 입력 필드 (item.taobao.com)
	if m := currentPricePattern.FindStringSubmatch(html); m != nil {
		return []float64{gjson.Parse(m[1]).Float()}
	}

	// 3. TShop.Setup 호출 인자 (detail.tmall.com)
	if m := tshopSetupPattern.FindStringSubmatch(html); m != nil {
		setup := gjson.Parse(m[1])
		if skuMap := setup.Get("valItemInfo.skuMap"); skuMap.Exists() {
			return collectSkuPrices(skuMap)
		}
		if defaultPrice := setup.Get("detail.defaultItemPrice"); defaultPrice.Exists() {
			return []float64{defaultPrice.Float()}
		}
	}

	return nil
}

// collectSkuPrices SKU 식별자 -> 속성 레코드 매핑에서 price 필드를 문서 순서대로 수집합니다.
func collectSkuPrices(skuMap gjson.Result) []float64 {
	var values []float64
	skuMap.ForEach(func(_, sku gjson.Result) bool {
		values = append(values, sku.Get("price").Float())
		return true
	})
	return values
}

// formatPriceSummary 수집된 가격 값들을 요약 문자열로 변환합니다.
//
// 중복 제거 후 서로 다른 값의 개수에 따라 형식이 달라집니다:
//   - 1개: "{v} CNY"
//   - 2개: "{min} CNY - {max} CNY"
//   - 3개 이상: "{first} CNY ({min} CNY - {max} CNY)"
//
// 3개 이상인 경우 괄호 앞의 기준 가격은 최솟값이 아니라 문서에서 가장 먼저
// 추출된 값입니다. 이 비대칭은 의도된 동작입니다.
func formatPriceSummary(values []float64) string {
	values = dedupPrices(values)
	if len(values) == 0 {
		return ""
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	switch len(values) {
	case 1:
		return fmt.Sprintf("%.2f CNY", values[0])
	case 2:
		return fmt.Sprintf("%.2f CNY - %.2f CNY", min, max)
	default:
		return fmt.Sprintf("%.2f CNY (%.2f CNY - %.2f CNY)", values[0], min, max)
	}
}

// dedupPrices 최초 등장 순서를 유지하면서 중복된 가격 값을 제거합니다.
func dedupPrices(values []float64) []float64 {
	seen := make(map[float64]struct{}, len(values))
	var uniq []float64
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		uniq = append(uniq, v)
	}
	return uniq
}
