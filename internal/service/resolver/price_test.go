package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestScanPriceSummary_SkuMap 인라인 skuMap 객체 리터럴에서의 가격 추출을 검증합니다.
func TestScanPriceSummary_SkuMap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "단일 가격",
			html: `<script>var g_config = { skuMap : {";1627207:28320;":{"price":"35.50","stock":"12"}} , other: 1};</script>`,
			want: "35.50 CNY",
		},
		{
			name: "서로 다른 두 가격은 범위로 표시",
			html: `<script>skuMap : {"a":{"price":"30.00"},"b":{"price":"10.00"}} ,</script>`,
			want: "10.00 CNY - 30.00 CNY",
		},
		{
			name: "세 가격 이상은 첫 번째 추출 값이 기준 가격",
			html: `<script>skuMap : {"a":{"price":"10.00"},"b":{"price":"30.00"},"c":{"price":"20.00"}} ,</script>`,
			want: "10.00 CNY (10.00 CNY - 30.00 CNY)",
		},
		{
			name: "기준 가격은 최솟값이 아니라 문서 순서상 첫 값",
			html: `<script>skuMap : {"a":{"price":"20.00"},"b":{"price":"30.00"},"c":{"price":"10.00"}} ,</script>`,
			want: "20.00 CNY (10.00 CNY - 30.00 CNY)",
		},
		{
			name: "중복 가격은 제거 후 포맷 결정",
			html: `<script>skuMap : {"a":{"price":"15.00"},"b":{"price":"15.00"},"c":{"price":"15.00"}} ,</script>`,
			want: "15.00 CNY",
		},
		{
			name: "소수점 둘째 자리까지 표시",
			html: `<script>skuMap : {"a":{"price":"9.9"}} ,</script>`,
			want: "9.90 CNY",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ScanPriceSummary(tt.html))
		})
	}
}

// TestScanPriceSummary_CurrentPrice current_price 숨김 입력 필드에서의 가격 추출을 검증합니다.
func TestScanPriceSummary_CurrentPrice(t *testing.T) {
	t.Parallel()

	html := `<input type="hidden" name="current_price" value = "128.00">`
	assert.Equal(t, "128.00 CNY", ScanPriceSummary(html))
}

// TestScanPriceSummary_TShopSetup 티몰 TShop.Setup 데이터에서의 가격 추출을 검증합니다.
func TestScanPriceSummary_TShopSetup(t *testing.T) {
	t.Parallel()

	t.Run("valItemInfo.skuMap이 있는 경우", func(t *testing.T) {
		t.Parallel()

		html := `<script>TShop.Setup( {"valItemInfo":{"skuMap":{"a":{"price":"55.00"},"b":{"price":"66.00"}}}} );</script>`
		assert.Equal(t, "55.00 CNY - 66.00 CNY", ScanPriceSummary(html))
	})

	t.Run("skuMap이 없으면 detail.defaultItemPrice 사용", func(t *testing.T) {
		t.Parallel()

		html := `<script>TShop.Setup( {"detail":{"defaultItemPrice":"88.80"}} );</script>`
		assert.Equal(t, "88.80 CNY", ScanPriceSummary(html))
	})
}

// TestScanPriceSummary_PriorityOrder 템플릿 우선순위가 지켜지는지 검증합니다.
// skuMap이 존재하면 다른 템플릿보다 우선 적용되어야 합니다.
func TestScanPriceSummary_PriorityOrder(t *testing.T) {
	t.Parallel()

	html := `<script>skuMap : {"a":{"price":"10.00"}} ,</script>
<input type="hidden" name="current_price" value = "999.00">`
	assert.Equal(t, "10.00 CNY", ScanPriceSummary(html))
}

// TestScanPriceSummary_NoMatch 알려진 템플릿이 없는 페이지는 빈 요약을 반환해야 합니다. (에러 아님)
func TestScanPriceSummary_NoMatch(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", ScanPriceSummary("<html><body>404 Not Found</body></html>"))
	assert.Equal(t, "", ScanPriceSummary(""))
}

// TestFormatPriceSummary_RawValues 추출 순서가 보존된 원시 값 목록에 대한 포맷 규칙을 검증합니다.
func TestFormatPriceSummary_RawValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []float64
		want   string
	}{
		{name: "빈 목록", values: nil, want: ""},
		{name: "1개", values: []float64{12.5}, want: "12.50 CNY"},
		{name: "2개", values: []float64{30, 10}, want: "10.00 CNY - 30.00 CNY"},
		{name: "3개 이상", values: []float64{10, 30, 20}, want: "10.00 CNY (10.00 CNY - 30.00 CNY)"},
		{name: "중복 제거 후 2개", values: []float64{30, 30, 10}, want: "10.00 CNY - 30.00 CNY"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, formatPriceSummary(tt.values))
		})
	}
}
