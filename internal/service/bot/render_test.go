package bot

import (
	"testing"
	"time"

	"github.com/darkkaiser/taolink-server/internal/service/resolver"
	apperrors "github.com/darkkaiser/taolink-server/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuildReply_ResolveFailure 해석 실패는 실패 사유를 회신해야 합니다.
func TestBuildReply_ResolveFailure(t *testing.T) {
	t.Parallel()

	reply, ok := buildReply(nil, apperrors.New(apperrors.ErrProductUnavailable, "삭제되었거나 조회할 수 없는 상품입니다. (타오패스 API 응답)"))
	require.True(t, ok)
	assert.Equal(t, "삭제되었거나 조회할 수 없는 상품입니다. (타오패스 API 응답)", reply.text)
	assert.Equal(t, "", reply.picURL)
}

// TestBuildReply_NoResult 결과 없음은 침묵으로 처리해야 합니다.
func TestBuildReply_NoResult(t *testing.T) {
	t.Parallel()

	_, ok := buildReply(nil, nil)
	assert.False(t, ok)
}

// TestBuildReply_NonProductPage 상품 상세 페이지가 아닌 결과는 URL만 회신해야 합니다.
func TestBuildReply_NonProductPage(t *testing.T) {
	t.Parallel()

	product := &resolver.ResolvedProduct{
		URL:    "https://shop12345.taobao.com/shop/view_shop.htm",
		Title:  "무시되어야 하는 제목",
		PicURL: "https://img.example.com/pic.jpg",
	}

	reply, ok := buildReply(product, nil)
	require.True(t, ok)
	assert.Equal(t, "https://shop12345.taobao.com/shop/view_shop.htm", reply.text)
	assert.Equal(t, "", reply.picURL)
}

// TestBuildReply_FullProduct 모든 항목이 채워진 상품 정보의 회신 형식을 검증합니다.
func TestBuildReply_FullProduct(t *testing.T) {
	t.Parallel()

	product := &resolver.ResolvedProduct{
		URL:          "https://item.taobao.com/item.htm?id=598765",
		Title:        "무선 기계식 키보드",
		PicURL:       "https://img.example.com/pic.jpg",
		PriceSummary: "10.00 CNY - 30.00 CNY",
		Expiry:       time.Date(2026, 9, 1, 4, 0, 0, 0, time.UTC),
	}

	reply, ok := buildReply(product, nil)
	require.True(t, ok)

	assert.Equal(t,
		"무선 기계식 키보드\n\n10.00 CNY - 30.00 CNY\n\nhttps://item.taobao.com/item.htm?id=598765\n\n유효기간: 2026-09-01 04:00 (UTC)",
		reply.text)
	assert.Equal(t, "https://img.example.com/pic.jpg", reply.picURL)
}

// TestBuildReply_MinimalProduct 선택 항목이 모두 비어 있으면 URL만 회신해야 합니다.
func TestBuildReply_MinimalProduct(t *testing.T) {
	t.Parallel()

	product := &resolver.ResolvedProduct{
		URL: "https://item.taobao.com/item.htm?id=42",
	}

	reply, ok := buildReply(product, nil)
	require.True(t, ok)
	assert.Equal(t, "https://item.taobao.com/item.htm?id=42", reply.text)
	assert.Equal(t, "", reply.picURL)
}

// TestBotCommands_SnakeCaseNames 명령어 이름이 스네이크 케이스로 생성되는지 검증합니다.
func TestBotCommands_SnakeCaseNames(t *testing.T) {
	t.Parallel()

	require.Len(t, botCommands, 2)
	assert.Equal(t, "help", botCommands[0].command)
	assert.Equal(t, "chat_id", botCommands[1].command)
}
