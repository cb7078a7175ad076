package bot

import (
	"fmt"
	"strings"

	"github.com/darkkaiser/taolink-server/internal/service/resolver"
	apperrors "github.com/darkkaiser/taolink-server/pkg/errors"
)

// replyContent 해석 결과로부터 생성된 회신 내용입니다.
type replyContent struct {
	text   string
	picURL string
}

// buildReply 해석 결과를 회신 내용으로 변환합니다.
//
// 반환값 ok가 false이면 회신할 내용이 없다는 의미입니다.
// (후보 없음 또는 마감 시간 초과는 침묵으로 처리)
func buildReply(product *resolver.ResolvedProduct, err error) (replyContent, bool) {
	if err != nil {
		return replyContent{text: apperrors.UserMessage(err)}, true
	}
	if product == nil {
		return replyContent{}, false
	}

	// 상품 상세 페이지가 아닌 결과(상점/검색 페이지 등)는 부가 정보 없이 URL만 회신한다.
	if !product.IsProductPage() {
		return replyContent{text: product.URL}, true
	}

	var sections []string
	if product.Title != "" {
		sections = append(sections, product.Title)
	}
	if product.PriceSummary != "" {
		sections = append(sections, product.PriceSummary)
	}
	sections = append(sections, product.URL)
	if !product.Expiry.IsZero() {
		sections = append(sections, fmt.Sprintf("유효기간: %s (UTC)", product.Expiry.Format("2006-01-02 15:04")))
	}

	return replyContent{
		text:   strings.Join(sections, "\n\n"),
		picURL: product.PicURL,
	}, true
}

// renderChatID /chat_id 명령어의 회신 내용을 생성합니다.
func renderChatID(chatID int64) string {
	return fmt.Sprintf("현재 채팅의 ID는 %d 입니다.", chatID)
}
