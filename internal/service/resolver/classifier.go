package resolver

import "regexp"

// 메시지 분류에 사용되는 패턴들입니다.
//
// 두 패턴은 서로 독립적이며 우선순위가 없습니다. 하나의 메시지가 두 패턴 모두에
// 일치할 수 있고, 이 경우 두 해석 전략이 동시에 시작됩니다.
var (
	// symbolCodePattern 기호 문자(통화 기호 등 공백/단어 문자가 아닌 문자)로 감싸진
	// 10~15자리 영숫자 토큰을 찾습니다. 예: "¥AbCdEfGhIj¥"
	symbolCodePattern = regexp.MustCompile(`[^\s\w](\w{10,15})[^\s\w]`)

	// shortlinkCodePattern m.tb.cn 단축링크의 5~15자리 코드(영숫자 또는 '.')를 찾습니다.
	// 예: "m.tb.cn/h.AbCdEfG"
	shortlinkCodePattern = regexp.MustCompile(`m\.tb\.cn/([0-9A-Za-z.]{5,15})`)
)

// ClassifyMessage 메시지 텍스트를 두 패턴과 대조하여 해석 대상 코드 목록을 반환합니다.
//
// 빈 텍스트이거나 어떤 패턴에도 일치하지 않으면 빈 목록이 반환되며,
// 이 경우 어떠한 네트워크 요청도 발생하지 않아야 합니다.
func ClassifyMessage(text string) []CandidateCode {
	if text == "" {
		return nil
	}

	var candidates []CandidateCode

	if m := symbolCodePattern.FindStringSubmatch(text); m != nil {
		candidates = append(candidates, CandidateCode{Kind: CandidateSymbolEmbedded, Token: m[1]})
	}
	if m := shortlinkCodePattern.FindStringSubmatch(text); m != nil {
		candidates = append(candidates, CandidateCode{Kind: CandidateShortlink, Token: m[1]})
	}

	return candidates
}
