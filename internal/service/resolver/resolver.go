package resolver

import (
	"context"
	"time"

	"github.com/darkkaiser/taolink-server/internal/service/resolver/fetcher"
	log "github.com/sirupsen/logrus"
)

const defaultResolveTimeout = 15 * time.Second

// Settings 해석기의 외부 엔드포인트와 실행 정책입니다.
type Settings struct {
	// TaopassEndpoint 타오커우링 토큰 해석 API 주소
	TaopassEndpoint string

	// ShortlinkBaseURL 단축링크 리다이렉트 페이지의 기본 주소
	ShortlinkBaseURL string

	// ResolveTimeout 해석 전략 경쟁에 적용되는 전체 마감 시간 (0이면 기본값 15초)
	ResolveTimeout time.Duration
}

// Resolver 메시지 텍스트에 포함된 상품 코드를 정규화된 상품 정보로 해석합니다.
//
// 요청 간에 공유되는 가변 상태가 없으므로 여러 고루틴에서 동시에 사용해도 안전합니다.
type Resolver struct {
	fetcher fetcher.Fetcher

	taopassEndpoint  string
	shortlinkBaseURL string
	resolveTimeout   time.Duration
}

// New 새로운 Resolver 인스턴스를 생성합니다.
func New(f fetcher.Fetcher, settings Settings) *Resolver {
	timeout := settings.ResolveTimeout
	if timeout <= 0 {
		timeout = defaultResolveTimeout
	}

	return &Resolver{
		fetcher:          f,
		taopassEndpoint:  settings.TaopassEndpoint,
		shortlinkBaseURL: settings.ShortlinkBaseURL,
		resolveTimeout:   timeout,
	}
}

// raceOutcome 경쟁에 참여한 전략 하나의 최종 결과입니다.
type raceOutcome struct {
	product *ResolvedProduct
	err     error
}

// Resolve 메시지를 분류하여 해당되는 해석 전략들을 경쟁시키고, 가장 먼저 확정된 결과를 반환합니다.
//
// 동작 규칙:
//   - 어떤 패턴에도 일치하지 않으면 네트워크 요청 없이 즉시 (nil, nil)을 반환합니다.
//   - 성공이든 실패든 가장 먼저 확정된 전략의 결과가 전체 결과가 됩니다.
//     빠른 전략이 실패하면 느린 전략이 성공할 수 있었더라도 실패가 반환됩니다.
//   - 마감 시간 내에 어떤 전략도 확정되지 않으면 (nil, nil)을 반환합니다.
//
// 첫 결과가 확정되는 즉시 Context 취소를 통해 나머지 전략의 네트워크 요청을 중단시키므로,
// 패배한 전략이 백그라운드에서 무한정 남아 있지 않습니다.
func (r *Resolver) Resolve(ctx context.Context, message string) (*ResolvedProduct, error) {
	candidates := ClassifyMessage(message)
	if len(candidates) == 0 {
		return nil, nil
	}

	raceCtx, cancel := context.WithTimeout(ctx, r.resolveTimeout)
	defer cancel()

	// 버퍼 크기를 전략 수와 같게 하여, 패배한 전략도 블로킹 없이 종료되도록 한다.
	settleC := make(chan raceOutcome, len(candidates))

	for _, candidate := range candidates {
		go func(candidate CandidateCode) {
			var product *ResolvedProduct
			var err error

			switch candidate.Kind {
			case CandidateSymbolEmbedded:
				product, err = r.resolveTaopass(raceCtx, candidate.Token)
			case CandidateShortlink:
				product, err = r.resolveShortlink(raceCtx, candidate.Token)
			}

			settleC <- raceOutcome{product: product, err: err}
		}(candidate)
	}

	select {
	case outcome := <-settleC:
		if outcome.err != nil {
			log.Debugf("상품 코드 해석이 실패하였습니다: %v", outcome.err)
			return nil, outcome.err
		}
		return outcome.product, nil

	case <-raceCtx.Done():
		log.Debugf("마감 시간(%s) 내에 어떤 해석 전략도 완료되지 않았습니다.", r.resolveTimeout)
		return nil, nil
	}
}
