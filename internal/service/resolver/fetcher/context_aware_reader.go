package fetcher

import (
	"context"
	"io"
)

// contextAwareReader Context 취소를 감지하는 io.Reader 래퍼입니다.
//
// 매 Read 호출 시마다 Context의 상태를 확인하여 취소(Cancel) 또는
// 타임아웃(Timeout)이 발생한 경우 즉시 읽기 작업을 중단합니다.
// 해석 전략 경쟁에서 패배한 쪽의 응답 본문 읽기를 조기에 끊어내기 위해 사용됩니다.
type contextAwareReader struct {
	ctx context.Context
	r   io.Reader
}

func newContextAwareReader(ctx context.Context, r io.Reader) io.Reader {
	return &contextAwareReader{ctx: ctx, r: r}
}

// Read io.Reader 인터페이스를 구현하며, Context 상태를 확인한 후 기본 Reader에서 데이터를 읽습니다.
func (r *contextAwareReader) Read(p []byte) (n int, err error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}

	return r.r.Read(p)
}
