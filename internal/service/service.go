package service

import (
	"context"
	"sync"
)

// Service 애플리케이션 생명주기에 따라 시작/종료되는 서비스의 공통 인터페이스입니다.
//
// Run은 서비스의 백그라운드 작업을 시작한 후 즉시 반환하며,
// serviceStopCtx가 취소되면 작업을 정리하고 serviceStopWaiter에 완료를 알려야 합니다.
type Service interface {
	Run(serviceStopCtx context.Context, serviceStopWaiter *sync.WaitGroup) error
}
