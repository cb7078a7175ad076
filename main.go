package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	"github.com/darkkaiser/taolink-server/internal/config"
	"github.com/darkkaiser/taolink-server/internal/service"
	"github.com/darkkaiser/taolink-server/internal/service/bot"
	"github.com/darkkaiser/taolink-server/internal/service/resolver"
	"github.com/darkkaiser/taolink-server/internal/service/resolver/fetcher"
	applog "github.com/darkkaiser/taolink-server/pkg/log"
	log "github.com/sirupsen/logrus"
)

// 빌드 정보 변수 (Dockerfile의 ldflags로 주입됨)
var (
	Version     = "dev"     // Git 커밋 해시
	BuildDate   = "unknown" // 빌드 날짜
	BuildNumber = "0"       // 빌드 번호
)

const (
	banner = `
  _____                _  _         _      ____
 |_   _|__ _   ___   _| |(_) _ __  | | __ / ___|   ___  _ __ __   __  ___  _ __
   | | / _' | / _ \ | | || || '_ \ | |/ / \___ \  / _ \| '__|\ \ / / / _ \| '__|
   | || (_| || (_) || |_| || | | | |   <   ___) ||  __/| |    \ V / |  __/| |
   |_| \__,_| \___/  \___/ |_|_| |_|_|\_\ |____/  \___||_|     \_/   \___||_|

                                                        developed by DarkKaiser
--------------------------------------------------------------------------------
`
)

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU()) // 모든 CPU 사용

	// 환경설정 정보를 읽어들인다.
	configFilename := config.DefaultFilename
	if len(os.Args) >= 2 {
		configFilename = os.Args[1]
	}

	appConfig, err := config.Load(configFilename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "환경설정 정보 로드가 실패하였습니다: %v\n", err)
		os.Exit(1)
	}

	// 로그를 초기화한다.
	logOptions := applog.NewProductionOptions(config.AppName)
	if appConfig.Debug {
		logOptions = applog.NewDevelopmentOptions(config.AppName)
	}
	if appConfig.Log.Dir != "" {
		logOptions.Dir = appConfig.Log.Dir
	}

	logCloser, err := applog.Setup(logOptions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "로그 초기화가 실패하였습니다: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logCloser.Close()
	}()

	// 아스키아트 출력(https://ko.rakko.tools/tools/68/, 폰트:standard)
	fmt.Print(banner)

	// 빌드 정보 출력
	log.Infof("빌드 정보 - 버전: %s, 빌드 날짜: %s, 빌드 번호: %s", Version, BuildDate, BuildNumber)
	log.Infof("Go 버전: %s, OS/Arch: %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)

	// 서비스를 생성하고 초기화한다.
	httpFetcher := fetcher.NewHTTPFetcher(appConfig.Resolver.UserAgent)
	productResolver := resolver.New(httpFetcher, resolver.Settings{
		TaopassEndpoint:  appConfig.Resolver.TaopassEndpoint,
		ShortlinkBaseURL: appConfig.Resolver.ShortlinkBaseURL,
		ResolveTimeout:   appConfig.Resolver.ResolveTimeout,
	})
	botService := bot.NewService(appConfig, productResolver)

	// Set up cancellation context and waitgroup
	serviceStopCtx, cancel := context.WithCancel(context.Background())
	serviceStopWaiter := &sync.WaitGroup{}

	// 서비스를 시작한다.
	services := []service.Service{botService}
	for _, s := range services {
		if err := s.Run(serviceStopCtx, serviceStopWaiter); err != nil {
			log.Errorf("서비스 시작 실패: %v", err)
			cancel() // 다른 서비스들도 종료
			serviceStopWaiter.Wait()
			log.Fatal("서비스 초기화 실패로 프로그램을 종료합니다")
		}
	}

	// Handle sigterm and await termC signal
	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)

	<-termC // Blocks here until interrupted

	// Handle shutdown
	log.Info("Shutdown signal received")
	cancel()                 // Signal cancellation to context.Context
	serviceStopWaiter.Wait() // Block here until are workers are done
}
