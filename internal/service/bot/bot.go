package bot

import (
	"context"
	"sync"

	"github.com/darkkaiser/taolink-server/internal/config"
	"github.com/darkkaiser/taolink-server/internal/service/resolver"
	apperrors "github.com/darkkaiser/taolink-server/pkg/errors"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/iancoleman/strcase"
	log "github.com/sirupsen/logrus"
)

const (
	telegramBotCommandInitialCharacter = "/"

	// updateTimeoutSeconds 텔레그램 롱 폴링의 대기 시간 (초)
	updateTimeoutSeconds = 60
)

// botCommand 텔레그램 봇이 지원하는 명령어 정의
type botCommand struct {
	command     string
	description string
}

// botCommands 지원 명령어 목록. 명령어 이름은 식별자의 스네이크 케이스 변환으로 생성됩니다.
var botCommands = []botCommand{
	{command: strcase.ToSnake("Help"), description: "도움말을 표시합니다."},
	{command: strcase.ToSnake("ChatID"), description: "현재 채팅의 ID를 표시합니다."},
}

// Service 텔레그램 메시지를 수신하여 상품 코드 해석 결과를 회신하는 서비스입니다.
type Service struct {
	config *config.AppConfig

	bot      *tgbotapi.BotAPI
	resolver *resolver.Resolver

	running   bool
	runningMu sync.Mutex
}

// NewService 새로운 텔레그램 봇 서비스를 생성합니다.
func NewService(config *config.AppConfig, r *resolver.Resolver) *Service {
	return &Service{
		config:   config,
		resolver: r,
	}
}

// Run 텔레그램 봇을 초기화하고 메시지 수신 루프를 시작합니다.
func (s *Service) Run(serviceStopCtx context.Context, serviceStopWaiter *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if s.running {
		return apperrors.New(apperrors.ErrInternal, "텔레그램 봇 서비스가 이미 실행 중입니다")
	}

	bot, err := tgbotapi.NewBotAPI(s.config.Telegram.BotToken)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrInternal, "텔레그램 봇 생성이 실패하였습니다")
	}
	bot.Debug = s.config.Debug
	s.bot = bot

	s.running = true

	serviceStopWaiter.Add(1)
	go s.run(serviceStopCtx, serviceStopWaiter)

	log.Infof("텔레그램 봇 서비스가 시작되었습니다. (Authorized on account %s)", bot.Self.UserName)

	return nil
}

func (s *Service) run(serviceStopCtx context.Context, serviceStopWaiter *sync.WaitGroup) {
	defer serviceStopWaiter.Done()

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = updateTimeoutSeconds

	updateC := s.bot.GetUpdatesChan(updateConfig)

LOOP:
	for {
		select {
		case update := <-updateC:
			s.handleUpdate(serviceStopCtx, serviceStopWaiter, update)

		case <-serviceStopCtx.Done():
			s.bot.StopReceivingUpdates()

			// 진행 중인 회신 고루틴이 아직 봇 핸들을 사용할 수 있으므로 핸들은 유지한다.
			s.runningMu.Lock()
			s.running = false
			s.runningMu.Unlock()

			log.Debug("텔레그램 봇 서비스가 중지되었습니다.")

			break LOOP
		}
	}
}

// updateAction 수신된 업데이트의 처리 방식입니다.
type updateAction int

const (
	actionIgnore updateAction = iota // 처리 대상이 아닌 업데이트
	actionCommand                    // 명령어 처리
	actionResolve                    // 상품 코드 해석 요청
)

// classifyUpdate 수신된 업데이트의 처리 방식을 결정합니다.
//
// 메시지가 아닌 업데이트, 등록되지 않은 채팅의 메시지, 본문이 없는 메시지는 무시됩니다.
// 해석 요청인 경우 본문 텍스트(이미지 메시지는 캡션)를 함께 반환합니다.
func classifyUpdate(update tgbotapi.Update, allowedChatID int64) (updateAction, string) {
	// 메시지가 아닌 업데이트는 무시한다.
	if update.Message == nil {
		return actionIgnore, ""
	}

	// 등록되지 않은 ChatID인 경우는 무시한다.
	if update.Message.Chat.ID != allowedChatID {
		log.Debugf("등록되지 않은 채팅(ID:%d)의 메시지를 무시합니다.", update.Message.Chat.ID)
		return actionIgnore, ""
	}

	if update.Message.IsCommand() {
		return actionCommand, ""
	}

	// 이미지 메시지는 캡션을 본문으로 사용한다.
	text := update.Message.Text
	if text == "" {
		text = update.Message.Caption
	}
	if text == "" {
		return actionIgnore, ""
	}

	return actionResolve, text
}

// handleUpdate 수신된 업데이트를 명령어 또는 상품 코드 해석 요청으로 분기 처리합니다.
func (s *Service) handleUpdate(ctx context.Context, serviceStopWaiter *sync.WaitGroup, update tgbotapi.Update) {
	action, text := classifyUpdate(update, s.config.Telegram.ChatID)

	switch action {
	case actionCommand:
		s.handleCommand(update.Message)

	case actionResolve:
		// 해석은 외부 요청을 동반하므로, 수신 루프를 막지 않도록 별도 고루틴에서 수행한다.
		// 서비스 종료 시 진행 중인 회신이 완료될 때까지 대기하도록 WaitGroup에 등록한다.
		serviceStopWaiter.Add(1)
		go func() {
			defer serviceStopWaiter.Done()
			s.resolveAndReply(ctx, update.Message, text)
		}()
	}
}

func (s *Service) handleCommand(message *tgbotapi.Message) {
	switch message.Command() {
	case "help":
		m := "입력 가능한 명령어는 아래와 같습니다:\n"
		for _, botCommand := range botCommands {
			m += "\n" + telegramBotCommandInitialCharacter + botCommand.command + " : " + botCommand.description
		}
		s.reply(message, m)

	case "chat_id":
		s.reply(message, renderChatID(message.Chat.ID))

	default:
		log.Debugf("지원하지 않는 명령어(%s)입니다.", message.Command())
	}
}

// resolveAndReply 메시지 본문의 상품 코드를 해석하고 결과를 회신합니다.
//
// 해석 결과 없음(후보 없음 또는 마감 시간 초과)은 침묵으로 처리하고,
// 해석 실패는 실패 사유를 회신하며, 성공 시 상품 정보를 회신합니다.
func (s *Service) resolveAndReply(ctx context.Context, message *tgbotapi.Message, text string) {
	product, err := s.resolver.Resolve(ctx, text)

	reply, ok := buildReply(product, err)
	if !ok {
		return
	}

	if reply.picURL != "" {
		photo := tgbotapi.NewPhoto(message.Chat.ID, tgbotapi.FileURL(reply.picURL))
		photo.Caption = reply.text
		photo.ReplyToMessageID = message.MessageID

		if _, err := s.bot.Send(photo); err == nil {
			return
		}
		// 이미지 전송이 실패한 경우(만료된 이미지 URL 등), 텍스트 회신으로 대체한다.
		log.Warnf("이미지 회신 전송이 실패하여 텍스트 회신으로 대체합니다. (picUrl:%s)", reply.picURL)
	}

	s.reply(message, reply.text)
}

func (s *Service) reply(message *tgbotapi.Message, text string) {
	m := tgbotapi.NewMessage(message.Chat.ID, text)
	m.ReplyToMessageID = message.MessageID

	if _, err := s.bot.Send(m); err != nil {
		log.Errorf("알림메시지 발송이 실패하였습니다.(error:%s)", err)
	}
}
