package app

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/sirupsen/logrus"
	"github.com/yangrq1018/holdem-bot/telegram"
	"github.com/yangrq1018/holdem-bot/telegram/common"
	tgbotapi "github.com/yangrq1018/telegram-bot-api/v5"
)

const outboxSize = 64

// sender is the part of the bot api the messenger needs
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type outgoing struct {
	chat   int64
	text   string
	photos []tgbotapi.FileBytes
}

// ChatMessenger posts table output to one group chat. Private notes go to
// the player's own chat, which only works once they have started the bot.
// Sends are queued and made by a single worker, so callers never wait on
// the network.
type ChatMessenger struct {
	api    sender
	chat   int64
	policy *bluemonday.Policy
	logger logrus.FieldLogger

	mu     sync.RWMutex
	closed bool
	outbox chan outgoing
	done   chan struct{}
}

func NewChatMessenger(b *telegram.Bot, chat int64) *ChatMessenger {
	return newChatMessenger(b.Bot(), chat)
}

func newChatMessenger(api sender, chat int64) *ChatMessenger {
	m := &ChatMessenger{
		api:    api,
		chat:   chat,
		policy: common.ChatPolicy(),
		logger: telegram.GetModuleLogger("messenger"),
		outbox: make(chan outgoing, outboxSize),
		done:   make(chan struct{}),
	}
	go m.run()
	return m
}

// message builds the HTML text message, player input quoted in it is
// escaped by the sanitizer
func (m *ChatMessenger) message(chat int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chat, m.policy.Sanitize(text))
	msg.ParseMode = "HTML"
	return msg
}

func (m *ChatMessenger) run() {
	defer close(m.done)
	for out := range m.outbox {
		m.send(out)
	}
}

func (m *ChatMessenger) send(out outgoing) {
	log := m.logger.WithField("chat", out.chat)
	if out.text != "" {
		if _, err := m.api.Send(m.message(out.chat, out.text)); err != nil {
			log.WithError(err).Error("send message")
		}
	}
	for _, photo := range out.photos {
		if _, err := m.api.Send(tgbotapi.NewPhotoUpload(out.chat, photo)); err != nil {
			log.WithError(err).Errorf("upload %s", photo.Name)
		}
	}
}

// enqueue reads attachments right away, the renderer may remove them
// before the worker gets to them
func (m *ChatMessenger) enqueue(chat int64, text string, attachments []string) {
	out := outgoing{chat: chat, text: text}
	for _, path := range attachments {
		data, err := os.ReadFile(path)
		if err != nil {
			m.logger.WithError(err).Errorf("read attachment %s", path)
			continue
		}
		out.photos = append(out.photos, tgbotapi.FileBytes{Name: filepath.Base(path), Bytes: data})
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		m.logger.WithField("chat", chat).Warnf("messenger closed, dropped %q", text)
		return
	}
	m.outbox <- out
}

func (m *ChatMessenger) Announce(text string, attachments ...string) {
	m.enqueue(m.chat, text, attachments)
}

func (m *ChatMessenger) Notify(player int64, text string, attachments ...string) {
	m.enqueue(player, text, attachments)
}

// Close stops taking messages and waits until the queued ones are sent
func (m *ChatMessenger) Close() {
	m.mu.Lock()
	if !m.closed {
		m.closed = true
		close(m.outbox)
	}
	m.mu.Unlock()
	<-m.done
}
