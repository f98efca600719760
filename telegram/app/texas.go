package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yangrq1018/holdem-bot/telegram"
	"github.com/yangrq1018/holdem-bot/telegram/bank"
	"github.com/yangrq1018/holdem-bot/telegram/holdem"
	"github.com/yangrq1018/holdem-bot/telegram/texas"
	tgbotapi "github.com/yangrq1018/telegram-bot-api/v5"
)

const histogramTimeout = 30 * time.Second

// holdemTable binds a game to the group chat it is played in. Any plain
// message in that chat is table talk handed to the game.
type holdemTable struct {
	chat      int64
	game      *holdem.Game
	directory *bank.Directory
	messages  *ChatMessenger
	logger    logrus.FieldLogger
}

// HoldemCommands returns /holdem, /bank, /hist and /closetable for the
// table played in the messenger's chat. Only admins may close the table.
func HoldemCommands(game *holdem.Game, directory *bank.Directory, messages *ChatMessenger, admins []int64) []telegram.Command {
	t := &holdemTable{
		chat:      messages.chat,
		game:      game,
		directory: directory,
		messages:  messages,
		logger:    telegram.GetModuleLogger("holdem-table"),
	}
	return []telegram.Command{
		t,
		t.bankCommand(),
		TexasHistogramCommand(),
		t.closeCommand(admins),
	}
}

func (t *holdemTable) ID() tgbotapi.BotCommand {
	return tgbotapi.BotCommand{
		Command:     "holdem",
		Description: "Texas hold'em table status and rules",
	}
}

func (t *holdemTable) Serve(bot *telegram.Bot) error {
	bot.Match(t).Subscribe(t.status)
	bot.UpdateEvent.Subscribe(t.input)
	bot.TeardownEvent.Subscribe(t.teardown)
	return nil
}

func (t *holdemTable) Init() {}

func (t *holdemTable) Authorize() telegram.Authorizer {
	return telegram.PolicyAllow
}

func (t *holdemTable) status(b *telegram.Bot, u tgbotapi.Update) error {
	text := tableStatus(t.game.Round(), t.game.Rules(), t.game.Players())
	_, err := b.Bot().Send(t.messages.message(u.Message.Chat.ID, text))
	return err
}

func (t *holdemTable) input(_ *telegram.Bot, u tgbotapi.Update) error {
	if u.Message.Chat.ID != t.chat || u.Message.From == nil || u.Message.Text == "" {
		return nil
	}
	id, name := int64(u.Message.From.ID), telegram.DisplayName(u.Message.From)
	t.directory.Register(id, name)
	// rejected commands are already announced to the table
	if err := t.game.HandleInput(id, name, u.Message.Text); err != nil {
		t.logger.WithError(err).WithField("player", id).Debug("table input")
	}
	return nil
}

// teardown cashes out the table, then flushes the queued messages and the
// bank before exit
func (t *holdemTable) teardown(_ *telegram.Bot, sig os.Signal) error {
	t.logger.Infof("closing table on %v", sig)
	if err := t.game.Close(); err != nil {
		t.logger.WithError(err).Error("close table")
	}
	t.messages.Close()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	return t.directory.Save(ctx)
}

func (t *holdemTable) bankCommand() telegram.Command {
	return SimpleCommand{
		name:        "bank",
		description: "show your yembuck balance",
		handle: func(b *telegram.Bot, u tgbotapi.Update) error {
			if u.Message.From == nil {
				return nil
			}
			id, name := int64(u.Message.From.ID), telegram.DisplayName(u.Message.From)
			t.directory.Register(id, name)
			balance, err := t.directory.Balance(id)
			if err != nil {
				return err
			}
			text := fmt.Sprintf("%s has %d yembucks in the bank. One chip = one yembuck.", name, balance)
			_, err = b.Bot().Send(t.messages.message(u.Message.Chat.ID, text))
			return err
		},
	}
}

func (t *holdemTable) closeCommand(admins []int64) telegram.Command {
	return SimpleCommand{
		name:        "closetable",
		description: "return all bets and cash every player out",
		auth:        telegram.SimpleAuth{WhiteList: admins, AdminOnly: true},
		handle: func(b *telegram.Bot, u tgbotapi.Update) error {
			closeErr := t.game.Close()
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err := t.directory.Save(ctx); err != nil {
				return err
			}
			if closeErr != nil {
				return closeErr
			}
			t.messages.Announce("The table is closed, every chip is back in the bank.")
			return nil
		},
	}
}

func tableStatus(round holdem.Round, rules holdem.Rules, players []holdem.Player) string {
	var sb strings.Builder
	sb.WriteString("<b>Texas Hold'em</b>\n")
	sb.WriteString(fmt.Sprintf("Round: %s\n", round))
	sb.WriteString(fmt.Sprintf("Buy-in %d, min bet %d, %d to %d players.\n",
		rules.BuyIn, rules.MinBet, rules.MinPlayers, rules.MaxPlayers))
	if len(players) == 0 {
		sb.WriteString("Nobody is seated.\n")
	} else {
		parts := make([]string, len(players))
		for i, p := range players {
			parts[i] = fmt.Sprintf("%s %d", p.Name, p.Stack)
		}
		sb.WriteString(fmt.Sprintf("Seated: %s\n", strings.Join(parts, ", ")))
	}
	sb.WriteString("Between hands type join, leave, start or bank. On your turn type fold, check, call or raise N.")
	return sb.String()
}

// splitCards accepts "As, Kd" as well as "As Kd". The long form
// "Spade 14, Heart 2" needs commas.
func splitCards(arguments string) []string {
	var parts []string
	if strings.Contains(arguments, ",") {
		parts = strings.Split(arguments, ",")
	} else {
		parts = strings.Fields(arguments)
	}
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func TexasHistogramCommand() telegram.Command {
	return SimpleCommand{
		name:        "hist",
		description: "texas hold'em utility: histogram. Example: /hist As Kd Th",
		handle: func(b *telegram.Bot, u tgbotapi.Update) error {
			known, err := texas.CardsFromStrings(splitCards(u.Message.CommandArguments()))
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), histogramTimeout)
			defer cancel()
			hist, err := texas.HistogramHandTypes(ctx, known)
			if errors.Is(err, context.DeadlineExceeded) {
				return fmt.Errorf("histogram of %s took too long, give more cards", known)
			}
			if err != nil {
				return err
			}
			b.ReplyTo(*u.Message, "%s\n%s", known, formatHistogram(hist))
			return nil
		},
	}
}

func formatHistogram(hist []texas.HandCardsProbability) string {
	sb := strings.Builder{}
	for _, h := range hist {
		sb.WriteString(fmt.Sprintf("%s: %.2f%%, acc: %.2f%%\n", h.HandClass, h.Prob*100, h.AccProb*100))
	}
	return sb.String()
}
