package main

import (
	"context"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"github.com/yangrq1018/holdem-bot/telegram"
	"github.com/yangrq1018/holdem-bot/telegram/app"
	"github.com/yangrq1018/holdem-bot/telegram/bank"
	"github.com/yangrq1018/holdem-bot/telegram/holdem"
	"github.com/yangrq1018/holdem-bot/telegram/render"
)

const defaultSaveEvery = 5 * time.Minute

var (
	GitCommit string
	BuildDate string
	Version   string
)

type config struct {
	token    string
	chat     int64
	admins   []int64
	noProxy  bool
	urlProxy string
	debug    bool

	bankFile       string
	bucket         string
	object         string
	initialDeposit int

	picsDir string
	outDir  string
	rules   holdem.Rules
}

func (c *config) store() bank.Store {
	if c.bucket != "" {
		return bank.CloudStore{Bucket: c.bucket, Object: c.object}
	}
	return bank.FileStore{Path: c.bankFile}
}

func (c *config) newBot() (*telegram.Bot, error) {
	configs := []telegram.BotWrapperConfig{
		telegram.SetHelp("Yem deals Texas hold'em in this chat. Type /holdem to see the table."),
		telegram.SetHandleFromNow(true),
		telegram.SetVersion(fmt.Sprintf("%s (%s, built %s)", Version, GitCommit, BuildDate)),
	}
	if c.urlProxy != "" {
		return telegram.NewMessageBotWithURLProxy(c.token, c.urlProxy, configs...)
	}
	return telegram.NewMessageBot(c.token, configs...)
}

// YemBot wires the table, the bank and the renderer to a bot listening
// in the configured chat
func YemBot(ctx context.Context, c *config) (*telegram.Bot, *bank.Directory, error) {
	b, err := c.newBot()
	if err != nil {
		return nil, nil, err
	}
	if c.noProxy {
		telegram.SetNoProxy()(b)
	}
	if c.debug {
		b.SetDebug(true)
		log.SetLevel(log.DebugLevel)
	}

	directory := bank.NewDirectory(c.store(), c.initialDeposit)
	if err = directory.Load(ctx); err != nil {
		return nil, nil, fmt.Errorf("load bank: %w", err)
	}
	messages := app.NewChatMessenger(b, c.chat)
	game := holdem.NewGame(c.rules, messages, directory, render.New(c.picsDir, c.outDir),
		holdem.WithDebug(c.debug),
		holdem.WithLogger(telegram.GetModuleLogger("holdem").WithField("chat", c.chat)),
	)
	commands := append(app.HoldemCommands(game, directory, messages, c.admins), app.HostCommand(c.admins))
	if err = b.RegisterCommand(commands...); err != nil {
		return nil, nil, err
	}
	return b, directory, nil
}

func main() {
	var c config
	rules := holdem.DefaultRules()

	cliApp := cli.NewApp()
	cliApp.Name = "Yem bot"
	cliApp.Usage = "Texas hold'em dealer for a Telegram group"
	cliApp.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:        "token",
			EnvVars:     []string{telegram.TokenEnv},
			Destination: &c.token,
			Required:    true,
		},
		&cli.Int64Flag{
			Name:        "chat",
			Usage:       "id of the group chat the table plays in",
			EnvVars:     []string{"TL_YEM_CHAT"},
			Destination: &c.chat,
			Required:    true,
		},
		&cli.Int64SliceFlag{
			Name:    "admin",
			Usage:   "user id allowed to /closetable, repeatable",
			EnvVars: []string{"TL_YEM_ADMINS"},
		},
		&cli.BoolFlag{
			Name:        "no-proxy",
			Destination: &c.noProxy,
		},
		&cli.StringFlag{
			Name:        "url-proxy",
			EnvVars:     []string{telegram.ProxyEnv},
			Destination: &c.urlProxy,
		},
		&cli.BoolFlag{
			Name:        "debug",
			EnvVars:     []string{"YEM_DEBUG"},
			Destination: &c.debug,
		},
		&cli.StringFlag{
			Name:        "bank-file",
			Value:       "bank.msgpack",
			EnvVars:     []string{"YEM_BANK_FILE"},
			Destination: &c.bankFile,
		},
		&cli.StringFlag{
			Name:        "bucket",
			Usage:       "keep the bank on Google Cloud Storage instead of bank-file",
			EnvVars:     []string{"YEM_BUCKET"},
			Destination: &c.bucket,
		},
		&cli.StringFlag{
			Name:        "object",
			Value:       "yem-bank",
			EnvVars:     []string{"YEM_OBJECT"},
			Destination: &c.object,
		},
		&cli.IntFlag{
			Name:        "initial-deposit",
			Value:       bank.DefaultInitialDeposit,
			Destination: &c.initialDeposit,
		},
		&cli.DurationFlag{
			Name:  "save-every",
			Value: defaultSaveEvery,
			Usage: "how often a changed bank is saved",
		},
		&cli.StringFlag{
			Name:        "pics",
			Value:       "pics",
			EnvVars:     []string{"YEM_PICS"},
			Destination: &c.picsDir,
		},
		&cli.StringFlag{
			Name:        "out",
			Value:       os.TempDir(),
			EnvVars:     []string{"YEM_OUT"},
			Destination: &c.outDir,
		},
		&cli.IntFlag{
			Name:        "buy-in",
			Value:       rules.BuyIn,
			Destination: &c.rules.BuyIn,
		},
		&cli.IntFlag{
			Name:        "min-bet",
			Value:       rules.MinBet,
			Destination: &c.rules.MinBet,
		},
		&cli.IntFlag{
			Name:        "max-players",
			Value:       rules.MaxPlayers,
			Destination: &c.rules.MaxPlayers,
		},
		&cli.IntFlag{
			Name:        "min-players",
			Value:       rules.MinPlayers,
			Destination: &c.rules.MinPlayers,
		},
	}
	cliApp.Before = func(ctx *cli.Context) error {
		c.admins = ctx.Int64Slice("admin")
		if c.rules.MinPlayers < 2 || c.rules.MaxPlayers < c.rules.MinPlayers {
			return fmt.Errorf("need 2 <= min-players <= max-players, got %d and %d", c.rules.MinPlayers, c.rules.MaxPlayers)
		}
		if c.rules.MinBet < 2 || c.rules.BuyIn < c.rules.MinBet {
			return fmt.Errorf("need 2 <= min-bet <= buy-in, got %d and %d", c.rules.MinBet, c.rules.BuyIn)
		}
		return nil
	}
	cliApp.Action = func(ctx *cli.Context) error {
		b, directory, err := YemBot(ctx.Context, &c)
		if err != nil {
			return err
		}
		scheduler, err := directory.Schedule(ctx.Duration("save-every"))
		if err != nil {
			return err
		}
		defer scheduler.Stop()

		err = b.Init()
		if err != nil {
			return err
		}
		log.Info("bot start listening")
		b.Listen(60)
		return nil
	}
	err := cliApp.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
