package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xiebiao/minibookstore/internal/clientcart"
	"github.com/xiebiao/minibookstore/pkg/client"
	"github.com/xiebiao/minibookstore/pkg/logger"
)

// sessionKey 购物车会话Token在本地存储中的键
const sessionKey = "cartSession"

// errReported 错误信息已经输出过,main只需要以非0退出
var errReported = errors.New("already reported")

// app 命令共享的依赖,在PersistentPreRunE中初始化
type app struct {
	v       *viper.Viper
	out     io.Writer
	logger  *zap.Logger
	storage clientcart.LocalStorage
	client  *client.Client
	cart    *clientcart.Store

	session string
}

// execute 执行一条命令
// 命令失败时(如结算中途出错)服务端可能已经换发了Token,所以无论成功与否都写回会话
func execute(out io.Writer, args []string) error {
	a := &app{v: viper.New(), out: out}
	root := newRootCommand(a)
	root.SetArgs(args)

	err := root.Execute()
	if saveErr := a.saveSession(); saveErr != nil {
		if err == nil {
			return saveErr
		}
		a.logger.Warn("保存会话Token失败", zap.Error(saveErr))
	}
	return err
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "bookstore-cli",
		Short:         "迷你书店命令行客户端",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.setup()
		},
	}
	root.SetOut(a.out)

	flags := root.PersistentFlags()
	flags.String("server", "http://localhost:5000", "书店API地址")
	flags.String("state", defaultStatePath(), "本地状态文件(购物车与会话Token)")
	flags.Duration("timeout", 10*time.Second, "单次请求超时")
	flags.Bool("verbose", false, "输出调试日志")

	// 环境变量覆盖: BOOKSTORE_CLI_SERVER、BOOKSTORE_CLI_STATE ...
	a.v.SetEnvPrefix("BOOKSTORE_CLI")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	_ = a.v.BindPFlags(flags)

	root.AddCommand(newBooksCommand(a), newCartCommand(a))
	return root
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".minibookstore.json"
	}
	return filepath.Join(home, ".minibookstore", "state.json")
}

func (a *app) setup() error {
	level := "warn"
	if a.v.GetBool("verbose") {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Level: level, Format: "console", Output: "stderr"})
	if err != nil {
		return err
	}
	a.logger = log

	fs := clientcart.NewFileStorage(a.v.GetString("state"), a.logger)
	a.storage = fs

	session, _, err := a.storage.GetItem(sessionKey)
	if err != nil {
		a.logger.Warn("读取会话Token失败", zap.Error(err))
	}
	a.session = session

	a.client, err = client.New(a.v.GetString("server"), client.WithSession(session))
	if err != nil {
		return err
	}
	a.cart = clientcart.NewStore(a.storage, a.logger)

	a.logger.Debug("客户端已初始化",
		zap.String("server", a.v.GetString("server")),
		zap.String("state", fs.Path()),
	)
	return nil
}

// saveSession 服务端换发了Token时写回本地存储
func (a *app) saveSession() error {
	if a.client == nil {
		return nil
	}
	token := a.client.Session()
	if token == "" || token == a.session {
		return nil
	}
	if err := a.storage.SetItem(sessionKey, token); err != nil {
		return fmt.Errorf("保存会话Token失败: %w", err)
	}
	a.session = token
	return nil
}

// context 带超时的请求上下文
func (a *app) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), a.v.GetDuration("timeout"))
}

func parseBookID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("无效的图书ID: %s", s)
	}
	return uint(id), nil
}
