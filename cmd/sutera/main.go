// Package main 提供 sutera 命令行入口
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dep2p/go-sutera"
	"github.com/dep2p/go-sutera/config"
	"github.com/dep2p/go-sutera/pkg/lib/log"
)

var logger = log.Logger("sutera/cmd")

// 退出码
const (
	exitOK               = 0
	exitError            = 1
	exitInvalidSignature = 2
)

// errInvalidSignature verify 子命令的签名无效结果
var errInvalidSignature = errors.New("signature is invalid")

// ═══════════════════════════════════════════════════════════════════════════
// 命令行参数
// ═══════════════════════════════════════════════════════════════════════════
//
//   命令行参数：运行时覆盖（「这次运行」用哪个密钥）
//   JSON 配置文件 / SUTERA_* 环境变量：持久化配置（含 log.level / log.format）
//
// ═══════════════════════════════════════════════════════════════════════════

// globalFlags 所有子命令共享的参数
type globalFlags struct {
	configFile     string
	keyStoreDir    string
	keyID          string
	displayName    string
	logLevel       string
	askPassword    bool
	inFile         string
	showVersion    bool
	keyStoreDirSet bool
	displayNameSet bool
}

// env 命令运行环境，便于测试替换标准输入输出
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// readPassword 从终端读取口令
	readPassword func(prompt string) (string, error)
}

func main() {
	e := &env{
		stdin:        os.Stdin,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		readPassword: promptPassword,
	}
	os.Exit(run(os.Args[1:], e))
}

func run(args []string, e *env) int {
	fs := flag.NewFlagSet("sutera", flag.ContinueOnError)
	fs.SetOutput(e.stderr)

	var g globalFlags
	fs.StringVar(&g.configFile, "config", "", "配置文件路径")
	fs.StringVar(&g.keyStoreDir, "keystore", "", "密钥存储目录（覆盖配置）")
	fs.StringVar(&g.keyID, "key", "", "密钥 ID（覆盖配置）")
	fs.StringVar(&g.displayName, "name", "", "显示名（覆盖配置）")
	fs.StringVar(&g.logLevel, "log-level", "", "日志级别 (debug/info/warn/error)")
	fs.BoolVar(&g.askPassword, "password", false, "从终端读取密钥文件口令")
	fs.StringVar(&g.inFile, "in", "", "verify 读取的载荷文件（默认标准输入）")
	fs.BoolVar(&g.showVersion, "version", false, "显示版本信息")
	fs.Usage = func() { printHelp(fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitError
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "keystore":
			g.keyStoreDirSet = true
		case "name":
			g.displayNameSet = true
		}
	})

	if g.showVersion {
		fmt.Fprintln(e.stdout, sutera.VersionInfo())
		return exitOK
	}

	cfg, err := sutera.LoadConfig(configOptions(&g)...)
	if err != nil {
		fmt.Fprintf(e.stderr, "错误: %v\n", err)
		return exitError
	}
	if err := setupLogging(e.stderr, cfg.Log, g.logLevel); err != nil {
		fmt.Fprintf(e.stderr, "错误: %v\n", err)
		return exitError
	}

	rest := fs.Args()
	if len(rest) == 0 {
		printHelp(fs)
		return exitError
	}

	cmd, ok := commands[rest[0]]
	if !ok {
		fmt.Fprintf(e.stderr, "错误: 未知命令 %q\n", rest[0])
		printHelp(fs)
		return exitError
	}

	logger.Debug("执行命令", "command", rest[0])
	if err := cmd.run(e, &g, rest[1:]); err != nil {
		fmt.Fprintf(e.stderr, "错误: %v\n", err)
		if errors.Is(err, errInvalidSignature) {
			return exitInvalidSignature
		}
		return exitError
	}
	return exitOK
}

// setupLogging 按生效配置设置日志，-log-level 优先
func setupLogging(w io.Writer, lc config.LogConfig, flagLevel string) error {
	if flagLevel != "" {
		lc = lc.WithLevel(flagLevel)
	}
	return log.Setup(w, lc.Level, lc.Format)
}

// printHelp 打印帮助信息
func printHelp(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprintln(w, "sutera - 身份与签名消息工具")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "用法:")
	fmt.Fprintln(w, "  sutera [选项] <命令> [参数]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "命令:")
	for _, name := range commandOrder {
		fmt.Fprintf(w, "  %-8s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "选项:")
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "环境变量:")
	fmt.Fprintln(w, "  SUTERA_IDENTITY_KEY_STORE_DIR  密钥存储目录")
	fmt.Fprintln(w, "  SUTERA_IDENTITY_KEY_ID         密钥 ID")
	fmt.Fprintln(w, "  SUTERA_IDENTITY_DISPLAY_NAME   显示名")
	fmt.Fprintln(w, "  SUTERA_IDENTITY_PASSWORD       密钥文件口令")
	fmt.Fprintln(w, "  SUTERA_IDENTITY_AUTO_GENERATE  sign 时密钥不存在是否自动生成")
	fmt.Fprintf(w, "  %-30s 日志级别\n", log.EnvLevel)
	fmt.Fprintf(w, "  %-30s 日志格式 (text/json)\n", log.EnvFormat)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "退出码: 0 成功, 1 错误, 2 签名无效 (verify)")
}
