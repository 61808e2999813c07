package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dep2p/go-sutera"
	"github.com/dep2p/go-sutera/pkg/identity"
	"github.com/dep2p/go-sutera/pkg/message"
)

// command 子命令
type command struct {
	summary string
	run     func(e *env, g *globalFlags, args []string) error
}

var commands = map[string]command{
	"keygen": {"生成并保存新的签名密钥", runKeygen},
	"whoami": {"显示本地身份（不生成密钥）", runWhoami},
	"sign":   {"签名消息，输出 JSON 载荷（无参数时读取标准输入；密钥不存在时按配置自动生成）", runSign},
	"verify": {"验证 JSON 载荷的签名", runVerify},
	"parse":  {"解析身份字符串", runParse},
}

var commandOrder = []string{"keygen", "whoami", "sign", "verify", "parse"}

// configOptions 命令行参数转换为配置选项（不含口令）
func configOptions(g *globalFlags) []sutera.Option {
	var opts []sutera.Option
	if g.configFile != "" {
		opts = append(opts, sutera.WithConfigFile(g.configFile))
	}
	if g.keyStoreDirSet {
		opts = append(opts, sutera.WithKeyStoreDir(g.keyStoreDir))
	}
	if g.keyID != "" {
		opts = append(opts, sutera.WithKeyID(g.keyID))
	}
	if g.displayNameSet {
		opts = append(opts, sutera.WithDisplayName(g.displayName))
	}
	return opts
}

// clientOptions 在配置选项之上按需读取口令
//
// readOnly 的命令不生成密钥，其余命令遵循 identity.auto_generate。
func clientOptions(e *env, g *globalFlags, readOnly bool) ([]sutera.Option, error) {
	opts := configOptions(g)
	if g.askPassword {
		pw, err := e.readPassword("密钥口令: ")
		if err != nil {
			return nil, fmt.Errorf("读取口令失败: %w", err)
		}
		opts = append(opts, sutera.WithPassword(pw))
	}
	if readOnly {
		opts = append(opts, sutera.WithAutoGenerate(false))
	}
	return opts, nil
}

func startClient(e *env, g *globalFlags, readOnly bool) (*sutera.Client, error) {
	opts, err := clientOptions(e, g, readOnly)
	if err != nil {
		return nil, err
	}
	return sutera.Start(context.Background(), opts...)
}

// runKeygen 生成密钥；同 ID 已存在时失败
func runKeygen(e *env, g *globalFlags, _ []string) error {
	opts, err := clientOptions(e, g, false)
	if err != nil {
		return err
	}
	id, err := sutera.GenerateKey(opts...)
	if err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, id.String())
	return nil
}

func runWhoami(e *env, g *globalFlags, _ []string) error {
	c, err := startClient(e, g, true)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	id := c.Identity()
	fmt.Fprintln(e.stdout, id.String())
	fmt.Fprintf(e.stdout, "fingerprint: %s\n", id.Fingerprint())
	return nil
}

func runSign(e *env, g *globalFlags, args []string) error {
	text := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(e.stdin)
		if err != nil {
			return fmt.Errorf("读取消息失败: %w", err)
		}
		text = string(data)
	}

	c, err := startClient(e, g, false)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	m, err := c.Sign(text)
	if err != nil {
		return err
	}
	out, err := json.Marshal(m)
	if err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, string(out))
	return nil
}

// runVerify 只需要载荷，不读取本地密钥
func runVerify(e *env, g *globalFlags, _ []string) error {
	var r io.Reader = e.stdin
	if g.inFile != "" {
		f, err := os.Open(g.inFile)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("读取载荷失败: %w", err)
	}

	m, err := message.NewCodec().OpenJSON(data)
	if err != nil {
		if errors.Is(err, message.ErrInvalidSignature) {
			return errInvalidSignature
		}
		return err
	}

	fmt.Fprintf(e.stdout, "valid: %s\n", m.Author)
	return nil
}

func runParse(e *env, _ *globalFlags, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("用法: sutera parse <identity>")
	}

	id, err := identity.Parse(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(e.stdout, "kind:         %s\n", id.Kind)
	if id.HasDisplayName() {
		fmt.Fprintf(e.stdout, "display name: %s\n", id.DisplayName)
	}
	fmt.Fprintf(e.stdout, "public key:   %s\n", id.PublicKey)
	fmt.Fprintf(e.stdout, "fingerprint:  %s\n", id.Fingerprint())
	return nil
}
