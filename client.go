package sutera

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/fx"

	"github.com/dep2p/go-sutera/config"
	"github.com/dep2p/go-sutera/internal/core/author"
	"github.com/dep2p/go-sutera/pkg/identity"
	"github.com/dep2p/go-sutera/pkg/lib/log"
	"github.com/dep2p/go-sutera/pkg/message"
)

var logger = log.Logger("sutera")

// Client 本地作者客户端
//
// 持有作者签名能力和共享解析缓存的解码器。
type Client struct {
	cfg    *config.Config
	app    *fx.App
	author *author.Author
	codec  *message.Codec

	mu      sync.Mutex
	started bool
	closed  bool
}

// New 创建客户端（不启动）
func New(opts ...Option) (*Client, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	cfg, err := o.buildConfig()
	if err != nil {
		return nil, err
	}
	if o.logOutput != nil {
		if err := log.Setup(o.logOutput, cfg.Log.Level, cfg.Log.Format); err != nil {
			return nil, err
		}
	}

	c := &Client{cfg: cfg}
	c.app = buildFxApp(cfg, c, o.fxOptions)
	if err := c.app.Err(); err != nil {
		return nil, fmt.Errorf("build app: %w", err)
	}
	return c, nil
}

// GenerateKey 按选项生成并保存新的签名密钥
//
// 同 ID 的密钥已存在时返回 crypto.ErrKeyExists；未配置存储目录时返回 ErrNoKeyStore。
func GenerateKey(opts ...Option) (identity.Identity, error) {
	cfg, err := LoadConfig(opts...)
	if err != nil {
		return identity.Identity{}, err
	}
	if cfg.Identity.KeyStoreDir == "" {
		return identity.Identity{}, ErrNoKeyStore
	}

	m, err := author.NewManager(cfg.Identity)
	if err != nil {
		return identity.Identity{}, err
	}
	a, err := m.Create()
	if err != nil {
		return identity.Identity{}, err
	}
	return a.Identity(), nil
}

// Start 创建并启动客户端
func Start(ctx context.Context, opts ...Option) (*Client, error) {
	c, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := c.Start(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Start 启动客户端
func (c *Client) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClientClosed
	}
	if c.started {
		return ErrAlreadyStarted
	}
	if err := c.app.Start(ctx); err != nil {
		return fmt.Errorf("start client: %w", err)
	}
	c.started = true
	logger.Debug("客户端已启动", "identity", c.author.Identity().ShortFingerprint())
	return nil
}

// Close 停止客户端，可重复调用
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	if !c.started {
		return nil
	}
	if err := c.app.Stop(context.Background()); err != nil {
		logger.Warn("停止客户端失败", "err", err)
		return err
	}
	return nil
}

// Config 返回生效的配置
func (c *Client) Config() *config.Config {
	return c.cfg
}

// Identity 返回本地作者身份
func (c *Client) Identity() identity.Identity {
	return c.author.Identity()
}

// Sign 以本地作者身份签名消息
func (c *Client) Sign(msg string) (*message.SignedMessage, error) {
	return c.author.Sign(msg)
}

// Decode 解码载荷，不验证签名
func (c *Client) Decode(p message.Payload) (*message.SignedMessage, error) {
	return c.codec.Decode(p)
}

// Open 解码载荷并验证签名
func (c *Client) Open(p message.Payload) (*message.SignedMessage, error) {
	return c.codec.Open(p)
}

// OpenJSON 解码 JSON 载荷并验证签名
func (c *Client) OpenJSON(data []byte) (*message.SignedMessage, error) {
	return c.codec.OpenJSON(data)
}

// ParseIdentity 解析身份字符串（经过共享缓存）
func (c *Client) ParseIdentity(s string) (identity.Identity, error) {
	return c.codec.ParseIdentity(s)
}
