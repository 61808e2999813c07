package author

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"github.com/dep2p/go-sutera/config"
	"github.com/dep2p/go-sutera/pkg/identity"
	"github.com/dep2p/go-sutera/pkg/message"
)

// ============================================================================
//                              模块输入依赖
// ============================================================================

// ModuleInput 定义模块输入依赖
type ModuleInput struct {
	fx.In

	// 配置（可选，使用默认配置）
	Config *config.Config `optional:"true"`
}

// ============================================================================
//                              模块输出服务
// ============================================================================

// ModuleOutput 定义模块输出服务
type ModuleOutput struct {
	fx.Out

	Author  *Author
	Manager *Manager

	// Codec 共享身份解析缓存的载荷解码器
	Codec *message.Codec
}

// ============================================================================
//                              服务提供
// ============================================================================

// ProvideServices 提供模块服务
func ProvideServices(input ModuleInput) (ModuleOutput, error) {
	cfg := config.NewConfig()
	if input.Config != nil {
		cfg = input.Config
	}

	manager, err := NewManager(cfg.Identity)
	if err != nil {
		return ModuleOutput{}, fmt.Errorf("创建作者管理器失败: %w", err)
	}

	a, err := manager.LoadOrCreate()
	if err != nil {
		return ModuleOutput{}, fmt.Errorf("加载作者失败: %w", err)
	}

	cache, err := identity.NewCache(identity.DefaultCacheSize)
	if err != nil {
		return ModuleOutput{}, err
	}

	return ModuleOutput{
		Author:  a,
		Manager: manager,
		Codec:   message.NewCodec(message.WithIdentityCache(cache)),
	}, nil
}

// ============================================================================
//                              模块定义
// ============================================================================

// Module 返回 fx 模块配置
func Module() fx.Option {
	return fx.Module("author",
		fx.Provide(ProvideServices),
		fx.Invoke(registerLifecycle),
	)
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In
	LC     fx.Lifecycle
	Author *Author
}

// registerLifecycle 注册生命周期
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("作者就绪", "identity", input.Author.Identity().String())
			return nil
		},
		OnStop: func(_ context.Context) error {
			return nil
		},
	})
}

// ============================================================================
//                              模块元信息
// ============================================================================

// 模块元信息常量
const (
	// Name 模块名称
	Name = "author"
	// Description 模块描述
	Description = "作者模块，提供本地身份和消息签名能力"
)
