package sutera

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-sutera/config"
	"github.com/dep2p/go-sutera/internal/core/author"
)

// buildFxApp 构建 Fx 应用
//
// 目前只有作者模块；调用方可通过 WithFxOption 追加模块。
func buildFxApp(cfg *config.Config, c *Client, extra []fx.Option) *fx.App {
	opts := []fx.Option{
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
		fx.Supply(cfg),
		author.Module(),
		fx.Populate(&c.author, &c.codec),
	}
	opts = append(opts, extra...)
	return fx.New(opts...)
}
