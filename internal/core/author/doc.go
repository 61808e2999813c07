// Package author 提供本地作者（身份 + 签名密钥）的管理和 Fx 模块
//
// 作者由配置决定：从密钥存储加载签名密钥，不存在时按需生成并保存，
// 再由密钥派生出身份。作者是唯一持有私钥的组件，对外只暴露签名能力。
//
// # 快速开始
//
//	m, _ := author.NewManager(config.DefaultIdentityConfig())
//	a, _ := m.LoadOrCreate()
//	msg, _ := a.Sign("hello")
//
// # Fx 模块
//
//	app := fx.New(
//	    author.Module(),
//	    fx.Invoke(func(a *author.Author) {
//	        fmt.Println(a.Identity())
//	    }),
//	)
package author
