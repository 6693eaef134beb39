// Package main 启动应用程序
package main

import (
	"os"

	"github.com/yeisme/goatdesk/pkg/cmd"
)

//	@title			GoatDesk API
//	@version		0.3.0
//	@description	GoatDesk 商品管理后台：商品与图片引用维护、孤儿图片清理、视频与留言管理。

//	@license.name	MIT
//	@license.url	https://opensource.org/license/mit/

//	@contact.name	yeisme

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
