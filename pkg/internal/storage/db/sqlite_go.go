//go:build !no_sqlite && !cgo

package db

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/yeisme/goatdesk/pkg/configs"
)

// createSQLiteDialector 创建SQLite dialector.
func createSQLiteDialector(dsn string) gorm.Dialector {
	return sqlite.Open(dsn)
}

// 注册纯 Go SQLite dialector工厂函数.
func init() {
	RegisterDialectorFactory(createSQLiteDialector, configs.SQLite)
}
