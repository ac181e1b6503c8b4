package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultDatabasePath = "proofpage.db"

// Models 列出需要自动迁移的全部模型，测试与 Open 共用同一份列表。
func Models() []interface{} {
	return []interface{}{
		&User{},
		&ProofPage{},
		&ProofSection{},
		&Testimonial{},
		&WorkExample{},
		&Metric{},
		&TestimonialRequest{},
		&PageView{},
		&PageEvent{},
	}
}

// Options 控制数据库连接的行为。
type Options struct {
	// Silent 关闭 gorm 的 SQL 日志输出。
	Silent bool
}

// Open 打开 SQLite 数据库并执行自动迁移。
// databasePath 为空时回退到默认值 proofpage.db。
func Open(databasePath string, opts Options) (*gorm.DB, error) {
	path := strings.TrimSpace(databasePath)
	if path == "" {
		path = defaultDatabasePath
	}

	if err := ensureParentDir(path); err != nil {
		return nil, err
	}

	config := &gorm.Config{}
	if opts.Silent {
		config.Logger = logger.Default.LogMode(logger.Silent)
	}

	gdb, err := gorm.Open(sqlite.Open(path), config)
	if err != nil {
		return nil, err
	}

	if err := gdb.AutoMigrate(Models()...); err != nil {
		return nil, err
	}

	return gdb, nil
}

// Close 释放底层连接。
func Close(gdb *gorm.DB) error {
	if gdb == nil {
		return nil
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func ensureParentDir(path string) error {
	if strings.HasPrefix(path, "file:") {
		return nil
	}

	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}

// Ping 检查底层连接是否可用。
func Ping(gdb *gorm.DB) error {
	if gdb == nil {
		return errors.New("database is not initialised")
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
