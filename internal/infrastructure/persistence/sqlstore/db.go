package sqlstore

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/minibookstore/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架，按配置选择mysql/postgres/sqlite驱动
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 按需自动迁移表结构，空库时可写入示例图书
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 选择驱动
	dialector, err := openDialector(cfg.Database)
	if err != nil {
		return nil, err
	}

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}
	zap.L().Info("数据库连接成功", zap.String("driver", cfg.Database.Driver))

	// 6. 自动迁移表结构
	// 注意：生产环境应使用版本化的迁移脚本
	if cfg.Database.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	}

	// 7. 示例数据
	if cfg.Database.Seed {
		n, err := Seed(db)
		if err != nil {
			return nil, fmt.Errorf("写入示例数据失败: %w", err)
		}
		if n > 0 {
			zap.L().Info("已写入示例图书", zap.Int("count", n))
		}
	}

	return db, nil
}

func openDialector(d config.DatabaseConfig) (gorm.Dialector, error) {
	switch d.Driver {
	case "mysql":
		return mysql.Open(d.DSN()), nil
	case "postgres":
		return postgres.Open(d.DSN()), nil
	case "sqlite":
		return sqlite.Open(d.DSN()), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", d.Driver)
	}
}

// AutoMigrate 自动迁移表结构
// AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&BookModel{})
}

// BookModel GORM图书模型
// 设计说明:
// 1. infrastructure层的数据模型，domain/book/entity.go是领域实体，不依赖GORM
// 2. 价格使用decimal(10,2)存储，ISBN不加唯一索引
// 3. category单独建索引，优化按分类过滤
// 4. 物理删除，不使用gorm.DeletedAt
type BookModel struct {
	ID        uint            `gorm:"primaryKey"`
	Title     string          `gorm:"index;size:200;not null;comment:书名"`
	Author    string          `gorm:"size:100;not null;comment:作者"`
	Publisher string          `gorm:"size:100;not null;comment:出版社"`
	ISBN      string          `gorm:"column:isbn;size:20;not null;comment:ISBN号"`
	Category  string          `gorm:"index;size:50;not null;comment:分类"`
	PageCount int             `gorm:"not null;comment:页数"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:价格"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}
