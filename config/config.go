package config

import (
	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sirajbinsyed/menuzy/models"
)

var DB *gorm.DB

// Settings holds runtime configuration, resolved from the environment with
// sane defaults. A .env file is honored for local development.
type Settings struct {
	Port        string
	DBPath      string
	GinMode     string
	LogLevel    string
	SeedOnStart bool
}

// Load reads settings from the environment (and .env, if present) and
// configures the global logger.
func Load() *Settings {
	_ = godotenv.Load()

	viper.SetDefault("port", "8080")
	viper.SetDefault("db_path", "menuzy.db")
	viper.SetDefault("gin_mode", "debug")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("seed_on_start", false)
	viper.AutomaticEnv()

	s := &Settings{
		Port:        viper.GetString("port"),
		DBPath:      viper.GetString("db_path"),
		GinMode:     viper.GetString("gin_mode"),
		LogLevel:    viper.GetString("log_level"),
		SeedOnStart: viper.GetBool("seed_on_start"),
	}

	level, err := logrus.ParseLevel(s.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	return s
}

// InitDB opens the sqlite database, migrates the schema and installs the
// default restaurant categories.
func InitDB(s *Settings) {
	var err error
	DB, err = gorm.Open(sqlite.Open(s.DBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	// Auto-migrate all models
	err = DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Restaurant{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.LoadRecord{},
	)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to migrate database")
	}

	installDefaultCategories(DB)

	logrus.WithField("db", s.DBPath).Info("✅ Database connected and migrated successfully")
}

func installDefaultCategories(db *gorm.DB) {
	for _, cat := range models.DefaultCategories() {
		c := cat
		if err := db.Where("name = ?", c.Name).FirstOrCreate(&c).Error; err != nil {
			logrus.WithError(err).WithField("category", c.Name).Warn("Failed to install default category")
		}
	}
}
