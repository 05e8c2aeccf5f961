package repositories

import (
	"context"

	"iblaze_backend/internal/models"

	"gorm.io/gorm"
)

// Repositories groups every store the services depend on.
type Repositories struct {
	Users        UserRepository
	Ideas        IdeaRepository
	Jobs         JobRepository
	Applications ApplicationRepository
	Analytics    AnalyticsRepository

	// Ping reports whether the backing store is reachable.
	Ping func(ctx context.Context) error
}

// Models lists every table managed by AutoMigrate, parents first.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Idea{},
		&models.AccessRequest{},
		&models.ApprovedInvestor{},
		&models.IdeaView{},
		&models.Job{},
		&models.Application{},
	}
}

func NewGormRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(db),
		Ideas:        NewIdeaRepository(db),
		Jobs:         NewJobRepository(db),
		Applications: NewApplicationRepository(db),
		Analytics:    NewAnalyticsRepository(db),
		Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
}
