package app

import (
	"bitwise74/shop-api/aws"
	"bitwise74/shop-api/config"
	"bitwise74/shop-api/internal"
	"bitwise74/shop-api/internal/service"
	"bitwise74/shop-api/internal/store"
	"bitwise74/shop-api/pkg/security"
	"context"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// NewDeps builds everything handlers need from the loaded config
func NewDeps(ctx context.Context) (*internal.Deps, error) {
	s, err := store.New(afero.NewOsFs(), viper.GetString("storage.data_dir"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JSON store, %w", err)
	}

	hasher, err := security.NewHasher(viper.GetString("security.hash_algorithm"))
	if err != nil {
		return nil, err
	}

	mailer := service.NewMailer(service.MailConfig{
		Host:     viper.GetString("mail.host"),
		Port:     viper.GetInt("mail.port"),
		Username: viper.GetString("mail.username"),
		Password: viper.GetString("mail.password"),
		From:     viper.GetString("mail.sender_address"),
	}, config.Production())
	if mailer.DevMode() {
		zap.L().Warn("Mailer running in development mode, emails will only be logged")
	}

	d := &internal.Deps{
		Store:         s,
		Hasher:        hasher,
		Sessions:      security.NewSessions(viper.GetString("security.jwt_secret")),
		Mailer:        mailer,
		PublicURL:     viper.GetString("host.public_url"),
		SecureCookies: config.SecureCookies(),
		MaxImageSize:  viper.GetInt64("images.max_size") << 20,
	}

	if viper.GetBool("images.enabled") {
		s3, err := aws.NewS3(ctx, aws.S3Config{
			Bucket:          viper.GetString("images.bucket"),
			Region:          viper.GetString("images.region"),
			AccessKeyID:     viper.GetString("images.access_key_id"),
			SecretAccessKey: viper.GetString("images.secret_access_key"),
			Endpoint:        viper.GetString("images.endpoint"),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 client, %w", err)
		}

		d.Images = service.NewImageStore(s3, viper.GetString("images.public_url"))
	}

	return d, nil
}
