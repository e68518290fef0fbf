package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	ImageProviderCloudinary = "cloudinary"
	ImageProviderS3         = "s3"

	minJWTSecretLength = 32
)

type Config struct {
	Port           string        `env:"PORT,             default=4000"`
	Env            string        `env:"ENV,              default=development"`
	LogLevel       string        `env:"LOG_LEVEL,        default=info"`
	JWTSecret      string        `env:"JWT_SECRET,       required"`
	JWTTTL         time.Duration `env:"JWT_TTL,          default=24h"`
	CORSOrigins    []string      `env:"CORS_ALLOWED_ORIGINS, default=http://localhost:3000,http://localhost:5173"`
	MaxUploadBytes int64         `env:"MAX_UPLOAD_BYTES, default=5242880"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Images  ImageConfig
	Login   LoginConfig
	Contact ContactConfig
	Views   ViewsConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=cipco"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type ImageConfig struct {
	Provider string `env:"IMAGE_PROVIDER, default=cloudinary"`
	Folder   string `env:"IMAGE_FOLDER,   default=cipco-blogs"`

	Cloudinary CloudinaryConfig
	S3         S3Config
}

type CloudinaryConfig struct {
	CloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	APIKey    string `env:"CLOUDINARY_API_KEY"`
	APISecret string `env:"CLOUDINARY_API_SECRET"`
}

type S3Config struct {
	Bucket        string `env:"S3_BUCKET"`
	Region        string `env:"S3_REGION,        default=us-east-1"`
	Endpoint      string `env:"S3_ENDPOINT"`
	AccessKey     string `env:"S3_ACCESS_KEY"`
	SecretKey     string `env:"S3_SECRET_KEY"`
	PublicBaseURL string `env:"S3_PUBLIC_BASE_URL"`
	UsePathStyle  bool   `env:"S3_USE_PATH_STYLE, default=false"`
}

type LoginConfig struct {
	MaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=5"`
	Window      time.Duration `env:"LOGIN_WINDOW,       default=15m"`
}

type ContactConfig struct {
	Rate  float64 `env:"CONTACT_RATE,  default=0.2"`
	Burst int     `env:"CONTACT_BURST, default=3"`
}

type ViewsConfig struct {
	Workers int `env:"VIEW_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig and
// validates it.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the invariants envconfig tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	if len(c.JWTSecret) < minJWTSecretLength {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d bytes", minJWTSecretLength))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}

	switch c.Images.Provider {
	case ImageProviderCloudinary:
		cl := c.Images.Cloudinary
		if cl.CloudName == "" || cl.APIKey == "" || cl.APISecret == "" {
			errs = append(errs, errors.New("CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET are required"))
		}
	case ImageProviderS3:
		if c.Images.S3.Bucket == "" {
			errs = append(errs, errors.New("S3_BUCKET is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("IMAGE_PROVIDER must be %q or %q", ImageProviderCloudinary, ImageProviderS3))
	}

	if c.Login.MaxAttempts <= 0 || c.Login.Window <= 0 {
		errs = append(errs, errors.New("LOGIN_MAX_ATTEMPTS and LOGIN_WINDOW must be positive"))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// IsDevelopment reports whether the process runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// SeedConfig holds the initial administrator created by cmd/seed-admin.
type SeedConfig struct {
	Email    string `env:"SEED_ADMIN_EMAIL,    required"`
	Password string `env:"SEED_ADMIN_PASSWORD, required"`
	Name     string `env:"SEED_ADMIN_NAME,     default=Super Admin"`
	Role     string `env:"SEED_ADMIN_ROLE,     default=superadmin"`

	Mongo MongoConfig
}

// LoadSeed reads the seeder configuration.
func LoadSeed(ctx context.Context) (*SeedConfig, error) {
	var cfg SeedConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
