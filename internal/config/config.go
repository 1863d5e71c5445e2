package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	MongoURI       string
	RedisURI       string
	JWTSecret      string
	Port           string
	Host           string   // public base URL of this API, used in verify/unsubscribe links
	ClientURL      string   // public front-end base URL, used in email links and previews
	AllowedOrigins []string // CORS: from ALLOWED_ORIGINS or CLIENT_URL
	Environment    string   // ENV: production, development, etc.

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string // sender address; defaults to SMTP_USER
	MailFromName string
	AdminEmail   string // contact-form messages land here

	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))
	clientURL := strings.TrimRight(getEnv("CLIENT_URL", "http://localhost:3000"), "/")

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{clientURL}
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "465"))
	if err != nil {
		smtpPort = 465
	}

	smtpUser := getEnv("SMTP_USER", getEnv("ZOHO_EMAIL", ""))

	return &Config{
		MongoURI:       getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/udhekryqi")),
		RedisURI:       getEnv("REDIS_URI", ""),
		JWTSecret:      getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		Port:           getEnv("PORT", "5000"),
		Host:           strings.TrimRight(getEnv("HOST", "http://localhost:5000"), "/"),
		ClientURL:      clientURL,
		AllowedOrigins: allowedOrigins,
		Environment:    env,

		SMTPHost:     getEnv("SMTP_HOST", "smtp.zoho.com"),
		SMTPPort:     smtpPort,
		SMTPUser:     smtpUser,
		SMTPPassword: getEnv("SMTP_PASSWORD", getEnv("ZOHO_PASSWORD", "")),
		MailFrom:     getEnv("MAIL_FROM", smtpUser),
		MailFromName: getEnv("MAIL_FROM_NAME", "Udhëkryqi"),
		AdminEmail:   getEnv("ADMIN_EMAIL", "mail@udhekryqi.com"),

		CloudinaryName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
	}
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
