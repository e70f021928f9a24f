package config

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"os"
	"time"

	"github.com/keyhaven/lockbox-service/internal/utils"
)

const AppName = "lockbox-service"

const defaultSessionTTL = 24 * time.Hour

type Config struct {
	AppName string
	AppPort string
	AppUrl  string

	// Database
	DBUrl string

	// External services
	OpenAIAPIKey string

	// Auth: anonymous sessions are signed with this keypair.
	RSAPrivateKey *rsa.PrivateKey
	RSAPublicKey  *rsa.PublicKey
	SessionTTL    time.Duration
}

func LoadConfig() *Config {
	utils.Logger.Info("Loading config for app: ", AppName)

	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}
	appUrl := os.Getenv("APP_URL")
	if appUrl == "" {
		utils.Logger.Fatal("APP_URL env var is missing")
	}
	dbUrl := os.Getenv("DATABASE_URL")
	if dbUrl == "" {
		utils.Logger.Fatal("DATABASE_URL env var is missing")
	}

	openAIKey := os.Getenv("OPENAI_API_KEY")
	if openAIKey == "" {
		utils.Logger.Warn("OPENAI_API_KEY not set; autocomplete falls back to local prefix matching")
	}

	privPEMB64 := os.Getenv("SESSION_RSA_PRIVATE_KEY_BASE64")
	if privPEMB64 == "" {
		utils.Logger.Fatal("SESSION_RSA_PRIVATE_KEY_BASE64 env var is missing")
	}
	privKey, err := parseRSAPrivateKeyB64(privPEMB64)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse session RSA private key")
	}

	sessionTTL := defaultSessionTTL
	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			utils.Logger.WithError(err).Fatal("Invalid SESSION_TTL")
		}
		sessionTTL = d
	}

	utils.Logger.Infof("Loaded config for %s", AppName)

	return &Config{
		AppName:       AppName,
		AppPort:       appPort,
		AppUrl:        appUrl,
		DBUrl:         dbUrl,
		OpenAIAPIKey:  openAIKey,
		RSAPrivateKey: privKey,
		RSAPublicKey:  &privKey.PublicKey,
		SessionTTL:    sessionTTL,
	}
}

func parseRSAPrivateKeyB64(b64 string) (*rsa.PrivateKey, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, errors.New("no PEM block in decoded key material")
	}
	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("PKCS8 key is not RSA")
	}
	return key, nil
}
