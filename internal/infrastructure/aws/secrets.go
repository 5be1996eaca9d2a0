package aws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"retailorders/internal/config"
)

type SecretsClient interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// DatabaseSecret is the JSON document RDS stores for managed credentials.
type DatabaseSecret struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	DBName   string `json:"dbname"`
}

type SecretsReader struct {
	client SecretsClient
}

func NewSecretsReader(client SecretsClient) *SecretsReader {
	return &SecretsReader{client: client}
}

func (r *SecretsReader) GetDatabaseSecret(ctx context.Context, name string) (*DatabaseSecret, error) {
	if name == "" {
		return nil, errors.New("database secret name not configured")
	}

	out, err := r.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		return nil, fmt.Errorf("retrieving secret %s: %w", name, err)
	}
	if out.SecretString == nil {
		return nil, fmt.Errorf("secret %s has no string value", name)
	}

	var secret DatabaseSecret
	if err := json.Unmarshal([]byte(*out.SecretString), &secret); err != nil {
		return nil, fmt.Errorf("decoding secret %s: %w", name, err)
	}
	return &secret, nil
}

// Apply overlays the non-empty secret fields onto cfg.
func (s DatabaseSecret) Apply(cfg config.DatabaseConfig) config.DatabaseConfig {
	if s.Username != "" {
		cfg.User = s.Username
	}
	if s.Password != "" {
		cfg.Password = s.Password
	}
	if s.Host != "" {
		cfg.Host = s.Host
	}
	if s.Port != 0 {
		cfg.Port = s.Port
	}
	if s.DBName != "" {
		cfg.Name = s.DBName
	}
	return cfg
}
