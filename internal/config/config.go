package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Bank     BankConfig     `mapstructure:"bank" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// BankConfig drives identifier generation: the fixed IBAN and card number
// parts, the random segment lengths, and the ceiling on regeneration retries
// after uniqueness collisions.
type BankConfig struct {
	IBANCountryCode    string `mapstructure:"iban_country_code" validate:"required,len=2,alpha"`
	IBANBankIdentifier string `mapstructure:"iban_bank_identifier" validate:"required"`
	IBANBBANLength     int    `mapstructure:"iban_bban_length" validate:"gte=0"`

	CardPaymentSystemCode string `mapstructure:"card_payment_system_code" validate:"required,numeric"`
	CardBankIdentifier    string `mapstructure:"card_bank_identifier" validate:"required,numeric"`
	CardIDLength          int    `mapstructure:"card_id_length" validate:"gte=0"`

	MaxGenerationRetries int `mapstructure:"max_generation_retries" validate:"required,gt=0"`
}
