// Package constants holds configuration switch values shared across layers.
package constants

// Storage drivers selectable through storage.driver.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMongo    = "mongo"
	StorageDriverMemory   = "memory"
)

// Password hashers selectable through auth.hasher.
const (
	HasherBcrypt   = "bcrypt"
	HasherArgon2id = "argon2id"
)

// EnvProduction enables the stricter startup checks in config.Validate.
const EnvProduction = "production"
