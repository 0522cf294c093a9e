package database

type Config struct {
	FileName string `envconfig:"QUADIX_DB_FILE" default:"quadix.db"`
}
