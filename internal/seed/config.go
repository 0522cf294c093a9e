package seed

type Config struct {
	// Path to a TOML file of objects indexed at startup; empty skips seeding
	File string `envconfig:"QUADIX_SEED_FILE"`
}
