package httputil

import "fmt"

// HTTPClientConfig carries optional authentication for outbound requests.
type HTTPClientConfig struct {
	BearerToken       string `envconfig:"QUADIX_CLIENT_BEARER_TOKEN"`
	BasicAuthUsername string `envconfig:"QUADIX_CLIENT_BASIC_AUTH_USERNAME"`
	BasicAuthPassword string `envconfig:"QUADIX_CLIENT_BASIC_AUTH_PASSWORD"`
}

func (c *HTTPClientConfig) Validate() error {
	if c.BasicAuthUsername != "" && len(c.BearerToken) > 0 {
		return fmt.Errorf("at most one of basic auth & bearer token must be configured")
	}
	return nil
}
