package config

import "testing"

func validConfig() *Config {
	return &Config{
		SearchURLTemplate: "https://example.co.id/bali/properti/?page=%d",
		PagesToScrape:     5,
		MinSurfaceSqm:     1000,
		MaxSurfaceSqm:     30000,
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero pages", func(c *Config) { c.PagesToScrape = 0 }},
		{"negative min surface", func(c *Config) { c.MinSurfaceSqm = -1 }},
		{"inverted band", func(c *Config) { c.MaxSurfaceSqm = c.MinSurfaceSqm - 1 }},
		{"template without placeholder", func(c *Config) { c.SearchURLTemplate = "https://example.co.id/fixed" }},
	}

	for _, tt := range tests {
		c := validConfig()
		tt.mutate(c)
		if err := c.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}
