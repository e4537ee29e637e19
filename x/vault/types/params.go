package types

import "fmt"

// Validate checks the vault's instance configuration.
func (c Config) Validate() error {
	if c.Denom == "" {
		return fmt.Errorf("denom must not be empty")
	}
	return nil
}
