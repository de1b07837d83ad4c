package platform

import (
	"encoding/json"
	"fmt"
	"os"
)

// Credentials is one provisioned account record. Accounts are onboarded
// offline; the agent only reads the resulting file.
type Credentials struct {
	Token string `json:"token"`
	Phone string `json:"phone"`
}

// LoadCredentials reads the accounts file produced by provisioning.
func LoadCredentials(path string) ([]Credentials, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read accounts file: %w", err)
	}

	var creds []Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return nil, fmt.Errorf("parse accounts file: %w", err)
	}

	if len(creds) == 0 {
		return nil, fmt.Errorf("accounts file %s lists no accounts", path)
	}
	return creds, nil
}
