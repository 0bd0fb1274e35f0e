package config

import (
	"fmt"
	"log"
	"strings"
)

// Required collects missing keys so a binary reports all of them at once.
type Required struct {
	missing []string
}

func (r *Required) String(value, envName string) {
	if strings.TrimSpace(value) == "" {
		r.missing = append(r.missing, envName)
	}
}

func (r *Required) Bytes(value []byte, envName string) {
	if len(value) == 0 {
		r.missing = append(r.missing, envName)
	}
}

func (r *Required) Err() error {
	if len(r.missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required env: %s", strings.Join(r.missing, ", "))
}

// Must exits the process when any key was missing.
func (r *Required) Must() {
	if err := r.Err(); err != nil {
		log.Fatal(err)
	}
}
