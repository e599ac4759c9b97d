// Command genkey generates the note encryption key for the ENCRYPTION_KEY
// environment variable. Run it once per deployment and keep the output out
// of version control.
package main

import (
	"fmt"
	"log"

	"github.com/vaultkit/vaultkit/pkg/notecipher"
)

func main() {
	encodedKey, err := notecipher.GenerateEncodedKey()
	if err != nil {
		log.Fatalf("Failed to generate encryption key: %v", err)
	}

	fmt.Printf("Generated encryption key (for ENCRYPTION_KEY env var): \n———\n%s\n———\n", encodedKey)
}
