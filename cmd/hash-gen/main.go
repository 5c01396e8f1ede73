package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"brixium.backend/pkg/crypto"
)

var (
	fatalfFn      = log.Fatalf
	randomTokenFn = crypto.GenerateRandomToken
)

// pinLength matches the transfer PIN format accepted by account settings
const pinLength = 4

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fatalfFn("hash-gen: %v", err)
	}
}

// run hashes a password or transfer PIN, or prints fresh secrets for the server env
func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("hash-gen", flag.ContinueOnError)
	fs.SetOutput(out)
	cost := fs.Int("cost", crypto.DefaultCost, "bcrypt cost")
	pin := fs.Bool("pin", false, "treat the input as a 4 digit transfer PIN")
	keys := fs.Bool("keys", false, "print JWT_SECRET and SESSION_ENCRYPTION_KEY values")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *keys {
		return printKeys(out)
	}

	if fs.NArg() != 1 {
		return errors.New("usage: hash-gen [-cost n] [-pin] <secret>")
	}
	secret := fs.Arg(0)
	if *pin && !validPin(secret) {
		return fmt.Errorf("transfer PIN must be exactly %d digits", pinLength)
	}

	hasher := crypto.NewHasher(*cost)
	hash, err := hasher.Hash(secret)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Bcrypt Hash (cost %d): %s\n", hasher.Cost, hash)
	return nil
}

func printKeys(out io.Writer) error {
	jwtSecret, err := randomTokenFn(32)
	if err != nil {
		return err
	}
	sessionKey, err := randomTokenFn(32)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "JWT_SECRET=%s\n", jwtSecret)
	fmt.Fprintf(out, "SESSION_ENCRYPTION_KEY=%s\n", sessionKey)
	return nil
}

func validPin(s string) bool {
	if len(s) != pinLength {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
