// Command hash-generator prints bcrypt digests for the passwords given as
// arguments, using the same hasher the server stores credentials with. It is
// handy for seeding users directly into a database.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/taskmanager-api/internal/service/auth"
)

func main() {
	cost := flag.Int("cost", auth.DefaultCost, "bcrypt cost factor")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: hash-generator [-cost n] password...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := generate(context.Background(), os.Stdout, *cost, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// generate writes one "password\tdigest" line per password.
func generate(ctx context.Context, out io.Writer, cost int, passwords []string) error {
	hasher := auth.NewBcryptHasher(cost)
	for _, password := range passwords {
		digest, err := hasher.Hash(ctx, password)
		if err != nil {
			return fmt.Errorf("hashing %q: %w", password, err)
		}
		if _, err := fmt.Fprintf(out, "%s\t%s\n", password, digest); err != nil {
			return err
		}
	}
	return nil
}
