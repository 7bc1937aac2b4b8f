// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command gensecret prints random hex-encoded signing secrets for the
// ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET settings.
//
// # Usage
//
//	gensecret            # two KEY=value lines, ready for .env
//	gensecret -b 64 -r   # one bare 64-byte secret
package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
)

const minBytes = 32

type options struct {
	bytes int
	raw   bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "gensecret:", err)
		os.Exit(2)
	}
}

func run(args []string, out io.Writer) error {
	opts := options{}

	fs := pflag.NewFlagSet("gensecret", pflag.ContinueOnError)
	fs.SetOutput(out)
	fs.IntVarP(&opts.bytes, "bytes", "b", minBytes, "Secret length in bytes (at least 32)")
	fs.BoolVarP(&opts.raw, "raw", "r", false, "Print one bare secret instead of .env lines")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if opts.bytes < minBytes {
		return fmt.Errorf("--bytes must be at least %d", minBytes)
	}

	if opts.raw {
		secret, err := generate(opts.bytes)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, secret)
		return err
	}

	for _, key := range []string{"ACCESS_TOKEN_SECRET", "REFRESH_TOKEN_SECRET"} {
		secret, err := generate(opts.bytes)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(out, "%s=%s\n", key, secret); err != nil {
			return err
		}
	}
	return nil
}

func generate(size int) (string, error) {
	buffer := make([]byte, size)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(buffer), nil
}
