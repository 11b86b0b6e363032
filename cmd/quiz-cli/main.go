package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/aiqualitylab/qa-quiz-agent/internal/cli"
)

func main() {
	defaultServer := os.Getenv("QUIZ_SERVER_URL")
	server := flag.String("server", defaultServer, "quiz-web base URL")
	flag.Parse()

	err := cli.Run(context.Background(), os.Stdin, os.Stdout, cli.Config{
		ServerURL: *server,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
